package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name      string
		requestID string
		wantData  bool
	}{
		{name: "with request id", requestID: "req-42", wantData: true},
		{name: "without request id", wantData: false},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		if tc.requestID != "" {
			c.Set("request_id", tc.requestID)
		}
		Error(c, CodeConflict, "conflict")

		if w.Code != http.StatusOK {
			t.Fatalf("%s: http status want 200 got %d", tc.name, w.Code)
		}
		var resp struct {
			StatusCode int                    `json:"status_code"`
			Msg        string                 `json:"msg"`
			Data       map[string]interface{} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: decode response failed: %v", tc.name, err)
		}
		if resp.StatusCode != CodeConflict || resp.Msg != "conflict" {
			t.Fatalf("%s: unexpected envelope %+v", tc.name, resp)
		}
		if tc.wantData && resp.Data["request_id"] != tc.requestID {
			t.Fatalf("%s: request id want %s got %v", tc.name, tc.requestID, resp.Data["request_id"])
		}
		if !tc.wantData && resp.Data != nil {
			t.Fatalf("%s: data should be null got %v", tc.name, resp.Data)
		}
	}
}

func TestSuccessWithPage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	SuccessWithPage(c, []int{1, 2}, Pagination{Page: 2, PageSize: 2, Total: 5, TotalPage: 3})

	var resp PageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.StatusCode != CodeOK || resp.Msg != "success" || resp.Pagination.TotalPage != 3 {
		t.Fatalf("unexpected page response %+v", resp)
	}
}
