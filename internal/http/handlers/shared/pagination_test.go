package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name     string
		query    string
		page     int
		pageSize int
	}{
		{name: "defaults", query: "", page: 1, pageSize: 20},
		{name: "explicit", query: "?page=3&page_size=50", page: 3, pageSize: 50},
		{name: "clamped", query: "?page=0&page_size=500", page: 1, pageSize: 100},
		{name: "garbage", query: "?page=abc&page_size=-4", page: 1, pageSize: 20},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/admin/links"+tc.query, nil)
		page, pageSize := ParsePagination(c)
		if page != tc.page || pageSize != tc.pageSize {
			t.Fatalf("%s: want %d/%d got %d/%d", tc.name, tc.page, tc.pageSize, page, pageSize)
		}
	}
}
