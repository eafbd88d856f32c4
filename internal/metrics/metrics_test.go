package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
)

func TestRecordConversion(t *testing.T) {
	m := New("test")
	sale := decimal.RequireFromString("100.00")
	m.RecordConversion("percentage", true, &sale, decimal.RequireFromString("10.00"))
	m.RecordConversion("percentage", false, nil, decimal.RequireFromString("2.50"))

	if got := testutil.ToFloat64(m.ConversionsRecorded.WithLabelValues("percentage", "true")); got != 1 {
		t.Fatalf("eligible conversions want 1, got=%v", got)
	}
	if got := testutil.ToFloat64(m.CommissionAmount.WithLabelValues("percentage")); got != 12.5 {
		t.Fatalf("commission sum want 12.5, got=%v", got)
	}
	if got := testutil.ToFloat64(m.RevenueAmount); got != 100 {
		t.Fatalf("revenue want 100, got=%v", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordClick("mobile")
	m.RecordConversion("fixed", true, nil, decimal.Zero)
	m.RecordAnalytics("campaign", true, time.Millisecond)
	m.RecordGeoLookup("hit")
	m.RecordRateLimitHit("click")
	if m.Registry() != nil {
		t.Fatalf("nil metrics registry should be nil")
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New("clickpath")
	m.RecordClick("")
	m.RecordAnalytics("campaign", false, 20*time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	body := w.Body.String()
	if !strings.Contains(body, `clickpath_clicks_recorded_total{device_type="unknown"} 1`) {
		t.Fatalf("click metric missing in output")
	}
	if !strings.Contains(body, `clickpath_analytics_requests_total{cache="miss",scope="campaign"} 1`) {
		t.Fatalf("analytics metric missing in output")
	}
}
