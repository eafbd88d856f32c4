package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?lang=en", nil)
	if got := ResolveLocale(c); got != LocaleEnUS {
		t.Fatalf("query lang want en-US, got=%s", got)
	}

	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.Header.Set("Accept-Language", "en-GB,en;q=0.8")
	if got := ResolveLocale(c); got != LocaleEnUS {
		t.Fatalf("header lang want en-US, got=%s", got)
	}

	c.Request = httptest.NewRequest("GET", "/", nil)
	if got := ResolveLocale(c); got != DefaultLocale {
		t.Fatalf("default lang want %s, got=%s", DefaultLocale, got)
	}
}

func TestTFallback(t *testing.T) {
	if got := T(LocaleEnUS, "error.campaign_not_found"); got != "Campaign not found" {
		t.Fatalf("unexpected translation: %s", got)
	}
	if got := T("fr-FR", "error.campaign_not_found"); got != "活动不存在" {
		t.Fatalf("unknown locale should fallback to default, got=%s", got)
	}
	if got := T(LocaleEnUS, "error.missing_key"); got != "error.missing_key" {
		t.Fatalf("missing key should return key, got=%s", got)
	}
	if got := Sprintf(LocaleEnUS, "error.rate_limited", 5); got != "Too many requests, retry in 5 seconds" {
		t.Fatalf("unexpected sprintf result: %s", got)
	}
}
