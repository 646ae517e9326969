package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestMiddlewareIssuesCookieWhenAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := NewMemoryStore(30 * time.Minute)

	r := gin.New()
	r.Use(Middleware(store, CookieOptions{Name: "storefront_session"}))
	r.GET("/ping", func(c *gin.Context) {
		sess := FromContext(c)
		if sess == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"token": ""})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": sess.Token()})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	cookies := w.Result().Cookies()
	var issued *http.Cookie
	for _, cookie := range cookies {
		if cookie.Name == "storefront_session" {
			issued = cookie
		}
	}
	if issued == nil {
		t.Fatalf("session cookie should be issued")
	}
	if issued.Value == "" {
		t.Fatalf("session cookie value should not be empty")
	}
	if !issued.HttpOnly {
		t.Fatalf("session cookie should be http only")
	}
	if issued.MaxAge != 0 {
		t.Fatalf("session cookie should be session scoped, max-age got %d", issued.MaxAge)
	}
}

func TestMiddlewareReusesExistingCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := NewMemoryStore(30 * time.Minute)

	r := gin.New()
	r.Use(Middleware(store, CookieOptions{Name: "storefront_session"}))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"token": FromContext(c).Token()})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.AddCookie(&http.Cookie{Name: "storefront_session", Value: "existing-token"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "storefront_session" {
			t.Fatalf("middleware should not reissue an existing cookie")
		}
	}
	if got := w.Body.String(); !strings.Contains(got, "existing-token") {
		t.Fatalf("handler should see existing token, body=%s", got)
	}
}
