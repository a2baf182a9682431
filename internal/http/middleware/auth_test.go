package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskboard/internal/domain"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

// stubIdentities maps tokens to person ids. An empty id stands for a token
// that verifies but whose person was deleted.
type stubIdentities map[string]string

func (s stubIdentities) Identify(_ context.Context, token string) (*domain.Person, error) {
	if token == "store-down" {
		return nil, errors.New("connection refused")
	}
	id, ok := s[token]
	if !ok || id == "" {
		return nil, service.ErrInvalidToken
	}
	return &domain.Person{ID: id}, nil
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(OptionalAuth(stubIdentities{"good": "person-1", "deleted": ""}))
	r.GET("/open", func(c *gin.Context) {
		c.String(http.StatusOK, "who=%s", c.GetString(ContextPersonID))
	})
	r.GET("/closed", RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	cases := []struct {
		path, auth string
		code       int
		body       string
	}{
		{"/open", "", http.StatusOK, "who="},
		{"/open", "Bearer good", http.StatusOK, "who=person-1"},
		{"/open", "Bearer bad", http.StatusUnauthorized, "unauthorized"},
		{"/open", "Basic Zm9vOmJhcg==", http.StatusUnauthorized, "unauthorized"},
		{"/open", "Bearer deleted", http.StatusUnauthorized, "unauthorized"},
		{"/open", "Bearer store-down", http.StatusInternalServerError, "internal error"},
		{"/closed", "", http.StatusUnauthorized, "unauthorized"},
		{"/closed", "Bearer good", http.StatusOK, "ok"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.auth != "" {
			req.Header.Set("Authorization", tc.auth)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tc.code || !strings.Contains(w.Body.String(), tc.body) {
			t.Fatalf("%s %q: got %d %s", tc.path, tc.auth, w.Code, w.Body.String())
		}
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Header().Get(HeaderRequestID) == "" {
		t.Fatal("missing generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(HeaderRequestID); got != "abc-123" {
		t.Fatalf("request id not propagated: %q", got)
	}
}
