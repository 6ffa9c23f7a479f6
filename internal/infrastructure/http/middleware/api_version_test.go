package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPIVersionHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := APIVersion("2")(next)

	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/posts/list", "1"},
		{"/api/v2/posts/list", "2"},
		{"/auth/login", "2"},
		{"/health", "2"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.path, nil))
		if got := rec.Header().Get("X-API-Version"); got != tt.want {
			t.Errorf("%s: X-API-Version = %q, want %q", tt.path, got, tt.want)
		}
	}
}
