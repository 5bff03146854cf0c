package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		allowedOrigins []string
		origin         string
		wantAllow      string
		wantVary       bool
	}{
		{
			name:           "listed origin is echoed with Vary",
			allowedOrigins: []string{"https://app.example.com"},
			origin:         "https://app.example.com",
			wantAllow:      "https://app.example.com",
			wantVary:       true,
		},
		{
			name:           "origin match is case-insensitive",
			allowedOrigins: []string{"https://App.Example.com"},
			origin:         "https://app.example.com",
			wantAllow:      "https://app.example.com",
			wantVary:       true,
		},
		{
			name:           "wildcard allows any origin",
			allowedOrigins: []string{"*"},
			origin:         "https://elsewhere.example.com",
			wantAllow:      "*",
		},
		{
			name:           "unlisted origin gets no allow header",
			allowedOrigins: []string{"https://app.example.com"},
			origin:         "https://evil.example.com",
		},
		{
			name:           "same-origin request gets no allow header",
			allowedOrigins: []string{"https://app.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := CORSMiddleware(tt.allowedOrigins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantAllow, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantVary {
				assert.Contains(t, rec.Header().Values("Vary"), "Origin")
			}
			assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	handlerCalled := false
	handler := CORSMiddleware([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/lessons/search", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, handlerCalled)
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}
