package middlewares

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestSizeLimitMiddleware(t *testing.T) {
	t.Run("body under the cap passes through", func(t *testing.T) {
		var got string
		handler := RequestSizeLimitMiddleware(64)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			got = string(body)
		}))

		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"q":"heaps"}`))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `{"q":"heaps"}`, got)
	})

	t.Run("declared length over the cap is rejected before any read", func(t *testing.T) {
		handlerCalled := false
		handler := RequestSizeLimitMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		}))

		req := httptest.NewRequest("POST", "/", strings.NewReader(strings.Repeat("x", 64)))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.False(t, handlerCalled)
		assert.JSONEq(t, `{"error":"request body too large"}`, rec.Body.String())
	})

	t.Run("chunked body over the cap fails on read", func(t *testing.T) {
		var readErr error
		handler := RequestSizeLimitMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, readErr = io.ReadAll(r.Body)
		}))

		req := httptest.NewRequest("POST", "/", strings.NewReader(strings.Repeat("x", 64)))
		req.ContentLength = -1
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Error(t, readErr)
	})

	t.Run("non-positive cap disables the limit", func(t *testing.T) {
		handler := RequestSizeLimitMiddleware(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			assert.Len(t, body, 1024)
		}))

		req := httptest.NewRequest("POST", "/", strings.NewReader(strings.Repeat("x", 1024)))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
