package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/interviewprep/backend/internal/auth"
	"github.com/interviewprep/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBaseHandler_HandleServiceError(t *testing.T) {
	h := &BaseHandler{Logger: zap.NewNop()}

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "not found maps to 404",
			err:            fmt.Errorf("lesson not found: %w", models.ErrNotFound),
			expectedStatus: 404,
			expectedBody:   `{"error":"lesson not found: resource not found"}`,
		},
		{
			name:           "conflict maps to 409",
			err:            fmt.Errorf("category slug already exists: %w", models.ErrConflict),
			expectedStatus: 409,
		},
		{
			name:           "invalid input maps to 422",
			err:            fmt.Errorf("unknown status %q: %w", "paused", models.ErrInvalidInput),
			expectedStatus: 422,
		},
		{
			name:           "unauthorized maps to 401",
			err:            fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized),
			expectedStatus: 401,
		},
		{
			name:           "unknown error maps to opaque 500",
			err:            errors.New("driver: bad connection"),
			expectedStatus: 500,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			h.HandleServiceError(rec, tt.err)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			}
			// Internal details never leak on 500
			if tt.expectedStatus == 500 {
				assert.NotContains(t, rec.Body.String(), "driver")
			}
		})
	}
}

func TestBaseHandler_UserID(t *testing.T) {
	h := &BaseHandler{Logger: zap.NewNop()}

	t.Run("present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req = req.WithContext(auth.WithUserID(req.Context(), 42))
		rec := httptest.NewRecorder()

		userID, ok := h.UserID(rec, req)

		assert.True(t, ok)
		assert.Equal(t, 42, userID)
	})

	t.Run("absent behind the identity gate is an internal error", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		rec := httptest.NewRecorder()

		_, ok := h.UserID(rec, req)

		assert.False(t, ok)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	})
}

func TestBaseHandler_DecodeAndValidate(t *testing.T) {
	h := &BaseHandler{Logger: zap.NewNop()}

	tests := []struct {
		name   string
		body   string
		wantOK bool
		status int
	}{
		{
			name:   "valid payload",
			body:   `{"username":"testuser","email":"test@example.com","password":"secret123"}`,
			wantOK: true,
		},
		{
			name:   "malformed JSON",
			body:   `{"username":`,
			status: 400,
		},
		{
			name:   "failing validate tags",
			body:   `{"username":"ab","email":"not-an-email","password":""}`,
			status: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var dst models.RegisterRequest
			ok := h.DecodeAndValidate(rec, req, &dst)

			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, tt.status, rec.Code)
			}
		})
	}
}
