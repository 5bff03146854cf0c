package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/interviewprep/backend/internal/auth"
	"github.com/interviewprep/backend/internal/models"
	"go.uber.org/zap"
)

// validate checks request DTO tags at the HTTP boundary
var validate = validator.New()

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// HandleServiceError maps service errors to status codes: not-found 404,
// conflict 409, semantic validation 422, unauthorized 401, everything else
// 500 with a generic message (details go to the log only).
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		h.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrConflict):
		h.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrInvalidInput):
		h.RespondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		h.RespondError(w, http.StatusUnauthorized, err.Error())
	default:
		h.Logger.Error("unexpected service error", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// UserID extracts the authenticated user ID from the request context. The
// identity gate establishes it before any of these handlers run, so a
// missing value is a wiring fault and reported as an internal error.
func (h *BaseHandler) UserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.HandleServiceError(w, errors.New("user ID missing from authenticated request context"))
		return 0, false
	}
	return userID, true
}

// DecodeAndValidate parses a JSON body into dst and checks its validate
// tags. On failure it writes a 400 response and returns false.
func (h *BaseHandler) DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}

	return true
}
