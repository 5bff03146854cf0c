package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/interviewprep/backend/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication operations
type AuthService interface {
	// Register creates a new user account and returns a token for it.
	//
	// Returns models.ErrConflict when the username or email is taken and
	// models.ErrInvalidInput on malformed credentials.
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	// Login exchanges credentials for a token.
	//
	// Returns models.ErrUnauthorized on bad credentials.
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	// GetUser returns the user for an already-authenticated identity.
	GetUser(ctx context.Context, userID int) (*models.User, error)
}

// AuthHandler handles HTTP requests for registration, login, and identity echo
type AuthHandler struct {
	BaseHandler
	service AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, requireUser func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Group(func(r chi.Router) {
			r.Use(requireUser)
			r.Get("/me", h.Me)
		})
	})
}

// Register handles POST /auth/register
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration payload"
// @Success 201 {object} models.AuthResponse "Created user with token"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 409 {object} map[string]string "Username or email taken"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, resp)
}

// Login handles POST /auth/login
// @Summary Exchange credentials for a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login payload"
// @Success 200 {object} models.AuthResponse "Token and user"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// Me handles GET /auth/me
// @Summary Identity echo
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]any "Current user"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.UserID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"user": user})
}
