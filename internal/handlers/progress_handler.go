package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/interviewprep/backend/internal/models"
	"go.uber.org/zap"
)

// ProgressService is the interface that wraps per-lesson progress tracking
// and the hierarchical overview
type ProgressService interface {
	// UpsertLessonProgress records a user's progress on a lesson, normalizing
	// status and percentage and accumulating time spent.
	UpsertLessonProgress(ctx context.Context, userID, lessonID int, req *models.UpsertProgressRequest) (*models.LessonProgress, error)
	// GetLessonProgress returns the user's progress row for a lesson, or a
	// synthetic not-started row when no action has been taken.
	GetLessonProgress(ctx context.Context, userID, lessonID int) (*models.LessonProgress, error)
	// GetOverview returns the per-category roll-up and recent activity.
	GetOverview(ctx context.Context, userID int) (*models.ProgressOverview, error)
}

// ProgressHandler handles HTTP requests for lesson progress
type ProgressHandler struct {
	BaseHandler
	service ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(svc ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all progress handler routes. Every route requires
// authentication.
func (h *ProgressHandler) RegisterRoutes(r chi.Router, requireUser func(http.Handler) http.Handler) {
	r.Route("/progress", func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/overview", h.GetOverview)
		r.Get("/lesson/{lessonID}", h.GetLessonProgress)
		r.Post("/lesson/{lessonID}", h.UpsertLessonProgress)
	})
}

// lessonIDParam parses the lessonID path parameter. On failure it writes a
// 400 response and returns false.
func (h *ProgressHandler) lessonIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	lessonID, err := strconv.Atoi(chi.URLParam(r, "lessonID"))
	if err != nil || lessonID < 1 {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson ID")
		return 0, false
	}
	return lessonID, true
}

// UpsertLessonProgress handles POST /progress/lesson/{lessonID}
// @Summary Record progress on a lesson
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lessonID path int true "Lesson ID"
// @Param request body models.UpsertProgressRequest true "Progress payload"
// @Success 200 {object} models.LessonProgress "Stored progress row"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 422 {object} map[string]string "Semantic validation failure"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /progress/lesson/{lessonID} [post]
func (h *ProgressHandler) UpsertLessonProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.UserID(w, r)
	if !ok {
		return
	}

	lessonID, ok := h.lessonIDParam(w, r)
	if !ok {
		return
	}

	var req models.UpsertProgressRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	progress, err := h.service.UpsertLessonProgress(r.Context(), userID, lessonID, &req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

// GetLessonProgress handles GET /progress/lesson/{lessonID}
// @Summary Get progress on a lesson
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param lessonID path int true "Lesson ID"
// @Success 200 {object} models.LessonProgress "Progress row, synthetic when untouched"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /progress/lesson/{lessonID} [get]
func (h *ProgressHandler) GetLessonProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.UserID(w, r)
	if !ok {
		return
	}

	lessonID, ok := h.lessonIDParam(w, r)
	if !ok {
		return
	}

	progress, err := h.service.GetLessonProgress(r.Context(), userID, lessonID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

// GetOverview handles GET /progress/overview
// @Summary Get the per-category roll-up with recent activity
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.ProgressOverview "Roll-up and recent activity"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /progress/overview [get]
func (h *ProgressHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.UserID(w, r)
	if !ok {
		return
	}

	overview, err := h.service.GetOverview(r.Context(), userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, overview)
}
