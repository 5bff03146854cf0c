package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/interviewprep/backend/internal/models"
	"go.uber.org/zap"
)

// QuizService is the interface that wraps answer grading and attempt history
type QuizService interface {
	// SubmitAnswer grades an answer, appends an attempt, and returns feedback
	// including the correct answer and explanation.
	SubmitAnswer(ctx context.Context, userID int, req *models.SubmitAnswerRequest) (*models.SubmitAnswerResponse, error)
	// GetLessonAttempts returns the user's attempts on a lesson's questions,
	// newest first.
	GetLessonAttempts(ctx context.Context, userID, lessonID int) ([]models.QuizAttempt, error)
	// GetUserStats returns the user's aggregate quiz statistics.
	GetUserStats(ctx context.Context, userID int) (*models.QuizStats, error)
}

// QuizHandler handles HTTP requests for quiz submission and history
type QuizHandler struct {
	BaseHandler
	service QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(svc QuizService, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all quiz handler routes. Every route requires
// authentication.
func (h *QuizHandler) RegisterRoutes(r chi.Router, requireUser func(http.Handler) http.Handler) {
	r.Route("/quiz", func(r chi.Router) {
		r.Use(requireUser)
		r.Post("/submit", h.SubmitAnswer)
		r.Get("/stats", h.GetUserStats)
		r.Get("/lesson/{lessonID}", h.GetLessonAttempts)
	})
}

// SubmitAnswer handles POST /quiz/submit
// @Summary Submit an answer to a quiz question
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.SubmitAnswerRequest true "Answer payload"
// @Success 200 {object} models.SubmitAnswerResponse "Grading feedback"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Question not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /quiz/submit [post]
func (h *QuizHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.UserID(w, r)
	if !ok {
		return
	}

	var req models.SubmitAnswerRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.SubmitAnswer(r.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// GetLessonAttempts handles GET /quiz/lesson/{lessonID}
// @Summary List the user's attempts on a lesson's questions
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param lessonID path int true "Lesson ID"
// @Success 200 {object} map[string]any "Attempts, newest first"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /quiz/lesson/{lessonID} [get]
func (h *QuizHandler) GetLessonAttempts(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.UserID(w, r)
	if !ok {
		return
	}

	lessonID, err := strconv.Atoi(chi.URLParam(r, "lessonID"))
	if err != nil || lessonID < 1 {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson ID")
		return
	}

	attempts, err := h.service.GetLessonAttempts(r.Context(), userID, lessonID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"attempts": attempts})
}

// GetUserStats handles GET /quiz/stats
// @Summary Get the user's aggregate quiz statistics
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.QuizStats "Aggregate statistics"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /quiz/stats [get]
func (h *QuizHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.UserID(w, r)
	if !ok {
		return
	}

	stats, err := h.service.GetUserStats(r.Context(), userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, stats)
}
