package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/interviewprep/backend/internal/auth"
	"github.com/interviewprep/backend/internal/models"
	"go.uber.org/zap"
)

// ContentService is the interface that wraps read/write operations on the
// category → topic → lesson hierarchy
type ContentService interface {
	// ListCategories returns all categories in position order with counts.
	ListCategories(ctx context.Context) ([]models.CategoryListItem, error)
	// GetCategory returns one category with its topics. userID may be zero
	// for anonymous requests.
	GetCategory(ctx context.Context, slug string, userID int) (*models.Category, []models.TopicListItem, error)
	// ListTopics returns topics in position order, optionally filtered by
	// category slug.
	ListTopics(ctx context.Context, categorySlug string, userID int) ([]models.TopicListItem, error)
	// GetTopic returns one topic with its ordered lesson summaries.
	GetTopic(ctx context.Context, slug string) (*models.Topic, []models.LessonSummary, error)
	// GetLesson returns the full lesson read payload.
	GetLesson(ctx context.Context, slug string, userID int) (*models.LessonDetailResponse, error)
	// SearchLessons returns lesson summaries matching q.
	SearchLessons(ctx context.Context, q string) ([]models.LessonSummary, error)
	// CreateCategory inserts a category.
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	// CreateTopic inserts a topic under an existing category.
	CreateTopic(ctx context.Context, req *models.CreateTopicRequest) (*models.Topic, error)
	// CreateLesson inserts a lesson under an existing topic.
	CreateLesson(ctx context.Context, req *models.CreateLessonRequest) (*models.Lesson, error)
}

// ContentHandler handles HTTP requests for the content hierarchy
type ContentHandler struct {
	BaseHandler
	service ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(svc ContentService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all content handler routes. Reads are public
// (optionalUser threads the identity when a valid token is present);
// writes require authentication.
func (h *ContentHandler) RegisterRoutes(r chi.Router, requireUser, optionalUser func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(optionalUser)
		r.Get("/categories", h.ListCategories)
		r.Get("/categories/{slug}", h.GetCategory)
		r.Get("/topics", h.ListTopics)
		r.Get("/topics/{slug}", h.GetTopic)
		r.Get("/lessons/search", h.SearchLessons)
		r.Get("/lessons/{slug}", h.GetLesson)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireUser)
		r.Post("/categories", h.CreateCategory)
		r.Post("/topics", h.CreateTopic)
		r.Post("/lessons", h.CreateLesson)
	})
}

// ListCategories handles GET /categories
// @Summary List all categories
// @Tags content
// @Produce json
// @Success 200 {object} map[string]any "Categories in position order"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /categories [get]
func (h *ContentHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// GetCategory handles GET /categories/{slug}
// @Summary Get a category with its topics
// @Tags content
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} map[string]any "Category and its topics"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /categories/{slug} [get]
func (h *ContentHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	userID, _ := auth.GetUserID(r.Context())

	category, topics, err := h.service.GetCategory(r.Context(), slug, userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"topics":   topics,
	})
}

// ListTopics handles GET /topics
// @Summary List topics, optionally filtered by category
// @Tags content
// @Produce json
// @Param category query string false "Category slug filter"
// @Success 200 {object} map[string]any "Topics in position order"
// @Failure 404 {object} map[string]string "Filter category not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /topics [get]
func (h *ContentHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	categorySlug := r.URL.Query().Get("category")
	userID, _ := auth.GetUserID(r.Context())

	topics, err := h.service.ListTopics(r.Context(), categorySlug, userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"topics": topics})
}

// GetTopic handles GET /topics/{slug}
// @Summary Get a topic with its lesson summaries
// @Tags content
// @Produce json
// @Param slug path string true "Topic slug"
// @Success 200 {object} map[string]any "Topic and its lessons"
// @Failure 404 {object} map[string]string "Topic not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /topics/{slug} [get]
func (h *ContentHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	topic, lessons, err := h.service.GetTopic(r.Context(), slug)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"topic":   topic,
		"lessons": lessons,
	})
}

// GetLesson handles GET /lessons/{slug}
// @Summary Get a full lesson with examples, quiz questions, and navigation
// @Tags content
// @Produce json
// @Param slug path string true "Lesson slug"
// @Success 200 {object} models.LessonDetailResponse "Lesson detail"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{slug} [get]
func (h *ContentHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	userID, _ := auth.GetUserID(r.Context())

	lesson, err := h.service.GetLesson(r.Context(), slug, userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// SearchLessons handles GET /lessons/search
// @Summary Search lessons by title and summary
// @Tags content
// @Produce json
// @Param q query string true "Query text"
// @Success 200 {object} map[string]any "Matching lesson summaries"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/search [get]
func (h *ContentHandler) SearchLessons(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	lessons, err := h.service.SearchLessons(r.Context(), q)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"lessons": lessons})
}

// CreateCategory handles POST /categories
// @Summary Create a category
// @Tags content
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateCategoryRequest true "Category payload"
// @Success 201 {object} models.Category "Created category"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Slug already taken"
// @Failure 422 {object} map[string]string "Semantic validation failure"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /categories [post]
func (h *ContentHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCategoryRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	category, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, category)
}

// CreateTopic handles POST /topics
// @Summary Create a topic under a category
// @Tags content
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateTopicRequest true "Topic payload"
// @Success 201 {object} models.Topic "Created topic"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Slug already taken"
// @Failure 422 {object} map[string]string "Semantic validation failure"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /topics [post]
func (h *ContentHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTopicRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	topic, err := h.service.CreateTopic(r.Context(), &req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, topic)
}

// CreateLesson handles POST /lessons
// @Summary Create a lesson under a topic
// @Tags content
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateLessonRequest true "Lesson payload"
// @Success 201 {object} models.Lesson "Created lesson"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Slug already taken"
// @Failure 422 {object} map[string]string "Semantic validation failure"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons [post]
func (h *ContentHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLessonRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	lesson, err := h.service.CreateLesson(r.Context(), &req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, lesson)
}
