package services

import (
	"context"
	"fmt"

	"github.com/interviewprep/backend/internal/models"
)

// CategoryRepository defines methods for category data access
type CategoryRepository interface {
	// Create inserts a new category.
	//
	// Returns models.ErrConflict if the slug is already taken.
	Create(ctx context.Context, category *models.Category) error
	// GetAllWithCounts retrieves all categories in position order with
	// topic and lesson counts.
	GetAllWithCounts(ctx context.Context) ([]models.CategoryListItem, error)
	// GetBySlug retrieves a category by slug.
	//
	// Returns models.ErrNotFound if no category has the slug.
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	// NextPosition returns max sibling position + 1.
	NextPosition(ctx context.Context) (int, error)
}

// TopicRepository defines methods for topic data access
type TopicRepository interface {
	// Create inserts a new topic.
	//
	// Returns models.ErrConflict if the slug is already taken.
	Create(ctx context.Context, topic *models.Topic) error
	// GetAll retrieves topics in position order with lesson counts.
	// categorySlug filters by category when non-empty; userID, when
	// non-zero, adds the user's per-topic progress percentage.
	GetAll(ctx context.Context, categorySlug string, userID int) ([]models.TopicListItem, error)
	// GetBySlug retrieves a topic by slug.
	//
	// Returns models.ErrNotFound if no topic has the slug.
	GetBySlug(ctx context.Context, slug string) (*models.Topic, error)
	// GetLessonSummaries retrieves summary-level lessons of a topic in
	// position order, with code example and quiz question counts.
	GetLessonSummaries(ctx context.Context, topicID int) ([]models.LessonSummary, error)
	// NextPosition returns max sibling position + 1 within a category.
	NextPosition(ctx context.Context, categoryID int) (int, error)
}

// LessonRepository defines methods for lesson data access
type LessonRepository interface {
	// Create inserts a new lesson.
	//
	// Returns models.ErrConflict if the slug is already taken.
	Create(ctx context.Context, lesson *models.Lesson) error
	// GetBySlug retrieves a full lesson by slug.
	//
	// Returns models.ErrNotFound if no lesson has the slug.
	GetBySlug(ctx context.Context, slug string) (*models.Lesson, error)
	// GetNavigation returns previous/next pointers within the topic.
	GetNavigation(ctx context.Context, topicID, position, lessonID int) (*models.LessonNavigation, error)
	// GetCodeExamples retrieves a lesson's code examples in position order.
	GetCodeExamples(ctx context.Context, lessonID int) ([]models.CodeExample, error)
	// Search retrieves lesson summaries matching the query text.
	Search(ctx context.Context, q string, limit int) ([]models.LessonSummary, error)
	// NextPosition returns max sibling position + 1 within a topic.
	NextPosition(ctx context.Context, topicID int) (int, error)
}

// QuizQuestionRepository defines the question reads the content service needs
type QuizQuestionRepository interface {
	// GetQuestionsByLessonID retrieves a lesson's questions in position order.
	GetQuestionsByLessonID(ctx context.Context, lessonID int) ([]models.QuizQuestion, error)
}

// ProgressReader defines the progress read the content service needs for
// user-conditional lesson responses
type ProgressReader interface {
	// GetByUserAndLesson retrieves the progress row for a (user, lesson) pair.
	//
	// Returns models.ErrNotFound when the user has not touched the lesson.
	GetByUserAndLesson(ctx context.Context, userID, lessonID int) (*models.LessonProgress, error)
}

// contentService implements read/write operations on the content hierarchy
type contentService struct {
	categoryRepo CategoryRepository
	topicRepo    TopicRepository
	lessonRepo   LessonRepository
	quizRepo     QuizQuestionRepository
	progressRepo ProgressReader
}

// NewContentService creates a new content service
func NewContentService(
	categoryRepo CategoryRepository,
	topicRepo TopicRepository,
	lessonRepo LessonRepository,
	quizRepo QuizQuestionRepository,
	progressRepo ProgressReader,
) *contentService {
	return &contentService{
		categoryRepo: categoryRepo,
		topicRepo:    topicRepo,
		lessonRepo:   lessonRepo,
		quizRepo:     quizRepo,
		progressRepo: progressRepo,
	}
}

// searchLimit caps lesson search results
const searchLimit = 25

// ListCategories returns all categories in position order with counts
func (s *contentService) ListCategories(ctx context.Context) ([]models.CategoryListItem, error) {
	return s.categoryRepo.GetAllWithCounts(ctx)
}

// GetCategory returns one category with its topics. userID may be zero for
// anonymous requests; progress percentages are then omitted.
func (s *contentService) GetCategory(ctx context.Context, slug string, userID int) (*models.Category, []models.TopicListItem, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get category: %w", err)
	}

	topics, err := s.topicRepo.GetAll(ctx, slug, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get topics: %w", err)
	}

	return category, topics, nil
}

// ListTopics returns topics in position order, optionally filtered by
// category slug. A non-empty unknown category slug yields not-found.
func (s *contentService) ListTopics(ctx context.Context, categorySlug string, userID int) ([]models.TopicListItem, error) {
	if categorySlug != "" {
		if _, err := s.categoryRepo.GetBySlug(ctx, categorySlug); err != nil {
			return nil, fmt.Errorf("failed to get category: %w", err)
		}
	}

	return s.topicRepo.GetAll(ctx, categorySlug, userID)
}

// GetTopic returns one topic with its ordered lesson summaries
func (s *contentService) GetTopic(ctx context.Context, slug string) (*models.Topic, []models.LessonSummary, error) {
	topic, err := s.topicRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get topic: %w", err)
	}

	lessons, err := s.topicRepo.GetLessonSummaries(ctx, topic.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get lessons: %w", err)
	}

	return topic, lessons, nil
}

// GetLesson returns the full lesson read payload: content and key points,
// ordered code examples, quiz questions with the correct answer and
// explanation stripped, previous/next navigation, and — when userID is
// non-zero — the user's progress row.
func (s *contentService) GetLesson(ctx context.Context, slug string, userID int) (*models.LessonDetailResponse, error) {
	lesson, err := s.lessonRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	examples, err := s.lessonRepo.GetCodeExamples(ctx, lesson.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get code examples: %w", err)
	}

	questions, err := s.quizRepo.GetQuestionsByLessonID(ctx, lesson.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz questions: %w", err)
	}

	// Redact in one place rather than deleting fields per endpoint
	public := make([]models.QuizQuestionPublic, len(questions))
	for i := range questions {
		public[i] = questions[i].Public()
	}

	nav, err := s.lessonRepo.GetNavigation(ctx, lesson.TopicID, lesson.Position, lesson.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get navigation: %w", err)
	}

	resp := &models.LessonDetailResponse{
		Lesson:        lesson,
		CodeExamples:  examples,
		QuizQuestions: public,
		Navigation:    nav,
	}

	if userID != 0 {
		progress, err := s.progressRepo.GetByUserAndLesson(ctx, userID, lesson.ID)
		if err == nil {
			progress.UserID = 0
			resp.Progress = progress
		} else if !isNotFound(err) {
			return nil, fmt.Errorf("failed to get lesson progress: %w", err)
		}
	}

	return resp, nil
}

// SearchLessons returns lesson summaries matching q
func (s *contentService) SearchLessons(ctx context.Context, q string) ([]models.LessonSummary, error) {
	if q == "" {
		return []models.LessonSummary{}, nil
	}
	return s.lessonRepo.Search(ctx, q, searchLimit)
}

// CreateCategory inserts a category. The slug is derived from the name when
// not supplied; position defaults to max sibling + 1.
func (s *contentService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}
	if slug == "" {
		return nil, fmt.Errorf("category name yields an empty slug: %w", models.ErrInvalidInput)
	}

	position := 0
	if req.Position != nil {
		if *req.Position < 0 {
			return nil, fmt.Errorf("position must not be negative: %w", models.ErrInvalidInput)
		}
		position = *req.Position
	} else {
		next, err := s.categoryRepo.NextPosition(ctx)
		if err != nil {
			return nil, err
		}
		position = next
	}

	category := &models.Category{
		Slug:        slug,
		Name:        req.Name,
		Description: req.Description,
		Position:    position,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// CreateTopic inserts a topic under the category named by slug
func (s *contentService) CreateTopic(ctx context.Context, req *models.CreateTopicRequest) (*models.Topic, error) {
	if !req.Difficulty.Valid() {
		return nil, fmt.Errorf("unknown difficulty %q: %w", req.Difficulty, models.ErrInvalidInput)
	}

	category, err := s.categoryRepo.GetBySlug(ctx, req.CategorySlug)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("category %q does not exist: %w", req.CategorySlug, models.ErrInvalidInput)
		}
		return nil, err
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}
	if slug == "" {
		return nil, fmt.Errorf("topic name yields an empty slug: %w", models.ErrInvalidInput)
	}

	position := 0
	if req.Position != nil {
		if *req.Position < 0 {
			return nil, fmt.Errorf("position must not be negative: %w", models.ErrInvalidInput)
		}
		position = *req.Position
	} else {
		next, err := s.topicRepo.NextPosition(ctx, category.ID)
		if err != nil {
			return nil, err
		}
		position = next
	}

	topic := &models.Topic{
		Slug:             slug,
		CategoryID:       category.ID,
		Name:             req.Name,
		Description:      req.Description,
		Difficulty:       req.Difficulty,
		EstimatedMinutes: req.EstimatedMinutes,
		Position:         position,
	}
	if err := s.topicRepo.Create(ctx, topic); err != nil {
		return nil, err
	}

	return topic, nil
}

// CreateLesson inserts a lesson under the topic named by slug
func (s *contentService) CreateLesson(ctx context.Context, req *models.CreateLessonRequest) (*models.Lesson, error) {
	if !req.Difficulty.Valid() {
		return nil, fmt.Errorf("unknown difficulty %q: %w", req.Difficulty, models.ErrInvalidInput)
	}

	topic, err := s.topicRepo.GetBySlug(ctx, req.TopicSlug)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("topic %q does not exist: %w", req.TopicSlug, models.ErrInvalidInput)
		}
		return nil, err
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Title)
	}
	if slug == "" {
		return nil, fmt.Errorf("lesson title yields an empty slug: %w", models.ErrInvalidInput)
	}

	position := 0
	if req.Position != nil {
		if *req.Position < 0 {
			return nil, fmt.Errorf("position must not be negative: %w", models.ErrInvalidInput)
		}
		position = *req.Position
	} else {
		next, err := s.lessonRepo.NextPosition(ctx, topic.ID)
		if err != nil {
			return nil, err
		}
		position = next
	}

	keyPoints := req.KeyPoints
	if keyPoints == nil {
		keyPoints = []string{}
	}

	lesson := &models.Lesson{
		Slug:             slug,
		TopicID:          topic.ID,
		Title:            req.Title,
		Content:          req.Content,
		Summary:          req.Summary,
		Difficulty:       req.Difficulty,
		EstimatedMinutes: req.EstimatedMinutes,
		Position:         position,
		KeyPoints:        keyPoints,
	}
	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}

	return lesson, nil
}
