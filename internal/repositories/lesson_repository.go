package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/interviewprep/backend/internal/models"
	"go.uber.org/zap"
)

// lessonRepository provides data access for the lessons and code_examples tables
type lessonRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB, logger *zap.Logger) *lessonRepository {
	return &lessonRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new lesson.
// Returns models.ErrConflict if the slug is already taken.
func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	keyPoints, err := json.Marshal(lesson.KeyPoints)
	if err != nil {
		return fmt.Errorf("failed to marshal key points: %w", err)
	}

	query := `
		INSERT INTO lessons (slug, topic_id, title, content, summary, difficulty, estimated_minutes, position, key_points)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		lesson.Slug,
		lesson.TopicID,
		lesson.Title,
		lesson.Content,
		lesson.Summary,
		lesson.Difficulty,
		lesson.EstimatedMinutes,
		lesson.Position,
		keyPoints,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return fmt.Errorf("lesson slug already exists: %w", models.ErrConflict)
		}
		r.logger.Error("failed to create lesson", zap.Error(err))
		return fmt.Errorf("failed to create lesson: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	lesson.ID = int(id)
	return nil
}

// GetBySlug retrieves a full lesson by slug
func (r *lessonRepository) GetBySlug(ctx context.Context, slug string) (*models.Lesson, error) {
	query := `
		SELECT id, slug, topic_id, title, COALESCE(content, ''), COALESCE(summary, ''),
		       difficulty, estimated_minutes, position, key_points
		FROM lessons
		WHERE slug = ?
	`

	lesson := &models.Lesson{}
	var keyPoints []byte
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&lesson.ID,
		&lesson.Slug,
		&lesson.TopicID,
		&lesson.Title,
		&lesson.Content,
		&lesson.Summary,
		&lesson.Difficulty,
		&lesson.EstimatedMinutes,
		&lesson.Position,
		&keyPoints,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lesson not found: %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get lesson by slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("failed to get lesson by slug: %w", err)
	}

	lesson.KeyPoints = []string{}
	if len(keyPoints) > 0 {
		if err := json.Unmarshal(keyPoints, &lesson.KeyPoints); err != nil {
			return nil, fmt.Errorf("failed to unmarshal key points: %w", err)
		}
	}

	return lesson, nil
}

// GetByID retrieves a full lesson by ID
func (r *lessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	query := `
		SELECT id, slug, topic_id, title, COALESCE(content, ''), COALESCE(summary, ''),
		       difficulty, estimated_minutes, position, key_points
		FROM lessons
		WHERE id = ?
	`

	lesson := &models.Lesson{}
	var keyPoints []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.Slug,
		&lesson.TopicID,
		&lesson.Title,
		&lesson.Content,
		&lesson.Summary,
		&lesson.Difficulty,
		&lesson.EstimatedMinutes,
		&lesson.Position,
		&keyPoints,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lesson not found: %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get lesson by id", zap.Error(err), zap.Int("lesson_id", id))
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	lesson.KeyPoints = []string{}
	if len(keyPoints) > 0 {
		if err := json.Unmarshal(keyPoints, &lesson.KeyPoints); err != nil {
			return nil, fmt.Errorf("failed to unmarshal key points: %w", err)
		}
	}

	return lesson, nil
}

// GetNavigation returns the previous and next lessons in the same topic.
// Previous is the lesson whose (position, id) sorts immediately below the
// current one, next immediately above; either is nil at the edges.
func (r *lessonRepository) GetNavigation(ctx context.Context, topicID, position, lessonID int) (*models.LessonNavigation, error) {
	nav := &models.LessonNavigation{}

	prevQuery := `
		SELECT slug, title
		FROM lessons
		WHERE topic_id = ? AND (position < ? OR (position = ? AND id < ?))
		ORDER BY position DESC, id DESC
		LIMIT 1
	`
	var prev models.LessonRef
	err := r.db.QueryRowContext(ctx, prevQuery, topicID, position, position, lessonID).Scan(&prev.Slug, &prev.Title)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get previous lesson: %w", err)
	}
	if err == nil {
		nav.Previous = &prev
	}

	nextQuery := `
		SELECT slug, title
		FROM lessons
		WHERE topic_id = ? AND (position > ? OR (position = ? AND id > ?))
		ORDER BY position, id
		LIMIT 1
	`
	var next models.LessonRef
	err = r.db.QueryRowContext(ctx, nextQuery, topicID, position, position, lessonID).Scan(&next.Slug, &next.Title)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get next lesson: %w", err)
	}
	if err == nil {
		nav.Next = &next
	}

	return nav, nil
}

// GetCodeExamples retrieves all code examples for a lesson in position order
func (r *lessonRepository) GetCodeExamples(ctx context.Context, lessonID int) ([]models.CodeExample, error) {
	query := `
		SELECT id, title, COALESCE(description, ''), language, code, COALESCE(explanation, ''), position
		FROM code_examples
		WHERE lesson_id = ?
		ORDER BY position, id
	`

	rows, err := r.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		r.logger.Error("failed to get code examples", zap.Error(err), zap.Int("lesson_id", lessonID))
		return nil, fmt.Errorf("failed to get code examples: %w", err)
	}
	defer rows.Close()

	examples := []models.CodeExample{}
	for rows.Next() {
		var e models.CodeExample
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Language, &e.Code, &e.Explanation, &e.Position); err != nil {
			return nil, fmt.Errorf("failed to scan code example: %w", err)
		}
		examples = append(examples, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate code examples: %w", err)
	}

	return examples, nil
}

// CreateCodeExample inserts a new code example for a lesson
func (r *lessonRepository) CreateCodeExample(ctx context.Context, example *models.CodeExample) error {
	query := `
		INSERT INTO code_examples (lesson_id, title, description, language, code, explanation, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		example.LessonID,
		example.Title,
		example.Description,
		example.Language,
		example.Code,
		example.Explanation,
		example.Position,
	)
	if err != nil {
		r.logger.Error("failed to create code example", zap.Error(err))
		return fmt.Errorf("failed to create code example: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	example.ID = int(id)
	return nil
}

// Search retrieves lesson summaries whose title or summary matches the query
func (r *lessonRepository) Search(ctx context.Context, q string, limit int) ([]models.LessonSummary, error) {
	query := `
		SELECT l.id, l.slug, l.title, COALESCE(l.summary, ''),
		       l.difficulty, l.estimated_minutes, l.position,
		       COUNT(DISTINCT ce.id) AS code_example_count,
		       COUNT(DISTINCT qq.id) AS quiz_question_count
		FROM lessons l
		LEFT JOIN code_examples ce ON ce.lesson_id = l.id
		LEFT JOIN quiz_questions qq ON qq.lesson_id = l.id
		WHERE l.title LIKE ? OR l.summary LIKE ?
		GROUP BY l.id, l.slug, l.title, l.summary, l.difficulty, l.estimated_minutes, l.position
		ORDER BY l.title, l.id
		LIMIT ?
	`

	pattern := "%" + q + "%"
	rows, err := r.db.QueryContext(ctx, query, pattern, pattern, limit)
	if err != nil {
		r.logger.Error("failed to search lessons", zap.Error(err), zap.String("query", q))
		return nil, fmt.Errorf("failed to search lessons: %w", err)
	}
	defer rows.Close()

	lessons := []models.LessonSummary{}
	for rows.Next() {
		var l models.LessonSummary
		if err := rows.Scan(
			&l.ID, &l.Slug, &l.Title, &l.Summary,
			&l.Difficulty, &l.EstimatedMinutes, &l.Position,
			&l.CodeExampleCount, &l.QuizQuestionCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lessons: %w", err)
	}

	return lessons, nil
}

// NextPosition returns max sibling position + 1 within a topic
func (r *lessonRepository) NextPosition(ctx context.Context, topicID int) (int, error) {
	query := `SELECT COALESCE(MAX(position), 0) + 1 FROM lessons WHERE topic_id = ?`

	var position int
	if err := r.db.QueryRowContext(ctx, query, topicID).Scan(&position); err != nil {
		return 0, fmt.Errorf("failed to get next lesson position: %w", err)
	}

	return position, nil
}
