package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/interviewprep/backend/internal/models"
	"go.uber.org/zap"
)

// topicRepository provides data access for the topics table
type topicRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTopicRepository creates a new topic repository
func NewTopicRepository(db *sql.DB, logger *zap.Logger) *topicRepository {
	return &topicRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new topic.
// Returns models.ErrConflict if the slug is already taken.
func (r *topicRepository) Create(ctx context.Context, topic *models.Topic) error {
	query := `
		INSERT INTO topics (slug, category_id, name, description, difficulty, estimated_minutes, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		topic.Slug,
		topic.CategoryID,
		topic.Name,
		topic.Description,
		topic.Difficulty,
		topic.EstimatedMinutes,
		topic.Position,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return fmt.Errorf("topic slug already exists: %w", models.ErrConflict)
		}
		r.logger.Error("failed to create topic", zap.Error(err))
		return fmt.Errorf("failed to create topic: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	topic.ID = int(id)
	return nil
}

// GetAll retrieves topics in position order, each with its lesson count.
// When categorySlug is non-empty only that category's topics are returned.
// When userID is non-zero each topic carries the user's progress percentage
// (completed lessons / total lessons * 100, 0 when the topic has no lessons).
func (r *topicRepository) GetAll(ctx context.Context, categorySlug string, userID int) ([]models.TopicListItem, error) {
	query := `
		SELECT t.id, t.slug, c.slug, t.name, COALESCE(t.description, ''),
		       t.difficulty, t.estimated_minutes, t.position,
		       COUNT(DISTINCT l.id) AS lesson_count,
		       COUNT(DISTINCT CASE WHEN lp.status = 'completed' THEN l.id END) AS completed_count
		FROM topics t
		JOIN categories c ON c.id = t.category_id
		LEFT JOIN lessons l ON l.topic_id = t.id
		LEFT JOIN lesson_progress lp ON lp.lesson_id = l.id AND lp.user_id = ?
		WHERE (? = '' OR c.slug = ?)
		GROUP BY t.id, t.slug, c.slug, t.name, t.description, t.difficulty, t.estimated_minutes, t.position
		ORDER BY t.position, t.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID, categorySlug, categorySlug)
	if err != nil {
		r.logger.Error("failed to get topics", zap.Error(err))
		return nil, fmt.Errorf("failed to get topics: %w", err)
	}
	defer rows.Close()

	topics := []models.TopicListItem{}
	for rows.Next() {
		var t models.TopicListItem
		var completed int
		if err := rows.Scan(
			&t.ID, &t.Slug, &t.CategorySlug, &t.Name, &t.Description,
			&t.Difficulty, &t.EstimatedMinutes, &t.Position,
			&t.LessonCount, &completed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		if userID != 0 {
			pct := 0.0
			if t.LessonCount > 0 {
				pct = float64(completed) / float64(t.LessonCount) * 100
			}
			t.ProgressPercentage = &pct
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate topics: %w", err)
	}

	return topics, nil
}

// GetBySlug retrieves a topic by slug
func (r *topicRepository) GetBySlug(ctx context.Context, slug string) (*models.Topic, error) {
	query := `
		SELECT id, slug, category_id, name, COALESCE(description, ''), difficulty, estimated_minutes, position
		FROM topics
		WHERE slug = ?
	`

	topic := &models.Topic{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&topic.ID,
		&topic.Slug,
		&topic.CategoryID,
		&topic.Name,
		&topic.Description,
		&topic.Difficulty,
		&topic.EstimatedMinutes,
		&topic.Position,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("topic not found: %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get topic by slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("failed to get topic by slug: %w", err)
	}

	return topic, nil
}

// GetLessonSummaries retrieves summary-level lessons for a topic in position
// order, each with its code example and quiz question counts aggregated in
// the same query.
func (r *topicRepository) GetLessonSummaries(ctx context.Context, topicID int) ([]models.LessonSummary, error) {
	query := `
		SELECT l.id, l.slug, l.title, COALESCE(l.summary, ''),
		       l.difficulty, l.estimated_minutes, l.position,
		       COUNT(DISTINCT ce.id) AS code_example_count,
		       COUNT(DISTINCT qq.id) AS quiz_question_count
		FROM lessons l
		LEFT JOIN code_examples ce ON ce.lesson_id = l.id
		LEFT JOIN quiz_questions qq ON qq.lesson_id = l.id
		WHERE l.topic_id = ?
		GROUP BY l.id, l.slug, l.title, l.summary, l.difficulty, l.estimated_minutes, l.position
		ORDER BY l.position, l.id
	`

	rows, err := r.db.QueryContext(ctx, query, topicID)
	if err != nil {
		r.logger.Error("failed to get lesson summaries", zap.Error(err), zap.Int("topic_id", topicID))
		return nil, fmt.Errorf("failed to get lesson summaries: %w", err)
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
			return nil, fmt.Errorf("failed to scan lesson summary: %w", err)
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lesson summaries: %w", err)
	}

	return lessons, nil
}

// NextPosition returns max sibling position + 1 within a category
func (r *topicRepository) NextPosition(ctx context.Context, categoryID int) (int, error) {
	query := `SELECT COALESCE(MAX(position), 0) + 1 FROM topics WHERE category_id = ?`

	var position int
	if err := r.db.QueryRowContext(ctx, query, categoryID).Scan(&position); err != nil {
		return 0, fmt.Errorf("failed to get next topic position: %w", err)
	}

	return position, nil
}
