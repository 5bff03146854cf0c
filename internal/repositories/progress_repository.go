package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/interviewprep/backend/internal/models"
	"go.uber.org/zap"
)

// progressRepository provides data access for the lesson_progress table and
// the hierarchical roll-up queries
type progressRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *sql.DB, logger *zap.Logger) *progressRepository {
	return &progressRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert creates or updates the (user, lesson) progress row. The time-spent
// increment is applied inside the database so concurrent upserts accumulate
// correctly; status and percentage are last-writer-wins. started_at is set
// on first write only, updated_at always refreshes.
func (r *progressRepository) Upsert(ctx context.Context, progress *models.LessonProgress, timeSpentIncrement int) error {
	query := `
		INSERT INTO lesson_progress (user_id, lesson_id, status, progress_percentage, time_spent_minutes)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			status = VALUES(status),
			progress_percentage = VALUES(progress_percentage),
			time_spent_minutes = time_spent_minutes + VALUES(time_spent_minutes),
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.ExecContext(ctx, query,
		progress.UserID,
		progress.LessonID,
		progress.Status,
		progress.ProgressPercentage,
		timeSpentIncrement,
	)
	if err != nil {
		r.logger.Error("failed to upsert progress", zap.Error(err),
			zap.Int("user_id", progress.UserID), zap.Int("lesson_id", progress.LessonID))
		return fmt.Errorf("failed to upsert progress: %w", err)
	}

	return nil
}

// GetByUserAndLesson retrieves the progress row for a (user, lesson) pair.
// Returns models.ErrNotFound when the user has not touched the lesson.
func (r *progressRepository) GetByUserAndLesson(ctx context.Context, userID, lessonID int) (*models.LessonProgress, error) {
	query := `
		SELECT user_id, lesson_id, status, progress_percentage, time_spent_minutes, started_at, updated_at
		FROM lesson_progress
		WHERE user_id = ? AND lesson_id = ?
	`

	p := &models.LessonProgress{}
	err := r.db.QueryRowContext(ctx, query, userID, lessonID).Scan(
		&p.UserID,
		&p.LessonID,
		&p.Status,
		&p.ProgressPercentage,
		&p.TimeSpentMinutes,
		&p.StartedAt,
		&p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("progress not found: %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get progress", zap.Error(err),
			zap.Int("user_id", userID), zap.Int("lesson_id", lessonID))
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	return p, nil
}

// GetCategoryRollup computes per-category totals for a user in one grouped
// query over category ⋈ topic ⋈ lesson ⟕ progress. Categories come back in
// position order; percentage is completed/total*100, 0 for empty categories.
func (r *progressRepository) GetCategoryRollup(ctx context.Context, userID int) ([]models.CategoryProgress, error) {
	query := `
		SELECT c.id, c.slug, c.name,
		       COUNT(DISTINCT l.id) AS total_lessons,
		       COUNT(DISTINCT CASE WHEN lp.status = 'completed' THEN l.id END) AS completed_lessons
		FROM categories c
		LEFT JOIN topics t ON t.category_id = c.id
		LEFT JOIN lessons l ON l.topic_id = t.id
		LEFT JOIN lesson_progress lp ON lp.lesson_id = l.id AND lp.user_id = ?
		GROUP BY c.id, c.slug, c.name, c.position
		ORDER BY c.position, c.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to get category rollup", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to get category rollup: %w", err)
	}
	defer rows.Close()

	rollup := []models.CategoryProgress{}
	for rows.Next() {
		var cp models.CategoryProgress
		if err := rows.Scan(&cp.CategoryID, &cp.CategorySlug, &cp.CategoryName, &cp.TotalLessons, &cp.CompletedLessons); err != nil {
			return nil, fmt.Errorf("failed to scan category rollup: %w", err)
		}
		if cp.TotalLessons > 0 {
			cp.ProgressPercentage = float64(cp.CompletedLessons) / float64(cp.TotalLessons) * 100
		}
		rollup = append(rollup, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category rollup: %w", err)
	}

	return rollup, nil
}

// GetRecentActivity retrieves the user's most recently updated progress rows
// joined with lesson, topic, and category, ordered by updated_at descending
// with lesson id descending as tie-break.
func (r *progressRepository) GetRecentActivity(ctx context.Context, userID, limit int) ([]models.RecentActivity, error) {
	query := `
		SELECT lp.lesson_id, l.slug, l.title, t.name, c.name,
		       lp.status, lp.progress_percentage, lp.updated_at
		FROM lesson_progress lp
		JOIN lessons l ON l.id = lp.lesson_id
		JOIN topics t ON t.id = l.topic_id
		JOIN categories c ON c.id = t.category_id
		WHERE lp.user_id = ?
		ORDER BY lp.updated_at DESC, lp.lesson_id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error("failed to get recent activity", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to get recent activity: %w", err)
	}
	defer rows.Close()

	activity := []models.RecentActivity{}
	for rows.Next() {
		var a models.RecentActivity
		if err := rows.Scan(
			&a.LessonID, &a.LessonSlug, &a.LessonTitle, &a.TopicName, &a.CategoryName,
			&a.Status, &a.ProgressPercentage, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recent activity: %w", err)
		}
		activity = append(activity, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recent activity: %w", err)
	}

	return activity, nil
}
