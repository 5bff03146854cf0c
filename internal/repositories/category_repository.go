package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/interviewprep/backend/internal/models"
	"go.uber.org/zap"
)

// categoryRepository provides data access for the categories table
type categoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB, logger *zap.Logger) *categoryRepository {
	return &categoryRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new category.
// Returns models.ErrConflict if the slug is already taken.
func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (slug, name, description, position)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		category.Slug,
		category.Name,
		category.Description,
		category.Position,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return fmt.Errorf("category slug already exists: %w", models.ErrConflict)
		}
		r.logger.Error("failed to create category", zap.Error(err))
		return fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	category.ID = int(id)
	return nil
}

// GetAllWithCounts retrieves all categories in position order, each
// annotated with its topic and lesson counts. Counts come from a single
// grouped query, not per-category lookups.
func (r *categoryRepository) GetAllWithCounts(ctx context.Context) ([]models.CategoryListItem, error) {
	query := `
		SELECT c.id, c.slug, c.name, COALESCE(c.description, ''), c.position,
		       COUNT(DISTINCT t.id) AS topic_count,
		       COUNT(DISTINCT l.id) AS lesson_count
		FROM categories c
		LEFT JOIN topics t ON t.category_id = c.id
		LEFT JOIN lessons l ON l.topic_id = t.id
		GROUP BY c.id, c.slug, c.name, c.description, c.position
		ORDER BY c.position, c.id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to get categories", zap.Error(err))
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	categories := []models.CategoryListItem{}
	for rows.Next() {
		var c models.CategoryListItem
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &c.Description, &c.Position, &c.TopicCount, &c.LessonCount); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

// GetBySlug retrieves a category by slug
func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := `
		SELECT id, slug, name, COALESCE(description, ''), position
		FROM categories
		WHERE slug = ?
	`

	category := &models.Category{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&category.ID,
		&category.Slug,
		&category.Name,
		&category.Description,
		&category.Position,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("category not found: %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get category by slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}

	return category, nil
}

// Delete removes a category. Topics, lessons, code examples, quiz questions,
// progress rows, and attempts underneath it are removed by the storage-layer
// cascade, not by application code.
func (r *categoryRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete category", zap.Error(err), zap.Int("category_id", id))
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("category not found: %w", models.ErrNotFound)
	}

	return nil
}

// NextPosition returns max sibling position + 1
func (r *categoryRepository) NextPosition(ctx context.Context) (int, error) {
	query := `SELECT COALESCE(MAX(position), 0) + 1 FROM categories`

	var position int
	if err := r.db.QueryRowContext(ctx, query).Scan(&position); err != nil {
		return 0, fmt.Errorf("failed to get next category position: %w", err)
	}

	return position, nil
}
