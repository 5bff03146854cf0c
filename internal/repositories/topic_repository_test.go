package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/interviewprep/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupTopicTestRepository creates a topic repository with a mock database
func setupTopicTestRepository(t *testing.T) (*topicRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewTopicRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func topicListColumns() []string {
	return []string{"id", "slug", "category_slug", "name", "description", "difficulty", "estimated_minutes", "position", "lesson_count", "completed_count"}
}

func TestTopicRepository_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupTopicTestRepository(t)
		defer cleanup()

		topic := &models.Topic{
			Slug:             "arrays",
			CategoryID:       1,
			Name:             "Arrays",
			Difficulty:       models.DifficultyBeginner,
			EstimatedMinutes: 60,
			Position:         1,
		}

		mock.ExpectExec(`INSERT INTO topics`).
			WithArgs("arrays", 1, "Arrays", "", models.DifficultyBeginner, 60, 1).
			WillReturnResult(sqlmock.NewResult(7, 1))

		err := repo.Create(context.Background(), topic)

		require.NoError(t, err)
		assert.Equal(t, 7, topic.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate slug", func(t *testing.T) {
		repo, mock, cleanup := setupTopicTestRepository(t)
		defer cleanup()

		topic := &models.Topic{Slug: "arrays", CategoryID: 1, Name: "Arrays", Difficulty: models.DifficultyBeginner}

		mock.ExpectExec(`INSERT INTO topics`).
			WithArgs("arrays", 1, "Arrays", "", models.DifficultyBeginner, 0, 0).
			WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

		err := repo.Create(context.Background(), topic)

		assert.ErrorIs(t, err, models.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTopicRepository_GetAll(t *testing.T) {
	t.Run("anonymous request omits progress", func(t *testing.T) {
		repo, mock, cleanup := setupTopicTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows(topicListColumns()).
			AddRow(1, "arrays", "algorithms", "Arrays", "", "beginner", 60, 1, 4, 0)
		mock.ExpectQuery(`SELECT t.id, t.slug, c.slug`).
			WithArgs(0, "", "").
			WillReturnRows(rows)

		topics, err := repo.GetAll(context.Background(), "", 0)

		require.NoError(t, err)
		require.Len(t, topics, 1)
		assert.Equal(t, 4, topics[0].LessonCount)
		assert.Nil(t, topics[0].ProgressPercentage)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("authenticated request computes percentage", func(t *testing.T) {
		repo, mock, cleanup := setupTopicTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows(topicListColumns()).
			AddRow(1, "arrays", "algorithms", "Arrays", "", "beginner", 60, 1, 4, 1).
			AddRow(2, "graphs", "algorithms", "Graphs", "", "advanced", 120, 2, 0, 0)
		mock.ExpectQuery(`SELECT t.id, t.slug, c.slug`).
			WithArgs(9, "algorithms", "algorithms").
			WillReturnRows(rows)

		topics, err := repo.GetAll(context.Background(), "algorithms", 9)

		require.NoError(t, err)
		require.Len(t, topics, 2)
		require.NotNil(t, topics[0].ProgressPercentage)
		assert.InDelta(t, 25.0, *topics[0].ProgressPercentage, 0.001)

		// Lesson-less topics report zero rather than dividing by zero
		require.NotNil(t, topics[1].ProgressPercentage)
		assert.Equal(t, 0.0, *topics[1].ProgressPercentage)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTopicRepository_GetBySlug(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock, cleanup := setupTopicTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "slug", "category_id", "name", "description", "difficulty", "estimated_minutes", "position"}).
			AddRow(1, "arrays", 2, "Arrays", "", "beginner", 60, 1)
		mock.ExpectQuery(`SELECT id, slug, category_id`).
			WithArgs("arrays").
			WillReturnRows(rows)

		topic, err := repo.GetBySlug(context.Background(), "arrays")

		require.NoError(t, err)
		assert.Equal(t, 2, topic.CategoryID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupTopicTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT id, slug, category_id`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "category_id", "name", "description", "difficulty", "estimated_minutes", "position"}))

		_, err := repo.GetBySlug(context.Background(), "missing")

		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTopicRepository_GetLessonSummaries(t *testing.T) {
	repo, mock, cleanup := setupTopicTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "slug", "title", "summary", "difficulty", "estimated_minutes", "position", "code_example_count", "quiz_question_count"}).
		AddRow(1, "two-pointers", "Two Pointers", "Short summary", "beginner", 20, 1, 2, 3).
		AddRow(2, "sliding-window", "Sliding Window", "", "intermediate", 30, 2, 0, 0)
	mock.ExpectQuery(`SELECT l.id, l.slug, l.title`).
		WithArgs(3).
		WillReturnRows(rows)

	lessons, err := repo.GetLessonSummaries(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, 2, lessons[0].CodeExampleCount)
	assert.Equal(t, 3, lessons[0].QuizQuestionCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
