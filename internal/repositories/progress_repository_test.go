package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/interviewprep/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupProgressTestRepository creates a progress repository with a mock database
func setupProgressTestRepository(t *testing.T) (*progressRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewProgressRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestProgressRepository_Upsert(t *testing.T) {
	progress := &models.LessonProgress{
		UserID:             1,
		LessonID:           2,
		Status:             models.StatusInProgress,
		ProgressPercentage: 40,
	}

	t.Run("accumulates the time increment", func(t *testing.T) {
		repo, mock, cleanup := setupProgressTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`INSERT INTO lesson_progress`).
			WithArgs(1, 2, models.StatusInProgress, 40, 15).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Upsert(context.Background(), progress, 15)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero increment binds zero so the total is untouched", func(t *testing.T) {
		repo, mock, cleanup := setupProgressTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`INSERT INTO lesson_progress`).
			WithArgs(1, 2, models.StatusInProgress, 40, 0).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Upsert(context.Background(), progress, 0)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProgressRepository_GetByUserAndLesson(t *testing.T) {
	startedAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2025, 3, 2, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"user_id", "lesson_id", "status", "progress_percentage", "time_spent_minutes", "started_at", "updated_at"}).
					AddRow(1, 2, "in_progress", 40, 55, startedAt, updatedAt)
				mock.ExpectQuery(`SELECT user_id, lesson_id, status`).
					WithArgs(1, 2).
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT user_id, lesson_id, status`).
					WithArgs(1, 2).
					WillReturnRows(sqlmock.NewRows([]string{"user_id", "lesson_id", "status", "progress_percentage", "time_spent_minutes", "started_at", "updated_at"}))
			},
			expectedError: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			progress, err := repo.GetByUserAndLesson(context.Background(), 1, 2)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, models.StatusInProgress, progress.Status)
				assert.Equal(t, 40, progress.ProgressPercentage)
				assert.Equal(t, 55, progress.TimeSpentMinutes)
				require.NotNil(t, progress.StartedAt)
				assert.Equal(t, startedAt, *progress.StartedAt)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProgressRepository_GetCategoryRollup(t *testing.T) {
	repo, mock, cleanup := setupProgressTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "slug", "name", "total_lessons", "completed_lessons"}).
		AddRow(1, "algorithms", "Algorithms", 8, 2).
		AddRow(2, "system-design", "System Design", 0, 0)
	mock.ExpectQuery(`SELECT c.id, c.slug, c.name`).
		WithArgs(1).
		WillReturnRows(rows)

	rollup, err := repo.GetCategoryRollup(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, rollup, 2)
	assert.Equal(t, 8, rollup[0].TotalLessons)
	assert.Equal(t, 2, rollup[0].CompletedLessons)
	assert.InDelta(t, 25.0, rollup[0].ProgressPercentage, 0.001)

	// Empty categories report zero, not a division failure
	assert.Equal(t, 0, rollup[1].TotalLessons)
	assert.Equal(t, 0.0, rollup[1].ProgressPercentage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepository_GetRecentActivity(t *testing.T) {
	repo, mock, cleanup := setupProgressTestRepository(t)
	defer cleanup()

	updatedAt := time.Date(2025, 3, 2, 18, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"lesson_id", "slug", "title", "topic_name", "category_name", "status", "progress_percentage", "updated_at"}).
		AddRow(5, "two-pointers", "Two Pointers", "Arrays", "Algorithms", "completed", 100, updatedAt)
	mock.ExpectQuery(`SELECT lp.lesson_id, l.slug, l.title`).
		WithArgs(1, 10).
		WillReturnRows(rows)

	activity, err := repo.GetRecentActivity(context.Background(), 1, 10)

	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, "two-pointers", activity[0].LessonSlug)
	assert.Equal(t, "Algorithms", activity[0].CategoryName)
	assert.Equal(t, models.StatusCompleted, activity[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
