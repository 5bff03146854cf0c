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

// setupQuizTestRepository creates a quiz repository with a mock database
func setupQuizTestRepository(t *testing.T) (*quizRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewQuizRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestQuizRepository_GetQuestionByID(t *testing.T) {
	tests := []struct {
		name          string
		id            int
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		checkQuestion func(*testing.T, *models.QuizQuestion)
	}{
		{
			name: "multiple choice with choices",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "lesson_id", "question", "question_type", "choices", "correct_answer", "explanation", "difficulty", "points", "position"}).
					AddRow(1, 2, "What is O(n log n)?", "multiple_choice", `["merge sort","bubble sort"]`, "merge sort", "Merge sort divides and merges.", "intermediate", 10, 1)
				mock.ExpectQuery(`SELECT id, lesson_id, question`).
					WithArgs(1).
					WillReturnRows(rows)
			},
			checkQuestion: func(t *testing.T, q *models.QuizQuestion) {
				assert.Equal(t, models.QuestionTypeMultipleChoice, q.QuestionType)
				assert.Equal(t, []string{"merge sort", "bubble sort"}, q.Choices)
				assert.Equal(t, "merge sort", q.CorrectAnswer)
			},
		},
		{
			name: "short answer with empty choices column",
			id:   2,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "lesson_id", "question", "question_type", "choices", "correct_answer", "explanation", "difficulty", "points", "position"}).
					AddRow(2, 2, "Name the sender-side close rule", "short_answer", []byte(nil), "the sender", "", "intermediate", 5, 2)
				mock.ExpectQuery(`SELECT id, lesson_id, question`).
					WithArgs(2).
					WillReturnRows(rows)
			},
			checkQuestion: func(t *testing.T, q *models.QuizQuestion) {
				assert.Equal(t, models.QuestionTypeShortAnswer, q.QuestionType)
				assert.Equal(t, []string{}, q.Choices)
			},
		},
		{
			name: "not found",
			id:   99,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, lesson_id, question`).
					WithArgs(99).
					WillReturnRows(sqlmock.NewRows([]string{"id", "lesson_id", "question", "question_type", "choices", "correct_answer", "explanation", "difficulty", "points", "position"}))
			},
			expectedError: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupQuizTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			question, err := repo.GetQuestionByID(context.Background(), tt.id)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				tt.checkQuestion(t, question)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestQuizRepository_CreateAttempt(t *testing.T) {
	repo, mock, cleanup := setupQuizTestRepository(t)
	defer cleanup()

	submittedAt := time.Date(2025, 3, 2, 18, 30, 0, 0, time.UTC)
	attempt := &models.QuizAttempt{
		UserID:       1,
		QuestionID:   2,
		Answer:       "merge sort",
		IsCorrect:    true,
		PointsEarned: 10,
		SubmittedAt:  submittedAt,
	}

	mock.ExpectExec(`INSERT INTO quiz_attempts`).
		WithArgs(1, 2, "merge sort", true, 10, submittedAt).
		WillReturnResult(sqlmock.NewResult(42, 1))

	err := repo.CreateAttempt(context.Background(), attempt)

	require.NoError(t, err)
	assert.Equal(t, 42, attempt.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepository_GetAttemptsByLesson(t *testing.T) {
	repo, mock, cleanup := setupQuizTestRepository(t)
	defer cleanup()

	later := time.Date(2025, 3, 2, 18, 30, 0, 0, time.UTC)
	earlier := later.Add(-time.Hour)
	rows := sqlmock.NewRows([]string{"id", "user_id", "question_id", "answer", "is_correct", "points_earned", "submitted_at"}).
		AddRow(2, 1, 5, "merge sort", true, 10, later).
		AddRow(1, 1, 5, "bubble sort", false, 0, earlier)
	mock.ExpectQuery(`SELECT qa.id, qa.user_id, qa.question_id`).
		WithArgs(1, 3).
		WillReturnRows(rows)

	attempts, err := repo.GetAttemptsByLesson(context.Background(), 1, 3)

	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.True(t, attempts[0].SubmittedAt.After(attempts[1].SubmittedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepository_GetUserStats(t *testing.T) {
	t.Run("with attempts", func(t *testing.T) {
		repo, mock, cleanup := setupQuizTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"total_attempts", "questions_attempted", "total_points", "correct_latest"}).
			AddRow(7, 4, 25, 3)
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(cnt\), 0\)`).
			WithArgs(1).
			WillReturnRows(rows)

		stats, err := repo.GetUserStats(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, 7, stats.TotalAttempts)
		assert.Equal(t, 4, stats.QuestionsAttempted)
		assert.Equal(t, 25, stats.TotalPoints)
		assert.InDelta(t, 0.75, stats.CorrectRate, 0.001)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no attempts", func(t *testing.T) {
		repo, mock, cleanup := setupQuizTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"total_attempts", "questions_attempted", "total_points", "correct_latest"}).
			AddRow(0, 0, 0, 0)
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(cnt\), 0\)`).
			WithArgs(1).
			WillReturnRows(rows)

		stats, err := repo.GetUserStats(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalAttempts)
		assert.Equal(t, 0.0, stats.CorrectRate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
