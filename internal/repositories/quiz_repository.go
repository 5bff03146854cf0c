package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/interviewprep/backend/internal/models"
	"go.uber.org/zap"
)

// quizRepository provides data access for the quiz_questions and quiz_attempts tables
type quizRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewQuizRepository creates a new quiz repository
func NewQuizRepository(db *sql.DB, logger *zap.Logger) *quizRepository {
	return &quizRepository{
		db:     db,
		logger: logger,
	}
}

// GetQuestionByID retrieves a question including its correct answer
func (r *quizRepository) GetQuestionByID(ctx context.Context, id int) (*models.QuizQuestion, error) {
	query := `
		SELECT id, lesson_id, question, question_type, choices, correct_answer,
		       COALESCE(explanation, ''), difficulty, points, position
		FROM quiz_questions
		WHERE id = ?
	`

	q := &models.QuizQuestion{}
	var choices []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&q.ID,
		&q.LessonID,
		&q.Question,
		&q.QuestionType,
		&choices,
		&q.CorrectAnswer,
		&q.Explanation,
		&q.Difficulty,
		&q.Points,
		&q.Position,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("question not found: %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get question by id", zap.Error(err), zap.Int("question_id", id))
		return nil, fmt.Errorf("failed to get question by id: %w", err)
	}

	q.Choices = []string{}
	if len(choices) > 0 {
		if err := json.Unmarshal(choices, &q.Choices); err != nil {
			return nil, fmt.Errorf("failed to unmarshal choices: %w", err)
		}
	}

	return q, nil
}

// GetQuestionsByLessonID retrieves all questions of a lesson in position
// order, including correct answers. Callers serving lesson reads must use
// the Public shape.
func (r *quizRepository) GetQuestionsByLessonID(ctx context.Context, lessonID int) ([]models.QuizQuestion, error) {
	query := `
		SELECT id, lesson_id, question, question_type, choices, correct_answer,
		       COALESCE(explanation, ''), difficulty, points, position
		FROM quiz_questions
		WHERE lesson_id = ?
		ORDER BY position, id
	`

	rows, err := r.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		r.logger.Error("failed to get questions", zap.Error(err), zap.Int("lesson_id", lessonID))
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	defer rows.Close()

	questions := []models.QuizQuestion{}
	for rows.Next() {
		var q models.QuizQuestion
		var choices []byte
		if err := rows.Scan(
			&q.ID, &q.LessonID, &q.Question, &q.QuestionType, &choices,
			&q.CorrectAnswer, &q.Explanation, &q.Difficulty, &q.Points, &q.Position,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		q.Choices = []string{}
		if len(choices) > 0 {
			if err := json.Unmarshal(choices, &q.Choices); err != nil {
				return nil, fmt.Errorf("failed to unmarshal choices: %w", err)
			}
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions: %w", err)
	}

	return questions, nil
}

// CreateQuestion inserts a new quiz question for a lesson
func (r *quizRepository) CreateQuestion(ctx context.Context, question *models.QuizQuestion) error {
	choices, err := json.Marshal(question.Choices)
	if err != nil {
		return fmt.Errorf("failed to marshal choices: %w", err)
	}

	query := `
		INSERT INTO quiz_questions (lesson_id, question, question_type, choices, correct_answer, explanation, difficulty, points, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		question.LessonID,
		question.Question,
		question.QuestionType,
		choices,
		question.CorrectAnswer,
		question.Explanation,
		question.Difficulty,
		question.Points,
		question.Position,
	)
	if err != nil {
		r.logger.Error("failed to create question", zap.Error(err))
		return fmt.Errorf("failed to create question: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	question.ID = int(id)
	return nil
}

// CreateAttempt appends a quiz attempt row. Attempts are immutable; retakes
// append new rows.
func (r *quizRepository) CreateAttempt(ctx context.Context, attempt *models.QuizAttempt) error {
	query := `
		INSERT INTO quiz_attempts (user_id, question_id, answer, is_correct, points_earned, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		attempt.UserID,
		attempt.QuestionID,
		attempt.Answer,
		attempt.IsCorrect,
		attempt.PointsEarned,
		attempt.SubmittedAt,
	)
	if err != nil {
		r.logger.Error("failed to create attempt", zap.Error(err))
		return fmt.Errorf("failed to create attempt: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	attempt.ID = int(id)
	return nil
}

// GetAttemptsByLesson retrieves a user's attempts on all questions of a
// lesson, newest first
func (r *quizRepository) GetAttemptsByLesson(ctx context.Context, userID, lessonID int) ([]models.QuizAttempt, error) {
	query := `
		SELECT qa.id, qa.user_id, qa.question_id, qa.answer, qa.is_correct, qa.points_earned, qa.submitted_at
		FROM quiz_attempts qa
		JOIN quiz_questions qq ON qq.id = qa.question_id
		WHERE qa.user_id = ? AND qq.lesson_id = ?
		ORDER BY qa.submitted_at DESC, qa.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, lessonID)
	if err != nil {
		r.logger.Error("failed to get attempts", zap.Error(err), zap.Int("lesson_id", lessonID))
		return nil, fmt.Errorf("failed to get attempts: %w", err)
	}
	defer rows.Close()

	attempts := []models.QuizAttempt{}
	for rows.Next() {
		var a models.QuizAttempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuestionID, &a.Answer, &a.IsCorrect, &a.PointsEarned, &a.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attempts: %w", err)
	}

	return attempts, nil
}

// GetUserStats aggregates a user's quiz activity in a single query.
// totalAttempts counts every recorded submission; totalPoints and
// correctRate consider only the most recent attempt per question, ties on
// submitted_at broken by attempt id.
func (r *quizRepository) GetUserStats(ctx context.Context, userID int) (*models.QuizStats, error) {
	query := `
		SELECT COALESCE(SUM(cnt), 0) AS total_attempts,
		       COUNT(*) AS questions_attempted,
		       COALESCE(SUM(points_earned), 0) AS total_points,
		       COALESCE(SUM(is_correct), 0) AS correct_latest
		FROM (
			SELECT qa.question_id, qa.points_earned, qa.is_correct,
			       COUNT(*) OVER (PARTITION BY qa.question_id) AS cnt,
			       ROW_NUMBER() OVER (PARTITION BY qa.question_id ORDER BY qa.submitted_at DESC, qa.id DESC) AS rn
			FROM quiz_attempts qa
			WHERE qa.user_id = ?
		) latest
		WHERE latest.rn = 1
	`

	stats := &models.QuizStats{}
	var correctLatest int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.TotalAttempts,
		&stats.QuestionsAttempted,
		&stats.TotalPoints,
		&correctLatest,
	)
	if err != nil {
		r.logger.Error("failed to get user stats", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}

	if stats.QuestionsAttempted > 0 {
		stats.CorrectRate = float64(correctLatest) / float64(stats.QuestionsAttempted)
	}

	return stats, nil
}
