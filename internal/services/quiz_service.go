package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/interviewprep/backend/internal/models"
)

// QuizRepository defines methods for quiz question and attempt data access
type QuizRepository interface {
	// GetQuestionByID retrieves a question including its correct answer.
	//
	// Returns models.ErrNotFound if no question has the ID.
	GetQuestionByID(ctx context.Context, id int) (*models.QuizQuestion, error)
	// CreateAttempt appends an immutable attempt row.
	CreateAttempt(ctx context.Context, attempt *models.QuizAttempt) error
	// GetAttemptsByLesson retrieves a user's attempts on a lesson's
	// questions, newest first.
	GetAttemptsByLesson(ctx context.Context, userID, lessonID int) ([]models.QuizAttempt, error)
	// GetUserStats aggregates a user's quiz activity. totalAttempts counts
	// every submission; totalPoints and correctRate are computed from the
	// most recent attempt per question only.
	GetUserStats(ctx context.Context, userID int) (*models.QuizStats, error)
}

// QuizLessonRepository defines the lesson read the quiz service needs
type QuizLessonRepository interface {
	// GetByID retrieves a full lesson by ID.
	//
	// Returns models.ErrNotFound if no lesson has the ID.
	GetByID(ctx context.Context, id int) (*models.Lesson, error)
}

// quizService grades submitted answers and records attempts
type quizService struct {
	quizRepo   QuizRepository
	lessonRepo QuizLessonRepository
	now        func() time.Time
}

// NewQuizService creates a new quiz service
func NewQuizService(quizRepo QuizRepository, lessonRepo QuizLessonRepository) *quizService {
	return &quizService{
		quizRepo:   quizRepo,
		lessonRepo: lessonRepo,
		now:        time.Now,
	}
}

// grade compares a submitted answer against the stored correct answer.
// Multiple-choice and true/false answers must match exactly; short answers
// are trimmed and case-folded before comparison.
func grade(question *models.QuizQuestion, answer string) bool {
	switch question.QuestionType {
	case models.QuestionTypeShortAnswer:
		return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(question.CorrectAnswer))
	default:
		return answer == question.CorrectAnswer
	}
}

// SubmitAnswer grades an answer, appends an attempt row, and returns
// feedback. The correct answer and explanation are always included in the
// feedback — this is a learning platform — unlike lesson reads, which strip
// them. Concurrent submissions both append; the later timestamp wins for
// the canonical score.
func (s *quizService) SubmitAnswer(ctx context.Context, userID int, req *models.SubmitAnswerRequest) (*models.SubmitAnswerResponse, error) {
	question, err := s.quizRepo.GetQuestionByID(ctx, req.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	correct := grade(question, req.Answer)
	points := 0
	if correct {
		points = question.Points
	}

	attempt := &models.QuizAttempt{
		UserID:       userID,
		QuestionID:   question.ID,
		Answer:       req.Answer,
		IsCorrect:    correct,
		PointsEarned: points,
		SubmittedAt:  s.now().UTC(),
	}
	if err := s.quizRepo.CreateAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	return &models.SubmitAnswerResponse{
		Correct:       correct,
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
		PointsEarned:  points,
	}, nil
}

// GetLessonAttempts returns the user's attempts on a lesson's questions,
// newest first
func (s *quizService) GetLessonAttempts(ctx context.Context, userID, lessonID int) ([]models.QuizAttempt, error) {
	if _, err := s.lessonRepo.GetByID(ctx, lessonID); err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	return s.quizRepo.GetAttemptsByLesson(ctx, userID, lessonID)
}

// GetUserStats returns the user's aggregate quiz statistics
func (s *quizService) GetUserStats(ctx context.Context, userID int) (*models.QuizStats, error) {
	return s.quizRepo.GetUserStats(ctx, userID)
}
