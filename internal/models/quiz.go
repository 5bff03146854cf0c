package models

import "time"

// QuestionType tags the quiz question variant. The grader is chosen by the
// tag; only multiple_choice content is seeded today, the other variants are
// graded by normalization + equality.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeTrueFalse      QuestionType = "true_false"
	QuestionTypeShortAnswer    QuestionType = "short_answer"
)

// Valid reports whether qt is a known question type
func (qt QuestionType) Valid() bool {
	switch qt {
	case QuestionTypeMultipleChoice, QuestionTypeTrueFalse, QuestionTypeShortAnswer:
		return true
	}
	return false
}

// QuizQuestion represents a quiz question with its correct answer.
// This shape never leaves the quiz service; lesson reads use QuizQuestionPublic.
type QuizQuestion struct {
	ID            int          `json:"id"`
	LessonID      int          `json:"lessonId"`
	Question      string       `json:"question"`
	QuestionType  QuestionType `json:"questionType"`
	Choices       []string     `json:"choices"`
	CorrectAnswer string       `json:"correctAnswer"`
	Explanation   string       `json:"explanation"`
	Difficulty    Difficulty   `json:"difficulty"`
	Points        int          `json:"points"`
	Position      int          `json:"position"`
}

// QuizQuestionPublic is the redacted question shape used by lesson reads.
// It deliberately has no correct-answer or explanation fields.
type QuizQuestionPublic struct {
	ID           int          `json:"id"`
	Question     string       `json:"question"`
	QuestionType QuestionType `json:"questionType"`
	Choices      []string     `json:"choices"`
	Difficulty   Difficulty   `json:"difficulty"`
	Points       int          `json:"points"`
	Position     int          `json:"position"`
}

// Public returns the redacted shape of q
func (q *QuizQuestion) Public() QuizQuestionPublic {
	return QuizQuestionPublic{
		ID:           q.ID,
		Question:     q.Question,
		QuestionType: q.QuestionType,
		Choices:      q.Choices,
		Difficulty:   q.Difficulty,
		Points:       q.Points,
		Position:     q.Position,
	}
}

// QuizAttempt represents one recorded answer submission. Rows are append-only.
type QuizAttempt struct {
	ID           int       `json:"id"`
	UserID       int       `json:"userId"`
	QuestionID   int       `json:"questionId"`
	Answer       string    `json:"answer"`
	IsCorrect    bool      `json:"isCorrect"`
	PointsEarned int       `json:"pointsEarned"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// SubmitAnswerRequest represents a quiz submission
type SubmitAnswerRequest struct {
	QuestionID int    `json:"questionId" validate:"required,gt=0"`
	Answer     string `json:"answer" validate:"required"`
}

// SubmitAnswerResponse is the grading feedback. The correct answer and
// explanation are always included, regardless of correctness.
type SubmitAnswerResponse struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
	PointsEarned  int    `json:"pointsEarned"`
}

// QuizStats aggregates a user's quiz activity. TotalAttempts counts every
// recorded submission; TotalPoints and CorrectRate consider only the most
// recent attempt per question (the canonical score).
type QuizStats struct {
	TotalAttempts      int     `json:"totalAttempts"`
	QuestionsAttempted int     `json:"questionsAttempted"`
	TotalPoints        int     `json:"totalPoints"`
	CorrectRate        float64 `json:"correctRate"`
}
