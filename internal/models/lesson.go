package models

// Lesson represents a full lesson with its long-form content
type Lesson struct {
	ID               int        `json:"id"`
	Slug             string     `json:"slug"`
	TopicID          int        `json:"topicId,omitempty"`
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	Summary          string     `json:"summary"`
	Difficulty       Difficulty `json:"difficulty"`
	EstimatedMinutes int        `json:"estimatedMinutes"`
	Position         int        `json:"position"`
	KeyPoints        []string   `json:"keyPoints"`
}

// LessonSummary represents a lesson in topic responses (no full content)
type LessonSummary struct {
	ID                int        `json:"id"`
	Slug              string     `json:"slug"`
	Title             string     `json:"title"`
	Summary           string     `json:"summary"`
	Difficulty        Difficulty `json:"difficulty"`
	EstimatedMinutes  int        `json:"estimatedMinutes"`
	Position          int        `json:"position"`
	CodeExampleCount  int        `json:"codeExampleCount"`
	QuizQuestionCount int        `json:"quizQuestionCount"`
}

// LessonRef is a navigation pointer to an adjacent lesson in the same topic
type LessonRef struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// LessonNavigation holds previous/next pointers within a topic.
// A pointer is nil when the lesson is first or last.
type LessonNavigation struct {
	Previous *LessonRef `json:"previous"`
	Next     *LessonRef `json:"next"`
}

// CodeExample represents a code example attached to a lesson
type CodeExample struct {
	ID          int    `json:"id"`
	LessonID    int    `json:"lessonId,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Code        string `json:"code"`
	Explanation string `json:"explanation"`
	Position    int    `json:"position"`
}

// CreateLessonRequest represents a request to create a lesson
type CreateLessonRequest struct {
	Slug             string     `json:"slug"`
	TopicSlug        string     `json:"topicSlug" validate:"required"`
	Title            string     `json:"title" validate:"required,max=200"`
	Content          string     `json:"content"`
	Summary          string     `json:"summary"`
	Difficulty       Difficulty `json:"difficulty" validate:"required"`
	EstimatedMinutes int        `json:"estimatedMinutes" validate:"gte=0"`
	Position         *int       `json:"position,omitempty"`
	KeyPoints        []string   `json:"keyPoints"`
}

// LessonDetailResponse is the full lesson-read payload
type LessonDetailResponse struct {
	Lesson        *Lesson              `json:"lesson"`
	CodeExamples  []CodeExample        `json:"codeExamples"`
	QuizQuestions []QuizQuestionPublic `json:"quizQuestions"`
	Navigation    *LessonNavigation    `json:"navigation"`
	Progress      *LessonProgress      `json:"progress,omitempty"`
}
