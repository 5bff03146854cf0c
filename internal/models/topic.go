package models

// Difficulty represents the difficulty level of a topic or lesson
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

// Valid reports whether d is a known difficulty level
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert:
		return true
	}
	return false
}

// Topic represents a topic inside a category
type Topic struct {
	ID               int        `json:"id"`
	Slug             string     `json:"slug"`
	CategoryID       int        `json:"categoryId,omitempty"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Difficulty       Difficulty `json:"difficulty"`
	EstimatedMinutes int        `json:"estimatedMinutes"`
	Position         int        `json:"position"`
}

// TopicListItem represents a topic in list responses.
// ProgressPercentage is present only when a user is resolved.
type TopicListItem struct {
	ID                 int        `json:"id"`
	Slug               string     `json:"slug"`
	CategorySlug       string     `json:"categorySlug"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	Difficulty         Difficulty `json:"difficulty"`
	EstimatedMinutes   int        `json:"estimatedMinutes"`
	Position           int        `json:"position"`
	LessonCount        int        `json:"lessonCount"`
	ProgressPercentage *float64   `json:"progressPercentage,omitempty"`
}

// CreateTopicRequest represents a request to create a topic
type CreateTopicRequest struct {
	Slug             string     `json:"slug"`
	CategorySlug     string     `json:"categorySlug" validate:"required"`
	Name             string     `json:"name" validate:"required,max=150"`
	Description      string     `json:"description"`
	Difficulty       Difficulty `json:"difficulty" validate:"required"`
	EstimatedMinutes int        `json:"estimatedMinutes" validate:"gte=0"`
	Position         *int       `json:"position,omitempty"`
}
