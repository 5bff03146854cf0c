package models

// Category represents a top-level content category
type Category struct {
	ID          int    `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Position    int    `json:"position"`
}

// CategoryListItem represents a category in list responses, annotated with counts
type CategoryListItem struct {
	ID          int    `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Position    int    `json:"position"`
	TopicCount  int    `json:"topicCount"`
	LessonCount int    `json:"lessonCount"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Slug        string `json:"slug"`
	Name        string `json:"name" validate:"required,max=150"`
	Description string `json:"description"`
	Position    *int   `json:"position,omitempty"`
}
