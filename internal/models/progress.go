package models

import "time"

// ProgressStatus represents the status of a user's progress on a lesson
type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "not_started"
	StatusInProgress ProgressStatus = "in_progress"
	StatusCompleted  ProgressStatus = "completed"
)

// Valid reports whether s is a known progress status
func (s ProgressStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// LessonProgress represents a user's progress on one lesson.
// Absence of a row is equivalent to not_started with 0% and 0 time.
type LessonProgress struct {
	UserID             int            `json:"userId,omitempty"`
	LessonID           int            `json:"lessonId"`
	Status             ProgressStatus `json:"status"`
	ProgressPercentage int            `json:"progressPercentage"`
	TimeSpentMinutes   int            `json:"timeSpentMinutes"`
	StartedAt          *time.Time     `json:"startedAt,omitempty"`
	UpdatedAt          *time.Time     `json:"updatedAt,omitempty"`
}

// UpsertProgressRequest represents a progress upsert. TimeSpent is an
// increment in minutes added to the accumulated total.
type UpsertProgressRequest struct {
	Status             ProgressStatus `json:"status" validate:"required"`
	ProgressPercentage int            `json:"progressPercentage"`
	TimeSpent          int            `json:"timeSpent"`
}

// CategoryProgress is the per-category roll-up for one user
type CategoryProgress struct {
	CategoryID         int     `json:"categoryId"`
	CategorySlug       string  `json:"categorySlug"`
	CategoryName       string  `json:"categoryName"`
	TotalLessons       int     `json:"totalLessons"`
	CompletedLessons   int     `json:"completedLessons"`
	ProgressPercentage float64 `json:"progressPercentage"`
}

// RecentActivity is one recently updated progress row joined with its
// lesson, topic, and category
type RecentActivity struct {
	LessonID           int            `json:"lessonId"`
	LessonSlug         string         `json:"lessonSlug"`
	LessonTitle        string         `json:"lessonTitle"`
	TopicName          string         `json:"topicName"`
	CategoryName       string         `json:"categoryName"`
	Status             ProgressStatus `json:"status"`
	ProgressPercentage int            `json:"progressPercentage"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

// ProgressOverview is the full overview payload for one user
type ProgressOverview struct {
	CategoryProgress []CategoryProgress `json:"categoryProgress"`
	RecentActivity   []RecentActivity   `json:"recentActivity"`
}
