package services

import (
	"context"
	"fmt"

	"github.com/interviewprep/backend/internal/models"
)

// ProgressRepository defines methods for lesson progress data access
type ProgressRepository interface {
	// Upsert creates or updates the (user, lesson) progress row, applying
	// the time-spent increment atomically inside the database.
	Upsert(ctx context.Context, progress *models.LessonProgress, timeSpentIncrement int) error
	// GetByUserAndLesson retrieves the progress row for a (user, lesson) pair.
	//
	// Returns models.ErrNotFound when the user has not touched the lesson.
	GetByUserAndLesson(ctx context.Context, userID, lessonID int) (*models.LessonProgress, error)
	// GetCategoryRollup computes per-category totals for a user in one
	// grouped query, in category position order.
	GetCategoryRollup(ctx context.Context, userID int) ([]models.CategoryProgress, error)
	// GetRecentActivity retrieves the user's most recently updated progress
	// rows joined with lesson, topic, and category.
	GetRecentActivity(ctx context.Context, userID, limit int) ([]models.RecentActivity, error)
}

// ProgressLessonRepository defines the lesson read the progress service needs
type ProgressLessonRepository interface {
	// GetByID retrieves a full lesson by ID.
	//
	// Returns models.ErrNotFound if no lesson has the ID.
	GetByID(ctx context.Context, id int) (*models.Lesson, error)
}

// progressService maintains per-lesson progress and produces hierarchical roll-ups
type progressService struct {
	progressRepo        ProgressRepository
	lessonRepo          ProgressLessonRepository
	recentActivityLimit int
}

// NewProgressService creates a new progress service. recentActivityLimit
// caps the overview's recent-activity list (default 10 when non-positive).
func NewProgressService(progressRepo ProgressRepository, lessonRepo ProgressLessonRepository, recentActivityLimit int) *progressService {
	if recentActivityLimit <= 0 {
		recentActivityLimit = 10
	}
	return &progressService{
		progressRepo:        progressRepo,
		lessonRepo:          lessonRepo,
		recentActivityLimit: recentActivityLimit,
	}
}

// normalizeProgress reconciles status and percentage so the stored row
// always satisfies: completed ⇔ 100%, not_started ⇒ 0%, in_progress
// strictly between. Illegal combinations are corrected rather than rejected.
func normalizeProgress(status models.ProgressStatus, percentage int) (models.ProgressStatus, int) {
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}

	switch {
	case status == models.StatusCompleted:
		percentage = 100
	case percentage == 100:
		status = models.StatusCompleted
	case status == models.StatusNotStarted && percentage > 0:
		status = models.StatusInProgress
	case status == models.StatusInProgress && percentage == 0:
		// An in-progress row at 0% is indistinguishable from not started;
		// the row still records startedAt.
		status = models.StatusNotStarted
	}

	return status, percentage
}

// UpsertLessonProgress records a user's progress on a lesson. Status and
// percentage are normalized per the invariant; timeSpent is an increment
// added to the accumulated total. Replaying the same payload with a zero
// increment yields the same row.
func (s *progressService) UpsertLessonProgress(ctx context.Context, userID, lessonID int, req *models.UpsertProgressRequest) (*models.LessonProgress, error) {
	if !req.Status.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", req.Status, models.ErrInvalidInput)
	}
	if req.ProgressPercentage < 0 || req.ProgressPercentage > 100 {
		return nil, fmt.Errorf("progress percentage must be between 0 and 100: %w", models.ErrInvalidInput)
	}
	if req.TimeSpent < 0 {
		return nil, fmt.Errorf("time spent must not be negative: %w", models.ErrInvalidInput)
	}

	// The row must not be created for an unknown lesson
	if _, err := s.lessonRepo.GetByID(ctx, lessonID); err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	status, percentage := normalizeProgress(req.Status, req.ProgressPercentage)

	progress := &models.LessonProgress{
		UserID:             userID,
		LessonID:           lessonID,
		Status:             status,
		ProgressPercentage: percentage,
	}
	if err := s.progressRepo.Upsert(ctx, progress, req.TimeSpent); err != nil {
		return nil, err
	}

	stored, err := s.progressRepo.GetByUserAndLesson(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	stored.UserID = 0
	return stored, nil
}

// GetLessonProgress returns the user's progress row for a lesson, or a
// synthetic not-started row when no action has been taken.
func (s *progressService) GetLessonProgress(ctx context.Context, userID, lessonID int) (*models.LessonProgress, error) {
	if _, err := s.lessonRepo.GetByID(ctx, lessonID); err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	progress, err := s.progressRepo.GetByUserAndLesson(ctx, userID, lessonID)
	if err != nil {
		if isNotFound(err) {
			return &models.LessonProgress{
				LessonID:           lessonID,
				Status:             models.StatusNotStarted,
				ProgressPercentage: 0,
				TimeSpentMinutes:   0,
			}, nil
		}
		return nil, err
	}

	progress.UserID = 0
	return progress, nil
}

// GetOverview returns the per-category roll-up and the user's recent activity
func (s *progressService) GetOverview(ctx context.Context, userID int) (*models.ProgressOverview, error) {
	rollup, err := s.progressRepo.GetCategoryRollup(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category rollup: %w", err)
	}

	activity, err := s.progressRepo.GetRecentActivity(ctx, userID, s.recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent activity: %w", err)
	}

	return &models.ProgressOverview{
		CategoryProgress: rollup,
		RecentActivity:   activity,
	}, nil
}
