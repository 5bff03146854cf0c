package services

import (
	"errors"

	"github.com/interviewprep/backend/internal/models"
)

// isNotFound reports whether err wraps models.ErrNotFound
func isNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
