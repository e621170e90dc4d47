package repositories

import (
	"context"

	"github.com/skillforge/course-service/internal/models"
)

type ProgressRepository interface {
	// Upsert inserts the row or, on the (user, course, lesson) conflict,
	// re-marks it completed and refreshes the completion time.
	Upsert(ctx context.Context, progress *models.CourseProgress) error

	GetByUser(ctx context.Context, userID uint) ([]*models.CourseProgress, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID uint) ([]*models.CourseProgress, error)
	CountCompleted(ctx context.Context, userID, courseID uint) (int64, error)
}
