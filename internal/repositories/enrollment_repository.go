package repositories

import (
	"context"

	"github.com/skillforge/course-service/internal/models"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id uint) (*models.Enrollment, error)

	// GetByReference loads the enrollment joined with its user.
	GetByReference(ctx context.Context, reference string) (*models.Enrollment, error)

	UpdateStatus(ctx context.Context, id uint, status models.PaymentStatus) error
	List(ctx context.Context, filters EnrollmentFilters) ([]*models.Enrollment, int64, error)

	// ListAll returns every enrollment matching the filters, ignoring
	// Limit and Offset. Exports read the full ledger through this.
	ListAll(ctx context.Context, filters EnrollmentFilters) ([]*models.Enrollment, error)

	GetByUser(ctx context.Context, userID uint) ([]*models.Enrollment, error)
}
