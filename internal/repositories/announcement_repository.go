package repositories

import (
	"context"

	"github.com/skillforge/course-service/internal/models"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	GetByID(ctx context.Context, id uint) (*models.Announcement, error)
	Update(ctx context.Context, announcement *models.Announcement) error

	// Delete is a hard delete; the student-facing read path relies on
	// is_active instead.
	Delete(ctx context.Context, id uint) error

	// ListActiveFor returns active, non-expired announcements whose audience
	// is "all" or matches the requested audience, ordered by priority
	// descending then creation time descending.
	ListActiveFor(ctx context.Context, audience string) ([]*models.Announcement, error)

	List(ctx context.Context, filters AnnouncementFilters) ([]*models.Announcement, int64, error)
}
