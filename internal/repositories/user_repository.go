package repositories

import (
	"context"

	"github.com/skillforge/course-service/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, id uint) error
}

type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *models.Testimonial) error
	GetByID(ctx context.Context, id uint) (*models.Testimonial, error)
	Update(ctx context.Context, testimonial *models.Testimonial) error
	ListPublished(ctx context.Context) ([]*models.Testimonial, error)
}
