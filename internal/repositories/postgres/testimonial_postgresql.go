package postgres

import (
	"context"

	"github.com/skillforge/course-service/internal/models"
	"github.com/skillforge/course-service/internal/repositories"
	"gorm.io/gorm"
)

type TestimonialPostgreSQL struct {
	db *gorm.DB
}

func NewTestimonialPostgreSQL(db *gorm.DB) repositories.TestimonialRepository {
	return &TestimonialPostgreSQL{db: db}
}

func (t *TestimonialPostgreSQL) Create(ctx context.Context, testimonial *models.Testimonial) error {
	return t.db.WithContext(ctx).Create(testimonial).Error
}

func (t *TestimonialPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	if err := t.db.WithContext(ctx).First(&testimonial, id).Error; err != nil {
		return nil, err
	}
	return &testimonial, nil
}

func (t *TestimonialPostgreSQL) Update(ctx context.Context, testimonial *models.Testimonial) error {
	return t.db.WithContext(ctx).Save(testimonial).Error
}

func (t *TestimonialPostgreSQL) ListPublished(ctx context.Context) ([]*models.Testimonial, error) {
	var testimonials []*models.Testimonial
	err := t.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("created_at DESC").
		Find(&testimonials).Error
	return testimonials, err
}
