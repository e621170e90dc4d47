package postgres

import (
	"github.com/skillforge/course-service/internal/repositories"
	"gorm.io/gorm"
)

type postgresRepository struct {
	users         repositories.UserRepository
	catalog       repositories.CatalogRepository
	enrollments   repositories.EnrollmentRepository
	progress      repositories.ProgressRepository
	announcements repositories.AnnouncementRepository
	testimonials  repositories.TestimonialRepository
	stats         repositories.StatsRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &postgresRepository{
		users:         NewUserPostgreSQL(db),
		catalog:       NewCatalogPostgreSQL(db),
		enrollments:   NewEnrollmentPostgreSQL(db),
		progress:      NewProgressPostgreSQL(db),
		announcements: NewAnnouncementPostgreSQL(db),
		testimonials:  NewTestimonialPostgreSQL(db),
		stats:         NewStatsPostgreSQL(db),
	}
}

func (r *postgresRepository) Users() repositories.UserRepository {
	return r.users
}

func (r *postgresRepository) Catalog() repositories.CatalogRepository {
	return r.catalog
}

func (r *postgresRepository) Enrollments() repositories.EnrollmentRepository {
	return r.enrollments
}

func (r *postgresRepository) Progress() repositories.ProgressRepository {
	return r.progress
}

func (r *postgresRepository) Announcements() repositories.AnnouncementRepository {
	return r.announcements
}

func (r *postgresRepository) Testimonials() repositories.TestimonialRepository {
	return r.testimonials
}

func (r *postgresRepository) Stats() repositories.StatsRepository {
	return r.stats
}
