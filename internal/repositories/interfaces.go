package repositories

import (
	"time"

	"github.com/skillforge/course-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type CourseFilters struct {
	Name      string `json:"name"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "created_at", "name"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

type EnrollmentFilters struct {
	UserID     *uint                 `json:"user_id"`
	CourseType *string               `json:"course_type"`
	Status     *models.PaymentStatus `json:"status"`
	DateFrom   *time.Time            `json:"date_from"`
	DateTo     *time.Time            `json:"date_to"`
	Limit      int                   `json:"limit"`
	Offset     int                   `json:"offset"`
}

type AnnouncementFilters struct {
	Audience   string `json:"audience"`
	ActiveOnly bool   `json:"active_only"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

type PlatformStats struct {
	TotalUsers           int   `json:"total_users"`
	TotalCourses         int   `json:"total_courses"`
	TotalModules         int   `json:"total_modules"`
	TotalLessons         int   `json:"total_lessons"`
	TotalEnrollments     int   `json:"total_enrollments"`
	CompletedEnrollments int   `json:"completed_enrollments"`
	PendingEnrollments   int   `json:"pending_enrollments"`
	TotalRevenue         int64 `json:"total_revenue"`
}

type CourseProgressStats struct {
	CourseID         uint `json:"course_id"`
	TotalLessons     int  `json:"total_lessons"`
	CompletedLessons int  `json:"completed_lessons"`
	Percentage       int  `json:"percentage"`
}

// Repository aggregates all per-entity repositories behind one handle.
type Repository interface {
	Users() UserRepository
	Catalog() CatalogRepository
	Enrollments() EnrollmentRepository
	Progress() ProgressRepository
	Announcements() AnnouncementRepository
	Testimonials() TestimonialRepository
	Stats() StatsRepository
}
