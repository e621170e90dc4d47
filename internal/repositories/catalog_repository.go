package repositories

import (
	"context"

	"github.com/skillforge/course-service/internal/models"
)

// CatalogRepository covers the course -> module -> lesson hierarchy.
type CatalogRepository interface {
	// Courses
	CreateCourse(ctx context.Context, course *models.Course) error
	GetCourse(ctx context.Context, id uint) (*models.Course, error)
	GetCourseByName(ctx context.Context, name string) (*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id uint) error
	ListCourses(ctx context.Context, filters CourseFilters) ([]*models.Course, int64, error)
	CourseExistsByName(ctx context.Context, name string, excludeID *uint) (bool, error)

	// GetCourseContent returns the course with modules ordered by order_index
	// (ties by id) and each module's lessons ordered the same way.
	GetCourseContent(ctx context.Context, courseID uint) (*models.Course, error)

	// Modules
	CreateModule(ctx context.Context, module *models.Module) error
	GetModule(ctx context.Context, id uint) (*models.Module, error)
	UpdateModule(ctx context.Context, module *models.Module) error
	DeleteModule(ctx context.Context, id uint) error
	ModuleLessonCount(ctx context.Context, moduleID uint) (int64, error)

	// Lessons
	CreateLesson(ctx context.Context, lesson *models.Lesson) error
	GetLesson(ctx context.Context, id uint) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, lesson *models.Lesson) error
	DeleteLesson(ctx context.Context, id uint) error
	CountLessonsByCourse(ctx context.Context, courseID uint) (int64, error)
}
