package postgres

import (
	"context"
	"fmt"

	"github.com/skillforge/course-service/internal/models"
	"github.com/skillforge/course-service/internal/repositories"
	"gorm.io/gorm"
)

type CatalogPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewCatalogPostgreSQL(db *gorm.DB) repositories.CatalogRepository {
	return &CatalogPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

// ===== COURSES =====

func (c *CatalogPostgreSQL) CreateCourse(ctx context.Context, course *models.Course) error {
	exists, err := c.CourseExistsByName(ctx, course.Name, nil)
	if err != nil {
		return fmt.Errorf("failed to check course name uniqueness: %w", err)
	}
	if exists {
		return gorm.ErrDuplicatedKey
	}
	if err := c.db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

func (c *CatalogPostgreSQL) GetCourse(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := c.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *CatalogPostgreSQL) GetCourseByName(ctx context.Context, name string) (*models.Course, error) {
	var course models.Course
	if err := c.db.WithContext(ctx).Where("name = ?", name).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *CatalogPostgreSQL) UpdateCourse(ctx context.Context, course *models.Course) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Course
		if err := tx.First(&current, course.ID).Error; err != nil {
			return fmt.Errorf("course not found: %w", err)
		}
		if course.Name != current.Name {
			exists, err := c.CourseExistsByName(ctx, course.Name, &course.ID)
			if err != nil {
				return fmt.Errorf("failed to check course name uniqueness: %w", err)
			}
			if exists {
				return gorm.ErrDuplicatedKey
			}
		}
		if err := tx.Save(course).Error; err != nil {
			return fmt.Errorf("failed to update course: %w", err)
		}
		return nil
	})
}

// DeleteCourse soft deletes the course row. Child modules and lessons are
// intentionally left in place; see the data-integrity note in DESIGN.md.
func (c *CatalogPostgreSQL) DeleteCourse(ctx context.Context, id uint) error {
	return c.db.WithContext(ctx).Delete(&models.Course{}, id).Error
}

func (c *CatalogPostgreSQL) ListCourses(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	query := c.db.WithContext(ctx).Model(&models.Course{})

	if filters.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filters.Name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = c.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var courses []*models.Course
	if err := query.Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (c *CatalogPostgreSQL) CourseExistsByName(ctx context.Context, name string, excludeID *uint) (bool, error) {
	query := c.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (c *CatalogPostgreSQL) GetCourseContent(ctx context.Context, courseID uint) (*models.Course, error) {
	var course models.Course
	err := c.db.WithContext(ctx).
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		}).
		First(&course, courseID).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// ===== MODULES =====

func (c *CatalogPostgreSQL) CreateModule(ctx context.Context, module *models.Module) error {
	if err := c.db.WithContext(ctx).Create(module).Error; err != nil {
		return fmt.Errorf("failed to create module: %w", err)
	}
	return nil
}

func (c *CatalogPostgreSQL) GetModule(ctx context.Context, id uint) (*models.Module, error) {
	var module models.Module
	if err := c.db.WithContext(ctx).First(&module, id).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

func (c *CatalogPostgreSQL) UpdateModule(ctx context.Context, module *models.Module) error {
	return c.db.WithContext(ctx).Save(module).Error
}

// DeleteModule removes the module inside a transaction, failing while any
// lesson still references it.
func (c *CatalogPostgreSQL) DeleteModule(ctx context.Context, id uint) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lessons int64
		if err := tx.Model(&models.Lesson{}).Where("module_id = ?", id).Count(&lessons).Error; err != nil {
			return fmt.Errorf("failed to count module lessons: %w", err)
		}
		if lessons > 0 {
			return fmt.Errorf("module %d has %d lessons: %w", id, lessons, gorm.ErrForeignKeyViolated)
		}
		return tx.Delete(&models.Module{}, id).Error
	})
}

func (c *CatalogPostgreSQL) ModuleLessonCount(ctx context.Context, moduleID uint) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Model(&models.Lesson{}).
		Where("module_id = ?", moduleID).
		Count(&count).Error
	return count, err
}

// ===== LESSONS =====

func (c *CatalogPostgreSQL) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	if err := c.db.WithContext(ctx).Create(lesson).Error; err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}
	return nil
}

func (c *CatalogPostgreSQL) GetLesson(ctx context.Context, id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := c.db.WithContext(ctx).First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (c *CatalogPostgreSQL) UpdateLesson(ctx context.Context, lesson *models.Lesson) error {
	return c.db.WithContext(ctx).Save(lesson).Error
}

func (c *CatalogPostgreSQL) DeleteLesson(ctx context.Context, id uint) error {
	return c.db.WithContext(ctx).Delete(&models.Lesson{}, id).Error
}

func (c *CatalogPostgreSQL) CountLessonsByCourse(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Model(&models.Lesson{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}
