package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/skillforge/course-service/internal/cache"
	apperrors "github.com/skillforge/course-service/internal/errors"
	"github.com/skillforge/course-service/internal/models"
	"github.com/skillforge/course-service/internal/repositories"
	"github.com/skillforge/course-service/internal/storage"
	"github.com/skillforge/course-service/internal/utils"
	"gorm.io/datatypes"
)

// CatalogService manages the course -> module -> lesson hierarchy.
type CatalogService interface {
	// Courses
	CreateCourse(ctx context.Context, req *CreateCourseRequest) (*models.Course, error)
	GetCourse(ctx context.Context, id uint) (*models.Course, error)
	UpdateCourse(ctx context.Context, id uint, req *UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id uint) error
	ListCourses(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error)
	GetCourseContent(ctx context.Context, courseID uint) (*models.Course, error)

	// Modules
	CreateModule(ctx context.Context, req *CreateModuleRequest) (*models.Module, error)
	UpdateModule(ctx context.Context, id uint, req *UpdateModuleRequest) (*models.Module, error)
	DeleteModule(ctx context.Context, id uint) error

	// Lessons
	CreateLesson(ctx context.Context, req *CreateLessonRequest) (*models.Lesson, error)
	GetLesson(ctx context.Context, id uint) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, id uint, req *UpdateLessonRequest) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, id uint) error
	ReplaceLessonFile(ctx context.Context, lessonID uint, filename string, src io.Reader) (*models.Lesson, error)
}

// ===== REQUEST STRUCTURES =====

type CreateCourseRequest struct {
	Name        string         `json:"name" validate:"required,min=1,max=200"`
	Description string         `json:"description" validate:"omitempty,max=2000"`
	Settings    datatypes.JSON `json:"settings"`
}

type UpdateCourseRequest struct {
	Name        *string         `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string         `json:"description" validate:"omitempty,max=2000"`
	Settings    *datatypes.JSON `json:"settings"`
}

type CreateModuleRequest struct {
	CourseID    uint   `json:"course_id" validate:"required"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	OrderIndex  int    `json:"order_index" validate:"min=0"`
}

type UpdateModuleRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	OrderIndex  *int    `json:"order_index" validate:"omitempty,min=0"`
}

type CreateLessonRequest struct {
	CourseID    uint               `json:"course_id" validate:"required"`
	ModuleID    uint               `json:"module_id" validate:"required"`
	Title       string             `json:"title" validate:"required,min=1,max=200"`
	Description string             `json:"description" validate:"omitempty,max=2000"`
	ContentType models.ContentType `json:"content_type" validate:"required,content_type"`
	Properties  datatypes.JSON     `json:"properties"`
	OrderIndex  int                `json:"order_index" validate:"min=0"`
}

type UpdateLessonRequest struct {
	Title       *string             `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string             `json:"description" validate:"omitempty,max=2000"`
	ContentType *models.ContentType `json:"content_type" validate:"omitempty,content_type"`
	Properties  *datatypes.JSON     `json:"properties"`
	OrderIndex  *int                `json:"order_index" validate:"omitempty,min=0"`
}

type catalogService struct {
	repo      repositories.Repository
	files     *storage.FileStore
	cache     cache.CacheService
	logger    *slog.Logger
	validator *utils.Validator
}

const courseContentCacheTTL = 5 * time.Minute

func NewCatalogService(
	repo repositories.Repository,
	files *storage.FileStore,
	cacheService cache.CacheService,
	logger *slog.Logger,
	validator *utils.Validator,
) CatalogService {
	return &catalogService{
		repo:      repo,
		files:     files,
		cache:     cacheService,
		logger:    logger,
		validator: validator,
	}
}

// ===== COURSES =====

func (s *catalogService) CreateCourse(ctx context.Context, req *CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	course := &models.Course{
		Name:        req.Name,
		Description: req.Description,
		Settings:    req.Settings,
	}

	if err := s.repo.Catalog().CreateCourse(ctx, course); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrCourseAlreadyExists
		}
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("Course created", "course_id", course.ID, "name", course.Name)
	return course, nil
}

func (s *catalogService) GetCourse(ctx context.Context, id uint) (*models.Course, error) {
	course, err := s.repo.Catalog().GetCourse(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

func (s *catalogService) UpdateCourse(ctx context.Context, id uint, req *UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Settings != nil {
		course.Settings = *req.Settings
	}

	if err := s.repo.Catalog().UpdateCourse(ctx, course); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrCourseAlreadyExists
		}
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	s.invalidateCourseContent(ctx, id)
	return course, nil
}

// DeleteCourse removes only the course row. Modules and lessons are left
// behind; see the cascade note in DESIGN.md.
func (s *catalogService) DeleteCourse(ctx context.Context, id uint) error {
	if _, err := s.GetCourse(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Catalog().DeleteCourse(ctx, id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	s.invalidateCourseContent(ctx, id)
	s.logger.Info("Course deleted", "course_id", id)
	return nil
}

func (s *catalogService) ListCourses(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	courses, total, err := s.repo.Catalog().ListCourses(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, total, nil
}

func (s *catalogService) GetCourseContent(ctx context.Context, courseID uint) (*models.Course, error) {
	cacheKey := courseContentCacheKey(courseID)

	var cached models.Course
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	course, err := s.repo.Catalog().GetCourseContent(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course content: %w", err)
	}

	if err := s.cache.Set(ctx, cacheKey, course, courseContentCacheTTL); err != nil {
		s.logger.Warn("Failed to cache course content", "course_id", courseID, "error", err)
	}
	return course, nil
}

// ===== MODULES =====

func (s *catalogService) CreateModule(ctx context.Context, req *CreateModuleRequest) (*models.Module, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	if _, err := s.GetCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}

	module := &models.Module{
		CourseID:    req.CourseID,
		Name:        req.Name,
		Description: req.Description,
		OrderIndex:  req.OrderIndex,
	}

	if err := s.repo.Catalog().CreateModule(ctx, module); err != nil {
		return nil, fmt.Errorf("failed to create module: %w", err)
	}

	s.invalidateCourseContent(ctx, req.CourseID)
	s.logger.Info("Module created", "module_id", module.ID, "course_id", module.CourseID)
	return module, nil
}

func (s *catalogService) UpdateModule(ctx context.Context, id uint, req *UpdateModuleRequest) (*models.Module, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	module, err := s.repo.Catalog().GetModule(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrModuleNotFound
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	if req.Name != nil {
		module.Name = *req.Name
	}
	if req.Description != nil {
		module.Description = *req.Description
	}
	if req.OrderIndex != nil {
		module.OrderIndex = *req.OrderIndex
	}

	if err := s.repo.Catalog().UpdateModule(ctx, module); err != nil {
		return nil, fmt.Errorf("failed to update module: %w", err)
	}

	s.invalidateCourseContent(ctx, module.CourseID)
	return module, nil
}

func (s *catalogService) DeleteModule(ctx context.Context, id uint) error {
	module, err := s.repo.Catalog().GetModule(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrModuleNotFound
		}
		return fmt.Errorf("failed to get module: %w", err)
	}

	count, err := s.repo.Catalog().ModuleLessonCount(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count module lessons: %w", err)
	}
	if count > 0 {
		return ErrModuleHasLessons
	}

	if err := s.repo.Catalog().DeleteModule(ctx, id); err != nil {
		return fmt.Errorf("failed to delete module: %w", err)
	}

	s.invalidateCourseContent(ctx, module.CourseID)
	s.logger.Info("Module deleted", "module_id", id)
	return nil
}

// ===== LESSONS =====

func (s *catalogService) CreateLesson(ctx context.Context, req *CreateLessonRequest) (*models.Lesson, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	if err := s.checkModuleBelongsToCourse(ctx, req.ModuleID, req.CourseID); err != nil {
		return nil, err
	}

	lesson := &models.Lesson{
		CourseID:    req.CourseID,
		ModuleID:    req.ModuleID,
		Title:       req.Title,
		Description: req.Description,
		ContentType: req.ContentType,
		Properties:  req.Properties,
		OrderIndex:  req.OrderIndex,
	}

	if err := s.repo.Catalog().CreateLesson(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}

	s.invalidateCourseContent(ctx, req.CourseID)
	s.logger.Info("Lesson created", "lesson_id", lesson.ID, "module_id", lesson.ModuleID)
	return lesson, nil
}

func (s *catalogService) GetLesson(ctx context.Context, id uint) (*models.Lesson, error) {
	lesson, err := s.repo.Catalog().GetLesson(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	return lesson, nil
}

func (s *catalogService) UpdateLesson(ctx context.Context, id uint, req *UpdateLessonRequest) (*models.Lesson, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	lesson, err := s.GetLesson(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}
	if req.ContentType != nil {
		lesson.ContentType = *req.ContentType
	}
	if req.Properties != nil {
		lesson.Properties = *req.Properties
	}
	if req.OrderIndex != nil {
		lesson.OrderIndex = *req.OrderIndex
	}

	if err := s.repo.Catalog().UpdateLesson(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}

	s.invalidateCourseContent(ctx, lesson.CourseID)
	return lesson, nil
}

func (s *catalogService) DeleteLesson(ctx context.Context, id uint) error {
	lesson, err := s.GetLesson(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Catalog().DeleteLesson(ctx, id); err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	// Row first, file second; an orphaned file is recoverable, a dangling
	// file_path is not.
	if lesson.FilePath != nil {
		if err := s.files.Delete(*lesson.FilePath); err != nil {
			s.logger.Warn("Failed to delete lesson file", "lesson_id", id, "path", *lesson.FilePath, "error", err)
		}
	}

	s.invalidateCourseContent(ctx, lesson.CourseID)
	s.logger.Info("Lesson deleted", "lesson_id", id)
	return nil
}

// ReplaceLessonFile stores the new upload, repoints the row, and only then
// removes the previous file. A failed cleanup never rolls back the row.
func (s *catalogService) ReplaceLessonFile(ctx context.Context, lessonID uint, filename string, src io.Reader) (*models.Lesson, error) {
	lesson, err := s.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	course, err := s.GetCourse(ctx, lesson.CourseID)
	if err != nil {
		return nil, err
	}
	module, err := s.repo.Catalog().GetModule(ctx, lesson.ModuleID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrModuleNotFound
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	newPath, err := s.files.Save(course.Name, module.Name, filename, src)
	if err != nil {
		return nil, err
	}

	oldPath := lesson.FilePath
	lesson.FilePath = &newPath

	if err := s.repo.Catalog().UpdateLesson(ctx, lesson); err != nil {
		// Row update failed: remove the freshly written file so storage
		// and database stay consistent.
		if cleanupErr := s.files.Delete(newPath); cleanupErr != nil {
			s.logger.Warn("Failed to clean up orphaned upload", "path", newPath, "error", cleanupErr)
		}
		return nil, fmt.Errorf("failed to update lesson file path: %w", err)
	}

	if oldPath != nil {
		if err := s.files.Delete(*oldPath); err != nil {
			s.logger.Warn("Failed to delete replaced lesson file", "lesson_id", lessonID, "path", *oldPath, "error", err)
		}
	}

	s.invalidateCourseContent(ctx, lesson.CourseID)
	s.logger.Info("Lesson file replaced", "lesson_id", lessonID, "path", newPath)
	return lesson, nil
}

// ===== HELPERS =====

func (s *catalogService) checkModuleBelongsToCourse(ctx context.Context, moduleID, courseID uint) error {
	module, err := s.repo.Catalog().GetModule(ctx, moduleID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrModuleNotFound
		}
		return fmt.Errorf("failed to get module: %w", err)
	}
	if module.CourseID != courseID {
		return ErrModuleCourseMismatch
	}
	return nil
}

func (s *catalogService) invalidateCourseContent(ctx context.Context, courseID uint) {
	if err := s.cache.Delete(ctx, courseContentCacheKey(courseID)); err != nil {
		s.logger.Warn("Failed to invalidate course content cache", "course_id", courseID, "error", err)
	}
}

func courseContentCacheKey(courseID uint) string {
	return fmt.Sprintf("course:content:%d", courseID)
}
