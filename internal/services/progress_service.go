package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/skillforge/course-service/internal/events"
	"github.com/skillforge/course-service/internal/models"
	"github.com/skillforge/course-service/internal/repositories"
)

// ProgressService tracks per-lesson completion and computes course-level
// completion percentages.
type ProgressService interface {
	MarkCompleted(ctx context.Context, userID, courseID, lessonID uint) (*models.CourseProgress, error)
	GetProgress(ctx context.Context, userID uint) ([]*models.CourseProgress, error)
	CourseCompletion(ctx context.Context, userID, courseID uint) (*repositories.CourseProgressStats, error)
}

type progressService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewProgressService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger *slog.Logger,
) ProgressService {
	return &progressService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// MarkCompleted upserts the (user, course, lesson) row. Calling it twice
// leaves exactly one row; the payload is idempotent.
func (s *progressService) MarkCompleted(ctx context.Context, userID, courseID, lessonID uint) (*models.CourseProgress, error) {
	lesson, err := s.repo.Catalog().GetLesson(ctx, lessonID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	if lesson.CourseID != courseID {
		return nil, ErrLessonCourseMismatch
	}

	now := time.Now()
	progress := &models.CourseProgress{
		UserID:      userID,
		CourseID:    courseID,
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: &now,
	}

	if err := s.repo.Progress().Upsert(ctx, progress); err != nil {
		return nil, fmt.Errorf("failed to mark lesson completed: %w", err)
	}

	if err := s.publisher.PublishEvent(ctx, events.NewLessonCompletedEvent(userID, courseID, lessonID, now)); err != nil {
		s.logger.Warn("Failed to publish lesson completed event", "lesson_id", lessonID, "error", err)
	}

	s.logger.Info("Lesson marked completed",
		"user_id", userID,
		"course_id", courseID,
		"lesson_id", lessonID)

	return progress, nil
}

func (s *progressService) GetProgress(ctx context.Context, userID uint) ([]*models.CourseProgress, error) {
	rows, err := s.repo.Progress().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return rows, nil
}

// CourseCompletion computes completed / total lessons for the course,
// truncated to an integer percentage. A course without lessons is 0%.
func (s *progressService) CourseCompletion(ctx context.Context, userID, courseID uint) (*repositories.CourseProgressStats, error) {
	total, err := s.repo.Catalog().CountLessonsByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to count course lessons: %w", err)
	}

	completed, err := s.repo.Progress().CountCompleted(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed lessons: %w", err)
	}

	percentage := 0
	if total > 0 {
		percentage = int(completed * 100 / total)
	}

	return &repositories.CourseProgressStats{
		CourseID:         courseID,
		TotalLessons:     int(total),
		CompletedLessons: int(completed),
		Percentage:       percentage,
	}, nil
}
