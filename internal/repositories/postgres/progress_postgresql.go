package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/skillforge/course-service/internal/models"
	"github.com/skillforge/course-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressPostgreSQL struct {
	db *gorm.DB
}

func NewProgressPostgreSQL(db *gorm.DB) repositories.ProgressRepository {
	return &ProgressPostgreSQL{db: db}
}

// Upsert relies on the composite unique index so that concurrent calls for
// the same (user, course, lesson) collapse into one row; the payload is
// idempotent, so last write wins is fine.
func (p *ProgressPostgreSQL) Upsert(ctx context.Context, progress *models.CourseProgress) error {
	if progress.Completed && progress.CompletedAt == nil {
		now := time.Now()
		progress.CompletedAt = &now
	}

	err := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "course_id"},
				{Name: "lesson_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at", "updated_at"}),
		}).
		Create(progress).Error
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}
	return nil
}

func (p *ProgressPostgreSQL) GetByUser(ctx context.Context, userID uint) ([]*models.CourseProgress, error) {
	var rows []*models.CourseProgress
	err := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("course_id ASC, lesson_id ASC").
		Find(&rows).Error
	return rows, err
}

func (p *ProgressPostgreSQL) GetByUserAndCourse(ctx context.Context, userID, courseID uint) ([]*models.CourseProgress, error) {
	var rows []*models.CourseProgress
	err := p.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("lesson_id ASC").
		Find(&rows).Error
	return rows, err
}

func (p *ProgressPostgreSQL) CountCompleted(ctx context.Context, userID, courseID uint) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Model(&models.CourseProgress{}).
		Where("user_id = ? AND course_id = ? AND completed = ?", userID, courseID, true).
		Count(&count).Error
	return count, err
}
