package models

import (
	"time"
)

// CourseProgress is a per-user, per-lesson completion marker. Rows are
// upserted on the composite key and never deleted.
type CourseProgress struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_course_lesson" validate:"required"`
	CourseID    uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_progress_user_course_lesson" validate:"required"`
	LessonID    uint       `json:"lesson_id" gorm:"not null;uniqueIndex:idx_progress_user_course_lesson" validate:"required"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}
