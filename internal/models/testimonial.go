package models

import (
	"time"
)

type Testimonial struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	AuthorName  string `json:"author_name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	CourseLabel string `json:"course_label" gorm:"size:100" validate:"omitempty,max=100"`
	Content     string `json:"content" gorm:"type:text;not null" validate:"required,min=1,max=2000"`
	Rating      int    `json:"rating" gorm:"default:5" validate:"min=1,max=5"`
	IsPublished bool   `json:"is_published" gorm:"default:false;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}
