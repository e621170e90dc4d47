package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ContentType string

const (
	ContentFile     ContentType = "file"
	ContentVideo    ContentType = "video"
	ContentText     ContentType = "text"
	ContentQuiz     ContentType = "quiz"
	ContentDownload ContentType = "download"
)

type Course struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"uniqueIndex;not null;size:200" validate:"required,min=1,max=200"`
	Description string         `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	Settings    datatypes.JSON `json:"settings" gorm:"type:jsonb"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Modules []Module `json:"modules,omitempty" gorm:"foreignKey:CourseID"`
}

type Module struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	CourseID    uint   `json:"course_id" gorm:"not null;index" validate:"required"`
	Name        string `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description string `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	OrderIndex  int    `json:"order_index" gorm:"not null;default:0;index" validate:"min=0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Lessons []Lesson `json:"lessons,omitempty" gorm:"foreignKey:ModuleID"`
}

// Lesson belongs to a module and, redundantly, to that module's course.
// The pairing is enforced at the service layer on create and update.
type Lesson struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	CourseID    uint           `json:"course_id" gorm:"not null;index" validate:"required"`
	ModuleID    uint           `json:"module_id" gorm:"not null;index" validate:"required"`
	Title       string         `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description string         `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	ContentType ContentType    `json:"content_type" gorm:"not null;size:20" validate:"required,content_type"`
	FilePath    *string        `json:"file_path" gorm:"size:500"`
	Properties  datatypes.JSON `json:"properties" gorm:"type:jsonb"`
	OrderIndex  int            `json:"order_index" gorm:"not null;default:0;index" validate:"min=0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}

func (Module) TableName() string {
	return "modules"
}

func (Lesson) TableName() string {
	return "lessons"
}
