package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Enrollment is a purchase record: append-only except for the status field.
type Enrollment struct {
	ID               uint          `json:"id" gorm:"primaryKey"`
	UserID           uint          `json:"user_id" gorm:"not null;index" validate:"required"`
	CourseType       string        `json:"course_type" gorm:"not null;size:100" validate:"required,max=100"`
	Price            int           `json:"price" gorm:"not null" validate:"min=0"`
	PaymentMethod    string        `json:"payment_method" gorm:"not null;size:50" validate:"required,payment_method"`
	PaymentStatus    PaymentStatus `json:"payment_status" gorm:"default:pending;index"`
	PaymentReference string        `json:"payment_reference" gorm:"uniqueIndex;not null;size:100"`
	EnrolledAt       time.Time     `json:"enrolled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
