package models

import (
	"time"
)

type AnnouncementPriority string

const (
	PriorityLow    AnnouncementPriority = "low"
	PriorityNormal AnnouncementPriority = "normal"
	PriorityHigh   AnnouncementPriority = "high"
)

// AudienceAll targets every enrolled student; any other value is matched
// against a course label.
const AudienceAll = "all"

type Announcement struct {
	ID             uint                 `json:"id" gorm:"primaryKey"`
	Title          string               `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Message        string               `json:"message" gorm:"type:text;not null" validate:"required,min=1"`
	Priority       AnnouncementPriority `json:"priority" gorm:"default:normal;size:10" validate:"omitempty,announcement_priority"`
	TargetAudience string               `json:"target_audience" gorm:"default:all;size:100;index" validate:"omitempty,max=100"`
	IsActive       bool                 `json:"is_active" gorm:"default:true;index"`
	ExpiresAt      *time.Time           `json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Announcement) TableName() string {
	return "announcements"
}

// Rank maps priorities to their sort weight (high first).
func (p AnnouncementPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityNormal:
		return 1
	default:
		return 0
	}
}
