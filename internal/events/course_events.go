package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/skillforge/course-service/internal/models"
)

// EventType represents different types of platform events
type EventType string

const (
	// Enrollment events
	EventEnrollmentCreated   EventType = "enrollment.created"
	EventEnrollmentCompleted EventType = "enrollment.completed"

	// Progress events
	EventLessonCompleted EventType = "lesson.completed"

	// Announcement events
	EventAnnouncementPublished EventType = "announcement.published"
)

// PlatformEvent is the base event structure for all published events
type PlatformEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Enrollment event payloads

type EnrollmentCreatedEvent struct {
	EnrollmentID     uint      `json:"enrollment_id"`
	UserID           uint      `json:"user_id"`
	CourseType       string    `json:"course_type"`
	Price            int       `json:"price"`
	PaymentMethod    string    `json:"payment_method"`
	PaymentReference string    `json:"payment_reference"`
	EnrolledAt       time.Time `json:"enrolled_at"`
}

type EnrollmentCompletedEvent struct {
	EnrollmentID     uint      `json:"enrollment_id"`
	UserID           uint      `json:"user_id"`
	UserEmail        string    `json:"user_email"`
	CourseType       string    `json:"course_type"`
	Price            int       `json:"price"`
	PaymentReference string    `json:"payment_reference"`
	CompletedAt      time.Time `json:"completed_at"`
}

// Progress event payload

type LessonCompletedEvent struct {
	UserID      uint      `json:"user_id"`
	CourseID    uint      `json:"course_id"`
	LessonID    uint      `json:"lesson_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// Announcement event payload

type AnnouncementPublishedEvent struct {
	AnnouncementID uint                        `json:"announcement_id"`
	Title          string                      `json:"title"`
	Priority       models.AnnouncementPriority `json:"priority"`
	TargetAudience string                      `json:"target_audience"`
	ExpiresAt      *time.Time                  `json:"expires_at,omitempty"`
}

// Event factory functions

func NewEnrollmentCreatedEvent(e *models.Enrollment) *PlatformEvent {
	return &PlatformEvent{
		ID:        GenerateEventID(),
		Type:      EventEnrollmentCreated,
		Timestamp: time.Now(),
		Source:    "course-service",
		Version:   "1.0",
		Data: EnrollmentCreatedEvent{
			EnrollmentID:     e.ID,
			UserID:           e.UserID,
			CourseType:       e.CourseType,
			Price:            e.Price,
			PaymentMethod:    e.PaymentMethod,
			PaymentReference: e.PaymentReference,
			EnrolledAt:       e.EnrolledAt,
		},
	}
}

func NewEnrollmentCompletedEvent(e *models.Enrollment) *PlatformEvent {
	return &PlatformEvent{
		ID:        GenerateEventID(),
		Type:      EventEnrollmentCompleted,
		Timestamp: time.Now(),
		Source:    "course-service",
		Version:   "1.0",
		Data: EnrollmentCompletedEvent{
			EnrollmentID:     e.ID,
			UserID:           e.UserID,
			UserEmail:        e.User.Email,
			CourseType:       e.CourseType,
			Price:            e.Price,
			PaymentReference: e.PaymentReference,
			CompletedAt:      time.Now(),
		},
	}
}

func NewLessonCompletedEvent(userID, courseID, lessonID uint, completedAt time.Time) *PlatformEvent {
	return &PlatformEvent{
		ID:        GenerateEventID(),
		Type:      EventLessonCompleted,
		Timestamp: time.Now(),
		Source:    "course-service",
		Version:   "1.0",
		Data: LessonCompletedEvent{
			UserID:      userID,
			CourseID:    courseID,
			LessonID:    lessonID,
			CompletedAt: completedAt,
		},
	}
}

func NewAnnouncementPublishedEvent(a *models.Announcement) *PlatformEvent {
	return &PlatformEvent{
		ID:        GenerateEventID(),
		Type:      EventAnnouncementPublished,
		Timestamp: time.Now(),
		Source:    "course-service",
		Version:   "1.0",
		Data: AnnouncementPublishedEvent{
			AnnouncementID: a.ID,
			Title:          a.Title,
			Priority:       a.Priority,
			TargetAudience: a.TargetAudience,
			ExpiresAt:      a.ExpiresAt,
		},
	}
}

// GenerateEventID returns a unique event identifier.
func GenerateEventID() string {
	return uuid.NewString()
}
