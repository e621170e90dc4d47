package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/skillforge/course-service/internal/errors"
	"github.com/skillforge/course-service/internal/events"
	"github.com/skillforge/course-service/internal/models"
	"github.com/skillforge/course-service/internal/repositories"
	"github.com/skillforge/course-service/internal/utils"
)

// AnnouncementService manages the admin-authored message board.
type AnnouncementService interface {
	Create(ctx context.Context, req *CreateAnnouncementRequest) (*models.Announcement, error)
	Update(ctx context.Context, id uint, req *UpdateAnnouncementRequest) (*models.Announcement, error)
	Toggle(ctx context.Context, id uint) (*models.Announcement, error)
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Announcement, error)

	// ListActiveFor is the student/teacher read path: active, unexpired,
	// audience-matched rows in priority order.
	ListActiveFor(ctx context.Context, audience string) ([]*models.Announcement, error)

	// List is the admin read path and does not filter by activity.
	List(ctx context.Context, filters repositories.AnnouncementFilters) ([]*models.Announcement, int64, error)
}

type CreateAnnouncementRequest struct {
	Title          string     `json:"title" validate:"required,min=1,max=200"`
	Message        string     `json:"message" validate:"required,min=1"`
	Priority       string     `json:"priority" validate:"omitempty,announcement_priority"`
	TargetAudience string     `json:"target_audience" validate:"omitempty,max=100"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

type UpdateAnnouncementRequest struct {
	Title          *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Message        *string    `json:"message" validate:"omitempty,min=1"`
	Priority       *string    `json:"priority" validate:"omitempty,announcement_priority"`
	TargetAudience *string    `json:"target_audience" validate:"omitempty,max=100"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

type announcementService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *utils.Validator
}

func NewAnnouncementService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *utils.Validator,
) AnnouncementService {
	return &announcementService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *announcementService) Create(ctx context.Context, req *CreateAnnouncementRequest) (*models.Announcement, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	announcement := &models.Announcement{
		Title:          req.Title,
		Message:        req.Message,
		Priority:       models.AnnouncementPriority(req.Priority),
		TargetAudience: req.TargetAudience,
		IsActive:       true,
		ExpiresAt:      req.ExpiresAt,
	}
	if announcement.Priority == "" {
		announcement.Priority = models.PriorityNormal
	}
	if announcement.TargetAudience == "" {
		announcement.TargetAudience = models.AudienceAll
	}

	if err := s.repo.Announcements().Create(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	if err := s.publisher.PublishEvent(ctx, events.NewAnnouncementPublishedEvent(announcement)); err != nil {
		s.logger.Warn("Failed to publish announcement event", "announcement_id", announcement.ID, "error", err)
	}

	s.logger.Info("Announcement created",
		"announcement_id", announcement.ID,
		"priority", announcement.Priority,
		"audience", announcement.TargetAudience)

	return announcement, nil
}

func (s *announcementService) Update(ctx context.Context, id uint, req *UpdateAnnouncementRequest) (*models.Announcement, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	announcement, err := s.getAnnouncement(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Message != nil {
		announcement.Message = *req.Message
	}
	if req.Priority != nil {
		announcement.Priority = models.AnnouncementPriority(*req.Priority)
	}
	if req.TargetAudience != nil {
		announcement.TargetAudience = *req.TargetAudience
	}
	if req.ExpiresAt != nil {
		announcement.ExpiresAt = req.ExpiresAt
	}

	if err := s.repo.Announcements().Update(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}
	return announcement, nil
}

// Toggle flips is_active. Toggling twice restores the original visibility.
func (s *announcementService) Toggle(ctx context.Context, id uint) (*models.Announcement, error) {
	announcement, err := s.getAnnouncement(ctx, id)
	if err != nil {
		return nil, err
	}

	announcement.IsActive = !announcement.IsActive
	if err := s.repo.Announcements().Update(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to toggle announcement: %w", err)
	}

	s.logger.Info("Announcement toggled", "announcement_id", id, "is_active", announcement.IsActive)
	return announcement, nil
}

func (s *announcementService) Delete(ctx context.Context, id uint) error {
	if _, err := s.getAnnouncement(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Announcements().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	s.logger.Info("Announcement deleted", "announcement_id", id)
	return nil
}

func (s *announcementService) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	return s.getAnnouncement(ctx, id)
}

func (s *announcementService) ListActiveFor(ctx context.Context, audience string) ([]*models.Announcement, error) {
	if audience == "" {
		audience = models.AudienceAll
	}
	announcements, err := s.repo.Announcements().ListActiveFor(ctx, audience)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return announcements, nil
}

func (s *announcementService) List(ctx context.Context, filters repositories.AnnouncementFilters) ([]*models.Announcement, int64, error) {
	announcements, total, err := s.repo.Announcements().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list announcements: %w", err)
	}
	return announcements, total, nil
}

func (s *announcementService) getAnnouncement(ctx context.Context, id uint) (*models.Announcement, error) {
	announcement, err := s.repo.Announcements().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}
	return announcement, nil
}
