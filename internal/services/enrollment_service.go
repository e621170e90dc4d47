package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/skillforge/course-service/internal/errors"
	"github.com/skillforge/course-service/internal/events"
	"github.com/skillforge/course-service/internal/models"
	"github.com/skillforge/course-service/internal/repositories"
	"github.com/skillforge/course-service/internal/utils"
)

// EnrollmentService records purchase intents and resolves their payment
// status. Verification is a stub: it marks the row completed without
// calling a gateway. See DESIGN.md before pointing real money at this.
type EnrollmentService interface {
	Create(ctx context.Context, req *CreateEnrollmentRequest) (*EnrollmentResponse, error)
	VerifyPayment(ctx context.Context, reference string) (*models.Enrollment, error)
	GetByReference(ctx context.Context, reference string) (*models.Enrollment, error)
	GetByUser(ctx context.Context, userID uint) ([]*models.Enrollment, error)
	List(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error)
}

type CreateEnrollmentRequest struct {
	UserID        uint   `json:"user_id" validate:"required"`
	CourseType    string `json:"course_type" validate:"required,max=100"`
	Price         int    `json:"price" validate:"min=0"`
	PaymentMethod string `json:"payment_method" validate:"required,payment_method"`
}

type EnrollmentResponse struct {
	Enrollment *models.Enrollment `json:"enrollment"`
	Reference  string             `json:"reference"`
	PaymentURL string             `json:"payment_url"`
}

// GatewayConfig carries the configured provider keys. They are embedded in
// the mock checkout URL and never sent anywhere.
type GatewayConfig struct {
	PaystackKey    string
	FlutterwaveKey string
}

type enrollmentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	gateway   GatewayConfig
	logger    *slog.Logger
	validator *utils.Validator
}

func NewEnrollmentService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	gateway GatewayConfig,
	logger *slog.Logger,
	validator *utils.Validator,
) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		publisher: publisher,
		gateway:   gateway,
		logger:    logger,
		validator: validator,
	}
}

func (s *enrollmentService) Create(ctx context.Context, req *CreateEnrollmentRequest) (*EnrollmentResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	user, err := s.repo.Users().GetByID(ctx, req.UserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	reference := GenerateReference(user.ID)
	enrollment := &models.Enrollment{
		UserID:           user.ID,
		CourseType:       req.CourseType,
		Price:            req.Price,
		PaymentMethod:    req.PaymentMethod,
		PaymentStatus:    models.PaymentPending,
		PaymentReference: reference,
		EnrolledAt:       time.Now(),
	}

	if err := s.repo.Enrollments().Create(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	if err := s.publisher.PublishEvent(ctx, events.NewEnrollmentCreatedEvent(enrollment)); err != nil {
		s.logger.Warn("Failed to publish enrollment created event", "enrollment_id", enrollment.ID, "error", err)
	}

	s.logger.Info("Enrollment created",
		"enrollment_id", enrollment.ID,
		"user_id", user.ID,
		"reference", reference)

	return &EnrollmentResponse{
		Enrollment: enrollment,
		Reference:  reference,
		PaymentURL: s.mockPaymentURL(enrollment),
	}, nil
}

// VerifyPayment marks the referenced enrollment completed and returns it
// joined with its user. An unknown reference mutates nothing.
func (s *enrollmentService) VerifyPayment(ctx context.Context, reference string) (*models.Enrollment, error) {
	enrollment, err := s.repo.Enrollments().GetByReference(ctx, reference)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	if enrollment.PaymentStatus != models.PaymentCompleted {
		if err := s.repo.Enrollments().UpdateStatus(ctx, enrollment.ID, models.PaymentCompleted); err != nil {
			return nil, fmt.Errorf("failed to update payment status: %w", err)
		}
		enrollment.PaymentStatus = models.PaymentCompleted

		if err := s.publisher.PublishEvent(ctx, events.NewEnrollmentCompletedEvent(enrollment)); err != nil {
			s.logger.Warn("Failed to publish enrollment completed event", "enrollment_id", enrollment.ID, "error", err)
		}
	}

	s.logger.Info("Payment verified",
		"enrollment_id", enrollment.ID,
		"user_id", enrollment.UserID,
		"reference", reference)

	return enrollment, nil
}

func (s *enrollmentService) GetByReference(ctx context.Context, reference string) (*models.Enrollment, error) {
	enrollment, err := s.repo.Enrollments().GetByReference(ctx, reference)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return enrollment, nil
}

func (s *enrollmentService) GetByUser(ctx context.Context, userID uint) ([]*models.Enrollment, error) {
	enrollments, err := s.repo.Enrollments().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user enrollments: %w", err)
	}
	return enrollments, nil
}

func (s *enrollmentService) List(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error) {
	enrollments, total, err := s.repo.Enrollments().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, total, nil
}

// GenerateReference builds an opaque payment reference:
// ENR-<userID>-<unix nanos>-<uuid fragment>.
func GenerateReference(userID uint) string {
	fragment := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("ENR-%d-%d-%s", userID, time.Now().UnixNano(), fragment)
}

func (s *enrollmentService) mockPaymentURL(e *models.Enrollment) string {
	// Mirrors the checkout URL shape of the configured provider without
	// making an API call.
	if e.PaymentMethod == "card" && s.gateway.PaystackKey != "" {
		return fmt.Sprintf("https://checkout.paystack.com/mock/%s", e.PaymentReference)
	}
	if s.gateway.FlutterwaveKey != "" {
		return fmt.Sprintf("https://checkout.flutterwave.com/mock/%s", e.PaymentReference)
	}
	return fmt.Sprintf("https://payments.example.com/checkout/%s", e.PaymentReference)
}
