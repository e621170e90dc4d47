package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/skillforge/course-service/internal/events"
	"github.com/skillforge/course-service/internal/models"
	"github.com/skillforge/course-service/internal/repositories"
	"github.com/skillforge/course-service/internal/utils"
)

func seedUser(t *testing.T, repo *fakeRepository, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "x",
		FullName:     "Test Student",
		Role:         models.RoleStudent,
		IsActive:     true,
	}
	if err := repo.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return user
}

func TestEnrollmentService_Create(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewEnrollmentService(repo, publisher, GatewayConfig{}, testLogger(), utils.NewValidator())

	user := seedUser(t, repo, "student@example.com")

	t.Run("CreatesPendingEnrollment", func(t *testing.T) {
		resp, err := svc.Create(ctx, &CreateEnrollmentRequest{
			UserID:        user.ID,
			CourseType:    "fullstack-bootcamp",
			Price:         50000,
			PaymentMethod: "card",
		})
		if err != nil {
			t.Fatalf("Failed to create enrollment: %v", err)
		}

		if resp.Enrollment.PaymentStatus != models.PaymentPending {
			t.Errorf("Expected pending status, got %s", resp.Enrollment.PaymentStatus)
		}
		if resp.Reference == "" || resp.Reference != resp.Enrollment.PaymentReference {
			t.Errorf("Reference mismatch: %q vs %q", resp.Reference, resp.Enrollment.PaymentReference)
		}
		if !strings.HasPrefix(resp.Reference, "ENR-") {
			t.Errorf("Reference should carry the ENR prefix, got %q", resp.Reference)
		}
		if resp.PaymentURL == "" {
			t.Error("Payment URL should be set")
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(published))
		}
		if published[0].Type != events.EventEnrollmentCreated {
			t.Errorf("Expected %s, got %s", events.EventEnrollmentCreated, published[0].Type)
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := svc.Create(ctx, &CreateEnrollmentRequest{
			UserID:        9999,
			CourseType:    "fullstack-bootcamp",
			Price:         50000,
			PaymentMethod: "card",
		})
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("UnsupportedPaymentMethod", func(t *testing.T) {
		_, err := svc.Create(ctx, &CreateEnrollmentRequest{
			UserID:        user.ID,
			CourseType:    "fullstack-bootcamp",
			Price:         50000,
			PaymentMethod: "cheque",
		})
		if !IsValidation(err) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})
}

func TestEnrollmentService_VerifyPayment(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewEnrollmentService(repo, publisher, GatewayConfig{}, testLogger(), utils.NewValidator())

	user := seedUser(t, repo, "payer@example.com")
	resp, err := svc.Create(ctx, &CreateEnrollmentRequest{
		UserID:        user.ID,
		CourseType:    "data-track",
		Price:         30000,
		PaymentMethod: "bank_transfer",
	})
	if err != nil {
		t.Fatalf("Failed to create enrollment: %v", err)
	}
	publisher.ClearEvents()

	t.Run("CompletesPendingEnrollment", func(t *testing.T) {
		enrollment, err := svc.VerifyPayment(ctx, resp.Reference)
		if err != nil {
			t.Fatalf("Failed to verify payment: %v", err)
		}
		if enrollment.PaymentStatus != models.PaymentCompleted {
			t.Errorf("Expected completed status, got %s", enrollment.PaymentStatus)
		}
		if enrollment.UserID != user.ID {
			t.Errorf("Expected user %d, got %d", user.ID, enrollment.UserID)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventEnrollmentCompleted {
			t.Fatalf("Expected one enrollment.completed event, got %v", published)
		}
	})

	t.Run("SecondVerifyIsIdempotent", func(t *testing.T) {
		publisher.ClearEvents()
		enrollment, err := svc.VerifyPayment(ctx, resp.Reference)
		if err != nil {
			t.Fatalf("Repeat verify failed: %v", err)
		}
		if enrollment.PaymentStatus != models.PaymentCompleted {
			t.Errorf("Status should stay completed, got %s", enrollment.PaymentStatus)
		}
		if len(publisher.GetPublishedEvents()) != 0 {
			t.Error("Repeat verify should not publish another event")
		}
	})

	t.Run("UnknownReferenceMutatesNothing", func(t *testing.T) {
		_, err := svc.VerifyPayment(ctx, "ENR-0-0-deadbeef")
		if !errors.Is(err, ErrEnrollmentNotFound) {
			t.Fatalf("Expected ErrEnrollmentNotFound, got %v", err)
		}

		all, _, err := repo.Enrollments().List(ctx, repositories.EnrollmentFilters{})
		if err != nil {
			t.Fatalf("Failed to list enrollments: %v", err)
		}
		if len(all) != 1 {
			t.Fatalf("Expected 1 enrollment, got %d", len(all))
		}
	})
}

func TestGenerateReference_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := GenerateReference(42)
		if seen[ref] {
			t.Fatalf("Duplicate reference generated: %s", ref)
		}
		seen[ref] = true
		if !strings.HasPrefix(ref, "ENR-42-") {
			t.Fatalf("Unexpected reference format: %s", ref)
		}
	}
}
