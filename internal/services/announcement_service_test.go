package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skillforge/course-service/internal/events"
	"github.com/skillforge/course-service/internal/models"
	"github.com/skillforge/course-service/internal/utils"
)

func newTestAnnouncementService(repo *fakeRepository, publisher events.EventPublisher) AnnouncementService {
	return NewAnnouncementService(repo, publisher, testLogger(), utils.NewValidator())
}

func TestAnnouncementService_Create(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newTestAnnouncementService(repo, publisher)

	t.Run("DefaultsAndEvent", func(t *testing.T) {
		announcement, err := svc.Create(ctx, &CreateAnnouncementRequest{
			Title:   "Maintenance window",
			Message: "The platform will be briefly unavailable on Saturday.",
		})
		if err != nil {
			t.Fatalf("Failed to create announcement: %v", err)
		}

		if announcement.Priority != models.PriorityNormal {
			t.Errorf("Expected normal priority default, got %s", announcement.Priority)
		}
		if announcement.TargetAudience != models.AudienceAll {
			t.Errorf("Expected audience %q default, got %q", models.AudienceAll, announcement.TargetAudience)
		}
		if !announcement.IsActive {
			t.Error("New announcements should start active")
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventAnnouncementPublished {
			t.Fatalf("Expected one announcement.published event, got %v", published)
		}
	})

	t.Run("InvalidPriority", func(t *testing.T) {
		_, err := svc.Create(ctx, &CreateAnnouncementRequest{
			Title:    "Bad",
			Message:  "Bad",
			Priority: "urgent",
		})
		if !IsValidation(err) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})
}

func TestAnnouncementService_Toggle(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := newTestAnnouncementService(repo, events.NewMockEventPublisher(testLogger()))

	announcement, err := svc.Create(ctx, &CreateAnnouncementRequest{
		Title:   "New cohort",
		Message: "Enrollment for the October cohort is open.",
	})
	if err != nil {
		t.Fatalf("Failed to create announcement: %v", err)
	}

	toggled, err := svc.Toggle(ctx, announcement.ID)
	if err != nil {
		t.Fatalf("Failed to toggle: %v", err)
	}
	if toggled.IsActive {
		t.Error("First toggle should deactivate")
	}

	toggled, err = svc.Toggle(ctx, announcement.ID)
	if err != nil {
		t.Fatalf("Failed to toggle back: %v", err)
	}
	if !toggled.IsActive {
		t.Error("Second toggle should restore the original state")
	}

	if _, err := svc.Toggle(ctx, 9999); !errors.Is(err, ErrAnnouncementNotFound) {
		t.Errorf("Expected ErrAnnouncementNotFound, got %v", err)
	}
}

func TestAnnouncementService_ListActiveFor(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := newTestAnnouncementService(repo, events.NewMockEventPublisher(testLogger()))

	mustCreate := func(req *CreateAnnouncementRequest) *models.Announcement {
		t.Helper()
		a, err := svc.Create(ctx, req)
		if err != nil {
			t.Fatalf("Failed to create announcement: %v", err)
		}
		return a
	}

	low := mustCreate(&CreateAnnouncementRequest{
		Title: "Low", Message: "m", Priority: string(models.PriorityLow),
	})
	high := mustCreate(&CreateAnnouncementRequest{
		Title: "High", Message: "m", Priority: string(models.PriorityHigh),
	})
	cohortOnly := mustCreate(&CreateAnnouncementRequest{
		Title: "Cohort", Message: "m", TargetAudience: "fullstack-bootcamp",
	})

	expired := time.Now().Add(-time.Hour)
	mustCreate(&CreateAnnouncementRequest{
		Title: "Expired", Message: "m", ExpiresAt: &expired,
	})

	hidden := mustCreate(&CreateAnnouncementRequest{Title: "Hidden", Message: "m"})
	if _, err := svc.Toggle(ctx, hidden.ID); err != nil {
		t.Fatalf("Failed to hide announcement: %v", err)
	}

	t.Run("GeneralAudience", func(t *testing.T) {
		list, err := svc.ListActiveFor(ctx, models.AudienceAll)
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		// Expired, hidden and cohort-scoped rows are filtered out.
		if len(list) != 2 {
			t.Fatalf("Expected 2 announcements, got %d", len(list))
		}
		if list[0].ID != high.ID {
			t.Errorf("High priority should sort first, got %q", list[0].Title)
		}
		if list[1].ID != low.ID {
			t.Errorf("Expected low priority second, got %q", list[1].Title)
		}
	})

	t.Run("CohortAudienceSeesBoth", func(t *testing.T) {
		list, err := svc.ListActiveFor(ctx, "fullstack-bootcamp")
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("Expected 3 announcements, got %d", len(list))
		}
		found := false
		for _, a := range list {
			if a.ID == cohortOnly.ID {
				found = true
			}
		}
		if !found {
			t.Error("Cohort-scoped announcement missing from its audience's list")
		}
	})
}
