package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/skillforge/course-service/internal/errors"
	"github.com/skillforge/course-service/internal/models"
	"github.com/skillforge/course-service/internal/repositories"
	"github.com/skillforge/course-service/internal/utils"
)

// AnalyticsService backs the admin dashboard: platform counters, enrollment
// exports and testimonial curation.
type AnalyticsService interface {
	GetPlatformStats(ctx context.Context) (*repositories.PlatformStats, error)
	ExportEnrollments(ctx context.Context, filters repositories.EnrollmentFilters) ([]byte, error)

	CreateTestimonial(ctx context.Context, req *CreateTestimonialRequest) (*models.Testimonial, error)
	PublishTestimonial(ctx context.Context, id uint, published bool) (*models.Testimonial, error)
	ListPublishedTestimonials(ctx context.Context) ([]*models.Testimonial, error)
}

type CreateTestimonialRequest struct {
	AuthorName  string `json:"author_name" validate:"required,min=1,max=100"`
	CourseLabel string `json:"course_label" validate:"omitempty,max=100"`
	Content     string `json:"content" validate:"required,min=1,max=2000"`
	Rating      int    `json:"rating" validate:"min=1,max=5"`
}

type analyticsService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *utils.Validator
}

func NewAnalyticsService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *utils.Validator,
) AnalyticsService {
	return &analyticsService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *analyticsService) GetPlatformStats(ctx context.Context) (*repositories.PlatformStats, error) {
	stats, err := s.repo.Stats().GetPlatformStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get platform stats: %w", err)
	}
	return stats, nil
}

var enrollmentExportHeader = []string{
	"Reference", "Email", "Full Name", "Course", "Price",
	"Payment Method", "Status", "Enrolled At",
}

// ExportEnrollments renders the filtered enrollment list as an xlsx
// workbook for offline reconciliation.
func (s *analyticsService) ExportEnrollments(ctx context.Context, filters repositories.EnrollmentFilters) ([]byte, error) {
	// Exports ignore pagination; the filter narrows the set instead.
	enrollments, err := s.repo.Enrollments().ListAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Enrollments"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range enrollmentExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, e := range enrollments {
		row := []interface{}{
			e.PaymentReference,
			e.User.Email,
			e.User.FullName,
			e.CourseType,
			e.Price,
			e.PaymentMethod,
			string(e.PaymentStatus),
			e.EnrolledAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.Info("Enrollments exported", "rows", len(enrollments))
	return buf.Bytes(), nil
}

func (s *analyticsService) CreateTestimonial(ctx context.Context, req *CreateTestimonialRequest) (*models.Testimonial, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	testimonial := &models.Testimonial{
		AuthorName:  req.AuthorName,
		CourseLabel: req.CourseLabel,
		Content:     req.Content,
		Rating:      req.Rating,
		IsPublished: false,
	}
	if err := s.repo.Testimonials().Create(ctx, testimonial); err != nil {
		return nil, fmt.Errorf("failed to create testimonial: %w", err)
	}
	return testimonial, nil
}

func (s *analyticsService) PublishTestimonial(ctx context.Context, id uint, published bool) (*models.Testimonial, error) {
	testimonial, err := s.repo.Testimonials().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTestimonialNotFound
		}
		return nil, fmt.Errorf("failed to get testimonial: %w", err)
	}

	testimonial.IsPublished = published
	if err := s.repo.Testimonials().Update(ctx, testimonial); err != nil {
		return nil, fmt.Errorf("failed to update testimonial: %w", err)
	}
	return testimonial, nil
}

func (s *analyticsService) ListPublishedTestimonials(ctx context.Context) ([]*models.Testimonial, error) {
	testimonials, err := s.repo.Testimonials().ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return testimonials, nil
}
