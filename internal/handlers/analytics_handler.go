package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillforge/course-service/internal/models"
	"github.com/skillforge/course-service/internal/repositories"
	"github.com/skillforge/course-service/internal/services"
	"github.com/skillforge/course-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AnalyticsHandler struct {
	BaseHandler
	analyticsService  services.AnalyticsService
	enrollmentService services.EnrollmentService
}

func NewAnalyticsHandler(
	analyticsService services.AnalyticsService,
	enrollmentService services.EnrollmentService,
	logger utils.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:       NewBaseHandler(logger),
		analyticsService:  analyticsService,
		enrollmentService: enrollmentService,
	}
}

// PlatformStats returns the admin dashboard counters.
func (h *AnalyticsHandler) PlatformStats(c *gin.Context) {
	stats, err := h.analyticsService.GetPlatformStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListEnrollments is the admin enrollment ledger with filters.
func (h *AnalyticsHandler) ListEnrollments(c *gin.Context) {
	limit, offset := h.parsePagination(c)
	filters := h.parseEnrollmentFilters(c)
	filters.Limit = limit
	filters.Offset = offset

	enrollments, total, err := h.enrollmentService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Data: enrollments, Total: total})
}

// ExportEnrollments streams the filtered enrollment list as an xlsx file.
func (h *AnalyticsHandler) ExportEnrollments(c *gin.Context) {
	filters := h.parseEnrollmentFilters(c)

	h.LogRequest(c, "Exporting enrollments")

	data, err := h.analyticsService.ExportEnrollments(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("enrollments_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *AnalyticsHandler) parseEnrollmentFilters(c *gin.Context) repositories.EnrollmentFilters {
	var filters repositories.EnrollmentFilters

	if courseType := c.Query("course_type"); courseType != "" {
		filters.CourseType = &courseType
	}
	if status := c.Query("status"); status != "" {
		s := models.PaymentStatus(status)
		filters.Status = &s
	}
	if from := c.Query("date_from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filters.DateFrom = &t
		}
	}
	if to := c.Query("date_to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filters.DateTo = &t
		}
	}
	return filters
}

// ===== TESTIMONIALS =====

// ListTestimonials returns published testimonials for the landing page.
func (h *AnalyticsHandler) ListTestimonials(c *gin.Context) {
	testimonials, err := h.analyticsService.ListPublishedTestimonials(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, testimonials)
}

func (h *AnalyticsHandler) CreateTestimonial(c *gin.Context) {
	var req services.CreateTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	testimonial, err := h.analyticsService.CreateTestimonial(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Testimonial submitted", Data: testimonial})
}

type publishTestimonialRequest struct {
	Published bool `json:"published"`
}

func (h *AnalyticsHandler) PublishTestimonial(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req publishTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	testimonial, err := h.analyticsService.PublishTestimonial(c.Request.Context(), id, req.Published)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Testimonial updated", Data: testimonial})
}
