package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillforge/course-service/internal/services"
	"github.com/skillforge/course-service/internal/utils"
)

type EnrollmentHandler struct {
	BaseHandler
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService services.EnrollmentService, logger utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		enrollmentService: enrollmentService,
	}
}

type initiatePaymentRequest struct {
	CourseType    string `json:"course_type"`
	Price         int    `json:"price"`
	PaymentMethod string `json:"payment_method"`
}

// InitiatePayment opens a pending enrollment for the authenticated user and
// returns the reference and checkout URL.
func (h *EnrollmentHandler) InitiatePayment(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	var req initiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Initiating payment", "course_type", req.CourseType)

	response, err := h.enrollmentService.Create(c.Request.Context(), &services.CreateEnrollmentRequest{
		UserID:        principal.UserID,
		CourseType:    req.CourseType,
		Price:         req.Price,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Payment initiated", Data: response})
}

// VerifyPayment resolves a reference to a completed enrollment.
func (h *EnrollmentHandler) VerifyPayment(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing reference parameter",
		})
		return
	}

	h.LogRequest(c, "Verifying payment", "reference", reference)

	enrollment, err := h.enrollmentService.VerifyPayment(c.Request.Context(), reference)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Payment verified", Data: enrollment})
}

// MyEnrollments lists the authenticated user's enrollments.
func (h *EnrollmentHandler) MyEnrollments(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	enrollments, err := h.enrollmentService.GetByUser(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollments)
}
