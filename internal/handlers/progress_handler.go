package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillforge/course-service/internal/services"
	"github.com/skillforge/course-service/internal/utils"
)

type ProgressHandler struct {
	BaseHandler
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService, logger utils.Logger) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler:     NewBaseHandler(logger),
		progressService: progressService,
	}
}

type completeLessonRequest struct {
	CourseID uint `json:"course_id" binding:"required"`
	LessonID uint `json:"lesson_id" binding:"required"`
}

// CompleteLesson marks a lesson done for the authenticated user. Repeating
// the call is harmless.
func (h *ProgressHandler) CompleteLesson(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	var req completeLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	progress, err := h.progressService.MarkCompleted(c.Request.Context(), principal.UserID, req.CourseID, req.LessonID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Lesson completed", Data: progress})
}

// MyProgress returns every progress row for the authenticated user.
func (h *ProgressHandler) MyProgress(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	rows, err := h.progressService.GetProgress(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CourseCompletion returns the completion percentage for one course.
func (h *ProgressHandler) CourseCompletion(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	courseID := h.parseIDParam(c, "course_id")
	if courseID == 0 {
		return
	}

	stats, err := h.progressService.CourseCompletion(c.Request.Context(), principal.UserID, courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
