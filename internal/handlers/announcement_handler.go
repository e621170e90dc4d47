package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillforge/course-service/internal/models"
	"github.com/skillforge/course-service/internal/repositories"
	"github.com/skillforge/course-service/internal/services"
	"github.com/skillforge/course-service/internal/utils"
)

type AnnouncementHandler struct {
	BaseHandler
	announcementService services.AnnouncementService
}

func NewAnnouncementHandler(announcementService services.AnnouncementService, logger utils.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		BaseHandler:         NewBaseHandler(logger),
		announcementService: announcementService,
	}
}

// ListActive is the board every logged-in user sees: active, unexpired
// announcements for their audience.
func (h *AnnouncementHandler) ListActive(c *gin.Context) {
	audience := c.Query("audience")
	if audience == "" {
		audience = models.AudienceAll
	}

	announcements, err := h.announcementService.ListActiveFor(c.Request.Context(), audience)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, announcements)
}

// ListAll is the admin view, including inactive and expired rows.
func (h *AnnouncementHandler) ListAll(c *gin.Context) {
	limit, offset := h.parsePagination(c)
	filters := repositories.AnnouncementFilters{
		Audience: c.Query("audience"),
		Limit:    limit,
		Offset:   offset,
	}

	announcements, total, err := h.announcementService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Data: announcements, Total: total})
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req services.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating announcement", "title", req.Title)

	announcement, err := h.announcementService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Announcement created", Data: announcement})
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	announcement, err := h.announcementService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Announcement updated", Data: announcement})
}

// Toggle flips the announcement's visibility.
func (h *AnnouncementHandler) Toggle(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	announcement, err := h.announcementService.Toggle(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Announcement toggled", Data: announcement})
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.announcementService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Announcement deleted"})
}
