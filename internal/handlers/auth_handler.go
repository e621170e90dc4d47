package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillforge/course-service/internal/services"
	"github.com/skillforge/course-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
	cookieTTL   int
	secure      bool
}

// NewAuthHandler wires the auth endpoints. cookieTTL is seconds; secure
// controls the cookie's Secure flag and should be true outside development.
func NewAuthHandler(authService services.AuthService, cookieTTL int, secure bool, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
		cookieTTL:   cookieTTL,
		secure:      secure,
	}
}

// Register creates a student account. The role field is stripped here so the
// public endpoint cannot mint admins.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	req.Role = ""

	h.LogRequest(c, "Registering user", "email", req.Email)

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Registration successful",
		Data:    user,
	})
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	session, user, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.SetCookie(SessionCookieName, session.ID, h.cookieTTL, "/", "", h.secure, true)

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Login successful",
		Data: gin.H{
			"user":       user,
			"csrf_token": session.CSRFToken,
		},
	})
}

// Logout destroys the session and clears the cookie. Logging out without a
// session is not an error.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, _ := c.Cookie(SessionCookieName)

	if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.SetCookie(SessionCookieName, "", -1, "/", "", h.secure, true)
	c.JSON(http.StatusOK, SuccessResponse{Message: "Logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := h.currentPrincipal(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "OK", Data: user})
}
