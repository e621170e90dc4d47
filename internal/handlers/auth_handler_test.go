package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skillforge/course-service/internal/auth"
	"github.com/skillforge/course-service/internal/models"
	"github.com/skillforge/course-service/internal/services"
	"github.com/skillforge/course-service/internal/utils"
)

// stubAuthService lets handler tests script service outcomes per call.
type stubAuthService struct {
	register func(ctx context.Context, req *services.RegisterRequest) (*models.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
	return s.register(ctx, req)
}

func (s *stubAuthService) Login(ctx context.Context, req *services.LoginRequest) (*auth.Session, *models.User, error) {
	return nil, nil, services.ErrInvalidCredentials
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error { return nil }

func (s *stubAuthService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	return nil, services.ErrUserNotFound
}

func newAuthTestRouter(svc services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(svc, 3600, false, utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	router := gin.New()
	router.POST("/register", handler.Register)
	return router
}

func registerPayload() string {
	return `{"email":"a@b.com","password":"secret123","full_name":"A B","phone":"08012345678"}`
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := &stubAuthService{
			register: func(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
				return &models.User{Email: req.Email, Role: models.RoleStudent}, nil
			},
		}
		router := newAuthTestRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(registerPayload()))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Errorf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("DuplicateEmailIs400", func(t *testing.T) {
		svc := &stubAuthService{
			register: func(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
				return nil, services.ErrEmailAlreadyExists
			},
		}
		router := newAuthTestRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(registerPayload()))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for a duplicate email, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "already exists") {
			t.Errorf("Response should carry an already exists message, got %s", w.Body.String())
		}
	})
}
