package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skillforge/course-service/internal/auth"
	"github.com/skillforge/course-service/internal/models"
)

func newGuardedRouter(t *testing.T, store auth.SessionStore, roles ...models.UserRole) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware(store))
	router.Use(CSRFMiddleware())
	router.GET("/guarded", RequireRole(roles...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.POST("/guarded", RequireRole(roles...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func loginAs(t *testing.T, store auth.SessionStore, role models.UserRole) *auth.Session {
	t.Helper()
	session, err := store.Create(context.Background(), auth.Principal{UserID: 1, Role: role})
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return session
}

func TestRequireRole(t *testing.T) {
	store := auth.NewMemorySessionStore()
	router := newGuardedRouter(t, store, models.RoleTeacher)

	t.Run("NoSessionIs401", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("WrongRoleIs403", func(t *testing.T) {
		session := loginAs(t, store, models.RoleStudent)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.ID})
		router.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Errorf("Expected 403, got %d", w.Code)
		}
	})

	t.Run("MatchingRolePasses", func(t *testing.T) {
		session := loginAs(t, store, models.RoleTeacher)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.ID})
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("AdminPassesAnyGuard", func(t *testing.T) {
		session := loginAs(t, store, models.RoleAdmin)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.ID})
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("StaleCookieIs401", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "expired-session-id"})
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})
}

func TestCSRFMiddleware(t *testing.T) {
	store := auth.NewMemorySessionStore()
	router := newGuardedRouter(t, store, models.RoleStudent)
	session := loginAs(t, store, models.RoleStudent)

	t.Run("PostWithoutTokenIs403", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.ID})
		router.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Errorf("Expected 403, got %d", w.Code)
		}
	})

	t.Run("PostWithTokenPasses", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.ID})
		req.Header.Set(CSRFHeaderName, session.CSRFToken)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("GetNeedsNoToken", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.ID})
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("WrongTokenIs403", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.ID})
		req.Header.Set(CSRFHeaderName, "forged-token")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Errorf("Expected 403, got %d", w.Code)
		}
	})
}
