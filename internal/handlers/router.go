package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/skillforge/course-service/internal/auth"
	"github.com/skillforge/course-service/internal/models"
	"github.com/skillforge/course-service/internal/services"
	"github.com/skillforge/course-service/internal/utils"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	catalogHandler      *CatalogHandler
	enrollmentHandler   *EnrollmentHandler
	progressHandler     *ProgressHandler
	announcementHandler *AnnouncementHandler
	analyticsHandler    *AnalyticsHandler

	sessions auth.SessionStore
}

// RouterConfig carries the handler-level knobs that come from deployment
// configuration rather than from services.
type RouterConfig struct {
	SessionCookieTTL int
	SecureCookies    bool
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	sessions auth.SessionStore,
	cfg RouterConfig,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.Auth(), cfg.SessionCookieTTL, cfg.SecureCookies, logger),
		catalogHandler:      NewCatalogHandler(serviceManager.Catalog(), logger),
		enrollmentHandler:   NewEnrollmentHandler(serviceManager.Enrollment(), logger),
		progressHandler:     NewProgressHandler(serviceManager.Progress(), logger),
		announcementHandler: NewAnnouncementHandler(serviceManager.Announcement(), logger),
		analyticsHandler:    NewAnalyticsHandler(serviceManager.Analytics(), serviceManager.Enrollment(), logger),
		sessions:            sessions,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "course-service",
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(SessionMiddleware(hm.sessions))
	v1.Use(CSRFMiddleware())
	{
		// Auth routes
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", hm.authHandler.Register)
			authGroup.POST("/login", hm.authHandler.Login)
			authGroup.POST("/logout", hm.authHandler.Logout)
			authGroup.GET("/me", hm.authHandler.Me)
		}

		// Public catalog routes
		courses := v1.Group("/courses")
		{
			courses.GET("", hm.catalogHandler.ListCourses)
			courses.GET("/:id", hm.catalogHandler.GetCourse)

			// Enrolled content requires a session
			courses.GET("/:id/content",
				RequireRole(models.RoleStudent, models.RoleTeacher),
				hm.catalogHandler.GetCourseContent)
		}

		// Catalog management (teachers and admins)
		manage := v1.Group("")
		manage.Use(RequireRole(models.RoleTeacher))
		{
			manage.POST("/courses", hm.catalogHandler.CreateCourse)
			manage.PUT("/courses/:id", hm.catalogHandler.UpdateCourse)
			manage.DELETE("/courses/:id", hm.catalogHandler.DeleteCourse)

			manage.POST("/modules", hm.catalogHandler.CreateModule)
			manage.PUT("/modules/:id", hm.catalogHandler.UpdateModule)
			manage.DELETE("/modules/:id", hm.catalogHandler.DeleteModule)

			manage.POST("/lessons", hm.catalogHandler.CreateLesson)
			manage.GET("/lessons/:id", hm.catalogHandler.GetLesson)
			manage.PUT("/lessons/:id", hm.catalogHandler.UpdateLesson)
			manage.DELETE("/lessons/:id", hm.catalogHandler.DeleteLesson)
			manage.POST("/lessons/:id/file", hm.catalogHandler.UploadLessonFile)
		}

		// Payments
		payments := v1.Group("/payments")
		{
			payments.POST("/initiate",
				RequireRole(models.RoleStudent),
				hm.enrollmentHandler.InitiatePayment)
			payments.GET("/verify", hm.enrollmentHandler.VerifyPayment)
		}

		// Enrollments and progress for the authenticated user
		me := v1.Group("")
		me.Use(RequireRole(models.RoleStudent, models.RoleTeacher))
		{
			me.GET("/enrollments", hm.enrollmentHandler.MyEnrollments)
			me.POST("/progress/complete", hm.progressHandler.CompleteLesson)
			me.GET("/progress", hm.progressHandler.MyProgress)
			me.GET("/progress/courses/:course_id", hm.progressHandler.CourseCompletion)
		}

		// Announcement board
		v1.GET("/announcements",
			RequireRole(models.RoleStudent, models.RoleTeacher),
			hm.announcementHandler.ListActive)

		// Testimonials
		v1.GET("/testimonials", hm.analyticsHandler.ListTestimonials)
		v1.POST("/testimonials",
			RequireRole(models.RoleStudent),
			hm.analyticsHandler.CreateTestimonial)

		// Admin surface
		admin := v1.Group("/admin")
		admin.Use(RequireRole(models.RoleAdmin))
		{
			admin.GET("/stats", hm.analyticsHandler.PlatformStats)
			admin.GET("/enrollments", hm.analyticsHandler.ListEnrollments)
			admin.GET("/enrollments/export", hm.analyticsHandler.ExportEnrollments)

			admin.GET("/announcements", hm.announcementHandler.ListAll)
			admin.POST("/announcements", hm.announcementHandler.Create)
			admin.PUT("/announcements/:id", hm.announcementHandler.Update)
			admin.POST("/announcements/:id/toggle", hm.announcementHandler.Toggle)
			admin.DELETE("/announcements/:id", hm.announcementHandler.Delete)

			admin.PUT("/testimonials/:id/publish", hm.analyticsHandler.PublishTestimonial)
		}
	}
}
