package services

import (
	"log/slog"

	"github.com/skillforge/course-service/internal/auth"
	"github.com/skillforge/course-service/internal/cache"
	"github.com/skillforge/course-service/internal/events"
	"github.com/skillforge/course-service/internal/repositories"
	"github.com/skillforge/course-service/internal/storage"
	"github.com/skillforge/course-service/internal/utils"
)

// ServiceManager bundles the service layer behind one handle for wiring.
type ServiceManager interface {
	Auth() AuthService
	Catalog() CatalogService
	Enrollment() EnrollmentService
	Progress() ProgressService
	Announcement() AnnouncementService
	Analytics() AnalyticsService
}

type serviceManager struct {
	auth         AuthService
	catalog      CatalogService
	enrollment   EnrollmentService
	progress     ProgressService
	announcement AnnouncementService
	analytics    AnalyticsService
}

func NewServiceManager(
	repo repositories.Repository,
	sessions auth.SessionStore,
	files *storage.FileStore,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	gateway GatewayConfig,
	logger *slog.Logger,
	validator *utils.Validator,
) ServiceManager {
	return &serviceManager{
		auth:         NewAuthService(repo, sessions, logger, validator),
		catalog:      NewCatalogService(repo, files, cacheService, logger, validator),
		enrollment:   NewEnrollmentService(repo, publisher, gateway, logger, validator),
		progress:     NewProgressService(repo, publisher, logger),
		announcement: NewAnnouncementService(repo, publisher, logger, validator),
		analytics:    NewAnalyticsService(repo, logger, validator),
	}
}

func (m *serviceManager) Auth() AuthService                 { return m.auth }
func (m *serviceManager) Catalog() CatalogService           { return m.catalog }
func (m *serviceManager) Enrollment() EnrollmentService     { return m.enrollment }
func (m *serviceManager) Progress() ProgressService         { return m.progress }
func (m *serviceManager) Announcement() AnnouncementService { return m.announcement }
func (m *serviceManager) Analytics() AnalyticsService       { return m.analytics }
