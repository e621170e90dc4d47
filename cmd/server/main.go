package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/skillforge/course-service/internal/auth"
	"github.com/skillforge/course-service/internal/cache"
	"github.com/skillforge/course-service/internal/config"
	"github.com/skillforge/course-service/internal/handlers"
	"github.com/skillforge/course-service/internal/models"
	"github.com/skillforge/course-service/internal/repositories"
	"github.com/skillforge/course-service/internal/repositories/postgres"
	"github.com/skillforge/course-service/internal/services"
	"github.com/skillforge/course-service/internal/storage"
	"github.com/skillforge/course-service/internal/utils"
	"github.com/skillforge/course-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogLogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	publisher, err := cfg.Events.CreateEventPublisher(slogLogger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	cacheService := cache.NewRedisCache(redisClient, logger)
	sessions := auth.NewRedisSessionStore(redisClient, cfg.SessionTTL)
	files := storage.NewFileStore(cfg.UploadDir)

	serviceManager := services.NewServiceManager(
		repo,
		sessions,
		files,
		cacheService,
		publisher,
		services.GatewayConfig{
			PaystackKey:    cfg.PaystackKey,
			FlutterwaveKey: cfg.FlutterwaveKey,
		},
		slogLogger,
		utils.NewValidator(),
	)

	if err := seedAdmin(cfg, repo); err != nil {
		logger.Error("Failed to seed admin account", "error", err)
		os.Exit(1)
	}

	handlerManager := handlers.NewHandlerManager(serviceManager, sessions, handlers.RouterConfig{
		SessionCookieTTL: int(cfg.SessionTTL / time.Second),
		SecureCookies:    cfg.Environment == "production",
	}, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	handlerManager.SetupRoutes(router)

	logger.Info("Starting course service", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Module{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.CourseProgress{},
		&models.Announcement{},
		&models.Testimonial{},
	)
}

// seedAdmin creates the configured admin account on first boot. The password
// is stored as a bcrypt hash like any other user's.
func seedAdmin(cfg *config.Config, repo repositories.Repository) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	ctx := context.Background()
	exists, err := repo.Users().ExistsByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return repo.Users().Create(ctx, &models.User{
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Role:         models.RoleAdmin,
		IsActive:     true,
	})
}
