package postgres

import (
	"context"
	"fmt"

	"github.com/skillforge/course-service/internal/models"
	"github.com/skillforge/course-service/internal/repositories"
	"gorm.io/gorm"
)

type StatsPostgreSQL struct {
	db *gorm.DB
}

func NewStatsPostgreSQL(db *gorm.DB) repositories.StatsRepository {
	return &StatsPostgreSQL{db: db}
}

func (s *StatsPostgreSQL) GetPlatformStats(ctx context.Context) (*repositories.PlatformStats, error) {
	db := s.db.WithContext(ctx)
	stats := &repositories.PlatformStats{}

	counts := []struct {
		model  interface{}
		target *int
	}{
		{&models.User{}, &stats.TotalUsers},
		{&models.Course{}, &stats.TotalCourses},
		{&models.Module{}, &stats.TotalModules},
		{&models.Lesson{}, &stats.TotalLessons},
		{&models.Enrollment{}, &stats.TotalEnrollments},
	}
	for _, c := range counts {
		var n int64
		if err := db.Model(c.model).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("failed to count rows: %w", err)
		}
		*c.target = int(n)
	}

	var completed, pending int64
	if err := db.Model(&models.Enrollment{}).
		Where("payment_status = ?", models.PaymentCompleted).
		Count(&completed).Error; err != nil {
		return nil, fmt.Errorf("failed to count completed enrollments: %w", err)
	}
	if err := db.Model(&models.Enrollment{}).
		Where("payment_status = ?", models.PaymentPending).
		Count(&pending).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending enrollments: %w", err)
	}
	stats.CompletedEnrollments = int(completed)
	stats.PendingEnrollments = int(pending)

	var revenue *int64
	err := db.Model(&models.Enrollment{}).
		Select("SUM(price)").
		Where("payment_status = ?", models.PaymentCompleted).
		Scan(&revenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if revenue != nil {
		stats.TotalRevenue = *revenue
	}

	return stats, nil
}
