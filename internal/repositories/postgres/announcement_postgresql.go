package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/skillforge/course-service/internal/models"
	"github.com/skillforge/course-service/internal/repositories"
	"gorm.io/gorm"
)

type AnnouncementPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewAnnouncementPostgreSQL(db *gorm.DB) repositories.AnnouncementRepository {
	return &AnnouncementPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (a *AnnouncementPostgreSQL) Create(ctx context.Context, announcement *models.Announcement) error {
	if err := a.db.WithContext(ctx).Create(announcement).Error; err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}
	return nil
}

func (a *AnnouncementPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := a.db.WithContext(ctx).First(&announcement, id).Error; err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (a *AnnouncementPostgreSQL) Update(ctx context.Context, announcement *models.Announcement) error {
	return a.db.WithContext(ctx).Save(announcement).Error
}

func (a *AnnouncementPostgreSQL) Delete(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Unscoped().Delete(&models.Announcement{}, id).Error
}

func (a *AnnouncementPostgreSQL) ListActiveFor(ctx context.Context, audience string) ([]*models.Announcement, error) {
	var announcements []*models.Announcement
	err := a.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Where("target_audience = ? OR target_audience = ?", models.AudienceAll, audience).
		Order("CASE priority WHEN 'high' THEN 2 WHEN 'normal' THEN 1 ELSE 0 END DESC, created_at DESC").
		Find(&announcements).Error
	return announcements, err
}

func (a *AnnouncementPostgreSQL) List(ctx context.Context, filters repositories.AnnouncementFilters) ([]*models.Announcement, int64, error) {
	query := a.db.WithContext(ctx).Model(&models.Announcement{})

	if filters.Audience != "" {
		query = query.Where("target_audience = ?", filters.Audience)
	}
	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = a.helpers.ApplyPaginationAndSort(query, "created_at", "desc", filters.Limit, filters.Offset)

	var announcements []*models.Announcement
	if err := query.Find(&announcements).Error; err != nil {
		return nil, 0, err
	}
	return announcements, total, nil
}
