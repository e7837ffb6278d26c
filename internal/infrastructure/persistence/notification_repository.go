package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tradeworks/backend/internal/domain/notification"
	"github.com/tradeworks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Ensure GormNotificationRepository implements notification.Repository
var _ notification.Repository = (*GormNotificationRepository)(nil)

// GormNotificationRepository implements notification.Repository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindByID finds a notification by its ID
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	var n notification.Notification
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// FindAll finds all notifications matching the filter
func (r *GormNotificationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]notification.Notification, error) {
	var notifications []notification.Notification
	query := r.db.WithContext(ctx).Model(&notification.Notification{})
	if severity, ok := filter.Filters["severity"]; ok {
		query = query.Where("severity = ?", severity)
	}
	if err := applyFilter(query, filter).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// FindUnread finds notifications that have not been marked read
func (r *GormNotificationRepository) FindUnread(ctx context.Context, filter shared.Filter) ([]notification.Notification, error) {
	var notifications []notification.Notification
	query := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("read = ?", false)
	if err := applyFilter(query, filter).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkAllRead marks every unread notification as read
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("read = ?", false).
		Updates(map[string]interface{}{"read": true, "read_at": now}).Error
}

// Save inserts or updates a notification
func (r *GormNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

// Delete removes a notification by ID
func (r *GormNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&notification.Notification{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of notifications
func (r *GormNotificationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&notification.Notification{})
	if unread, ok := filter.Filters["unread"]; ok && unread == "true" {
		query = query.Where("read = ?", false)
	}
	err := query.Count(&count).Error
	return count, err
}
