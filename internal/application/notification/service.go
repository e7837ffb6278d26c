// Package notification publishes and manages operator notifications.
package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradeworks/backend/internal/domain/notification"
	"github.com/tradeworks/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service publishes operator notifications and serves the notification
// feed. Notifications below the configured minimum severity are dropped
// at publish time.
type Service struct {
	repo   notification.Repository
	filter *notification.SeverityFilter
	logger *zap.Logger
}

// NewService creates a new notification Service
func NewService(repo notification.Repository, filter *notification.SeverityFilter, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		filter: filter,
		logger: logger,
	}
}

// Publish stores a notification if its severity passes the filter.
// Suppressed notifications are logged at debug level and discarded.
func (s *Service) Publish(ctx context.Context, severity notification.Severity, title, message string) error {
	if !s.filter.Allows(severity) {
		s.logger.Debug("notification suppressed by severity filter",
			zap.String("severity", severity.String()),
			zap.String("title", title),
			zap.String("min_severity", s.filter.Min().String()))
		return nil
	}

	n, err := notification.NewNotification(severity, title, message)
	if err != nil {
		return err
	}
	return s.repo.Save(ctx, n)
}

// List retrieves notifications, newest first
func (s *Service) List(ctx context.Context, filter NotificationListFilter) ([]NotificationResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}

	var (
		notifications []notification.Notification
		err           error
	)
	if filter.UnreadOnly {
		notifications, err = s.repo.FindUnread(ctx, domainFilter)
	} else {
		notifications, err = s.repo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = ToNotificationResponse(&notifications[i])
	}
	return responses, nil
}

// UnreadCount returns the number of unread notifications
func (s *Service) UnreadCount(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, shared.Filter{
		Filters: map[string]interface{}{"unread": "true"},
	})
}

// MarkRead marks one notification as read
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) (*NotificationResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	n.MarkRead()
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}

	response := ToNotificationResponse(n)
	return &response, nil
}

// MarkAllRead marks every unread notification as read
func (s *Service) MarkAllRead(ctx context.Context) error {
	return s.repo.MarkAllRead(ctx)
}

// Delete removes a notification
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
