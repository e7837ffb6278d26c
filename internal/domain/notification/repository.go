package notification

import (
	"context"

	"github.com/tradeworks/backend/internal/domain/shared"
)

// Repository defines persistence operations for notifications
type Repository interface {
	shared.Repository[Notification]
	FindUnread(ctx context.Context, filter shared.Filter) ([]Notification, error)
	MarkAllRead(ctx context.Context) error
}
