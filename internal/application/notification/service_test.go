package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tradeworks/backend/internal/domain/notification"
	"github.com/tradeworks/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MockRepository is a mock implementation of notification.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context, filter shared.Filter) ([]notification.Notification, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockRepository) FindUnread(ctx context.Context, filter shared.Filter) ([]notification.Notification, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) MarkAllRead(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newService(t *testing.T, min notification.Severity) (*Service, *MockRepository) {
	t.Helper()
	repo := new(MockRepository)
	return NewService(repo, notification.NewSeverityFilter(min), zap.NewNop()), repo
}

func TestService_Publish(t *testing.T) {
	t.Run("stores notification at or above minimum severity", func(t *testing.T) {
		service, repo := newService(t, notification.SeverityWarning)

		repo.On("Save", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
			return n.Severity == notification.SeverityError && n.Title == "Upload failed"
		})).Return(nil)

		err := service.Publish(context.Background(), notification.SeverityError, "Upload failed", "S3 rejected the object")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("drops notification below minimum severity", func(t *testing.T) {
		service, repo := newService(t, notification.SeverityWarning)

		err := service.Publish(context.Background(), notification.SeverityInfo, "Backup done", "")

		require.NoError(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		service, repo := newService(t, notification.SeverityInfo)

		err := service.Publish(context.Background(), notification.SeverityInfo, "", "no title")

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestService_List(t *testing.T) {
	t.Run("unread only uses the unread query", func(t *testing.T) {
		service, repo := newService(t, notification.SeverityInfo)

		n, err := notification.NewNotification(notification.SeverityWarning, "Low stock", "PVC-20MM")
		require.NoError(t, err)
		repo.On("FindUnread", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			return f.OrderBy == "created_at" && f.OrderDir == "desc" && f.PageSize == 20
		})).Return([]notification.Notification{*n}, nil)

		responses, err := service.List(context.Background(), NotificationListFilter{UnreadOnly: true})

		require.NoError(t, err)
		require.Len(t, responses, 1)
		assert.Equal(t, "warning", responses[0].Severity)
		assert.False(t, responses[0].Read)
		repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})
}

func TestService_MarkRead(t *testing.T) {
	t.Run("marks and persists", func(t *testing.T) {
		service, repo := newService(t, notification.SeverityInfo)

		n, err := notification.NewNotification(notification.SeverityInfo, "Invoice paid", "INV-1001")
		require.NoError(t, err)
		repo.On("FindByID", mock.Anything, n.ID).Return(n, nil)
		repo.On("Save", mock.Anything, n).Return(nil)

		resp, err := service.MarkRead(context.Background(), n.ID)

		require.NoError(t, err)
		assert.True(t, resp.Read)
		assert.NotNil(t, resp.ReadAt)
	})

	t.Run("missing notification surfaces not found", func(t *testing.T) {
		service, repo := newService(t, notification.SeverityInfo)

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.MarkRead(context.Background(), id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
