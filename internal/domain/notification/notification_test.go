package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	t.Run("should create unread notification", func(t *testing.T) {
		n, err := NewNotification(SeverityWarning, "Low stock", "PVC pipe 20mm is below threshold")
		require.NoError(t, err)

		assert.Equal(t, SeverityWarning, n.Severity)
		assert.False(t, n.Read)
		assert.Nil(t, n.ReadAt)
	})

	t.Run("should fail with invalid severity", func(t *testing.T) {
		_, err := NewNotification(Severity("debug"), "Title", "")
		assert.Error(t, err)
	})

	t.Run("should fail with empty title", func(t *testing.T) {
		_, err := NewNotification(SeverityInfo, "  ", "")
		assert.Error(t, err)
	})
}

func TestMarkRead(t *testing.T) {
	n, err := NewNotification(SeverityInfo, "Quotation sent", "Q-1001 was sent")
	require.NoError(t, err)

	n.MarkRead()
	require.True(t, n.Read)
	require.NotNil(t, n.ReadAt)

	first := *n.ReadAt
	n.MarkRead()
	assert.Equal(t, first, *n.ReadAt)
}

func TestSeverityFilter(t *testing.T) {
	t.Run("minimum warning suppresses info and success", func(t *testing.T) {
		f := NewSeverityFilter(SeverityWarning)

		assert.False(t, f.Allows(SeverityInfo))
		assert.False(t, f.Allows(SeveritySuccess))
		assert.True(t, f.Allows(SeverityWarning))
		assert.True(t, f.Allows(SeverityError))
	})

	t.Run("minimum info allows everything", func(t *testing.T) {
		f := NewSeverityFilter(SeverityInfo)

		for _, s := range []Severity{SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError} {
			assert.True(t, f.Allows(s), "severity %s", s)
		}
	})

	t.Run("invalid minimum falls back to info", func(t *testing.T) {
		f := NewSeverityFilter(Severity("verbose"))
		assert.Equal(t, SeverityInfo, f.Min())
	})
}
