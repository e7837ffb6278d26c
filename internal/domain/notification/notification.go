package notification

import (
	"strings"
	"time"

	"github.com/tradeworks/backend/internal/domain/shared"
)

// Severity ranks notifications from informational to error
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// IsValid checks if the severity is known
func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError:
		return true
	}
	return false
}

// String returns the string representation of Severity
func (s Severity) String() string {
	return string(s)
}

// rank orders severities for filtering. Success sits with info so
// operational noise can be filtered without losing warnings.
func (s Severity) rank() int {
	switch s {
	case SeverityInfo:
		return 0
	case SeveritySuccess:
		return 1
	case SeverityWarning:
		return 2
	case SeverityError:
		return 3
	}
	return -1
}

// AtLeast reports whether the severity ranks at or above the minimum
func (s Severity) AtLeast(min Severity) bool {
	return s.rank() >= min.rank()
}

// Notification is a message shown to the operator about a business
// event, such as a low-stock item or an overdue invoice.
type Notification struct {
	shared.BaseEntity
	Severity Severity `gorm:"type:varchar(10);not null;default:'info'"`
	Title    string   `gorm:"type:varchar(200);not null"`
	Message  string   `gorm:"type:text"`
	Read     bool     `gorm:"not null;default:false"`
	ReadAt   *time.Time
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates an unread notification
func NewNotification(severity Severity, title, message string) (*Notification, error) {
	title = strings.TrimSpace(title)
	if !severity.IsValid() {
		return nil, shared.NewDomainError("INVALID_SEVERITY", "Invalid notification severity")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}

	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		Severity:   severity,
		Title:      title,
		Message:    message,
	}, nil
}

// MarkRead marks the notification as read
func (n *Notification) MarkRead() {
	if n.Read {
		return
	}
	now := time.Now()
	n.Read = true
	n.ReadAt = &now
	n.UpdatedAt = now
}

// SeverityFilter suppresses notifications below a configured minimum
// severity. The minimum is set once at startup.
type SeverityFilter struct {
	min Severity
}

// NewSeverityFilter builds a filter with the given minimum severity.
// An invalid minimum falls back to info, which allows everything.
func NewSeverityFilter(min Severity) *SeverityFilter {
	if !min.IsValid() {
		min = SeverityInfo
	}
	return &SeverityFilter{min: min}
}

// Allows reports whether a notification of the given severity passes
func (f *SeverityFilter) Allows(severity Severity) bool {
	return severity.AtLeast(f.min)
}

// Min returns the configured minimum severity
func (f *SeverityFilter) Min() Severity {
	return f.min
}
