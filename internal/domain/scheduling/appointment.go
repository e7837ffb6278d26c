package scheduling

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tradeworks/backend/internal/domain/shared"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// IsValid checks if the status is a valid AppointmentStatus
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of AppointmentStatus
func (s AppointmentStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	switch s {
	case AppointmentStatusScheduled:
		return target == AppointmentStatusConfirmed || target == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return target == AppointmentStatusCompleted || target == AppointmentStatusCancelled
	case AppointmentStatusCompleted, AppointmentStatusCancelled:
		return false // Terminal states
	}
	return false
}

// Appointment represents a scheduled service visit for a customer
type Appointment struct {
	shared.BaseAggregateRoot
	CustomerID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	CustomerName string            `gorm:"type:varchar(200);not null"`
	Title        string            `gorm:"type:varchar(200);not null"`
	Category     string            `gorm:"type:varchar(100)"` // Service category name
	StartsAt     time.Time         `gorm:"not null;index"`
	EndsAt       time.Time         `gorm:"not null"`
	Status       AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled'"`
	Notes        string            `gorm:"type:text"`
	CancelledAt  *time.Time
	CompletedAt  *time.Time
}

// TableName returns the table name for GORM
func (Appointment) TableName() string {
	return "appointments"
}

// NewAppointment creates a new appointment in scheduled status
func NewAppointment(customerID uuid.UUID, customerName, title, category string, startsAt, endsAt time.Time) (*Appointment, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Appointment title cannot be empty")
	}
	if startsAt.IsZero() || endsAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_TIME", "Start and end times are required")
	}
	if !endsAt.After(startsAt) {
		return nil, shared.NewDomainError("INVALID_TIME", "End time must be after start time")
	}

	return &Appointment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		CustomerName:      customerName,
		Title:             strings.TrimSpace(title),
		Category:          category,
		StartsAt:          startsAt,
		EndsAt:            endsAt,
		Status:            AppointmentStatusScheduled,
	}, nil
}

// Reschedule moves the appointment to a new time window
// Only allowed before completion or cancellation
func (a *Appointment) Reschedule(startsAt, endsAt time.Time) error {
	if a.Status == AppointmentStatusCompleted || a.Status == AppointmentStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot reschedule a completed or cancelled appointment")
	}
	if !endsAt.After(startsAt) {
		return shared.NewDomainError("INVALID_TIME", "End time must be after start time")
	}

	a.StartsAt = startsAt
	a.EndsAt = endsAt
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// Confirm marks the appointment as confirmed by the customer
func (a *Appointment) Confirm() error {
	if !a.Status.CanTransitionTo(AppointmentStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", "Appointment cannot be confirmed from status "+a.Status.String())
	}

	a.Status = AppointmentStatusConfirmed
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// Complete marks the appointment as completed
func (a *Appointment) Complete() error {
	if !a.Status.CanTransitionTo(AppointmentStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", "Appointment cannot be completed from status "+a.Status.String())
	}

	now := time.Now()
	a.Status = AppointmentStatusCompleted
	a.CompletedAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()

	return nil
}

// Cancel cancels the appointment
func (a *Appointment) Cancel() error {
	if !a.Status.CanTransitionTo(AppointmentStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", "Appointment cannot be cancelled from status "+a.Status.String())
	}

	now := time.Now()
	a.Status = AppointmentStatusCancelled
	a.CancelledAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()

	return nil
}

// SetNotes sets the appointment notes
func (a *Appointment) SetNotes(notes string) {
	a.Notes = notes
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}
