package scheduling

import (
	"time"

	"github.com/google/uuid"
	"github.com/tradeworks/backend/internal/domain/scheduling"
)

// CreateAppointmentRequest represents a request to schedule a visit
type CreateAppointmentRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
	Title      string    `json:"title" binding:"required,min=1,max=200"`
	Category   string    `json:"category" binding:"max=100"`
	StartsAt   time.Time `json:"starts_at" binding:"required"`
	EndsAt     time.Time `json:"ends_at" binding:"required"`
	Notes      string    `json:"notes"`
}

// RescheduleRequest represents a request to move an appointment
type RescheduleRequest struct {
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
}

// AppointmentResponse represents an appointment in API responses
type AppointmentResponse struct {
	ID           uuid.UUID  `json:"id"`
	CustomerID   uuid.UUID  `json:"customer_id"`
	CustomerName string     `json:"customer_name"`
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	StartsAt     time.Time  `json:"starts_at"`
	EndsAt       time.Time  `json:"ends_at"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CalendarDayResponse is one day of the calendar view
type CalendarDayResponse struct {
	Date         string                `json:"date"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// AppointmentListFilter represents filter options for the appointment list
type AppointmentListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=scheduled confirmed completed cancelled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToAppointmentResponse converts a domain appointment to a response DTO
func ToAppointmentResponse(a *scheduling.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:           a.ID,
		CustomerID:   a.CustomerID,
		CustomerName: a.CustomerName,
		Title:        a.Title,
		Category:     a.Category,
		StartsAt:     a.StartsAt,
		EndsAt:       a.EndsAt,
		Status:       a.Status.String(),
		Notes:        a.Notes,
		CancelledAt:  a.CancelledAt,
		CompletedAt:  a.CompletedAt,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
