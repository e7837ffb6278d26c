package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tradeworks/backend/internal/domain/shared"
)

// AppointmentRepository defines persistence operations for appointments
type AppointmentRepository interface {
	shared.Repository[Appointment]
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Appointment, error)
	FindInRange(ctx context.Context, from, to time.Time) ([]Appointment, error)
}
