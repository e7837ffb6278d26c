package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tradeworks/backend/internal/domain/crm"
	"github.com/tradeworks/backend/internal/domain/scheduling"
	"github.com/tradeworks/backend/internal/domain/shared"
)

// AppointmentService handles appointment scheduling operations
type AppointmentService struct {
	appointmentRepo scheduling.AppointmentRepository
	customerRepo    crm.CustomerRepository
}

// NewAppointmentService creates a new AppointmentService
func NewAppointmentService(appointmentRepo scheduling.AppointmentRepository, customerRepo crm.CustomerRepository) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		customerRepo:    customerRepo,
	}
}

// Create schedules a new appointment for a customer
func (s *AppointmentService) Create(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	appointment, err := scheduling.NewAppointment(customer.ID, customer.Name, req.Title, req.Category, req.StartsAt, req.EndsAt)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		appointment.SetNotes(req.Notes)
	}

	if err := s.appointmentRepo.Save(ctx, appointment); err != nil {
		return nil, err
	}

	response := ToAppointmentResponse(appointment)
	return &response, nil
}

// GetByID retrieves an appointment by ID
func (s *AppointmentService) GetByID(ctx context.Context, id uuid.UUID) (*AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToAppointmentResponse(appointment)
	return &response, nil
}

// List retrieves appointments with filtering and pagination
func (s *AppointmentService) List(ctx context.Context, filter AppointmentListFilter) ([]AppointmentResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "starts_at"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	appointments, err := s.appointmentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.appointmentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = ToAppointmentResponse(&appointments[i])
	}
	return responses, total, nil
}

// ListByCustomer retrieves appointments for one customer
func (s *AppointmentService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter AppointmentListFilter) ([]AppointmentResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	appointments, err := s.appointmentRepo.FindByCustomer(ctx, customerID, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "starts_at",
		OrderDir: "desc",
	})
	if err != nil {
		return nil, err
	}

	responses := make([]AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = ToAppointmentResponse(&appointments[i])
	}
	return responses, nil
}

// Calendar returns appointments in the window grouped by day
func (s *AppointmentService) Calendar(ctx context.Context, from, to time.Time) ([]CalendarDayResponse, error) {
	if !to.After(from) {
		return nil, shared.NewDomainError("INVALID_RANGE", "Calendar range end must be after start")
	}

	appointments, err := s.appointmentRepo.FindInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	days := scheduling.BuildCalendar(appointments)
	responses := make([]CalendarDayResponse, len(days))
	for i, day := range days {
		entries := make([]AppointmentResponse, len(day.Appointments))
		for j := range day.Appointments {
			entries[j] = ToAppointmentResponse(&day.Appointments[j])
		}
		responses[i] = CalendarDayResponse{
			Date:         day.Date.Format("2006-01-02"),
			Appointments: entries,
		}
	}
	return responses, nil
}

// Reschedule moves an appointment to a new time window
func (s *AppointmentService) Reschedule(ctx context.Context, id uuid.UUID, req RescheduleRequest) (*AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := appointment.Reschedule(req.StartsAt, req.EndsAt); err != nil {
		return nil, err
	}
	if err := s.appointmentRepo.Save(ctx, appointment); err != nil {
		return nil, err
	}

	response := ToAppointmentResponse(appointment)
	return &response, nil
}

// Confirm marks an appointment as confirmed
func (s *AppointmentService) Confirm(ctx context.Context, id uuid.UUID) (*AppointmentResponse, error) {
	return s.transition(ctx, id, (*scheduling.Appointment).Confirm)
}

// Complete marks an appointment as completed
func (s *AppointmentService) Complete(ctx context.Context, id uuid.UUID) (*AppointmentResponse, error) {
	return s.transition(ctx, id, (*scheduling.Appointment).Complete)
}

// Cancel cancels an appointment
func (s *AppointmentService) Cancel(ctx context.Context, id uuid.UUID) (*AppointmentResponse, error) {
	return s.transition(ctx, id, (*scheduling.Appointment).Cancel)
}

// Delete removes an appointment
func (s *AppointmentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.appointmentRepo.Delete(ctx, id)
}

func (s *AppointmentService) transition(ctx context.Context, id uuid.UUID, fn func(*scheduling.Appointment) error) (*AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(appointment); err != nil {
		return nil, err
	}
	if err := s.appointmentRepo.Save(ctx, appointment); err != nil {
		return nil, err
	}

	response := ToAppointmentResponse(appointment)
	return &response, nil
}
