package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tradeworks/backend/internal/domain/scheduling"
	"github.com/tradeworks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Ensure GormAppointmentRepository implements scheduling.AppointmentRepository
var _ scheduling.AppointmentRepository = (*GormAppointmentRepository)(nil)

// GormAppointmentRepository implements scheduling.AppointmentRepository
// using GORM
type GormAppointmentRepository struct {
	db *gorm.DB
}

// NewGormAppointmentRepository creates a new GormAppointmentRepository
func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

// FindByID finds an appointment by its ID
func (r *GormAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*scheduling.Appointment, error) {
	var appointment scheduling.Appointment
	if err := r.db.WithContext(ctx).First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &appointment, nil
}

// FindAll finds all appointments matching the filter
func (r *GormAppointmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]scheduling.Appointment, error) {
	var appointments []scheduling.Appointment
	query := r.db.WithContext(ctx).Model(&scheduling.Appointment{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if err := applyFilter(query, filter).Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindByCustomer finds appointments for a customer
func (r *GormAppointmentRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]scheduling.Appointment, error) {
	var appointments []scheduling.Appointment
	query := r.db.WithContext(ctx).
		Model(&scheduling.Appointment{}).
		Where("customer_id = ?", customerID)
	if err := applyFilter(query, filter).Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindInRange finds appointments starting inside [from, to), ordered
// by start time for the calendar view
func (r *GormAppointmentRepository) FindInRange(ctx context.Context, from, to time.Time) ([]scheduling.Appointment, error) {
	var appointments []scheduling.Appointment
	err := r.db.WithContext(ctx).
		Where("starts_at >= ? AND starts_at < ?", from, to).
		Order("starts_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// Save inserts or updates an appointment
func (r *GormAppointmentRepository) Save(ctx context.Context, appointment *scheduling.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

// Delete removes an appointment by ID
func (r *GormAppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&scheduling.Appointment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of appointments
func (r *GormAppointmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&scheduling.Appointment{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}
