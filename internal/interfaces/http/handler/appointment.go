package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	schedulingapp "github.com/tradeworks/backend/internal/application/scheduling"
	"github.com/tradeworks/backend/internal/interfaces/http/router"
)

// AppointmentHandler handles appointment API endpoints
type AppointmentHandler struct {
	BaseHandler
	appointmentService *schedulingapp.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler
func NewAppointmentHandler(appointmentService *schedulingapp.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// AppointmentRoutes creates the route group for appointment endpoints
func AppointmentRoutes(h *AppointmentHandler) *router.DomainGroup {
	group := router.NewDomainGroup("appointments", "/appointments")

	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/calendar", h.Calendar)
	group.GET("/by-customer/:customer_id", h.ListByCustomer)
	group.GET("/:id", h.GetByID)
	group.PUT("/:id/reschedule", h.Reschedule)
	group.POST("/:id/confirm", h.Confirm)
	group.POST("/:id/complete", h.Complete)
	group.POST("/:id/cancel", h.Cancel)
	group.DELETE("/:id", h.Delete)

	return group
}

// Create books a new appointment
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req schedulingapp.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appointment, err := h.appointmentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, appointment)
}

// GetByID retrieves an appointment by ID
func (h *AppointmentHandler) GetByID(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid appointment ID format")
		return
	}

	appointment, err := h.appointmentService.GetByID(c.Request.Context(), appointmentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, appointment)
}

// List retrieves a paginated list of appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	var filter schedulingapp.AppointmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	appointments, total, err := h.appointmentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, appointments, total, filter.Page, filter.PageSize)
}

// ListByCustomer retrieves appointments for one customer
func (h *AppointmentHandler) ListByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var filter schedulingapp.AppointmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appointments, err := h.appointmentService.ListByCustomer(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, appointments)
}

// Calendar returns appointments grouped by day for a date range.
// Both bounds are calendar dates; the "to" date is included in the
// range.
func (h *AppointmentHandler) Calendar(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		h.BadRequest(c, "Invalid 'from' date, expected YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		h.BadRequest(c, "Invalid 'to' date, expected YYYY-MM-DD")
		return
	}

	days, err := h.appointmentService.Calendar(c.Request.Context(), from, to.AddDate(0, 0, 1))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, days)
}

// Reschedule moves an appointment to a new time slot
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid appointment ID format")
		return
	}

	var req schedulingapp.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appointment, err := h.appointmentService.Reschedule(c.Request.Context(), appointmentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, appointment)
}

// Confirm confirms a scheduled appointment
func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, h.appointmentService.Confirm)
}

// Complete marks an appointment as completed
func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.appointmentService.Complete)
}

// Cancel cancels an appointment
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.appointmentService.Cancel)
}

// Delete deletes an appointment
func (h *AppointmentHandler) Delete(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid appointment ID format")
		return
	}

	if err := h.appointmentService.Delete(c.Request.Context(), appointmentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *AppointmentHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*schedulingapp.AppointmentResponse, error)) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid appointment ID format")
		return
	}

	appointment, err := fn(c.Request.Context(), appointmentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, appointment)
}
