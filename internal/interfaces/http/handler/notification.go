package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	notificationapp "github.com/tradeworks/backend/internal/application/notification"
	"github.com/tradeworks/backend/internal/interfaces/http/router"
)

// NotificationHandler handles notification API endpoints
type NotificationHandler struct {
	BaseHandler
	notificationService *notificationapp.Service
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *notificationapp.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// NotificationRoutes creates the route group for notification endpoints
func NotificationRoutes(h *NotificationHandler) *router.DomainGroup {
	group := router.NewDomainGroup("notifications", "/notifications")

	group.GET("", h.List)
	group.GET("/unread-count", h.UnreadCount)
	group.POST("/read-all", h.MarkAllRead)
	group.POST("/:id/read", h.MarkRead)
	group.DELETE("/:id", h.Delete)

	return group
}

// List retrieves notifications, optionally unread only
func (h *NotificationHandler) List(c *gin.Context) {
	var filter notificationapp.NotificationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	notifications, err := h.notificationService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, notifications)
}

// UnreadCount returns the number of unread notifications
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationService.UnreadCount(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"count": count})
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid notification ID format")
		return
	}

	notification, err := h.notificationService.MarkRead(c.Request.Context(), notificationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, notification)
}

// MarkAllRead marks every unread notification as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(c.Request.Context()); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete deletes a notification
func (h *NotificationHandler) Delete(c *gin.Context) {
	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid notification ID format")
		return
	}

	if err := h.notificationService.Delete(c.Request.Context(), notificationID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
