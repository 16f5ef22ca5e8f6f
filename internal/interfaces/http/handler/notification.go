package handler

import (
	"github.com/gin-gonic/gin"
	notificationapp "github.com/whizdome/promorama-backend/internal/application/notification"
	"github.com/whizdome/promorama-backend/internal/domain/notification"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/interfaces/http/middleware"
)

// NotificationHandler serves the in-app notification feed and push-device
// registration.
type NotificationHandler struct {
	BaseHandler
	notifications *notificationapp.Service
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *notificationapp.Service) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterRoutes registers the notification routes
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.List)
	rg.PATCH("/notifications/:id/read", h.MarkRead)
	rg.POST("/devices", h.RegisterDevice)
}

// feedUserID resolves which feed the caller reads: admins share the admin
// broadcast feed, everyone else reads rows addressed to their account.
func feedUserID(c *gin.Context) string {
	claims, _ := middleware.GetClaims(c)
	if claims == nil {
		return ""
	}
	if claims.Role == shared.ActorAdmin {
		return notification.RecipientAdmin
	}
	return claims.UserID
}

// List returns the caller's unexpired notifications, newest first
func (h *NotificationHandler) List(c *gin.Context) {
	items, err := h.notifications.ListForUser(c.Request.Context(), feedUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Notifications retrieved", items)
}

// MarkRead flags one of the caller's notifications as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.notifications.MarkRead(c.Request.Context(), id, feedUserID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Notification marked read", nil)
}

type registerDeviceRequest struct {
	Token    string `json:"token" binding:"required"`
	Platform string `json:"platform" binding:"required,oneof=ios android web"`
}

// RegisterDevice records a push token for the caller's device
func (h *NotificationHandler) RegisterDevice(c *gin.Context) {
	var req registerDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Token and a platform of ios, android or web are required")
		return
	}

	claims, _ := middleware.GetClaims(c)
	if claims == nil {
		h.BadRequest(c, "Authentication required")
		return
	}
	if err := h.notifications.RegisterDevice(c.Request.Context(), claims.UserID, req.Token, req.Platform); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Device registered", nil)
}
