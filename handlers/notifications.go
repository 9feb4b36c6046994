package handlers

import (
	"net/http"

	"github.com/farmdirect/backend-go/models"
	"github.com/farmdirect/backend-go/store"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetNotifications returns the requester's recent notifications. For
// farmers the reconciliation scan runs first, repairing stale line-item
// attribution and backfilling missing order notifications.
func (h *Handler) GetNotifications(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}
	role, _ := c.Get("role").(models.Role)

	notifications, err := h.orders.ListNotifications(c.Request().Context(), userID, role)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch notifications")
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	return c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead flips the read flag on one of the requester's
// notifications.
func (h *Handler) MarkNotificationRead(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	notificationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid notification ID")
	}

	if err := h.orders.MarkNotificationRead(c.Request().Context(), notificationID, userID); err != nil {
		if err == store.ErrNotFound {
			return errorJSON(c, http.StatusNotFound, "Notification not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "Failed to mark notification read")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Notification marked as read"})
}
