package handlers

import (
	"net/http"

	"proconecta/middleware"
	"proconecta/services/notification"
	"proconecta/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes the in-app notification feed.
type NotificationHandler struct {
	Notifications notification.NotificationService
}

// ListHandler handles GET /notifications.
func (h *NotificationHandler) ListHandler(c *gin.Context) {
	items, err := h.Notifications.List(middleware.ActorID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// MarkReadHandler handles PUT /notifications/:id/read.
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	if err := h.Notifications.MarkRead(middleware.ActorID(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}
