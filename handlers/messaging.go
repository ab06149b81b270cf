package handlers

import (
	"net/http"

	"proconecta/middleware"
	"proconecta/services/messaging"
	"proconecta/utils"

	"github.com/gin-gonic/gin"
)

// MessageHandler exposes the per-request chat feed.
type MessageHandler struct {
	Messaging messaging.MessagingService
}

// AppendHandler handles POST /services/:id/messages.
func (h *MessageHandler) AppendHandler(c *gin.Context) {
	var input messaging.AppendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid message payload", err.Error())
		return
	}
	input.ServiceID = c.Param("id")

	msg, err := h.Messaging.Append(middleware.ActorID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ListHandler handles GET /services/:id/messages.
func (h *MessageHandler) ListHandler(c *gin.Context) {
	msgs, err := h.Messaging.List(middleware.ActorID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}
