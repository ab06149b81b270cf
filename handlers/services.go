package handlers

import (
	"net/http"

	"proconecta/middleware"
	"proconecta/models"
	"proconecta/services/lifecycle"
	"proconecta/utils"

	"github.com/gin-gonic/gin"
)

// ServiceHandler exposes the service-request lifecycle endpoints.
type ServiceHandler struct {
	Lifecycle lifecycle.LifecycleService
}

// CreateHandler handles POST /services.
func (h *ServiceHandler) CreateHandler(c *gin.Context) {
	var input lifecycle.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid service request payload", err.Error())
		return
	}

	req, err := h.Lifecycle.Create(c.Request.Context(), middleware.ActorID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// GetHandler handles GET /services/:id.
func (h *ServiceHandler) GetHandler(c *gin.Context) {
	req, err := h.Lifecycle.Get(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// ListMineHandler handles GET /services?role=client|provider.
func (h *ServiceHandler) ListMineHandler(c *gin.Context) {
	role := models.UserType(c.DefaultQuery("role", string(models.UserTypeClient)))
	if role != models.UserTypeClient && role != models.UserTypeProvider {
		utils.JSONError(c, http.StatusBadRequest, "Invalid role", "role must be client or provider")
		return
	}

	reqs, err := h.Lifecycle.ListForUser(middleware.ActorID(c), role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// ProposeValueHandler handles POST /services/:id/propose.
func (h *ServiceHandler) ProposeValueHandler(c *gin.Context) {
	var req struct {
		Value float64 `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid proposal payload", err.Error())
		return
	}

	updated, err := h.Lifecycle.ProposeValue(c.Request.Context(), middleware.ActorID(c), c.Param("id"), req.Value)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AcceptProposalHandler handles POST /services/:id/accept-proposal.
func (h *ServiceHandler) AcceptProposalHandler(c *gin.Context) {
	var req struct {
		ProposalVersion int `json:"proposalVersion" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid accept payload", err.Error())
		return
	}

	updated, err := h.Lifecycle.AcceptProposal(c.Request.Context(), middleware.ActorID(c), c.Param("id"), req.ProposalVersion)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AcceptDemandHandler handles POST /services/:id/accept.
func (h *ServiceHandler) AcceptDemandHandler(c *gin.Context) {
	updated, err := h.Lifecycle.AcceptDemand(c.Request.Context(), middleware.ActorID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// StartHandler handles POST /services/:id/start.
func (h *ServiceHandler) StartHandler(c *gin.Context) {
	updated, err := h.Lifecycle.Start(c.Request.Context(), middleware.ActorID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CompleteHandler handles POST /services/:id/complete.
func (h *ServiceHandler) CompleteHandler(c *gin.Context) {
	updated, err := h.Lifecycle.Complete(c.Request.Context(), middleware.ActorID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CancelHandler handles POST /services/:id/cancel.
func (h *ServiceHandler) CancelHandler(c *gin.Context) {
	updated, err := h.Lifecycle.Cancel(c.Request.Context(), middleware.ActorID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
