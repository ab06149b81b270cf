package handlers

import (
	"net/http"

	"proconecta/middleware"
	"proconecta/models"
	"proconecta/services/rating"
	"proconecta/utils"

	"github.com/gin-gonic/gin"
)

// RatingHandler exposes the dual-sided rating endpoints.
type RatingHandler struct {
	Ratings rating.RatingService
}

// SubmitHandler handles POST /services/:id/rating.
func (h *RatingHandler) SubmitHandler(c *gin.Context) {
	var req struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid rating payload", err.Error())
		return
	}

	result, err := h.Ratings.Submit(c.Request.Context(), middleware.ActorID(c), rating.SubmitInput{
		ServiceID: c.Param("id"),
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ListHandler handles GET /users/:id/ratings?space=ratings|client_ratings.
func (h *RatingHandler) ListHandler(c *gin.Context) {
	space := models.RatingSpace(c.DefaultQuery("space", string(models.SpaceProvider)))
	if space != models.SpaceProvider && space != models.SpaceClient {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query", "space must be ratings or client_ratings")
		return
	}

	views, err := h.Ratings.ListForUser(c.Param("id"), space)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
