package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"proconecta/middleware"
	"proconecta/services/discovery"
	"proconecta/utils"

	"github.com/gin-gonic/gin"
)

// DiscoveryHandler exposes nearby-demand search for providers.
type DiscoveryHandler struct {
	Discovery discovery.DiscoveryService
}

// FindDemandsHandler handles GET /demands?lat=..&lng=..&maxKm=..&categories=a,b.
func (h *DiscoveryHandler) FindDemandsHandler(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query", "lat must be a number")
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query", "lng must be a number")
		return
	}

	q := discovery.Query{Latitude: lat, Longitude: lng}
	if raw := c.Query("maxKm"); raw != "" {
		maxKm, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid query", "maxKm must be a number")
			return
		}
		q.MaxKm = maxKm
	}
	if raw := c.Query("categories"); raw != "" {
		for _, cat := range strings.Split(raw, ",") {
			if cat = strings.TrimSpace(cat); cat != "" {
				q.Categories = append(q.Categories, cat)
			}
		}
	}

	demands, err := h.Discovery.FindAvailableDemands(middleware.ActorID(c), q)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, demands)
}
