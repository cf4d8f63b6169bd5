package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain/models"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/repositories"
)

type FleetHandler struct {
	Lookups repositories.LookupRepository
}

// GET /api/vehicles
func (h FleetHandler) Vehicles(c *gin.Context) {
	byID, err := h.Lookups.VehiclesByID()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]models.Vehicle, 0, len(byID))
	for _, v := range byID {
		out = append(out, v)
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": out, "total": len(out)})
}

// GET /api/drivers
func (h FleetHandler) Drivers(c *gin.Context) {
	byID, err := h.Lookups.DriversByID()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]models.PublicUser, 0, len(byID))
	for _, d := range byID {
		out = append(out, d.ToPublic())
	}
	c.JSON(http.StatusOK, gin.H{"drivers": out, "total": len(out)})
}
