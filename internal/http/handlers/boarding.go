package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain/models"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/http/middleware"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/repositories"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/services"
)

type BoardingHandler struct {
	Trips        repositories.TripRepository
	Routes       repositories.RouteRepository
	Reservations repositories.ReservationRepository
}

// GET /api/trips/:id/boarding returns the grouped passenger list for checkers.
func (h BoardingHandler) List(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "id invalido", err)
		return
	}

	reservations, err := h.Reservations.ListByTripRecord(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	routes, err := h.Routes.MapByID()
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	tripsByID := map[int64]models.Trip{}
	if trip, err := h.Trips.GetByID(id); err == nil {
		tripsByID[trip.ID] = trip
	}

	groups := services.GroupReservations(reservations, tripsByID, routes)
	c.JSON(http.StatusOK, gin.H{"groups": groups, "total": len(groups)})
}

// GET /api/trips/:id/manifest downloads the boarding manifest PDF.
func (h BoardingHandler) Manifest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "id invalido", err)
		return
	}

	svc := services.ManifestService{
		Trips:        h.Trips,
		Routes:       h.Routes,
		Reservations: h.Reservations,
		RequestID:    middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.Generate(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
