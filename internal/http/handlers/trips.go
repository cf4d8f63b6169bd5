package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain/models"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/http/middleware"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/repositories"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/services"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/utils"
)

type TripHandler struct {
	Trips   repositories.TripRepository
	Routes  repositories.RouteRepository
	Lookups repositories.LookupRepository
}

// filtersFromQuery maps the query string onto the search filter shape
// clients already send.
func filtersFromQuery(c *gin.Context) services.SearchFilters {
	f := services.SearchFilters{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		Date:        c.Query("date"),
		CompanyID:   c.Query("companyId"),
		Visibility:  c.Query("visibility"),
	}
	if v := strings.TrimSpace(c.Query("dateRange")); v != "" {
		for _, d := range strings.Split(v, ",") {
			if d = strings.TrimSpace(d); d != "" {
				f.DateRange = append(f.DateRange, d)
			}
		}
	}
	if v := strings.TrimSpace(c.Query("companyIds")); v != "" {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				f.CompanyIDs = append(f.CompanyIDs, id)
			}
		}
	}
	if v, err := strconv.Atoi(c.Query("seats")); err == nil {
		f.Seats = v
	}
	if v, err := strconv.ParseInt(c.Query("driverId"), 10, 64); err == nil {
		f.DriverID = v
	}
	f.IncludeAllVisibilities = c.Query("includeAllVisibilities") == "true"
	f.OptimizedResponse = c.Query("optimizedResponse") == "true"
	return f
}

func (h TripHandler) buildLookups(c *gin.Context) (services.SearchLookups, bool) {
	lookups := services.SearchLookups{}

	routes, err := h.Routes.MapByID()
	if err != nil {
		RespondDomainError(c, err)
		return lookups, false
	}
	owners, err := h.Lookups.OwnersByCompany()
	if err != nil {
		RespondDomainError(c, err)
		return lookups, false
	}
	vehicles, err := h.Lookups.VehiclesByID()
	if err != nil {
		RespondDomainError(c, err)
		return lookups, false
	}
	drivers, err := h.Lookups.DriversByID()
	if err != nil {
		RespondDomainError(c, err)
		return lookups, false
	}

	lookups.RoutesByID = routes
	lookups.OwnersByCompany = owners
	lookups.VehiclesByID = vehicles
	lookups.DriversByID = drivers
	return lookups, true
}

// GET /api/trips returns one row per physical departure (optimized mode).
func (h TripHandler) List(c *gin.Context) {
	filters := filtersFromQuery(c)
	filters.OptimizedResponse = true

	h.respondSearch(c, filters)
}

// GET /api/trips/search returns one row per sellable segment (expanded mode).
func (h TripHandler) Search(c *gin.Context) {
	filters := filtersFromQuery(c)
	filters.OptimizedResponse = false

	h.respondSearch(c, filters)
}

func (h TripHandler) respondSearch(c *gin.Context, filters services.SearchFilters) {
	trips, err := h.Trips.List(filters.CompanyIDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	lookups, ok := h.buildLookups(c)
	if !ok {
		return
	}

	views := services.SearchTrips(trips, lookups, filters, middleware.GetRequestID(c))
	c.JSON(http.StatusOK, gin.H{"trips": views, "total": len(views)})
}

// GET /api/trips/:id
func (h TripHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "id invalido", err)
		return
	}
	trip, err := h.Trips.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	segments, err := models.ParseSegments(trip)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip, "segments": segments})
}

type publishTripRequest struct {
	RouteID   int64            `json:"routeId" binding:"required"`
	CompanyID string           `json:"companyId" binding:"required"`
	VehicleID int64            `json:"vehicleId"`
	DriverID  int64            `json:"driverId"`
	Capacity  int              `json:"capacity" binding:"required"`
	Segments  []models.Segment `json:"segments" binding:"required"`
}

// POST /api/trips publishes a departure with its segment array.
func (h TripHandler) Publish(c *gin.Context) {
	var req publishTripRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if len(req.Segments) == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "segments", Msg: "se requiere al menos un tramo"})
		return
	}
	mainCount := 0
	for _, seg := range req.Segments {
		if seg.IsMainTrip {
			mainCount++
		}
		if seg.AvailableSeats < 0 || seg.AvailableSeats > req.Capacity {
			RespondDomainError(c, domain.ValidationError{Field: "segments", Msg: "asientos disponibles fuera del rango de capacidad"})
			return
		}
		if strings.TrimSpace(seg.Origin) == "" || strings.TrimSpace(seg.Destination) == "" {
			RespondDomainError(c, domain.ValidationError{Field: "segments", Msg: "origen y destino son obligatorios"})
			return
		}
		if _, err := utils.ParseDate(utils.DayOf(seg.DepartureDate)); err != nil {
			RespondDomainError(c, domain.ValidationError{Field: "segments", Msg: "fecha de salida invalida"})
			return
		}
	}
	if mainCount != 1 {
		RespondDomainError(c, domain.ValidationError{Field: "segments", Msg: "exactamente un tramo debe ser el principal"})
		return
	}

	raw, err := models.SerializeSegments(req.Segments)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	id, err := h.Trips.Create(models.Trip{
		RouteID:    req.RouteID,
		CompanyID:  req.CompanyID,
		VehicleID:  req.VehicleID,
		DriverID:   req.DriverID,
		Visibility: models.VisibilityPublished,
		Capacity:   req.Capacity,
		TripData:   raw,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	// stamp the business ids now that the row id exists
	for i := range req.Segments {
		req.Segments[i].TripID = models.ComposeBusinessID(id, i)
	}
	stamped, err := models.SerializeSegments(req.Segments)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := h.Trips.UpdateTripData(id, stamped); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// DELETE /api/trips/:id
func (h TripHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "id invalido", err)
		return
	}
	if err := h.Trips.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
