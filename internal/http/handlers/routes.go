package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain/models"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/repositories"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/utils"
)

type RouteHandler struct {
	Routes repositories.RouteRepository
	Trips  repositories.TripRepository
}

// GET /api/routes
func (h RouteHandler) List(c *gin.Context) {
	routes, err := h.Routes.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes, "total": len(routes)})
}

// normalizeStops drops blank entries so stored routes never carry empty
// intermediate points.
func normalizeStops(stops []string) []string {
	out := make([]string, 0, len(stops))
	for _, s := range stops {
		if s = utils.NormalizeSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type routeRequest struct {
	Origin      string   `json:"origin" binding:"required"`
	Destination string   `json:"destination" binding:"required"`
	Stops       []string `json:"stops"`
	CompanyID   string   `json:"companyId"`
}

// POST /api/routes
func (h RouteHandler) Create(c *gin.Context) {
	var req routeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	id, err := h.Routes.Create(models.Route{
		Origin:      utils.NormalizeSpace(req.Origin),
		Destination: utils.NormalizeSpace(req.Destination),
		Stops:       normalizeStops(req.Stops),
		CompanyID:   req.CompanyID,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/routes/:id
func (h RouteHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "id invalido", err)
		return
	}
	var req routeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.Routes.Update(models.Route{
		ID:          id,
		Origin:      utils.NormalizeSpace(req.Origin),
		Destination: utils.NormalizeSpace(req.Destination),
		Stops:       normalizeStops(req.Stops),
	}); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/routes/:id is refused while trips still reference it.
func (h RouteHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "id invalido", err)
		return
	}

	n, err := h.Trips.CountByRoute(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if n > 0 {
		RespondDomainError(c, domain.ConflictError{Resource: "route", Msg: "existen viajes publicados sobre esta ruta"})
		return
	}

	if err := h.Routes.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// GET /api/routes/:id/price-pairs lists every sellable origin/destination
// combination, used by the pricing screen.
func (h RouteHandler) PricePairs(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "id invalido", err)
		return
	}
	route, err := h.Routes.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	pairs := route.SegmentPairs()
	c.JSON(http.StatusOK, gin.H{"pairs": pairs, "total": len(pairs)})
}
