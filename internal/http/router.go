package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "github.com/BetanzosJefferson/routify2-alpha-sub003/internal/config"
	h "github.com/BetanzosJefferson/routify2-alpha-sub003/internal/http/handlers"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/http/middleware"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/repositories"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "ruta no encontrada",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	tripRepo := repositories.TripRepository{}
	routeRepo := repositories.RouteRepository{}
	reservationRepo := repositories.ReservationRepository{}
	lookupRepo := repositories.LookupRepository{}
	userRepo := repositories.UserRepository{}

	auth := h.AuthHandler{Users: userRepo, JWTSecret: []byte(env.JWTSecret)}
	trips := h.TripHandler{Trips: tripRepo, Routes: routeRepo, Lookups: lookupRepo}
	reservations := h.ReservationHandler{Reservations: reservationRepo, Trips: tripRepo}
	boarding := h.BoardingHandler{Trips: tripRepo, Routes: routeRepo, Reservations: reservationRepo}
	routes := h.RouteHandler{Routes: routeRepo, Trips: tripRepo}
	fleet := h.FleetHandler{Lookups: lookupRepo}

	requireAuth := middleware.Auth([]byte(env.JWTSecret))
	backoffice := middleware.RequireRoles("owner", "admin")
	checkers := middleware.RequireRoles("owner", "admin", "checker")

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		api.POST("/auth/login", auth.Login)
		api.POST("/auth/register", auth.Register)

		// public search surface
		api.GET("/trips", trips.List)
		api.GET("/trips/search", trips.Search)
		api.GET("/trips/:id", trips.Get)

		// back-office trip management
		api.POST("/trips", requireAuth, backoffice, trips.Publish)
		api.DELETE("/trips/:id", requireAuth, backoffice, trips.Delete)

		// boarding views
		api.GET("/trips/:id/boarding", requireAuth, checkers, boarding.List)
		api.GET("/trips/:id/manifest", requireAuth, checkers, boarding.Manifest)

		// reservations
		api.POST("/reservations", reservations.Create)
		api.GET("/reservations", requireAuth, checkers, reservations.List)
		api.PUT("/reservations/:id/status", requireAuth, backoffice, reservations.UpdateStatus)
		api.PUT("/reservations/:id/check", requireAuth, checkers, reservations.Check)
		api.DELETE("/reservations/:id", requireAuth, backoffice, reservations.Delete)

		// routes
		api.GET("/routes", routes.List)
		api.POST("/routes", requireAuth, backoffice, routes.Create)
		api.PUT("/routes/:id", requireAuth, backoffice, routes.Update)
		api.DELETE("/routes/:id", requireAuth, backoffice, routes.Delete)
		api.GET("/routes/:id/price-pairs", routes.PricePairs)

		// fleet lookups
		api.GET("/vehicles", requireAuth, backoffice, fleet.Vehicles)
		api.GET("/drivers", requireAuth, backoffice, fleet.Drivers)
	}

	return r
}
