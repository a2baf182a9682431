package http

import (
	"taskboard/internal/config"
	"taskboard/internal/http/handlers"
	"taskboard/internal/http/middleware"
	"taskboard/internal/ws"

	"github.com/gin-gonic/gin"
)

// Deps is everything the router needs.
type Deps struct {
	Handler  *handlers.Handler
	Health   *handlers.HealthHandler
	Hub      *ws.Hub
	Identity middleware.Identifier
	Tokens   ws.TokenParser
	Config   *config.Config
}

// limits holds the rate limiters shared by /api/v1 and /api so both
// prefixes draw on one budget per client.
type limits struct {
	api  gin.HandlerFunc
	auth gin.HandlerFunc
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// Health checks (no rate limiting)
	r.GET("/health", d.Health.Health)
	r.GET("/healthz", d.Health.Liveness)
	r.GET("/readyz", d.Health.Readiness)

	auth := middleware.OptionalAuth(d.Identity)
	lim := limits{
		api:  middleware.RateLimit("api", cfg.APIRateLimit, cfg.APIRateWindow),
		auth: middleware.RateLimit("auth", cfg.AuthRateLimit, cfg.AuthRateWindow),
	}

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(auth, lim.api)
	registerAPIRoutes(v1, d.Handler, lim)

	// Legacy /api routes, same handlers
	api := r.Group("/api")
	api.Use(auth, lim.api)
	api.GET("/health", d.Health.Health)
	registerAPIRoutes(api, d.Handler, lim)

	// Live board events
	r.GET("/ws", ws.HandleWS(d.Hub, d.Tokens, cfg.AllowedOrigins))
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, lim limits) {
	// Auth
	api.POST("/login", lim.auth, h.Login)
	api.GET("/me", middleware.RequireAuth(), h.Me)

	// Tasks
	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks/:id", h.GetTask)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
	api.POST("/tasks/:id/feedback", h.AddFeedback)

	// People
	api.GET("/people", h.ListPeople)
	api.POST("/people", h.CreatePerson)

	// Activity log
	api.GET("/activity", h.Activity)
}
