package handlers

import (
	"time"

	"tenability/internal/logger"
	"tenability/internal/metrics"
	"tenability/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "tenability/internal/docs" // registers the OpenAPI document
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  *metrics.Metrics

	replayInterval time.Duration
}

// Option customises a Handler.
type Option func(*Handler)

// WithMetrics records request metrics and serves them on /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// WithReplayInterval sets the default tick of /ws/replay.
func WithReplayInterval(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 && d <= maxInterval {
			h.replayInterval = d
		}
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log, replayInterval: defaultInterval}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	if h.metrics != nil {
		router.Use(h.metrics.Middleware())
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Sample replay over WebSocket, same port; browsers pass ?access_token=
	router.GET("/ws/replay", h.wsUserIdMiddleware, h.wsReplay)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		api.GET("/me", h.me)
		h.registerSimulationRoutes(api)
	}
}

func (h *Handler) registerSimulationRoutes(api *gin.RouterGroup) {
	sims := api.Group("/simulations")
	{
		// Body example: {"path":"/data/run1.zip"}
		sims.POST("", h.importSimulation)
		sims.GET("", h.listSimulations)
		sims.GET("/:id", h.getSimulation)
		sims.DELETE("/:id", h.deleteSimulation)
		sims.GET("/:id/rooms", h.getRooms)
		sims.GET("/:id/rooms/:room/series", h.getRoomSeries)
		sims.GET("/:id/events", h.getEvents)

		fed := sims.Group("/:id/fed")
		{
			// Body example: {"rooms":["Lounge","Corridor"],"transition_times":[60]}
			fed.POST("/co", h.computeCO)
			fed.POST("/thermal", h.computeThermal)
			fed.GET("/rooms", h.perRoomFED)
		}
	}
}
