// Package handlers exposes the page loaders as JSON endpoints for a front end
package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imbecis/app-imbecis/internal/logging"
	"github.com/imbecis/app-imbecis/internal/services"
)

// ErrorResponse is returned for malformed requests
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports the state of each dependency
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthCheckFunc returns an error when a dependency is unhealthy
type HealthCheckFunc func(ctx context.Context) error

// LoaderFactory builds a page loader bound to session
type LoaderFactory func(session *services.Session) *services.PageLoader

// Handlers serves page data
type Handlers struct {
	pages     *services.PageLoader
	newLoader LoaderFactory
	checks    map[string]HealthCheckFunc
	logger    *logging.SafeLogger
}

// New creates the handlers. pages serves stateless pages; newLoader builds
// a loader with a fresh session for the review page, whose response carries
// the issued token back to the caller.
func New(pages *services.PageLoader, newLoader LoaderFactory, checks map[string]HealthCheckFunc, logger *logging.SafeLogger) *Handlers {
	return &Handlers{
		pages:     pages,
		newLoader: newLoader,
		checks:    checks,
		logger:    logger,
	}
}

// Register mounts every route on group
func (h *Handlers) Register(group *gin.RouterGroup) {
	group.GET("/health", h.HealthCheck)
	group.GET("/feed", h.GetFeed)
	group.GET("/mapa", h.GetMap)
	group.GET("/matriculas", h.GetPlates)
	group.GET("/matriculas/:country/:plate", h.GetPlate)
	group.GET("/votar", h.GetReview)
	group.GET("/reports", h.GetAdminReports)
	group.GET("/reports/:id", h.GetReport)
}

// pageParam reads the page query parameter, defaulting to 1
func pageParam(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}
