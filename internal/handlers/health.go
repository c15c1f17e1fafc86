package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imbecis/app-imbecis/internal/utils"
	"go.uber.org/zap"
)

// HealthCheck godoc
// @Summary Verificação de saúde
// @Description Verifica o armazenamento da identidade do dispositivo e o circuito do backend.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Todos os serviços estão saudáveis"
// @Failure 503 {object} HealthResponse "Um ou mais serviços estão indisponíveis"
// @Router /health [get]
func (h *Handlers) HealthCheck(c *gin.Context) {
	ctx, span, end := utils.TraceOperation(c.Request.Context(), "HealthCheck", map[string]interface{}{
		"operation": "health_check",
	})
	defer end()

	health := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services:  make(map[string]string, len(h.checks)),
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			utils.RecordErrorInSpan(span, err, map[string]interface{}{"service.name": name})
			h.logger.Warn("health check failed", zap.String("service", name), zap.Error(err))
			health.Status = "unhealthy"
			health.Services[name] = "unhealthy"
			continue
		}
		health.Services[name] = "healthy"
	}

	if health.Status != "healthy" {
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}
	c.JSON(http.StatusOK, health)
}
