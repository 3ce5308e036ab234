package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"patient-records-api/internal/infrastructure/db/postgres"
)

type HealthController struct {
	db     postgres.Pinger
	logger *zap.Logger
}

func NewHealthController(r *gin.Engine, db postgres.Pinger, logger *zap.Logger) *HealthController {
	hc := &HealthController{db: db, logger: logger}

	r.GET(RouteHealth, hc.HealthHandler)

	return hc
}

// HealthHandler godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (hc *HealthController) HealthHandler(c *gin.Context) {
	if err := postgres.Healthy(c.Request.Context(), hc.db); err != nil {
		hc.logger.Warn("database ping failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
