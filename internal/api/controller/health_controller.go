package controller

import (
	"net/http"

	"github.com/bassista/go_railops/internal/model"
	"github.com/gin-gonic/gin"
)

type HealthReporter interface {
	Health() model.Health
}

type HealthController struct {
	reporter HealthReporter
}

func NewHealthController(reporter HealthReporter) *HealthController {
	return &HealthController{reporter: reporter}
}

// Health handles GET /health and GET /api/health.
func (hc *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, hc.reporter.Health())
}
