package controller

import (
	"context"
	"net/http"

	"github.com/bassista/go_railops/internal/dashboard"
	"github.com/bassista/go_railops/internal/model"
	"github.com/gin-gonic/gin"
)

// InsightOperations is the part of the dashboard service behind analytics, alerts,
// recommendations and emergency contact.
type InsightOperations interface {
	Analytics(ctx context.Context, hub string) ([]byte, error)
	Alerts(ctx context.Context, q dashboard.AlertQuery) ([]byte, error)
	Recommendations(ctx context.Context) ([]byte, error)
	EmergencyContact(ctx context.Context, hub, message string) (model.ActionResult, error)
}

type InsightController struct {
	service InsightOperations
}

func NewInsightController(service InsightOperations) *InsightController {
	return &InsightController{service: service}
}

const insightComponent = "insight-controller"

// Analytics handles POST /api/analytics.
func (ic *InsightController) Analytics(c *gin.Context) {
	var req HubRequest
	if err := bindBody(c, &req); err != nil {
		respondError(c, insightComponent, err)
		return
	}
	body, err := ic.service.Analytics(c.Request.Context(), req.Hub)
	respondCached(c, insightComponent, body, err)
}

// Alerts handles POST /api/alerts.
func (ic *InsightController) Alerts(c *gin.Context) {
	var req PageRequest
	if err := bindBody(c, &req); err != nil {
		respondError(c, insightComponent, err)
		return
	}
	page, pageSize, err := req.pages()
	if err != nil {
		respondError(c, insightComponent, err)
		return
	}
	body, err := ic.service.Alerts(c.Request.Context(), dashboard.AlertQuery{Hub: req.Hub, Page: page, PageSize: pageSize})
	respondCached(c, insightComponent, body, err)
}

// Recommendations handles GET /api/recommendations.
func (ic *InsightController) Recommendations(c *gin.Context) {
	body, err := ic.service.Recommendations(c.Request.Context())
	respondCached(c, insightComponent, body, err)
}

// EmergencyContact handles POST /api/emergency/contact.
func (ic *InsightController) EmergencyContact(c *gin.Context) {
	var req EmergencyContactRequest
	if err := bindBody(c, &req); err != nil {
		respondError(c, insightComponent, err)
		return
	}
	result, err := ic.service.EmergencyContact(c.Request.Context(), req.Hub, req.Message)
	if err != nil {
		respondError(c, insightComponent, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
