package controller

import (
	"context"
	"net/http"

	"github.com/bassista/go_railops/internal/dashboard"
	"github.com/bassista/go_railops/internal/logger"
	"github.com/bassista/go_railops/internal/model"
	"github.com/gin-gonic/gin"
)

// TrainOperations is the part of the dashboard service the train endpoints use.
type TrainOperations interface {
	ListTrains(ctx context.Context, q dashboard.TrainQuery) ([]byte, error)
	Routes(ctx context.Context, trainID, hub string) ([]byte, error)
	EmergencyStop(ctx context.Context, hub string) model.ActionResult
	BackupRoutes(ctx context.Context, hub string) model.ActionResult
	OptimizeRoutes(ctx context.Context, hub string) model.ActionResult
	PlatformAllocation(ctx context.Context, hub string) model.ActionResult
	ScheduleMaintenance(ctx context.Context, hub, maintenanceType string) (model.ActionResult, error)
	Reroute(ctx context.Context, trainID string, stations []string) (model.ActionResult, error)
	ToggleSpeed(ctx context.Context, trainID, action string) (model.ActionResult, error)
}

// TrainController handles the /api/trains endpoints.
type TrainController struct {
	service TrainOperations
}

func NewTrainController(service TrainOperations) *TrainController {
	return &TrainController{service: service}
}

const trainComponent = "train-controller"

// ListTrains handles POST /api/trains.
func (tc *TrainController) ListTrains(c *gin.Context) {
	var req PageRequest
	if err := bindBody(c, &req); err != nil {
		respondError(c, trainComponent, err)
		return
	}
	page, pageSize, err := req.pages()
	if err != nil {
		respondError(c, trainComponent, err)
		return
	}
	logger.WithComponent(trainComponent).Debugf("list trains hub=%q page=%d pageSize=%d", req.Hub, page, pageSize)

	body, err := tc.service.ListTrains(c.Request.Context(), dashboard.TrainQuery{Hub: req.Hub, Page: page, PageSize: pageSize})
	respondCached(c, trainComponent, body, err)
}

// Routes handles POST /api/trains/routes.
func (tc *TrainController) Routes(c *gin.Context) {
	var req RoutesRequest
	if err := bindBody(c, &req); err != nil {
		respondError(c, trainComponent, err)
		return
	}
	body, err := tc.service.Routes(c.Request.Context(), req.TrainID, req.Hub)
	respondCached(c, trainComponent, body, err)
}

// EmergencyStop handles POST /api/trains/emergency-stop.
func (tc *TrainController) EmergencyStop(c *gin.Context) {
	tc.bulk(c, tc.service.EmergencyStop)
}

// BackupRoutes handles POST /api/trains/backup-routes.
func (tc *TrainController) BackupRoutes(c *gin.Context) {
	tc.bulk(c, tc.service.BackupRoutes)
}

// OptimizeRoutes handles POST /api/trains/optimize-routes.
func (tc *TrainController) OptimizeRoutes(c *gin.Context) {
	tc.bulk(c, tc.service.OptimizeRoutes)
}

// PlatformAllocation handles POST /api/trains/platform-allocation.
func (tc *TrainController) PlatformAllocation(c *gin.Context) {
	tc.bulk(c, tc.service.PlatformAllocation)
}

func (tc *TrainController) bulk(c *gin.Context, action func(context.Context, string) model.ActionResult) {
	var req HubRequest
	if err := bindBody(c, &req); err != nil {
		respondError(c, trainComponent, err)
		return
	}
	c.JSON(http.StatusOK, action(c.Request.Context(), req.Hub))
}

// ScheduleMaintenance handles POST /api/trains/schedule-maintenance.
func (tc *TrainController) ScheduleMaintenance(c *gin.Context) {
	var req MaintenanceRequest
	if err := bindBody(c, &req); err != nil {
		respondError(c, trainComponent, err)
		return
	}
	result, err := tc.service.ScheduleMaintenance(c.Request.Context(), req.Hub, req.MaintenanceType)
	tc.respond(c, result, err)
}

// Reroute handles POST /api/trains/reroute.
func (tc *TrainController) Reroute(c *gin.Context) {
	var req RerouteRequest
	if err := bindBody(c, &req); err != nil {
		respondError(c, trainComponent, err)
		return
	}
	result, err := tc.service.Reroute(c.Request.Context(), req.TrainID, req.NewRoute)
	tc.respond(c, result, err)
}

// ToggleSpeed handles POST /api/trains/toggle-speed.
func (tc *TrainController) ToggleSpeed(c *gin.Context) {
	var req ToggleSpeedRequest
	if err := bindBody(c, &req); err != nil {
		respondError(c, trainComponent, err)
		return
	}
	result, err := tc.service.ToggleSpeed(c.Request.Context(), req.TrainID, req.Action)
	tc.respond(c, result, err)
}

func (tc *TrainController) respond(c *gin.Context, result model.ActionResult, err error) {
	if err != nil {
		respondError(c, trainComponent, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
