package route

import (
	"github.com/bassista/go_railops/internal/api/controller"
	"github.com/bassista/go_railops/internal/app"
	"github.com/gin-gonic/gin"
)

func NewTrainRouter(appCtx *app.App, group *gin.RouterGroup) {
	tc := controller.NewTrainController(appCtx.Service)

	trains := group.Group("trains")
	trains.POST("", tc.ListTrains)
	trains.POST("routes", tc.Routes)
	trains.POST("emergency-stop", tc.EmergencyStop)
	trains.POST("backup-routes", tc.BackupRoutes)
	trains.POST("optimize-routes", tc.OptimizeRoutes)
	trains.POST("schedule-maintenance", tc.ScheduleMaintenance)
	trains.POST("platform-allocation", tc.PlatformAllocation)
	trains.POST("reroute", tc.Reroute)
	trains.POST("toggle-speed", tc.ToggleSpeed)
}
