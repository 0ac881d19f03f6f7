package route

import (
	"github.com/bassista/go_railops/internal/api/controller"
	"github.com/bassista/go_railops/internal/app"
	"github.com/gin-gonic/gin"
)

func NewInsightRouter(appCtx *app.App, group *gin.RouterGroup) {
	ic := controller.NewInsightController(appCtx.Service)

	group.POST("analytics", ic.Analytics)
	group.POST("alerts", ic.Alerts)
	group.GET("recommendations", ic.Recommendations)
	group.POST("emergency/contact", ic.EmergencyContact)
}
