package route

import (
	"github.com/bassista/go_railops/internal/api/controller"
	"github.com/bassista/go_railops/internal/api/middleware"
	"github.com/bassista/go_railops/internal/app"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// SetupRoutes builds the engine with the middleware chain and every dashboard route.
func SetupRoutes(appCtx *app.App, log *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.LoggerWithWriter(log.Writer()))
	r.Use(middleware.CORSMiddleware(appCtx.Config.Server.CORSAllowedOrigins))
	r.Use(middleware.HoneybadgerMiddleware(appCtx.Config.Misc.HoneybadgerAPIKey, appCtx.Config.Misc.Environment, log))
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	hc := controller.NewHealthController(appCtx.Service)
	r.GET("/health", hc.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.RequestTimeout(appCtx.Config.Server.RequestTimeout))
	api.GET("health", hc.Health)

	NewTrainRouter(appCtx, api)
	NewInsightRouter(appCtx, api)

	return r
}
