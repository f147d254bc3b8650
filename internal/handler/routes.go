package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers bundles every HTTP handler served by the API.
type Handlers struct {
	Schedule *ScheduleHandler
	Centers  *CenterHandler
	Metrics  *MetricsHandler
}

// RegisterRoutes mounts operational endpoints at the root and the schedule
// API under prefix. Docs are served only when enableDocs is set.
func RegisterRoutes(r *gin.Engine, h Handlers, prefix string, enableDocs bool) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if enableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(prefix)
	api.GET("/metrics/summary", h.Metrics.Summary)

	schedule := api.Group("/schedule")
	schedule.POST("/events", h.Schedule.Events)
	schedule.GET("/week", h.Schedule.Week)
	schedule.GET("/week/export", h.Schedule.Export)

	api.GET("/centers", h.Centers.List)
	api.GET("/connection/check", h.Centers.Check)
}
