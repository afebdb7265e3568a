package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/sees-portal/internal/handler"
	"github.com/noah-isme/sees-portal/internal/middleware"
	"github.com/noah-isme/sees-portal/internal/models"
	"github.com/noah-isme/sees-portal/internal/service"
	"github.com/noah-isme/sees-portal/pkg/config"
	"github.com/noah-isme/sees-portal/pkg/logger"
	corsmiddleware "github.com/noah-isme/sees-portal/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sees-portal/pkg/middleware/requestid"
)

type routerDeps struct {
	Sessions  *service.SessionService
	Metrics   *service.MetricsService
	Calendar  *handler.CalendarHandler
	Events    *handler.EventHandler
	Dashboard *handler.DashboardHandler
	Health    *handler.MetricsHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics))

	r.GET("/health", deps.Health.Health)
	r.GET("/ready", deps.Health.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", deps.Health.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())
	api.Use(middleware.Session(deps.Sessions))

	api.GET("/calendar", deps.Calendar.Month)
	api.GET("/calendar/navigate", deps.Calendar.Navigate)

	api.GET("/events", deps.Events.List)
	api.GET("/events/categories", deps.Events.Categories)
	api.GET("/events/export",
		middleware.RequireRoles(models.RoleOrganizer, models.RoleStakeholder),
		deps.Events.Export,
	)

	dashboards := api.Group("/dashboard")
	dashboards.GET("/admin", middleware.RequireRoles(models.RoleAdmin), deps.Dashboard.For(models.RoleAdmin))
	dashboards.GET("/organizer", middleware.RequireRoles(models.RoleOrganizer), deps.Dashboard.For(models.RoleOrganizer))
	dashboards.GET("/attendee", middleware.RequireRoles(models.RoleAttendee), deps.Dashboard.For(models.RoleAttendee))
	dashboards.GET("/stakeholder", middleware.RequireRoles(models.RoleStakeholder), deps.Dashboard.For(models.RoleStakeholder))

	return r
}
