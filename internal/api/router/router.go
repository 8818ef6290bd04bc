package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NGOKrooz/SPIN-sub000/config"
	"github.com/NGOKrooz/SPIN-sub000/internal/api/handler"
	"github.com/NGOKrooz/SPIN-sub000/internal/api/middleware"
	"github.com/NGOKrooz/SPIN-sub000/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))
	r.Use(middleware.RateLimit(rdb, 120, time.Minute))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		interns := v1.Group("/interns")
		{
			interns.GET("", h.Intern.List)
			interns.POST("", h.Intern.Register)
			interns.GET("/:id", h.Intern.Get)
			interns.PUT("/:id", h.Intern.Update)
			interns.DELETE("/:id", h.Intern.Delete)
			interns.POST("/:id/extend", h.Intern.Extend)
			interns.GET("/:id/extensions", h.Intern.ListExtensions)
			interns.GET("/:id/schedule", h.Rotation.GetSchedule)
			interns.GET("/:id/schedule.ics", h.Rotation.GetScheduleICS)
			interns.GET("/:id/available-units", h.Rotation.AvailableUnits)
		}

		units := v1.Group("/units")
		{
			units.GET("", h.Unit.List)
			units.POST("", h.Unit.Create)
			units.PUT("/reorder", h.Unit.Reorder)
			units.GET("/:id", h.Unit.Get)
			units.PUT("/:id", h.Unit.Update)
			units.DELETE("/:id", h.Unit.Delete)
		}

		rotations := v1.Group("/rotations")
		{
			rotations.POST("", h.Rotation.Create)
			rotations.GET("/conflicts", h.Rotation.CheckConflicts)
			rotations.PUT("/:id", h.Rotation.Update)
			rotations.DELETE("/:id", h.Rotation.Delete)
		}

		v1.GET("/activity", h.Activity.List)

		settings := v1.Group("/settings")
		{
			settings.GET("", h.Settings.Get)
			settings.PUT("", h.Settings.Update)
		}
	}

	return r
}
