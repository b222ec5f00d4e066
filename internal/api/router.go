// internal/api/router.go
package api

import (
	"transit-report/internal/common/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	PlanHandler    *PlanHandler
	ReadyChecks    map[string]ReadyCheck
	AllowedOrigins []string
	Logger         logger.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(cfg.Logger))

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", IdempotencyHeader},
		ExposeHeaders: []string{"Content-Length"},
	}
	if len(cfg.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	router.Use(cors.New(corsConfig))

	router.GET("/healthcheck", HealthCheck)
	router.GET("/ready", Ready(cfg.ReadyChecks))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	powerpoint := router.Group("/api/powerpoint")
	{
		powerpoint.POST("/create-plan", cfg.PlanHandler.CreatePlan)
		powerpoint.POST("/slide-elements", cfg.PlanHandler.MaterializeElements)
		powerpoint.GET("/slide-elements/:planId", cfg.PlanHandler.GetElements)
	}

	return router
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Info("request served", map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"status": c.Writer.Status(),
		})
	}
}
