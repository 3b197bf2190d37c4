// internal/api/router.go
package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skanenje/prompt-enhancer/internal/common/config"
	"github.com/skanenje/prompt-enhancer/internal/common/logger"
)

func NewRouter(cfg *config.ServerConfig, handler *Handler, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-Id"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/frameworks", handler.ListFrameworks)
		apiGroup.GET("/frameworks/:id", handler.GetFramework)
		apiGroup.POST("/frameworks", handler.UploadFramework)
		apiGroup.POST("/enhance", handler.Enhance)

		apiGroup.POST("/debug/analyze", handler.DebugAnalyze)
		apiGroup.POST("/debug/infer", handler.DebugInfer)
	}

	return router
}
