package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/address-dedupe/app/controllers"
	"github.com/address-dedupe/helpers/utils"
)

// SetupAPIRoutes thiết lập tất cả API routes
func SetupAPIRoutes(router *gin.Engine, dedupeController *controllers.DedupeController) {
	// API v1 group
	v1 := router.Group("/v1")
	{
		dedupe := v1.Group("/dedupe")
		{
			dedupe.POST("/toponym", dedupeController.CompareToponym)
			dedupe.POST("/address", dedupeController.CompareAddresses)
			dedupe.POST("/:field", dedupeController.CompareField)
		}

		v1.POST("/place-languages", dedupeController.PlaceLanguages)
		v1.GET("/statuses", dedupeController.Statuses)
		v1.GET("/health", dedupeController.HealthCheck)
	}
}

// SetupHealthRoutes thiết lập health check routes
func SetupHealthRoutes(router *gin.Engine, dedupeController *controllers.DedupeController) {
	router.GET("/health", dedupeController.HealthCheck)

	// Readiness check: 503 khi expander chưa sẵn sàng
	router.GET("/ready", dedupeController.Ready)

	// Liveness check
	router.GET("/live", dedupeController.Live)
}

// SetupAllRoutes thiết lập tất cả routes
func SetupAllRoutes(router *gin.Engine, dedupeController *controllers.DedupeController) {
	// Thiết lập middleware
	router.Use(utils.RequestID())

	// Thiết lập các loại routes
	SetupWebRoutes(router)
	SetupHealthRoutes(router, dedupeController)
	SetupAPIRoutes(router, dedupeController)

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}
