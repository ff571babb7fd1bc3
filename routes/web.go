package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes thiết lập web routes
func SetupWebRoutes(router *gin.Engine) {
	web := router.Group("/")
	{
		// Home page
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Address Dedupe Service",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})

		// API documentation
		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "Address Dedupe API v1",
				"endpoints": map[string]string{
					"field":           "POST /v1/dedupe/:field",
					"toponym":         "POST /v1/dedupe/toponym",
					"address":         "POST /v1/dedupe/address",
					"place_languages": "POST /v1/place-languages",
					"statuses":        "GET /v1/statuses",
					"health":          "GET /health",
					"ready":           "GET /ready",
					"live":            "GET /live",
				},
			})
		})
	}
}
