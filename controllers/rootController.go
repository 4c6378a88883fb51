package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// rootHandler handles requests to the root path
func rootHandler(c *gin.Context) {
	c.Status(http.StatusOK)
	if _, err := c.Writer.Write([]byte("Doctor portal API")); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SetupRootRoute sets up the root, health and metrics routes
func SetupRootRoute(router *gin.Engine) {
	router.GET("/", rootHandler)
	router.GET("/healthz", healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
