package api

import (
	"net/http"
	"time"

	summaryDelivery "meeting-notes-backend/internal/summary/delivery"
	"meeting-notes-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, summaryHandler *summaryDelivery.SummaryHandler, m *metrics.Metrics) {
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "OK",
				"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
			})
		})

		summaryHandler.RegisterRoutes(api)
	}

	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
}
