package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all routes.
func NewRouter(renameHandler *RenameHandler, metricsHandler http.Handler, maxMultipartMemory int64, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog(logger))
	router.MaxMultipartMemory = maxMultipartMemory

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "TDS Certificate Renamer",
		})
	})

	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/rename", renameHandler.Rename)

		mapping := api.Group("/mapping")
		{
			mapping.POST("/preview", renameHandler.PreviewMapping)
		}
	}

	return router
}
