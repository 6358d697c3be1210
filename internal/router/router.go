// Package router wires middleware and routes onto the Gin engine.
package router

import (
	"github.com/gin-gonic/gin"

	"haciendas/internal/handler"
	"haciendas/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	docH *handler.DocumentHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	docs := v1.Group("/documents")
	docs.POST("/upload", docH.Upload)
	docs.GET("", docH.List)
	docs.PUT("/:id/role", docH.SetRole)
	docs.DELETE("/:id", docH.Delete)

	reports := v1.Group("/reports")
	reports.GET("", reportH.Grids)
	reports.GET("/export.xlsx", reportH.ExportXLSX)
	reports.GET("/ledger.csv", reportH.ExportLedgerCSV)

	return r
}
