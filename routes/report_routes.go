package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alertcast/internal/handlers/shared"
)

// SetupReportRoutes registers the alert endpoints. The paths match what the
// admin dashboard and mobile clients already call.
func SetupReportRoutes(r gin.IRouter, reportHandler *shared.ReportHandler) {
	r.POST("/publicize_report", reportHandler.PublicizeReport)
	r.POST("/register_fcm_token", reportHandler.RegisterFCMToken)
	r.POST("/send_status_notification", reportHandler.SendStatusNotification)
}

func SetupHealthRoutes(r gin.IRouter, version string) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": version,
		})
	})
}

// Setup mounts every route at the root and again under /api/v1.
func Setup(engine *gin.Engine, reportHandler *shared.ReportHandler, version string) {
	SetupHealthRoutes(engine, version)
	SetupReportRoutes(engine, reportHandler)

	v1 := engine.Group("/api/v1")
	SetupReportRoutes(v1, reportHandler)
}
