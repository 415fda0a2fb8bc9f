package routes

import (
	"revivecare/internal/controllers"
	"revivecare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterReportRoutes(router *gin.Engine, reportController *controllers.PatientReportController) {
	reportRoutes := router.Group("/reports")
	reportRoutes.Use(middleware.AuthMiddleware(), middleware.RequireRole(middleware.RoleDoctor))
	{
		reportRoutes.GET("/uploaded", reportController.GetUploadedReports)
		reportRoutes.GET("/:id", reportController.GetReport)
		reportRoutes.PUT("/:id", reportController.UpdateReport)
		reportRoutes.DELETE("/:id", reportController.DeleteReport)
	}
}
