package routes

import (
	"revivecare/internal/controllers"
	"revivecare/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterPatientRoutes mounts the doctor-facing /patients endpoints and the
// patient self-service /patient endpoints.
func RegisterPatientRoutes(router *gin.Engine, patientController *controllers.PatientController, reportController *controllers.PatientReportController) {
	managementRoutes := router.Group("/patients")
	managementRoutes.Use(middleware.AuthMiddleware(), middleware.RequireRole(middleware.RoleDoctor))
	{
		managementRoutes.GET("/:id", patientController.GetPatient)
		managementRoutes.PUT("/:id", patientController.UpdatePatient)
		managementRoutes.DELETE("/:id", patientController.DeletePatient)
		managementRoutes.PUT("/:id/doctor", patientController.AssignDoctor)
		managementRoutes.GET("/:id/sessions", patientController.GetPatientSessions)
		managementRoutes.GET("/:id/chat", patientController.GetPatientChat)
		managementRoutes.GET("/:id/reports", reportController.GetPatientReports)
		managementRoutes.POST("/:id/reports", reportController.CreateReport)
	}

	selfRoutes := router.Group("/patient")
	selfRoutes.Use(middleware.AuthMiddleware(), middleware.RequireRole(middleware.RolePatient))
	{
		selfRoutes.GET("/me", patientController.GetMe)
		selfRoutes.PATCH("/me", patientController.PatchMe)
		selfRoutes.PUT("/me/password", patientController.ChangePassword)
		selfRoutes.GET("/dashboard", patientController.Dashboard)
		selfRoutes.GET("/reports", reportController.GetMyReports)
	}
}
