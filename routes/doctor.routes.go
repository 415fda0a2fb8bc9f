package routes

import (
	"revivecare/internal/controllers"
	"revivecare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterDoctorRoutes(router *gin.Engine, doctorController *controllers.DoctorController) {
	doctorRoutes := router.Group("/doctors")
	doctorRoutes.Use(middleware.AuthMiddleware(), middleware.RequireRole(middleware.RoleDoctor))
	{
		doctorRoutes.GET("", doctorController.ListDoctors)
		doctorRoutes.GET("/me", doctorController.GetMe)
		doctorRoutes.PATCH("/me", doctorController.PatchMe)
		doctorRoutes.GET("/me/patients", doctorController.GetMyPatients)
		doctorRoutes.POST("/me/patients", doctorController.CreatePatient)
		doctorRoutes.GET("/me/alerts", doctorController.GetAlerts)
		doctorRoutes.GET("/:id", doctorController.GetDoctorByID)
	}
}
