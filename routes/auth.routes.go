package routes

import (
	"revivecare/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(router *gin.Engine, authController *controllers.AuthController) {
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/doctors/register", authController.RegisterDoctor)
		authRoutes.POST("/doctors/login", authController.LoginDoctor)
		authRoutes.POST("/patients/login", authController.LoginPatient)
	}
}
