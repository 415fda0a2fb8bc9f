package routes

import (
	"revivecare/internal/controllers"
	"revivecare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterExerciseRoutes(router *gin.Engine, exerciseController *controllers.ExerciseSessionController) {
	exerciseRoutes := router.Group("/exercise")
	exerciseRoutes.Use(middleware.AuthMiddleware(), middleware.RequireRole(middleware.RolePatient))
	{
		exerciseRoutes.POST("/start", exerciseController.StartSession)
		exerciseRoutes.POST("/:id/finish", exerciseController.FinishSession)
		exerciseRoutes.GET("", exerciseController.ListSessions)
		exerciseRoutes.GET("/active", exerciseController.GetActiveSession)
		exerciseRoutes.GET("/:id", exerciseController.GetSession)
		exerciseRoutes.DELETE("/:id", exerciseController.DeleteSession)
	}
}
