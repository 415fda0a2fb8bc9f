package routes

import (
	"revivecare/internal/controllers"
	"revivecare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterChatRoutes(router *gin.Engine, chatController *controllers.ChatController) {
	chatRoutes := router.Group("/patient/chatbot")
	chatRoutes.Use(middleware.AuthMiddleware(), middleware.RequireRole(middleware.RolePatient))
	{
		chatRoutes.POST("/send", chatController.SendMessage)
		chatRoutes.GET("/history", chatController.GetHistory)
		chatRoutes.DELETE("/history", chatController.ClearHistory)
	}
}
