package router

import (
	"servicehub/internal/adapter/api/handler"
	"servicehub/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupChatRouter initializes chat routes
func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.POST("", chatHandler.InitiateChat)
	chats.GET("", chatHandler.GetUserChats)
	chats.GET("/:id/messages", chatHandler.GetChatMessages)
	chats.POST("/:id/messages", chatHandler.SendMessage)
}
