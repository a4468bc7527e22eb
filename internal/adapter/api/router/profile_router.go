package router

import (
	"servicehub/internal/adapter/api/handler"
	"servicehub/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupProfileRouter initializes profile routes
func SetupProfileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	profileHandler := handler.GetProfileHandler()

	profile := e.Group("/v1/profile")
	profile.Use(authMiddleware.Authenticate)

	profile.GET("", profileHandler.GetProfile)
	profile.POST("", profileHandler.Register)
}
