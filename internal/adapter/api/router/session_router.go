package router

import (
	"servicehub/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

// SetupSessionRouter initializes session routes
func SetupSessionRouter(e *echo.Echo) {
	sessionHandler := handler.GetSessionHandler()

	// Public: bootstrap mints anonymous identities
	e.POST("/v1/session/bootstrap", sessionHandler.Bootstrap)
}
