package router

import (
	"servicehub/internal/adapter/api/handler"
	"servicehub/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupListingRouter initializes listing routes
func SetupListingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	listingHandler := handler.GetListingHandler()

	listings := e.Group("/v1/listings")
	listings.Use(authMiddleware.Authenticate)

	listings.GET("", listingHandler.ListListings)
	listings.GET("/:id", listingHandler.GetListing)
	listings.POST("", listingHandler.PublishListing)
	listings.DELETE("/:id", listingHandler.DeleteListing)
}
