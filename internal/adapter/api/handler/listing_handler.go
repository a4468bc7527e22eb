package handler

import (
	"github.com/labstack/echo/v4"

	"servicehub/internal/domain/entity"
	"servicehub/internal/usecase"
	"servicehub/pkg/response"
)

type ListingHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewListingHandler(catalogUseCase *usecase.CatalogUseCase) *ListingHandler {
	return &ListingHandler{
		catalogUseCase: catalogUseCase,
	}
}

type publishListingRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Price        string `json:"price" validate:"required"`
	Availability string `json:"availability" validate:"required"`
}

// ListListings returns the current catalog snapshot: all published
// listings, or the caller's own with scope=mine. The optional q parameter
// applies the case-insensitive title/description filter.
func (h *ListingHandler) ListListings(c echo.Context) error {
	identity := c.Get("uid").(string)

	var listings []*entity.Listing
	var err error
	if c.QueryParam("scope") == "mine" {
		listings, err = h.catalogUseCase.ListBySeller(c.Request().Context(), identity)
	} else {
		listings, err = h.catalogUseCase.ListAll(c.Request().Context())
	}
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, usecase.FilterListings(listings, c.QueryParam("q")))
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	listing, err := h.catalogUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) PublishListing(c echo.Context) error {
	var req publishListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	identity := c.Get("uid").(string)

	listing, err := h.catalogUseCase.Publish(c.Request().Context(), identity, usecase.PublishListingInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Availability: req.Availability,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

// DeleteListing verifies ownership and then reports the deletion path as
// unsupported. It never silently succeeds.
func (h *ListingHandler) DeleteListing(c echo.Context) error {
	identity := c.Get("uid").(string)

	err := h.catalogUseCase.Remove(c.Request().Context(), c.Param("id"), identity)
	return response.Error(c, err)
}
