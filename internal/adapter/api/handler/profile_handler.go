package handler

import (
	"github.com/labstack/echo/v4"

	"servicehub/internal/usecase"
	"servicehub/pkg/response"
)

type ProfileHandler struct {
	profileUseCase *usecase.ProfileUseCase
	names          *usecase.DisplayNameCache
}

func NewProfileHandler(profileUseCase *usecase.ProfileUseCase, names *usecase.DisplayNameCache) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		names:          names,
	}
}

type registerRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
	Role        string `json:"role" validate:"required,oneof=buyer seller"`
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	identity := c.Get("uid").(string)

	profile, err := h.profileUseCase.Resolve(c.Request().Context(), identity)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *ProfileHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	identity := c.Get("uid").(string)

	profile, err := h.profileUseCase.Register(c.Request().Context(), identity, req.DisplayName, req.Role)
	if err != nil {
		return response.Error(c, err)
	}

	// The cached display name may predate this registration.
	h.names.Evict(identity)

	return response.Created(c, profile)
}
