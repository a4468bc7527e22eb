package handler

import (
	"github.com/labstack/echo/v4"

	"servicehub/internal/usecase"
	"servicehub/pkg/response"
)

type SessionHandler struct {
	sessionUseCase *usecase.SessionUseCase
}

func NewSessionHandler(sessionUseCase *usecase.SessionUseCase) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
	}
}

type bootstrapRequest struct {
	Credential string `json:"credential"`
}

// Bootstrap establishes an identity for the caller. With a credential it
// is verified; without one an anonymous identity is minted and a custom
// token returned. The response carries the resolved profile (if any) and
// the route the client should land on.
func (h *SessionHandler) Bootstrap(c echo.Context) error {
	var req bootstrapRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	session, err := h.sessionUseCase.Bootstrap(c.Request().Context(), req.Credential)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, session)
}
