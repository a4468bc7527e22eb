package handler

import (
	"github.com/labstack/echo/v4"

	"servicehub/internal/usecase"
	"servicehub/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type initiateChatRequest struct {
	ListingID string `json:"listing_id" validate:"required"`
	SellerID  string `json:"seller_id" validate:"required"`
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// InitiateChat opens (or returns) the chat session between the caller
// and a listing's seller. 201 means a new session was created, 200 that
// the existing one was returned.
func (h *ChatHandler) InitiateChat(c echo.Context) error {
	var req initiateChatRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	identity := c.Get("uid").(string)

	result, err := h.chatUseCase.Initiate(c.Request().Context(), identity, usecase.InitiateChatInput{
		ListingID: req.ListingID,
		SellerID:  req.SellerID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	if result.Created {
		return response.Created(c, result)
	}
	return response.Success(c, result)
}

func (h *ChatHandler) GetUserChats(c echo.Context) error {
	identity := c.Get("uid").(string)

	chats, err := h.chatUseCase.List(c.Request().Context(), identity)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chats)
}

func (h *ChatHandler) GetChatMessages(c echo.Context) error {
	identity := c.Get("uid").(string)

	messages, err := h.chatUseCase.Messages(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	identity := c.Get("uid").(string)

	// Whitespace-only text is a no-op by contract; the response then
	// carries no message.
	message, err := h.chatUseCase.SendMessage(c.Request().Context(), identity, c.Param("id"), req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}
