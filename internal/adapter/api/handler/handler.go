package handler

import (
	"servicehub/internal/usecase"
)

var (
	sessionHandler *SessionHandler
	profileHandler *ProfileHandler
	listingHandler *ListingHandler
	chatHandler    *ChatHandler
)

func Setup(
	sessionUseCase *usecase.SessionUseCase,
	profileUseCase *usecase.ProfileUseCase,
	catalogUseCase *usecase.CatalogUseCase,
	chatUseCase *usecase.ChatUseCase,
	names *usecase.DisplayNameCache,
) {
	sessionHandler = NewSessionHandler(sessionUseCase)
	profileHandler = NewProfileHandler(profileUseCase, names)
	listingHandler = NewListingHandler(catalogUseCase)
	chatHandler = NewChatHandler(chatUseCase)
}

func GetSessionHandler() *SessionHandler {
	return sessionHandler
}

func GetProfileHandler() *ProfileHandler {
	return profileHandler
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}
