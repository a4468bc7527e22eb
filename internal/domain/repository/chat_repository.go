package repository

import (
	"context"

	"servicehub/internal/domain/entity"
)

type ChatRepository interface {
	// GetOrCreate inserts the chat under its deterministic ID, or returns
	// the existing document when one is already there. The returned bool
	// reports whether a new session was created.
	GetOrCreate(ctx context.Context, chat *entity.Chat) (*entity.Chat, bool, error)
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	ListByParticipant(ctx context.Context, identity string) ([]*entity.Chat, error)
	SubscribeByParticipant(ctx context.Context, identity string) (*Feed[*entity.Chat], error)

	// Message methods
	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, chatID string) ([]*entity.Message, error)
	SubscribeMessages(ctx context.Context, chatID string) (*Feed[*entity.Message], error)
	// UpdateLastMessage refreshes the denormalized summary on the chat
	// document. Callers must have already appended the message itself.
	UpdateLastMessage(ctx context.Context, chatID, text string) error
}
