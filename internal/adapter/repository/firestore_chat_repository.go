package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"servicehub/internal/domain/entity"
	"servicehub/internal/domain/repository"
	"servicehub/pkg/errors"
)

type firestoreChatRepository struct {
	client *firestore.Client
	appID  string
}

func NewFirestoreChatRepository(client *firestore.Client, appID string) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
		appID:  appID,
	}
}

func (r *firestoreChatRepository) chats() *firestore.CollectionRef {
	return publicData(r.client, r.appID).Collection("chats")
}

func (r *firestoreChatRepository) messages(chatID string) *firestore.CollectionRef {
	return r.chats().Doc(chatID).Collection("messages")
}

// GetOrCreate relies on the chat ID being deterministic for its
// (listing, participant pair) tuple: Create fails with AlreadyExists when
// another writer got there first, and the existing session is returned
// instead. Concurrent initiations therefore converge on one document.
func (r *firestoreChatRepository) GetOrCreate(ctx context.Context, chat *entity.Chat) (*entity.Chat, bool, error) {
	if chat.ID == "" {
		return nil, false, errors.Internal("Chat ID must be set before GetOrCreate", nil)
	}

	_, err := r.chats().Doc(chat.ID).Create(ctx, chat)
	if err == nil {
		return chat, true, nil
	}
	if status.Code(err) != codes.AlreadyExists {
		return nil, false, errors.Internal("Failed to create chat", err)
	}

	existing, err := r.GetByID(ctx, chat.ID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.chats().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat", err)
		}
		return nil, errors.Internal("Failed to get chat", err)
	}

	return decodeChat(doc)
}

func (r *firestoreChatRepository) ListByParticipant(ctx context.Context, identity string) ([]*entity.Chat, error) {
	query := r.chats().Where("participants", "array-contains", identity)
	iter := query.Documents(ctx)
	var chats []*entity.Chat

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate chats", err)
		}

		chat, err := decodeChat(doc)
		if err != nil {
			continue // skip malformed documents
		}
		chats = append(chats, chat)
	}

	return chats, nil
}

func (r *firestoreChatRepository) SubscribeByParticipant(ctx context.Context, identity string) (*repository.Feed[*entity.Chat], error) {
	query := r.chats().Where("participants", "array-contains", identity)
	return subscribeQuery(ctx, query, "chats", decodeChatSnapshot), nil
}

func (r *firestoreChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	_, err := r.messages(message.ChatID).Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, chatID string) ([]*entity.Message, error) {
	iter := r.messages(chatID).Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		message, err := decodeMessage(doc)
		if err != nil {
			continue
		}
		messages = append(messages, message)
	}

	return messages, nil
}

func (r *firestoreChatRepository) SubscribeMessages(ctx context.Context, chatID string) (*repository.Feed[*entity.Message], error) {
	return subscribeQuery(ctx, r.messages(chatID).Query, "messages", decodeMessageSnapshot), nil
}

func (r *firestoreChatRepository) UpdateLastMessage(ctx context.Context, chatID, text string) error {
	_, err := r.chats().Doc(chatID).Update(ctx, []firestore.Update{
		{Path: "lastMessage", Value: text},
		{Path: "lastMessageTimestamp", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return errors.Internal("Failed to update chat summary", err)
	}

	return nil
}

func decodeChat(doc *firestore.DocumentSnapshot) (*entity.Chat, error) {
	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.Internal("Failed to parse chat data", err)
	}
	if chat.ID == "" {
		chat.ID = doc.Ref.ID
	}
	return &chat, nil
}

func decodeChatSnapshot(doc *firestore.DocumentSnapshot) (*entity.Chat, bool) {
	chat, err := decodeChat(doc)
	return chat, err == nil
}

func decodeMessage(doc *firestore.DocumentSnapshot) (*entity.Message, error) {
	var message entity.Message
	if err := doc.DataTo(&message); err != nil {
		return nil, errors.Internal("Failed to parse message data", err)
	}
	if message.ID == "" {
		message.ID = doc.Ref.ID
	}
	return &message, nil
}

func decodeMessageSnapshot(doc *firestore.DocumentSnapshot) (*entity.Message, bool) {
	message, err := decodeMessage(doc)
	return message, err == nil
}
