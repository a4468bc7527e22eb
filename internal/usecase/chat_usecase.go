package usecase

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync/atomic"

	"servicehub/internal/domain/entity"
	"servicehub/internal/domain/repository"
	ws "servicehub/internal/infrastructure/websocket"
	"servicehub/pkg/errors"
	"servicehub/pkg/logger"
)

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	listingRepo repository.ListingRepository
	profileRepo repository.ProfileRepository
	names       *DisplayNameCache
	wsManager   *ws.Manager
	seq         atomic.Int64
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	listingRepo repository.ListingRepository,
	profileRepo repository.ProfileRepository,
	names *DisplayNameCache,
	wsManager *ws.Manager,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:    chatRepo,
		listingRepo: listingRepo,
		profileRepo: profileRepo,
		names:       names,
		wsManager:   wsManager,
	}
}

type InitiateChatInput struct {
	ListingID string
	SellerID  string
}

type InitiateChatResult struct {
	Chat    *entity.Chat `json:"chat"`
	Created bool         `json:"created"`
}

// ChatSummary decorates a chat with the resolved display name of the
// other participant, for list rendering.
type ChatSummary struct {
	*entity.Chat
	OtherName string `json:"other_name"`
}

// Initiate opens the chat session between a buyer and the seller of a
// listing, creating it when none exists. The session ID is deterministic
// for the (listing, buyer, seller) tuple, so repeated or concurrent
// initiations converge on the same session; only the first reports
// Created.
func (uc *ChatUseCase) Initiate(ctx context.Context, buyerID string, input InitiateChatInput) (*InitiateChatResult, error) {
	if buyerID == "" {
		return nil, errors.NotReady("Identity is not established yet", nil)
	}
	if buyerID == input.SellerID {
		return nil, errors.SelfChat("You cannot chat with yourself")
	}

	profile, err := uc.profileRepo.Get(ctx, buyerID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.Role("Only registered buyers can initiate chats")
		}
		return nil, err
	}
	if profile.Role != entity.RoleBuyer {
		return nil, errors.Role("Only buyers can initiate chats")
	}

	listing, err := uc.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		log.Printf("Initiate: listing %s not found: %v", input.ListingID, err)
		return nil, err
	}
	if listing.SellerID != input.SellerID {
		return nil, errors.Validation("Seller does not match listing", nil)
	}

	chat := &entity.Chat{
		ID:           entity.ChatKey(input.ListingID, buyerID, input.SellerID),
		ListingID:    input.ListingID,
		Participants: []string{buyerID, input.SellerID},
		BuyerID:      buyerID,
		SellerID:     input.SellerID,
		LastMessage:  "",
	}

	canonical, created, err := uc.chatRepo.GetOrCreate(ctx, chat)
	if err != nil {
		log.Printf("Initiate: failed to get or create chat %s: %v", chat.ID, err)
		return nil, err
	}

	if created {
		uc.notify(canonical.Participants, ws.Event{Type: "chat.created", Payload: canonical})
	}

	return &InitiateChatResult{Chat: canonical, Created: created}, nil
}

// List returns the identity's chat sessions, most recently active first,
// with the other participant's display name resolved through the shared
// cache.
func (uc *ChatUseCase) List(ctx context.Context, identity string) ([]*ChatSummary, error) {
	if identity == "" {
		return nil, errors.NotReady("Identity is not established yet", nil)
	}

	chats, err := uc.chatRepo.ListByParticipant(ctx, identity)
	if err != nil {
		return nil, err
	}
	SortChats(chats)

	return uc.Summarize(ctx, identity, chats), nil
}

func (uc *ChatUseCase) Subscribe(ctx context.Context, identity string) (*repository.Feed[*entity.Chat], error) {
	if identity == "" {
		return nil, errors.NotReady("Identity is not established yet", nil)
	}

	feed, err := uc.chatRepo.SubscribeByParticipant(ctx, identity)
	if err != nil {
		return nil, err
	}
	return sortFeed(feed, SortChats), nil
}

// Summarize resolves the other participant's display name for each chat,
// as seen by the viewer.
func (uc *ChatUseCase) Summarize(ctx context.Context, viewer string, chats []*entity.Chat) []*ChatSummary {
	summaries := make([]*ChatSummary, 0, len(chats))
	for _, chat := range chats {
		summaries = append(summaries, &ChatSummary{
			Chat:      chat,
			OtherName: uc.names.Resolve(ctx, chat.OtherParticipant(viewer)),
		})
	}
	return summaries
}

// SendMessage appends a message and then refreshes the chat's summary
// fields. The two writes are not atomic: the append is issued first so a
// failure in between leaves the feed ahead of the summary, never behind.
// Whitespace-only text is a no-op.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID, chatID, text string) (*entity.Message, error) {
	if senderID == "" {
		return nil, errors.NotReady("Identity is not established yet", nil)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(senderID) {
		return nil, errors.Forbidden("Only chat participants can send messages", nil)
	}

	message := &entity.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Text:     text,
		Seq:      uc.seq.Add(1),
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		log.Printf("SendMessage: append failed for chat %s: %v", chatID, err)
		return nil, errors.SendFailed("Failed to send message", err)
	}

	// Summary staleness is tolerable, message loss is not: the message is
	// durable at this point, so a summary failure is logged, not surfaced.
	if err := uc.chatRepo.UpdateLastMessage(ctx, chatID, text); err != nil {
		logger.Warn("SendMessage: summary update failed for chat %s: %v", chatID, err)
	}

	uc.notify(chat.Participants, ws.Event{Type: "message.sent", Payload: message})

	return message, nil
}

func (uc *ChatUseCase) Messages(ctx context.Context, viewerID, chatID string) ([]*entity.Message, error) {
	if _, err := uc.requireParticipant(ctx, viewerID, chatID); err != nil {
		return nil, err
	}

	messages, err := uc.chatRepo.ListMessages(ctx, chatID)
	if err != nil {
		return nil, err
	}
	SortMessages(messages)
	return messages, nil
}

func (uc *ChatUseCase) SubscribeMessages(ctx context.Context, viewerID, chatID string) (*repository.Feed[*entity.Message], error) {
	if _, err := uc.requireParticipant(ctx, viewerID, chatID); err != nil {
		return nil, err
	}

	feed, err := uc.chatRepo.SubscribeMessages(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return sortFeed(feed, SortMessages), nil
}

func (uc *ChatUseCase) requireParticipant(ctx context.Context, viewerID, chatID string) (*entity.Chat, error) {
	if viewerID == "" {
		return nil, errors.NotReady("Identity is not established yet", nil)
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(viewerID) {
		return nil, errors.Forbidden("Only chat participants can view this chat", nil)
	}
	return chat, nil
}

func (uc *ChatUseCase) notify(participants []string, event ws.Event) {
	if uc.wsManager == nil {
		return
	}
	for _, identity := range participants {
		uc.wsManager.SendEvent(identity, event)
	}
}

// SortChats orders by most recent activity: last message time when
// present, otherwise creation time.
func SortChats(chats []*entity.Chat) {
	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].ActivityTime().After(chats[j].ActivityTime())
	})
}

// SortMessages orders oldest first. Messages whose server timestamp has
// not resolved yet sort last; ties fall back to the append sequence.
func SortMessages(messages []*entity.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		a, b := messages[i], messages[j]
		if a.Pending() != b.Pending() {
			return b.Pending()
		}
		if !a.Pending() && !a.SentAt.Equal(b.SentAt) {
			return a.SentAt.Before(b.SentAt)
		}
		return a.Seq < b.Seq
	})
}
