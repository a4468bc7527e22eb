package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"servicehub/internal/domain/entity"
	"servicehub/internal/domain/repository"
	"servicehub/pkg/errors"
)

// In-memory repositories backing the use case tests. Mutations notify
// live subscribers with the full current set, mirroring how the store
// delivers snapshot queries.

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*entity.Profile
	getErr   error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*entity.Profile)}
}

func (r *fakeProfileRepo) Get(ctx context.Context, identity string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.getErr != nil {
		return nil, r.getErr
	}
	profile, ok := r.profiles[identity]
	if !ok {
		return nil, errors.NotFound("Profile", nil)
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeProfileRepo) Set(ctx context.Context, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *profile
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	r.profiles[profile.Identity] = &copied
	return nil
}

type fakeListingRepo struct {
	mu       sync.Mutex
	listings map[string]*entity.Listing
	nextID   int
	subs     []chan repository.Snapshot[*entity.Listing]
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[string]*entity.Listing)}
}

func (r *fakeListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	if listing.ID == "" {
		r.nextID++
		listing.ID = fmt.Sprintf("listing-%d", r.nextID)
	}
	if listing.PostedAt.IsZero() {
		listing.PostedAt = time.Now()
	}
	copied := *listing
	r.listings[listing.ID] = &copied
	r.mu.Unlock()

	r.notify()
	return nil
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	copied := *listing
	return &copied, nil
}

func (r *fakeListingRepo) ListAll(ctx context.Context) ([]*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked(""), nil
}

func (r *fakeListingRepo) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked(sellerID), nil
}

func (r *fakeListingRepo) SubscribeAll(ctx context.Context) (*repository.Feed[*entity.Listing], error) {
	return r.subscribe(""), nil
}

func (r *fakeListingRepo) SubscribeBySeller(ctx context.Context, sellerID string) (*repository.Feed[*entity.Listing], error) {
	return r.subscribe(sellerID), nil
}

func (r *fakeListingRepo) subscribe(sellerID string) *repository.Feed[*entity.Listing] {
	ch := make(chan repository.Snapshot[*entity.Listing], 16)

	r.mu.Lock()
	r.subs = append(r.subs, ch)
	ch <- repository.Snapshot[*entity.Listing]{Items: r.snapshotLocked(sellerID)}
	r.mu.Unlock()

	var once sync.Once
	return &repository.Feed[*entity.Listing]{
		Updates: ch,
		Stop: func() {
			once.Do(func() {
				r.mu.Lock()
				for i, sub := range r.subs {
					if sub == ch {
						r.subs = append(r.subs[:i], r.subs[i+1:]...)
						break
					}
				}
				r.mu.Unlock()
				close(ch)
			})
		},
	}
}

func (r *fakeListingRepo) notify() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range r.subs {
		select {
		case ch <- repository.Snapshot[*entity.Listing]{Items: r.snapshotLocked("")}:
		default:
		}
	}
}

func (r *fakeListingRepo) snapshotLocked(sellerID string) []*entity.Listing {
	items := make([]*entity.Listing, 0, len(r.listings))
	for _, listing := range r.listings {
		if sellerID != "" && listing.SellerID != sellerID {
			continue
		}
		copied := *listing
		items = append(items, &copied)
	}
	return items
}

type fakeChatRepo struct {
	mu        sync.Mutex
	chats     map[string]*entity.Chat
	messages  map[string][]*entity.Message
	nextMsgID int

	createMsgErr  error
	updateLastErr error
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    make(map[string]*entity.Chat),
		messages: make(map[string][]*entity.Message),
	}
}

func (r *fakeChatRepo) GetOrCreate(ctx context.Context, chat *entity.Chat) (*entity.Chat, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.chats[chat.ID]; ok {
		copied := *existing
		return &copied, false, nil
	}

	copied := *chat
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	r.chats[chat.ID] = &copied

	result := copied
	return &result, true, nil
}

func (r *fakeChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	copied := *chat
	return &copied, nil
}

func (r *fakeChatRepo) ListByParticipant(ctx context.Context, identity string) ([]*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var chats []*entity.Chat
	for _, chat := range r.chats {
		if chat.HasParticipant(identity) {
			copied := *chat
			chats = append(chats, &copied)
		}
	}
	return chats, nil
}

func (r *fakeChatRepo) SubscribeByParticipant(ctx context.Context, identity string) (*repository.Feed[*entity.Chat], error) {
	ch := make(chan repository.Snapshot[*entity.Chat], 16)
	chats, _ := r.ListByParticipant(ctx, identity)
	ch <- repository.Snapshot[*entity.Chat]{Items: chats}

	var once sync.Once
	return &repository.Feed[*entity.Chat]{
		Updates: ch,
		Stop:    func() { once.Do(func() { close(ch) }) },
	}, nil
}

func (r *fakeChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createMsgErr != nil {
		return r.createMsgErr
	}

	if message.ID == "" {
		r.nextMsgID++
		message.ID = fmt.Sprintf("msg-%d", r.nextMsgID)
	}
	if message.SentAt.IsZero() {
		message.SentAt = time.Now()
	}
	copied := *message
	r.messages[message.ChatID] = append(r.messages[message.ChatID], &copied)
	return nil
}

func (r *fakeChatRepo) ListMessages(ctx context.Context, chatID string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages := make([]*entity.Message, 0, len(r.messages[chatID]))
	for _, message := range r.messages[chatID] {
		copied := *message
		messages = append(messages, &copied)
	}
	return messages, nil
}

func (r *fakeChatRepo) SubscribeMessages(ctx context.Context, chatID string) (*repository.Feed[*entity.Message], error) {
	ch := make(chan repository.Snapshot[*entity.Message], 16)
	messages, _ := r.ListMessages(ctx, chatID)
	ch <- repository.Snapshot[*entity.Message]{Items: messages}

	var once sync.Once
	return &repository.Feed[*entity.Message]{
		Updates: ch,
		Stop:    func() { once.Do(func() { close(ch) }) },
	}, nil
}

func (r *fakeChatRepo) UpdateLastMessage(ctx context.Context, chatID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateLastErr != nil {
		return r.updateLastErr
	}

	chat, ok := r.chats[chatID]
	if !ok {
		return errors.NotFound("Chat", nil)
	}
	chat.LastMessage = text
	chat.LastMessageAt = time.Now()
	return nil
}

type fakeAuthClient struct {
	mu        sync.Mutex
	nextUser  int
	verifyErr error
}

func (f *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	return "verified-" + token, nil
}

func (f *fakeAuthClient) CreateAnonymousUser(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextUser++
	return fmt.Sprintf("anon-%d", f.nextUser), nil
}

func (f *fakeAuthClient) GenerateToken(ctx context.Context, uid string) (string, error) {
	return "token-for-" + uid, nil
}
