package entity

import (
	"sort"
	"strings"
	"time"
)

// Chat is a two-party conversation scoped to one listing. LastMessage and
// LastMessageAt are denormalized summaries of the newest message, written
// only by the message append path; they may lag the message feed but never
// lead it.
type Chat struct {
	ID            string    `json:"id" firestore:"id"`
	ListingID     string    `json:"listing_id" firestore:"serviceId"`
	Participants  []string  `json:"participants" firestore:"participants"`
	BuyerID       string    `json:"buyer_id" firestore:"buyerId"`
	SellerID      string    `json:"seller_id" firestore:"sellerId"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
	LastMessage   string    `json:"last_message" firestore:"lastMessage"`
	LastMessageAt time.Time `json:"last_message_at,omitempty" firestore:"lastMessageTimestamp,omitempty"`
}

// ChatKey derives the chat document ID from the listing and the sorted
// participant pair. The same (listing, buyer, seller) tuple always maps to
// the same ID, which is what lets the store reject duplicate sessions
// instead of relying on query-then-insert.
func ChatKey(listingID, a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return strings.Join([]string{listingID, pair[0], pair[1]}, "_")
}

func (c *Chat) HasParticipant(identity string) bool {
	for _, p := range c.Participants {
		if p == identity {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant that is not the given identity.
func (c *Chat) OtherParticipant(identity string) string {
	for _, p := range c.Participants {
		if p != identity {
			return p
		}
	}
	return ""
}

// ActivityTime is the timestamp chats are ordered by: the last message
// time when present, otherwise creation time.
func (c *Chat) ActivityTime() time.Time {
	if !c.LastMessageAt.IsZero() {
		return c.LastMessageAt
	}
	return c.CreatedAt
}
