package entity

import "time"

// Message is immutable once created. SentAt is assigned by the server; a
// zero SentAt means the server timestamp has not resolved yet. Seq is a
// monotonic sequence number used to break ordering ties between messages
// that share a timestamp.
type Message struct {
	ID       string    `json:"id" firestore:"id"`
	ChatID   string    `json:"chat_id" firestore:"chatId"`
	SenderID string    `json:"sender_id" firestore:"senderId"`
	Text     string    `json:"text" firestore:"text"`
	Seq      int64     `json:"seq" firestore:"seq"`
	SentAt   time.Time `json:"sent_at" firestore:"timestamp,serverTimestamp"`
}

// Pending reports whether the server timestamp has not been assigned yet.
// Pending messages sort after all resolved ones.
func (m *Message) Pending() bool {
	return m.SentAt.IsZero()
}
