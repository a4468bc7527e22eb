package entity

import "time"

// Listing is a seller-published service offering. Listings are immutable
// once created; there is no edit path. Price and availability are opaque
// display strings, never parsed.
type Listing struct {
	ID           string    `json:"id" firestore:"id"`
	SellerID     string    `json:"seller_id" firestore:"sellerId"`
	Title        string    `json:"title" firestore:"serviceName"`
	Description  string    `json:"description" firestore:"description"`
	Price        string    `json:"price" firestore:"price"`
	Availability string    `json:"availability" firestore:"availability"`
	PostedAt     time.Time `json:"posted_at" firestore:"postedAt,serverTimestamp"`
}
