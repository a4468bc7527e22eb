package entity

import "time"

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

// Profile is the registered application identity record. There is at most
// one per identity; re-registration overwrites it in place.
type Profile struct {
	Identity    string    `json:"identity" firestore:"userId"`
	DisplayName string    `json:"display_name" firestore:"name"`
	Role        string    `json:"role" firestore:"role"` // "buyer" or "seller"
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
}

func ValidRole(role string) bool {
	return role == RoleBuyer || role == RoleSeller
}
