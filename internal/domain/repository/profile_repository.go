package repository

import (
	"context"

	"servicehub/internal/domain/entity"
)

type ProfileRepository interface {
	// Get is a point lookup; it returns a NOT_FOUND error when the
	// identity has no profile.
	Get(ctx context.Context, identity string) (*entity.Profile, error)
	// Set creates or overwrites the profile for its identity.
	Set(ctx context.Context, profile *entity.Profile) error
}
