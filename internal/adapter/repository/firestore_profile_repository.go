package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"servicehub/internal/domain/entity"
	"servicehub/internal/domain/repository"
	"servicehub/pkg/errors"
)

type firestoreProfileRepository struct {
	client *firestore.Client
	appID  string
}

func NewFirestoreProfileRepository(client *firestore.Client, appID string) repository.ProfileRepository {
	return &firestoreProfileRepository{
		client: client,
		appID:  appID,
	}
}

func (r *firestoreProfileRepository) Get(ctx context.Context, identity string) (*entity.Profile, error) {
	doc, err := profileDoc(r.client, r.appID, identity).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Profile", err)
		}
		return nil, errors.Internal("Failed to get profile", err)
	}

	var profile entity.Profile
	if err := doc.DataTo(&profile); err != nil {
		return nil, errors.Internal("Failed to parse profile data", err)
	}
	if profile.Identity == "" {
		profile.Identity = identity
	}

	return &profile, nil
}

func (r *firestoreProfileRepository) Set(ctx context.Context, profile *entity.Profile) error {
	// Full overwrite: re-registration replaces the previous profile in
	// place, no history is kept.
	_, err := profileDoc(r.client, r.appID, profile.Identity).Set(ctx, profile)
	if err != nil {
		return errors.Internal("Failed to write profile", err)
	}

	return nil
}
