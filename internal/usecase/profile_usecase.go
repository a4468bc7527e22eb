package usecase

import (
	"context"
	"strings"

	"servicehub/internal/domain/entity"
	"servicehub/internal/domain/repository"
	"servicehub/pkg/errors"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
	}
}

// Resolve is a point lookup of the profile for an identity. A NOT_FOUND
// error means the identity is established but not registered yet.
func (uc *ProfileUseCase) Resolve(ctx context.Context, identity string) (*entity.Profile, error) {
	if identity == "" {
		return nil, errors.NotReady("Identity is not established yet", nil)
	}

	return uc.profileRepo.Get(ctx, identity)
}

// Register creates the profile for an identity, or overwrites it in place
// when one already exists. First registration wins any display-name
// dispute only in the sense that there is no history; the latest write is
// the profile.
func (uc *ProfileUseCase) Register(ctx context.Context, identity, displayName, role string) (*entity.Profile, error) {
	if identity == "" {
		return nil, errors.NotReady("Identity is not established yet", nil)
	}
	if strings.TrimSpace(displayName) == "" {
		return nil, errors.Validation("Display name is required", nil)
	}
	if !entity.ValidRole(role) {
		return nil, errors.Validation("Role must be buyer or seller", nil)
	}

	profile := &entity.Profile{
		Identity:    identity,
		DisplayName: displayName,
		Role:        role,
	}

	if err := uc.profileRepo.Set(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
