package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/samber/lo"

	"servicehub/internal/domain/entity"
	"servicehub/internal/domain/repository"
	"servicehub/pkg/errors"
)

type CatalogUseCase struct {
	listingRepo repository.ListingRepository
	profileRepo repository.ProfileRepository
}

func NewCatalogUseCase(listingRepo repository.ListingRepository, profileRepo repository.ProfileRepository) *CatalogUseCase {
	return &CatalogUseCase{
		listingRepo: listingRepo,
		profileRepo: profileRepo,
	}
}

type PublishListingInput struct {
	Title        string
	Description  string
	Price        string
	Availability string
}

func (uc *CatalogUseCase) Publish(ctx context.Context, sellerID string, input PublishListingInput) (*entity.Listing, error) {
	if sellerID == "" {
		return nil, errors.NotReady("Identity is not established yet", nil)
	}

	for _, field := range []string{input.Title, input.Description, input.Price, input.Availability} {
		if strings.TrimSpace(field) == "" {
			return nil, errors.Validation("All fields are required", nil)
		}
	}

	profile, err := uc.profileRepo.Get(ctx, sellerID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.Role("Only registered sellers can publish listings")
		}
		return nil, err
	}
	if profile.Role != entity.RoleSeller {
		return nil, errors.Role("Only sellers can publish listings")
	}

	listing := &entity.Listing{
		SellerID:     sellerID,
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Availability: input.Availability,
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

// Remove verifies ownership, then fails: the deletion flow was never
// wired to a destructive call, and that incompleteness is surfaced as an
// explicit unsupported operation instead of a silent no-op.
func (uc *CatalogUseCase) Remove(ctx context.Context, listingID, requesterID string) error {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}

	if listing.SellerID != requesterID {
		return errors.Forbidden("Only the seller can remove a listing", nil)
	}

	return errors.Unsupported("Listing deletion")
}

func (uc *CatalogUseCase) ListAll(ctx context.Context) ([]*entity.Listing, error) {
	listings, err := uc.listingRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	SortListings(listings)
	return listings, nil
}

func (uc *CatalogUseCase) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Listing, error) {
	listings, err := uc.listingRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	SortListings(listings)
	return listings, nil
}

func (uc *CatalogUseCase) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	return uc.listingRepo.GetByID(ctx, id)
}

func (uc *CatalogUseCase) SubscribeAll(ctx context.Context) (*repository.Feed[*entity.Listing], error) {
	feed, err := uc.listingRepo.SubscribeAll(ctx)
	if err != nil {
		return nil, err
	}
	return sortFeed(feed, SortListings), nil
}

func (uc *CatalogUseCase) SubscribeBySeller(ctx context.Context, sellerID string) (*repository.Feed[*entity.Listing], error) {
	feed, err := uc.listingRepo.SubscribeBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return sortFeed(feed, SortListings), nil
}

// SortListings orders newest first. A listing whose timestamp has not
// resolved yet sorts after everything else.
func SortListings(listings []*entity.Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		a, b := listings[i].PostedAt, listings[j].PostedAt
		if a.IsZero() {
			return false
		}
		if b.IsZero() {
			return true
		}
		return a.After(b)
	})
}

// FilterListings keeps listings whose title or description contains the
// term, case-insensitively. An empty term keeps everything.
func FilterListings(listings []*entity.Listing, term string) []*entity.Listing {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return listings
	}

	return lo.Filter(listings, func(listing *entity.Listing, _ int) bool {
		return strings.Contains(strings.ToLower(listing.Title), term) ||
			strings.Contains(strings.ToLower(listing.Description), term)
	})
}
