package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicehub/internal/domain/entity"
	"servicehub/pkg/errors"
)

func newCatalogFixture(t *testing.T) (*CatalogUseCase, *fakeListingRepo, *fakeProfileRepo) {
	t.Helper()

	profileRepo := newFakeProfileRepo()
	listingRepo := newFakeListingRepo()
	profiles := NewProfileUseCase(profileRepo)

	ctx := context.Background()
	_, err := profiles.Register(ctx, "seller-1", "Sam", "seller")
	require.NoError(t, err)
	_, err = profiles.Register(ctx, "buyer-1", "Bea", "buyer")
	require.NoError(t, err)

	return NewCatalogUseCase(listingRepo, profileRepo), listingRepo, profileRepo
}

func TestPublishRequiresSellerRole(t *testing.T) {
	uc, _, _ := newCatalogFixture(t)
	ctx := context.Background()

	input := PublishListingInput{Title: "Cleaning", Description: "Deep clean", Price: "25/hr", Availability: "Weekdays"}

	_, err := uc.Publish(ctx, "buyer-1", input)
	assert.True(t, errors.Is(err, "ROLE_ERROR"))

	_, err = uc.Publish(ctx, "stranger", input)
	assert.True(t, errors.Is(err, "ROLE_ERROR"))

	_, err = uc.Publish(ctx, "", input)
	assert.True(t, errors.Is(err, "NOT_READY"))
}

func TestPublishValidatesFields(t *testing.T) {
	uc, _, _ := newCatalogFixture(t)

	_, err := uc.Publish(context.Background(), "seller-1", PublishListingInput{
		Title:        "Cleaning",
		Description:  "   ",
		Price:        "25/hr",
		Availability: "Weekdays",
	})

	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestPublishCreatesListing(t *testing.T) {
	uc, _, _ := newCatalogFixture(t)
	ctx := context.Background()

	listing, err := uc.Publish(ctx, "seller-1", PublishListingInput{
		Title:        "Cleaning",
		Description:  "Deep clean",
		Price:        "25/hr",
		Availability: "Weekdays",
	})
	require.NoError(t, err)
	require.NotEmpty(t, listing.ID)
	assert.Equal(t, "seller-1", listing.SellerID)

	fetched, err := uc.GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cleaning", fetched.Title)
}

func TestRemoveIsUnsupported(t *testing.T) {
	uc, _, _ := newCatalogFixture(t)
	ctx := context.Background()

	listing, err := uc.Publish(ctx, "seller-1", PublishListingInput{
		Title:        "Cleaning",
		Description:  "Deep clean",
		Price:        "25/hr",
		Availability: "Weekdays",
	})
	require.NoError(t, err)

	err = uc.Remove(ctx, listing.ID, "buyer-1")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	err = uc.Remove(ctx, listing.ID, "seller-1")
	assert.True(t, errors.Is(err, "UNSUPPORTED_OPERATION"))

	// The listing must survive the failed removal.
	still, err := uc.GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, listing.ID, still.ID)
}

func TestSortListingsNewestFirst(t *testing.T) {
	now := time.Now()
	listings := []*entity.Listing{
		{ID: "old", PostedAt: now.Add(-time.Hour)},
		{ID: "pending"},
		{ID: "new", PostedAt: now},
	}

	SortListings(listings)

	assert.Equal(t, "new", listings[0].ID)
	assert.Equal(t, "old", listings[1].ID)
	// Unresolved timestamps sort after everything else.
	assert.Equal(t, "pending", listings[2].ID)
}

func TestFilterListings(t *testing.T) {
	listings := []*entity.Listing{
		{ID: "a", Title: "House Cleaning", Description: "weekly visits"},
		{ID: "b", Title: "Gardening", Description: "lawn and hedges"},
		{ID: "c", Title: "Cooking", Description: "CLEANING up included"},
	}

	matched := FilterListings(listings, "cleaning")
	require.Len(t, matched, 2)
	assert.Equal(t, "a", matched[0].ID)
	assert.Equal(t, "c", matched[1].ID)

	// Filtering is idempotent.
	again := FilterListings(matched, "cleaning")
	assert.Equal(t, matched, again)

	// A blank term keeps everything.
	assert.Equal(t, listings, FilterListings(listings, "  "))

	assert.Empty(t, FilterListings(listings, "plumbing"))
}

func TestSubscribeAllDeliversSortedSnapshots(t *testing.T) {
	uc, _, _ := newCatalogFixture(t)
	ctx := context.Background()

	feed, err := uc.SubscribeAll(ctx)
	require.NoError(t, err)
	defer feed.Stop()

	// Initial delivery is the current (empty) catalog.
	snap := <-feed.Updates
	require.NoError(t, snap.Err)
	assert.Empty(t, snap.Items)

	_, err = uc.Publish(ctx, "seller-1", PublishListingInput{
		Title:        "Cleaning",
		Description:  "Deep clean",
		Price:        "25/hr",
		Availability: "Weekdays",
	})
	require.NoError(t, err)

	snap = <-feed.Updates
	require.NoError(t, snap.Err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "Cleaning", snap.Items[0].Title)
}
