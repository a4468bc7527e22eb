package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"servicehub/internal/domain/entity"
	"servicehub/internal/domain/repository"
	"servicehub/pkg/errors"
)

type firestoreListingRepository struct {
	client *firestore.Client
	appID  string
}

func NewFirestoreListingRepository(client *firestore.Client, appID string) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
		appID:  appID,
	}
}

func (r *firestoreListingRepository) services() *firestore.CollectionRef {
	return publicData(r.client, r.appID).Collection("services")
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.ID == "" {
		listing.ID = r.services().NewDoc().ID
	}

	// PostedAt stays zero here; the serverTimestamp tag makes the store
	// assign it on write.
	_, err := r.services().Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to create listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	doc, err := r.services().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}

	return decodeListing(doc)
}

func (r *firestoreListingRepository) ListAll(ctx context.Context) ([]*entity.Listing, error) {
	return r.list(ctx, r.services().Query)
}

func (r *firestoreListingRepository) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Listing, error) {
	return r.list(ctx, r.services().Where("sellerId", "==", sellerID))
}

func (r *firestoreListingRepository) list(ctx context.Context, query firestore.Query) ([]*entity.Listing, error) {
	iter := query.Documents(ctx)
	var listings []*entity.Listing

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate listings", err)
		}

		listing, err := decodeListing(doc)
		if err != nil {
			continue // skip malformed documents
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

func (r *firestoreListingRepository) SubscribeAll(ctx context.Context) (*repository.Feed[*entity.Listing], error) {
	return subscribeQuery(ctx, r.services().Query, "listings", decodeListingSnapshot), nil
}

func (r *firestoreListingRepository) SubscribeBySeller(ctx context.Context, sellerID string) (*repository.Feed[*entity.Listing], error) {
	query := r.services().Where("sellerId", "==", sellerID)
	return subscribeQuery(ctx, query, "seller listings", decodeListingSnapshot), nil
}

func decodeListing(doc *firestore.DocumentSnapshot) (*entity.Listing, error) {
	var listing entity.Listing
	if err := doc.DataTo(&listing); err != nil {
		return nil, errors.Internal("Failed to parse listing data", err)
	}
	if listing.ID == "" {
		listing.ID = doc.Ref.ID
	}
	return &listing, nil
}

func decodeListingSnapshot(doc *firestore.DocumentSnapshot) (*entity.Listing, bool) {
	listing, err := decodeListing(doc)
	return listing, err == nil
}
