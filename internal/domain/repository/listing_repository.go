package repository

import (
	"context"

	"servicehub/internal/domain/entity"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	ListAll(ctx context.Context) ([]*entity.Listing, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*entity.Listing, error)

	// Live variants deliver the full current set on every change.
	SubscribeAll(ctx context.Context) (*Feed[*entity.Listing], error)
	SubscribeBySeller(ctx context.Context, sellerID string) (*Feed[*entity.Listing], error)
}
