package services

import (
	"context"

	"wanderlust/internal/domain"
)

// ListingStore persists listings. GetListing, UpdateListing and PushReview
// return domain.ErrNotFound for an unknown id.
type ListingStore interface {
	ListListings(ctx context.Context) ([]domain.Listing, error)
	GetListing(ctx context.Context, id string) (domain.Listing, error)
	InsertListing(ctx context.Context, l *domain.Listing) error
	UpdateListing(ctx context.Context, l *domain.Listing) error
	// DeleteListing removes the listing and returns it as it was stored, or
	// nil when nothing matched.
	DeleteListing(ctx context.Context, id string) (*domain.Listing, error)
	PushReview(ctx context.Context, listingID, reviewID string) error
	PullReview(ctx context.Context, listingID, reviewID string) error
}

// ReviewStore persists reviews.
type ReviewStore interface {
	InsertReview(ctx context.Context, r *domain.Review) error
	// ReviewsByIDs returns the reviews that exist, in the order of ids.
	ReviewsByIDs(ctx context.Context, ids []string) ([]domain.Review, error)
	DeleteReview(ctx context.Context, id string) error
	DeleteReviews(ctx context.Context, ids []string) (int64, error)
}

// Store is the storage collaborator. Atomic runs fn against a store whose
// writes commit together where the backend supports it.
type Store interface {
	ListingStore
	ReviewStore
	Atomic(ctx context.Context, fn func(ctx context.Context, st Store) error) error
}
