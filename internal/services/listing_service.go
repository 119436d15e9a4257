package services

import (
	"context"

	"github.com/google/uuid"

	"wanderlust/internal/domain"
	"wanderlust/internal/validate"
)

// ListingInput is the client-supplied shape of a listing.
type ListingInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Image       *string  `json:"image"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Location    string   `json:"location" validate:"required"`
	Country     string   `json:"country" validate:"required"`
}

func (in *ListingInput) apply(l *domain.Listing) {
	l.Title = in.Title
	l.Description = in.Description
	l.Image = ""
	if in.Image != nil {
		l.Image = *in.Image
	}
	l.Image = domain.NormalizeImage(l.Image)
	l.Price = *in.Price
	l.Location = in.Location
	l.Country = in.Country
}

type ListingService struct {
	Store Store
}

func NewListingService(st Store) *ListingService { return &ListingService{Store: st} }

// ListingView is a listing with its reviews resolved.
type ListingView struct {
	domain.Listing
	ReviewList []domain.Review
}

func (s *ListingService) List(ctx context.Context) ([]domain.Listing, error) {
	return s.Store.ListListings(ctx)
}

func (s *ListingService) Get(ctx context.Context, id string) (domain.Listing, error) {
	return s.Store.GetListing(ctx, id)
}

// Show loads a listing and the reviews it references.
func (s *ListingService) Show(ctx context.Context, id string) (ListingView, error) {
	l, err := s.Store.GetListing(ctx, id)
	if err != nil {
		return ListingView{}, err
	}
	revs, err := s.Store.ReviewsByIDs(ctx, l.Reviews)
	if err != nil {
		return ListingView{}, err
	}
	return ListingView{Listing: l, ReviewList: revs}, nil
}

func (s *ListingService) Create(ctx context.Context, in *ListingInput) (domain.Listing, error) {
	if err := validate.Struct("listing", in); err != nil {
		return domain.Listing{}, err
	}
	l := domain.Listing{ID: uuid.NewString(), Reviews: domain.IDList{}}
	in.apply(&l)
	if err := s.Store.InsertListing(ctx, &l); err != nil {
		return domain.Listing{}, err
	}
	return l, nil
}

// Update replaces the listing's fields; its review references are kept.
func (s *ListingService) Update(ctx context.Context, id string, in *ListingInput) (domain.Listing, error) {
	if err := validate.Struct("listing", in); err != nil {
		return domain.Listing{}, err
	}
	l := domain.Listing{ID: id}
	in.apply(&l)
	if err := s.Store.UpdateListing(ctx, &l); err != nil {
		return domain.Listing{}, err
	}
	return l, nil
}

// Delete removes the listing and every review it references. Deleting an
// unknown id is a no-op and returns (nil, nil).
func (s *ListingService) Delete(ctx context.Context, id string) (*domain.Listing, error) {
	var removed *domain.Listing
	err := s.Store.Atomic(ctx, func(ctx context.Context, st Store) error {
		l, err := st.DeleteListing(ctx, id)
		if err != nil || l == nil {
			return err
		}
		if _, err := st.DeleteReviews(ctx, l.Reviews); err != nil {
			return err
		}
		removed = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
