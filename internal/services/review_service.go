package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"wanderlust/internal/domain"
	"wanderlust/internal/validate"
)

// ReviewInput is the client-supplied shape of a review.
type ReviewInput struct {
	Rating  *int   `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

type ReviewService struct {
	Store Store
	Now   func() time.Time
}

func NewReviewService(st Store) *ReviewService {
	return &ReviewService{Store: st, Now: time.Now}
}

// Create stores a review and appends its id to the listing. The listing must
// exist.
func (s *ReviewService) Create(ctx context.Context, listingID string, in *ReviewInput) (domain.Review, error) {
	if err := validate.Struct("review", in); err != nil {
		return domain.Review{}, err
	}
	r := domain.Review{
		ID:        uuid.NewString(),
		Comment:   in.Comment,
		Rating:    *in.Rating,
		CreatedAt: s.Now().UTC(),
	}
	err := s.Store.Atomic(ctx, func(ctx context.Context, st Store) error {
		if _, err := st.GetListing(ctx, listingID); err != nil {
			return err
		}
		if err := st.InsertReview(ctx, &r); err != nil {
			return err
		}
		return st.PushReview(ctx, listingID, r.ID)
	})
	if err != nil {
		return domain.Review{}, err
	}
	return r, nil
}

// Delete detaches the review from the listing and removes it. An unrelated
// listing id only makes the detach a no-op.
func (s *ReviewService) Delete(ctx context.Context, listingID, reviewID string) error {
	return s.Store.Atomic(ctx, func(ctx context.Context, st Store) error {
		if err := st.PullReview(ctx, listingID, reviewID); err != nil {
			return err
		}
		return st.DeleteReview(ctx, reviewID)
	})
}
