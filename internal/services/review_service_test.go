package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"wanderlust/internal/domain"
	"wanderlust/internal/repos"
	"wanderlust/internal/services"
	"wanderlust/internal/validate"
)

func TestReviewService_RatingOutOfRangeRejected(t *testing.T) {
	db := memdb(t)
	st := repos.NewStore(db)
	l, _ := services.NewListingService(st).Create(context.Background(), cabin())
	svc := services.NewReviewService(st)

	for _, rating := range []int{-1, 0, 6, 100} {
		_, err := svc.Create(context.Background(), l.ID, &services.ReviewInput{Rating: ptr(rating), Comment: "x"})
		var verr *validate.Error
		if !errors.As(err, &verr) {
			t.Fatalf("rating %d: want validation error, got %v", rating, err)
		}
	}
	_, err := svc.Create(context.Background(), l.ID, &services.ReviewInput{Comment: "x"})
	if err == nil || err.Error() != `"review.rating" is required` {
		t.Fatalf("missing rating: %v", err)
	}
	_, err = svc.Create(context.Background(), l.ID, &services.ReviewInput{Rating: ptr(3)})
	if err == nil || err.Error() != `"review.comment" is required` {
		t.Fatalf("missing comment: %v", err)
	}
	if n := countReviews(t, db); n != 0 {
		t.Fatalf("rejected reviews persisted: %d", n)
	}
}

func TestReviewService_CreateAppendsReference(t *testing.T) {
	st := repos.NewStore(memdb(t))
	ctx := context.Background()
	l, _ := services.NewListingService(st).Create(ctx, cabin())
	svc := services.NewReviewService(st)
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.Now = func() time.Time { return at }

	first, err := svc.Create(ctx, l.ID, &services.ReviewInput{Rating: ptr(5), Comment: "Great"})
	if err != nil {
		t.Fatal(err)
	}
	second, _ := svc.Create(ctx, l.ID, &services.ReviewInput{Rating: ptr(1), Comment: "Meh"})

	view, err := services.NewListingService(st).Show(ctx, l.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.ReviewList) != 2 || view.ReviewList[0].ID != first.ID || view.ReviewList[1].ID != second.ID {
		t.Fatalf("unexpected reviews %+v", view.ReviewList)
	}
	if !view.ReviewList[0].CreatedAt.Equal(at) {
		t.Fatalf("created at not defaulted: %v", view.ReviewList[0].CreatedAt)
	}
}

func TestReviewService_CreateOnMissingListing(t *testing.T) {
	db := memdb(t)
	svc := services.NewReviewService(repos.NewStore(db))
	_, err := svc.Create(context.Background(), "missing", &services.ReviewInput{Rating: ptr(5), Comment: "Great"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if n := countReviews(t, db); n != 0 {
		t.Fatalf("review stored for a missing listing")
	}
}

func TestReviewService_DeleteDetachesOnlyThatReview(t *testing.T) {
	st := repos.NewStore(memdb(t))
	ctx := context.Background()
	listings := services.NewListingService(st)
	svc := services.NewReviewService(st)
	l, _ := listings.Create(ctx, cabin())

	a, _ := svc.Create(ctx, l.ID, &services.ReviewInput{Rating: ptr(5), Comment: "a"})
	b, _ := svc.Create(ctx, l.ID, &services.ReviewInput{Rating: ptr(4), Comment: "b"})
	c, _ := svc.Create(ctx, l.ID, &services.ReviewInput{Rating: ptr(3), Comment: "c"})

	if err := svc.Delete(ctx, l.ID, b.ID); err != nil {
		t.Fatal(err)
	}
	got, _ := listings.Get(ctx, l.ID)
	if len(got.Reviews) != 2 || got.Reviews[0] != a.ID || got.Reviews[1] != c.ID {
		t.Fatalf("unexpected refs %v", got.Reviews)
	}
	if left, _ := st.ReviewsByIDs(ctx, []string{b.ID}); len(left) != 0 {
		t.Fatal("review record not deleted")
	}
	if left, _ := st.ReviewsByIDs(ctx, []string{a.ID, c.ID}); len(left) != 2 {
		t.Fatal("sibling reviews touched")
	}
}

func TestReviewService_DeleteUnassociatedStillDeletes(t *testing.T) {
	st := repos.NewStore(memdb(t))
	ctx := context.Background()
	listings := services.NewListingService(st)
	svc := services.NewReviewService(st)
	home, _ := listings.Create(ctx, cabin())
	stranger, _ := listings.Create(ctx, cabin())
	r, _ := svc.Create(ctx, home.ID, &services.ReviewInput{Rating: ptr(2), Comment: "x"})

	if err := svc.Delete(ctx, stranger.ID, r.ID); err != nil {
		t.Fatal(err)
	}
	if left, _ := st.ReviewsByIDs(ctx, []string{r.ID}); len(left) != 0 {
		t.Fatal("review survived")
	}
	got, _ := listings.Get(ctx, stranger.ID)
	if len(got.Reviews) != 0 {
		t.Fatalf("stranger refs changed: %v", got.Reviews)
	}
	// The owning listing keeps a dangling ref; Show skips it.
	view, err := listings.Show(ctx, home.ID)
	if err != nil || len(view.ReviewList) != 0 {
		t.Fatalf("show with dangling ref: %+v %v", view.ReviewList, err)
	}
}
