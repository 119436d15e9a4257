package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"wanderlust/internal/domain"
)

const listingCols = `id, title, description, image, price, location, country, reviews_json`

type ListingRepo struct{ db sqlx.ExtContext }

func NewListingRepo(db sqlx.ExtContext) *ListingRepo { return &ListingRepo{db: db} }

func (r *ListingRepo) ListListings(ctx context.Context) ([]domain.Listing, error) {
	out := []domain.Listing{}
	err := sqlx.SelectContext(ctx, r.db, &out, `
	  SELECT `+listingCols+`
	  FROM listings
	  ORDER BY created_at, rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("ListingRepo.ListListings: %w", err)
	}
	return out, nil
}

func (r *ListingRepo) GetListing(ctx context.Context, id string) (domain.Listing, error) {
	var l domain.Listing
	err := sqlx.GetContext(ctx, r.db, &l, `SELECT `+listingCols+` FROM listings WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Listing{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Listing{}, fmt.Errorf("ListingRepo.GetListing: %w", err)
	}
	return l, nil
}

func (r *ListingRepo) InsertListing(ctx context.Context, l *domain.Listing) error {
	if l.Reviews == nil {
		l.Reviews = domain.IDList{}
	}
	_, err := sqlx.NamedExecContext(ctx, r.db, `
	  INSERT INTO listings (`+listingCols+`)
	  VALUES (:id, :title, :description, :image, :price, :location, :country, :reviews_json)
	`, l)
	if err != nil {
		return fmt.Errorf("ListingRepo.InsertListing: %w", err)
	}
	return nil
}

// UpdateListing rewrites every field except the review references.
func (r *ListingRepo) UpdateListing(ctx context.Context, l *domain.Listing) error {
	res, err := r.db.ExecContext(ctx, `
	  UPDATE listings SET
	    title = ?, description = ?, image = ?, price = ?, location = ?, country = ?
	  WHERE id = ?
	`, l.Title, l.Description, l.Image, l.Price, l.Location, l.Country, l.ID)
	if err != nil {
		return fmt.Errorf("ListingRepo.UpdateListing: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ListingRepo) DeleteListing(ctx context.Context, id string) (*domain.Listing, error) {
	var l domain.Listing
	err := sqlx.GetContext(ctx, r.db, &l, `DELETE FROM listings WHERE id = ? RETURNING `+listingCols, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ListingRepo.DeleteListing: %w", err)
	}
	return &l, nil
}

func (r *ListingRepo) PushReview(ctx context.Context, listingID, reviewID string) error {
	res, err := r.db.ExecContext(ctx, `
	  UPDATE listings
	  SET reviews_json = json_insert(reviews_json, '$[#]', ?)
	  WHERE id = ?
	`, reviewID, listingID)
	if err != nil {
		return fmt.Errorf("ListingRepo.PushReview: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ListingRepo) PullReview(ctx context.Context, listingID, reviewID string) error {
	_, err := r.db.ExecContext(ctx, `
	  UPDATE listings
	  SET reviews_json = (
	    SELECT json_group_array(j.value)
	    FROM json_each(listings.reviews_json) AS j
	    WHERE j.value <> ?
	  )
	  WHERE id = ?
	`, reviewID, listingID)
	if err != nil {
		return fmt.Errorf("ListingRepo.PullReview: %w", err)
	}
	return nil
}
