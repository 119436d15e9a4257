package repos

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"wanderlust/internal/domain"
)

type ReviewRepo struct{ db sqlx.ExtContext }

func NewReviewRepo(db sqlx.ExtContext) *ReviewRepo { return &ReviewRepo{db: db} }

// reviewRow keeps created_at as RFC 3339 text.
type reviewRow struct {
	ID        string `db:"id"`
	Comment   string `db:"comment"`
	Rating    int    `db:"rating"`
	CreatedAt string `db:"created_at"`
}

func (row reviewRow) review() domain.Review {
	ts, _ := time.Parse(time.RFC3339Nano, row.CreatedAt)
	return domain.Review{ID: row.ID, Comment: row.Comment, Rating: row.Rating, CreatedAt: ts}
}

func (r *ReviewRepo) InsertReview(ctx context.Context, rev *domain.Review) error {
	if rev.CreatedAt.IsZero() {
		rev.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO reviews (id, comment, rating, created_at)
	  VALUES (?, ?, ?, ?)
	`, rev.ID, rev.Comment, rev.Rating, rev.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("ReviewRepo.InsertReview: %w", err)
	}
	return nil
}

func (r *ReviewRepo) ReviewsByIDs(ctx context.Context, ids []string) ([]domain.Review, error) {
	if len(ids) == 0 {
		return []domain.Review{}, nil
	}
	query, args, err := sqlx.In(`SELECT id, comment, rating, created_at FROM reviews WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var rows []reviewRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("ReviewRepo.ReviewsByIDs: %w", err)
	}
	byID := make(map[string]reviewRow, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	out := make([]domain.Review, 0, len(rows))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			out = append(out, row.review())
			delete(byID, id)
		}
	}
	return out, nil
}

func (r *ReviewRepo) DeleteReview(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id); err != nil {
		return fmt.Errorf("ReviewRepo.DeleteReview: %w", err)
	}
	return nil
}

func (r *ReviewRepo) DeleteReviews(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(`DELETE FROM reviews WHERE id IN (?)`, ids)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("ReviewRepo.DeleteReviews: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
