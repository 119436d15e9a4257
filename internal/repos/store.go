package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"wanderlust/internal/services"
)

// Store is the SQL implementation of services.Store.
type Store struct {
	*ListingRepo
	*ReviewRepo
	db *sqlx.DB // nil inside a transaction
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{ListingRepo: NewListingRepo(db), ReviewRepo: NewReviewRepo(db), db: db}
}

// Atomic runs fn inside one transaction. Nested calls join the outer one.
func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context, st services.Store) error) error {
	if s.db == nil {
		return fn(ctx, s)
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(ctx, &Store{ListingRepo: NewListingRepo(tx), ReviewRepo: NewReviewRepo(tx)}); err != nil {
		return err
	}
	return tx.Commit()
}

var _ services.Store = (*Store)(nil)
