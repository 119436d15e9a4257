// Package mongostore keeps listings and reviews in two MongoDB collections.
// Listings hold their review ids in a "reviews" array.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wanderlust/internal/domain"
	"wanderlust/internal/services"
)

type Store struct {
	client   *mongo.Client
	listings *mongo.Collection
	reviews  *mongo.Collection
	// UseTransactions wraps Atomic in a multi-document transaction. The
	// server must be a replica set or sharded cluster.
	UseTransactions bool
}

func New(client *mongo.Client, dbName string) *Store {
	db := client.Database(dbName)
	return &Store{
		client:   client,
		listings: db.Collection("listings"),
		reviews:  db.Collection("reviews"),
	}
}

func (s *Store) ListListings(ctx context.Context) ([]domain.Listing, error) {
	cur, err := s.listings.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongostore.ListListings: %w", err)
	}
	out := []domain.Listing{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("mongostore.ListListings: %w", err)
	}
	return out, nil
}

func (s *Store) GetListing(ctx context.Context, id string) (domain.Listing, error) {
	var l domain.Listing
	err := s.listings.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Listing{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Listing{}, fmt.Errorf("mongostore.GetListing: %w", err)
	}
	if l.Reviews == nil {
		l.Reviews = domain.IDList{}
	}
	return l, nil
}

func (s *Store) InsertListing(ctx context.Context, l *domain.Listing) error {
	if l.Reviews == nil {
		l.Reviews = domain.IDList{}
	}
	if _, err := s.listings.InsertOne(ctx, l); err != nil {
		return fmt.Errorf("mongostore.InsertListing: %w", err)
	}
	return nil
}

func (s *Store) UpdateListing(ctx context.Context, l *domain.Listing) error {
	res, err := s.listings.UpdateByID(ctx, l.ID, bson.M{"$set": bson.M{
		"title":       l.Title,
		"description": l.Description,
		"image":       l.Image,
		"price":       l.Price,
		"location":    l.Location,
		"country":     l.Country,
	}})
	if err != nil {
		return fmt.Errorf("mongostore.UpdateListing: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteListing(ctx context.Context, id string) (*domain.Listing, error) {
	var l domain.Listing
	err := s.listings.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongostore.DeleteListing: %w", err)
	}
	return &l, nil
}

func (s *Store) PushReview(ctx context.Context, listingID, reviewID string) error {
	res, err := s.listings.UpdateByID(ctx, listingID, bson.M{"$push": bson.M{"reviews": reviewID}})
	if err != nil {
		return fmt.Errorf("mongostore.PushReview: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) PullReview(ctx context.Context, listingID, reviewID string) error {
	if _, err := s.listings.UpdateByID(ctx, listingID, bson.M{"$pull": bson.M{"reviews": reviewID}}); err != nil {
		return fmt.Errorf("mongostore.PullReview: %w", err)
	}
	return nil
}

func (s *Store) InsertReview(ctx context.Context, r *domain.Review) error {
	if _, err := s.reviews.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("mongostore.InsertReview: %w", err)
	}
	return nil
}

func (s *Store) ReviewsByIDs(ctx context.Context, ids []string) ([]domain.Review, error) {
	if len(ids) == 0 {
		return []domain.Review{}, nil
	}
	cur, err := s.reviews.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("mongostore.ReviewsByIDs: %w", err)
	}
	var found []domain.Review
	if err := cur.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("mongostore.ReviewsByIDs: %w", err)
	}
	byID := make(map[string]domain.Review, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}
	out := make([]domain.Review, 0, len(found))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
			delete(byID, id)
		}
	}
	return out, nil
}

func (s *Store) DeleteReview(ctx context.Context, id string) error {
	if _, err := s.reviews.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("mongostore.DeleteReview: %w", err)
	}
	return nil
}

func (s *Store) DeleteReviews(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.reviews.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("mongostore.DeleteReviews: %w", err)
	}
	return res.DeletedCount, nil
}

// Atomic runs fn in a transaction when UseTransactions is set. Otherwise the
// writes in fn are applied one by one and a failure part way leaves the
// earlier ones in place.
func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context, st services.Store) error) error {
	if !s.UseTransactions {
		return fn(ctx, s)
	}
	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("mongostore.Atomic: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, s)
	}, options.Transaction())
	return err
}

var _ services.Store = (*Store)(nil)
