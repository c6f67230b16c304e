package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/coopledger/internal/domain/models"
)

// CooperativeRepository persists cooperatives.
type CooperativeRepository struct {
	coll *mongo.Collection
}

// Insert stores a new cooperative. A taken id yields ErrDuplicate.
func (r *CooperativeRepository) Insert(ctx context.Context, coop models.Cooperative) error {
	return insertOne(ctx, r.coll, coop, "cooperative")
}

// InsertMany writes the cooperatives in one unordered batch.
func (r *CooperativeRepository) InsertMany(ctx context.Context, coops []models.Cooperative) error {
	if len(coops) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(coops))
	for _, c := range coops {
		docs = append(docs, c)
	}
	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
		return fmt.Errorf("insert cooperatives: %w", err)
	}
	return nil
}

// FindByID returns the cooperative with the given id or ErrNotFound.
func (r *CooperativeRepository) FindByID(ctx context.Context, id string) (models.Cooperative, error) {
	return findOne[models.Cooperative](ctx, r.coll, byID(id), "cooperative")
}

// List returns cooperatives by creation time.
func (r *CooperativeRepository) List(ctx context.Context) ([]models.Cooperative, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	return findMany[models.Cooperative](ctx, r.coll, bson.M{}, opts, "cooperatives")
}

// Count returns the number of stored cooperatives.
func (r *CooperativeRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.coll, bson.M{}, "cooperatives")
}

// DeleteAll removes every cooperative and returns how many were deleted.
func (r *CooperativeRepository) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll(ctx, r.coll, "cooperatives")
}
