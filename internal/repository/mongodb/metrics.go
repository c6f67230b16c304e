package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/repository"
)

var oldestFirst = bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}}

// FarmRepository persists farm metrics.
type FarmRepository struct {
	coll *mongo.Collection
}

// Insert stores a new farm. A taken id yields ErrDuplicate.
func (r *FarmRepository) Insert(ctx context.Context, farm models.Farm) error {
	return insertOne(ctx, r.coll, farm, "farm")
}

// FindByID returns the farm with the given id or ErrNotFound.
func (r *FarmRepository) FindByID(ctx context.Context, id string) (models.Farm, error) {
	return findOne[models.Farm](ctx, r.coll, byID(id), "farm")
}

// List returns farms by timestamp.
func (r *FarmRepository) List(ctx context.Context) ([]models.Farm, error) {
	opts := options.Find().SetSort(oldestFirst).SetLimit(repository.DefaultListLimit)
	return findMany[models.Farm](ctx, r.coll, bson.M{}, opts, "farms")
}

// Count returns the number of stored farms.
func (r *FarmRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.coll, bson.M{}, "farms")
}

// ESGRepository persists ESG periods.
type ESGRepository struct {
	coll *mongo.Collection
}

// Insert stores a new ESG period. A taken id yields ErrDuplicate.
func (r *ESGRepository) Insert(ctx context.Context, m models.ESGMetrics) error {
	return insertOne(ctx, r.coll, m, "esg metrics")
}

// List returns ESG periods by timestamp.
func (r *ESGRepository) List(ctx context.Context) ([]models.ESGMetrics, error) {
	opts := options.Find().SetSort(oldestFirst).SetLimit(repository.DefaultListLimit)
	return findMany[models.ESGMetrics](ctx, r.coll, bson.M{}, opts, "esg metrics")
}

// Count returns the number of stored ESG periods.
func (r *ESGRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.coll, bson.M{}, "esg metrics")
}
