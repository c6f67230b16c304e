package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/repository"
)

var newestFirst = bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}}

// ProductionLogRepository persists production logs.
type ProductionLogRepository struct {
	coll *mongo.Collection
}

func productionLogFilter(f models.ProductionLogFilter) bson.M {
	filter := bson.M{}
	if f.CooperativeID != "" {
		filter["cooperative_id"] = f.CooperativeID
	}
	return filter
}

// Insert stores a new production log. A taken id yields ErrDuplicate.
func (r *ProductionLogRepository) Insert(ctx context.Context, log models.ProductionLog) error {
	return insertOne(ctx, r.coll, log, "production log")
}

// FindByID returns the production log with the given id or ErrNotFound.
func (r *ProductionLogRepository) FindByID(ctx context.Context, id string) (models.ProductionLog, error) {
	return findOne[models.ProductionLog](ctx, r.coll, byID(id), "production log")
}

// List returns production logs newest first, capped unless the filter is unbounded.
func (r *ProductionLogRepository) List(ctx context.Context, filter models.ProductionLogFilter) ([]models.ProductionLog, error) {
	opts := options.Find().SetSort(newestFirst)
	if !filter.Unbounded {
		opts.SetLimit(repository.EffectiveLimit(filter.Limit))
	}
	return findMany[models.ProductionLog](ctx, r.coll, productionLogFilter(filter), opts, "production logs")
}

// Summarize aggregates every log of cooperativeID server side, or of all cooperatives when empty.
func (r *ProductionLogRepository) Summarize(ctx context.Context, cooperativeID string) (models.ProductionSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: productionLogFilter(models.ProductionLogFilter{CooperativeID: cooperativeID})}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total_production", Value: bson.D{{Key: "$sum", Value: "$total_production"}}},
			{Key: "avg_loss_percent", Value: bson.D{{Key: "$avg", Value: "$post_harvest_loss_percent"}}},
			{Key: "avg_grade_a_percent", Value: bson.D{{Key: "$avg", Value: "$grade_a_percent"}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.ProductionSummary{}, fmt.Errorf("summarize production logs: %w", err)
	}
	var out []models.ProductionSummary
	if err := cursor.All(ctx, &out); err != nil {
		return models.ProductionSummary{}, fmt.Errorf("decode production log summary: %w", err)
	}
	if len(out) == 0 {
		return models.ProductionSummary{}, nil
	}
	return out[0], nil
}

// Update applies the set fields and reports whether a record matched and changed.
func (r *ProductionLogRepository) Update(ctx context.Context, id string, update models.ProductionLogUpdate) (models.UpdateResult, error) {
	res, err := updateByID(ctx, r.coll, id, productionLogUpdateDoc(update), "production log")
	return models.UpdateResult{Matched: res.matched, Modified: res.modified}, err
}

// Delete removes the production log and reports whether it existed.
func (r *ProductionLogRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.coll, id, "production log")
}

// DeleteAll removes every production log and returns how many were deleted.
func (r *ProductionLogRepository) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll(ctx, r.coll, "production logs")
}

// NonconformityRepository persists nonconformities.
type NonconformityRepository struct {
	coll *mongo.Collection
}

func nonconformityFilter(f models.NonconformityFilter) bson.M {
	filter := bson.M{}
	if f.CooperativeID != "" {
		filter["cooperative_id"] = f.CooperativeID
	}
	switch len(f.Statuses) {
	case 0:
	case 1:
		filter["status"] = f.Statuses[0]
	default:
		filter["status"] = bson.M{"$in": f.Statuses}
	}
	return filter
}

// Insert stores a new nonconformity. A taken id yields ErrDuplicate.
func (r *NonconformityRepository) Insert(ctx context.Context, nc models.Nonconformity) error {
	return insertOne(ctx, r.coll, nc, "nonconformity")
}

// FindByID returns the nonconformity with the given id or ErrNotFound.
func (r *NonconformityRepository) FindByID(ctx context.Context, id string) (models.Nonconformity, error) {
	return findOne[models.Nonconformity](ctx, r.coll, byID(id), "nonconformity")
}

// List returns nonconformities newest first.
func (r *NonconformityRepository) List(ctx context.Context, filter models.NonconformityFilter) ([]models.Nonconformity, error) {
	opts := options.Find().SetSort(newestFirst).SetLimit(repository.EffectiveLimit(filter.Limit))
	return findMany[models.Nonconformity](ctx, r.coll, nonconformityFilter(filter), opts, "nonconformities")
}

// Count returns the number of nonconformities matching filter.
func (r *NonconformityRepository) Count(ctx context.Context, filter models.NonconformityFilter) (int64, error) {
	return count(ctx, r.coll, nonconformityFilter(filter), "nonconformities")
}

// Update applies the set fields and reports whether a record matched and changed.
func (r *NonconformityRepository) Update(ctx context.Context, id string, update models.NonconformityUpdate) (models.UpdateResult, error) {
	res, err := updateByID(ctx, r.coll, id, nonconformityUpdateDoc(update), "nonconformity")
	return models.UpdateResult{Matched: res.matched, Modified: res.modified}, err
}

// DeleteAll removes every nonconformity and returns how many were deleted.
func (r *NonconformityRepository) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll(ctx, r.coll, "nonconformities")
}
