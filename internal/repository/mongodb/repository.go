package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/repository"
)

const (
	usersCollection           = "users"
	cooperativesCollection    = "cooperatives"
	productionLogsCollection  = "production_logs"
	nonconformitiesCollection = "nonconformities"
	farmsCollection           = "farms"
	esgCollection             = "esg_metrics"
)

// MongoDBRepository owns the client connection and hands out per-collection repositories.
type MongoDBRepository struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// NewMongoDBRepository connects to MongoDB, verifies the connection and ensures indexes.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string, logger *zap.Logger) (*MongoDBRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	r := &MongoDBRepository{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}

	if err := r.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	logger.Info("mongodb connected", zap.String("database", dbName))
	return r, nil
}

func (r *MongoDBRepository) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		productionLogsCollection: {
			{Keys: bson.D{{Key: "cooperative_id", Value: 1}, {Key: "date", Value: -1}}},
		},
		nonconformitiesCollection: {
			{Keys: bson.D{{Key: "cooperative_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "date", Value: -1}}},
		},
	}

	for name, specs := range indexes {
		if _, err := r.db.Collection(name).Indexes().CreateMany(ctx, specs); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// Store returns the repository set backed by this connection.
func (r *MongoDBRepository) Store() repository.Store {
	return repository.Store{
		Users:           &UserRepository{coll: r.db.Collection(usersCollection)},
		Cooperatives:    &CooperativeRepository{coll: r.db.Collection(cooperativesCollection)},
		ProductionLogs:  &ProductionLogRepository{coll: r.db.Collection(productionLogsCollection)},
		Nonconformities: &NonconformityRepository{coll: r.db.Collection(nonconformitiesCollection)},
		Farms:           &FarmRepository{coll: r.db.Collection(farmsCollection)},
		ESG:             &ESGRepository{coll: r.db.Collection(esgCollection)},
	}
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func byID(id string) bson.M {
	return bson.M{"_id": id}
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, what string) (T, error) {
	var out T
	err := coll.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return out, repository.ErrNotFound
	}
	if err != nil {
		return out, fmt.Errorf("find %s: %w", what, err)
	}
	return out, nil
}

func findMany[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions, what string) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", what, err)
	}
	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", what, err)
	}
	return out, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc any, what string) error {
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", what, err)
	}
	return nil
}

func updateByID(ctx context.Context, coll *mongo.Collection, id string, update bson.M, what string) (updateResult, error) {
	res, err := coll.UpdateOne(ctx, byID(id), update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return updateResult{}, repository.ErrDuplicate
		}
		return updateResult{}, fmt.Errorf("update %s: %w", what, err)
	}
	return updateResult{matched: res.MatchedCount > 0, modified: res.ModifiedCount > 0}, nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string, what string) (bool, error) {
	res, err := coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", what, err)
	}
	return res.DeletedCount > 0, nil
}

func deleteAll(ctx context.Context, coll *mongo.Collection, what string) (int64, error) {
	res, err := coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete all %s: %w", what, err)
	}
	return res.DeletedCount, nil
}

func count(ctx context.Context, coll *mongo.Collection, filter bson.M, what string) (int64, error) {
	n, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", what, err)
	}
	return n, nil
}

type updateResult struct {
	matched  bool
	modified bool
}
