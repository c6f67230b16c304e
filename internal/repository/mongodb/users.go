package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/coopledger/internal/domain/models"
)

// UserRepository persists users in the users collection.
type UserRepository struct {
	coll *mongo.Collection
}

// Insert stores a new user. A taken id or email yields ErrDuplicate.
func (r *UserRepository) Insert(ctx context.Context, user models.User) error {
	return insertOne(ctx, r.coll, user, "user")
}

// FindByID returns the user with the given id or ErrNotFound.
func (r *UserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	return findOne[models.User](ctx, r.coll, byID(id), "user")
}

// FindByEmail looks a user up by exact email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return findOne[models.User](ctx, r.coll, bson.M{"email": email}, "user")
}

// List returns users by creation time.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return findMany[models.User](ctx, r.coll, bson.M{}, opts, "users")
}

// Update applies the set fields and reports whether a record matched and changed.
func (r *UserRepository) Update(ctx context.Context, id string, update models.UserUpdate) (models.UpdateResult, error) {
	res, err := updateByID(ctx, r.coll, id, userUpdateDoc(update), "user")
	return models.UpdateResult{Matched: res.matched, Modified: res.modified}, err
}

// Delete removes the user and reports whether it existed.
func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.coll, id, "user")
}
