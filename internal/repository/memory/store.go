// Package memory provides map-backed repositories used by tests and by the
// in-process demo mode. Each record operation holds the collection lock, which
// gives the same single-document atomicity the MongoDB store offers.
package memory

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/repository"
)

// NewStore returns a Store whose repositories keep records in memory.
func NewStore() repository.Store {
	return repository.Store{
		Users:           NewUserRepository(),
		Cooperatives:    NewCooperativeRepository(),
		ProductionLogs:  NewProductionLogRepository(),
		Nonconformities: NewNonconformityRepository(),
		Farms:           NewFarmRepository(),
		ESG:             NewESGRepository(),
	}
}

// UserRepository keeps users keyed by id.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewUserRepository builds an empty user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]models.User)}
}

func (r *UserRepository) emailTaken(email, exceptID string) bool {
	for id, u := range r.users {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// Insert stores a new user. A taken id or email yields ErrDuplicate.
func (r *UserRepository) Insert(_ context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; ok {
		return repository.ErrDuplicate
	}
	if r.emailTaken(user.Email, "") {
		return repository.ErrDuplicate
	}
	r.users[user.ID] = user
	return nil
}

// FindByID returns the user with the given id or ErrNotFound.
func (r *UserRepository) FindByID(_ context.Context, id string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return u, nil
}

// FindByEmail looks a user up by exact email.
func (r *UserRepository) FindByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

// List returns users by creation time.
func (r *UserRepository) List(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Update applies the set fields and reports whether a record matched and changed.
func (r *UserRepository) Update(_ context.Context, id string, update models.UserUpdate) (models.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.users[id]
	if !ok {
		return models.UpdateResult{}, nil
	}
	if update.Email != nil && r.emailTaken(*update.Email, id) {
		return models.UpdateResult{}, repository.ErrDuplicate
	}
	next := current
	update.Apply(&next)
	r.users[id] = next
	return models.UpdateResult{Matched: true, Modified: !reflect.DeepEqual(current, next)}, nil
}

// Delete removes the user and reports whether it existed.
func (r *UserRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

// CooperativeRepository keeps cooperatives keyed by id.
type CooperativeRepository struct {
	mu    sync.RWMutex
	coops map[string]models.Cooperative
}

// NewCooperativeRepository builds an empty cooperative repository.
func NewCooperativeRepository() *CooperativeRepository {
	return &CooperativeRepository{coops: make(map[string]models.Cooperative)}
}

// Insert stores a new cooperative. A taken id yields ErrDuplicate.
func (r *CooperativeRepository) Insert(_ context.Context, coop models.Cooperative) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.coops[coop.ID]; ok {
		return repository.ErrDuplicate
	}
	r.coops[coop.ID] = coop
	return nil
}

// InsertMany stores the cooperatives in order and stops at the first failure.
func (r *CooperativeRepository) InsertMany(ctx context.Context, coops []models.Cooperative) error {
	for _, coop := range coops {
		if err := r.Insert(ctx, coop); err != nil {
			return err
		}
	}
	return nil
}

// FindByID returns the cooperative with the given id or ErrNotFound.
func (r *CooperativeRepository) FindByID(_ context.Context, id string) (models.Cooperative, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.coops[id]
	if !ok {
		return models.Cooperative{}, repository.ErrNotFound
	}
	return c, nil
}

// List returns cooperatives by creation time.
func (r *CooperativeRepository) List(_ context.Context) ([]models.Cooperative, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Cooperative, 0, len(r.coops))
	for _, c := range r.coops {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Count returns the number of stored cooperatives.
func (r *CooperativeRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.coops)), nil
}

// DeleteAll removes every cooperative and returns how many were deleted.
func (r *CooperativeRepository) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.coops))
	r.coops = make(map[string]models.Cooperative)
	return n, nil
}
