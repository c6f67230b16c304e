package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/repository"
)

// FarmRepository keeps farm metrics keyed by id.
type FarmRepository struct {
	mu    sync.RWMutex
	farms map[string]models.Farm
}

// NewFarmRepository builds an empty farm repository.
func NewFarmRepository() *FarmRepository {
	return &FarmRepository{farms: make(map[string]models.Farm)}
}

// Insert stores a new farm. A taken id yields ErrDuplicate.
func (r *FarmRepository) Insert(_ context.Context, farm models.Farm) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.farms[farm.ID]; ok {
		return repository.ErrDuplicate
	}
	r.farms[farm.ID] = farm
	return nil
}

// FindByID returns the farm with the given id or ErrNotFound.
func (r *FarmRepository) FindByID(_ context.Context, id string) (models.Farm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.farms[id]
	if !ok {
		return models.Farm{}, repository.ErrNotFound
	}
	return f, nil
}

// List returns farms by timestamp.
func (r *FarmRepository) List(_ context.Context) ([]models.Farm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Farm, 0, len(r.farms))
	for _, f := range r.farms {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

// Count returns the number of stored farms.
func (r *FarmRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.farms)), nil
}

// ESGRepository keeps ESG periods keyed by id.
type ESGRepository struct {
	mu      sync.RWMutex
	metrics map[string]models.ESGMetrics
}

// NewESGRepository builds an empty ESG repository.
func NewESGRepository() *ESGRepository {
	return &ESGRepository{metrics: make(map[string]models.ESGMetrics)}
}

// Insert stores a new ESG period. A taken id yields ErrDuplicate.
func (r *ESGRepository) Insert(_ context.Context, m models.ESGMetrics) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.metrics[m.ID]; ok {
		return repository.ErrDuplicate
	}
	r.metrics[m.ID] = m
	return nil
}

// List returns ESG periods by timestamp.
func (r *ESGRepository) List(_ context.Context) ([]models.ESGMetrics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.ESGMetrics, 0, len(r.metrics))
	for _, m := range r.metrics {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Period < out[j].Period
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

// Count returns the number of stored ESG periods.
func (r *ESGRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.metrics)), nil
}
