package memory

import (
	"context"
	"reflect"
	"slices"
	"sort"
	"sync"

	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/repository"
	"github.com/mamadbah2/coopledger/pkg/numeric"
)

// ProductionLogRepository keeps production logs keyed by id.
type ProductionLogRepository struct {
	mu   sync.RWMutex
	logs map[string]models.ProductionLog
}

// NewProductionLogRepository builds an empty production log repository.
func NewProductionLogRepository() *ProductionLogRepository {
	return &ProductionLogRepository{logs: make(map[string]models.ProductionLog)}
}

// Insert stores a new production log. A taken id yields ErrDuplicate.
func (r *ProductionLogRepository) Insert(_ context.Context, log models.ProductionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.logs[log.ID]; ok {
		return repository.ErrDuplicate
	}
	r.logs[log.ID] = log
	return nil
}

// FindByID returns the production log with the given id or ErrNotFound.
func (r *ProductionLogRepository) FindByID(_ context.Context, id string) (models.ProductionLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.logs[id]
	if !ok {
		return models.ProductionLog{}, repository.ErrNotFound
	}
	return l, nil
}

// List returns production logs newest first, capped unless the filter is unbounded.
func (r *ProductionLogRepository) List(_ context.Context, filter models.ProductionLogFilter) ([]models.ProductionLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.ProductionLog, 0)
	for _, l := range r.logs {
		if filter.CooperativeID != "" && l.CooperativeID != filter.CooperativeID {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	if limit := repository.EffectiveLimit(filter.Limit); !filter.Unbounded && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Summarize aggregates every log of cooperativeID, or of all cooperatives when empty.
func (r *ProductionLogRepository) Summarize(_ context.Context, cooperativeID string) (models.ProductionSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	losses := make([]float64, 0)
	gradeA := make([]float64, 0)
	var summary models.ProductionSummary
	for _, l := range r.logs {
		if cooperativeID != "" && l.CooperativeID != cooperativeID {
			continue
		}
		summary.Count++
		summary.TotalProduction += l.TotalProduction
		losses = append(losses, l.LossPercent)
		gradeA = append(gradeA, l.GradeAPercent)
	}
	summary.AvgLossPercent = numeric.Mean(losses)
	summary.AvgGradeAPercent = numeric.Mean(gradeA)
	return summary, nil
}

// Update applies the set fields and reports whether a record matched and changed.
func (r *ProductionLogRepository) Update(_ context.Context, id string, update models.ProductionLogUpdate) (models.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.logs[id]
	if !ok {
		return models.UpdateResult{}, nil
	}
	next := current
	update.Apply(&next)
	r.logs[id] = next
	return models.UpdateResult{Matched: true, Modified: !reflect.DeepEqual(current, next)}, nil
}

// Delete removes the production log and reports whether it existed.
func (r *ProductionLogRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.logs[id]; !ok {
		return false, nil
	}
	delete(r.logs, id)
	return true, nil
}

// DeleteAll removes every production log and returns how many were deleted.
func (r *ProductionLogRepository) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.logs))
	r.logs = make(map[string]models.ProductionLog)
	return n, nil
}

// NonconformityRepository keeps nonconformities keyed by id.
type NonconformityRepository struct {
	mu  sync.RWMutex
	ncs map[string]models.Nonconformity
}

// NewNonconformityRepository builds an empty nonconformity repository.
func NewNonconformityRepository() *NonconformityRepository {
	return &NonconformityRepository{ncs: make(map[string]models.Nonconformity)}
}

// Insert stores a new nonconformity. A taken id yields ErrDuplicate.
func (r *NonconformityRepository) Insert(_ context.Context, nc models.Nonconformity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ncs[nc.ID]; ok {
		return repository.ErrDuplicate
	}
	r.ncs[nc.ID] = nc
	return nil
}

// FindByID returns the nonconformity with the given id or ErrNotFound.
func (r *NonconformityRepository) FindByID(_ context.Context, id string) (models.Nonconformity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	nc, ok := r.ncs[id]
	if !ok {
		return models.Nonconformity{}, repository.ErrNotFound
	}
	return nc, nil
}

func matchesNonconformity(nc models.Nonconformity, filter models.NonconformityFilter) bool {
	if filter.CooperativeID != "" && nc.CooperativeID != filter.CooperativeID {
		return false
	}
	if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, nc.Status) {
		return false
	}
	return true
}

// List returns nonconformities newest first.
func (r *NonconformityRepository) List(_ context.Context, filter models.NonconformityFilter) ([]models.Nonconformity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Nonconformity, 0)
	for _, nc := range r.ncs {
		if matchesNonconformity(nc, filter) {
			out = append(out, nc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	if limit := repository.EffectiveLimit(filter.Limit); int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Count returns the number of nonconformities matching filter.
func (r *NonconformityRepository) Count(_ context.Context, filter models.NonconformityFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, nc := range r.ncs {
		if matchesNonconformity(nc, filter) {
			n++
		}
	}
	return n, nil
}

// Update applies the set fields and reports whether a record matched and changed.
func (r *NonconformityRepository) Update(_ context.Context, id string, update models.NonconformityUpdate) (models.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.ncs[id]
	if !ok {
		return models.UpdateResult{}, nil
	}
	next := current
	update.Apply(&next)
	r.ncs[id] = next
	return models.UpdateResult{Matched: true, Modified: !reflect.DeepEqual(current, next)}, nil
}

// DeleteAll removes every nonconformity and returns how many were deleted.
func (r *NonconformityRepository) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.ncs))
	r.ncs = make(map[string]models.Nonconformity)
	return n, nil
}
