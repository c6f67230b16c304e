// Package repository declares the persistence contracts shared by the MongoDB
// and in-memory stores. Every operation is atomic on a single record only.
package repository

import (
	"context"
	"errors"

	"github.com/mamadbah2/coopledger/internal/domain/models"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert or update violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// DefaultListLimit caps listings that do not specify a limit.
const DefaultListLimit = 1000

// UserRepository is the identity store.
type UserRepository interface {
	Insert(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, update models.UserUpdate) (models.UpdateResult, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CooperativeRepository stores cooperatives. List is ordered by creation time ascending.
type CooperativeRepository interface {
	Insert(ctx context.Context, coop models.Cooperative) error
	InsertMany(ctx context.Context, coops []models.Cooperative) error
	FindByID(ctx context.Context, id string) (models.Cooperative, error)
	List(ctx context.Context) ([]models.Cooperative, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// ProductionLogRepository stores production logs. List is ordered by date descending.
type ProductionLogRepository interface {
	Insert(ctx context.Context, log models.ProductionLog) error
	FindByID(ctx context.Context, id string) (models.ProductionLog, error)
	List(ctx context.Context, filter models.ProductionLogFilter) ([]models.ProductionLog, error)
	Summarize(ctx context.Context, cooperativeID string) (models.ProductionSummary, error)
	Update(ctx context.Context, id string, update models.ProductionLogUpdate) (models.UpdateResult, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// NonconformityRepository stores nonconformities. List is ordered by date descending.
type NonconformityRepository interface {
	Insert(ctx context.Context, nc models.Nonconformity) error
	FindByID(ctx context.Context, id string) (models.Nonconformity, error)
	List(ctx context.Context, filter models.NonconformityFilter) ([]models.Nonconformity, error)
	Count(ctx context.Context, filter models.NonconformityFilter) (int64, error)
	Update(ctx context.Context, id string, update models.NonconformityUpdate) (models.UpdateResult, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// FarmRepository stores farm metrics. List is ordered by timestamp ascending.
type FarmRepository interface {
	Insert(ctx context.Context, farm models.Farm) error
	FindByID(ctx context.Context, id string) (models.Farm, error)
	List(ctx context.Context) ([]models.Farm, error)
	Count(ctx context.Context) (int64, error)
}

// ESGRepository stores ESG periods. List is ordered by timestamp ascending.
type ESGRepository interface {
	Insert(ctx context.Context, metrics models.ESGMetrics) error
	List(ctx context.Context) ([]models.ESGMetrics, error)
	Count(ctx context.Context) (int64, error)
}

// Store groups every repository the services depend on.
type Store struct {
	Users           UserRepository
	Cooperatives    CooperativeRepository
	ProductionLogs  ProductionLogRepository
	Nonconformities NonconformityRepository
	Farms           FarmRepository
	ESG             ESGRepository
}

// EffectiveLimit resolves a requested limit to the value applied by stores.
func EffectiveLimit(limit int64) int64 {
	if limit <= 0 || limit > DefaultListLimit {
		return DefaultListLimit
	}
	return limit
}
