// Package records implements create, read, update and delete flows for
// cooperative data, applying the access policy to every call.
package records

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/apperr"
	"github.com/mamadbah2/coopledger/internal/repository"
)

// Service owns the record lifecycle rules.
type Service struct {
	store  repository.Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires the record lifecycle handlers over store.
func NewService(store repository.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// lookupErr converts a store miss into a not-found error for kind.
func lookupErr(err error, kind, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("%s %s not found", kind, id)
	}
	return fmt.Errorf("load %s: %w", kind, err)
}
