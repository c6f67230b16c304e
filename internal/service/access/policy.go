// Package access decides which cooperative data a caller may see or change.
package access

import (
	"github.com/mamadbah2/coopledger/internal/domain/apperr"
	"github.com/mamadbah2/coopledger/internal/domain/models"
)

// ScopeCooperative returns the cooperative filter to apply for caller. A
// manager with an affiliation is always pinned to it, whatever was requested.
// An empty result means no cooperative filter.
func ScopeCooperative(caller models.User, requested string) string {
	switch caller.Role {
	case models.RoleManager:
		if caller.CooperativeID != "" {
			return caller.CooperativeID
		}
		return requested
	case models.RoleOfficer:
		return requested
	default:
		return requested
	}
}

// RequireOfficer rejects any caller that does not hold the officer role.
func RequireOfficer(caller models.User) error {
	switch caller.Role {
	case models.RoleOfficer:
		return nil
	case models.RoleManager:
		return apperr.Forbidden("only officers can perform this operation")
	default:
		return apperr.Forbidden("only officers can perform this operation")
	}
}

// CheckOwnership rejects managers acting on another cooperative's records.
func CheckOwnership(caller models.User, cooperativeID string) error {
	switch caller.Role {
	case models.RoleOfficer:
		return nil
	case models.RoleManager:
		if caller.CooperativeID == "" || caller.CooperativeID != cooperativeID {
			return apperr.Forbidden("record belongs to another cooperative")
		}
		return nil
	default:
		return apperr.Forbidden("unknown role %q", caller.Role)
	}
}
