package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/coopledger/internal/domain/apperr"
	"github.com/mamadbah2/coopledger/internal/domain/models"
)

func TestScopeCooperative(t *testing.T) {
	manager := models.User{Role: models.RoleManager, CooperativeID: "coop-a"}
	orphanManager := models.User{Role: models.RoleManager}
	officer := models.User{Role: models.RoleOfficer}

	tests := []struct {
		name      string
		caller    models.User
		requested string
		want      string
	}{
		{name: "manager without filter", caller: manager, requested: "", want: "coop-a"},
		{name: "manager asking for another cooperative", caller: manager, requested: "coop-b", want: "coop-a"},
		{name: "manager without affiliation keeps request", caller: orphanManager, requested: "coop-b", want: "coop-b"},
		{name: "manager without affiliation or request", caller: orphanManager, requested: "", want: ""},
		{name: "officer with filter", caller: officer, requested: "coop-b", want: "coop-b"},
		{name: "officer unfiltered", caller: officer, requested: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScopeCooperative(tt.caller, tt.requested))
		})
	}
}

func TestRequireOfficer(t *testing.T) {
	assert.NoError(t, RequireOfficer(models.User{Role: models.RoleOfficer}))
	assert.ErrorIs(t, RequireOfficer(models.User{Role: models.RoleManager, CooperativeID: "coop-a"}), apperr.ErrForbidden)
	assert.ErrorIs(t, RequireOfficer(models.User{Role: "farmer"}), apperr.ErrForbidden)
}

func TestCheckOwnership(t *testing.T) {
	tests := []struct {
		name    string
		caller  models.User
		coopID  string
		allowed bool
	}{
		{name: "officer any cooperative", caller: models.User{Role: models.RoleOfficer}, coopID: "coop-b", allowed: true},
		{name: "manager own cooperative", caller: models.User{Role: models.RoleManager, CooperativeID: "coop-a"}, coopID: "coop-a", allowed: true},
		{name: "manager other cooperative", caller: models.User{Role: models.RoleManager, CooperativeID: "coop-a"}, coopID: "coop-b", allowed: false},
		{name: "manager without affiliation", caller: models.User{Role: models.RoleManager}, coopID: "", allowed: false},
		{name: "unknown role", caller: models.User{Role: "guest"}, coopID: "coop-a", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckOwnership(tt.caller, tt.coopID)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperr.ErrForbidden)
		})
	}
}
