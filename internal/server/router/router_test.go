package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/observability"
	"github.com/mamadbah2/coopledger/internal/repository/memory"
	"github.com/mamadbah2/coopledger/internal/server/handlers"
	"github.com/mamadbah2/coopledger/internal/service/auth"
	"github.com/mamadbah2/coopledger/internal/service/export"
	"github.com/mamadbah2/coopledger/internal/service/kpi"
	"github.com/mamadbah2/coopledger/internal/service/maintenance"
	"github.com/mamadbah2/coopledger/internal/service/records"
	"github.com/mamadbah2/coopledger/internal/service/users"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	store := memory.NewStore()

	authSvc := auth.NewService(store.Users, auth.NewTokenManager("router-test-secret", 0), nil)
	recordsSvc := records.NewService(store, nil)
	kpiSvc := kpi.NewService(store, nil)

	h := Handlers{
		Auth:           handlers.NewAuthHandler(authSvc, nil),
		Cooperatives:   handlers.NewCooperativeHandler(recordsSvc, kpiSvc, nil),
		ProductionLogs: handlers.NewProductionLogHandler(recordsSvc, nil),
		Nonconformity:  handlers.NewNonconformityHandler(recordsSvc, nil),
		KPIs:           handlers.NewKPIHandler(kpiSvc, nil),
		Farms:          handlers.NewFarmHandler(recordsSvc, nil),
		Users:          handlers.NewUserHandler(users.NewService(store.Users, nil), nil),
		Maintenance: handlers.NewMaintenanceHandler(
			maintenance.NewService(store, nil),
			export.NewService(store.ProductionLogs, nil, nil),
			nil,
		),
	}

	r := New(h, authSvc, Options{CORSOrigins: []string{"*"}, Metrics: observability.NewMetrics()}, nil)
	gin.SetMode(gin.TestMode)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func register(t *testing.T, r *gin.Engine, email string, role models.Role, coop string) string {
	t.Helper()
	rec := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": email, "password": "secret1", "name": email, "role": role, "cooperative_id": coop,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.TokenResponse](t, rec).AccessToken
}

func TestPublicAndInfraRoutes(t *testing.T) {
	r := newTestEngine(t)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/healthz", "", nil).Code)

	rec := do(t, r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "coopledger_http_requests_total")
}

func TestAuthenticationVersusAuthorization(t *testing.T) {
	r := newTestEngine(t)
	managerToken := register(t, r, "manager@coop.org", models.RoleManager, "coop-a")

	assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodGet, "/api/auth/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodGet, "/api/auth/me", "garbage", nil).Code)
	assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodGet, "/api/kpis/overview", managerToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodPost, "/api/init-mvp-data", managerToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodGet, "/api/users", managerToken, nil).Code)

	me := do(t, r, http.MethodGet, "/api/auth/me", managerToken, nil)
	require.Equal(t, http.StatusOK, me.Code)
	user := decode[models.User](t, me)
	assert.Equal(t, "manager@coop.org", user.Email)
	assert.NotContains(t, me.Body.String(), "password")

	dup := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "manager@coop.org", "password": "secret1", "name": "x", "role": "manager", "cooperative_id": "coop-a",
	})
	assert.Equal(t, http.StatusBadRequest, dup.Code)

	badRole := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "x@coop.org", "password": "secret1", "name": "x", "role": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, badRole.Code)

	login := do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "manager@coop.org", "password": "wrong1"})
	assert.Equal(t, http.StatusUnauthorized, login.Code)
}

func TestRecordLifecycleOverHTTP(t *testing.T) {
	r := newTestEngine(t)
	officerToken := register(t, r, "officer@coop.org", models.RoleOfficer, "")

	seed := do(t, r, http.MethodPost, "/api/init-mvp-data", officerToken, nil)
	require.Equal(t, http.StatusOK, seed.Code, seed.Body.String())
	assert.Equal(t, 2, decode[models.SeedResult](t, seed).Cooperatives)

	coops := decode[[]models.Cooperative](t, do(t, r, http.MethodGet, "/api/cooperatives", officerToken, nil))
	require.Len(t, coops, 2)
	mine, other := coops[0].ID, coops[1].ID

	managerToken := register(t, r, "manager@coop.org", models.RoleManager, mine)

	// Manager listing ignores the requested cooperative.
	logs := decode[[]models.ProductionLog](t, do(t, r, http.MethodGet, "/api/production-logs?cooperative_id="+other, managerToken, nil))
	require.Len(t, logs, 10)
	for _, l := range logs {
		assert.Equal(t, mine, l.CooperativeID)
	}

	created := do(t, r, http.MethodPost, "/api/production-logs", managerToken, gin.H{
		"cooperative_id":            mine,
		"date":                      "2025-06-01T00:00:00Z",
		"batch_period":              "Week 23",
		"total_production":          800,
		"grade_a_percent":           70,
		"grade_b_percent":           30,
		"post_harvest_loss_percent": 11,
		"post_harvest_loss_kg":      88,
		"energy_use":                "Medium",
		"has_nonconformity":         true,
		"nonconformity_description": "Mould in crates",
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	log := decode[models.ProductionLogCreated](t, created)
	require.NotNil(t, log.Nonconformity)
	assert.Equal(t, "Pending", log.Nonconformity.CorrectiveAction)
	ncID := log.Nonconformity.ID

	foreign := do(t, r, http.MethodPost, "/api/production-logs", managerToken, gin.H{
		"cooperative_id": other, "date": "2025-06-01T00:00:00Z", "batch_period": "W", "energy_use": "Low",
	})
	assert.Equal(t, http.StatusForbidden, foreign.Code)

	badEnergy := do(t, r, http.MethodPost, "/api/production-logs", managerToken, gin.H{
		"cooperative_id": mine, "date": "2025-06-01T00:00:00Z", "batch_period": "W", "energy_use": "Nuclear",
	})
	assert.Equal(t, http.StatusBadRequest, badEnergy.Code)

	closed := do(t, r, http.MethodPatch, "/api/nonconformities/"+ncID+"?status=closed&assigned_to=Fatou", managerToken, nil)
	require.Equal(t, http.StatusOK, closed.Code, closed.Body.String())
	nc := decode[models.Nonconformity](t, closed)
	assert.Equal(t, models.StatusClosed, nc.Status)
	assert.Equal(t, "Fatou", nc.AssignedTo)
	assert.NotNil(t, nc.ClosedDate)

	reopened := decode[models.Nonconformity](t, do(t, r, http.MethodPut, "/api/nonconformities/"+ncID, managerToken, gin.H{"status": "in_progress"}))
	assert.Equal(t, models.StatusInProgress, reopened.Status)
	assert.Nil(t, reopened.ClosedDate)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPatch, "/api/nonconformities/"+ncID+"?status=done", managerToken, nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPatch, "/api/nonconformities/"+ncID, managerToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPatch, "/api/nonconformities/missing?status=closed", managerToken, nil).Code)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPut, "/api/production-logs/"+log.ID, managerToken, gin.H{}).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/production-logs/missing", managerToken, nil).Code)

	otherLogs := decode[[]models.ProductionLog](t, do(t, r, http.MethodGet, "/api/production-logs?cooperative_id="+other, officerToken, nil))
	require.NotEmpty(t, otherLogs)
	assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodDelete, "/api/production-logs/"+otherLogs[0].ID, managerToken, nil).Code)

	updated := do(t, r, http.MethodPut, "/api/production-logs/"+log.ID, managerToken, gin.H{"total_production": 900})
	require.Equal(t, http.StatusOK, updated.Code)
	assert.Equal(t, 900.0, decode[models.ProductionLog](t, updated).TotalProduction)

	kpis := do(t, r, http.MethodGet, "/api/kpis/cooperative/"+other, managerToken, nil)
	require.Equal(t, http.StatusOK, kpis.Code)
	assert.Equal(t, mine, decode[models.CooperativeKPIs](t, kpis).CooperativeID)

	overview := do(t, r, http.MethodGet, "/api/kpis/overview", officerToken, nil)
	require.Equal(t, http.StatusOK, overview.Code)
	assert.Len(t, decode[[]models.CooperativeOverview](t, overview), 2)

	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/api/production-logs/"+log.ID, managerToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, "/api/production-logs/"+log.ID, managerToken, nil).Code)
}

func TestScenarioEndpoint(t *testing.T) {
	r := newTestEngine(t)
	token := register(t, r, "officer@coop.org", models.RoleOfficer, "")

	rec := do(t, r, http.MethodPost, "/api/scenario/loss-reduction", token, gin.H{
		"cooperative_id": "c", "current_loss_percent": 15, "target_loss_percent": 10, "price_per_kg": 2, "avg_production_kg": 1000,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[models.ScenarioResponse](t, rec)
	assert.Equal(t, 50.0, resp.AdditionalSellableKg)
	assert.Equal(t, 100.0, resp.RevenueGain)

	negative := do(t, r, http.MethodPost, "/api/scenario/loss-reduction", token, gin.H{
		"current_loss_percent": -1, "target_loss_percent": 10, "price_per_kg": 2, "avg_production_kg": 1000,
	})
	assert.Equal(t, http.StatusBadRequest, negative.Code)

	overflow := do(t, r, http.MethodPost, "/api/scenario/loss-reduction", token, gin.H{
		"current_loss_percent": 15, "target_loss_percent": 10, "price_per_kg": 1e300, "avg_production_kg": 1e300,
	})
	assert.Equal(t, http.StatusBadRequest, overflow.Code)
}

func TestMaintenanceAndExportEndpoints(t *testing.T) {
	r := newTestEngine(t)
	officerToken := register(t, r, "officer@dims.com", models.RoleOfficer, "")

	metrics := do(t, r, http.MethodPost, "/api/init-data", officerToken, nil)
	require.Equal(t, http.StatusOK, metrics.Code)
	farms := decode[[]models.Farm](t, do(t, r, http.MethodGet, "/api/farms", officerToken, nil))
	require.NotEmpty(t, farms)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/farms/"+farms[0].ID, officerToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/farms/invalid-id", officerToken, nil).Code)

	reinit := do(t, r, http.MethodPost, "/api/reinit-data", officerToken, nil)
	require.Equal(t, http.StatusOK, reinit.Code)
	assert.Equal(t, 2, decode[models.ReinitResult](t, reinit).Seed.Cooperatives)

	fix := do(t, r, http.MethodPost, "/api/fix-manager-cooperative", officerToken, nil)
	require.Equal(t, http.StatusOK, fix.Code, fix.Body.String())

	rewrite := do(t, r, http.MethodPost, "/api/maintenance/email-domain", officerToken, gin.H{"from": "dims.com", "to": "coop.org"})
	require.Equal(t, http.StatusOK, rewrite.Code)
	assert.Equal(t, 1, decode[models.EmailDomainResult](t, rewrite).Updated)

	assert.Equal(t, http.StatusServiceUnavailable, do(t, r, http.MethodPost, "/api/export/production-logs", officerToken, nil).Code)
}
