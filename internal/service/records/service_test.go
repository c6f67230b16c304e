package records

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/coopledger/internal/domain/apperr"
	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/repository"
	"github.com/mamadbah2/coopledger/internal/repository/memory"
)

var (
	officer  = models.User{ID: "u-officer", Role: models.RoleOfficer}
	managerA = models.User{ID: "u-manager-a", Role: models.RoleManager, CooperativeID: "coop-a"}
	managerB = models.User{ID: "u-manager-b", Role: models.RoleManager, CooperativeID: "coop-b"}
	fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
)

func newTestService(t *testing.T) (*Service, repository.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewService(store, nil)
	svc.now = func() time.Time { return fixedNow }
	seq := 0
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("id-%03d", seq)
	}
	return svc, store
}

func logInput(coop string) models.ProductionLogInput {
	return models.ProductionLogInput{
		CooperativeID:   coop,
		Date:            time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		BatchPeriod:     "Week 9",
		TotalProduction: 500,
		GradeAPercent:   75,
		GradeBPercent:   25,
		LossPercent:     12,
		LossKg:          60,
		EnergyUse:       models.EnergyMedium,
	}
}

func TestManagerListingIsPinnedToOwnCooperative(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, coop := range []string{"coop-a", "coop-b", "coop-a", "coop-c"} {
		_, err := svc.CreateProductionLog(ctx, officer, logInput(coop))
		require.NoError(t, err)
	}

	for _, requested := range []string{"", "coop-a", "coop-b", "coop-c"} {
		logs, err := svc.ListProductionLogs(ctx, managerA, requested)
		require.NoError(t, err)
		assert.Len(t, logs, 2, "requested %q", requested)
		for _, l := range logs {
			assert.Equal(t, "coop-a", l.CooperativeID)
		}
	}

	all, err := svc.ListProductionLogs(ctx, officer, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	onlyB, err := svc.ListProductionLogs(ctx, officer, "coop-b")
	require.NoError(t, err)
	assert.Len(t, onlyB, 1)
}

func TestCreateProductionLogOpensImplicitNonconformity(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		flag        bool
		description string
		action      string
		wantNC      bool
		wantAction  string
	}{
		{name: "flag with description", flag: true, description: "Bruised fruit", action: "Resort batch", wantNC: true, wantAction: "Resort batch"},
		{name: "defaults corrective action", flag: true, description: "Bruised fruit", wantNC: true, wantAction: "Pending"},
		{name: "flag with whitespace description", flag: true, description: "   ", wantNC: true, wantAction: "Pending"},
		{name: "flag without description", flag: true},
		{name: "description without flag", description: "Bruised fruit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(t)
			input := logInput("coop-a")
			input.HasNonconformity = tt.flag
			input.NonconformityDescription = tt.description
			input.CorrectiveAction = tt.action

			created, err := svc.CreateProductionLog(ctx, managerA, input)
			require.NoError(t, err)

			ncs, err := store.Nonconformities.List(ctx, models.NonconformityFilter{})
			require.NoError(t, err)

			if !tt.wantNC {
				assert.Nil(t, created.Nonconformity)
				assert.Empty(t, ncs)
				return
			}

			require.Len(t, ncs, 1)
			nc := ncs[0]
			assert.Equal(t, created.ID, nc.ProductionLogID)
			assert.Equal(t, "coop-a", nc.CooperativeID)
			assert.Equal(t, input.Date, nc.Date)
			assert.Equal(t, models.CategoryQuality, nc.Category)
			assert.Equal(t, models.SeverityMedium, nc.Severity)
			assert.Equal(t, models.StatusOpen, nc.Status)
			assert.Equal(t, tt.description, nc.Description)
			assert.Equal(t, tt.wantAction, nc.CorrectiveAction)
			assert.Nil(t, nc.ClosedDate)
			require.NotNil(t, created.Nonconformity)
			assert.Equal(t, nc, *created.Nonconformity)
		})
	}
}

func TestCreateProductionLogRejectsForeignCooperative(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.CreateProductionLog(context.Background(), managerA, logInput("coop-b"))
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	unaffiliated := models.User{ID: "u-x", Role: models.RoleManager}
	_, err = svc.CreateProductionLog(context.Background(), unaffiliated, logInput("coop-a"))
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	logs, err := store.ProductionLogs.List(context.Background(), models.ProductionLogFilter{})
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestNonconformityClosedDateFollowsStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	nc, err := svc.CreateNonconformity(ctx, managerA, models.NonconformityInput{
		CooperativeID: "coop-a",
		Category:      models.CategorySafety,
		Severity:      models.SeverityHigh,
		Description:   "Missing gloves",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, nc.Status)
	assert.Nil(t, nc.ClosedDate)
	assert.Equal(t, fixedNow, nc.Date)

	steps := []models.NonconformityStatus{
		models.StatusInProgress,
		models.StatusClosed,
		models.StatusOpen,
		models.StatusClosed,
		models.StatusClosed,
		models.StatusInProgress,
	}
	for _, status := range steps {
		st := status
		updated, err := svc.UpdateNonconformity(ctx, managerA, nc.ID, models.NonconformityUpdate{Status: &st})
		require.NoError(t, err)

		stored, err := svc.GetNonconformity(ctx, officer, nc.ID)
		require.NoError(t, err)

		for _, got := range []models.Nonconformity{updated, stored} {
			assert.Equal(t, st, got.Status)
			if st == models.StatusClosed {
				require.NotNil(t, got.ClosedDate)
				assert.Equal(t, fixedNow, *got.ClosedDate)
			} else {
				assert.Nil(t, got.ClosedDate)
			}
		}
	}
}

func TestUpdateNonconformityNoOpIsNotMissing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	nc, err := svc.CreateNonconformity(ctx, officer, models.NonconformityInput{
		CooperativeID: "coop-a", Category: models.CategoryQuality, Severity: models.SeverityLow, Description: "x",
	})
	require.NoError(t, err)

	assignee := "Fatou"
	_, err = svc.UpdateNonconformity(ctx, officer, nc.ID, models.NonconformityUpdate{AssignedTo: &assignee})
	require.NoError(t, err)

	again, err := svc.UpdateNonconformity(ctx, officer, nc.ID, models.NonconformityUpdate{AssignedTo: &assignee})
	require.NoError(t, err)
	assert.Equal(t, "Fatou", again.AssignedTo)
}

func TestEmptyUpdatesAreRejectedWithoutWrites(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	created, err := svc.CreateProductionLog(ctx, officer, logInput("coop-a"))
	require.NoError(t, err)
	nc, err := svc.CreateNonconformity(ctx, officer, models.NonconformityInput{
		CooperativeID: "coop-a", Category: models.CategoryQuality, Severity: models.SeverityLow, Description: "x",
	})
	require.NoError(t, err)

	_, err = svc.UpdateProductionLog(ctx, officer, created.ID, models.ProductionLogUpdate{})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	now := time.Now()
	_, err = svc.UpdateNonconformity(ctx, officer, nc.ID, models.NonconformityUpdate{ClosedDate: &now, ClearClosedDate: true})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	storedLog, err := store.ProductionLogs.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ProductionLog, storedLog)

	storedNC, err := store.Nonconformities.FindByID(ctx, nc.ID)
	require.NoError(t, err)
	assert.Equal(t, nc, storedNC)
}

func TestNotFoundIsDistinctFromForbidden(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.CreateProductionLog(ctx, officer, logInput("coop-a"))
	require.NoError(t, err)
	nc, err := svc.CreateNonconformity(ctx, officer, models.NonconformityInput{
		CooperativeID: "coop-a", Category: models.CategoryQuality, Severity: models.SeverityLow, Description: "x",
	})
	require.NoError(t, err)

	total := 1000.0
	closed := models.StatusClosed

	tests := []struct {
		name    string
		call    func() error
		wantErr error
	}{
		{
			name: "update missing log",
			call: func() error {
				_, err := svc.UpdateProductionLog(ctx, managerB, "nope", models.ProductionLogUpdate{TotalProduction: &total})
				return err
			},
			wantErr: apperr.ErrNotFound,
		},
		{
			name: "update foreign log",
			call: func() error {
				_, err := svc.UpdateProductionLog(ctx, managerB, created.ID, models.ProductionLogUpdate{TotalProduction: &total})
				return err
			},
			wantErr: apperr.ErrForbidden,
		},
		{
			name:    "delete missing log",
			call:    func() error { return svc.DeleteProductionLog(ctx, managerB, "nope") },
			wantErr: apperr.ErrNotFound,
		},
		{
			name:    "delete foreign log",
			call:    func() error { return svc.DeleteProductionLog(ctx, managerB, created.ID) },
			wantErr: apperr.ErrForbidden,
		},
		{
			name: "update missing nonconformity",
			call: func() error {
				_, err := svc.UpdateNonconformity(ctx, managerB, "nope", models.NonconformityUpdate{Status: &closed})
				return err
			},
			wantErr: apperr.ErrNotFound,
		},
		{
			name: "update foreign nonconformity",
			call: func() error {
				_, err := svc.UpdateNonconformity(ctx, managerB, nc.ID, models.NonconformityUpdate{Status: &closed})
				return err
			},
			wantErr: apperr.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	stillThere, err := svc.GetProductionLog(ctx, managerA, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, stillThere.TotalProduction)
}

func TestProductionLogUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.CreateProductionLog(ctx, managerA, logInput("coop-a"))
	require.NoError(t, err)

	loss := 8.5
	energy := models.EnergyLow
	updated, err := svc.UpdateProductionLog(ctx, managerA, created.ID, models.ProductionLogUpdate{LossPercent: &loss, EnergyUse: &energy})
	require.NoError(t, err)
	assert.Equal(t, 8.5, updated.LossPercent)
	assert.Equal(t, models.EnergyLow, updated.EnergyUse)
	assert.Equal(t, created.BatchPeriod, updated.BatchPeriod)

	bad := models.EnergyUse("Extreme")
	_, err = svc.UpdateProductionLog(ctx, managerA, created.ID, models.ProductionLogUpdate{EnergyUse: &bad})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	require.NoError(t, svc.DeleteProductionLog(ctx, managerA, created.ID))
	_, err = svc.GetProductionLog(ctx, managerA, created.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListNonconformitiesFiltersByStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, coop := range []string{"coop-a", "coop-a", "coop-b"} {
		_, err := svc.CreateNonconformity(ctx, officer, models.NonconformityInput{
			CooperativeID: coop, Category: models.CategoryEnvironmental, Severity: models.SeverityCritical, Description: "spill",
		})
		require.NoError(t, err)
	}
	closed := models.StatusClosed
	_, err := svc.UpdateNonconformity(ctx, officer, "id-001", models.NonconformityUpdate{Status: &closed})
	require.NoError(t, err)

	open, err := svc.ListNonconformities(ctx, managerA, "coop-b", "open")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "coop-a", open[0].CooperativeID)

	all, err := svc.ListNonconformities(ctx, officer, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.ListNonconformities(ctx, officer, "", "archived")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCooperativesAndMetrics(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	coop, err := svc.CreateCooperative(ctx, officer, models.CooperativeInput{Name: " Green Valley ", Country: "Ethiopia", Product: "Coffee"})
	require.NoError(t, err)
	assert.Equal(t, "Green Valley", coop.Name)
	assert.Equal(t, models.CooperativeActive, coop.Status)

	_, err = svc.CreateCooperative(ctx, officer, models.CooperativeInput{Name: "x", Country: "y", Product: "z", Status: "dormant"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	got, err := svc.GetCooperative(ctx, coop.ID)
	require.NoError(t, err)
	assert.Equal(t, coop, got)

	_, err = svc.GetCooperative(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	farm, err := svc.CreateFarm(ctx, models.FarmInput{FarmName: "North", Location: "Kaffa", AreaHectares: 4.5, CropType: "Coffee"})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, farm.Timestamp)

	farms, err := svc.ListFarms(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Farm{farm}, farms)

	_, err = svc.GetFarm(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	esg, err := svc.CreateESG(ctx, models.ESGInput{Period: "2025-Q1", WomenEmployed: 12})
	require.NoError(t, err)
	list, err := svc.ListESG(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.ESGMetrics{esg}, list)
}
