package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/wordplan/internal/allocator"
	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/contract"
	"github.com/alexanderramin/wordplan/internal/domain"
	"github.com/alexanderramin/wordplan/internal/importer"
	"github.com/alexanderramin/wordplan/internal/repository"
	"github.com/alexanderramin/wordplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImportJSON(t *testing.T, schema *importer.ImportSchema) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.json")
	data, err := json.MarshalIndent(schema, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func importSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		Plan: importer.PlanImport{
			Name:       "Imported",
			StartDate:  "2024-11-01",
			EndDate:    "2024-11-10",
			GoalAmount: 10000,
		},
		Progress: []importer.ProgressImport{
			{Date: "2024-11-01", Logged: 1000},
			{Date: "2024-11-02", Logged: 1500},
		},
	}
}

func TestImportPlan_FromFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.imports.ImportPlan(ctx, writeImportJSON(t, importSchema()), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, res.DayCount)
	assert.Equal(t, 2, res.ProgressDays)
	assert.Equal(t, 2500, res.LoggedTotal)
	assert.Equal(t, "import-plan", env.observer.last().Name)

	days, err := env.days.ListByPlan(ctx, res.Plan.ID)
	require.NoError(t, err)
	require.Len(t, days, 10)
	assert.Equal(t, 1000, days[0].Target)
	assert.Equal(t, 1500, days[1].Logged)

	st, err := env.stats.PlanStats(ctx, contract.StatsRequest{PlanID: res.Plan.ID, AsOf: calendar.MustParse("2024-11-02")})
	require.NoError(t, err)
	assert.Equal(t, 2500, st.TotalLogged)
	assert.Equal(t, 2, st.DaysMet)
}

func TestImportPlan_ValidationErrorsListed(t *testing.T) {
	env := newTestEnv(t)
	schema := importSchema()
	schema.Plan.Name = ""
	schema.Progress = append(schema.Progress, importer.ProgressImport{Date: "2024-12-25", Logged: 1})

	_, err := env.imports.ImportPlanFromSchema(context.Background(), schema, "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), "plan.name is required")

	plans, err := env.plans.List(context.Background(), repository.PlanFilter{IncludeArchived: true})
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestImportPlan_MissingFile(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.imports.ImportPlan(context.Background(), filepath.Join(t.TempDir(), "nope.json"), "user-1")
	assert.ErrorContains(t, err, "loading import file")
}

func TestImportPlan_ArchivedStaysArchived(t *testing.T) {
	env := newTestEnv(t)
	schema := importSchema()
	schema.Plan.Status = string(domain.PlanArchived)

	res, err := env.imports.ImportPlanFromSchema(context.Background(), schema, "user-1")
	require.NoError(t, err)

	got, err := env.plans.GetByID(context.Background(), res.Plan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanArchived, got.Status)
	assert.NotNil(t, got.ArchivedAt)
}

func TestImportPlan_RollbackOnProgressFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	plans := repository.NewSQLitePlanRepo(database)
	days := repository.NewSQLitePlanDayRepo(database)
	injected := errors.New("injected progress failure")

	uow := &testutil.FailingUoW{DB: database, FailMatch: "SET logged", Err: injected}
	svc := NewImportService(plans, days, uow, allocator.New())

	_, err := svc.ImportPlanFromSchema(context.Background(), importSchema(), "user-1")
	require.ErrorIs(t, err, injected)

	all, err := plans.List(context.Background(), repository.PlanFilter{IncludeArchived: true})
	require.NoError(t, err)
	assert.Empty(t, all, "plan row must be rolled back")
}

func TestDump_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Dumped", testutil.WithStrategy(domain.StrategyMountain))
	_, err := env.planSvc.Create(ctx, plan)
	require.NoError(t, err)
	req := contract.NewProgressRequest(plan.ID, 777)
	req.Date = calendar.MustParse("2024-11-03")
	_, err = env.progress.Log(ctx, req)
	require.NoError(t, err)

	schema, err := env.imports.Dump(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "mountain", schema.Plan.Strategy)
	require.Len(t, schema.Progress, 30)
	assert.Equal(t, "2024-11-03", schema.Progress[2].Date)
	assert.Equal(t, 777, schema.Progress[2].Logged)
	require.NotNil(t, schema.Progress[2].Target)

	res, err := env.imports.ImportPlanFromSchema(ctx, schema, "user-2")
	require.NoError(t, err)
	original, err := env.days.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	restored, err := env.days.ListByPlan(ctx, res.Plan.ID)
	require.NoError(t, err)
	require.Len(t, restored, len(original))
	for i := range original {
		assert.Equal(t, original[i].Target, restored[i].Target)
		assert.Equal(t, original[i].Logged, restored[i].Logged)
	}
}

func TestDumpImport_RestoresRandomSchedule(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Random",
		testutil.WithStrategy(domain.StrategyRandom),
		testutil.WithIntensity(domain.IntensityExtreme))
	original, err := env.planSvc.Create(ctx, plan)
	require.NoError(t, err)
	req := contract.NewProgressRequest(plan.ID, original[0].Target+1)
	req.Date = original[0].Date
	_, err = env.progress.Log(ctx, req)
	require.NoError(t, err)

	schema, err := env.imports.Dump(ctx, plan.ID)
	require.NoError(t, err)
	res, err := env.imports.ImportPlanFromSchema(ctx, schema, "user-1")
	require.NoError(t, err)
	assert.Equal(t, true, env.observer.last().Fields["restored_targets"])
	assert.Equal(t, 1, res.ProgressDays)

	restored, err := env.days.ListByPlan(ctx, res.Plan.ID)
	require.NoError(t, err)
	require.Len(t, restored, len(original))
	for i := range original {
		assert.Equal(t, original[i].Date, restored[i].Date)
		assert.Equal(t, original[i].Target, restored[i].Target, "target on %s", original[i].Date)
	}
	assert.Equal(t, original[0].Target+1, restored[0].Logged)
}

func TestImportPlan_RestoredScheduleRespectsMaxDays(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Long")
	_, err := env.planSvc.Create(ctx, plan)
	require.NoError(t, err)
	schema, err := env.imports.Dump(ctx, plan.ID)
	require.NoError(t, err)

	uow := testutil.NewTestUoW(env.db)
	svc := NewImportService(env.plans, env.days, uow, allocator.New(allocator.WithMaxDays(10)))
	_, err = svc.ImportPlanFromSchema(ctx, schema, "user-1")
	assert.ErrorIs(t, err, allocator.ErrRangeTooLarge)
}

func TestDump_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.imports.Dump(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
