package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/contract"
	"github.com/alexanderramin/wordplan/internal/domain"
	"github.com/alexanderramin/wordplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPlan(t *testing.T, env *testEnv, opts ...testutil.PlanOption) *domain.Plan {
	t.Helper()
	plan := testutil.NewTestPlan("Progress", opts...)
	_, err := env.planSvc.Create(context.Background(), plan)
	require.NoError(t, err)
	return plan
}

func TestProgress_SetReplacesLogged(t *testing.T) {
	env := newTestEnv(t)
	plan := createPlan(t, env)
	ctx := context.Background()
	day := calendar.MustParse("2024-11-02")

	_, err := env.progress.Log(ctx, contract.ProgressRequest{PlanID: plan.ID, Date: day, Count: 400})
	require.NoError(t, err)
	resp, err := env.progress.Log(ctx, contract.ProgressRequest{PlanID: plan.ID, Date: day, Count: 1200})
	require.NoError(t, err)

	assert.Equal(t, 1200, resp.Logged)
	assert.Equal(t, 1000, resp.Target)
	assert.True(t, resp.Met)
}

func TestProgress_AddIncrements(t *testing.T) {
	env := newTestEnv(t)
	plan := createPlan(t, env)
	ctx := context.Background()
	day := calendar.MustParse("2024-11-02")

	for _, n := range []int{300, 250} {
		_, err := env.progress.Log(ctx, contract.ProgressRequest{PlanID: plan.ID, Date: day, Count: n, Add: true})
		require.NoError(t, err)
	}
	got, err := env.days.Get(ctx, plan.ID, day)
	require.NoError(t, err)
	assert.Equal(t, 550, got.Logged)
	assert.False(t, got.Met())
}

func TestProgress_RejectsDateOutsidePlan(t *testing.T) {
	env := newTestEnv(t)
	plan := createPlan(t, env)

	_, err := env.progress.Log(context.Background(), contract.ProgressRequest{
		PlanID: plan.ID, Date: calendar.MustParse("2024-12-01"), Count: 10,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside plan range")
}

func TestProgress_RejectsNegativeCount(t *testing.T) {
	env := newTestEnv(t)
	plan := createPlan(t, env)

	_, err := env.progress.Log(context.Background(), contract.ProgressRequest{
		PlanID: plan.ID, Date: calendar.MustParse("2024-11-01"), Count: -10,
	})
	require.Error(t, err)
	assert.False(t, env.observer.last().Success)
}

func TestProgress_RejectsArchivedPlan(t *testing.T) {
	env := newTestEnv(t)
	plan := createPlan(t, env)
	require.NoError(t, env.planSvc.Archive(context.Background(), plan.ID))

	_, err := env.progress.Log(context.Background(), contract.ProgressRequest{
		PlanID: plan.ID, Date: calendar.MustParse("2024-11-01"), Count: 10,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archived")
}

func TestProgress_UnknownPlan(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.progress.Log(context.Background(), contract.ProgressRequest{
		PlanID: "missing", Date: calendar.MustParse("2024-11-01"), Count: 10,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
