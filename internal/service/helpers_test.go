package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/wordplan/internal/allocator"
	"github.com/alexanderramin/wordplan/internal/repository"
	"github.com/alexanderramin/wordplan/internal/testutil"
)

type testEnv struct {
	db       *sql.DB
	plans    *repository.SQLitePlanRepo
	days     *repository.SQLitePlanDayRepo
	observer *recordingObserver
	planSvc  PlanService
	progress ProgressService
	stats    StatsService
	imports  ImportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	plans := repository.NewSQLitePlanRepo(database)
	days := repository.NewSQLitePlanDayRepo(database)
	uow := testutil.NewTestUoW(database)
	obs := &recordingObserver{}
	return &testEnv{
		db:       database,
		plans:    plans,
		days:     days,
		observer: obs,
		planSvc:  NewPlanService(plans, days, uow, allocator.New(), obs),
		progress: NewProgressService(uow, obs),
		stats:    NewStatsService(plans, days, obs),
		imports:  NewImportService(plans, days, uow, allocator.New(), obs),
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return UseCaseEvent{}
	}
	return r.events[len(r.events)-1]
}
