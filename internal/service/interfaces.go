package service

import (
	"context"

	"github.com/alexanderramin/wordplan/internal/allocator"
	"github.com/alexanderramin/wordplan/internal/contract"
	"github.com/alexanderramin/wordplan/internal/domain"
	"github.com/alexanderramin/wordplan/internal/importer"
	"github.com/alexanderramin/wordplan/internal/repository"
)

// PreviewService computes schedules without persisting anything.
type PreviewService interface {
	// Preview always returns a response; on failure it carries the error code
	// and the error is also returned.
	Preview(ctx context.Context, req contract.PreviewRequest) (*contract.PreviewResponse, error)
	Allocate(ctx context.Context, req allocator.Request) ([]allocator.DailyTarget, error)
}

type PlanService interface {
	// Create allocates the schedule and stores the plan with its day rows in
	// one transaction.
	Create(ctx context.Context, p *domain.Plan) ([]domain.PlanDay, error)
	Get(ctx context.Context, ref string) (*domain.Plan, error)
	Schedule(ctx context.Context, planID string) ([]domain.PlanDay, error)
	List(ctx context.Context, f repository.PlanFilter) ([]*domain.Plan, error)
	// Update regenerates the schedule. Logged amounts on dates still in range
	// survive; rows outside the new range are removed.
	Update(ctx context.Context, p *domain.Plan) ([]domain.PlanDay, error)
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

type ProgressService interface {
	Log(ctx context.Context, req contract.ProgressRequest) (*contract.ProgressResponse, error)
}

type StatsService interface {
	PlanStats(ctx context.Context, req contract.StatsRequest) (*contract.PlanStats, error)
	GlobalStats(ctx context.Context, req contract.StatsRequest) (*contract.GlobalStats, error)
}

// ImportResult reports what an import created.
type ImportResult struct {
	Plan         *domain.Plan
	DayCount     int
	ProgressDays int
	LoggedTotal  int
}

type ImportService interface {
	// ImportPlan loads a plan document from disk and stores it for owner.
	ImportPlan(ctx context.Context, filePath, owner string) (*ImportResult, error)
	// ImportPlanFromSchema stores the plan, its schedule and its logged
	// progress in one transaction.
	ImportPlanFromSchema(ctx context.Context, schema *importer.ImportSchema, owner string) (*ImportResult, error)
	// Dump returns the document that recreates the plan with its progress.
	Dump(ctx context.Context, planID string) (*importer.ImportSchema, error)
}
