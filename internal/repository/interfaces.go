package repository

import (
	"context"

	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/domain"
)

// PlanFilter narrows List. An empty OwnerID matches every owner.
type PlanFilter struct {
	OwnerID         string
	IncludeArchived bool
}

type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	// GetByPrefix resolves a full id or a unique id prefix.
	GetByPrefix(ctx context.Context, prefix string) (*domain.Plan, error)
	List(ctx context.Context, f PlanFilter) ([]*domain.Plan, error)
	Update(ctx context.Context, p *domain.Plan) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type PlanDayRepo interface {
	// UpsertTargets writes targets keyed by (plan id, date). Existing rows keep
	// their logged amount.
	UpsertTargets(ctx context.Context, planID string, days []domain.PlanDay) error
	// DeleteOutside removes rows dated before start or after end.
	DeleteOutside(ctx context.Context, planID string, start, end calendar.Date) (int64, error)
	Get(ctx context.Context, planID string, date calendar.Date) (*domain.PlanDay, error)
	ListByPlan(ctx context.Context, planID string) ([]domain.PlanDay, error)
	SetLogged(ctx context.Context, planID string, date calendar.Date, amount int) error
	AddLogged(ctx context.Context, planID string, date calendar.Date, delta int) (int, error)
}
