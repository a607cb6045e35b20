package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/wordplan/internal/allocator"
	"github.com/alexanderramin/wordplan/internal/db"
	"github.com/alexanderramin/wordplan/internal/domain"
	"github.com/alexanderramin/wordplan/internal/repository"
	"github.com/google/uuid"
)

type planService struct {
	plans    repository.PlanRepo
	days     repository.PlanDayRepo
	uow      db.UnitOfWork
	alloc    *allocator.Allocator
	observer UseCaseObserver
}

func NewPlanService(
	plans repository.PlanRepo,
	days repository.PlanDayRepo,
	uow db.UnitOfWork,
	alloc *allocator.Allocator,
	observers ...UseCaseObserver,
) PlanService {
	if alloc == nil {
		alloc = allocator.New()
	}
	return &planService{
		plans:    plans,
		days:     days,
		uow:      uow,
		alloc:    alloc,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Create(ctx context.Context, p *domain.Plan) (days []domain.PlanDay, err error) {
	fields := map[string]any{"plan": p.Name}
	done := track(ctx, s.observer, "create-plan", fields)
	defer func() { done(err) }()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC().Truncate(time.Second)
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.PlanActive
	}
	applyPlanDefaults(p)

	days, err = s.schedule(p)
	if err != nil {
		return nil, err
	}
	fields["plan_id"] = p.ID
	fields["days"] = len(days)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLitePlanRepo(tx).Create(ctx, p); err != nil {
			return err
		}
		return repository.NewSQLitePlanDayRepo(tx).UpsertTargets(ctx, p.ID, days)
	})
	if err != nil {
		return nil, err
	}
	return days, nil
}

func (s *planService) Get(ctx context.Context, ref string) (*domain.Plan, error) {
	return s.plans.GetByPrefix(ctx, ref)
}

func (s *planService) Schedule(ctx context.Context, planID string) ([]domain.PlanDay, error) {
	return s.days.ListByPlan(ctx, planID)
}

func (s *planService) List(ctx context.Context, f repository.PlanFilter) ([]*domain.Plan, error) {
	return s.plans.List(ctx, f)
}

func (s *planService) Update(ctx context.Context, p *domain.Plan) (days []domain.PlanDay, err error) {
	fields := map[string]any{"plan_id": p.ID}
	done := track(ctx, s.observer, "update-plan", fields)
	defer func() { done(err) }()

	applyPlanDefaults(p)
	p.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	targets, err := s.schedule(p)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plans := repository.NewSQLitePlanRepo(tx)
		dayRepo := repository.NewSQLitePlanDayRepo(tx)

		if err := plans.Update(ctx, p); err != nil {
			return err
		}
		removed, err := dayRepo.DeleteOutside(ctx, p.ID, p.StartDate, p.EndDate)
		if err != nil {
			return err
		}
		fields["days_removed"] = removed
		if err := dayRepo.UpsertTargets(ctx, p.ID, targets); err != nil {
			return err
		}
		days, err = dayRepo.ListByPlan(ctx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	fields["days"] = len(days)
	return days, nil
}

func (s *planService) Archive(ctx context.Context, id string) (err error) {
	done := track(ctx, s.observer, "archive-plan", map[string]any{"plan_id": id})
	defer func() { done(err) }()
	return s.plans.Archive(ctx, id)
}

func (s *planService) Unarchive(ctx context.Context, id string) (err error) {
	done := track(ctx, s.observer, "unarchive-plan", map[string]any{"plan_id": id})
	defer func() { done(err) }()
	return s.plans.Unarchive(ctx, id)
}

func (s *planService) Delete(ctx context.Context, id string, force bool) (err error) {
	done := track(ctx, s.observer, "delete-plan", map[string]any{"plan_id": id, "force": force})
	defer func() { done(err) }()

	if !force {
		p, err := s.plans.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p.Status != domain.PlanArchived {
			return fmt.Errorf("plan must be archived before deletion (use --force to override)")
		}
	}
	return s.plans.Delete(ctx, id)
}

// schedule validates p and allocates its goal over its range.
func (s *planService) schedule(p *domain.Plan) ([]domain.PlanDay, error) {
	return scheduleDays(s.alloc, p)
}

func scheduleDays(alloc *allocator.Allocator, p *domain.Plan) ([]domain.PlanDay, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	targets, err := alloc.Allocate(allocator.Request{
		Total:       p.GoalAmount,
		Start:       p.StartDate,
		End:         p.EndDate,
		Strategy:    p.Strategy,
		Intensity:   p.Intensity,
		WeekendRule: p.WeekendRule,
	})
	if err != nil {
		return nil, fmt.Errorf("allocating plan %q: %w", p.Name, err)
	}
	days := make([]domain.PlanDay, len(targets))
	for i, t := range targets {
		days[i] = domain.PlanDay{PlanID: p.ID, Date: t.Date, Target: t.Target}
	}
	return days, nil
}

// applyPlanDefaults fills the enum fields a stored plan never leaves blank.
func applyPlanDefaults(p *domain.Plan) {
	if p.Strategy == "" {
		p.Strategy = domain.StrategySteady
	}
	if p.Intensity == "" {
		p.Intensity = domain.IntensityAverage
	}
	if p.WeekendRule == "" {
		p.WeekendRule = domain.WeekendNone
	}
}
