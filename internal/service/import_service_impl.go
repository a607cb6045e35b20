package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/wordplan/internal/allocator"
	"github.com/alexanderramin/wordplan/internal/db"
	"github.com/alexanderramin/wordplan/internal/domain"
	"github.com/alexanderramin/wordplan/internal/importer"
	"github.com/alexanderramin/wordplan/internal/repository"
)

type importService struct {
	plans    repository.PlanRepo
	days     repository.PlanDayRepo
	uow      db.UnitOfWork
	alloc    *allocator.Allocator
	observer UseCaseObserver
}

func NewImportService(
	plans repository.PlanRepo,
	days repository.PlanDayRepo,
	uow db.UnitOfWork,
	alloc *allocator.Allocator,
	observers ...UseCaseObserver,
) ImportService {
	if alloc == nil {
		alloc = allocator.New()
	}
	return &importService{
		plans:    plans,
		days:     days,
		uow:      uow,
		alloc:    alloc,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportPlan(ctx context.Context, filePath, owner string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportPlanFromSchema(ctx, schema, owner)
}

func (s *importService) ImportPlanFromSchema(ctx context.Context, schema *importer.ImportSchema, owner string) (res *ImportResult, err error) {
	fields := map[string]any{"plan": schema.Plan.Name, "progress_days": len(schema.Progress)}
	done := track(ctx, s.observer, "import-plan", fields)
	defer func() { done(err) }()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	converted, err := importer.Convert(schema, owner)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}
	p := converted.Plan
	fields["plan_id"] = p.ID

	days := converted.Schedule
	if days == nil {
		days, err = scheduleDays(s.alloc, p)
	} else {
		err = s.checkRestoredRange(p)
	}
	if err != nil {
		return nil, err
	}
	fields["restored_targets"] = converted.Schedule != nil

	res = &ImportResult{Plan: p, DayCount: len(days), ProgressDays: len(converted.Progress)}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plans := repository.NewSQLitePlanRepo(tx)
		dayRepo := repository.NewSQLitePlanDayRepo(tx)

		if err := plans.Create(ctx, p); err != nil {
			return fmt.Errorf("creating plan: %w", err)
		}
		if err := dayRepo.UpsertTargets(ctx, p.ID, days); err != nil {
			return err
		}
		for _, d := range converted.Progress {
			if err := dayRepo.SetLogged(ctx, p.ID, d.Date, d.Logged); err != nil {
				return fmt.Errorf("restoring progress for %s: %w", d.Date, err)
			}
			res.LoggedTotal += d.Logged
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// checkRestoredRange applies the checks allocation would have made to a
// schedule that is restored without allocating.
func (s *importService) checkRestoredRange(p *domain.Plan) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if n := p.DayCount(); n > s.alloc.MaxDays() {
		return fmt.Errorf("restoring plan %q: %w", p.Name, &allocator.RangeTooLargeError{Days: n, MaxDays: s.alloc.MaxDays()})
	}
	return nil
}

func (s *importService) Dump(ctx context.Context, planID string) (*importer.ImportSchema, error) {
	p, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	days, err := s.days.ListByPlan(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return importer.FromPlan(p, days), nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
