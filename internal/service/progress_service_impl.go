package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/wordplan/internal/contract"
	"github.com/alexanderramin/wordplan/internal/db"
	"github.com/alexanderramin/wordplan/internal/domain"
	"github.com/alexanderramin/wordplan/internal/repository"
)

type progressService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewProgressService(uow db.UnitOfWork, observers ...UseCaseObserver) ProgressService {
	return &progressService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *progressService) Log(ctx context.Context, req contract.ProgressRequest) (resp *contract.ProgressResponse, err error) {
	fields := map[string]any{
		"plan_id": req.PlanID,
		"date":    req.Date.String(),
		"count":   req.Count,
		"add":     req.Add,
	}
	done := track(ctx, s.observer, "log-progress", fields)
	defer func() { done(err) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plan, err := repository.NewSQLitePlanRepo(tx).GetByID(ctx, req.PlanID)
		if err != nil {
			return err
		}
		if plan.Status == domain.PlanArchived {
			return fmt.Errorf("plan %q is archived", plan.Name)
		}
		if !plan.Contains(req.Date) {
			return fmt.Errorf("date %s is outside plan range %s..%s", req.Date, plan.StartDate, plan.EndDate)
		}

		days := repository.NewSQLitePlanDayRepo(tx)
		if req.Add {
			if _, err := days.AddLogged(ctx, plan.ID, req.Date, req.Count); err != nil {
				return err
			}
		} else if err := days.SetLogged(ctx, plan.ID, req.Date, req.Count); err != nil {
			return err
		}

		day, err := days.Get(ctx, plan.ID, req.Date)
		if err != nil {
			return err
		}
		resp = &contract.ProgressResponse{
			PlanID: plan.ID,
			Date:   day.Date,
			Target: day.Target,
			Logged: day.Logged,
			Met:    day.Met(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["logged"] = resp.Logged
	return resp, nil
}
