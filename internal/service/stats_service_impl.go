package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/contract"
	"github.com/alexanderramin/wordplan/internal/repository"
)

type statsService struct {
	plans    repository.PlanRepo
	days     repository.PlanDayRepo
	observer UseCaseObserver
}

func NewStatsService(plans repository.PlanRepo, days repository.PlanDayRepo, observers ...UseCaseObserver) StatsService {
	return &statsService{plans: plans, days: days, observer: useCaseObserverOrNoop(observers)}
}

func (s *statsService) PlanStats(ctx context.Context, req contract.StatsRequest) (st *contract.PlanStats, err error) {
	done := track(ctx, s.observer, "plan-stats", map[string]any{"plan_id": req.PlanID})
	defer func() { done(err) }()

	if req.PlanID == "" {
		return nil, fmt.Errorf("plan id is required")
	}
	plan, err := s.plans.GetByPrefix(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	days, err := s.days.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	out := computePlanStats(plan, days, asOf(req))
	return &out, nil
}

func (s *statsService) GlobalStats(ctx context.Context, req contract.StatsRequest) (gs *contract.GlobalStats, err error) {
	fields := map[string]any{"owner_id": req.OwnerID}
	done := track(ctx, s.observer, "global-stats", fields)
	defer func() { done(err) }()

	plans, err := s.plans.List(ctx, repository.PlanFilter{OwnerID: req.OwnerID})
	if err != nil {
		return nil, err
	}

	when := asOf(req)
	out := &contract.GlobalStats{OwnerID: req.OwnerID, Plans: []contract.PlanStats{}}
	for _, p := range plans {
		days, err := s.days.ListByPlan(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		ps := computePlanStats(p, days, when)
		out.Plans = append(out.Plans, ps)
		out.GoalAmount += ps.GoalAmount
		out.TotalLogged += ps.TotalLogged
		out.DaysMet += ps.DaysMet
	}
	out.ActivePlans = len(out.Plans)
	out.CompletionPct = percent(out.TotalLogged, out.GoalAmount)
	out.Daily = mergeDaily(out.Plans)
	fields["plans"] = out.ActivePlans
	return out, nil
}

func asOf(req contract.StatsRequest) calendar.Date {
	if req.AsOf.IsZero() {
		return calendar.Today()
	}
	return req.AsOf
}
