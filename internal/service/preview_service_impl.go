package service

import (
	"context"

	"github.com/alexanderramin/wordplan/internal/allocator"
	"github.com/alexanderramin/wordplan/internal/contract"
)

type previewService struct {
	alloc    *allocator.Allocator
	observer UseCaseObserver
}

func NewPreviewService(alloc *allocator.Allocator, observers ...UseCaseObserver) PreviewService {
	if alloc == nil {
		alloc = allocator.New()
	}
	return &previewService{alloc: alloc, observer: useCaseObserverOrNoop(observers)}
}

func (s *previewService) Preview(ctx context.Context, req contract.PreviewRequest) (resp *contract.PreviewResponse, err error) {
	fields := map[string]any{
		"strategy": req.AlgorithmType,
		"total":    req.TotalWordCount,
	}
	done := track(ctx, s.observer, "preview", fields)
	defer func() { done(err) }()

	areq, err := req.ToAllocation()
	if err != nil {
		r := contract.NewPreviewError(err)
		return &r, err
	}
	targets, err := s.alloc.Allocate(areq)
	if err != nil {
		r := contract.NewPreviewError(err)
		return &r, err
	}
	fields["days"] = len(targets)
	r := contract.NewPreviewResponse(targets)
	return &r, nil
}

func (s *previewService) Allocate(ctx context.Context, req allocator.Request) (targets []allocator.DailyTarget, err error) {
	fields := map[string]any{"strategy": string(req.Strategy), "total": req.Total}
	done := track(ctx, s.observer, "allocate", fields)
	defer func() { done(err) }()

	targets, err = s.alloc.Allocate(req)
	if err != nil {
		return nil, err
	}
	fields["days"] = len(targets)
	return targets, nil
}
