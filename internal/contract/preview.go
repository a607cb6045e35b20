package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/wordplan/internal/allocator"
	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/domain"
)

// PreviewRequest is the body a preview caller sends. Field names follow the
// client payload.
type PreviewRequest struct {
	TotalWordCount    int    `json:"total_word_count"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	AlgorithmType     string `json:"algorithm_type"`
	StrategyIntensity string `json:"strategy_intensity,omitempty"`
	WeekendRule       string `json:"weekend_rule,omitempty"`
}

// DecodePreviewRequest reads one JSON request, rejecting unknown fields.
func DecodePreviewRequest(r io.Reader) (PreviewRequest, error) {
	var req PreviewRequest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return PreviewRequest{}, fmt.Errorf("decoding preview request: %w", err)
	}
	return req, nil
}

// Validate checks that the required fields are present and well formed.
func (r PreviewRequest) Validate() error {
	if r.StartDate == "" || r.EndDate == "" {
		return &allocator.InvalidRangeError{}
	}
	if _, err := calendar.Parse(r.StartDate); err != nil {
		return fmt.Errorf("start_date: %w", err)
	}
	if _, err := calendar.Parse(r.EndDate); err != nil {
		return fmt.Errorf("end_date: %w", err)
	}
	if r.TotalWordCount < 0 {
		return &allocator.InvalidAmountError{Amount: r.TotalWordCount}
	}
	if r.AlgorithmType == "" {
		return &allocator.UnknownStrategyError{}
	}
	return nil
}

// ToAllocation parses dates and enum names into an allocator request. Enum
// values are normalized but not validated; the allocator reports unknown
// names with its own typed errors.
func (r PreviewRequest) ToAllocation() (allocator.Request, error) {
	if err := r.Validate(); err != nil {
		return allocator.Request{}, err
	}
	start, err := calendar.Parse(r.StartDate)
	if err != nil {
		return allocator.Request{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := calendar.Parse(r.EndDate)
	if err != nil {
		return allocator.Request{}, fmt.Errorf("end_date: %w", err)
	}
	return allocator.Request{
		Total:       r.TotalWordCount,
		Start:       start,
		End:         end,
		Strategy:    domain.ParseStrategy(r.AlgorithmType),
		Intensity:   domain.ParseIntensity(r.StrategyIntensity),
		WeekendRule: domain.ParseWeekendRule(r.WeekendRule),
	}, nil
}

// PreviewResponse is what the preview caller renders: the schedule on
// success, or an error code and message.
type PreviewResponse struct {
	Success bool                    `json:"success"`
	Data    []allocator.DailyTarget `json:"data"`
	Total   int                     `json:"total"`
	Days    int                     `json:"days"`
	Code    ErrorCode               `json:"code,omitempty"`
	Message string                  `json:"message,omitempty"`
}

// NewPreviewResponse wraps a successful allocation.
func NewPreviewResponse(targets []allocator.DailyTarget) PreviewResponse {
	if targets == nil {
		targets = []allocator.DailyTarget{}
	}
	return PreviewResponse{
		Success: true,
		Data:    targets,
		Total:   allocator.Sum(targets),
		Days:    len(targets),
	}
}

// NewPreviewError wraps a failed allocation.
func NewPreviewError(err error) PreviewResponse {
	return PreviewResponse{
		Success: false,
		Data:    []allocator.DailyTarget{},
		Code:    CodeFor(err),
		Message: err.Error(),
	}
}

type ErrorCode string

const (
	ErrCodeInvalidRange       ErrorCode = "INVALID_RANGE"
	ErrCodeInvalidAmount      ErrorCode = "INVALID_AMOUNT"
	ErrCodeUnknownStrategy    ErrorCode = "UNKNOWN_STRATEGY"
	ErrCodeUnknownIntensity   ErrorCode = "UNKNOWN_INTENSITY"
	ErrCodeUnknownWeekendRule ErrorCode = "UNKNOWN_WEEKEND_RULE"
	ErrCodeRangeTooLarge      ErrorCode = "RANGE_TOO_LARGE"
	ErrCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
)

// CodeFor maps an allocation error onto its stable wire code.
func CodeFor(err error) ErrorCode {
	switch {
	case errors.Is(err, allocator.ErrInvalidRange):
		return ErrCodeInvalidRange
	case errors.Is(err, allocator.ErrInvalidAmount):
		return ErrCodeInvalidAmount
	case errors.Is(err, allocator.ErrUnknownStrategy):
		return ErrCodeUnknownStrategy
	case errors.Is(err, allocator.ErrUnknownIntensity):
		return ErrCodeUnknownIntensity
	case errors.Is(err, allocator.ErrUnknownWeekendRule):
		return ErrCodeUnknownWeekendRule
	case errors.Is(err, allocator.ErrRangeTooLarge):
		return ErrCodeRangeTooLarge
	default:
		return ErrCodeInvalidRequest
	}
}
