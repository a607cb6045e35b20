package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/db"
	"github.com/alexanderramin/wordplan/internal/domain"
)

type SQLitePlanDayRepo struct {
	db db.DBTX
}

func NewSQLitePlanDayRepo(conn db.DBTX) *SQLitePlanDayRepo {
	return &SQLitePlanDayRepo{db: conn}
}

func (r *SQLitePlanDayRepo) UpsertTargets(ctx context.Context, planID string, days []domain.PlanDay) error {
	query := `INSERT INTO plan_days (plan_id, date, target, logged, updated_at)
		VALUES (?, ?, ?, 0, ?)
		ON CONFLICT(plan_id, date) DO UPDATE SET
			target = excluded.target,
			updated_at = excluded.updated_at`
	now := nowUTC()
	for _, d := range days {
		if _, err := r.db.ExecContext(ctx, query, planID, d.Date.String(), d.Target, now); err != nil {
			return fmt.Errorf("upserting plan day %s: %w", d.Date, err)
		}
	}
	return nil
}

func (r *SQLitePlanDayRepo) DeleteOutside(ctx context.Context, planID string, start, end calendar.Date) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM plan_days WHERE plan_id = ? AND (date < ? OR date > ?)`,
		planID, start.String(), end.String())
	if err != nil {
		return 0, fmt.Errorf("deleting plan days outside range: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking affected rows: %w", err)
	}
	return n, nil
}

func (r *SQLitePlanDayRepo) Get(ctx context.Context, planID string, date calendar.Date) (*domain.PlanDay, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT plan_id, date, target, logged, updated_at FROM plan_days WHERE plan_id = ? AND date = ?`,
		planID, date.String())
	d, err := scanPlanDay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plan day %s/%s: %w", planID, date, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *SQLitePlanDayRepo) ListByPlan(ctx context.Context, planID string) ([]domain.PlanDay, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT plan_id, date, target, logged, updated_at FROM plan_days WHERE plan_id = ? ORDER BY date`,
		planID)
	if err != nil {
		return nil, fmt.Errorf("listing plan days: %w", err)
	}
	defer rows.Close()

	var days []domain.PlanDay
	for rows.Next() {
		d, err := scanPlanDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan days: %w", err)
	}
	return days, nil
}

func (r *SQLitePlanDayRepo) SetLogged(ctx context.Context, planID string, date calendar.Date, amount int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE plan_days SET logged = ?, updated_at = ? WHERE plan_id = ? AND date = ?`,
		amount, nowUTC(), planID, date.String())
	if err != nil {
		return fmt.Errorf("setting logged amount: %w", err)
	}
	return requireAffected(res, "plan day", planID+"/"+date.String())
}

// AddLogged increments the logged amount and returns the new value.
func (r *SQLitePlanDayRepo) AddLogged(ctx context.Context, planID string, date calendar.Date, delta int) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE plan_days SET logged = logged + ?, updated_at = ? WHERE plan_id = ? AND date = ?`,
		delta, nowUTC(), planID, date.String())
	if err != nil {
		return 0, fmt.Errorf("adding logged amount: %w", err)
	}
	if err := requireAffected(res, "plan day", planID+"/"+date.String()); err != nil {
		return 0, err
	}
	d, err := r.Get(ctx, planID, date)
	if err != nil {
		return 0, err
	}
	return d.Logged, nil
}

func scanPlanDay(s scanner) (domain.PlanDay, error) {
	var d domain.PlanDay
	var dateStr, updatedStr string
	if err := s.Scan(&d.PlanID, &dateStr, &d.Target, &d.Logged, &updatedStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return d, err
		}
		return d, fmt.Errorf("scanning plan day: %w", err)
	}
	var err error
	if d.Date, err = parseDate("date", dateStr); err != nil {
		return d, err
	}
	if d.UpdatedAt, err = parseTimestamp("updated_at", updatedStr); err != nil {
		return d, err
	}
	return d, nil
}
