package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wordplan/internal/db"
	"github.com/alexanderramin/wordplan/internal/domain"
)

type SQLitePlanRepo struct {
	db db.DBTX
}

func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

const planColumns = `id, owner_id, name, content_type, activity_type, start_date, end_date,
	goal_amount, strategy, intensity, weekend_rule, display_settings,
	status, archived_at, created_at, updated_at`

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	settings, err := domain.MarshalSettings(p.DisplaySettings)
	if err != nil {
		return err
	}
	query := `INSERT INTO plans (` + planColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.OwnerID,
		p.Name,
		p.ContentType,
		p.ActivityType,
		p.StartDate.String(),
		p.EndDate.String(),
		p.GoalAmount,
		string(p.Strategy),
		string(p.Intensity),
		string(p.WeekendRule),
		settings,
		string(p.Status),
		nullableTimeToString(p.ArchivedAt, time.RFC3339),
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans WHERE id = ?`, id)
	p, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plan %s: %w", id, domain.ErrNotFound)
	}
	return p, err
}

func (r *SQLitePlanRepo) GetByPrefix(ctx context.Context, prefix string) (*domain.Plan, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, fmt.Errorf("plan id is required")
	}
	// LIKE wildcards in user input would widen the match.
	if strings.ContainsAny(prefix, "%_") {
		return r.GetByID(ctx, prefix)
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+planColumns+` FROM plans WHERE id LIKE ? ORDER BY created_at LIMIT 2`, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("resolving plan %s: %w", prefix, err)
	}
	defer rows.Close()

	var found []*domain.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("plan %s: %w", prefix, domain.ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("plan %s: %w", prefix, domain.ErrAmbiguousID)
	}
}

func (r *SQLitePlanRepo) List(ctx context.Context, f PlanFilter) ([]*domain.Plan, error) {
	var (
		where []string
		args  []any
	)
	if f.OwnerID != "" {
		where = append(where, "owner_id = ?")
		args = append(args, f.OwnerID)
	}
	if !f.IncludeArchived {
		where = append(where, "archived_at IS NULL")
	}
	query := `SELECT ` + planColumns + ` FROM plans`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY start_date, created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

func (r *SQLitePlanRepo) Update(ctx context.Context, p *domain.Plan) error {
	settings, err := domain.MarshalSettings(p.DisplaySettings)
	if err != nil {
		return err
	}
	query := `UPDATE plans SET owner_id = ?, name = ?, content_type = ?, activity_type = ?,
		start_date = ?, end_date = ?, goal_amount = ?, strategy = ?, intensity = ?,
		weekend_rule = ?, display_settings = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.OwnerID,
		p.Name,
		p.ContentType,
		p.ActivityType,
		p.StartDate.String(),
		p.EndDate.String(),
		p.GoalAmount,
		string(p.Strategy),
		string(p.Intensity),
		string(p.WeekendRule),
		settings,
		formatTimestamp(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	return requireAffected(res, "plan", p.ID)
}

func (r *SQLitePlanRepo) Archive(ctx context.Context, id string) error {
	now := nowUTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE plans SET status = 'archived', archived_at = ?, updated_at = ? WHERE id = ?`, now, now, id)
	if err != nil {
		return fmt.Errorf("archiving plan: %w", err)
	}
	return requireAffected(res, "plan", id)
}

func (r *SQLitePlanRepo) Unarchive(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE plans SET status = 'active', archived_at = NULL, updated_at = ? WHERE id = ?`, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("unarchiving plan: %w", err)
	}
	return requireAffected(res, "plan", id)
}

// Delete removes the plan; its day rows go with it through ON DELETE CASCADE.
func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return requireAffected(res, "plan", id)
}

func scanPlan(s scanner) (*domain.Plan, error) {
	var p domain.Plan
	var startStr, endStr, strategy, intensity, rule, settings, status, createdStr, updatedStr string
	var archivedStr sql.NullString

	err := s.Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.ContentType, &p.ActivityType,
		&startStr, &endStr, &p.GoalAmount,
		&strategy, &intensity, &rule, &settings,
		&status, &archivedStr, &createdStr, &updatedStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}

	p.Strategy = domain.Strategy(strategy)
	p.Intensity = domain.Intensity(intensity)
	p.WeekendRule = domain.WeekendRule(rule)
	p.Status = domain.PlanStatus(status)
	p.ArchivedAt = parseNullableTime(archivedStr, time.RFC3339)

	if p.StartDate, err = parseDate("start_date", startStr); err != nil {
		return nil, err
	}
	if p.EndDate, err = parseDate("end_date", endStr); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTimestamp("created_at", createdStr); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTimestamp("updated_at", updatedStr); err != nil {
		return nil, err
	}
	if p.DisplaySettings, err = domain.UnmarshalSettings(settings); err != nil {
		return nil, err
	}
	return &p, nil
}

func requireAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return nil
}
