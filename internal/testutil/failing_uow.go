package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/wordplan/internal/db"
)

// FailingUoW runs callbacks in a real transaction but makes one write fail,
// so tests can check that a multi-write use case leaves nothing behind.
//
// A write fails when it is the FailOn-th ExecContext call (counted from 1) or
// when its SQL contains FailMatch. Reads are never intercepted.
type FailingUoW struct {
	DB        *sql.DB
	FailOn    int32
	FailMatch string
	Err       error

	execs atomic.Int32
}

// Execs reports how many writes the last callback attempted.
func (u *FailingUoW) Execs() int32 { return u.execs.Load() }

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	u.execs.Store(0)

	if fnErr := fn(ctx, &failingTx{DBTX: tx, uow: u}); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	uow *FailingUoW
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.uow.execs.Add(1)
	if n == f.uow.FailOn || (f.uow.FailMatch != "" && strings.Contains(query, f.uow.FailMatch)) {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
