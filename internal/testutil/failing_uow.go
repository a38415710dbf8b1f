package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/alexanderramin/ganttplan/internal/db"
)

// FailOnNthExecUoW runs transactions like the SQLite unit of work but makes
// the FailOn-th write of each transaction return Err. Batch saves (reorder,
// stage diff, reset, import) write one row per statement, so this lands a
// failure in the middle of a batch.
//
// Writes are counted from 1 per transaction. Reads are never failed.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error

	mu     sync.Mutex
	failed []string
}

// Failed returns the statements that were refused, in order.
func (u *FailOnNthExecUoW) Failed() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.failed...)
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, &failingTx{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (u *FailOnNthExecUoW) refuse(query string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.failed = append(u.failed, query)
}

type failingTx struct {
	db.DBTX
	uow    *FailOnNthExecUoW
	writes int
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.writes++
	if f.writes == f.uow.FailOn {
		f.uow.refuse(query)
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
