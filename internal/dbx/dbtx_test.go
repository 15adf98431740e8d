package dbx

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync/atomic"
	"testing"
)

// stubDriver is a minimal driver that only supports transactions, recording
// commits and rollbacks. Enough to exercise WithTx without a real database.
type stubDriver struct{}

var (
	commits   atomic.Int64
	rollbacks atomic.Int64
)

func (stubDriver) Open(string) (driver.Conn, error) { return stubConn{}, nil }

type stubConn struct{}

func (stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (stubConn) Close() error                        { return nil }
func (stubConn) Begin() (driver.Tx, error)           { return stubTx{}, nil }

type stubTx struct{}

func (stubTx) Commit() error   { commits.Add(1); return nil }
func (stubTx) Rollback() error { rollbacks.Add(1); return nil }

func init() {
	sql.Register("dbxstub", stubDriver{})
}

func openStub(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("dbxstub", "")
	if err != nil {
		t.Fatalf("open stub db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db := openStub(t)
	before := commits.Load()

	var gotTx DBTX
	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		gotTx = tx
		return nil
	})
	if err != nil {
		t.Fatalf("WithTx error: %v", err)
	}
	if gotTx == nil {
		t.Fatalf("fn was not called with a transaction")
	}
	if commits.Load() != before+1 {
		t.Fatalf("expected one commit")
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := openStub(t)
	before := rollbacks.Load()

	boom := errors.New("boom")
	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if rollbacks.Load() != before+1 {
		t.Fatalf("expected one rollback")
	}
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := openStub(t)
	before := rollbacks.Load()

	defer func() {
		if p := recover(); p == nil {
			t.Fatalf("expected panic to be rethrown")
		}
		if rollbacks.Load() != before+1 {
			t.Fatalf("expected one rollback after panic")
		}
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		panic("kaboom")
	})
}
