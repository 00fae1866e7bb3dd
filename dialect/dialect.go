package dialect

import (
	"context"
)

// Dialect names for the supported database backends.
const (
	// MySQL is the dialect facet compiles statements for by default.
	MySQL = "mysql"
	// SQLite accepts the same ?-style positional placeholders as MySQL
	// and is used by the in-memory test suite.
	SQLite = "sqlite"
	// Postgres is recognized by the driver layer for connection
	// management only. Statement compilation targets ?-placeholders.
	Postgres = "postgres"
)

// ExecQuerier wraps the two standard database operations.
//
// The v argument of Exec is either nil or *sql.Result, and the
// v argument of Query is *sql.Rows (see dialect/sql).
type ExecQuerier interface {
	// Exec executes a statement that does not return rows.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a statement that returns rows.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the minimal execution collaborator the facade hands
// compiled (text, arguments) pairs to. Implementations are free to run
// any number of compiled statements concurrently over a shared pool;
// the clause-composition core imposes no ordering on execution.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	Tx(context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the driver dialect name.
	Dialect() string
}

// Tx is the transaction contract returned by Driver.Tx.
type Tx interface {
	ExecQuerier
	Commit() error
	Rollback() error
}

// nopTx combines a driver with no-op transaction methods. It is used
// by drivers that do not support transactions.
type nopTx struct {
	Driver
}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

// NopTx returns a Tx with a no-op Commit / Rollback.
func NopTx(d Driver) Tx {
	return nopTx{d}
}
