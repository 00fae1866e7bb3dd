// Package dialect defines the execution boundary of the facet facade.
//
// The clause-composition core in dialect/sql produces statement text
// with ?-style positional placeholders plus a flat ordered argument
// list. Everything past that point goes through the interfaces in this
// package, so callers can swap the execution layer (pooling, retry,
// instrumentation) without touching query building.
//
// # Driver Interface
//
// The Driver interface is the contract a facade Client is built on:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// The Tx interface extends ExecQuerier with Commit and Rollback.
//
// # Usage
//
//	import (
//	    "github.com/facetdb/facet/dialect"
//	    "github.com/facetdb/facet/dialect/sql"
//	)
//
//	drv, err := sql.Open(dialect.MySQL, "user:pass@tcp(localhost:3306)/chinook")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
// The dialect/sql sub-package provides the database/sql implementation
// of these interfaces together with the query builders.
package dialect
