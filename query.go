package facet

import (
	"context"

	"github.com/facetdb/facet/dialect"
	"github.com/facetdb/facet/dialect/sql"
)

// Row is one result row keyed by projected column name. Grouped rows
// carry the $count pseudo-column and, when bucketed, one of $yearDay,
// $yearWeek, $yearMonth or $year.
type Row map[string]any

// Query builds and runs a read over a table or a join chain. All
// shaping happens synchronously on the calling goroutine; only Count,
// Get and All touch the driver.
type Query struct {
	drv   dialect.Driver
	table string
	sel   *sql.Selector
	where *sql.Where
	order *sql.Order
	group *sql.Group
	err   error
}

// Where exposes the predicate builder to the callback.
func (q *Query) Where(fn func(*sql.Where)) *Query {
	if fn != nil {
		fn(q.where)
	}
	return q
}

// Order exposes the ordering builder to the callback.
func (q *Query) Order(fn func(*sql.Order)) *Query {
	if fn != nil {
		fn(q.order)
	}
	return q
}

// Group exposes the grouping builder to the callback. While any group
// key is present the projection is narrowed to the group keys plus the
// $count pseudo-column.
func (q *Query) Group(fn func(*sql.Group)) *Query {
	if fn != nil {
		fn(q.group)
	}
	return q
}

// Columns overrides the projection of an ungrouped query.
func (q *Query) Columns(cols ...string) *Query {
	q.sel.Columns(cols...)
	return q
}

// Limit caps the number of returned rows.
func (q *Query) Limit(n int) *Query {
	q.sel.Limit(n)
	return q
}

// Offset skips the first n rows.
func (q *Query) Offset(n int) *Query {
	q.sel.Offset(n)
	return q
}

// Err returns the first build error recorded so far.
func (q *Query) Err() error {
	if q.err != nil {
		return q.err
	}
	return q.where.Err()
}

// Compile returns the SELECT statement and its ordered argument list
// without executing it.
func (q *Query) Compile() (string, []any, error) {
	if err := q.Err(); err != nil {
		return "", nil, err
	}
	query, args := q.sel.Query()
	return query, args, nil
}

// CompileCount returns the COUNT statement and its ordered argument
// list without executing it.
func (q *Query) CompileCount() (string, []any, error) {
	if err := q.Err(); err != nil {
		return "", nil, err
	}
	query, args := q.sel.CountQuery()
	return query, args, nil
}

// Count runs the row-count statement and returns the count.
func (q *Query) Count(ctx context.Context) (int64, error) {
	query, args, err := q.CompileCount()
	if err != nil {
		return 0, err
	}
	rows := &sql.Rows{}
	if err := q.drv.Query(ctx, query, args, rows); err != nil {
		return 0, err
	}
	defer rows.Close()
	if !rows.Next() {
		return 0, rows.Err()
	}
	var n int64
	if err := rows.Scan(&n); err != nil {
		return 0, err
	}
	return n, rows.Err()
}

// Get runs the statement capped to one row and returns it, or a
// NotFoundError when nothing matched.
func (q *Query) Get(ctx context.Context) (Row, error) {
	rows, err := q.Limit(1).All(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, NewNotFoundError(q.table)
	}
	return rows[0], nil
}

// All runs the statement and returns every matched row.
func (q *Query) All(ctx context.Context) ([]Row, error) {
	query, args, err := q.Compile()
	if err != nil {
		return nil, err
	}
	rows := &sql.Rows{}
	if err := q.drv.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	return scanRows(rows)
}

// scanRows drains the row set into Row maps. Byte slices are
// normalized to strings: drivers such as go-sql-driver/mysql report
// text columns as []byte and the facade's output contract is
// string-valued bucket fields.
func scanRows(rows *sql.Rows) ([]Row, error) {
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []Row
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				row[c] = string(b)
			} else {
				row[c] = vals[i]
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
