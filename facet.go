// Package facet is a per-table data-access facade. A Client built on a
// dialect.Driver hands out table contexts whose chained builder calls
// compile to parameterized SQL text plus a flat ordered argument list;
// the compiled pair is then executed through the driver. All query
// shaping errors are raised at build time, before anything touches the
// database.
package facet

import (
	"context"
	"fmt"
	"sort"

	"github.com/facetdb/facet/dialect"
	"github.com/facetdb/facet/dialect/sql"
	"github.com/facetdb/facet/schema"
)

// Client is the entry point of the facade. It is safe for concurrent
// use: every query build creates fresh builder state, only the driver
// is shared.
type Client struct {
	drv    dialect.Driver
	strict bool
}

// Option configures a Client.
type Option func(*Client)

// Strict makes predicate builders handed out by this client record an
// error on condition calls missing their column or value, instead of
// the default tolerant no-op.
func Strict() Option {
	return func(c *Client) { c.strict = true }
}

// NewClient returns a client executing through the given driver.
func NewClient(drv dialect.Driver, opts ...Option) *Client {
	c := &Client{drv: drv}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Driver returns the underlying driver.
func (c *Client) Driver() dialect.Driver { return c.drv }

// Close closes the underlying driver.
func (c *Client) Close() error { return c.drv.Close() }

// Table returns a context for the named table. Optional column names
// feed join ambiguity resolution and wildcard expansion; they can also
// be introspected with Describe. An invalid table name poisons the
// context: every operation on it fails with the validation error.
func (c *Client) Table(name string, columns ...string) *Context {
	t := &Context{client: c, view: sql.Table(name, columns...)}
	if !sql.IsValidIdent(name) {
		t.err = fmt.Errorf("facet: invalid table name %q", name)
	}
	return t
}

// TableOf returns a context for a described or YAML-loaded table.
func (c *Client) TableOf(desc schema.Table) *Context {
	return c.Table(desc.Name, desc.Columns...)
}

// Describe introspects the named table through the driver and returns
// a context carrying its column set.
func (c *Client) Describe(ctx context.Context, name string) (*Context, error) {
	desc, err := schema.Describe(ctx, c.drv, name)
	if err != nil {
		return nil, err
	}
	return c.TableOf(desc), nil
}

// Context is a single-table query-building context. It is created
// fresh per use and must not be shared across concurrent query builds.
type Context struct {
	client *Client
	view   *sql.TableView
	err    error
}

// Name returns the table name.
func (t *Context) Name() string { return t.view.Name() }

// View returns the underlying table view.
func (t *Context) View() *sql.TableView { return t.view }

// Err returns the context's validation error, if any.
func (t *Context) Err() error { return t.err }

// Query starts building a read over the table.
func (t *Context) Query() *Query {
	q := &Query{
		drv:   t.client.drv,
		table: t.view.Name(),
		sel:   sql.SelectFrom(t.view),
		where: newWhere(t.client.strict),
		order: sql.NewOrder(),
		group: sql.NewGroup(),
		err:   t.err,
	}
	q.sel.Where(q.where).Order(q.order).Group(q.group)
	return q
}

// Insert inserts one row from the given column/value set and returns
// the driver result. Columns render in sorted order so the compiled
// statement is deterministic.
func (t *Context) Insert(ctx context.Context, values map[string]any) (sql.Result, error) {
	if t.err != nil {
		return nil, t.err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("facet: insert into %s: no values", t.view.Name())
	}
	ib := sql.Insert(t.view.Name())
	for _, col := range sortedKeys(values) {
		ib.Set(col, values[col])
	}
	query, args := ib.Query()
	var res sql.Result
	if err := t.client.drv.Exec(ctx, query, args, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// Update applies the column/value set to the rows matched by the
// predicate and returns the affected row count. An empty predicate
// tree fails with ErrUnfilteredMutation: the tolerant no-op behavior
// of condition calls means a typo'd filter would otherwise update the
// whole table.
func (t *Context) Update(ctx context.Context, values map[string]any, where func(*sql.Where)) (int64, error) {
	if t.err != nil {
		return 0, t.err
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("facet: update %s: no values", t.view.Name())
	}
	w, err := t.buildWhere(where)
	if err != nil {
		return 0, err
	}
	ub := sql.Update(t.view.Name()).Where(w)
	for _, col := range sortedKeys(values) {
		ub.Set(col, values[col])
	}
	if !ub.Filtered() {
		return 0, ErrUnfilteredMutation
	}
	query, args := ub.Query()
	return t.exec(ctx, query, args)
}

// Delete removes the rows matched by the predicate and returns the
// affected row count. An empty predicate tree fails with
// ErrUnfilteredMutation; use Truncate to clear a table.
func (t *Context) Delete(ctx context.Context, where func(*sql.Where)) (int64, error) {
	if t.err != nil {
		return 0, t.err
	}
	w, err := t.buildWhere(where)
	if err != nil {
		return 0, err
	}
	db := sql.Delete(t.view.Name()).Where(w)
	if !db.Filtered() {
		return 0, ErrUnfilteredMutation
	}
	query, args := db.Query()
	return t.exec(ctx, query, args)
}

// Truncate clears the table.
func (t *Context) Truncate(ctx context.Context) error {
	if t.err != nil {
		return t.err
	}
	query, args := sql.Truncate(t.view.Name())
	return t.client.drv.Exec(ctx, query, args, nil)
}

func (t *Context) buildWhere(where func(*sql.Where)) (*sql.Where, error) {
	w := newWhere(t.client.strict)
	if where != nil {
		where(w)
	}
	return w, w.Err()
}

func (t *Context) exec(ctx context.Context, query string, args []any) (int64, error) {
	var res sql.Result
	if err := t.client.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func newWhere(strict bool) *sql.Where {
	w := sql.NewWhere()
	if strict {
		w.Strict()
	}
	return w
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
