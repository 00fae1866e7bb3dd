// Package schema provides the table descriptors the facade's join
// planner consumes: a table name plus its column names. Descriptors
// come from live introspection (a DESCRIBE query through the execution
// driver) or from YAML files for offline use.
package schema

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/facetdb/facet/dialect"
	"github.com/facetdb/facet/dialect/sql"
)

// Table describes one table: its name and column names. Column order
// follows the source (DESCRIBE order, or file order).
type Table struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
}

// Column reports whether the table carries the named column.
func (t Table) Column(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Describe introspects the named table with a DESCRIBE query. The
// table name is interpolated into the statement text, so it is
// validated first.
func Describe(ctx context.Context, drv dialect.Driver, table string) (Table, error) {
	if !sql.IsValidIdent(table) {
		return Table{}, fmt.Errorf("schema: invalid table name %q", table)
	}
	rows := &sql.Rows{}
	if err := drv.Query(ctx, "DESCRIBE "+table, []any{}, rows); err != nil {
		return Table{}, fmt.Errorf("schema: describe %s: %w", table, err)
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return Table{}, fmt.Errorf("schema: describe %s: %w", table, err)
	}
	t := Table{Name: table}
	for rows.Next() {
		// Only the first column (Field) matters; DESCRIBE also
		// reports Type, Null, Key, Default and Extra.
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return Table{}, fmt.Errorf("schema: describe %s: %w", table, err)
		}
		switch f := vals[0].(type) {
		case string:
			t.Columns = append(t.Columns, f)
		case []byte:
			t.Columns = append(t.Columns, string(f))
		default:
			return Table{}, fmt.Errorf("schema: describe %s: unexpected field type %T", table, vals[0])
		}
	}
	if err := rows.Err(); err != nil {
		return Table{}, fmt.Errorf("schema: describe %s: %w", table, err)
	}
	return t, nil
}

// DescribeAll introspects the named tables concurrently and returns
// their descriptors in argument order.
func DescribeAll(ctx context.Context, drv dialect.Driver, tables ...string) ([]Table, error) {
	out := make([]Table, len(tables))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range tables {
		g.Go(func() error {
			t, err := Describe(ctx, drv, name)
			if err != nil {
				return err
			}
			out[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// FromYAML reads table descriptors from a YAML document of the form:
//
//	tables:
//	  - name: Artist
//	    columns: [ArtistId, Name]
func FromYAML(r io.Reader) ([]Table, error) {
	var doc struct {
		Tables []Table `yaml:"tables"`
	}
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("schema: decode yaml: %w", err)
	}
	for _, t := range doc.Tables {
		if !sql.IsValidIdent(t.Name) {
			return nil, fmt.Errorf("schema: invalid table name %q", t.Name)
		}
	}
	return doc.Tables, nil
}
