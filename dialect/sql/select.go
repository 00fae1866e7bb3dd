package sql

import "strings"

// Selector composes a predicate tree, an ordering spec, a grouping
// spec and a FROM source into a final SELECT or COUNT statement plus
// its flat argument list. It is a thin assembly layer: all clause
// semantics live in the builders it composes.
type Selector struct {
	from     string
	defaults []string
	columns  []string
	where    *Where
	order    *Order
	group    *Group
	limit    int
	offset   int
}

// SelectFrom returns a selector over a single table. Its default
// projection is the bare wildcard.
func SelectFrom(t *TableView) *Selector {
	s := &Selector{from: t.name, limit: -1, offset: -1}
	if t.alias != "" {
		s.from += " AS " + t.alias
	}
	return s
}

// SelectChain returns a selector over a join chain. Its default
// projection is every joined table's column set qualified by table,
// per JoinChain.Columns.
func SelectChain(c *JoinChain) *Selector {
	return &Selector{from: c.String(), defaults: c.Columns(), limit: -1, offset: -1}
}

// Columns overrides the projection. Ignored while grouping is active:
// a grouped query's legal projection comes from the grouping spec
// alone.
func (s *Selector) Columns(cols ...string) *Selector {
	s.columns = cols
	return s
}

// Where attaches the predicate tree.
func (s *Selector) Where(w *Where) *Selector {
	s.where = w
	return s
}

// Order attaches the ordering spec.
func (s *Selector) Order(o *Order) *Selector {
	s.order = o
	return s
}

// Group attaches the grouping spec.
func (s *Selector) Group(g *Group) *Selector {
	s.group = g
	return s
}

// Limit caps the number of returned rows.
func (s *Selector) Limit(n int) *Selector {
	s.limit = n
	return s
}

// Offset skips the first n rows.
func (s *Selector) Offset(n int) *Selector {
	s.offset = n
	return s
}

// projection returns the SELECT list. With an active grouping spec it
// is always the spec's ProjectedColumns; the accessor is the single
// source of truth there and explicit columns are not consulted.
func (s *Selector) projection() []string {
	if s.group != nil && !s.group.Empty() {
		return s.group.ProjectedColumns()
	}
	if len(s.columns) > 0 {
		return s.columns
	}
	if len(s.defaults) > 0 {
		return s.defaults
	}
	return []string{"*"}
}

// Query compiles the SELECT statement and its ordered argument list.
func (s *Selector) Query() (string, []any) {
	b := &Builder{}
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(s.projection(), ","))
	b.WriteString(" FROM ")
	b.WriteString(s.from)
	s.writeWhere(b)
	if s.group != nil && !s.group.Empty() {
		b.WriteByte(' ')
		b.WriteString(s.group.String())
	}
	if s.order != nil && !s.order.Empty() {
		b.WriteByte(' ')
		b.WriteString(s.order.String())
	}
	if s.limit >= 0 {
		b.WriteString(" LIMIT ")
		b.Int(s.limit)
	}
	if s.offset >= 0 {
		b.WriteString(" OFFSET ")
		b.Int(s.offset)
	}
	return b.Query()
}

// CountQuery compiles a row-count statement over the same FROM source
// and predicate tree, projecting a single $count column. Ordering and
// grouping specs do not participate.
func (s *Selector) CountQuery() (string, []any) {
	b := &Builder{}
	b.WriteString("SELECT COUNT(*) AS ")
	b.Ident(CountAlias)
	b.WriteString(" FROM ")
	b.WriteString(s.from)
	s.writeWhere(b)
	return b.Query()
}

func (s *Selector) writeWhere(b *Builder) {
	if s.where == nil {
		return
	}
	clause, args := s.where.Query()
	if clause == "" {
		return
	}
	b.WriteByte(' ')
	b.WriteString(clause)
	b.args = append(b.args, args...)
}
