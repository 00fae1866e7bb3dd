package sql

// Pseudo-column aliases carried by grouped result rows. Their names
// are part of the output contract: callers scan grouped rows by these
// exact keys.
const (
	CountAlias = "$count"
	DayAlias   = "$yearDay"
	WeekAlias  = "$yearWeek"
	MonthAlias = "$yearMonth"
	YearAlias  = "$year"
)

// groupKey is one GROUP BY entry: a bare column, or a date-bucketing
// expression with its fixed alias.
type groupKey struct {
	expr  string
	alias string
}

// Group builds a GROUP BY key list with optional date-truncation
// expressions. When at least one key is present, ProjectedColumns
// narrows the legal SELECT list to the keys plus a row-count
// pseudo-column; it is the single source of truth for the projection
// of a grouped query.
type Group struct {
	keys []groupKey
}

// NewGroup returns an empty grouping builder.
func NewGroup() *Group { return &Group{} }

// By appends a plain column key.
func (g *Group) By(column string) *Group {
	g.keys = append(g.keys, groupKey{expr: column})
	return g
}

// ByDay appends a key bucketing a temporal column by calendar day,
// aliased $yearDay.
func (g *Group) ByDay(column string) *Group {
	g.keys = append(g.keys, groupKey{
		expr:  "DATE_FORMAT(" + column + ", '%Y-%m-%d')",
		alias: DayAlias,
	})
	return g
}

// ByWeek appends a key bucketing a temporal column by year-week,
// aliased $yearWeek.
func (g *Group) ByWeek(column string) *Group {
	g.keys = append(g.keys, groupKey{
		expr:  "YEARWEEK(" + column + ")",
		alias: WeekAlias,
	})
	return g
}

// ByMonth appends a key bucketing a temporal column by year-month,
// aliased $yearMonth.
func (g *Group) ByMonth(column string) *Group {
	g.keys = append(g.keys, groupKey{
		expr:  "DATE_FORMAT(" + column + ", '%Y-%m')",
		alias: MonthAlias,
	})
	return g
}

// ByYear appends a key bucketing a temporal column by year, aliased
// $year.
func (g *Group) ByYear(column string) *Group {
	g.keys = append(g.keys, groupKey{
		expr:  "YEAR(" + column + ")",
		alias: YearAlias,
	})
	return g
}

// Empty reports whether no key has been appended.
func (g *Group) Empty() bool { return len(g.keys) == 0 }

// Reset clears all keys for reuse.
func (g *Group) Reset() *Group {
	g.keys = nil
	return g
}

// String renders `GROUP BY k1,k2 ...` in append order, or an empty
// string if no key was appended. Bucketed keys group by their alias.
func (g *Group) String() string {
	if len(g.keys) == 0 {
		return ""
	}
	b := &Builder{}
	b.WriteString("GROUP BY ")
	for i, k := range g.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		if k.alias != "" {
			b.Ident(k.alias)
		} else {
			b.Ident(k.expr)
		}
	}
	return b.String()
}

// ProjectedColumns returns the SELECT list a grouped query is allowed
// to carry. Without keys it is the wildcard projection. With keys it
// is a COUNT(*) pseudo-column aliased $count followed by each key's
// expression, aliased where an alias exists. Callers must not bypass
// it to select ungrouped columns.
func (g *Group) ProjectedColumns() []string {
	if len(g.keys) == 0 {
		return []string{"*"}
	}
	cols := make([]string, 0, len(g.keys)+1)
	cols = append(cols, "COUNT(*) AS "+quoteIdent(CountAlias))
	for _, k := range g.keys {
		if k.alias != "" {
			cols = append(cols, k.expr+" AS "+quoteIdent(k.alias))
		} else {
			cols = append(cols, k.expr)
		}
	}
	return cols
}
