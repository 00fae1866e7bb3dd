package sql

// TableView identifies one joinable table: its name, an optional
// source alias, and the column names known for it. Column names feed
// the wildcard expansion and the unqualified-column resolution of a
// join chain; a view with no known columns still joins, it just
// projects `name.*` and never matches unqualified resolution.
type TableView struct {
	name    string
	alias   string
	columns []string
}

// Table returns a view of the named table.
func Table(name string, columns ...string) *TableView {
	return &TableView{name: name, columns: columns}
}

// As sets the source alias used to reference the table.
func (t *TableView) As(alias string) *TableView {
	t.alias = alias
	return t
}

// Name returns the table name.
func (t *TableView) Name() string { return t.name }

// Ref returns the identifier other clauses reference the table by:
// its alias when set, its name otherwise.
func (t *TableView) Ref() string {
	if t.alias != "" {
		return t.alias
	}
	return t.name
}

// C returns the column qualified by the table reference.
func (t *TableView) C(column string) string {
	return t.Ref() + "." + column
}

// Columns returns the known column names.
func (t *TableView) Columns() []string { return t.columns }

func (t *TableView) hasColumn(name string) bool {
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

// JoinKind tags a join edge.
type JoinKind string

// Supported join kinds.
const (
	InnerJoin JoinKind = "INNER"
	LeftJoin  JoinKind = "LEFT"
	RightJoin JoinKind = "RIGHT"
	CrossJoin JoinKind = "CROSS"
)

// JoinKey is the caller-supplied descriptor of one side of a join:
// the column name and, optionally, an explicit table qualifier that
// overrides the planner's positional anchoring.
type JoinKey struct {
	Key   string
	Table string
}

// Key returns a JoinKey for the column, qualified positionally.
func Key(column string) JoinKey { return JoinKey{Key: column} }

// JoinEdge is one pairwise join: the kind, the two tables, and the
// key pair the ON condition equates.
type JoinEdge struct {
	kind     JoinKind
	left     *TableView
	right    *TableView
	leftKey  JoinKey
	rightKey JoinKey
}

// JoinChain is an ordered sequence of join edges forming one FROM
// clause. It is a strict path: edge i's right table is edge i+1's left
// table, each successive join anchoring to the immediately preceding
// table, never re-anchored to an earlier one. A chain is immutable
// once built; every Join call returns a new chain extending the
// receiver (structural sharing of the edge prefix is fine, mutation of
// a chain already handed out is not).
type JoinChain struct {
	base  *TableView
	edges []JoinEdge
}

// Chain starts a join chain at the given table.
func Chain(base *TableView) *JoinChain {
	return &JoinChain{base: base}
}

// Join extends the chain with an INNER join to t.
func (c *JoinChain) Join(t *TableView, left, right JoinKey) (*JoinChain, error) {
	return c.extend(InnerJoin, t, left, right)
}

// LeftJoinTo extends the chain with a LEFT join to t.
func (c *JoinChain) LeftJoinTo(t *TableView, left, right JoinKey) (*JoinChain, error) {
	return c.extend(LeftJoin, t, left, right)
}

// RightJoinTo extends the chain with a RIGHT join to t.
func (c *JoinChain) RightJoinTo(t *TableView, left, right JoinKey) (*JoinChain, error) {
	return c.extend(RightJoin, t, left, right)
}

// CrossJoinTo extends the chain with a CROSS join to t. The key pair
// is still required and renders as a uniform ON condition.
func (c *JoinChain) CrossJoinTo(t *TableView, left, right JoinKey) (*JoinChain, error) {
	return c.extend(CrossJoin, t, left, right)
}

// extend validates the key descriptors, anchors the new edge to the
// rightmost table of the chain, and returns a new chain.
func (c *JoinChain) extend(kind JoinKind, t *TableView, left, right JoinKey) (*JoinChain, error) {
	if left.Key == "" {
		return nil, &MissingJoinKeyError{Table: t.Name(), Side: "left"}
	}
	if right.Key == "" {
		return nil, &MissingJoinKeyError{Table: t.Name(), Side: "right"}
	}
	edge := JoinEdge{
		kind:     kind,
		left:     c.rightmost(),
		right:    t,
		leftKey:  left,
		rightKey: right,
	}
	return &JoinChain{
		base:  c.base,
		edges: append(c.edges[:len(c.edges):len(c.edges)], edge),
	}, nil
}

// rightmost returns the table a new edge anchors to: the right table
// of the last edge, or the sole base table of an unextended chain.
func (c *JoinChain) rightmost() *TableView {
	if n := len(c.edges); n > 0 {
		return c.edges[n-1].right
	}
	return c.base
}

// Tables returns every table of the chain in join order.
func (c *JoinChain) Tables() []*TableView {
	ts := make([]*TableView, 0, len(c.edges)+1)
	ts = append(ts, c.base)
	for i := range c.edges {
		ts = append(ts, c.edges[i].right)
	}
	return ts
}

// Len returns the number of join edges.
func (c *JoinChain) Len() int { return len(c.edges) }

// String linearizes the chain into the FROM-clause join text:
//
//	T0 INNER JOIN T1 ON T0.k0 = T1.k0 LEFT JOIN T2 ON T1.k1 = T2.k1 ...
func (c *JoinChain) String() string {
	b := &Builder{}
	b.WriteString(c.base.name)
	if c.base.alias != "" {
		b.WriteString(" AS ")
		b.WriteString(c.base.alias)
	}
	for i := range c.edges {
		e := &c.edges[i]
		b.WriteByte(' ')
		b.WriteString(string(e.kind))
		b.WriteString(" JOIN ")
		b.WriteString(e.right.name)
		if e.right.alias != "" {
			b.WriteString(" AS ")
			b.WriteString(e.right.alias)
		}
		b.WriteString(" ON ")
		b.WriteString(qualifyKey(e.leftKey, e.left))
		b.WriteString(" = ")
		b.WriteString(qualifyKey(e.rightKey, e.right))
	}
	return b.String()
}

// qualifyKey qualifies a join key by its explicit table when given,
// by the positionally anchored table otherwise.
func qualifyKey(k JoinKey, anchor *TableView) string {
	if k.Table != "" {
		return k.Table + "." + k.Key
	}
	return anchor.C(k.Key)
}

// Columns returns the projection of every table's column set,
// qualified by table reference, for use when no GROUP BY is active.
// Tables with unknown columns contribute a qualified wildcard.
func (c *JoinChain) Columns() []string {
	var cols []string
	for _, t := range c.Tables() {
		if len(t.columns) == 0 {
			cols = append(cols, t.Ref()+".*")
			continue
		}
		for _, col := range t.columns {
			cols = append(cols, t.C(col))
		}
	}
	return cols
}

// ResolveColumn qualifies a column name against the joined tables.
// An explicit table qualifies directly. Otherwise the name qualifies
// to the single table known to carry it. An ambiguous name is returned
// unchanged: the planner does not auto-resolve, callers must pass an
// explicit qualifier.
func (c *JoinChain) ResolveColumn(name, table string) string {
	if table != "" {
		return table + "." + name
	}
	var owner *TableView
	for _, t := range c.Tables() {
		if !t.hasColumn(name) {
			continue
		}
		if owner != nil {
			return name
		}
		owner = t
	}
	if owner == nil {
		return name
	}
	return owner.C(name)
}
