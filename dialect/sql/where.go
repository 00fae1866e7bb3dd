package sql

// Op represents a predicate operator.
type Op int

// Predicate operators.
const (
	OpEQ      Op = iota // =
	OpNEQ               // <>
	OpLT                // <
	OpLTE               // <=
	OpGT                // >
	OpGTE               // >=
	OpIn                // IN
	OpNotIn             // NOT IN
	OpIsNull            // IS NULL
	OpNotNull           // IS NOT NULL
)

var opText = [...]string{
	OpEQ:      "=",
	OpNEQ:     "<>",
	OpLT:      "<",
	OpLTE:     "<=",
	OpGT:      ">",
	OpGTE:     ">=",
	OpIn:      "IN",
	OpNotIn:   "NOT IN",
	OpIsNull:  "IS NULL",
	OpNotNull: "IS NOT NULL",
}

// String returns the SQL text of the operator.
func (o Op) String() string { return opText[o] }

// conn is the boolean keyword attaching a predicate to its
// predecessor. The first node of a tree renders without one.
type conn int

const (
	connNone conn = iota
	connAnd
	connOr
)

var connText = [...]string{connNone: "", connAnd: "AND", connOr: "OR"}

// predicate is one node of the WHERE tree: an atomic condition plus
// its connector, negation and optional nested group. A node with an
// empty column is a pure group and renders only its children.
type predicate struct {
	column   string
	op       Op
	values   []any
	conn     conn
	negated  bool
	children []*predicate
}

// Where builds a WHERE clause predicate tree from chained condition
// calls and compiles it to (text, positional arguments).
//
// A condition call missing its column, or missing a required value, is
// a tolerated no-op by default: the builder is returned unchanged and
// callers that require a non-trivial filter must check Empty()
// themselves. Strict() switches the instance to recording such calls
// as an error instead, retrievable via Err().
//
// A fresh instance is created per query build; instances are never
// shared across goroutines and need no locking.
type Where struct {
	nodes      []*predicate
	pendingNot bool
	strict     bool
	err        error
}

// NewWhere returns an empty predicate builder.
func NewWhere() *Where { return &Where{} }

// Strict makes condition calls with a missing column or value record a
// ConditionError instead of silently doing nothing.
func (w *Where) Strict() *Where {
	w.strict = true
	return w
}

// Err returns the first validation error recorded in strict mode.
func (w *Where) Err() error { return w.err }

// Empty reports whether no condition has been appended.
func (w *Where) Empty() bool { return len(w.nodes) == 0 }

// Reset clears the accumulated tree and any recorded error for reuse.
// Strict mode is configuration and survives a reset.
func (w *Where) Reset() *Where {
	w.nodes = nil
	w.pendingNot = false
	w.err = nil
	return w
}

// Not sets the negation flag consumed by exactly the next appended
// condition. With a callback, the callback is invoked against this
// same builder and the entire tree accumulated so far is wrapped in a
// single NOT (...) group instead.
func (w *Where) Not(nested ...func(*Where)) *Where {
	if len(nested) > 0 && nested[0] != nil {
		nested[0](w)
		w.pendingNot = false
		if len(w.nodes) > 0 {
			w.nodes = []*predicate{{negated: true, children: w.nodes}}
		}
		return w
	}
	w.pendingNot = true
	return w
}

// Equals appends `column = ?` with an AND connector.
func (w *Where) Equals(column string, v any, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpEQ, column, []any{v}, nested)
}

// AndEquals is an explicit-AND alias for Equals.
func (w *Where) AndEquals(column string, v any, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpEQ, column, []any{v}, nested)
}

// OrEquals appends `column = ?` with an OR connector.
func (w *Where) OrEquals(column string, v any, nested ...func(*Where)) *Where {
	return w.add(connOr, OpEQ, column, []any{v}, nested)
}

// NotEquals appends `column <> ?` with an AND connector.
func (w *Where) NotEquals(column string, v any, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpNEQ, column, []any{v}, nested)
}

// AndNotEquals is an explicit-AND alias for NotEquals.
func (w *Where) AndNotEquals(column string, v any, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpNEQ, column, []any{v}, nested)
}

// OrNotEquals appends `column <> ?` with an OR connector.
func (w *Where) OrNotEquals(column string, v any, nested ...func(*Where)) *Where {
	return w.add(connOr, OpNEQ, column, []any{v}, nested)
}

// LessThan appends `column < ?` with an AND connector.
func (w *Where) LessThan(column string, v any, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpLT, column, []any{v}, nested)
}

// AndLessThan is an explicit-AND alias for LessThan.
func (w *Where) AndLessThan(column string, v any, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpLT, column, []any{v}, nested)
}

// OrLessThan appends `column < ?` with an OR connector.
func (w *Where) OrLessThan(column string, v any, nested ...func(*Where)) *Where {
	return w.add(connOr, OpLT, column, []any{v}, nested)
}

// LessThanOrEqualTo appends `column <= ?` with an AND connector.
func (w *Where) LessThanOrEqualTo(column string, v any, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpLTE, column, []any{v}, nested)
}

// AndLessThanOrEqualTo is an explicit-AND alias for LessThanOrEqualTo.
func (w *Where) AndLessThanOrEqualTo(column string, v any, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpLTE, column, []any{v}, nested)
}

// OrLessThanOrEqualTo appends `column <= ?` with an OR connector.
func (w *Where) OrLessThanOrEqualTo(column string, v any, nested ...func(*Where)) *Where {
	return w.add(connOr, OpLTE, column, []any{v}, nested)
}

// GreaterThan appends `column > ?` with an AND connector.
func (w *Where) GreaterThan(column string, v any, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpGT, column, []any{v}, nested)
}

// AndGreaterThan is an explicit-AND alias for GreaterThan.
func (w *Where) AndGreaterThan(column string, v any, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpGT, column, []any{v}, nested)
}

// OrGreaterThan appends `column > ?` with an OR connector.
func (w *Where) OrGreaterThan(column string, v any, nested ...func(*Where)) *Where {
	return w.add(connOr, OpGT, column, []any{v}, nested)
}

// GreaterThanOrEqualTo appends `column >= ?` with an AND connector.
func (w *Where) GreaterThanOrEqualTo(column string, v any, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpGTE, column, []any{v}, nested)
}

// AndGreaterThanOrEqualTo is an explicit-AND alias for GreaterThanOrEqualTo.
func (w *Where) AndGreaterThanOrEqualTo(column string, v any, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpGTE, column, []any{v}, nested)
}

// OrGreaterThanOrEqualTo appends `column >= ?` with an OR connector.
func (w *Where) OrGreaterThanOrEqualTo(column string, v any, nested ...func(*Where)) *Where {
	return w.add(connOr, OpGTE, column, []any{v}, nested)
}

// In appends `column IN (?,...)` with an AND connector.
func (w *Where) In(column string, vs []any, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpIn, column, vs, nested)
}

// AndIn is an explicit-AND alias for In.
func (w *Where) AndIn(column string, vs []any, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpIn, column, vs, nested)
}

// OrIn appends `column IN (?,...)` with an OR connector.
func (w *Where) OrIn(column string, vs []any, nested ...func(*Where)) *Where {
	return w.add(connOr, OpIn, column, vs, nested)
}

// NotIn appends `column NOT IN (?,...)` with an AND connector.
func (w *Where) NotIn(column string, vs []any, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpNotIn, column, vs, nested)
}

// AndNotIn is an explicit-AND alias for NotIn.
func (w *Where) AndNotIn(column string, vs []any, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpNotIn, column, vs, nested)
}

// OrNotIn appends `column NOT IN (?,...)` with an OR connector.
func (w *Where) OrNotIn(column string, vs []any, nested ...func(*Where)) *Where {
	return w.add(connOr, OpNotIn, column, vs, nested)
}

// IsNull appends `column IS NULL` with an AND connector.
func (w *Where) IsNull(column string, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpIsNull, column, nil, nested)
}

// AndIsNull is an explicit-AND alias for IsNull.
func (w *Where) AndIsNull(column string, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpIsNull, column, nil, nested)
}

// OrIsNull appends `column IS NULL` with an OR connector.
func (w *Where) OrIsNull(column string, nested ...func(*Where)) *Where {
	return w.add(connOr, OpIsNull, column, nil, nested)
}

// IsNotNull appends `column IS NOT NULL` with an AND connector.
func (w *Where) IsNotNull(column string, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpNotNull, column, nil, nested)
}

// AndIsNotNull is an explicit-AND alias for IsNotNull.
func (w *Where) AndIsNotNull(column string, nested ...func(*Where)) *Where {
	return w.add(connAnd, OpNotNull, column, nil, nested)
}

// OrIsNotNull appends `column IS NOT NULL` with an OR connector.
func (w *Where) OrIsNotNull(column string, nested ...func(*Where)) *Where {
	return w.add(connOr, OpNotNull, column, nil, nested)
}

func (w *Where) add(cn conn, op Op, column string, values []any, nested []func(*Where)) *Where {
	if !validCondition(op, column, values) {
		if w.strict && w.err == nil {
			w.err = &ConditionError{Column: column, Op: op}
		}
		return w
	}
	// The connector is kept even at position 0: whether it renders is
	// decided per tree (renderPredicates leadConn), since a nested
	// group's first node still attaches to its owning condition.
	n := &predicate{column: column, op: op, values: values, conn: cn}
	if w.pendingNot {
		n.negated = true
		w.pendingNot = false
	}
	if len(nested) > 0 && nested[0] != nil {
		child := &Where{strict: w.strict}
		nested[0](child)
		n.children = child.nodes
		if child.err != nil && w.err == nil {
			w.err = child.err
		}
	}
	w.nodes = append(w.nodes, n)
	return w
}

// validCondition reports whether the call carries everything its
// operator needs: a column always, a non-nil value for scalar
// operators, and at least one value for IN / NOT IN. Null-check
// operators take no value.
func validCondition(op Op, column string, values []any) bool {
	if column == "" {
		return false
	}
	switch op {
	case OpIsNull, OpNotNull:
		return true
	case OpIn, OpNotIn:
		return len(values) > 0
	default:
		return len(values) == 1 && values[0] != nil
	}
}

// String returns the compiled clause text, including the leading WHERE
// keyword, or an empty string if no condition was appended.
func (w *Where) String() string {
	q, _ := w.Query()
	return q
}

// Query compiles the predicate tree. The returned argument list is
// flat and ordered: read left to right over the text, the i-th
// placeholder binds the i-th argument, including arguments produced
// inside nested groups at the position their node appears.
func (w *Where) Query() (string, []any) {
	if len(w.nodes) == 0 {
		return "", nil
	}
	b := &Builder{}
	b.WriteString("WHERE ")
	renderPredicates(b, w.nodes, false)
	return b.Query()
}

// renderPredicates writes a node list. leadConn controls whether the
// first node renders its connector keyword: the root tree and a whole-
// tree NOT group open bare, while a nested callback group attaches to
// the text of its owning node and keeps it.
func renderPredicates(b *Builder, nodes []*predicate, leadConn bool) {
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i > 0 || leadConn {
			b.WriteString(connText[n.conn])
			b.WriteByte(' ')
		}
		renderPredicate(b, n)
	}
}

func renderPredicate(b *Builder, n *predicate) {
	if n.negated {
		b.WriteString("NOT ")
	}
	if n.column == "" {
		b.WriteByte('(')
		renderPredicates(b, n.children, false)
		b.WriteByte(')')
		return
	}
	grouped := len(n.children) > 0
	if grouped {
		b.WriteByte('(')
	}
	b.Ident(n.column)
	switch n.op {
	case OpIsNull, OpNotNull:
		b.WriteByte(' ')
		b.WriteString(n.op.String())
	case OpIn, OpNotIn:
		b.WriteByte(' ')
		b.WriteString(n.op.String())
		b.WriteString(" (")
		b.Args(n.values...)
		b.WriteByte(')')
	default:
		b.WriteByte(' ')
		b.WriteString(n.op.String())
		b.WriteByte(' ')
		b.Arg(n.values[0])
	}
	if grouped {
		b.WriteByte(' ')
		renderPredicates(b, n.children, true)
		b.WriteByte(')')
	}
}
