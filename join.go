package facet

import (
	"context"

	"github.com/facetdb/facet/dialect/sql"
)

// JoinContext is a query-building context over a composed join chain.
// It exposes the same read surface as a single-table context and
// refuses every mutation: a join chain has no single target table.
//
// Each join call returns a new context extending the chain; contexts
// already handed out are never mutated.
type JoinContext struct {
	client *Client
	chain  *sql.JoinChain
}

// Join composes an INNER join between this table and the right one,
// equating the two key descriptors. Either key missing its column
// fails immediately with a MissingJoinKeyError.
func (t *Context) Join(right *Context, leftKey, rightKey sql.JoinKey) (*JoinContext, error) {
	return t.join(right, leftKey, rightKey, sql.InnerJoin)
}

// LeftJoin composes a LEFT join, see Join.
func (t *Context) LeftJoin(right *Context, leftKey, rightKey sql.JoinKey) (*JoinContext, error) {
	return t.join(right, leftKey, rightKey, sql.LeftJoin)
}

// RightJoin composes a RIGHT join, see Join.
func (t *Context) RightJoin(right *Context, leftKey, rightKey sql.JoinKey) (*JoinContext, error) {
	return t.join(right, leftKey, rightKey, sql.RightJoin)
}

// CrossJoin composes a CROSS join, see Join.
func (t *Context) CrossJoin(right *Context, leftKey, rightKey sql.JoinKey) (*JoinContext, error) {
	return t.join(right, leftKey, rightKey, sql.CrossJoin)
}

func (t *Context) join(right *Context, leftKey, rightKey sql.JoinKey, kind sql.JoinKind) (*JoinContext, error) {
	if t.err != nil {
		return nil, t.err
	}
	if right.err != nil {
		return nil, right.err
	}
	return (&JoinContext{client: t.client, chain: sql.Chain(t.view)}).extend(right, leftKey, rightKey, kind)
}

// Join extends the chain with an INNER join to the right table. The
// new edge anchors to the rightmost table of the existing chain.
func (j *JoinContext) Join(right *Context, leftKey, rightKey sql.JoinKey) (*JoinContext, error) {
	return j.extend(right, leftKey, rightKey, sql.InnerJoin)
}

// LeftJoin extends the chain with a LEFT join, see Join.
func (j *JoinContext) LeftJoin(right *Context, leftKey, rightKey sql.JoinKey) (*JoinContext, error) {
	return j.extend(right, leftKey, rightKey, sql.LeftJoin)
}

// RightJoin extends the chain with a RIGHT join, see Join.
func (j *JoinContext) RightJoin(right *Context, leftKey, rightKey sql.JoinKey) (*JoinContext, error) {
	return j.extend(right, leftKey, rightKey, sql.RightJoin)
}

// CrossJoin extends the chain with a CROSS join, see Join.
func (j *JoinContext) CrossJoin(right *Context, leftKey, rightKey sql.JoinKey) (*JoinContext, error) {
	return j.extend(right, leftKey, rightKey, sql.CrossJoin)
}

func (j *JoinContext) extend(right *Context, leftKey, rightKey sql.JoinKey, kind sql.JoinKind) (*JoinContext, error) {
	if right.err != nil {
		return nil, right.err
	}
	var (
		chain *sql.JoinChain
		err   error
	)
	switch kind {
	case sql.LeftJoin:
		chain, err = j.chain.LeftJoinTo(right.view, leftKey, rightKey)
	case sql.RightJoin:
		chain, err = j.chain.RightJoinTo(right.view, leftKey, rightKey)
	case sql.CrossJoin:
		chain, err = j.chain.CrossJoinTo(right.view, leftKey, rightKey)
	default:
		chain, err = j.chain.Join(right.view, leftKey, rightKey)
	}
	if err != nil {
		return nil, err
	}
	return &JoinContext{client: j.client, chain: chain}, nil
}

// Chain returns the underlying join chain.
func (j *JoinContext) Chain() *sql.JoinChain { return j.chain }

// ResolveColumn qualifies a column name against the joined tables.
// Ambiguous names are returned unchanged; pass an explicit table to
// disambiguate.
func (j *JoinContext) ResolveColumn(name, table string) string {
	return j.chain.ResolveColumn(name, table)
}

// Query starts building a read over the join chain.
func (j *JoinContext) Query() *Query {
	q := &Query{
		drv:   j.client.drv,
		table: j.chain.String(),
		sel:   sql.SelectChain(j.chain),
		where: newWhere(j.client.strict),
		order: sql.NewOrder(),
		group: sql.NewGroup(),
	}
	q.sel.Where(q.where).Order(q.order).Group(q.group)
	return q
}

// Insert is not supported on a join context.
func (j *JoinContext) Insert(context.Context, map[string]any) (sql.Result, error) {
	return nil, NewNotSupportedOnJoinError("insert")
}

// Update is not supported on a join context.
func (j *JoinContext) Update(context.Context, map[string]any, func(*sql.Where)) (int64, error) {
	return 0, NewNotSupportedOnJoinError("update")
}

// Delete is not supported on a join context.
func (j *JoinContext) Delete(context.Context, func(*sql.Where)) (int64, error) {
	return 0, NewNotSupportedOnJoinError("delete")
}

// Truncate is not supported on a join context.
func (j *JoinContext) Truncate(context.Context) error {
	return NewNotSupportedOnJoinError("truncate")
}
