package sql

// The mutation builders below are plain key/value templating around
// INSERT, UPDATE, DELETE and TRUNCATE. Assignments render in call
// order so the argument list stays aligned with the placeholder
// positions, and a WHERE tree attached to UPDATE or DELETE appends its
// arguments after the assignment arguments.

// assignment is one column/value pair in call order.
type assignment struct {
	column string
	value  any
}

// InsertBuilder builds an INSERT statement for a single row.
type InsertBuilder struct {
	table string
	sets  []assignment
}

// Insert returns a builder for the given table.
func Insert(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

// Set adds a column/value pair.
func (i *InsertBuilder) Set(column string, v any) *InsertBuilder {
	i.sets = append(i.sets, assignment{column, v})
	return i
}

// Empty reports whether no column was set.
func (i *InsertBuilder) Empty() bool { return len(i.sets) == 0 }

// Query compiles `INSERT INTO t (a,b) VALUES (?,?)`.
func (i *InsertBuilder) Query() (string, []any) {
	b := &Builder{}
	b.WriteString("INSERT INTO ")
	b.WriteString(i.table)
	b.WriteString(" (")
	for n, s := range i.sets {
		if n > 0 {
			b.WriteByte(',')
		}
		b.Ident(s.column)
	}
	b.WriteString(") VALUES (")
	for n, s := range i.sets {
		if n > 0 {
			b.WriteByte(',')
		}
		b.Arg(s.value)
	}
	b.WriteByte(')')
	return b.Query()
}

// UpdateBuilder builds an UPDATE statement.
type UpdateBuilder struct {
	table string
	sets  []assignment
	where *Where
}

// Update returns a builder for the given table.
func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set adds a column/value pair.
func (u *UpdateBuilder) Set(column string, v any) *UpdateBuilder {
	u.sets = append(u.sets, assignment{column, v})
	return u
}

// Where attaches the predicate tree.
func (u *UpdateBuilder) Where(w *Where) *UpdateBuilder {
	u.where = w
	return u
}

// Empty reports whether no column was set.
func (u *UpdateBuilder) Empty() bool { return len(u.sets) == 0 }

// Filtered reports whether a non-empty predicate tree is attached.
func (u *UpdateBuilder) Filtered() bool {
	return u.where != nil && !u.where.Empty()
}

// Query compiles `UPDATE t SET a = ?,b = ? WHERE ...`. Assignment
// arguments precede predicate arguments.
func (u *UpdateBuilder) Query() (string, []any) {
	b := &Builder{}
	b.WriteString("UPDATE ")
	b.WriteString(u.table)
	b.WriteString(" SET ")
	for n, s := range u.sets {
		if n > 0 {
			b.WriteByte(',')
		}
		b.Ident(s.column)
		b.WriteString(" = ")
		b.Arg(s.value)
	}
	if u.Filtered() {
		clause, args := u.where.Query()
		b.WriteByte(' ')
		b.WriteString(clause)
		b.args = append(b.args, args...)
	}
	return b.Query()
}

// DeleteBuilder builds a DELETE statement.
type DeleteBuilder struct {
	table string
	where *Where
}

// Delete returns a builder for the given table.
func Delete(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

// Where attaches the predicate tree.
func (d *DeleteBuilder) Where(w *Where) *DeleteBuilder {
	d.where = w
	return d
}

// Filtered reports whether a non-empty predicate tree is attached.
func (d *DeleteBuilder) Filtered() bool {
	return d.where != nil && !d.where.Empty()
}

// Query compiles `DELETE FROM t WHERE ...`.
func (d *DeleteBuilder) Query() (string, []any) {
	b := &Builder{}
	b.WriteString("DELETE FROM ")
	b.WriteString(d.table)
	if d.Filtered() {
		clause, args := d.where.Query()
		b.WriteByte(' ')
		b.WriteString(clause)
		b.args = append(b.args, args...)
	}
	return b.Query()
}

// Truncate compiles `TRUNCATE TABLE t`.
func Truncate(table string) (string, []any) {
	b := &Builder{}
	b.WriteString("TRUNCATE TABLE ")
	b.WriteString(table)
	return b.Query()
}
