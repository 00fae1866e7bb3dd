package sql

// orderKey is one ORDER BY entry in append order.
type orderKey struct {
	column string
	desc   bool
}

// Order builds an ORDER BY column/direction sequence. Keys append in
// call order; a direction call mutates only the key appended last, so
// Asc/Desc are meaningful only when chained directly off By.
type Order struct {
	keys []orderKey
}

// NewOrder returns an empty ordering builder.
func NewOrder() *Order { return &Order{} }

// By appends a new key in ascending direction.
func (o *Order) By(column string) *Order {
	o.keys = append(o.keys, orderKey{column: column})
	return o
}

// Asc sets the direction of the key appended last.
func (o *Order) Asc() *Order {
	if n := len(o.keys); n > 0 {
		o.keys[n-1].desc = false
	}
	return o
}

// Desc sets the direction of the key appended last.
func (o *Order) Desc() *Order {
	if n := len(o.keys); n > 0 {
		o.keys[n-1].desc = true
	}
	return o
}

// Empty reports whether no key has been appended.
func (o *Order) Empty() bool { return len(o.keys) == 0 }

// Reset clears all keys for reuse.
func (o *Order) Reset() *Order {
	o.keys = nil
	return o
}

// String renders `ORDER BY k1 [DESC],k2 ...` in append order, or an
// empty string if no key was appended. Ascending keys render without a
// direction keyword.
func (o *Order) String() string {
	if len(o.keys) == 0 {
		return ""
	}
	b := &Builder{}
	b.WriteString("ORDER BY ")
	for i, k := range o.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.Ident(k.column)
		if k.desc {
			b.WriteString(" DESC")
		}
	}
	return b.String()
}
