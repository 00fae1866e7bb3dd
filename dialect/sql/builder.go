package sql

import (
	"strconv"
	"strings"
)

// Builder is the low-level statement writer shared by the clause
// builders. It accumulates statement text and the positional arguments
// bound to its ?-placeholders, in write order. The zero value is ready
// to use.
type Builder struct {
	sb   strings.Builder
	args []any
}

// WriteString appends raw statement text.
func (b *Builder) WriteString(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// WriteByte appends a single byte of statement text.
func (b *Builder) WriteByte(c byte) *Builder {
	b.sb.WriteByte(c)
	return b
}

// Ident appends an identifier, quoting it only when it contains
// characters that require quoting (the $-prefixed pseudo-column
// aliases). Ordinary identifiers render unquoted.
func (b *Builder) Ident(name string) *Builder {
	b.sb.WriteString(quoteIdent(name))
	return b
}

// Arg appends a ?-placeholder and records v as its bound argument.
func (b *Builder) Arg(v any) *Builder {
	b.sb.WriteByte('?')
	b.args = append(b.args, v)
	return b
}

// Args appends a comma-separated placeholder per value.
func (b *Builder) Args(vs ...any) *Builder {
	for i, v := range vs {
		if i > 0 {
			b.sb.WriteByte(',')
		}
		b.Arg(v)
	}
	return b
}

// Int appends the decimal representation of i as literal text.
func (b *Builder) Int(i int) *Builder {
	b.sb.WriteString(strconv.Itoa(i))
	return b
}

// Len returns the number of text bytes written so far.
func (b *Builder) Len() int { return b.sb.Len() }

// String returns the statement text written so far.
func (b *Builder) String() string { return b.sb.String() }

// Query returns the statement text and its flat, ordered argument
// list. Reading the text left to right, the i-th ?-placeholder binds
// args[i].
func (b *Builder) Query() (string, []any) {
	return b.sb.String(), b.args
}

// quoteIdent backtick-quotes a single identifier if needed. Dotted
// references are quoted per segment so Table.$alias stays valid.
func quoteIdent(name string) string {
	if !strings.ContainsAny(name, "$ ") {
		return name
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i+1] + quoteIdent(name[i+1:])
	}
	return "`" + name + "`"
}
