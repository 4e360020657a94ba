/*
Copyright © 2025 Roy Sowers <inskribe@inskribestudio.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package schema

import "strings"

// TypeSpec is an opaque, dialect-aware column type token.
// The zero value represents a type that could not be resolved.
type TypeSpec struct {
	SQL string // canonical SQL text, e.g. "character varying(120)"
}

// Untyped reports whether the type could not be resolved on this side.
// An untyped column must never produce a type diff.
func (t TypeSpec) Untyped() bool {
	return strings.TrimSpace(t.SQL) == ""
}

func (t TypeSpec) String() string {
	return t.SQL
}

// DefaultKind identifies how a server default was sourced.
type DefaultKind int

const (
	DefaultLiteral    DefaultKind = iota // plain literal value, stored unquoted
	DefaultExpression                    // server-side expression, stored as dialect text
	DefaultOpaque                        // present on the column but not renderable
)

// DefaultSpec is a column server default: either a literal value or a
// dialect expression. A nil *DefaultSpec means the column has no default.
type DefaultSpec struct {
	Kind DefaultKind
	Text string
}

// Literal returns a default holding a bare literal value. Any driver-level
// clause wrapping must be unwrapped by the caller before constructing it.
func Literal(text string) *DefaultSpec {
	return &DefaultSpec{Kind: DefaultLiteral, Text: text}
}

// Expression returns a default holding a server-side expression.
func Expression(text string) *DefaultSpec {
	return &DefaultSpec{Kind: DefaultExpression, Text: text}
}

// Opaque returns a default that is known to exist but cannot be rendered.
func Opaque() *DefaultSpec {
	return &DefaultSpec{Kind: DefaultOpaque}
}

// Render returns the canonical textual form of the default. Literals are
// single quoted, expressions pass through as written. Render reports false
// for a nil receiver or an opaque default; callers must treat that as
// "no renderable default".
func (d *DefaultSpec) Render() (string, bool) {
	if d == nil {
		return "", false
	}
	switch d.Kind {
	case DefaultLiteral:
		return "'" + d.Text + "'", true
	case DefaultExpression:
		return d.Text, true
	default:
		return "", false
	}
}

// Column describes one column, declared or observed.
//
// Nullable is tri-state: nil means the nullability is unspecified. An
// unspecified flag is treated as different from both true and false during
// comparison, so leaving it unset on the declared side always produces a
// nullability migration. This mirrors how unspecified nullability behaved
// in earlier drift releases and is kept as an explicit policy.
type Column struct {
	Name     string
	Type     TypeSpec
	Nullable *bool
	Default  *DefaultSpec
}

// ConstraintKind identifies the table constraint flavor.
type ConstraintKind int

const (
	PrimaryKey ConstraintKind = iota
	ForeignKey
	Check
)

// Constraint is a table-level constraint. Only enough shape is kept to
// round-trip a constraint through CREATE TABLE; constraint diffing is not
// performed.
type Constraint struct {
	Kind       ConstraintKind
	Name       string   // optional
	Columns    []string // constrained columns (PrimaryKey, ForeignKey)
	RefTable   string   // ForeignKey only
	RefColumns []string // ForeignKey only
	Expression string   // Check only
}

// Table describes one table, declared or observed.
type Table struct {
	Name        string
	Columns     []Column
	Constraints []Constraint
}

// Column returns the named column and whether it exists.
func (t Table) Column(name string) (Column, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the column names in declaration order.
func (t Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		names = append(names, col.Name)
	}
	return names
}

// Schema is the declared table set supplied by the caller.
type Schema struct {
	Tables []Table
}

// Table returns the named table and whether it exists.
func (s *Schema) Table(name string) (Table, bool) {
	for _, table := range s.Tables {
		if table.Name == name {
			return table, true
		}
	}
	return Table{}, false
}

// TableNames returns the table names in declaration order.
func (s *Schema) TableNames() []string {
	names := make([]string, 0, len(s.Tables))
	for _, table := range s.Tables {
		names = append(names, table.Name)
	}
	return names
}
