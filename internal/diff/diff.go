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

package diff

import "github.com/inskribe/drift/internal/schema"

// Kind tags a Diff variant.
type Kind int

const (
	KindAddTable Kind = iota
	KindRemoveTable
	KindAddColumn
	KindRemoveColumn
	KindModifyType
	KindModifyNullable
	KindModifyDefault
)

// Diff is one typed difference between declared and observed schema. It is
// an explicit sum type: each variant is a small immutable record, and
// dispatch happens on Kind rather than on runtime shape.
type Diff interface {
	Kind() Kind
}

// Entry is one element of the aggregated diff list: either a structural
// Diff or a composite ColumnChange group.
type Entry interface {
	entry()
}

// List is the ordered diff list produced by one comparison run. The
// renderer borrows it read-only.
type List []Entry

// AddTable records a table declared but not observed.
type AddTable struct {
	Table schema.Table
}

// RemoveTable records a table observed but not declared. Table holds the
// fully materialized observed descriptor, columns and constraints both, so
// the downgrade direction can recreate it without re-querying the database.
type RemoveTable struct {
	Table schema.Table
}

// AddColumn records a column declared but not observed.
type AddColumn struct {
	TableName string
	Column    schema.Column
}

// RemoveColumn records a column observed but not declared. Column is
// reconstructed from the observed record (name, type, nullable, default).
type RemoveColumn struct {
	TableName string
	Column    schema.Column
}

// Existing carries the observed values of the attributes a modify diff does
// not itself describe, so the rendered command is self-sufficient without
// re-querying the database. Each variant fills exactly the two fields it
// does not own.
type Existing struct {
	Type     *schema.TypeSpec
	Nullable *bool
	Default  *schema.DefaultSpec
}

// ModifyType records a column type change.
type ModifyType struct {
	TableName  string
	ColumnName string
	Existing   Existing // observed nullable and default
	From       schema.TypeSpec
	To         schema.TypeSpec
}

// ModifyNullable records a column nullability change.
type ModifyNullable struct {
	TableName  string
	ColumnName string
	Existing   Existing // observed type and default
	From       *bool
	To         *bool
}

// ModifyDefault records a column server default change.
type ModifyDefault struct {
	TableName  string
	ColumnName string
	Existing   Existing // observed type and nullable
	From       *schema.DefaultSpec
	To         *schema.DefaultSpec
}

// ColumnChange groups the modify diffs of one column, in the fixed emission
// order type, nullable, default. It renders as a single combined operation.
type ColumnChange struct {
	TableName  string
	ColumnName string
	Changes    []Diff
}

func (AddTable) Kind() Kind       { return KindAddTable }
func (RemoveTable) Kind() Kind    { return KindRemoveTable }
func (AddColumn) Kind() Kind      { return KindAddColumn }
func (RemoveColumn) Kind() Kind   { return KindRemoveColumn }
func (ModifyType) Kind() Kind     { return KindModifyType }
func (ModifyNullable) Kind() Kind { return KindModifyNullable }
func (ModifyDefault) Kind() Kind  { return KindModifyDefault }

func (AddTable) entry()     {}
func (RemoveTable) entry()  {}
func (AddColumn) entry()    {}
func (RemoveColumn) entry() {}
func (ColumnChange) entry() {}
