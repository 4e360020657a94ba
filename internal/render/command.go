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

package render

import "github.com/inskribe/drift/internal/schema"

// Direction selects which of the two symmetric command sequences a diff
// list renders into.
type Direction int

const (
	Upgrade Direction = iota
	Downgrade
)

func (d Direction) String() string {
	if d == Downgrade {
		return "downgrade"
	}
	return "upgrade"
}

// Command is one abstract schema operation. Rendering a diff list yields a
// finite ordered command sequence per direction; rendering the same list in
// the opposite direction yields the exact inverse sequence.
type Command interface {
	command()
}

// CreateTable creates a table with its full column and constraint set.
type CreateTable struct {
	Table schema.Table
}

// DropTable drops a table by name.
type DropTable struct {
	TableName string
}

// AddColumn adds one column to an existing table.
type AddColumn struct {
	TableName string
	Column    schema.Column
}

// DropColumn drops one column from an existing table.
type DropColumn struct {
	TableName  string
	ColumnName string
}

// AlterColumn combines every changed attribute of one column into a single
// operation. ExistingType is always populated, even when the type did not
// change, because the storage layer needs it for context. The residual
// Existing fields carry observed values for attributes the operation does
// not change; an attribute the operation does change never keeps its own
// existing placeholder.
type AlterColumn struct {
	TableName  string
	ColumnName string

	ExistingType schema.TypeSpec

	Type            *schema.TypeSpec    // new type, nil when unchanged
	Nullable        *bool               // new nullability, meaningful when NullableChanged; nil means unspecified and is flagged at emission
	NullableChanged bool
	Default         *schema.DefaultSpec // new default, meaningful when DefaultChanged; nil drops the default
	DefaultChanged  bool

	ExistingNullable *bool
	ExistingDefault  *schema.DefaultSpec
}

// NoOp marks an empty command sequence: no drift was detected.
type NoOp struct{}

func (CreateTable) command() {}
func (DropTable) command()   {}
func (AddColumn) command()   {}
func (DropColumn) command()  {}
func (AlterColumn) command() {}
func (NoOp) command()        {}
