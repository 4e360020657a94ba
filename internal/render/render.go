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

import (
	"fmt"

	"github.com/inskribe/drift/internal/diff"
	"github.com/inskribe/drift/internal/errdrift"
)

type dispatchKey struct {
	kind      diff.Kind
	direction Direction
}

// structuralDispatch is the add/drop reversibility contract written out as
// data: every structural diff kind maps, per direction, to the command
// constructor that realizes it. An add diff creates on upgrade and drops on
// downgrade; a remove diff drops on upgrade and recreates on downgrade from
// the carried observed descriptor.
var structuralDispatch = map[dispatchKey]func(diff.Diff) Command{
	{diff.KindAddTable, Upgrade}: func(d diff.Diff) Command {
		return CreateTable{Table: d.(diff.AddTable).Table}
	},
	{diff.KindAddTable, Downgrade}: func(d diff.Diff) Command {
		return DropTable{TableName: d.(diff.AddTable).Table.Name}
	},
	{diff.KindRemoveTable, Upgrade}: func(d diff.Diff) Command {
		return DropTable{TableName: d.(diff.RemoveTable).Table.Name}
	},
	{diff.KindRemoveTable, Downgrade}: func(d diff.Diff) Command {
		return CreateTable{Table: d.(diff.RemoveTable).Table}
	},
	{diff.KindAddColumn, Upgrade}: func(d diff.Diff) Command {
		add := d.(diff.AddColumn)
		return AddColumn{TableName: add.TableName, Column: add.Column}
	},
	{diff.KindAddColumn, Downgrade}: func(d diff.Diff) Command {
		add := d.(diff.AddColumn)
		return DropColumn{TableName: add.TableName, ColumnName: add.Column.Name}
	},
	{diff.KindRemoveColumn, Upgrade}: func(d diff.Diff) Command {
		remove := d.(diff.RemoveColumn)
		return DropColumn{TableName: remove.TableName, ColumnName: remove.Column.Name}
	},
	{diff.KindRemoveColumn, Downgrade}: func(d diff.Diff) Command {
		remove := d.(diff.RemoveColumn)
		return AddColumn{TableName: remove.TableName, Column: remove.Column}
	},
}

// Commands renders the ordered diff list into the command sequence for one
// direction. The diff list is borrowed read-only; rendering the same list
// for the opposite direction yields the exact inverse sequence.
//
// Returns:
//   - []Command: the rendered sequence; a single NoOp when the list is empty
//   - error: non-nil on an unrecognized diff kind, which is an internal
//     invariant violation and aborts the run
func Commands(diffs diff.List, direction Direction) ([]Command, error) {
	var out []Command

	for _, entry := range diffs {
		switch e := entry.(type) {
		case diff.ColumnChange:
			cmd, err := alterCommand(e, direction)
			if err != nil {
				return nil, err
			}
			if cmd != nil {
				out = append(out, cmd)
			}
		case diff.Diff:
			build, ok := structuralDispatch[dispatchKey{e.Kind(), direction}]
			if !ok {
				return nil, &errdrift.DriftErr{
					Code:    "0055",
					Message: fmt.Sprintf("no %s renderer registered for diff kind %d.", direction, e.Kind()),
				}
			}
			out = append(out, build(e))
		default:
			return nil, &errdrift.DriftErr{
				Code:    "0056",
				Message: fmt.Sprintf("unrecognized diff entry %T.", entry),
			}
		}
	}

	if len(out) == 0 {
		out = []Command{NoOp{}}
	}
	return out, nil
}

// alterCommand merges a composite column group into one AlterColumn.
//
// Carried existing values merge first-writer-wins across the group, while a
// diff's own old value always overwrites: for upgrade the new side is the
// declared value and the old side the observed one, for downgrade they
// swap. An attribute the group changes finally discards its own existing
// placeholder, since the explicit new value makes it redundant.
// ExistingType always survives.
func alterCommand(group diff.ColumnChange, direction Direction) (Command, error) {
	// The comparator guarantees non-empty groups. If one slips through,
	// render nothing.
	if len(group.Changes) == 0 {
		return nil, nil
	}

	cmd := AlterColumn{TableName: group.TableName, ColumnName: group.ColumnName}
	var haveType, haveNullable, haveDefault bool

	for _, d := range group.Changes {
		switch m := d.(type) {
		case diff.ModifyType:
			if !haveNullable {
				cmd.ExistingNullable = m.Existing.Nullable
				haveNullable = true
			}
			if !haveDefault {
				cmd.ExistingDefault = m.Existing.Default
				haveDefault = true
			}
			oldType, newType := m.From, m.To
			if direction == Downgrade {
				oldType, newType = newType, oldType
			}
			changed := newType
			cmd.Type = &changed
			cmd.ExistingType = oldType
			haveType = true
		case diff.ModifyNullable:
			if !haveType && m.Existing.Type != nil {
				cmd.ExistingType = *m.Existing.Type
				haveType = true
			}
			if !haveDefault {
				cmd.ExistingDefault = m.Existing.Default
				haveDefault = true
			}
			oldNullable, newNullable := m.From, m.To
			if direction == Downgrade {
				oldNullable, newNullable = newNullable, oldNullable
			}
			cmd.Nullable = newNullable
			cmd.NullableChanged = true
			cmd.ExistingNullable = oldNullable
			haveNullable = true
		case diff.ModifyDefault:
			if !haveType && m.Existing.Type != nil {
				cmd.ExistingType = *m.Existing.Type
				haveType = true
			}
			if !haveNullable {
				cmd.ExistingNullable = m.Existing.Nullable
				haveNullable = true
			}
			oldDefault, newDefault := m.From, m.To
			if direction == Downgrade {
				oldDefault, newDefault = newDefault, oldDefault
			}
			cmd.Default = newDefault
			cmd.DefaultChanged = true
			cmd.ExistingDefault = oldDefault
			haveDefault = true
		default:
			return nil, &errdrift.DriftErr{
				Code:    "0057",
				Message: fmt.Sprintf("unrecognized modify diff kind %d in column group %s.%s.", d.Kind(), group.TableName, group.ColumnName),
			}
		}
	}

	if cmd.NullableChanged {
		cmd.ExistingNullable = nil
	}
	if cmd.DefaultChanged {
		cmd.ExistingDefault = nil
	}
	return cmd, nil
}
