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
	"strings"

	"github.com/inskribe/drift/internal/errdrift"
	"github.com/inskribe/drift/internal/glog"
	"github.com/inskribe/drift/internal/schema"
)

// SQL renders a command sequence into PostgreSQL DDL text, one statement
// per command (AlterColumn may span several statements). The text is what
// ends up in the generated delta files.
//
// Returns:
//   - string: the DDL text, statements separated by blank lines
//   - error: non-nil on an unrecognized command, an internal invariant
//     violation
func SQL(commands []Command) (string, error) {
	var statements []string

	for _, cmd := range commands {
		switch c := cmd.(type) {
		case CreateTable:
			statements = append(statements, createTableSQL(c.Table))
		case DropTable:
			statements = append(statements, fmt.Sprintf("DROP TABLE %s;", c.TableName))
		case AddColumn:
			statements = append(statements, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", c.TableName, columnSQL(c.Column)))
		case DropColumn:
			statements = append(statements, fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s;", c.TableName, c.ColumnName))
		case AlterColumn:
			statements = append(statements, alterColumnSQL(c)...)
		case NoOp:
			statements = append(statements, "-- no schema drift detected")
		default:
			return "", &errdrift.DriftErr{
				Code:    "0058",
				Message: fmt.Sprintf("unrecognized command %T.", cmd),
			}
		}
	}

	return strings.Join(statements, "\n\n") + "\n", nil
}

func createTableSQL(table schema.Table) string {
	var lines []string
	for _, col := range table.Columns {
		lines = append(lines, "    "+columnSQL(col))
	}
	for _, cons := range table.Constraints {
		lines = append(lines, "    "+constraintSQL(cons))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n%s\n);", table.Name, strings.Join(lines, ",\n"))
}

func columnSQL(col schema.Column) string {
	parts := []string{col.Name, col.Type.SQL}
	if col.Nullable != nil && !*col.Nullable {
		parts = append(parts, "NOT NULL")
	}
	if col.Default != nil {
		if rendered, ok := col.Default.Render(); ok {
			parts = append(parts, "DEFAULT "+rendered)
		} else {
			glog.Warn("Could not render default for column %s; emitting placeholder", col.Name)
			parts = append(parts, "DEFAULT NULL /* unrenderable default, please adjust */")
		}
	}
	return strings.Join(parts, " ")
}

func constraintSQL(cons schema.Constraint) string {
	var text string
	switch cons.Kind {
	case schema.PrimaryKey:
		text = fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(cons.Columns, ", "))
	case schema.ForeignKey:
		text = fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
			strings.Join(cons.Columns, ", "), cons.RefTable, strings.Join(cons.RefColumns, ", "))
	case schema.Check:
		text = fmt.Sprintf("CHECK (%s)", cons.Expression)
	}
	if cons.Name != "" {
		return "CONSTRAINT " + cons.Name + " " + text
	}
	return text
}

// alterColumnSQL expands one combined alter operation into its per-attribute
// ALTER TABLE statements. The carried existing values surface as trailing
// comments so the prior state stays visible in the generated delta.
func alterColumnSQL(c AlterColumn) []string {
	var statements []string
	target := fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s", c.TableName, c.ColumnName)

	if c.Type != nil {
		statements = append(statements, fmt.Sprintf("%s TYPE %s USING %s::%s; -- was: %s",
			target, c.Type.SQL, c.ColumnName, c.Type.SQL, c.ExistingType.SQL))
	}

	if c.NullableChanged {
		var clause string
		switch {
		case c.Nullable == nil:
			// The new side left nullability unspecified. Dropping the
			// constraint is the only emittable form, but the collapse is
			// flagged for review rather than applied silently.
			glog.Warn("Nullability for column %s.%s is unspecified; emitting DROP NOT NULL with a review marker", c.TableName, c.ColumnName)
			clause = "DROP NOT NULL /* nullability unspecified, please adjust */"
		case *c.Nullable:
			clause = "DROP NOT NULL"
		default:
			clause = "SET NOT NULL"
		}
		statements = append(statements, fmt.Sprintf("%s %s; -- existing type: %s", target, clause, c.ExistingType.SQL))
	}

	if c.DefaultChanged {
		clause := "DROP DEFAULT"
		if c.Default != nil {
			if rendered, ok := c.Default.Render(); ok {
				clause = "SET DEFAULT " + rendered
			} else {
				glog.Warn("Could not render new default for column %s.%s; emitting placeholder", c.TableName, c.ColumnName)
				clause = "SET DEFAULT NULL /* unrenderable default, please adjust */"
			}
		}
		statements = append(statements, fmt.Sprintf("%s %s; -- existing type: %s", target, clause, c.ExistingType.SQL))
	}

	if residual := residualComment(c); residual != "" {
		statements = append(statements, residual)
	}
	return statements
}

// residualComment renders the existing-value context not superseded by an
// explicit change, so reviewers see the untouched attributes.
func residualComment(c AlterColumn) string {
	var parts []string
	if c.ExistingNullable != nil {
		if *c.ExistingNullable {
			parts = append(parts, "nullable")
		} else {
			parts = append(parts, "not null")
		}
	}
	if c.ExistingDefault != nil {
		if rendered, ok := c.ExistingDefault.Render(); ok {
			parts = append(parts, "default "+rendered)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("-- %s.%s unchanged: %s", c.TableName, c.ColumnName, strings.Join(parts, ", "))
}
