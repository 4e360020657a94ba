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

import (
	"encoding/json"
	"io"
	"os"
	"regexp"

	"github.com/inskribe/drift/internal/errdrift"
)

// Document shapes for the declared schema file. The file is the source of
// truth for the desired state; drift never writes it.
type document struct {
	Tables []tableDoc `json:"tables"`
}

type tableDoc struct {
	Name       string      `json:"name"`
	Columns    []columnDoc `json:"columns"`
	PrimaryKey []string    `json:"primary_key,omitempty"`
}

type columnDoc struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Nullable    *bool   `json:"nullable,omitempty"`
	Default     *string `json:"default,omitempty"`      // literal value, unquoted
	DefaultExpr *string `json:"default_expr,omitempty"` // server-side expression
}

var identifierExpression = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Load reads and decodes the declared schema file at path.
//
// Returns:
//   - *Schema: the declared schema graph
//   - error: non-nil if the file cannot be read or fails validation
func Load(path string) (*Schema, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &errdrift.DriftErr{
			Code:    "0040",
			Message: "failed to open declared schema file at: " + path,
			Err:     err,
		}
	}
	defer file.Close()

	return Decode(file)
}

// Decode decodes a declared schema document and validates identifiers.
//
// Returns:
//   - *Schema: the declared schema graph
//   - error: non-nil on malformed JSON or an illegal table/column name
func Decode(r io.Reader) (*Schema, error) {
	var doc document
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, &errdrift.DriftErr{
			Code:    "0041",
			Message: "failed to decode declared schema document.",
			Err:     err,
		}
	}

	result := &Schema{}
	seen := make(map[string]bool)

	for _, table := range doc.Tables {
		if !identifierExpression.MatchString(table.Name) {
			return nil, &errdrift.DriftErr{
				Code:    "0042",
				Message: "detected illegal character in table name: " + table.Name,
			}
		}
		if seen[table.Name] {
			return nil, &errdrift.DriftErr{
				Code:    "0043",
				Message: "duplicate table declaration: " + table.Name,
			}
		}
		seen[table.Name] = true

		converted := Table{Name: table.Name}
		for _, col := range table.Columns {
			if !identifierExpression.MatchString(col.Name) {
				return nil, &errdrift.DriftErr{
					Code:    "0044",
					Message: "detected illegal character in column name: " + table.Name + "." + col.Name,
				}
			}
			if col.Default != nil && col.DefaultExpr != nil {
				return nil, &errdrift.DriftErr{
					Code:    "0045",
					Message: "column declares both default and default_expr: " + table.Name + "." + col.Name,
				}
			}

			column := Column{
				Name:     col.Name,
				Type:     TypeSpec{SQL: col.Type},
				Nullable: col.Nullable,
			}
			if col.Default != nil {
				column.Default = Literal(*col.Default)
			} else if col.DefaultExpr != nil {
				column.Default = Expression(*col.DefaultExpr)
			}
			converted.Columns = append(converted.Columns, column)
		}

		if len(table.PrimaryKey) > 0 {
			for _, pkCol := range table.PrimaryKey {
				if _, ok := converted.Column(pkCol); !ok {
					return nil, &errdrift.DriftErr{
						Code:    "0046",
						Message: "primary key references unknown column: " + table.Name + "." + pkCol,
					}
				}
			}
			converted.Constraints = append(converted.Constraints, Constraint{
				Kind:    PrimaryKey,
				Columns: table.PrimaryKey,
			})
		}

		result.Tables = append(result.Tables, converted)
	}

	return result, nil
}
