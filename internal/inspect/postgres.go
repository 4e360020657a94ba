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

package inspect

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/inskribe/drift/internal/errdrift"
	"github.com/inskribe/drift/internal/schema"
)

// PostgresInspector reads the observed schema from the public schema of a
// PostgreSQL database through information_schema.
type PostgresInspector struct {
	conn *pgx.Conn
}

func NewPostgresInspector(conn *pgx.Conn) *PostgresInspector {
	return &PostgresInspector{conn: conn}
}

// ListTables returns the names of all base tables in the public schema.
func (p *PostgresInspector) ListTables(ctx context.Context) ([]string, error) {
	if p.conn == nil {
		return nil, &errdrift.DriftErr{
			Code:    "0020",
			Message: "expected pointer to pgx.Conn, received nil",
		}
	}

	statement := `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_type = 'BASE TABLE'
		ORDER BY table_name`
	rows, err := p.conn.Query(ctx, statement)
	if err != nil {
		return nil, &errdrift.DriftErr{
			Code:    "0021",
			Message: "failed to query observed table names",
			Err:     err,
		}
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &errdrift.DriftErr{
				Code:    "0022",
				Message: "failed to scan table name",
				Err:     err,
			}
		}
		tables = append(tables, name)
	}

	if err := rows.Err(); err != nil {
		return nil, &errdrift.DriftErr{
			Code:    "0023",
			Message: "row iteration error while listing tables",
			Err:     err,
		}
	}
	return tables, nil
}

// ListColumns returns the columns of the named table in ordinal order.
func (p *PostgresInspector) ListColumns(ctx context.Context, table string) ([]schema.Column, error) {
	if p.conn == nil {
		return nil, &errdrift.DriftErr{
			Code:    "0024",
			Message: "expected pointer to pgx.Conn, received nil",
		}
	}

	statement := `
		SELECT column_name, data_type, character_maximum_length, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_schema = 'public'
		AND table_name = $1
		ORDER BY ordinal_position`
	rows, err := p.conn.Query(ctx, statement, table)
	if err != nil {
		return nil, &errdrift.DriftErr{
			Code:    "0025",
			Message: "failed to query columns for table: " + table,
			Err:     err,
		}
	}
	defer rows.Close()

	var columns []schema.Column
	for rows.Next() {
		var (
			name       string
			dataType   string
			maxLength  *int
			isNullable string
			rawDefault *string
		)
		if err := rows.Scan(&name, &dataType, &maxLength, &isNullable, &rawDefault); err != nil {
			return nil, &errdrift.DriftErr{
				Code:    "0026",
				Message: "failed to scan column record for table: " + table,
				Err:     err,
			}
		}

		columns = append(columns, schema.Column{
			Name:     name,
			Type:     typeFromParts(dataType, maxLength),
			Nullable: nullableFromYesNo(isNullable),
			Default:  defaultFromRaw(rawDefault),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, &errdrift.DriftErr{
			Code:    "0027",
			Message: "row iteration error while listing columns for table: " + table,
			Err:     err,
		}
	}
	return columns, nil
}

// ListConstraints returns the primary key of the named table, when one
// exists. Foreign key and check constraints are not introspected; they are
// outside the comparison surface.
func (p *PostgresInspector) ListConstraints(ctx context.Context, table string) ([]schema.Constraint, error) {
	if p.conn == nil {
		return nil, &errdrift.DriftErr{
			Code:    "0028",
			Message: "expected pointer to pgx.Conn, received nil",
		}
	}

	statement := `
		SELECT tc.constraint_name, kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		ON tc.constraint_name = kcu.constraint_name
		AND tc.table_schema = kcu.table_schema
		WHERE tc.table_schema = 'public'
		AND tc.table_name = $1
		AND tc.constraint_type = 'PRIMARY KEY'
		ORDER BY kcu.ordinal_position`
	rows, err := p.conn.Query(ctx, statement, table)
	if err != nil {
		return nil, &errdrift.DriftErr{
			Code:    "0029",
			Message: "failed to query constraints for table: " + table,
			Err:     err,
		}
	}
	defer rows.Close()

	var primaryKey *schema.Constraint
	for rows.Next() {
		var constraintName, columnName string
		if err := rows.Scan(&constraintName, &columnName); err != nil {
			return nil, &errdrift.DriftErr{
				Code:    "0030",
				Message: "failed to scan constraint record for table: " + table,
				Err:     err,
			}
		}
		if primaryKey == nil {
			primaryKey = &schema.Constraint{Kind: schema.PrimaryKey, Name: constraintName}
		}
		primaryKey.Columns = append(primaryKey.Columns, columnName)
	}

	if err := rows.Err(); err != nil {
		return nil, &errdrift.DriftErr{
			Code:    "0031",
			Message: "row iteration error while listing constraints for table: " + table,
			Err:     err,
		}
	}

	if primaryKey == nil {
		return nil, nil
	}
	return []schema.Constraint{*primaryKey}, nil
}

// typeFromParts folds character_maximum_length into the reported data type.
// information_schema reports "character varying" and the length separately.
func typeFromParts(dataType string, maxLength *int) schema.TypeSpec {
	dataType = strings.TrimSpace(dataType)
	if dataType == "" {
		return schema.TypeSpec{}
	}
	if maxLength != nil {
		return schema.TypeSpec{SQL: fmt.Sprintf("%s(%d)", dataType, *maxLength)}
	}
	return schema.TypeSpec{SQL: dataType}
}

// nullableFromYesNo maps the information_schema YES/NO flag. Anything else
// is reported as unknown rather than guessed.
func nullableFromYesNo(flag string) *bool {
	var value bool
	switch strings.ToUpper(strings.TrimSpace(flag)) {
	case "YES":
		value = true
	case "NO":
		value = false
	default:
		return nil
	}
	return &value
}

var literalDefaultExpression = regexp.MustCompile(`^'(.*)'(::[a-zA-Z_][a-zA-Z0-9_ ]*(\(\d+(,\s*\d+)?\))?)?$`)

// defaultFromRaw classifies a raw column_default value. PostgreSQL reports
// literal defaults with a trailing type cast, e.g. 'active'::text; the cast
// is unwrapped so the bare literal survives. Everything else is kept as a
// server-side expression.
func defaultFromRaw(raw *string) *schema.DefaultSpec {
	if raw == nil {
		return nil
	}
	text := strings.TrimSpace(*raw)
	if text == "" {
		return schema.Opaque()
	}
	if matches := literalDefaultExpression.FindStringSubmatch(text); matches != nil {
		return schema.Literal(matches[1])
	}
	return schema.Expression(text)
}
