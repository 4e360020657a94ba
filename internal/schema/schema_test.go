package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/inskribe/drift/internal/errdrift"
)

func TestTypeSpecUntyped(t *testing.T) {
	mockData := []struct {
		name     string
		sql      string
		expected bool
	}{
		{name: "empty", sql: "", expected: true},
		{name: "whitespace_only", sql: "   ", expected: true},
		{name: "resolved", sql: "integer", expected: false},
	}

	for _, mock := range mockData {
		t.Run(mock.name, func(t *testing.T) {
			if got := (TypeSpec{SQL: mock.sql}).Untyped(); got != mock.expected {
				t.Fatalf("Untyped(%q) = %v, expected %v", mock.sql, got, mock.expected)
			}
		})
	}
}

func TestDefaultSpecRender(t *testing.T) {
	mockData := []struct {
		name       string
		spec       *DefaultSpec
		expected   string
		renderable bool
	}{
		{name: "literal_quoted", spec: Literal("active"), expected: "'active'", renderable: true},
		{name: "empty_literal", spec: Literal(""), expected: "''", renderable: true},
		{name: "expression_passthrough", spec: Expression("now()"), expected: "now()", renderable: true},
		{name: "opaque", spec: Opaque(), renderable: false},
		{name: "nil_receiver", spec: nil, renderable: false},
	}

	for _, mock := range mockData {
		t.Run(mock.name, func(t *testing.T) {
			got, ok := mock.spec.Render()
			if ok != mock.renderable {
				t.Fatalf("Render() renderable = %v, expected %v", ok, mock.renderable)
			}
			if ok && got != mock.expected {
				t.Fatalf("Render() = %q, expected %q", got, mock.expected)
			}
		})
	}
}

func TestDecodeValidDocument(t *testing.T) {
	doc := `{
  "tables": [
    {
      "name": "users",
      "columns": [
        {"name": "id", "type": "integer", "nullable": false},
        {"name": "status", "type": "text", "default": "active"},
        {"name": "created_at", "type": "timestamp with time zone", "default_expr": "now()"}
      ],
      "primary_key": ["id"]
    }
  ]
}`

	declared, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	table, ok := declared.Table("users")
	if !ok {
		t.Fatal("expected users table")
	}
	if len(table.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(table.Columns))
	}

	id, _ := table.Column("id")
	if id.Nullable == nil || *id.Nullable {
		t.Fatalf("expected id declared not null, got: %+v", id.Nullable)
	}

	status, _ := table.Column("status")
	if status.Default == nil || status.Default.Kind != DefaultLiteral || status.Default.Text != "active" {
		t.Fatalf("expected literal default active, got: %+v", status.Default)
	}
	if status.Nullable != nil {
		t.Fatalf("expected unspecified nullability, got: %+v", status.Nullable)
	}

	createdAt, _ := table.Column("created_at")
	if createdAt.Default == nil || createdAt.Default.Kind != DefaultExpression || createdAt.Default.Text != "now()" {
		t.Fatalf("expected expression default now(), got: %+v", createdAt.Default)
	}

	if len(table.Constraints) != 1 || table.Constraints[0].Kind != PrimaryKey {
		t.Fatalf("expected primary key constraint, got: %+v", table.Constraints)
	}
}

func TestDecodeRejectsInvalidDocuments(t *testing.T) {
	mockData := []struct {
		name         string
		doc          string
		expectedCode string
	}{
		{
			name:         "malformed_json",
			doc:          `{"tables": [`,
			expectedCode: "0041",
		},
		{
			name:         "unknown_field",
			doc:          `{"tables": [], "extra": true}`,
			expectedCode: "0041",
		},
		{
			name:         "illegal_table_name",
			doc:          `{"tables": [{"name": "users; DROP TABLE users", "columns": []}]}`,
			expectedCode: "0042",
		},
		{
			name: "duplicate_table",
			doc: `{"tables": [
				{"name": "users", "columns": []},
				{"name": "users", "columns": []}
			]}`,
			expectedCode: "0043",
		},
		{
			name:         "illegal_column_name",
			doc:          `{"tables": [{"name": "users", "columns": [{"name": "id name", "type": "integer"}]}]}`,
			expectedCode: "0044",
		},
		{
			name:         "both_default_forms",
			doc:          `{"tables": [{"name": "users", "columns": [{"name": "id", "type": "integer", "default": "0", "default_expr": "nextval('s')"}]}]}`,
			expectedCode: "0045",
		},
		{
			name:         "primary_key_unknown_column",
			doc:          `{"tables": [{"name": "users", "columns": [{"name": "id", "type": "integer"}], "primary_key": ["uid"]}]}`,
			expectedCode: "0046",
		},
	}

	for _, mock := range mockData {
		t.Run(mock.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(mock.doc))
			if err == nil {
				t.Fatal("expected decode error")
			}
			var driftErr *errdrift.DriftErr
			if !errors.As(err, &driftErr) || driftErr.Code != mock.expectedCode {
				t.Fatalf("expected DriftErr %s, got: %v", mock.expectedCode, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.json")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var driftErr *errdrift.DriftErr
	if !errors.As(err, &driftErr) || driftErr.Code != "0040" {
		t.Fatalf("expected DriftErr 0040, got: %v", err)
	}
}
