package diff

import (
	"testing"

	"github.com/inskribe/drift/internal/schema"
)

func TestNormalizeType(t *testing.T) {
	mockData := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "alias_int4", input: "int4", expected: "integer"},
		{name: "alias_varchar_with_args", input: "VARCHAR(120)", expected: "character varying(120)"},
		{name: "canonical_passthrough", input: "character varying(120)", expected: "character varying(120)"},
		{name: "whitespace_collapsed", input: "  timestamp   with time zone ", expected: "timestamp with time zone"},
		{name: "alias_timestamptz", input: "timestamptz", expected: "timestamp with time zone"},
		{name: "alias_decimal_with_args", input: "decimal(10,2)", expected: "numeric(10,2)"},
	}

	for _, mock := range mockData {
		t.Run(mock.name, func(t *testing.T) {
			if got := normalizeType(mock.input); got != mock.expected {
				t.Fatalf("normalizeType(%q) = %q, expected %q", mock.input, got, mock.expected)
			}
		})
	}
}

func TestPostgresTypesCompareType(t *testing.T) {
	mockData := []struct {
		name     string
		observed string
		declared string
		differ   bool
	}{
		{name: "alias_equal", observed: "character varying(80)", declared: "varchar(80)", differ: false},
		{name: "length_change", observed: "character varying(80)", declared: "varchar(120)", differ: true},
		{name: "different_base", observed: "integer", declared: "bigint", differ: true},
		{name: "case_insensitive", observed: "INTEGER", declared: "integer", differ: false},
	}

	for _, mock := range mockData {
		t.Run(mock.name, func(t *testing.T) {
			observed := schema.Column{Type: schema.TypeSpec{SQL: mock.observed}}
			declared := schema.Column{Type: schema.TypeSpec{SQL: mock.declared}}
			if got := (PostgresTypes{}).CompareType(observed, declared); got != mock.differ {
				t.Fatalf("CompareType(%q, %q) = %v, expected %v", mock.observed, mock.declared, got, mock.differ)
			}
		})
	}
}

func TestNormalizeDefault(t *testing.T) {
	mockData := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "quoted_literal", input: "'active'", expected: "active"},
		{name: "cast_stripped", input: "'active'::character varying", expected: "active"},
		{name: "cast_with_length", input: "'active'::character varying(20)", expected: "active"},
		{name: "bare_expression", input: "now()", expected: "now()"},
		{name: "numeric", input: "0", expected: "0"},
		{name: "empty_quotes", input: "''", expected: ""},
	}

	for _, mock := range mockData {
		t.Run(mock.name, func(t *testing.T) {
			if got := normalizeDefault(mock.input); got != mock.expected {
				t.Fatalf("normalizeDefault(%q) = %q, expected %q", mock.input, got, mock.expected)
			}
		})
	}
}

func TestPostgresDefaultsCompareDefault(t *testing.T) {
	rendered := func(s string) *string { return &s }

	mockData := []struct {
		name             string
		observed         *schema.DefaultSpec
		renderedDeclared *string
		differ           bool
	}{
		{
			name:             "equal_after_quote_strip",
			observed:         schema.Literal("active"),
			renderedDeclared: rendered("'active'"),
			differ:           false,
		},
		{
			name:             "different_literal",
			observed:         schema.Literal("active"),
			renderedDeclared: rendered("'inactive'"),
			differ:           true,
		},
		{
			name:             "observed_absent",
			observed:         nil,
			renderedDeclared: rendered("now()"),
			differ:           true,
		},
		{
			name:             "declared_absent",
			observed:         schema.Expression("now()"),
			renderedDeclared: nil,
			differ:           true,
		},
		{
			name:             "unrenderable_observed_treated_as_absent",
			observed:         schema.Opaque(),
			renderedDeclared: nil,
			differ:           false,
		},
		{
			name:             "expression_equal",
			observed:         schema.Expression("now()"),
			renderedDeclared: rendered("now()"),
			differ:           false,
		},
	}

	for _, mock := range mockData {
		t.Run(mock.name, func(t *testing.T) {
			observed := schema.Column{Name: "c", Default: mock.observed}
			declared := schema.Column{Name: "c"}
			if got := (PostgresDefaults{}).CompareDefault(observed, declared, mock.renderedDeclared); got != mock.differ {
				t.Fatalf("CompareDefault = %v, expected %v", got, mock.differ)
			}
		})
	}
}
