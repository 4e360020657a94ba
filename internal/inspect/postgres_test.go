package inspect

import (
	"context"
	"errors"
	"testing"

	"github.com/inskribe/drift/internal/errdrift"
	"github.com/inskribe/drift/internal/schema"
)

func TestNilConnectionIsRejected(t *testing.T) {
	inspector := NewPostgresInspector(nil)

	_, err := inspector.ListTables(context.Background())
	var driftErr *errdrift.DriftErr
	if !errors.As(err, &driftErr) || driftErr.Code != "0020" {
		t.Fatalf("expected DriftErr 0020, got: %v", err)
	}

	_, err = inspector.ListColumns(context.Background(), "users")
	if !errors.As(err, &driftErr) || driftErr.Code != "0024" {
		t.Fatalf("expected DriftErr 0024, got: %v", err)
	}

	_, err = inspector.ListConstraints(context.Background(), "users")
	if !errors.As(err, &driftErr) || driftErr.Code != "0028" {
		t.Fatalf("expected DriftErr 0028, got: %v", err)
	}
}

func TestTypeFromParts(t *testing.T) {
	length := 120
	mockData := []struct {
		name      string
		dataType  string
		maxLength *int
		expected  string
	}{
		{name: "plain_type", dataType: "integer", maxLength: nil, expected: "integer"},
		{name: "length_folded", dataType: "character varying", maxLength: &length, expected: "character varying(120)"},
		{name: "empty_reported_as_untyped", dataType: "", maxLength: nil, expected: ""},
		{name: "whitespace_reported_as_untyped", dataType: "  ", maxLength: nil, expected: ""},
	}

	for _, mock := range mockData {
		t.Run(mock.name, func(t *testing.T) {
			got := typeFromParts(mock.dataType, mock.maxLength)
			if got.SQL != mock.expected {
				t.Fatalf("typeFromParts = %q, expected %q", got.SQL, mock.expected)
			}
			if mock.expected == "" && !got.Untyped() {
				t.Fatal("expected untyped result")
			}
		})
	}
}

func TestNullableFromYesNo(t *testing.T) {
	mockData := []struct {
		name     string
		flag     string
		expected *bool
	}{
		{name: "yes", flag: "YES", expected: boolPtr(true)},
		{name: "no", flag: "NO", expected: boolPtr(false)},
		{name: "lowercase_yes", flag: "yes", expected: boolPtr(true)},
		{name: "unrecognized", flag: "MAYBE", expected: nil},
		{name: "empty", flag: "", expected: nil},
	}

	for _, mock := range mockData {
		t.Run(mock.name, func(t *testing.T) {
			got := nullableFromYesNo(mock.flag)
			if (got == nil) != (mock.expected == nil) {
				t.Fatalf("nullableFromYesNo(%q) = %v, expected %v", mock.flag, got, mock.expected)
			}
			if got != nil && *got != *mock.expected {
				t.Fatalf("nullableFromYesNo(%q) = %v, expected %v", mock.flag, *got, *mock.expected)
			}
		})
	}
}

func TestDefaultFromRaw(t *testing.T) {
	raw := func(s string) *string { return &s }

	mockData := []struct {
		name         string
		raw          *string
		expectedKind schema.DefaultKind
		expectedText string
		expectNil    bool
	}{
		{name: "no_default", raw: nil, expectNil: true},
		{name: "cast_literal_unwrapped", raw: raw("'active'::text"), expectedKind: schema.DefaultLiteral, expectedText: "active"},
		{name: "cast_literal_multiword_type", raw: raw("'active'::character varying"), expectedKind: schema.DefaultLiteral, expectedText: "active"},
		{name: "cast_literal_with_length", raw: raw("'active'::character varying(20)"), expectedKind: schema.DefaultLiteral, expectedText: "active"},
		{name: "bare_quoted_literal", raw: raw("'active'"), expectedKind: schema.DefaultLiteral, expectedText: "active"},
		{name: "empty_string_literal", raw: raw("''::text"), expectedKind: schema.DefaultLiteral, expectedText: ""},
		{name: "sequence_expression", raw: raw("nextval('users_id_seq'::regclass)"), expectedKind: schema.DefaultExpression, expectedText: "nextval('users_id_seq'::regclass)"},
		{name: "function_expression", raw: raw("now()"), expectedKind: schema.DefaultExpression, expectedText: "now()"},
		{name: "numeric_expression", raw: raw("0"), expectedKind: schema.DefaultExpression, expectedText: "0"},
		{name: "blank_reported_opaque", raw: raw("   "), expectedKind: schema.DefaultOpaque},
	}

	for _, mock := range mockData {
		t.Run(mock.name, func(t *testing.T) {
			got := defaultFromRaw(mock.raw)
			if mock.expectNil {
				if got != nil {
					t.Fatalf("expected nil default, got: %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected non-nil default")
			}
			if got.Kind != mock.expectedKind || got.Text != mock.expectedText {
				t.Fatalf("defaultFromRaw = {%v %q}, expected {%v %q}", got.Kind, got.Text, mock.expectedKind, mock.expectedText)
			}
		})
	}
}

func boolPtr(v bool) *bool {
	return &v
}
