package diff

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/inskribe/drift/internal/errdrift"
	"github.com/inskribe/drift/internal/glog"
	"github.com/inskribe/drift/internal/schema"
)

func TestMain(m *testing.M) {
	glog.InitializeLogger(true)
	m.Run()
}

type fakeInspector struct {
	tables          []string
	columns         map[string][]schema.Column
	constraints     map[string][]schema.Constraint
	columnCalls     []string
	constraintCalls []string
}

func (f *fakeInspector) ListTables(ctx context.Context) ([]string, error) {
	return f.tables, nil
}

func (f *fakeInspector) ListColumns(ctx context.Context, table string) ([]schema.Column, error) {
	f.columnCalls = append(f.columnCalls, table)
	return f.columns[table], nil
}

func (f *fakeInspector) ListConstraints(ctx context.Context, table string) ([]schema.Constraint, error) {
	f.constraintCalls = append(f.constraintCalls, table)
	return f.constraints[table], nil
}

// recordingDefaults counts predicate invocations so tests can assert the
// short-circuit path never consults it.
type recordingDefaults struct {
	calls  int
	result bool
}

func (r *recordingDefaults) CompareDefault(observed, declared schema.Column, renderedDeclared *string) bool {
	r.calls++
	return r.result
}

func boolPtr(v bool) *bool {
	return &v
}

func declaredUsers() *schema.Schema {
	return &schema.Schema{
		Tables: []schema.Table{
			{
				Name: "users",
				Columns: []schema.Column{
					{Name: "id", Type: schema.TypeSpec{SQL: "integer"}, Nullable: boolPtr(false)},
					{Name: "name", Type: schema.TypeSpec{SQL: "character varying(80)"}, Nullable: boolPtr(true)},
				},
				Constraints: []schema.Constraint{
					{Kind: schema.PrimaryKey, Columns: []string{"id"}},
				},
			},
		},
	}
}

func TestCompareRequiresDeclaredSchema(t *testing.T) {
	comparator := &Comparator{Inspector: &fakeInspector{}}
	_, err := comparator.Compare(context.Background())
	if err == nil {
		t.Fatal("expected error for missing declared schema")
	}
	var driftErr *errdrift.DriftErr
	if !errors.As(err, &driftErr) || driftErr.Code != "0050" {
		t.Fatalf("expected DriftErr 0050, got: %v", err)
	}
}

func TestCompareRequiresInspector(t *testing.T) {
	comparator := &Comparator{Declared: declaredUsers()}
	_, err := comparator.Compare(context.Background())
	if err == nil {
		t.Fatal("expected error for missing inspector")
	}
	var driftErr *errdrift.DriftErr
	if !errors.As(err, &driftErr) || driftErr.Code != "0051" {
		t.Fatalf("expected DriftErr 0051, got: %v", err)
	}
}

func TestCompareAddedTable(t *testing.T) {
	inspector := &fakeInspector{}
	comparator := &Comparator{Declared: declaredUsers(), Inspector: inspector}

	diffs, err := comparator.Compare(context.Background())
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if len(diffs) != 1 {
		t.Fatalf("expected 1 diff, got %d", len(diffs))
	}
	added, ok := diffs[0].(AddTable)
	if !ok {
		t.Fatalf("expected AddTable, got %T", diffs[0])
	}
	if added.Table.Name != "users" || len(added.Table.Columns) != 2 {
		t.Fatalf("unexpected added table: %+v", added.Table)
	}
	if len(inspector.columnCalls) != 0 {
		t.Fatalf("expected no column introspection for added table, got calls: %v", inspector.columnCalls)
	}
}

func TestCompareRemovedTableMaterializesColumns(t *testing.T) {
	inspector := &fakeInspector{
		tables: []string{"legacy", "schemer"},
		columns: map[string][]schema.Column{
			"legacy": {
				{Name: "id", Type: schema.TypeSpec{SQL: "integer"}, Nullable: boolPtr(false)},
			},
		},
		constraints: map[string][]schema.Constraint{
			"legacy": {
				{Kind: schema.PrimaryKey, Name: "legacy_pkey", Columns: []string{"id"}},
			},
		},
	}
	comparator := &Comparator{Declared: &schema.Schema{}, Inspector: inspector}

	diffs, err := comparator.Compare(context.Background())
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if len(diffs) != 1 {
		t.Fatalf("expected 1 diff, got %d (schemer tracking table must be excluded)", len(diffs))
	}
	removed, ok := diffs[0].(RemoveTable)
	if !ok {
		t.Fatalf("expected RemoveTable, got %T", diffs[0])
	}
	if removed.Table.Name != "legacy" || len(removed.Table.Columns) != 1 {
		t.Fatalf("expected materialized observed table, got: %+v", removed.Table)
	}
	// The descriptor must carry the observed constraints so a downgrade can
	// recreate the table with its primary key.
	if len(removed.Table.Constraints) != 1 {
		t.Fatalf("expected materialized observed constraints, got: %+v", removed.Table.Constraints)
	}
	pk := removed.Table.Constraints[0]
	if pk.Kind != schema.PrimaryKey || pk.Name != "legacy_pkey" || !reflect.DeepEqual(pk.Columns, []string{"id"}) {
		t.Fatalf("expected observed primary key, got: %+v", pk)
	}
	if !reflect.DeepEqual(inspector.columnCalls, []string{"legacy"}) {
		t.Fatalf("expected lazy materialization of legacy only, got calls: %v", inspector.columnCalls)
	}
	if !reflect.DeepEqual(inspector.constraintCalls, []string{"legacy"}) {
		t.Fatalf("expected lazy constraint materialization of legacy only, got calls: %v", inspector.constraintCalls)
	}
}

func TestCompareIdenticalTablesProduceNoDiffs(t *testing.T) {
	inspector := &fakeInspector{
		tables: []string{"users"},
		columns: map[string][]schema.Column{
			"users": {
				{Name: "id", Type: schema.TypeSpec{SQL: "integer"}, Nullable: boolPtr(false)},
				{Name: "name", Type: schema.TypeSpec{SQL: "character varying(80)"}, Nullable: boolPtr(true)},
			},
		},
	}
	comparator := &Comparator{Declared: declaredUsers(), Inspector: inspector}

	diffs, err := comparator.Compare(context.Background())
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(diffs) != 0 {
		t.Fatalf("expected no diffs, got: %+v", diffs)
	}
}

func TestCompareColumnAddAndRemove(t *testing.T) {
	inspector := &fakeInspector{
		tables: []string{"users"},
		columns: map[string][]schema.Column{
			"users": {
				{Name: "id", Type: schema.TypeSpec{SQL: "integer"}, Nullable: boolPtr(false)},
				{Name: "legacy_flag", Type: schema.TypeSpec{SQL: "boolean"}, Nullable: boolPtr(true), Default: schema.Expression("false")},
			},
		},
	}
	comparator := &Comparator{Declared: declaredUsers(), Inspector: inspector}

	diffs, err := comparator.Compare(context.Background())
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(diffs) != 2 {
		t.Fatalf("expected 2 diffs, got %d: %+v", len(diffs), diffs)
	}

	added, ok := diffs[0].(AddColumn)
	if !ok || added.TableName != "users" || added.Column.Name != "name" {
		t.Fatalf("expected AddColumn users.name first, got: %+v", diffs[0])
	}

	removed, ok := diffs[1].(RemoveColumn)
	if !ok || removed.TableName != "users" || removed.Column.Name != "legacy_flag" {
		t.Fatalf("expected RemoveColumn users.legacy_flag, got: %+v", diffs[1])
	}
	// The removed column must be reconstructed from the observed record.
	if removed.Column.Type.SQL != "boolean" || removed.Column.Nullable == nil || !*removed.Column.Nullable {
		t.Fatalf("expected reconstructed observed column, got: %+v", removed.Column)
	}
	if removed.Column.Default == nil {
		t.Fatal("expected reconstructed observed default")
	}
}

func TestCompareUntypedNeverProducesTypeDiff(t *testing.T) {
	mockData := []struct {
		name         string
		observedType string
		declaredType string
	}{
		{name: "observed_untyped", observedType: "", declaredType: "integer"},
		{name: "declared_untyped", observedType: "integer", declaredType: ""},
		{name: "both_untyped", observedType: "", declaredType: ""},
	}

	for _, mock := range mockData {
		t.Run(mock.name, func(t *testing.T) {
			inspector := &fakeInspector{
				tables: []string{"users"},
				columns: map[string][]schema.Column{
					"users": {
						// Nullability also differs so the group is non-empty.
						{Name: "id", Type: schema.TypeSpec{SQL: mock.observedType}, Nullable: boolPtr(true)},
					},
				},
			}
			declared := &schema.Schema{Tables: []schema.Table{{
				Name: "users",
				Columns: []schema.Column{
					{Name: "id", Type: schema.TypeSpec{SQL: mock.declaredType}, Nullable: boolPtr(false)},
				},
			}}}
			comparator := &Comparator{Declared: declared, Inspector: inspector}

			diffs, err := comparator.Compare(context.Background())
			if err != nil {
				t.Fatalf("Compare failed: %v", err)
			}
			if len(diffs) != 1 {
				t.Fatalf("expected 1 composite diff, got %d", len(diffs))
			}
			group, ok := diffs[0].(ColumnChange)
			if !ok {
				t.Fatalf("expected ColumnChange, got %T", diffs[0])
			}
			for _, d := range group.Changes {
				if d.Kind() == KindModifyType {
					t.Fatalf("unresolved type must never produce a type diff: %+v", d)
				}
			}
		})
	}
}

func TestCompareNullableTriState(t *testing.T) {
	mockData := []struct {
		name       string
		observed   *bool
		declared   *bool
		expectDiff bool
	}{
		{name: "equal_true", observed: boolPtr(true), declared: boolPtr(true), expectDiff: false},
		{name: "equal_false", observed: boolPtr(false), declared: boolPtr(false), expectDiff: false},
		{name: "true_vs_false", observed: boolPtr(true), declared: boolPtr(false), expectDiff: true},
		{name: "declared_unspecified", observed: boolPtr(true), declared: nil, expectDiff: true},
		{name: "observed_unknown", observed: nil, declared: boolPtr(false), expectDiff: true},
		{name: "both_unspecified", observed: nil, declared: nil, expectDiff: false},
	}

	for _, mock := range mockData {
		t.Run(mock.name, func(t *testing.T) {
			inspector := &fakeInspector{
				tables: []string{"users"},
				columns: map[string][]schema.Column{
					"users": {
						{Name: "email", Type: schema.TypeSpec{SQL: "text"}, Nullable: mock.observed},
					},
				},
			}
			declared := &schema.Schema{Tables: []schema.Table{{
				Name: "users",
				Columns: []schema.Column{
					{Name: "email", Type: schema.TypeSpec{SQL: "text"}, Nullable: mock.declared},
				},
			}}}
			comparator := &Comparator{Declared: declared, Inspector: inspector}

			diffs, err := comparator.Compare(context.Background())
			if err != nil {
				t.Fatalf("Compare failed: %v", err)
			}
			if !mock.expectDiff {
				if len(diffs) != 0 {
					t.Fatalf("expected no diffs, got: %+v", diffs)
				}
				return
			}
			if len(diffs) != 1 {
				t.Fatalf("expected 1 diff, got %d", len(diffs))
			}
			group := diffs[0].(ColumnChange)
			if len(group.Changes) != 1 || group.Changes[0].Kind() != KindModifyNullable {
				t.Fatalf("expected single ModifyNullable, got: %+v", group.Changes)
			}
			modify := group.Changes[0].(ModifyNullable)
			if modify.Existing.Type == nil || modify.Existing.Type.SQL != "text" {
				t.Fatalf("expected carried observed type, got: %+v", modify.Existing)
			}
		})
	}
}

func TestCompareDefaultShortCircuit(t *testing.T) {
	defaults := &recordingDefaults{result: true}
	inspector := &fakeInspector{
		tables: []string{"users"},
		columns: map[string][]schema.Column{
			"users": {
				{Name: "id", Type: schema.TypeSpec{SQL: "integer"}, Nullable: boolPtr(false)},
			},
		},
	}
	declared := &schema.Schema{Tables: []schema.Table{{
		Name: "users",
		Columns: []schema.Column{
			{Name: "id", Type: schema.TypeSpec{SQL: "integer"}, Nullable: boolPtr(false)},
		},
	}}}
	comparator := &Comparator{Declared: declared, Inspector: inspector, Defaults: defaults}

	diffs, err := comparator.Compare(context.Background())
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(diffs) != 0 {
		t.Fatalf("expected no diffs, got: %+v", diffs)
	}
	if defaults.calls != 0 {
		t.Fatalf("expected predicate to be skipped when both defaults absent, got %d calls", defaults.calls)
	}
}

func TestCompareCompositeGroupOrder(t *testing.T) {
	inspector := &fakeInspector{
		tables: []string{"users"},
		columns: map[string][]schema.Column{
			"users": {
				{Name: "email", Type: schema.TypeSpec{SQL: "character varying(80)"}, Nullable: boolPtr(true), Default: schema.Literal("old")},
			},
		},
	}
	declared := &schema.Schema{Tables: []schema.Table{{
		Name: "users",
		Columns: []schema.Column{
			{Name: "email", Type: schema.TypeSpec{SQL: "character varying(120)"}, Nullable: boolPtr(false), Default: schema.Literal("new")},
		},
	}}}
	comparator := &Comparator{Declared: declared, Inspector: inspector}

	diffs, err := comparator.Compare(context.Background())
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(diffs) != 1 {
		t.Fatalf("expected 1 composite diff, got %d", len(diffs))
	}
	group := diffs[0].(ColumnChange)
	expected := []Kind{KindModifyType, KindModifyNullable, KindModifyDefault}
	if len(group.Changes) != len(expected) {
		t.Fatalf("expected %d changes, got %d", len(expected), len(group.Changes))
	}
	for i, kind := range expected {
		if group.Changes[i].Kind() != kind {
			t.Fatalf("expected kind %d at position %d, got %d", kind, i, group.Changes[i].Kind())
		}
	}

	modifyType := group.Changes[0].(ModifyType)
	if modifyType.Existing.Nullable == nil || !*modifyType.Existing.Nullable {
		t.Fatalf("expected type diff to carry observed nullable, got: %+v", modifyType.Existing)
	}
	if modifyType.Existing.Default == nil || modifyType.Existing.Default.Text != "old" {
		t.Fatalf("expected type diff to carry observed default, got: %+v", modifyType.Existing)
	}
}

func TestCompareDeterministicOrdering(t *testing.T) {
	inspector := &fakeInspector{
		tables: []string{"zulu", "alpha"},
		columns: map[string][]schema.Column{
			"zulu":  {{Name: "id", Type: schema.TypeSpec{SQL: "integer"}, Nullable: boolPtr(false)}},
			"alpha": {{Name: "id", Type: schema.TypeSpec{SQL: "integer"}, Nullable: boolPtr(false)}},
		},
	}
	declared := &schema.Schema{Tables: []schema.Table{
		{Name: "mike", Columns: []schema.Column{{Name: "id", Type: schema.TypeSpec{SQL: "integer"}, Nullable: boolPtr(false)}}},
		{Name: "bravo", Columns: []schema.Column{{Name: "id", Type: schema.TypeSpec{SQL: "integer"}, Nullable: boolPtr(false)}}},
	}}

	run := func() List {
		comparator := &Comparator{
			Declared:  declared,
			Inspector: &fakeInspector{tables: inspector.tables, columns: inspector.columns},
		}
		diffs, err := comparator.Compare(context.Background())
		if err != nil {
			t.Fatalf("Compare failed: %v", err)
		}
		return diffs
	}

	first := run()
	second := run()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two runs over identical inputs diverged:\n%+v\n%+v", first, second)
	}

	// Added tables come first in sorted name order, then removed tables.
	if len(first) != 4 {
		t.Fatalf("expected 4 diffs, got %d", len(first))
	}
	if first[0].(AddTable).Table.Name != "bravo" || first[1].(AddTable).Table.Name != "mike" {
		t.Fatalf("expected added tables bravo, mike in order, got: %+v", first[:2])
	}
	if first[2].(RemoveTable).Table.Name != "alpha" || first[3].(RemoveTable).Table.Name != "zulu" {
		t.Fatalf("expected removed tables alpha, zulu in order, got: %+v", first[2:])
	}
}
