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

import (
	"context"
	"sort"

	"github.com/inskribe/drift/internal/errdrift"
	"github.com/inskribe/drift/internal/glog"
	"github.com/inskribe/drift/internal/inspect"
	"github.com/inskribe/drift/internal/schema"
)

// trackingTable is schemer's migration bookkeeping table. It lives in every
// schemer-managed database and must never show up as drift.
const trackingTable = "schemer"

// Comparator walks a declared schema against the observed schema of a live
// database and produces the ordered diff list.
//
// Types and Defaults are the pluggable per-backend equality predicates; when
// nil, the PostgreSQL implementations are used.
type Comparator struct {
	Declared  *schema.Schema
	Inspector inspect.Inspector
	Types     TypeComparer
	Defaults  DefaultComparer
}

// Compare produces the ordered diff list for one run.
//
// Tables only declared produce AddTable, tables only observed produce
// RemoveTable with a lazily materialized observed descriptor, and tables
// present on both sides are walked column by column. All iteration is in
// sorted name order so two runs over identical inputs produce identical
// lists.
//
// Returns:
//   - List: the ordered diff list, empty when no drift was detected
//   - error: non-nil on a missing schema source or an introspection failure
func (c *Comparator) Compare(ctx context.Context) (List, error) {
	if c.Declared == nil {
		return nil, &errdrift.DriftErr{
			Code:    "0050",
			Message: "cannot compare without a declared schema source.",
		}
	}
	if c.Inspector == nil {
		return nil, &errdrift.DriftErr{
			Code:    "0051",
			Message: "cannot compare without a schema inspector.",
		}
	}

	types := c.Types
	if types == nil {
		types = PostgresTypes{}
	}
	defaults := c.Defaults
	if defaults == nil {
		defaults = PostgresDefaults{}
	}

	observedNames, err := c.Inspector.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	observed := make(map[string]bool)
	for _, name := range observedNames {
		if name == trackingTable {
			continue
		}
		observed[name] = true
	}

	declared := make(map[string]bool)
	for _, name := range c.Declared.TableNames() {
		declared[name] = true
	}

	var diffs List

	for _, name := range sortedNames(declared) {
		if observed[name] {
			continue
		}
		table, _ := c.Declared.Table(name)
		diffs = append(diffs, AddTable{Table: table})
		glog.Info("Detected added table %q", name)
	}

	for _, name := range sortedNames(observed) {
		if declared[name] {
			continue
		}
		columns, err := c.Inspector.ListColumns(ctx, name)
		if err != nil {
			return nil, err
		}
		constraints, err := c.Inspector.ListConstraints(ctx, name)
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, RemoveTable{Table: schema.Table{Name: name, Columns: columns, Constraints: constraints}})
		glog.Info("Detected removed table %q", name)
	}

	for _, name := range sortedNames(declared) {
		if !observed[name] {
			continue
		}
		columns, err := c.Inspector.ListColumns(ctx, name)
		if err != nil {
			return nil, err
		}
		observedColumns := make(map[string]schema.Column, len(columns))
		for _, col := range columns {
			observedColumns[col.Name] = col
		}

		declaredTable, _ := c.Declared.Table(name)
		c.compareColumns(name, observedColumns, declaredTable, &diffs, types, defaults)
	}

	return diffs, nil
}

// compareColumns walks the column sets of one table present on both sides.
// Attribute diffs of a shared column are grouped into one ColumnChange.
func (c *Comparator) compareColumns(tname string, observed map[string]schema.Column, declared schema.Table, diffs *List, types TypeComparer, defaults DefaultComparer) {
	declaredColumns := make(map[string]schema.Column, len(declared.Columns))
	for _, col := range declared.Columns {
		declaredColumns[col.Name] = col
	}

	for _, cname := range sortedColumnNames(declaredColumns) {
		if _, ok := observed[cname]; ok {
			continue
		}
		*diffs = append(*diffs, AddColumn{TableName: tname, Column: declaredColumns[cname]})
		glog.Info("Detected added column %s.%s", tname, cname)
	}

	for _, cname := range sortedColumnNames(observed) {
		if _, ok := declaredColumns[cname]; ok {
			continue
		}
		record := observed[cname]
		*diffs = append(*diffs, RemoveColumn{
			TableName: tname,
			Column: schema.Column{
				Name:     record.Name,
				Type:     record.Type,
				Nullable: record.Nullable,
				Default:  record.Default,
			},
		})
		glog.Info("Detected removed column %s.%s", tname, cname)
	}

	for _, cname := range sortedColumnNames(declaredColumns) {
		observedColumn, ok := observed[cname]
		if !ok {
			continue
		}
		declaredColumn := declaredColumns[cname]

		// Fixed attribute order: type, nullable, default. Downstream
		// dispatch and golden output depend on it being stable.
		var group []Diff
		c.compareType(tname, cname, observedColumn, declaredColumn, &group, types)
		c.compareNullable(tname, cname, observedColumn, declaredColumn, &group)
		c.compareDefault(tname, cname, observedColumn, declaredColumn, &group, defaults)

		if len(group) > 0 {
			*diffs = append(*diffs, ColumnChange{TableName: tname, ColumnName: cname, Changes: group})
		}
	}
}

// compareType appends a ModifyType diff when the pluggable predicate judges
// the types different. An unresolved type on either side is never reported
// as a change; the ambiguity is logged and the column is skipped.
func (c *Comparator) compareType(tname, cname string, observed, declared schema.Column, group *[]Diff, types TypeComparer) {
	if observed.Type.Untyped() {
		glog.Warn("Could not determine database type for column %s.%s", tname, cname)
		return
	}
	if declared.Type.Untyped() {
		glog.Warn("Column %s.%s has no type within the declared schema; cannot compare", tname, cname)
		return
	}

	if !types.CompareType(observed, declared) {
		return
	}

	*group = append(*group, ModifyType{
		TableName:  tname,
		ColumnName: cname,
		Existing: Existing{
			Nullable: observed.Nullable,
			Default:  observed.Default,
		},
		From: observed.Type,
		To:   declared.Type,
	})
	glog.Info("Detected type change from %s to %s on %s.%s", observed.Type, declared.Type, tname, cname)
}

// compareNullable appends a ModifyNullable diff on a strict tri-state
// mismatch: an unspecified flag differs from both true and false.
func (c *Comparator) compareNullable(tname, cname string, observed, declared schema.Column, group *[]Diff) {
	if nullableIdentical(observed.Nullable, declared.Nullable) {
		return
	}

	*group = append(*group, ModifyNullable{
		TableName:  tname,
		ColumnName: cname,
		Existing: Existing{
			Type:    &observed.Type,
			Default: observed.Default,
		},
		From: observed.Nullable,
		To:   declared.Nullable,
	})
	glog.Info("Detected %s on column %s.%s", nullableLabel(declared.Nullable), tname, cname)
}

// compareDefault appends a ModifyDefault diff when the pluggable predicate
// judges the defaults different. Two absent defaults short-circuit to no
// diff without consulting the predicate.
func (c *Comparator) compareDefault(tname, cname string, observed, declared schema.Column, group *[]Diff, defaults DefaultComparer) {
	if observed.Default == nil && declared.Default == nil {
		return
	}

	var renderedDeclared *string
	if rendered, ok := declared.Default.Render(); ok {
		renderedDeclared = &rendered
	} else if declared.Default != nil {
		glog.Warn("Could not render declared default for column %s.%s; treating as absent", tname, cname)
	}

	if !defaults.CompareDefault(observed, declared, renderedDeclared) {
		return
	}

	*group = append(*group, ModifyDefault{
		TableName:  tname,
		ColumnName: cname,
		Existing: Existing{
			Type:     &observed.Type,
			Nullable: observed.Nullable,
		},
		From: observed.Default,
		To:   declared.Default,
	})
	glog.Info("Detected server default change on column %s.%s", tname, cname)
}

// nullableIdentical is the strict tri-state identity check: both unset is
// identical, one side unset is not.
func nullableIdentical(observed, declared *bool) bool {
	if observed == nil || declared == nil {
		return observed == declared
	}
	return *observed == *declared
}

func nullableLabel(nullable *bool) string {
	if nullable == nil {
		return "unspecified nullability"
	}
	if *nullable {
		return "NULL"
	}
	return "NOT NULL"
}

func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedColumnNames(set map[string]schema.Column) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
