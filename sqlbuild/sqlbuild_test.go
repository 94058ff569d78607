package sqlbuild_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/cedge2/jobly/sqlbuild"
)

// ─────────────────────────────────────────────────────────────────────────────
// ForPartialUpdate — happy paths
// ─────────────────────────────────────────────────────────────────────────────

func TestForPartialUpdate_MappedAndUnmappedFields(t *testing.T) {
	data := sqlbuild.NewUpdateData().
		Set("firstName", "Aliya").
		Set("age", 32)

	clause, err := sqlbuild.ForPartialUpdate(data, sqlbuild.ColumnMap{
		"firstName": "first_name",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := `"first_name"=$1, "age"=$2`
	if clause.SetCols != want {
		t.Fatalf("SetCols = %q, want %q", clause.SetCols, want)
	}
	if !reflect.DeepEqual(clause.Values, []any{"Aliya", 32}) {
		t.Fatalf("Values = %#v, want [Aliya 32]", clause.Values)
	}
}

func TestForPartialUpdate_SingleFieldEmptyMap(t *testing.T) {
	data := sqlbuild.NewUpdateData().Set("age", 45)

	clause, err := sqlbuild.ForPartialUpdate(data, sqlbuild.ColumnMap{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if clause.SetCols != `"age"=$1` {
		t.Fatalf("SetCols = %q", clause.SetCols)
	}
	if !reflect.DeepEqual(clause.Values, []any{45}) {
		t.Fatalf("Values = %#v", clause.Values)
	}
}

func TestForPartialUpdate_NilMap(t *testing.T) {
	data := sqlbuild.NewUpdateData().Set("logoUrl", "x.png")

	clause, err := sqlbuild.ForPartialUpdate(data, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// Absent map means the field name already is the column name.
	if clause.SetCols != `"logoUrl"=$1` {
		t.Fatalf("SetCols = %q", clause.SetCols)
	}
}

func TestForPartialUpdate_FullyMapped(t *testing.T) {
	data := sqlbuild.NewUpdateData().
		Set("numEmployees", 10).
		Set("logoUrl", "x.png")

	clause, err := sqlbuild.ForPartialUpdate(data, sqlbuild.ColumnMap{
		"numEmployees": "num_employees",
		"logoUrl":      "logo_url",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := `"num_employees"=$1, "logo_url"=$2`
	if clause.SetCols != want {
		t.Fatalf("SetCols = %q, want %q", clause.SetCols, want)
	}
	if !reflect.DeepEqual(clause.Values, []any{10, "x.png"}) {
		t.Fatalf("Values = %#v", clause.Values)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Empty input
// ─────────────────────────────────────────────────────────────────────────────

func TestForPartialUpdate_EmptyData(t *testing.T) {
	for name, cols := range map[string]sqlbuild.ColumnMap{
		"nil map":       nil,
		"empty map":     {},
		"populated map": {"firstName": "first_name"},
	} {
		_, err := sqlbuild.ForPartialUpdate(sqlbuild.NewUpdateData(), cols)
		if !errors.Is(err, sqlbuild.ErrNoUpdateData) {
			t.Fatalf("%s: expected ErrNoUpdateData, got %v", name, err)
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Ordering and placeholder/value alignment
// ─────────────────────────────────────────────────────────────────────────────

func TestForPartialUpdate_PlaceholdersMatchValueOrder(t *testing.T) {
	fields := []string{"e", "a", "c", "b", "d"}
	data := sqlbuild.NewUpdateData()
	for i, f := range fields {
		data.Set(f, i*10)
	}

	clause, err := sqlbuild.ForPartialUpdate(data, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	frags := strings.Split(clause.SetCols, ", ")
	if len(frags) != len(fields) {
		t.Fatalf("expected %d fragments, got %d", len(fields), len(frags))
	}
	if len(clause.Values) != len(fields) {
		t.Fatalf("expected %d values, got %d", len(fields), len(clause.Values))
	}

	// Insertion order survives, fragment i carries placeholder $<i+1>, and
	// Values[i] is the i-th field's value.
	for i, f := range fields {
		wantFrag := `"` + f + `"=$` + string(rune('1'+i))
		if frags[i] != wantFrag {
			t.Fatalf("fragment %d = %q, want %q", i, frags[i], wantFrag)
		}
		if clause.Values[i] != i*10 {
			t.Fatalf("Values[%d] = %v, want %d", i, clause.Values[i], i*10)
		}
	}
}

func TestForPartialUpdate_Idempotent(t *testing.T) {
	build := func() sqlbuild.Clause {
		data := sqlbuild.NewUpdateData().
			Set("firstName", "Aliya").
			Set("lastName", "Khan").
			Set("isAdmin", true)
		clause, err := sqlbuild.ForPartialUpdate(data, sqlbuild.ColumnMap{
			"firstName": "first_name",
			"lastName":  "last_name",
			"isAdmin":   "is_admin",
		})
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		return clause
	}

	a, b := build(), build()
	if a.SetCols != b.SetCols {
		t.Fatalf("SetCols differ: %q vs %q", a.SetCols, b.SetCols)
	}
	if !reflect.DeepEqual(a.Values, b.Values) {
		t.Fatalf("Values differ: %#v vs %#v", a.Values, b.Values)
	}
}

func TestForPartialUpdate_NilValuesAreBound(t *testing.T) {
	data := sqlbuild.NewUpdateData().Set("description", nil)

	clause, err := sqlbuild.ForPartialUpdate(data, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if clause.SetCols != `"description"=$1` {
		t.Fatalf("SetCols = %q", clause.SetCols)
	}
	if len(clause.Values) != 1 || clause.Values[0] != nil {
		t.Fatalf("Values = %#v, want [nil]", clause.Values)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdateData semantics
// ─────────────────────────────────────────────────────────────────────────────

func TestUpdateData_SetOverwritesKeepingPosition(t *testing.T) {
	data := sqlbuild.NewUpdateData().
		Set("name", "first").
		Set("handle", "acme").
		Set("name", "second") // overwrite, must keep slot 0

	if data.Len() != 2 {
		t.Fatalf("Len = %d, want 2", data.Len())
	}

	clause, err := sqlbuild.ForPartialUpdate(data, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if clause.SetCols != `"name"=$1, "handle"=$2` {
		t.Fatalf("SetCols = %q", clause.SetCols)
	}
	if !reflect.DeepEqual(clause.Values, []any{"second", "acme"}) {
		t.Fatalf("Values = %#v", clause.Values)
	}
}

func TestUpdateData_FieldsReturnsCopy(t *testing.T) {
	data := sqlbuild.NewUpdateData().Set("a", 1).Set("b", 2)

	fields := data.Fields()
	fields[0] = "mutated"

	if got := data.Fields()[0]; got != "a" {
		t.Fatalf("internal order mutated: %q", got)
	}
}

func TestUpdateData_Value(t *testing.T) {
	data := sqlbuild.NewUpdateData().Set("age", 32)

	if v, ok := data.Value("age"); !ok || v != 32 {
		t.Fatalf("Value(age) = %v, %v", v, ok)
	}
	if _, ok := data.Value("missing"); ok {
		t.Fatal("expected missing field to report !ok")
	}
}
