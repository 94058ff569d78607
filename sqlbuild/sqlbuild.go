// Package sqlbuild turns a partial set of field/value pairs into the SET
// fragment of a parameterized UPDATE statement plus the positional argument
// slice that goes with it. It is deliberately tiny: no schema knowledge,
// no value validation, no statement execution — callers own the
// `UPDATE <table> SET <clause> WHERE ...` text and the driver call.
//
// Column names and the field→column map are trusted, application-supplied
// inputs. The package does not guard against identifier injection; never
// feed it end-user strings as field names.
package sqlbuild

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoUpdateData is returned when a clause is requested for zero fields.
// An empty SET clause is not valid SQL, so this is the one input the
// package rejects.
var ErrNoUpdateData = errors.New("jobly/sqlbuild: no data to update")

// ─────────────────────────────────────────────────────────────────────────────
// UpdateData — insertion-ordered field/value pairs
// ─────────────────────────────────────────────────────────────────────────────

// UpdateData collects the fields of a partial update in insertion order.
// Order matters: the i-th field binds placeholder $<i+1>, so a plain Go map
// (unordered iteration) cannot back this type.
//
// Setting a field that is already present overwrites its value but keeps the
// field's original position, so keys stay unique and output stays
// deterministic.
type UpdateData struct {
	fields []string
	values map[string]any
}

// NewUpdateData returns an empty UpdateData ready for chained Set calls:
//
//	data := sqlbuild.NewUpdateData().
//	    Set("firstName", "Aliya").
//	    Set("age", 32)
func NewUpdateData() *UpdateData {
	return &UpdateData{values: make(map[string]any)}
}

// Set records a field/value pair and returns the receiver for chaining.
func (d *UpdateData) Set(field string, value any) *UpdateData {
	if _, ok := d.values[field]; !ok {
		d.fields = append(d.fields, field)
	}
	d.values[field] = value
	return d
}

// Len reports the number of distinct fields recorded.
func (d *UpdateData) Len() int {
	if d == nil {
		return 0
	}
	return len(d.fields)
}

// Fields returns the field names in insertion order. The returned slice is a
// copy; mutating it does not affect the UpdateData.
func (d *UpdateData) Fields() []string {
	out := make([]string, len(d.fields))
	copy(out, d.fields)
	return out
}

// Value returns the recorded value for field and whether it is present.
func (d *UpdateData) Value(field string) (any, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.values[field]
	return v, ok
}

// ─────────────────────────────────────────────────────────────────────────────
// ColumnMap
// ─────────────────────────────────────────────────────────────────────────────

// ColumnMap translates field names (as callers know them, e.g. camelCase API
// names) to column names (as the table declares them, e.g. snake_case).
// A nil or empty map is valid; any field absent from the map is assumed to
// already be the column name.
//
// ColumnMaps are meant to be declared once per entity and treated as static,
// trusted tables — they are never derived from untrusted input.
type ColumnMap map[string]string

// column resolves a field name, falling back to the field itself.
func (m ColumnMap) column(field string) string {
	if col, ok := m[field]; ok {
		return col
	}
	return field
}

// ─────────────────────────────────────────────────────────────────────────────
// ForPartialUpdate
// ─────────────────────────────────────────────────────────────────────────────

// Clause is the output of ForPartialUpdate: the SET-clause text and the
// positional arguments bound to its placeholders. Placeholder $k always
// refers to Values[k-1].
type Clause struct {
	// SetCols is the comma-joined assignment list, e.g.
	// `"first_name"=$1, "age"=$2`. Column names are always double-quoted so
	// mixed-case and reserved-word columns survive the target dialect.
	SetCols string

	// Values holds the field values in the same order as the fragments in
	// SetCols.
	Values []any
}

// ForPartialUpdate builds the SET clause for updating exactly the fields in
// data. Fields are emitted in insertion order; the i-th field (0-based)
// becomes `"<column>"=$<i+1>` and its value lands at Values[i]. cols may be
// nil.
//
// Returns ErrNoUpdateData when data holds no fields. Nothing else is
// validated: cols need not cover data's fields, and unused cols entries are
// ignored.
//
// The result slots into a parameterized statement verbatim:
//
//	clause, err := sqlbuild.ForPartialUpdate(data, models.CompanyColumns)
//	if err != nil { ... }
//	query := fmt.Sprintf(`UPDATE companies SET %s WHERE handle = $%d`,
//	    clause.SetCols, len(clause.Values)+1)
//	args := append(clause.Values, handle)
func ForPartialUpdate(data *UpdateData, cols ColumnMap) (Clause, error) {
	if data.Len() == 0 {
		return Clause{}, ErrNoUpdateData
	}

	frags := make([]string, 0, len(data.fields))
	values := make([]any, 0, len(data.fields))
	for i, field := range data.fields {
		frags = append(frags, fmt.Sprintf("%q=$%d", cols.column(field), i+1))
		values = append(values, data.values[field])
	}

	return Clause{
		SetCols: strings.Join(frags, ", "),
		Values:  values,
	}, nil
}
