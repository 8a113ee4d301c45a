// Package table provides the in-memory tabular data model consumed by the
// chart builders.
//
// A Table is an ordered sequence of named columns of equal length. Cells hold
// scalar values only: any Go integer or float type, or a string. Construction
// validates shape invariants (unique names, equal column lengths, scalar
// cells) so downstream code can rely on them.
//
// Tables can be built directly from columns, or loaded from CSV and XLSX
// files via [FromCSV] and [FromXLSX].
package table

import (
	"fmt"
	"strings"

	"github.com/matzehuels/chartbridge/pkg/errors"
)

// Column is one named, ordered sequence of scalar cell values.
type Column struct {
	Name   string
	Values []any
}

// IsNumeric reports whether every cell in the column is a numeric scalar.
// An empty column is not considered numeric.
func (c Column) IsNumeric() bool {
	if len(c.Values) == 0 {
		return false
	}
	for _, v := range c.Values {
		if _, ok := AsFloat(v); !ok {
			return false
		}
	}
	return true
}

// Floats returns the column's values as float64s. It fails with
// NON_NUMERIC_COLUMN if any cell is not numeric.
func (c Column) Floats() ([]float64, error) {
	out := make([]float64, len(c.Values))
	for i, v := range c.Values {
		f, ok := AsFloat(v)
		if !ok {
			return nil, errors.New(errors.ErrCodeNonNumericColumn,
				"column %q contains non-numeric value at row %d: %v", c.Name, i, v)
		}
		out[i] = f
	}
	return out, nil
}

// Strings returns the column's values cast to strings. Numeric cells are
// formatted with %v, so integral floats keep their integer form.
func (c Column) Strings() []string {
	out := make([]string, len(c.Values))
	for i, v := range c.Values {
		out[i] = fmt.Sprintf("%v", v)
	}
	return out
}

// Table is an ordered collection of equal-length named columns.
// The zero Table is not valid; use [New].
type Table struct {
	cols []Column
}

// New creates a Table from the given columns, validating shape invariants:
// at least one column, unique non-empty names, equal lengths, and scalar
// (numeric or string) cell values. All violations fail with INVALID_INPUT.
func New(cols ...Column) (*Table, error) {
	if len(cols) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "table must have at least one column")
	}

	seen := make(map[string]bool, len(cols))
	rows := len(cols[0].Values)
	for _, c := range cols {
		if err := errors.ValidateColumnName(c.Name); err != nil {
			return nil, err
		}
		if seen[c.Name] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate column name: %q", c.Name)
		}
		seen[c.Name] = true

		if len(c.Values) != rows {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"column %q has %d rows, expected %d", c.Name, len(c.Values), rows)
		}
		for i, v := range c.Values {
			if !isScalar(v) {
				return nil, errors.New(errors.ErrCodeInvalidInput,
					"column %q row %d: unsupported cell type %T", c.Name, i, v)
			}
		}
	}

	// Copy the column slice so callers can't alias the table's internals.
	t := &Table{cols: make([]Column, len(cols))}
	copy(t.cols, cols)
	return t, nil
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.cols[0].Values)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.cols)
}

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column and whether it exists.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.cols {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Columns returns all columns in declaration order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.cols))
	copy(out, t.cols)
	return out
}

// MissingColumns returns the subset of names that do not exist in the table,
// preserving request order. Used to aggregate lookup failures into a single
// error message.
func (t *Table) MissingColumns(names []string) []string {
	var missing []string
	for _, n := range names {
		if _, ok := t.Column(n); !ok {
			missing = append(missing, n)
		}
	}
	return missing
}

// String returns a short shape description, e.g. "table[4x3: category, a, b]".
func (t *Table) String() string {
	return fmt.Sprintf("table[%dx%d: %s]", t.RowCount(), t.ColumnCount(),
		strings.Join(t.ColumnNames(), ", "))
}

// AsFloat converts a scalar cell value to float64 if it is numeric.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// isScalar reports whether v is a supported cell value (numeric or string).
func isScalar(v any) bool {
	if _, ok := AsFloat(v); ok {
		return true
	}
	_, ok := v.(string)
	return ok
}
