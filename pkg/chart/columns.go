package chart

import (
	"strings"

	"github.com/matzehuels/chartbridge/pkg/errors"
	"github.com/matzehuels/chartbridge/pkg/table"
)

// ValueSpec selects the value, radius, and grouping columns for a build.
type ValueSpec struct {
	// Columns names the value columns in series order. When empty, numeric
	// columns are inferred in table order (except for bubble charts, which
	// never infer).
	Columns []string

	// Radius names the bubble radius column. Required for bubble charts,
	// ignored elsewhere.
	Radius string

	// Group names an optional column partitioning point rows into one
	// dataset per distinct value.
	Group string
}

// Values is a convenience constructor for a plain value-column selection.
func Values(names ...string) ValueSpec {
	return ValueSpec{Columns: names}
}

// Resolve computes the column-role mapping for one build call.
//
// Label resolution: an explicit label column must exist. Without one,
// category charts fall back to row indices (represented by an empty
// LabelColumn), segment charts use the table's first column, and point
// charts use the first uniformly numeric column as the shared x axis.
//
// Value resolution: explicitly named columns must all exist and be uniformly
// numeric; failures name every offending column in a single error. Without an
// explicit spec, all numeric columns not already holding a role are used in
// table order (segment charts keep only the first). Segment charts carry a
// single series, so naming more than one value column explicitly is rejected
// rather than silently truncated. Bubble charts never infer: both the value
// and the radius column are mandatory.
func Resolve(tbl *table.Table, labelCol string, spec ValueSpec, fam Family) (Meta, error) {
	if tbl == nil || tbl.ColumnCount() == 0 {
		return Meta{}, errors.New(errors.ErrCodeInvalidInput, "data is not table-shaped")
	}

	// Label existence is its own check, separate from value resolution.
	if labelCol != "" {
		if _, ok := tbl.Column(labelCol); !ok {
			return Meta{}, errors.New(errors.ErrCodeColumnNotFound,
				"column(s) not found: %s", labelCol)
		}
	} else if fam == FamilySegment {
		labelCol = tbl.ColumnNames()[0]
	}

	// Aggregate all missing names from the value spec into one failure.
	var requested []string
	requested = append(requested, spec.Columns...)
	if spec.Radius != "" {
		requested = append(requested, spec.Radius)
	}
	if spec.Group != "" {
		requested = append(requested, spec.Group)
	}
	if missing := tbl.MissingColumns(requested); len(missing) > 0 {
		return Meta{}, errors.New(errors.ErrCodeColumnNotFound,
			"column(s) not found: %s", strings.Join(missing, ", "))
	}

	meta := Meta{
		LabelColumn:  labelCol,
		RadiusColumn: spec.Radius,
		GroupColumn:  spec.Group,
	}

	if fam == FamilyPoint {
		return resolvePoint(tbl, meta, spec)
	}

	if fam == FamilySegment && len(spec.Columns) > 1 {
		return Meta{}, errors.New(errors.ErrCodeInvalidInput,
			"pie, doughnut, and polarArea charts take exactly one value column, got %d", len(spec.Columns))
	}

	values := spec.Columns
	if len(values) == 0 {
		values = inferNumeric(tbl, meta)
		if len(values) == 0 {
			return Meta{}, errors.New(errors.ErrCodeNoNumericColumns,
				"no numeric columns available for values")
		}
		if fam == FamilySegment {
			// Segment charts carry a single series; take the first
			// numeric column deterministically.
			values = values[:1]
		}
	}

	if err := requireNumeric(tbl, values); err != nil {
		return Meta{}, err
	}

	meta.ValueColumns = values
	return meta, nil
}

// resolvePoint handles the point family's extra requirements: a numeric
// shared x column, and for bubbles a mandatory value and radius column.
func resolvePoint(tbl *table.Table, meta Meta, spec ValueSpec) (Meta, error) {
	if spec.Radius != "" {
		// Bubble path: value and radius are mandatory, never inferred.
		if len(spec.Columns) == 0 {
			return Meta{}, errors.New(errors.ErrCodeMissingColumn,
				"bubble charts require an explicit value column")
		}
		if len(spec.Columns) > 1 {
			return Meta{}, errors.New(errors.ErrCodeInvalidInput,
				"bubble charts take exactly one value column, got %d", len(spec.Columns))
		}
	}

	// Resolve the shared x column.
	if meta.LabelColumn == "" {
		for _, c := range tbl.Columns() {
			if c.Name == spec.Radius || c.Name == spec.Group || containsName(spec.Columns, c.Name) {
				continue
			}
			if c.IsNumeric() {
				meta.LabelColumn = c.Name
				break
			}
		}
		if meta.LabelColumn == "" {
			return Meta{}, errors.New(errors.ErrCodeNoNumericColumns,
				"no numeric column available for the x axis")
		}
	}

	values := spec.Columns
	if len(values) == 0 {
		values = inferNumeric(tbl, meta)
		if len(values) == 0 {
			return Meta{}, errors.New(errors.ErrCodeNoNumericColumns,
				"no numeric columns available for values")
		}
	}

	numericCols := append([]string{meta.LabelColumn}, values...)
	if meta.RadiusColumn != "" {
		numericCols = append(numericCols, meta.RadiusColumn)
	}
	if err := requireNumeric(tbl, numericCols); err != nil {
		return Meta{}, err
	}

	meta.ValueColumns = values
	return meta, nil
}

// inferNumeric returns the names of all uniformly numeric columns that do not
// already hold a role, in table-declared order.
func inferNumeric(tbl *table.Table, meta Meta) []string {
	var out []string
	for _, c := range tbl.Columns() {
		switch c.Name {
		case meta.LabelColumn, meta.RadiusColumn, meta.GroupColumn:
			continue
		}
		if c.IsNumeric() {
			out = append(out, c.Name)
		}
	}
	return out
}

// requireNumeric validates that every named column is uniformly numeric,
// naming all offenders in a single error.
func requireNumeric(tbl *table.Table, names []string) error {
	var offending []string
	for _, n := range names {
		c, ok := tbl.Column(n)
		if ok && !c.IsNumeric() {
			offending = append(offending, n)
		}
	}
	if len(offending) > 0 {
		return errors.New(errors.ErrCodeNonNumericColumn,
			"column(s) contain non-numeric values: %s", strings.Join(offending, ", "))
	}
	return nil
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
