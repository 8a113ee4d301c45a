// Package chart maps tabular data to declarative Chart.js-shaped chart
// configurations.
//
// The package implements the full data-to-config pipeline:
//
//  1. Resolve: determine which table columns serve as labels, values,
//     radius, and grouping (explicit names or type-driven inference)
//  2. Build: emit the chart-family-specific dataset structures with
//     deterministic palette colors
//  3. Merge: deep-merge per-type default options with caller overrides
//
// The resulting [Config] is handed directly to the external charting library;
// its field names and nesting match that library's documented configuration
// schema and must not be changed.
//
// # Usage
//
//	tbl, _ := table.New(
//	    table.Column{Name: "category", Values: []any{"A", "B", "C", "D"}},
//	    table.Column{Name: "values", Values: []any{10.0, 15.0, 8.0, 12.0}},
//	)
//	cfg, err := chart.Build(tbl, chart.TypeBar, chart.BuildOptions{
//	    LabelColumn: "category",
//	    Values:      chart.ValueSpec{Columns: []string{"values"}},
//	})
package chart

import (
	"strings"

	"github.com/matzehuels/chartbridge/pkg/errors"
	"github.com/matzehuels/chartbridge/pkg/observability"
	"github.com/matzehuels/chartbridge/pkg/options"
	"github.com/matzehuels/chartbridge/pkg/table"
)

// Type identifies a supported chart type.
type Type string

// The eight supported chart types.
const (
	TypeBar       Type = "bar"
	TypeLine      Type = "line"
	TypeScatter   Type = "scatter"
	TypeBubble    Type = "bubble"
	TypePie       Type = "pie"
	TypeDoughnut  Type = "doughnut"
	TypeRadar     Type = "radar"
	TypePolarArea Type = "polarArea"
)

// Types lists the supported chart types in a stable order.
var Types = []Type{
	TypeBar, TypeLine, TypeScatter, TypeBubble,
	TypePie, TypeDoughnut, TypeRadar, TypePolarArea,
}

// Family groups chart types sharing a dataset builder shape.
type Family string

// Chart families.
const (
	FamilyCategory Family = "category" // bar, line, radar
	FamilySegment  Family = "segment"  // pie, doughnut, polarArea
	FamilyPoint    Family = "point"    // scatter, bubble
)

// families maps each chart type to its builder family.
var families = map[Type]Family{
	TypeBar:       FamilyCategory,
	TypeLine:      FamilyCategory,
	TypeRadar:     FamilyCategory,
	TypePie:       FamilySegment,
	TypeDoughnut:  FamilySegment,
	TypePolarArea: FamilySegment,
	TypeScatter:   FamilyPoint,
	TypeBubble:    FamilyPoint,
}

// Valid reports whether t is one of the supported chart types.
func (t Type) Valid() bool {
	_, ok := families[t]
	return ok
}

// Family returns the builder family for t. Only valid for supported types.
func (t Type) Family() Family {
	return families[t]
}

// Meta records which table columns fill which chart roles. It is returned
// with every built configuration so later update calls can reconstruct the
// same shape without re-specifying columns.
type Meta struct {
	LabelColumn  string   `json:"labelColumn,omitempty"`
	ValueColumns []string `json:"valueColumns,omitempty"`
	RadiusColumn string   `json:"radiusColumn,omitempty"`
	GroupColumn  string   `json:"groupColumn,omitempty"`
}

// Merge overlays non-empty fields of override onto m, key by key, and
// returns the result. Neither receiver nor argument is modified.
func (m Meta) Merge(override Meta) Meta {
	out := m
	if override.LabelColumn != "" {
		out.LabelColumn = override.LabelColumn
	}
	if len(override.ValueColumns) > 0 {
		out.ValueColumns = override.ValueColumns
	}
	if override.RadiusColumn != "" {
		out.RadiusColumn = override.RadiusColumn
	}
	if override.GroupColumn != "" {
		out.GroupColumn = override.GroupColumn
	}
	return out
}

// Spec returns the value-spec equivalent of m, for re-resolving against new
// data.
func (m Meta) Spec() ValueSpec {
	return ValueSpec{
		Columns: m.ValueColumns,
		Radius:  m.RadiusColumn,
		Group:   m.GroupColumn,
	}
}

// Point is a single scatter data point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BubblePoint is a single bubble data point. The radius field is always
// serialized; bubbles without a radius are not a valid shape.
type BubblePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

// Dataset is one named series handed to the external charting library.
// The JSON field names are the library's documented configuration schema
// and form the wire contract.
type Dataset struct {
	Label           string   `json:"label,omitempty"`
	Data            any      `json:"data"`
	BackgroundColor any      `json:"backgroundColor,omitempty"`
	BorderColor     string   `json:"borderColor,omitempty"`
	BorderWidth     float64  `json:"borderWidth,omitempty"`
	Fill            *bool    `json:"fill,omitempty"`
	Tension         float64  `json:"tension,omitempty"`
	PointRadius     *float64 `json:"pointRadius,omitempty"`
}

// Data holds the labels and datasets of a built chart. Labels are omitted
// entirely (not an empty array) for point-family charts, whose points
// self-describe their x position.
type Data struct {
	Labels   []string  `json:"labels,omitempty"`
	Datasets []Dataset `json:"datasets"`
}

// Config is the assembled chart configuration for the rendering boundary.
type Config struct {
	Type    Type         `json:"type"`
	Data    Data         `json:"data"`
	Options options.Tree `json:"options,omitempty"`
	Meta    Meta         `json:"meta"`
}

// BuildOptions are the caller-supplied arguments to [Build].
type BuildOptions struct {
	// LabelColumn names the column used for category labels (category and
	// segment families) or x values (point family). When empty, a
	// family-specific default applies.
	LabelColumn string

	// Values selects the value, radius, and grouping columns. When no value
	// columns are named, numeric columns are inferred in table order.
	Values ValueSpec

	// Options is a caller-supplied override tree deep-merged over the
	// per-type defaults.
	Options options.Tree
}

// Build assembles a complete chart configuration from a table.
//
// Build validates the chart type and table shape, resolves column roles,
// dispatches to the family's dataset builder, and merges the per-type default
// options with the caller's overrides. On success the returned configuration
// always carries at least one dataset. All failures are immediate and
// complete: no partial configuration is ever returned.
func Build(tbl *table.Table, typ Type, opts BuildOptions) (*Config, error) {
	hooks := observability.Build()
	hooks.OnBuildStart(typ.String(), string(typ.Family()))

	cfg, err := build(tbl, typ, opts)
	hooks.OnBuildComplete(typ.String(), err)
	return cfg, err
}

func build(tbl *table.Table, typ Type, opts BuildOptions) (*Config, error) {
	data, meta, err := BuildData(tbl, typ, opts.LabelColumn, opts.Values)
	if err != nil {
		return nil, err
	}

	return &Config{
		Type:    typ,
		Data:    data,
		Options: options.Merge(DefaultsFor(typ), opts.Options),
		Meta:    meta,
	}, nil
}

// BuildData resolves column roles and builds only the data block for a chart,
// without touching options. The live-update bridge uses it to produce
// replacement {data, meta} payloads for an already-rendered instance.
func BuildData(tbl *table.Table, typ Type, labelCol string, spec ValueSpec) (Data, Meta, error) {
	if !typ.Valid() {
		return Data{}, Meta{}, errors.New(errors.ErrCodeUnsupportedChartType,
			"unsupported chart type %q (valid types: %s)", typ, typeList())
	}
	if tbl == nil || tbl.ColumnCount() == 0 {
		return Data{}, Meta{}, errors.New(errors.ErrCodeInvalidInput, "data is not table-shaped")
	}

	meta, err := Resolve(tbl, labelCol, spec, typ.Family())
	if err != nil {
		return Data{}, Meta{}, err
	}

	var data Data
	switch typ.Family() {
	case FamilyCategory:
		data, err = buildCategory(tbl, meta, typ)
	case FamilySegment:
		data, err = buildSegment(tbl, meta)
	case FamilyPoint:
		data, err = buildPoint(tbl, meta, typ)
	}
	if err != nil {
		return Data{}, Meta{}, err
	}

	return data, meta, nil
}

// String returns the type's wire name.
func (t Type) String() string {
	return string(t)
}

// typeList formats the valid chart types for error messages.
func typeList() string {
	names := make([]string, len(Types))
	for i, t := range Types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
