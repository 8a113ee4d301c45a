package chart

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/chartbridge/pkg/errors"
	"github.com/matzehuels/chartbridge/pkg/options"
	"github.com/matzehuels/chartbridge/pkg/table"
)

func TestBuild_BarScenario(t *testing.T) {
	tbl := testTable(t,
		table.Column{Name: "category", Values: []any{"A", "B", "C", "D"}},
		table.Column{Name: "values", Values: []any{10.0, 15.0, 8.0, 12.0}},
	)

	cfg, err := Build(tbl, TypeBar, BuildOptions{
		LabelColumn: "category",
		Values:      Values("values"),
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if cfg.Type != TypeBar {
		t.Errorf("Type = %q, want bar", cfg.Type)
	}
	wantLabels := []string{"A", "B", "C", "D"}
	if !reflect.DeepEqual(cfg.Data.Labels, wantLabels) {
		t.Errorf("Labels = %v, want %v", cfg.Data.Labels, wantLabels)
	}
	if len(cfg.Data.Datasets) != 1 {
		t.Fatalf("len(Datasets) = %d, want 1", len(cfg.Data.Datasets))
	}
	ds := cfg.Data.Datasets[0]
	if ds.Label != "values" {
		t.Errorf("dataset label = %q, want values", ds.Label)
	}
	wantData := []float64{10, 15, 8, 12}
	if !reflect.DeepEqual(ds.Data, wantData) {
		t.Errorf("dataset data = %v, want %v", ds.Data, wantData)
	}
	if ds.BackgroundColor != palette[0] || ds.BorderColor != palette[0] {
		t.Errorf("colors = %v/%v, want first palette color for both", ds.BackgroundColor, ds.BorderColor)
	}
	if cfg.Meta.LabelColumn != "category" || cfg.Meta.ValueColumns[0] != "values" {
		t.Errorf("Meta = %+v, want recorded column roles", cfg.Meta)
	}
}

func TestBuild_UnsupportedType(t *testing.T) {
	tbl := salesTable(t)

	_, err := Build(tbl, Type("sankey"), BuildOptions{})
	if !errors.Is(err, errors.ErrCodeUnsupportedChartType) {
		t.Fatalf("error = %v, want UNSUPPORTED_CHART_TYPE", err)
	}

	// The message names the offending value and lists the valid ones.
	msg := err.Error()
	if !strings.Contains(msg, "sankey") {
		t.Errorf("error %q should name the offending type", msg)
	}
	for _, typ := range Types {
		if !strings.Contains(msg, string(typ)) {
			t.Errorf("error %q should list valid type %q", msg, typ)
		}
	}
}

func TestBuild_NilTable(t *testing.T) {
	_, err := Build(nil, TypeBar, BuildOptions{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("error = %v, want INVALID_INPUT", err)
	}
}

func TestBuild_CategoryRowIndexLabels(t *testing.T) {
	tbl := testTable(t,
		table.Column{Name: "a", Values: []any{1.0, 2.0, 3.0}},
	)

	cfg, err := Build(tbl, TypeLine, BuildOptions{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !reflect.DeepEqual(cfg.Data.Labels, []string{"0", "1", "2"}) {
		t.Errorf("Labels = %v, want row indices", cfg.Data.Labels)
	}
}

func TestBuild_LineDefaultsToUnfilled(t *testing.T) {
	cfg, err := Build(salesTable(t), TypeLine, BuildOptions{LabelColumn: "region"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for _, ds := range cfg.Data.Datasets {
		if ds.Fill == nil || *ds.Fill {
			t.Errorf("dataset %q fill = %v, want explicit false", ds.Label, ds.Fill)
		}
	}
}

func TestBuild_RadarFillsAtLowAlpha(t *testing.T) {
	cfg, err := Build(salesTable(t), TypeRadar, BuildOptions{LabelColumn: "region"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	ds := cfg.Data.Datasets[0]
	if ds.BorderColor != palette[0] {
		t.Errorf("border = %v, want full-strength palette color", ds.BorderColor)
	}
	if want := WithAlpha(palette[0], radarFillAlpha); ds.BackgroundColor != want {
		t.Errorf("background = %v, want %v", ds.BackgroundColor, want)
	}
}

func TestBuild_DatasetLengthsMatchRowCount(t *testing.T) {
	tbl := salesTable(t)

	for _, typ := range []Type{TypeBar, TypeLine, TypeRadar, TypePie, TypeDoughnut, TypePolarArea} {
		t.Run(string(typ), func(t *testing.T) {
			cfg, err := Build(tbl, typ, BuildOptions{LabelColumn: "region"})
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if len(cfg.Data.Datasets) == 0 {
				t.Fatal("datasets must never be empty on success")
			}
			for _, ds := range cfg.Data.Datasets {
				values, ok := ds.Data.([]float64)
				if !ok {
					t.Fatalf("dataset data has type %T, want []float64", ds.Data)
				}
				if len(values) != tbl.RowCount() {
					t.Errorf("dataset %q has %d values, want %d", ds.Label, len(values), tbl.RowCount())
				}
			}
		})
	}
}

func TestBuild_SegmentColorsPerRow(t *testing.T) {
	tbl := testTable(t,
		table.Column{Name: "slice", Values: []any{"a", "b", "c", "d", "e"}},
		table.Column{Name: "share", Values: []any{5.0, 4.0, 3.0, 2.0, 1.0}},
	)

	cfg, err := Build(tbl, TypePie, BuildOptions{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(cfg.Data.Datasets) != 1 {
		t.Fatalf("len(Datasets) = %d, want exactly 1 for segment charts", len(cfg.Data.Datasets))
	}

	colors, ok := cfg.Data.Datasets[0].BackgroundColor.([]string)
	if !ok {
		t.Fatalf("backgroundColor has type %T, want []string", cfg.Data.Datasets[0].BackgroundColor)
	}
	if len(colors) != tbl.RowCount() {
		t.Errorf("len(backgroundColor) = %d, want row count %d", len(colors), tbl.RowCount())
	}
}

func TestBuild_SegmentMultipleValueColumns(t *testing.T) {
	tbl := testTable(t,
		table.Column{Name: "slice", Values: []any{"a", "b", "c"}},
		table.Column{Name: "n1", Values: []any{1.0, 2.0, 3.0}},
		table.Column{Name: "n2", Values: []any{4.0, 5.0, 6.0}},
	)

	cfg, err := Build(tbl, TypePie, BuildOptions{
		Values: Values("n1", "n2"),
	})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("error = %v, want INVALID_INPUT", err)
	}
	if cfg != nil {
		t.Errorf("Build() = %+v, want nil config on failure", cfg)
	}
}

func TestBuild_Scatter(t *testing.T) {
	tbl := testTable(t,
		table.Column{Name: "x", Values: []any{1.0, 2.0, 3.0}},
		table.Column{Name: "y1", Values: []any{4.0, 5.0, 6.0}},
		table.Column{Name: "y2", Values: []any{7.0, 8.0, 9.0}},
	)

	cfg, err := Build(tbl, TypeScatter, BuildOptions{
		LabelColumn: "x",
		Values:      Values("y1", "y2"),
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if cfg.Data.Labels != nil {
		t.Errorf("Labels = %v, want omitted for point family", cfg.Data.Labels)
	}
	if len(cfg.Data.Datasets) != 2 {
		t.Fatalf("len(Datasets) = %d, want one per y column", len(cfg.Data.Datasets))
	}

	points := cfg.Data.Datasets[1].Data.([]Point)
	if len(points) != 3 {
		t.Fatalf("len(points) = %d, want 3", len(points))
	}
	if points[2] != (Point{X: 3, Y: 9}) {
		t.Errorf("points[2] = %+v, want {3 9}", points[2])
	}
}

func TestBuild_BubbleMissingRadius(t *testing.T) {
	tbl := testTable(t,
		table.Column{Name: "x", Values: []any{20.0, 30.0}},
		table.Column{Name: "y", Values: []any{30.0, 50.0}},
		table.Column{Name: "r", Values: []any{10.0, 15.0}},
	)

	_, err := Build(tbl, TypeBubble, BuildOptions{
		LabelColumn: "x",
		Values:      Values("y"),
	})
	if !errors.Is(err, errors.ErrCodeMissingColumn) {
		t.Fatalf("error = %v, want MISSING_REQUIRED_COLUMN", err)
	}
}

func TestBuild_BubbleGrouped(t *testing.T) {
	tbl := testTable(t,
		table.Column{Name: "x", Values: []any{1.0, 2.0, 3.0, 4.0}},
		table.Column{Name: "y", Values: []any{5.0, 6.0, 7.0, 8.0}},
		table.Column{Name: "r", Values: []any{2.0, 3.0, 4.0, 5.0}},
		table.Column{Name: "team", Values: []any{"blue", "red", "blue", "red"}},
	)

	cfg, err := Build(tbl, TypeBubble, BuildOptions{
		LabelColumn: "x",
		Values:      ValueSpec{Columns: []string{"y"}, Radius: "r", Group: "team"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// One dataset per distinct group value, in first-seen order.
	if len(cfg.Data.Datasets) != 2 {
		t.Fatalf("len(Datasets) = %d, want 2", len(cfg.Data.Datasets))
	}
	if cfg.Data.Datasets[0].Label != "blue" || cfg.Data.Datasets[1].Label != "red" {
		t.Errorf("dataset labels = %q, %q, want first-seen order blue, red",
			cfg.Data.Datasets[0].Label, cfg.Data.Datasets[1].Label)
	}

	// Points sum to the row count across partitioned datasets.
	total := 0
	for _, ds := range cfg.Data.Datasets {
		total += len(ds.Data.([]BubblePoint))
	}
	if total != tbl.RowCount() {
		t.Errorf("total points = %d, want %d", total, tbl.RowCount())
	}
}

func TestBuild_OptionsMerged(t *testing.T) {
	cfg, err := Build(salesTable(t), TypeBar, BuildOptions{
		LabelColumn: "region",
		Options: options.Tree{
			"plugins": options.Tree{
				"title": options.Tree{"display": true, "text": "Revenue"},
			},
		},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	plugins := cfg.Options["plugins"].(options.Tree)
	if plugins["title"].(options.Tree)["text"] != "Revenue" {
		t.Error("user override not merged into options")
	}
	if plugins["legend"].(options.Tree)["display"] != true {
		t.Error("default legend options lost during merge")
	}
	if cfg.Options["responsive"] != true {
		t.Error("top-level default lost")
	}
}

func TestDefaultsFor_FreshTreePerCall(t *testing.T) {
	first := DefaultsFor(TypeBar)
	first["responsive"] = false
	first["scales"].(options.Tree)["y"].(options.Tree)["beginAtZero"] = false

	second := DefaultsFor(TypeBar)
	if second["responsive"] != true {
		t.Error("DefaultsFor returned a shared top-level tree")
	}
	if second["scales"].(options.Tree)["y"].(options.Tree)["beginAtZero"] != true {
		t.Error("DefaultsFor returned a shared nested tree")
	}
}

func TestConfig_WireFormat(t *testing.T) {
	tbl := testTable(t,
		table.Column{Name: "x", Values: []any{1.0}},
		table.Column{Name: "y", Values: []any{2.0}},
		table.Column{Name: "r", Values: []any{0.0}},
	)

	cfg, err := Build(tbl, TypeBubble, BuildOptions{
		LabelColumn: "x",
		Values:      ValueSpec{Columns: []string{"y"}, Radius: "r"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	body := string(raw)

	// Bubble points always carry their radius, even zero, and point-family
	// data has no labels key at all.
	if !strings.Contains(body, `"r":0`) {
		t.Errorf("serialized config %s should include zero radius", body)
	}
	if strings.Contains(body, `"labels"`) {
		t.Errorf("serialized config %s should omit labels for point family", body)
	}
	for _, key := range []string{`"type":"bubble"`, `"datasets"`, `"backgroundColor"`, `"borderColor"`} {
		if !strings.Contains(body, key) {
			t.Errorf("serialized config %s missing %s", body, key)
		}
	}
}

func TestConfig_ScatterPointsHaveNoRadiusField(t *testing.T) {
	tbl := testTable(t,
		table.Column{Name: "x", Values: []any{1.0}},
		table.Column{Name: "y", Values: []any{2.0}},
	)

	cfg, err := Build(tbl, TypeScatter, BuildOptions{LabelColumn: "x", Values: Values("y")})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	raw, err := json.Marshal(cfg.Data)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), `"r"`) {
		t.Errorf("scatter data %s should not carry a radius field", raw)
	}
}
