package chart

import (
	"github.com/matzehuels/chartbridge/pkg/errors"
	"github.com/matzehuels/chartbridge/pkg/table"
)

// buildPoint builds the data block for scatter and bubble charts. Scatter
// charts emit one dataset per y column against the shared x column; bubble
// charts emit one dataset per distinct group value (or a single dataset when
// ungrouped), with every point carrying its radius. Point-family data has no
// labels block: points self-describe their x position.
func buildPoint(tbl *table.Table, meta Meta, typ Type) (Data, error) {
	if typ == TypeBubble {
		return buildBubble(tbl, meta)
	}
	return buildScatter(tbl, meta)
}

func buildScatter(tbl *table.Table, meta Meta) (Data, error) {
	xCol, _ := tbl.Column(meta.LabelColumn)
	xs, err := xCol.Floats()
	if err != nil {
		return Data{}, err
	}

	colors := Colors(len(meta.ValueColumns))
	datasets := make([]Dataset, 0, len(meta.ValueColumns))
	for i, name := range meta.ValueColumns {
		col, _ := tbl.Column(name)
		ys, err := col.Floats()
		if err != nil {
			return Data{}, err
		}

		points := make([]Point, len(xs))
		for row := range xs {
			points[row] = Point{X: xs[row], Y: ys[row]}
		}
		datasets = append(datasets, Dataset{
			Label:           name,
			Data:            points,
			BackgroundColor: colors[i],
			BorderColor:     colors[i],
		})
	}

	return Data{Datasets: datasets}, nil
}

func buildBubble(tbl *table.Table, meta Meta) (Data, error) {
	if meta.RadiusColumn == "" {
		return Data{}, errors.New(errors.ErrCodeMissingColumn,
			"bubble charts require a radius column")
	}
	if len(meta.ValueColumns) != 1 {
		return Data{}, errors.New(errors.ErrCodeMissingColumn,
			"bubble charts require an explicit value column")
	}

	xCol, _ := tbl.Column(meta.LabelColumn)
	yCol, _ := tbl.Column(meta.ValueColumns[0])
	rCol, _ := tbl.Column(meta.RadiusColumn)

	xs, err := xCol.Floats()
	if err != nil {
		return Data{}, err
	}
	ys, err := yCol.Floats()
	if err != nil {
		return Data{}, err
	}
	rs, err := rCol.Floats()
	if err != nil {
		return Data{}, err
	}

	points := make([]BubblePoint, len(xs))
	for row := range xs {
		points[row] = BubblePoint{X: xs[row], Y: ys[row], R: rs[row]}
	}

	if meta.GroupColumn == "" {
		colors := Colors(1)
		return Data{Datasets: []Dataset{{
			Label:           yCol.Name,
			Data:            points,
			BackgroundColor: WithAlpha(colors[0], 0.7),
			BorderColor:     colors[0],
		}}}, nil
	}

	// Partition rows by group value, keeping first-seen order of distinct
	// values rather than sorting.
	groupCol, _ := tbl.Column(meta.GroupColumn)
	groups := groupCol.Strings()

	var order []string
	partition := make(map[string][]BubblePoint)
	for row, g := range groups {
		if _, seen := partition[g]; !seen {
			order = append(order, g)
		}
		partition[g] = append(partition[g], points[row])
	}

	colors := Colors(len(order))
	datasets := make([]Dataset, 0, len(order))
	for i, g := range order {
		datasets = append(datasets, Dataset{
			Label:           g,
			Data:            partition[g],
			BackgroundColor: WithAlpha(colors[i], 0.7),
			BorderColor:     colors[i],
		})
	}

	return Data{Datasets: datasets}, nil
}
