package chart

import (
	"strconv"

	"github.com/matzehuels/chartbridge/pkg/table"
)

// radarFillAlpha is the fill transparency for radar series. The border keeps
// the full-strength palette color.
const radarFillAlpha = 0.25

// buildCategory builds the data block for bar, line, and radar charts: one
// dataset per value column, labels from the label column or row indices.
func buildCategory(tbl *table.Table, meta Meta, typ Type) (Data, error) {
	labels := categoryLabels(tbl, meta)
	colors := Colors(len(meta.ValueColumns))

	datasets := make([]Dataset, 0, len(meta.ValueColumns))
	for i, name := range meta.ValueColumns {
		col, _ := tbl.Column(name)
		values, err := col.Floats()
		if err != nil {
			return Data{}, err
		}

		ds := Dataset{
			Label:           name,
			Data:            values,
			BackgroundColor: colors[i],
			BorderColor:     colors[i],
			BorderWidth:     1,
		}
		switch typ {
		case TypeRadar:
			ds.BackgroundColor = WithAlpha(colors[i], radarFillAlpha)
		case TypeLine:
			// Line series are unfilled unless the caller overrides fill.
			fill := false
			ds.Fill = &fill
		}
		datasets = append(datasets, ds)
	}

	return Data{Labels: labels, Datasets: datasets}, nil
}

// categoryLabels returns the label column cast to strings, or row indices
// "0".."n-1" when no label column was resolved.
func categoryLabels(tbl *table.Table, meta Meta) []string {
	if meta.LabelColumn != "" {
		col, _ := tbl.Column(meta.LabelColumn)
		return col.Strings()
	}
	labels := make([]string, tbl.RowCount())
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	return labels
}
