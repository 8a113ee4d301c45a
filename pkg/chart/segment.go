package chart

import (
	"github.com/matzehuels/chartbridge/pkg/table"
)

// buildSegment builds the data block for pie, doughnut, and polarArea charts:
// exactly one dataset with one value per row. Segment charts are the one
// place where the color count tracks rows rather than series, so each slice
// gets its own palette color.
func buildSegment(tbl *table.Table, meta Meta) (Data, error) {
	labelCol, _ := tbl.Column(meta.LabelColumn)
	valueCol, _ := tbl.Column(meta.ValueColumns[0])

	values, err := valueCol.Floats()
	if err != nil {
		return Data{}, err
	}

	ds := Dataset{
		Label:           valueCol.Name,
		Data:            values,
		BackgroundColor: Colors(tbl.RowCount()),
		BorderWidth:     1,
	}

	return Data{
		Labels:   labelCol.Strings(),
		Datasets: []Dataset{ds},
	}, nil
}
