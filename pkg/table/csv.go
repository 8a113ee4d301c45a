package table

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/matzehuels/chartbridge/pkg/errors"
)

// FromCSV reads a CSV document into a Table. The first record is the header
// row; it supplies column names. Cell types are inferred column-wise: a column
// whose cells all parse as floats becomes numeric, otherwise its cells stay
// strings. Inference is all-or-nothing per column so a single stray label
// never produces a mixed column.
func FromCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to parse CSV")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "CSV document is empty")
	}

	header := records[0]
	body := records[1:]

	cols := make([]Column, len(header))
	for i, name := range header {
		raw := make([]string, len(body))
		for row, record := range body {
			if i >= len(record) {
				return nil, errors.New(errors.ErrCodeInvalidInput,
					"row %d has %d fields, expected %d", row+1, len(record), len(header))
			}
			raw[row] = record[i]
		}
		cols[i] = Column{Name: name, Values: inferCells(raw)}
	}

	return New(cols...)
}

// inferCells converts raw string cells to float64s when every cell parses.
func inferCells(raw []string) []any {
	values := make([]any, len(raw))
	numeric := len(raw) > 0
	floats := make([]float64, len(raw))

	for i, s := range raw {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			numeric = false
			break
		}
		floats[i] = f
	}

	for i, s := range raw {
		if numeric {
			values[i] = floats[i]
		} else {
			values[i] = s
		}
	}
	return values
}
