package table

import (
	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/chartbridge/pkg/errors"
)

// SheetNames returns the sheet names of an XLSX workbook in workbook order.
func SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to open workbook %s", path)
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// FromXLSX reads one sheet of an XLSX workbook into a Table. The first row is
// the header row. If sheet is empty, the workbook's first sheet is used.
// Cell types follow the same column-wise inference as [FromCSV].
func FromXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to open workbook %s", path)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read sheet %q", sheet)
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "sheet %q is empty", sheet)
	}

	header := rows[0]
	body := rows[1:]

	cols := make([]Column, len(header))
	for i, name := range header {
		raw := make([]string, len(body))
		for row, record := range body {
			// excelize trims trailing empty cells per row; treat them as "".
			if i < len(record) {
				raw[row] = record[i]
			}
		}
		cols[i] = Column{Name: name, Values: inferCells(raw)}
	}

	return New(cols...)
}
