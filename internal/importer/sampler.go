package importer

import "strings"

// maxSampleRows caps how many rows are previewed per column.
const maxSampleRows = 15

// ColumnPreview holds the preview sample for one spreadsheet column.
type ColumnPreview struct {
	Rows []string `json:"rows"`
}

// SheetShape reports where usable rows start and how many columns the sheet
// has. The column count is taken from the first row; a first row with zero
// cells is treated as corrupt and skipped by scanning forward for the first
// row that has any. Later corruption is not retried.
func SheetShape(rows [][]string) (start, columns int) {
	if len(rows) == 0 {
		return 0, 0
	}

	columns = len(rows[0])
	if columns == 0 {
		for i, row := range rows {
			if len(row) > 0 {
				start = i
				columns = len(row)
				break
			}
		}
	}
	return start, columns
}

// SampleColumns builds a bounded per-column preview for the header-mapping
// UI: at most maxSampleRows rows per column, cells trimmed, missing cells
// normalized to "".
func SampleColumns(rows [][]string) []ColumnPreview {
	start, columns := SheetShape(rows)

	previews := make([]ColumnPreview, columns)
	for i := range previews {
		previews[i] = ColumnPreview{Rows: []string{}}
	}

	end := maxSampleRows
	if len(rows) < end {
		end = len(rows)
	}
	if start >= end {
		return previews
	}

	for _, row := range rows[start:end] {
		for i := 0; i < columns; i++ {
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			previews[i].Rows = append(previews[i].Rows, value)
		}
	}
	return previews
}
