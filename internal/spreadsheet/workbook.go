// Package spreadsheet wraps xlsx workbook access for the import pipeline.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ErrUnreadableWorkbook is returned when an uploaded file cannot be parsed
// as a spreadsheet.
var ErrUnreadableWorkbook = errors.New("file is not a readable workbook")

// Workbook is a read-only view over an uploaded xlsx file.
type Workbook struct {
	file *excelize.File
}

// Open parses a workbook from the reader. The whole file is read up front;
// uploaded spreadsheets are bounded by the HTTP layer's size limit.
func Open(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}
	return &Workbook{file: f}, nil
}

// SheetNames returns the workbook's sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// ActiveSheetRows returns every row of the active sheet as string cell
// values. Trailing empty cells are not padded, so rows may differ in length.
func (w *Workbook) ActiveSheetRows() ([][]string, error) {
	sheet := w.file.GetSheetName(w.file.GetActiveSheetIndex())
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// Close releases the underlying workbook resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}
