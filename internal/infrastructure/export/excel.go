// Package export builds bounded spreadsheet downloads from filtered result
// sets. The exporter owns range validation and row mapping; querying stays
// with the repositories and streaming with the HTTP layer.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the generated workbooks
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const sheetName = "Sheet1"

// Column maps one human-labeled spreadsheet column onto a row value.
// Column order in the slice is the column order in the file.
type Column[T any] struct {
	Header string
	Value  func(T) any
}

// Exporter writes result rows of one resource into an xlsx buffer
type Exporter[T any] struct {
	columns []Column[T]
}

// NewExporter creates an exporter with a fixed column layout
func NewExporter[T any](columns []Column[T]) *Exporter[T] {
	return &Exporter[T]{columns: columns}
}

// Build writes the header row plus one row per record and returns the
// serialized workbook.
func (e *Exporter[T]) Build(records []T) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headers := make([]any, len(e.columns))
	for i, c := range e.columns {
		headers[i] = c.Header
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, rec := range records {
		row := make([]any, len(e.columns))
		for j, c := range e.columns {
			row[j] = c.Value(rec)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f.WriteToBuffer()
}
