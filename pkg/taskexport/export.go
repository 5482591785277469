// Package taskexport renders a task list's tasks as a tabular download.
// Output is built per request in memory; nothing is shared between exports.
package taskexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gehrmanng/taskplanner/internal/domain"
)

// Column maps one export column to a task attribute.
type Column struct {
	Header string
	Value  func(t domain.Task) string
}

// Columns is the fixed export column order.
func Columns() []Column {
	return []Column{
		{Header: "uuid", Value: func(t domain.Task) string { return t.UUID }},
		{Header: "title", Value: func(t domain.Task) string { return t.Title }},
		{Header: "dueDate", Value: func(t domain.Task) string {
			if t.DueDate == nil {
				return ""
			}
			return t.DueDate.Format(time.RFC3339)
		}},
		{Header: "done", Value: func(t domain.Task) string { return strconv.FormatBool(t.Done) }},
	}
}

// ToCSV renders the tasks as a ;-delimited CSV with a header row. Values
// containing the delimiter are quoted by the encoder.
func ToCSV(tasks []domain.Task) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	columns := Columns()
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	row := make([]string, len(columns))
	for _, task := range tasks {
		for i, col := range columns {
			row[i] = col.Value(task)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// ToXLSX renders the tasks as a single-sheet workbook with the same columns
// as the CSV export. sheetName falls back to "Tasks" when empty.
func ToXLSX(sheetName string, tasks []domain.Task) ([]byte, error) {
	if sheetName == "" {
		sheetName = "Tasks"
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	columns := Columns()
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, col.Header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIdx, task := range tasks {
		for colIdx, col := range columns {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, col.Value(task)); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate workbook: %w", err)
	}
	return buf.Bytes(), nil
}
