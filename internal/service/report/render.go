package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/gestipresence/presence-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

// Render writes a table in the given format.
func Render(table report.Table, format report.Format) ([]byte, error) {
	switch format {
	case report.FormatCSV:
		return renderCSV(table)
	case report.FormatJSON:
		return renderJSON(table)
	case report.FormatXLSX:
		return renderXLSX(table)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func renderCSV(table report.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(table.Headers); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := w.WriteAll(table.Rows); err != nil {
		return nil, fmt.Errorf("failed to write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}

// renderJSON emits one object per row keyed by header.
func renderJSON(table report.Table) ([]byte, error) {
	items := make([]map[string]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		item := make(map[string]string, len(table.Headers))
		for i, h := range table.Headers {
			if i < len(row) {
				item[h] = row[i]
			}
		}
		items = append(items, item)
	}

	body, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode json export: %w", err)
	}
	return append(body, '\n'), nil
}

func renderXLSX(table report.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := table.Title
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("failed to style header row: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(table.Headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 20); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
