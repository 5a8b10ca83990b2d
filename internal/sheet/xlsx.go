// Package sheet reads order exports from XLSX workbooks and writes the
// consolidated output workbook.
package sheet

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/deen-commerce/orderlink/internal/model"
)

// ReadOptions selects the worksheet holding the order export.
type ReadOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// Read loads a workbook from disk and returns its first non-empty row as
// headers plus the remaining rows as a Table.
func Read(path string, opts ReadOptions) (*model.Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	return tableFromFile(f, opts)
}

// ReadBytes loads a workbook from an in-memory buffer (uploads).
func ReadBytes(data []byte, opts ReadOptions) (*model.Table, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open buffer")
	}
	return tableFromFile(f, opts)
}

func tableFromFile(f *xlsx.File, opts ReadOptions) (*model.Table, error) {
	s, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}
	if len(s.Rows) == 0 {
		return nil, eris.Errorf("xlsx: sheet %q has no rows", s.Name)
	}

	headers := rowToStrings(s.Rows[0])
	rows := make([][]string, 0, len(s.Rows)-1)
	for _, row := range s.Rows[1:] {
		rows = append(rows, rowToStrings(row))
	}
	return model.NewTable(headers, rows), nil
}

func getSheet(f *xlsx.File, opts ReadOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		s, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return s, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

const (
	outputSheetName = "Orders"
	maxColWidth     = 50
)

// Write saves the output table as a styled workbook.
func Write(t *model.Table, path string) error {
	f, err := BuildWorkbook(t)
	if err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "xlsx: save file")
	}
	return nil
}

// WriteTo streams the output workbook, for HTTP responses.
func WriteTo(t *model.Table, w io.Writer) error {
	f, err := BuildWorkbook(t)
	if err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "xlsx: write stream")
	}
	return nil
}

// BuildWorkbook renders the table into a single-sheet workbook with a
// styled header row and width-capped columns.
func BuildWorkbook(t *model.Table) (*xlsx.File, error) {
	f := xlsx.NewFile()
	s, err := f.AddSheet(outputSheetName)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: add sheet")
	}

	style := headerStyle()
	head := s.AddRow()
	for _, h := range t.Headers {
		cell := head.AddCell()
		cell.SetString(h)
		cell.SetStyle(style)
	}

	for _, row := range t.Rows {
		r := s.AddRow()
		for _, v := range row {
			r.AddCell().SetString(v)
		}
	}

	setColumnWidths(s, t)
	return f, nil
}

func headerStyle() *xlsx.Style {
	style := xlsx.NewStyle()
	style.Fill = *xlsx.NewFill("solid", "FF4F81BD", "FF4F81BD")
	style.ApplyFill = true
	style.Font.Bold = true
	style.Font.Color = "FFFFFFFF"
	style.ApplyFont = true
	style.Alignment.Horizontal = "center"
	style.ApplyAlignment = true
	return style
}

// setColumnWidths mirrors the source presentation: content width plus
// padding, capped so multiline message columns stay readable.
func setColumnWidths(s *xlsx.Sheet, t *model.Table) {
	for i, h := range t.Headers {
		maxLen := len(h)
		for _, row := range t.Rows {
			if i < len(row) && len(row[i]) > maxLen {
				maxLen = len(row[i])
			}
		}
		width := float64(maxLen+2) * 1.2
		if width > maxColWidth {
			width = maxColWidth
		}
		s.SetColWidth(i, i, width)
	}
}
