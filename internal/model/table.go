package model

import "strings"

// Table is a format-agnostic in-memory table: a header row plus data rows.
// Header labels are whitespace-trimmed on construction.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable builds a Table from a header row and data rows.
func NewTable(headers []string, rows [][]string) *Table {
	trimmed := make([]string, len(headers))
	for i, h := range headers {
		trimmed[i] = strings.TrimSpace(h)
	}
	return &Table{Headers: trimmed, Rows: rows}
}

// Column returns the index of the column with the given label, matching
// after trimming. The second return is false when the label is absent.
func (t *Table) Column(label string) (int, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return -1, false
	}
	for i, h := range t.Headers {
		if h == label {
			return i, true
		}
	}
	return -1, false
}

// Cell returns row[idx], tolerating ragged rows and unmapped (-1) indices.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
