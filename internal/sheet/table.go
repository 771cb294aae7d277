// Package sheet loads and writes the flat tables the pipeline runs on.
// Tables are read whole, never streamed; a run either sees the full
// snapshot of an input or fails before producing output.
package sheet

import "strings"

// Table is one loaded table: a header row plus data rows. Cells are kept
// as strings; typed parsing happens at the record layer.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewTable builds a table from a header and optional data rows.
func NewTable(columns []string, rows ...[]string) *Table {
	t := &Table{Columns: columns, Rows: rows}
	t.reindex()

	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		t.index[strings.TrimSpace(c)] = i
	}
}

// Append adds one data row.
func (t *Table) Append(row ...string) {
	t.Rows = append(t.Rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Has reports whether the table carries the named column.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Cell returns the trimmed value of the named column in row, or "" when
// the column is absent or the row is short.
func (t *Table) Cell(row []string, column string) string {
	idx, ok := t.index[column]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
