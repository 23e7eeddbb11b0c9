// Package formatter renders human-readable tables for stages whose output is
// meant to be read rather than piped further.
package formatter

import (
	"io"
	"strings"
	"text/tabwriter"
)

// Table formats columnar output using tabwriter. Rows are buffered and
// written on Render, header first, so an empty table prints nothing.
type Table struct {
	w       *tabwriter.Writer
	headers []string
	rows    [][]string
}

// NewTable creates a table that writes to w with the given column headers.
func NewTable(w io.Writer, headers ...string) *Table {
	return &Table{
		w:       tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
		headers: headers,
	}
}

// AddRow appends a data row. Extra values beyond the header count are
// dropped; missing values are left empty. Empty cells render as "-".
func (t *Table) AddRow(values ...string) {
	cells := make([]string, len(t.headers))
	for i := range cells {
		cells[i] = "-"
		if i < len(values) && values[i] != "" {
			cells[i] = values[i]
		}
	}
	t.rows = append(t.rows, cells)
}

// Render writes the header, a dashed separator and every row, then flushes.
func (t *Table) Render() error {
	if len(t.rows) == 0 {
		return nil
	}

	separator := make([]string, len(t.headers))
	for i, h := range t.headers {
		separator[i] = strings.Repeat("-", len(h))
	}

	lines := append([][]string{t.headers, separator}, t.rows...)
	for _, cells := range lines {
		if _, err := io.WriteString(t.w, strings.Join(cells, "\t")+"\n"); err != nil {
			return err
		}
	}
	return t.w.Flush()
}
