package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table wraps tabwriter for consistent styling.
type Table struct {
	writer  *tabwriter.Writer
	headers []string
	rows    [][]string
}

// NewTable creates a new table writing to Out.
func NewTable(headers ...string) *Table {
	return NewTableWriter(Out, headers...)
}

// NewTableWriter creates a new table that writes to a specific writer.
func NewTableWriter(w io.Writer, headers ...string) *Table {
	return &Table{
		writer:  tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
		headers: headers,
	}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(row ...string) {
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render outputs the headers and every row.
func (t *Table) Render() {
	if len(t.headers) > 0 {
		headerRow := make([]string, len(t.headers))
		for i, h := range t.headers {
			headerRow[i] = Bold(h)
		}
		_, _ = fmt.Fprintln(t.writer, strings.Join(headerRow, "\t"))
	}
	for _, row := range t.rows {
		_, _ = fmt.Fprintln(t.writer, strings.Join(row, "\t"))
	}
	_ = t.writer.Flush()
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 4 {
		return s
	}
	return string(r[:n-3]) + "..."
}
