package table

import (
	"io"

	aquatable "github.com/aquasecurity/table"
	runewidth "github.com/mattn/go-runewidth"
)

// Use types directly from aquasecurity/table
type (
	Alignment = aquatable.Alignment
	Style     = aquatable.Style
)

const (
	AlignLeft   = aquatable.AlignLeft
	AlignCenter = aquatable.AlignCenter
	AlignRight  = aquatable.AlignRight
)

// Table is an aquasecurity table with the CLI's house style applied.
type Table struct {
	*aquatable.Table
	maxWidth int
}

// New creates a bordered, rounded table writing to w. Colours are applied
// only when styled is true.
func New(w io.Writer, styled bool) *Table {
	t := aquatable.New(w)
	t.SetBorders(true)
	t.SetDividers(aquatable.UnicodeRoundedDividers)
	t.SetPadding(1)
	if styled {
		t.SetHeaderStyle(aquatable.StyleBold)
		t.SetLineStyle(aquatable.StyleBlue)
	} else {
		t.SetHeaderStyle(aquatable.StyleNormal)
		t.SetLineStyle(aquatable.StyleNormal)
	}
	return &Table{Table: t}
}

// SetCellMaxWidth truncates every cell added afterwards to width display
// columns. Zero disables truncation.
func (t *Table) SetCellMaxWidth(width int) {
	t.maxWidth = width
}

// AddRow adds a row, truncating cells wider than the configured maximum.
func (t *Table) AddRow(values ...string) {
	if t.maxWidth > 0 {
		for i, v := range values {
			values[i] = Truncate(v, t.maxWidth)
		}
	}
	t.Table.AddRow(values...)
}

// Truncate shortens s to at most width display columns, marking the cut
// with an ellipsis.
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
