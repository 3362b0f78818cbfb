package model

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TableStyle selects how a Table is rendered into text.
type TableStyle string

const (
	// TableStyleMarkdown renders a GitHub-flavored markdown table.
	TableStyleMarkdown TableStyle = "markdown"
	// TableStyleCSV renders RFC 4180 CSV.
	TableStyleCSV TableStyle = "csv"
	// TableStyleDelimited joins cells with a caller-supplied delimiter.
	TableStyleDelimited TableStyle = "delimited"
	// TableStyleInline renders the compact "[a | b] [c | d]" form.
	TableStyleInline TableStyle = "inline"
	// TableStyleHTML renders an HTML <table> element.
	TableStyleHTML TableStyle = "html"
)

// Valid reports whether s names a known style.
func (s TableStyle) Valid() bool {
	switch s {
	case TableStyleMarkdown, TableStyleCSV, TableStyleDelimited, TableStyleInline, TableStyleHTML:
		return true
	}
	return false
}

// ParseTableStyle converts a style name to a TableStyle. Matching is
// case-insensitive.
func ParseTableStyle(name string) (TableStyle, error) {
	s := TableStyle(strings.ToLower(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown table style %q", name)
	}
	return s, nil
}

// Table represents a table as rows of cell text. Rows may hold different
// numbers of cells.
type Table struct {
	Rows [][]string
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of cells in the widest row
func (t *Table) ColCount() int {
	n := 0
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// Cell returns the text at the given row and column (0-indexed), or an empty
// string when the position is out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Format renders the table in the given style. The delimiter is only used by
// TableStyleDelimited; an empty delimiter falls back to a tab. Unknown styles
// render as markdown.
func (t *Table) Format(style TableStyle, delimiter string) string {
	switch style {
	case TableStyleCSV:
		return t.ToCSV()
	case TableStyleDelimited:
		if delimiter == "" {
			delimiter = "\t"
		}
		return t.ToDelimited(delimiter)
	case TableStyleInline:
		return t.ToInline()
	case TableStyleHTML:
		return t.ToHTML()
	default:
		return t.ToMarkdown()
	}
}

// ToMarkdown converts the table to markdown format. The first row becomes the
// header and short rows are padded to the widest row.
func (t *Table) ToMarkdown() string {
	if len(t.Rows) == 0 {
		return ""
	}

	cols := t.ColCount()
	if cols == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		for j := 0; j < cols; j++ {
			cell := ""
			if j < len(row) {
				cell = markdownCell(row[j])
			}
			sb.WriteString("| ")
			sb.WriteString(cell)
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	writeRow(t.Rows[0])
	for j := 0; j < cols; j++ {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")
	for _, row := range t.Rows[1:] {
		writeRow(row)
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func markdownCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range t.Rows {
		// Writing to a bytes.Buffer cannot fail.
		_ = w.Write(row)
	}
	w.Flush()
	return strings.TrimSuffix(buf.String(), "\n")
}

// ToDelimited joins cells with delimiter and rows with newlines.
func (t *Table) ToDelimited(delimiter string) string {
	lines := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		lines[i] = strings.Join(row, delimiter)
	}
	return strings.Join(lines, "\n")
}

// ToInline renders the table on a single line, one bracketed group per row:
// "[a | b] [c | d]".
func (t *Table) ToInline() string {
	parts := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		parts[i] = "[" + strings.Join(row, " | ") + "]"
	}
	return strings.Join(parts, " ")
}

// ToHTML renders the table as an HTML <table> element. The first row uses
// <th> cells.
func (t *Table) ToHTML() string {
	table := &html.Node{Type: html.ElementNode, Data: "table", DataAtom: atom.Table}
	body := &html.Node{Type: html.ElementNode, Data: "tbody", DataAtom: atom.Tbody}
	table.AppendChild(body)

	for i, row := range t.Rows {
		tr := &html.Node{Type: html.ElementNode, Data: "tr", DataAtom: atom.Tr}
		for _, text := range row {
			cell := &html.Node{Type: html.ElementNode, Data: "td", DataAtom: atom.Td}
			if i == 0 {
				cell.Data, cell.DataAtom = "th", atom.Th
			}
			cell.AppendChild(&html.Node{Type: html.TextNode, Data: text})
			tr.AppendChild(cell)
		}
		body.AppendChild(tr)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, table); err != nil {
		return ""
	}
	return buf.String()
}
