package pdf

import (
	"encoding/csv"
	"html"
	"strings"

	"github.com/jackburrus/ripdoc/pkg/geometry"
)

// Table is one detected table. Cells is row-major; a nil entry is a cell no
// ruling pair enclosed.
type Table struct {
	BBox  geometry.BBox
	Cells [][]*string

	page *Page
}

// RowCount returns the number of grid rows.
func (t *Table) RowCount() int { return len(t.Cells) }

// ColCount returns the number of grid columns.
func (t *Table) ColCount() int {
	if len(t.Cells) == 0 {
		return 0
	}
	return len(t.Cells[0])
}

// Extract returns the cell texts. Nil stays nil for absent cells.
func (t *Table) Extract() [][]*string {
	out := make([][]*string, len(t.Cells))
	for r, row := range t.Cells {
		out[r] = make([]*string, len(row))
		copy(out[r], row)
	}
	return out
}

// Rows returns the cell texts with absent cells rendered as empty strings.
func (t *Table) Rows() [][]string {
	out := make([][]string, len(t.Cells))
	for r, row := range t.Cells {
		out[r] = make([]string, len(row))
		for c, cellText := range row {
			if cellText != nil {
				out[r][c] = *cellText
			}
		}
	}
	return out
}

// ToMarkdown renders the table as a GitHub-style markdown table. The first
// row becomes the header. Pipes inside cells are escaped and newlines
// collapse to spaces.
func (t *Table) ToMarkdown() string {
	rows := t.Rows()
	if len(rows) == 0 {
		return ""
	}
	var sb strings.Builder
	writeRow := func(row []string) {
		sb.WriteString("|")
		for _, cellText := range row {
			sb.WriteString(" ")
			sb.WriteString(escapeMarkdownCell(cellText))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}
	writeRow(rows[0])
	sb.WriteString("|")
	for range rows[0] {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}
	return sb.String()
}

func escapeMarkdownCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", "\\|")
	return s
}

// ToHTML renders the table as an HTML table with the first row as header
// cells. Cell text is entity-escaped.
func (t *Table) ToHTML() string {
	rows := t.Rows()
	var sb strings.Builder
	sb.WriteString("<table>\n")
	for r, row := range rows {
		tag := "td"
		if r == 0 {
			tag = "th"
		}
		sb.WriteString("  <tr>")
		for _, cellText := range row {
			sb.WriteString("<" + tag + ">")
			sb.WriteString(html.EscapeString(cellText))
			sb.WriteString("</" + tag + ">")
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</table>")
	return sb.String()
}

// ToCSV renders the table as RFC 4180 CSV.
func (t *Table) ToCSV() (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	for _, row := range t.Rows() {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ExtractTables detects tables and returns their cell grids.
func (p *Page) ExtractTables(opts ...TableOption) [][][]string {
	tables := p.FindTables(opts...)
	out := make([][][]string, len(tables))
	for i, t := range tables {
		out[i] = t.Rows()
	}
	return out
}

// ExtractTable returns the grid of the largest table by area, or nil when
// the page has none.
func (p *Page) ExtractTable(opts ...TableOption) [][]string {
	tables := p.FindTables(opts...)
	if len(tables) == 0 {
		return nil
	}
	best := tables[0]
	for _, t := range tables[1:] {
		if t.BBox.Area() > best.BBox.Area() {
			best = t
		}
	}
	return best.Rows()
}
