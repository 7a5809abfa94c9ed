package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// maxCellWidth truncates long cells so tables stay readable on a terminal.
const maxCellWidth = 24

// Table renders headers and rows as an aligned text table.
func Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	display := make([][]string, len(rows))
	for r, row := range rows {
		display[r] = make([]string, len(headers))
		for c := range headers {
			cell := ""
			if c < len(row) {
				cell = truncate(row[c])
			}
			display[r][c] = cell
			if w := runewidth.StringWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style bool) {
		for c, cell := range cells {
			if style {
				cell = headerCellStyle.Render(cell)
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[c]-runewidth.StringWidth(cells[c])+2))
		}
		b.WriteString("\n")
	}

	writeRow(headers, true)
	sep := make([]string, len(headers))
	for c := range headers {
		sep[c] = strings.Repeat("─", widths[c])
	}
	writeRow(sep, false)
	for _, row := range display {
		writeRow(row, false)
	}
	return b.String()
}

func truncate(s string) string {
	if runewidth.StringWidth(s) <= maxCellWidth {
		return s
	}
	return runewidth.Truncate(s, maxCellWidth-1, "…")
}

// PrintTable renders the table to stdout.
func PrintTable(headers []string, rows [][]string) {
	fmt.Print(Table(headers, rows))
}
