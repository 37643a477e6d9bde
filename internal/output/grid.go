package output

import (
	"strings"
	"unicode/utf8"
)

// Grid renders a bordered result table. Column widths are the maximum of the
// header length and the widest cell, counted in code points; cells are
// left-aligned with one space of padding on each side. Rule lines run above
// the header, below the header, and below the body (even when the body is
// empty).
func Grid(headers []string, rows [][]string) []string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var rule strings.Builder
	rule.WriteByte('+')
	for _, w := range widths {
		rule.WriteString(strings.Repeat("-", w+2))
		rule.WriteByte('+')
	}

	lines := make([]string, 0, len(rows)+4)
	lines = append(lines, rule.String())
	lines = append(lines, gridRow(headers, widths))
	lines = append(lines, rule.String())
	for _, row := range rows {
		lines = append(lines, gridRow(row, widths))
	}
	lines = append(lines, rule.String())
	return lines
}

func gridRow(cells []string, widths []int) string {
	var b strings.Builder
	b.WriteByte('|')
	for i, cell := range cells {
		b.WriteByte(' ')
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
		b.WriteString(" |")
	}
	return b.String()
}
