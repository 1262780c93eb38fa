package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
)

type column struct {
	header string
	right  bool
}

var ledgerColumns = []column{
	{header: "#", right: true},
	{header: "DE"},
	{header: "EN"},
	{header: "Falsch", right: true},
	{header: "Letzte Antwort"},
}

// layoutColumns renders a header line plus one line per row. Widths are
// terminal cells, so umlauts count once and wide symbols twice.
func layoutColumns(cols []column, rows [][]string) []string {
	widths := lo.Map(cols, func(c column, _ int) int {
		return runewidth.StringWidth(c.header)
	})
	for _, row := range rows {
		for i := range cols {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
			}
		}
	}

	headers := lo.Map(cols, func(c column, _ int) string { return c.header })
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, joinCells(cols, widths, headers))
	for _, row := range rows {
		lines = append(lines, joinCells(cols, widths, row))
	}
	return lines
}

func joinCells(cols []column, widths []int, row []string) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if c.right {
			cells[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.Join(cells, " ")
}
