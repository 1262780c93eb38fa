package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/seefunk/internal/drill"
)

// LedgerLines renders the mistake list, most frequently missed first.
func LedgerLines(entries []drill.LedgerEntry) []string {
	if len(entries) == 0 {
		return []string{"Fehlerliste:", "Keine Fehler 🎉"}
	}
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		last := e.LastAnswer
		if last == "" {
			last = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.Card.DE,
			e.Card.EN,
			fmt.Sprintf("%d×", e.WrongCount),
			last,
		})
	}
	lines := []string{"Fehlerliste (nur falsche):"}
	lines = append(lines, layoutColumns(ledgerColumns, rows)...)
	return lines
}

// RenderLedger writes LedgerLines to w.
func RenderLedger(w io.Writer, entries []drill.LedgerEntry) error {
	if _, err := io.WriteString(w, strings.Join(LedgerLines(entries), "\n")+"\n"); err != nil {
		return fmt.Errorf("failed to write mistake list: %w", err)
	}
	return nil
}
