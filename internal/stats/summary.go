// Package stats renders drill counters and the mistake list.
package stats

import (
	"fmt"

	"github.com/verte-zerg/seefunk/internal/drill"
)

// DoneMessage is shown once a drill session is complete.
const DoneMessage = "✅ Kapitel abgeschlossen!"

// Accuracy returns correct/total, or 0 before the first answer.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// Summary is a snapshot of a drill session's counters.
type Summary struct {
	Mastered int
	Target   int
	Correct  int
	Total    int
	Pending  int
	Done     bool
}

// Summarize captures the counters of s.
func Summarize(s *drill.Session) Summary {
	return Summary{
		Mastered: s.Mastered(),
		Target:   s.Target(),
		Correct:  s.Correct(),
		Total:    s.Total(),
		Pending:  s.Pending(),
		Done:     s.Done(),
	}
}

// Progress renders "Fortschritt: mastered/target".
func (s Summary) Progress() string {
	return fmt.Sprintf("Fortschritt: %d/%d", s.Mastered, s.Target)
}

// Score renders "Score: correct/total", with accuracy once answers exist.
func (s Summary) Score() string {
	if s.Total == 0 {
		return "Score: 0/0"
	}
	return fmt.Sprintf("Score: %d/%d · %.0f%%", s.Correct, s.Total, Accuracy(s.Correct, s.Total)*100)
}

// Lines renders progress, score, pending reviews and the completion banner.
func (s Summary) Lines() []string {
	lines := []string{s.Progress(), s.Score()}
	if s.Pending > 0 {
		lines = append(lines, fmt.Sprintf("Wiederholungen offen: %d", s.Pending))
	}
	if s.Done {
		lines = append(lines, DoneMessage)
	}
	return lines
}
