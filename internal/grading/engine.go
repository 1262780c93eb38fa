// Package grading decides whether a free-text answer reproduces a reference
// text closely enough to pass.
package grading

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
)

// Mode selects the language of the answer and with it the pass threshold.
type Mode string

const (
	ModeDE Mode = "de"
	ModeEN Mode = "en"
)

const (
	thresholdDE = 0.55
	thresholdEN = 0.58
)

// Threshold returns the minimum similarity needed to pass in this mode.
// Anything other than ModeDE is judged by the English threshold.
func (m Mode) Threshold() float64 {
	if m == ModeDE {
		return thresholdDE
	}
	return thresholdEN
}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDE:
		return ModeDE, nil
	case ModeEN:
		return ModeEN, nil
	}
	return "", fmt.Errorf("unknown mode %q (expected de or en)", s)
}

// Result is the verdict for a single answer.
type Result struct {
	Passed     bool
	Similarity float64
	Threshold  float64
	Missing    []string
	Required   []string
}

// Grade checks that every required token of reference appears in user
// (case-insensitive substring) and that their similarity reaches the mode
// threshold. Both conditions are needed to pass.
func Grade(user, reference string, mode Mode) Result {
	required := ExtractRequiredTokens(reference)
	lowered := strings.ToLower(user)
	missing := lo.Filter(required, func(tok string, _ int) bool {
		return !strings.Contains(lowered, strings.ToLower(tok))
	})
	sim := Similarity(user, reference)
	threshold := mode.Threshold()
	return Result{
		Passed:     len(missing) == 0 && sim >= threshold,
		Similarity: sim,
		Threshold:  threshold,
		Missing:    missing,
		Required:   required,
	}
}

// Report renders the result as the multi-line text shown after grading.
func (r Result) Report() string {
	lines := make([]string, 0, 4)
	if r.Passed {
		lines = append(lines, "BESTANDEN ✅")
	} else {
		lines = append(lines, "NICHT BESTANDEN ❌")
	}
	lines = append(lines, fmt.Sprintf("Ähnlichkeit: %d%% (Schwelle %d%%)", int(math.Round(r.Similarity*100)), int(math.Round(r.Threshold*100))))
	if len(r.Missing) > 0 {
		lines = append(lines, "Fehlende Pflichtteile: "+strings.Join(r.Missing, ", "))
	}
	if len(r.Required) > 0 {
		lines = append(lines, "Pflichtteile erkannt: "+strings.Join(r.Required, ", "))
	}
	return strings.Join(lines, "\n")
}
