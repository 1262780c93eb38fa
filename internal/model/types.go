// Package model defines shared data structures.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ReferenceText is a radio message with its German and English wording.
type ReferenceText struct {
	Title string `json:"title"`
	DE    string `json:"de"`
	EN    string `json:"en"`
	Audio string `json:"audio,omitempty"`
}

// DisplayTitle returns the title or a positional fallback for untitled texts.
func (t ReferenceText) DisplayTitle(idx int) string {
	if strings.TrimSpace(t.Title) != "" {
		return t.Title
	}
	return fmt.Sprintf("Eintrag %d", idx+1)
}

// Card is a single vocabulary flashcard.
type Card struct {
	Chapter string `json:"chapter"`
	DE      string `json:"de"`
	EN      string `json:"en"`
}

// CardKey identifies a card for scheduling and mastery.
type CardKey string

// Key builds the identity key from the trimmed chapter, German and English fields.
func (c Card) Key() CardKey {
	return CardKey(strings.TrimSpace(c.Chapter) + "||" + strings.TrimSpace(c.DE) + "||" + strings.TrimSpace(c.EN))
}

// Direction selects which side of a card is shown.
type Direction string

const (
	DeToEn Direction = "de2en"
	EnToDe Direction = "en2de"
)

// ParseDirection validates a direction name.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DeToEn:
		return DeToEn, nil
	case EnToDe:
		return EnToDe, nil
	}
	return "", fmt.Errorf("unknown direction %q (expected de2en or en2de)", s)
}

// Prompt returns the side of c shown to the user.
func (d Direction) Prompt(c Card) string {
	if d == EnToDe {
		return c.EN
	}
	return c.DE
}

// Solution returns the side of c the user has to type.
func (d Direction) Solution(c Card) string {
	if d == EnToDe {
		return c.DE
	}
	return c.EN
}

// Target is the number of distinct cards to master; All means the whole deck.
type Target struct {
	Count int
	All   bool
}

// TargetAll requests mastery of every card in the deck.
var TargetAll = Target{All: true}

// ParseTarget parses a positive integer or "all".
func ParseTarget(s string) (Target, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "all" || s == "alle" {
		return TargetAll, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Target{}, fmt.Errorf("invalid target %q (expected a number or all)", s)
	}
	if n < 1 {
		return Target{}, fmt.Errorf("target must be >= 1")
	}
	return Target{Count: n}, nil
}

// Resolve returns the completion target for a deck of the given size.
func (t Target) Resolve(deckSize int) int {
	if t.All || t.Count > deckSize {
		return deckSize
	}
	return t.Count
}

func (t Target) String() string {
	if t.All {
		return "all"
	}
	return strconv.Itoa(t.Count)
}

// DrillSettings are the inputs that define a vocabulary drill session.
type DrillSettings struct {
	Chapter     string
	Direction   Direction
	Shuffle     bool
	ReviewFirst bool
	Target      Target
}
