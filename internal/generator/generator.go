// Package generator builds randomized deck orderings.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/seefunk/internal/model"
)

// Generator permutes card decks.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Shuffle applies a uniform random permutation to cards in place (Fisher-Yates).
func (g *Generator) Shuffle(cards []model.Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := g.rnd.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
