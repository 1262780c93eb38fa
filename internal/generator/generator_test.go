package generator

import (
	"sort"
	"testing"

	"github.com/verte-zerg/seefunk/internal/model"
)

func TestShuffleIsPermutation(t *testing.T) {
	cards := make([]model.Card, 0, 30)
	for _, de := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		cards = append(cards, model.Card{Chapter: "Wetter", DE: de, EN: de + "-en"})
	}
	shuffled := append([]model.Card(nil), cards...)
	NewSeeded(42).Shuffle(shuffled)

	got := make([]string, len(shuffled))
	for i, c := range shuffled {
		got[i] = c.DE
	}
	sort.Strings(got)
	for i, c := range cards {
		if got[i] != c.DE {
			t.Fatalf("expected permutation of input, got %v", got)
		}
	}
}

func TestShuffleDeterministicWithSeed(t *testing.T) {
	mk := func() []model.Card {
		return []model.Card{{DE: "1"}, {DE: "2"}, {DE: "3"}, {DE: "4"}, {DE: "5"}}
	}
	a, b := mk(), mk()
	NewSeeded(7).Shuffle(a)
	NewSeeded(7).Shuffle(b)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical order for identical seeds")
		}
	}
}

func TestShuffleSmallDecks(t *testing.T) {
	g := NewSeeded(1)
	g.Shuffle(nil)
	one := []model.Card{{DE: "x"}}
	g.Shuffle(one)
	if one[0].DE != "x" {
		t.Fatalf("expected single card to stay in place")
	}
}
