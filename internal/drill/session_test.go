package drill

import (
	"errors"
	"testing"

	"github.com/verte-zerg/seefunk/internal/content"
	"github.com/verte-zerg/seefunk/internal/model"
)

var weatherCards = []model.Card{
	{Chapter: "Wetter", DE: "Sturm", EN: "gale"},
	{Chapter: "Wetter", DE: "Nebel", EN: "fog"},
	{Chapter: "Wetter", DE: "Seegang", EN: "sea state"},
	{Chapter: "Navigation", DE: "Kurs", EN: "course"},
}

func settings(chapter string) model.DrillSettings {
	return model.DrillSettings{
		Chapter:   chapter,
		Direction: model.DeToEn,
		Target:    model.TargetAll,
	}
}

func mustSubmit(t *testing.T, s *Session, answer string) Feedback {
	t.Helper()
	fb, err := s.Submit(answer)
	if err != nil {
		t.Fatalf("submit %q: %v", answer, err)
	}
	return fb
}

func answerCurrent(t *testing.T, s *Session) Feedback {
	t.Helper()
	card, ok := s.Current()
	if !ok {
		t.Fatalf("expected a current card")
	}
	return mustSubmit(t, s, s.Settings().Direction.Solution(card))
}

func TestSessionCompletesAfterReview(t *testing.T) {
	s := New(weatherCards, settings("Wetter"))
	if s.Target() != 3 {
		t.Fatalf("expected target 3, got %d", s.Target())
	}
	card2 := weatherCards[1]

	if s.Prompt() != "Sturm" {
		t.Fatalf("expected first card Sturm, got %q", s.Prompt())
	}
	answerCurrent(t, s)

	s.Next()
	if s.Prompt() != "Nebel" {
		t.Fatalf("expected second card Nebel, got %q", s.Prompt())
	}
	fb := mustSubmit(t, s, "mist")
	if fb.Correct || fb.Solution != "fog" {
		t.Fatalf("unexpected feedback: %+v", fb)
	}
	if !s.Queued(card2.Key()) {
		t.Fatalf("expected missed card to be queued")
	}

	s.Next()
	if s.Prompt() != "Seegang" {
		t.Fatalf("expected third card Seegang, got %q", s.Prompt())
	}
	answerCurrent(t, s)

	// Answer until the missed card comes back; the deck wraps meanwhile.
	for i := 0; i < 5 && !s.Done(); i++ {
		card, ok := s.Next()
		if !ok {
			t.Fatalf("expected another card")
		}
		if card.Key() == card2.Key() {
			answerCurrent(t, s)
			break
		}
		answerCurrent(t, s)
		if s.Done() {
			t.Fatalf("session must not finish while a review is pending")
		}
	}

	if !s.Done() {
		t.Fatalf("expected session to be done")
	}
	if s.Mastered() != 3 {
		t.Fatalf("expected 3 mastered cards, got %d", s.Mastered())
	}
	entry, ok := s.Mistake(card2.Key())
	if !ok || entry.WrongCount != 1 || entry.LastAnswer != "mist" {
		t.Fatalf("unexpected ledger entry: %+v (%v)", entry, ok)
	}
	if s.Score() != "4/5" {
		t.Fatalf("unexpected score %s", s.Score())
	}
	if s.Progress() != "3/3" {
		t.Fatalf("unexpected progress %s", s.Progress())
	}
	if _, ok := s.Next(); ok {
		t.Fatalf("expected no further cards once done")
	}
	if _, err := s.Submit("x"); !errors.Is(err, ErrNoCard) {
		t.Fatalf("expected ErrNoCard after completion, got %v", err)
	}
}

func TestReviewDelay(t *testing.T) {
	cards := []model.Card{
		{Chapter: "Wetter", DE: "a", EN: "1"},
		{Chapter: "Wetter", DE: "b", EN: "2"},
		{Chapter: "Wetter", DE: "c", EN: "3"},
		{Chapter: "Wetter", DE: "d", EN: "4"},
		{Chapter: "Wetter", DE: "e", EN: "5"},
	}
	s := New(cards, settings("Wetter"))
	mustSubmit(t, s, "wrong")

	var order []string
	for i := 0; i < 4; i++ {
		card, _ := s.Next()
		order = append(order, card.DE)
	}
	want := []string{"b", "c", "a", "d"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func TestReviewFirstForcesQueuedCard(t *testing.T) {
	st := settings("Wetter")
	st.ReviewFirst = true
	s := New(weatherCards, st)

	answerCurrent(t, s)
	s.Next()
	mustSubmit(t, s, "wrong")

	card, ok := s.Next()
	if !ok || card.DE != "Nebel" {
		t.Fatalf("expected missed card to be pulled forward, got %+v", card)
	}
	if s.Pending() != 0 {
		t.Fatalf("expected review queue to be drained, got %d", s.Pending())
	}
}

func TestReviewQueueHasNoDuplicates(t *testing.T) {
	cards := weatherCards[:2]
	s := New(cards, settings("Wetter"))
	first := cards[0].Key()

	mustSubmit(t, s, "wrong")
	s.Next() // Nebel from the deck
	s.Next() // deck wraps to Sturm while it is still queued
	if s.Prompt() != "Sturm" {
		t.Fatalf("expected wrapped card Sturm, got %q", s.Prompt())
	}
	mustSubmit(t, s, "wrong again")

	if s.Pending() != 1 || !s.Queued(first) {
		t.Fatalf("expected a single queued entry, got %d", s.Pending())
	}
	entry, _ := s.Mistake(first)
	if entry.WrongCount != 2 || entry.LastAnswer != "wrong again" {
		t.Fatalf("unexpected ledger entry %+v", entry)
	}
}

func TestSubmitStateErrors(t *testing.T) {
	s := New(weatherCards, settings("Wetter"))
	mustSubmit(t, s, "gale")
	if _, err := s.Submit("gale"); !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got %v", err)
	}
	if s.Total() != 1 {
		t.Fatalf("expected a rejected answer not to count, total=%d", s.Total())
	}
}

func TestSubmitNormalizesAnswer(t *testing.T) {
	s := New(weatherCards, settings("Wetter"))
	fb := mustSubmit(t, s, "  GALE! ")
	if !fb.Correct || fb.Message != "Richtig ✅" {
		t.Fatalf("expected normalized answer to be correct: %+v", fb)
	}
	s.Next()
	fb = mustSubmit(t, s, "fo")
	if fb.Correct || fb.Message != "Falsch ❌, richtig: fog" {
		t.Fatalf("unexpected feedback for near miss: %+v", fb)
	}
}

func TestDirectionEnToDe(t *testing.T) {
	st := settings("Navigation")
	st.Direction = model.EnToDe
	s := New(weatherCards, st)
	if s.Prompt() != "course" {
		t.Fatalf("expected english prompt, got %q", s.Prompt())
	}
	if fb := mustSubmit(t, s, "kurs"); !fb.Correct {
		t.Fatalf("expected german answer to be accepted: %+v", fb)
	}
	if !s.Done() {
		t.Fatalf("expected single-card chapter to finish")
	}
}

func TestEmptyChapter(t *testing.T) {
	s := New(weatherCards, settings("Wendungen"))
	if !s.Empty() || s.State() != StateIdle {
		t.Fatalf("expected idle empty session, state=%s", s.State())
	}
	if _, ok := s.Next(); ok {
		t.Fatalf("expected no card from empty deck")
	}
	if _, err := s.Submit("anything"); !errors.Is(err, ErrNoCard) {
		t.Fatalf("expected ErrNoCard, got %v", err)
	}
	if s.Progress() != "0/0" || s.Score() != "0/0" {
		t.Fatalf("unexpected counters %s %s", s.Progress(), s.Score())
	}
	if s.Done() {
		t.Fatalf("empty session must not be done before any answer")
	}
}

func TestTargetResolution(t *testing.T) {
	cases := []struct {
		target model.Target
		want   int
	}{
		{model.Target{Count: 2}, 2},
		{model.Target{Count: 10}, 3},
		{model.TargetAll, 3},
		{model.Target{}, 3},
	}
	for _, tc := range cases {
		st := settings("Wetter")
		st.Target = tc.target
		if got := New(weatherCards, st).Target(); got != tc.want {
			t.Fatalf("target %v: expected %d, got %d", tc.target, tc.want, got)
		}
	}
}

func TestFiniteTargetWaitsForReviews(t *testing.T) {
	st := settings("Wetter")
	st.Target = model.Target{Count: 1}
	s := New(weatherCards, st)

	mustSubmit(t, s, "wrong")
	s.Next()
	answerCurrent(t, s)
	if s.Done() {
		t.Fatalf("expected outstanding review to block completion")
	}
	for i := 0; i < 5 && !s.Done(); i++ {
		s.Next()
		answerCurrent(t, s)
	}
	if !s.Done() || s.Pending() != 0 {
		t.Fatalf("expected completion once the review was answered")
	}
}

func TestShuffleUsesInjectedShuffler(t *testing.T) {
	reverse := ShufflerFunc(func(cards []model.Card) {
		for i, j := 0, len(cards)-1; i < j; i, j = i+1, j-1 {
			cards[i], cards[j] = cards[j], cards[i]
		}
	})
	st := settings("Wetter")
	st.Shuffle = true
	s := New(weatherCards, st, WithShuffler(reverse))
	if s.Prompt() != "Seegang" {
		t.Fatalf("expected reversed deck, got %q", s.Prompt())
	}
	if weatherCards[0].DE != "Sturm" {
		t.Fatalf("shuffling must not reorder the source cards")
	}
}

func TestLedgerOrder(t *testing.T) {
	cards := []model.Card{
		{Chapter: "Wetter", DE: "a", EN: "1"},
		{Chapter: "Wetter", DE: "b", EN: "2"},
		{Chapter: "Wetter", DE: "c", EN: "3"},
	}
	st := settings(content.AllChapters)
	s := New(cards, st)
	mustSubmit(t, s, "x") // a
	s.Next()
	mustSubmit(t, s, "x") // b
	s.Next()
	mustSubmit(t, s, "x") // c
	s.Next()              // a from review
	mustSubmit(t, s, "y")

	ledger := s.Ledger()
	if len(ledger) != 3 {
		t.Fatalf("expected 3 ledger entries, got %d", len(ledger))
	}
	got := []string{ledger[0].Card.DE, ledger[1].Card.DE, ledger[2].Card.DE}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected ledger order %v, got %v", want, got)
		}
	}
	if ledger[0].WrongCount != 2 {
		t.Fatalf("expected a to be missed twice, got %d", ledger[0].WrongCount)
	}
}

func TestRebuildStartsFresh(t *testing.T) {
	s := New(weatherCards, settings("Wetter"))
	mustSubmit(t, s, "wrong")
	oldID := s.ID()

	st := settings(content.AllChapters)
	st.Direction = model.EnToDe
	fresh := s.Rebuild(st)
	if fresh.ID() == oldID {
		t.Fatalf("expected a new session id")
	}
	if fresh.Total() != 0 || fresh.Correct() != 0 || fresh.Mastered() != 0 || fresh.Pending() != 0 {
		t.Fatalf("expected fresh counters")
	}
	if len(fresh.Ledger()) != 0 {
		t.Fatalf("expected an empty ledger")
	}
	if fresh.DeckSize() != len(weatherCards) || fresh.Prompt() != "gale" {
		t.Fatalf("expected rebuilt deck over all cards, prompt=%q", fresh.Prompt())
	}
}

func TestChapterIsCanonicalized(t *testing.T) {
	if got := New(weatherCards, settings(" wetter ")).DeckSize(); got != 3 {
		t.Fatalf("expected lower-case chapter to match, got %d cards", got)
	}
	s := New(weatherCards, model.DrillSettings{})
	if s.Settings().Chapter != content.AllChapters || s.DeckSize() != len(weatherCards) {
		t.Fatalf("expected empty chapter to select all cards, got %q", s.Settings().Chapter)
	}
	if s.Settings().Direction != model.DeToEn || s.Target() != len(weatherCards) {
		t.Fatalf("unexpected defaults %+v target=%d", s.Settings(), s.Target())
	}
}
