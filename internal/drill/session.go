// Package drill schedules vocabulary flashcards within a practice session.
//
// A Session owns its deck, review queue, counters and mistake ledger. It is
// never migrated between settings: any change of chapter, direction, shuffle,
// review priority or target builds a new Session via New or Rebuild.
package drill

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/seefunk/internal/content"
	"github.com/verte-zerg/seefunk/internal/generator"
	"github.com/verte-zerg/seefunk/internal/logging"
	"github.com/verte-zerg/seefunk/internal/model"
	"github.com/verte-zerg/seefunk/internal/textnorm"
)

const (
	// DefaultTarget applies when settings carry no explicit target.
	DefaultTarget = 20

	reviewDelay            = 3
	reviewDelayReviewFirst = 2
)

// Messages shown for a chapter without cards.
const (
	EmptyDeckMessage = "Keine Vokabeln in diesem Kapitel gefunden."
	EmptyDeckHint    = "Tipp: anderes Kapitel wählen oder 'Alle'."
)

var (
	// ErrNoCard is returned when an answer arrives while no card is presented.
	ErrNoCard = errors.New("no card is being presented")
	// ErrAlreadyAnswered is returned for a second answer to the same presentation.
	ErrAlreadyAnswered = errors.New("current card was already answered")
)

// State is the position of a session in its presentation cycle.
type State int

const (
	StateIdle State = iota
	StatePresenting
	StateAnswered
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePresenting:
		return "presenting"
	case StateAnswered:
		return "answered"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Shuffler permutes a deck in place.
type Shuffler interface {
	Shuffle(cards []model.Card)
}

// ShufflerFunc adapts a function to Shuffler.
type ShufflerFunc func(cards []model.Card)

// Shuffle implements Shuffler.
func (f ShufflerFunc) Shuffle(cards []model.Card) { f(cards) }

// Option configures a Session.
type Option func(*Session)

// WithShuffler sets the permutation used when shuffling is enabled.
func WithShuffler(s Shuffler) Option {
	return func(sess *Session) { sess.shuffler = s }
}

// WithLogger sets the logger used for session events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(sess *Session) { sess.logger = l }
}

// LedgerEntry records how often a card was missed.
type LedgerEntry struct {
	Card       model.Card
	WrongCount int
	LastAnswer string
}

// Feedback describes the outcome of one answer.
type Feedback struct {
	Correct  bool
	Answer   string
	Solution string
	Message  string
	Done     bool
}

type reviewEntry struct {
	card  model.Card
	key   model.CardKey
	dueIn int
}

// Session is one vocabulary drill over a chapter with fixed settings.
type Session struct {
	id       string
	settings model.DrillSettings
	source   []model.Card
	opts     []Option
	shuffler Shuffler
	logger   logrus.FieldLogger

	deck    []model.Card
	next    int
	review  []reviewEntry
	current model.Card
	state   State

	mastered    map[model.CardKey]struct{}
	ledger      map[model.CardKey]*LedgerEntry
	ledgerOrder []model.CardKey

	correct int
	total   int
	target  int
	done    bool
}

// New builds a session over the cards of settings.Chapter and presents the
// first card. A chapter without cards yields an idle session.
func New(cards []model.Card, settings model.DrillSettings, opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		settings: settings,
		source:   cards,
		opts:     opts,
		mastered: map[model.CardKey]struct{}{},
		ledger:   map[model.CardKey]*LedgerEntry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	s.settings.Chapter = content.CanonicalChapter(s.settings.Chapter)
	if s.settings.Chapter == "" || strings.EqualFold(s.settings.Chapter, content.AllChapters) {
		s.settings.Chapter = content.AllChapters
	}
	if s.settings.Direction == "" {
		s.settings.Direction = model.DeToEn
	}
	if !s.settings.Target.All && s.settings.Target.Count <= 0 {
		s.settings.Target = model.Target{Count: DefaultTarget}
	}

	s.deck = content.FilterChapter(cards, s.settings.Chapter)
	if s.settings.Shuffle {
		if s.shuffler == nil {
			s.shuffler = generator.New()
		}
		s.shuffler.Shuffle(s.deck)
	}
	s.target = s.settings.Target.Resolve(len(s.deck))

	s.log().WithFields(logrus.Fields{
		"chapter":      s.settings.Chapter,
		"direction":    s.settings.Direction,
		"shuffle":      s.settings.Shuffle,
		"review_first": s.settings.ReviewFirst,
		"target":       s.target,
		"deck":         len(s.deck),
	}).Debug("drill session built")

	s.Next()
	return s
}

// Rebuild discards the session and returns a fresh one over the same cards.
func (s *Session) Rebuild(settings model.DrillSettings) *Session {
	return New(s.source, settings, s.opts...)
}

// Next advances to the next card: a due review first, otherwise the next deck
// card, wrapping around at the end of the deck. It reports false when the deck
// is empty or the session is done.
func (s *Session) Next() (model.Card, bool) {
	if len(s.deck) == 0 || s.done {
		return model.Card{}, false
	}
	card, ok := s.pickReview()
	if !ok {
		if s.next >= len(s.deck) {
			s.next = 0
		}
		card = s.deck[s.next]
		s.next++
	}
	s.current = card
	s.state = StatePresenting
	return card, true
}

func (s *Session) pickReview() (model.Card, bool) {
	if len(s.review) == 0 {
		return model.Card{}, false
	}
	for i := range s.review {
		s.review[i].dueIn--
	}
	for i, e := range s.review {
		if e.dueIn <= 0 {
			return s.takeReview(i), true
		}
	}
	if !s.settings.ReviewFirst {
		return model.Card{}, false
	}
	// Nothing due: pull the closest entry forward so reviews never starve.
	minIdx := 0
	for i := 1; i < len(s.review); i++ {
		if s.review[i].dueIn < s.review[minIdx].dueIn {
			minIdx = i
		}
	}
	s.review[minIdx].dueIn = 0
	return s.takeReview(minIdx), true
}

func (s *Session) takeReview(idx int) model.Card {
	card := s.review[idx].card
	s.review = append(s.review[:idx], s.review[idx+1:]...)
	return card
}

// Submit checks answer against the current card. The comparison is exact
// after normalization.
func (s *Session) Submit(answer string) (Feedback, error) {
	switch s.state {
	case StateIdle, StateDone:
		return Feedback{}, ErrNoCard
	case StateAnswered:
		return Feedback{}, ErrAlreadyAnswered
	}

	card := s.current
	key := card.Key()
	solution := s.settings.Direction.Solution(card)
	fb := Feedback{
		Answer:   strings.TrimSpace(answer),
		Solution: solution,
	}

	s.total++
	if textnorm.Equal(answer, solution) {
		s.correct++
		s.mastered[key] = struct{}{}
		fb.Correct = true
		fb.Message = "Richtig ✅"
	} else {
		entry, ok := s.ledger[key]
		if !ok {
			entry = &LedgerEntry{Card: card}
			s.ledger[key] = entry
			s.ledgerOrder = append(s.ledgerOrder, key)
		}
		entry.WrongCount++
		entry.LastAnswer = fb.Answer
		s.enqueue(card, key)
		fb.Message = fmt.Sprintf("Falsch ❌, richtig: %s", solution)
	}

	s.state = StateAnswered
	s.checkCompletion()
	fb.Done = s.done

	s.log().WithFields(logrus.Fields{
		"correct":  fb.Correct,
		"score":    s.Score(),
		"progress": s.Progress(),
		"pending":  len(s.review),
	}).Debug("drill answer checked")
	return fb, nil
}

func (s *Session) enqueue(card model.Card, key model.CardKey) {
	for _, e := range s.review {
		if e.key == key {
			return
		}
	}
	delay := reviewDelay
	if s.settings.ReviewFirst {
		delay = reviewDelayReviewFirst
	}
	s.review = append(s.review, reviewEntry{card: card, key: key, dueIn: delay})
}

func (s *Session) checkCompletion() {
	if s.done {
		return
	}
	if len(s.mastered) >= s.target && len(s.review) == 0 {
		s.done = true
		s.state = StateDone
		s.log().WithField("score", s.Score()).Info("drill session completed")
	}
}

func (s *Session) log() logrus.FieldLogger {
	return s.logger.WithField("session", s.id)
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// Settings returns the settings the session was built from.
func (s *Session) Settings() model.DrillSettings { return s.settings }

// State returns the current presentation state.
func (s *Session) State() State { return s.state }

// Empty reports whether the selected chapter has no cards.
func (s *Session) Empty() bool { return len(s.deck) == 0 }

// DeckSize returns the number of cards in the filtered deck.
func (s *Session) DeckSize() int { return len(s.deck) }

// Current returns the card being presented or last answered.
func (s *Session) Current() (model.Card, bool) {
	if s.state == StateIdle {
		return model.Card{}, false
	}
	return s.current, true
}

// Prompt returns the side of the current card shown to the user.
func (s *Session) Prompt() string {
	card, ok := s.Current()
	if !ok {
		return ""
	}
	return s.settings.Direction.Prompt(card)
}

// Done reports whether the completion target has been met with no reviews
// outstanding.
func (s *Session) Done() bool { return s.done }

// Correct returns the number of correct answers.
func (s *Session) Correct() int { return s.correct }

// Total returns the number of answers.
func (s *Session) Total() int { return s.total }

// Mastered returns the number of distinct cards answered correctly.
func (s *Session) Mastered() int { return len(s.mastered) }

// IsMastered reports whether key was answered correctly in this session.
func (s *Session) IsMastered(key model.CardKey) bool {
	_, ok := s.mastered[key]
	return ok
}

// Target returns the completion target.
func (s *Session) Target() int { return s.target }

// Pending returns the number of cards waiting in the review queue.
func (s *Session) Pending() int { return len(s.review) }

// Queued reports whether key is waiting in the review queue.
func (s *Session) Queued(key model.CardKey) bool {
	for _, e := range s.review {
		if e.key == key {
			return true
		}
	}
	return false
}

// Score renders correct/total.
func (s *Session) Score() string {
	return fmt.Sprintf("%d/%d", s.correct, s.total)
}

// Progress renders mastered/target.
func (s *Session) Progress() string {
	return fmt.Sprintf("%d/%d", len(s.mastered), s.target)
}

// Ledger returns the missed cards, most frequently missed first. Cards with
// equal counts keep the order of their first miss.
func (s *Session) Ledger() []LedgerEntry {
	out := make([]LedgerEntry, 0, len(s.ledgerOrder))
	for _, key := range s.ledgerOrder {
		out = append(out, *s.ledger[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WrongCount > out[j].WrongCount
	})
	return out
}

// Mistake returns the ledger record for key, if any.
func (s *Session) Mistake(key model.CardKey) (LedgerEntry, bool) {
	entry, ok := s.ledger[key]
	if !ok {
		return LedgerEntry{}, false
	}
	return *entry, true
}
