package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/seefunk/internal/drill"
	"github.com/verte-zerg/seefunk/internal/model"
	"github.com/verte-zerg/seefunk/internal/stats"
)

var targetPresets = []model.Target{
	{Count: 10},
	{Count: 20},
	{Count: 30},
	{Count: 50},
	model.TargetAll,
}

type vocabPane struct {
	session     *drill.Session
	input       textinput.Model
	feedback    drill.Feedback
	hasFeedback bool
	showErrors  bool
	chapterIdx  int
}

func newVocabPane(s *drill.Session) vocabPane {
	input := textinput.New()
	input.Prompt = "Antwort: "
	input.Placeholder = "Übersetzung eingeben, enter prüft"
	input.CharLimit = 0
	return vocabPane{session: s, input: input}
}

func (v *vocabPane) clearAnswer() {
	v.input.Reset()
	v.feedback = drill.Feedback{}
	v.hasFeedback = false
}

func (m *Model) updateVocab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := &m.vocab
	settings := v.session.Settings()
	switch msg.String() {
	case "enter":
		m.checkOrAdvance()
		return m, nil
	case "alt+n":
		m.nextCard()
		return m, nil
	case "alt+e":
		v.showErrors = !v.showErrors
		return m, nil
	case "alt+b":
		m.rebuildDrill(settings)
		return m, nil
	case "alt+c":
		if len(m.chapters) > 0 {
			v.chapterIdx = (v.chapterIdx + 1) % len(m.chapters)
			settings.Chapter = m.chapters[v.chapterIdx]
			m.rebuildDrill(settings)
		}
		return m, nil
	case "alt+d":
		if settings.Direction == model.EnToDe {
			settings.Direction = model.DeToEn
		} else {
			settings.Direction = model.EnToDe
		}
		m.rebuildDrill(settings)
		return m, nil
	case "alt+s":
		settings.Shuffle = !settings.Shuffle
		m.rebuildDrill(settings)
		return m, nil
	case "alt+r":
		settings.ReviewFirst = !settings.ReviewFirst
		m.rebuildDrill(settings)
		return m, nil
	case "alt+t":
		settings.Target = nextTarget(settings.Target)
		m.rebuildDrill(settings)
		return m, nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return m, cmd
}

func nextTarget(cur model.Target) model.Target {
	for i, t := range targetPresets {
		if t == cur {
			return targetPresets[(i+1)%len(targetPresets)]
		}
	}
	return targetPresets[0]
}

func (m *Model) checkOrAdvance() {
	v := &m.vocab
	switch v.session.State() {
	case drill.StatePresenting:
		fb, err := v.session.Submit(v.input.Value())
		if err != nil {
			m.logger.WithError(err).Debug("answer ignored")
			return
		}
		v.feedback = fb
		v.hasFeedback = true
	case drill.StateAnswered:
		m.nextCard()
	}
}

func (m *Model) nextCard() {
	v := &m.vocab
	if _, ok := v.session.Next(); ok {
		v.clearAnswer()
	}
}

func (m *Model) rebuildDrill(settings model.DrillSettings) {
	v := &m.vocab
	v.session = v.session.Rebuild(settings)
	v.clearAnswer()
	v.showErrors = false
	m.logger.WithFields(logrus.Fields{
		"session":      v.session.ID(),
		"chapter":      settings.Chapter,
		"direction":    settings.Direction,
		"shuffle":      settings.Shuffle,
		"review_first": settings.ReviewFirst,
		"target":       settings.Target.String(),
	}).Info("drill session rebuilt")
}

func (m *Model) vocabSummary() string {
	s := m.vocab.session.Settings()
	chapter := s.Chapter
	if chapter == "" {
		chapter = "Alle"
	}
	target := s.Target.String()
	if s.Target.All {
		target = "alle"
	}
	return fmt.Sprintf("Kapitel: %s (%s)  Richtung: %s  Mischen: %s  Wdh. zuerst: %s  Ziel: %s",
		chapter, plural(m.vocab.session.DeckSize(), "Karte", "Karten"),
		directionLabel(s.Direction), onOff(s.Shuffle), onOff(s.ReviewFirst), target)
}

func (m *Model) renderVocab() string {
	v := &m.vocab
	s := v.session
	if s.Empty() {
		return promptStyle.Render(drill.EmptyDeckMessage) + "\n" + headerStyle.Render(drill.EmptyDeckHint) +
			"\n\n" + strings.Join(stats.Summarize(s).Lines(), "\n")
	}

	blocks := []string{}
	if s.Done() && !v.hasFeedback {
		blocks = append(blocks, passStyle.Render(stats.DoneMessage)+"\n"+headerStyle.Render("alt+b startet das Kapitel neu."))
	} else {
		blocks = append(blocks, labelStyle.Render("Übersetze:")+"\n"+promptStyle.Render(s.Prompt()))
		blocks = append(blocks, v.input.View())
	}
	if v.hasFeedback {
		style := failStyle
		if v.feedback.Correct {
			style = passStyle
		}
		fb := style.Render(v.feedback.Message)
		if !v.feedback.Done {
			fb += "\n" + headerStyle.Render("enter: nächste Karte")
		}
		blocks = append(blocks, fb)
	}

	summary := stats.Summarize(s)
	lines := summary.Lines()
	if summary.Done {
		lines[len(lines)-1] = passStyle.Render(lines[len(lines)-1])
	}
	blocks = append(blocks, strings.Join(lines, "\n"))

	if v.showErrors {
		blocks = append(blocks, ledgerStyle.Render(strings.Join(stats.LedgerLines(s.Ledger()), "\n")))
	}
	return strings.Join(blocks, "\n\n")
}
