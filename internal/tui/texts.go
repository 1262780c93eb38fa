package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/seefunk/internal/grading"
	"github.com/verte-zerg/seefunk/internal/model"
)

// textPane backs the Diktat and DE → EN tabs.
type textPane struct {
	mode       grading.Mode
	index      int
	input      textarea.Model
	result     *grading.Result
	showRef    bool
	hidePrompt bool
}

func newTextPane(mode grading.Mode, placeholder string) textPane {
	input := textarea.New()
	input.Placeholder = placeholder
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetHeight(6)
	return textPane{mode: mode, input: input}
}

// reset clears input, verdict and reference; the German prompt toggle survives.
func (p *textPane) reset() {
	p.input.Reset()
	p.result = nil
	p.showRef = false
}

func (m *Model) activeTextPane() *textPane {
	switch m.activeTab {
	case tabDiktat:
		return &m.diktat
	case tabDeEn:
		return &m.deEn
	}
	return nil
}

func (m *Model) currentText(p *textPane) (model.ReferenceText, bool) {
	if p == nil || len(m.lib.Texts) == 0 {
		return model.ReferenceText{}, false
	}
	if p.index < 0 || p.index >= len(m.lib.Texts) {
		p.index = 0
	}
	return m.lib.Texts[p.index], true
}

func (m *Model) updateText(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.activeTextPane()
	switch msg.String() {
	case "alt+n":
		m.selectText(p, p.index+1)
		return m, nil
	case "alt+p":
		m.selectText(p, p.index-1)
		return m, nil
	case "alt+g":
		m.gradeText(p)
		return m, nil
	case "alt+r":
		p.showRef = !p.showRef
		return m, nil
	case "alt+h":
		if p.mode == grading.ModeEN {
			p.hidePrompt = !p.hidePrompt
		}
		return m, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return m, cmd
}

// selectText switches to text idx (wrapping) and clears the pane.
func (m *Model) selectText(p *textPane, idx int) {
	count := len(m.lib.Texts)
	if count == 0 {
		return
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	p.index = idx
	p.reset()
	m.stopAudio()
	m.clearStatus()
}

func (m *Model) gradeText(p *textPane) {
	t, ok := m.currentText(p)
	if !ok {
		return
	}
	reference := t.DE
	if p.mode == grading.ModeEN {
		reference = t.EN
	}
	res := grading.Grade(p.input.Value(), reference, p.mode)
	p.result = &res
	m.logger.WithFields(logrus.Fields{
		"text":       p.index,
		"mode":       p.mode,
		"passed":     res.Passed,
		"similarity": fmt.Sprintf("%.2f", res.Similarity),
		"missing":    len(res.Missing),
	}).Info("answer graded")
}

func (m *Model) textSummary(p *textPane) string {
	t, ok := m.currentText(p)
	if !ok {
		return "Keine Seefunktexte geladen."
	}
	summary := fmt.Sprintf("Text %d/%d: %s", p.index+1, len(m.lib.Texts), t.DisplayTitle(p.index))
	if strings.TrimSpace(t.Audio) != "" {
		summary += "  ♪"
	}
	return summary
}

func (m *Model) renderText(p *textPane) string {
	t, ok := m.currentText(p)
	if !ok {
		return "Keine Seefunktexte gefunden.\nTipp: seefunktexte.json im Inhaltsordner ablegen (--content)."
	}
	width := m.contentWidth()
	innerWidth := width - 4
	blocks := []string{}

	if p.mode == grading.ModeEN {
		if p.hidePrompt {
			blocks = append(blocks, labelStyle.Render("Deutsch: ")+headerStyle.Render("(ausgeblendet, alt+h)"))
		} else {
			blocks = append(blocks, section("Deutsch:", wrapReference(t.DE, nil, innerWidth, promptStyle), width))
		}
	}

	blocks = append(blocks, p.input.View())
	if p.result != nil {
		blocks = append(blocks, renderResult(p.result))
	}

	if p.showRef {
		if p.mode == grading.ModeEN {
			blocks = append(blocks, section("Referenz EN:", wrapReference(t.EN, grading.ExtractRequiredTokens(t.EN), innerWidth, refStyle), width))
		} else {
			ref := wrapReference(t.EN, grading.ExtractRequiredTokens(t.EN), innerWidth, refStyle) +
				"\n\n" + labelStyle.Render("Referenz DE:") + "\n" +
				wrapReference(t.DE, grading.ExtractRequiredTokens(t.DE), innerWidth, refStyle)
			blocks = append(blocks, section("Referenz EN:", ref, width))
		}
	}
	return strings.Join(blocks, "\n\n")
}
