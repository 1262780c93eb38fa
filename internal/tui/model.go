// Package tui provides the Bubble Tea exam trainer interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/seefunk/internal/audio"
	"github.com/verte-zerg/seefunk/internal/content"
	"github.com/verte-zerg/seefunk/internal/drill"
	"github.com/verte-zerg/seefunk/internal/grading"
	"github.com/verte-zerg/seefunk/internal/logging"
	"github.com/verte-zerg/seefunk/internal/model"
)

const (
	tabDiktat = iota
	tabDeEn
	tabVocab
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#2E86AB"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	plainStyle   = lipgloss.NewStyle()
	refStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	tokenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Bold(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E86AB"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	ledgerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	sectionStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// AudioPlayer plays one recording at a time.
type AudioPlayer interface {
	Play(ctx context.Context, path string) (audio.Playback, error)
	Stop()
}

// Options configure the TUI.
type Options struct {
	Library content.Library
	Drill   model.DrillSettings
	Player  AudioPlayer
	Logger  logrus.FieldLogger
	// Shuffler overrides the deck permutation; nil uses a time-seeded one.
	Shuffler drill.Shuffler
}

type audioDoneMsg struct {
	id  uint64
	err error
}

// Model implements the Bubble Tea trainer UI.
type Model struct {
	lib      content.Library
	player   AudioPlayer
	logger   logrus.FieldLogger
	chapters []string

	tabs      []string
	activeTab int

	width  int
	height int

	diktat textPane
	deEn   textPane
	vocab  vocabPane

	playing   uint64
	status    string
	statusErr bool
}

// NewModel constructs the trainer model with the Diktat tab active.
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	player := opts.Player
	if player == nil {
		player = audio.NewPlayer(nil, logger)
	}
	m := &Model{
		lib:      opts.Library,
		player:   player,
		logger:   logger,
		chapters: content.Chapters(opts.Library.Vocab),
		tabs:     []string{"Diktat", "DE → EN", "Vokabeln"},
		diktat:   newTextPane(grading.ModeDE, "Gehörten Text auf Deutsch eingeben …"),
		deEn:     newTextPane(grading.ModeEN, "Englische Übersetzung eingeben …"),
	}
	var drillOpts []drill.Option
	drillOpts = append(drillOpts, drill.WithLogger(logger))
	if opts.Shuffler != nil {
		drillOpts = append(drillOpts, drill.WithShuffler(opts.Shuffler))
	}
	m.vocab = newVocabPane(drill.New(opts.Library.Vocab, opts.Drill, drillOpts...))
	m.vocab.chapterIdx = indexOf(m.chapters, m.vocab.session.Settings().Chapter)
	m.focusActive()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case audioDoneMsg:
		m.handleAudioDone(msg)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.player.Stop()
			return m, tea.Quit
		case "tab":
			m.moveTab(1)
			return m, m.focusActive()
		case "shift+tab":
			m.moveTab(-1)
			return m, m.focusActive()
		case "alt+o":
			return m, m.playAudio()
		case "alt+x":
			m.stopAudio()
			return m, nil
		}
		if m.activeTab == tabVocab {
			return m.updateVocab(msg)
		}
		return m.updateText(msg)
	}
	return m, m.forwardToInput(msg)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return m.renderHeader() + "\n" + m.renderBody() + "\n" + m.renderFooter()
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 2
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 0
	}
	return maxInt(20, minInt(m.width-4, 100))
}

func (m *Model) updateLayout() {
	w := m.contentWidth()
	if w <= 0 {
		return
	}
	m.diktat.input.SetWidth(w)
	m.deEn.input.SetWidth(w)
	m.vocab.input.Width = maxInt(10, w-lipgloss.Width(m.vocab.input.Prompt)-1)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.stopAudio()
	m.clearStatus()
	switch m.activeTab {
	case tabDiktat:
		m.diktat.reset()
	case tabDeEn:
		m.deEn.reset()
	}
}

func (m *Model) focusActive() tea.Cmd {
	m.diktat.input.Blur()
	m.deEn.input.Blur()
	m.vocab.input.Blur()
	switch m.activeTab {
	case tabDiktat:
		return m.diktat.input.Focus()
	case tabDeEn:
		return m.deEn.input.Focus()
	default:
		return m.vocab.input.Focus()
	}
}

func (m *Model) forwardToInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.activeTab {
	case tabDiktat:
		m.diktat.input, cmd = m.diktat.input.Update(msg)
	case tabDeEn:
		m.deEn.input, cmd = m.deEn.input.Update(msg)
	default:
		m.vocab.input, cmd = m.vocab.input.Update(msg)
	}
	return cmd
}

func (m *Model) playAudio() tea.Cmd {
	p := m.activeTextPane()
	if p == nil {
		return nil
	}
	t, ok := m.currentText(p)
	if !ok {
		return nil
	}
	if strings.TrimSpace(t.Audio) == "" {
		m.setError("Keine Audiodatei für diesen Text gefunden.")
		return nil
	}
	pb, err := m.player.Play(context.Background(), m.lib.AudioPath(t))
	if err != nil {
		m.logger.WithError(err).WithField("text", p.index).Warn("audio playback failed")
		m.setError("Audio konnte nicht gestartet werden: " + err.Error())
		return nil
	}
	m.playing = pb.ID
	m.setStatus("♪ " + t.DisplayTitle(p.index))
	return waitPlayback(pb)
}

func waitPlayback(pb audio.Playback) tea.Cmd {
	return func() tea.Msg {
		err := <-pb.Done
		return audioDoneMsg{id: pb.ID, err: err}
	}
}

func (m *Model) stopAudio() {
	m.player.Stop()
	if m.playing != 0 {
		m.playing = 0
		m.clearStatus()
	}
}

func (m *Model) handleAudioDone(msg audioDoneMsg) {
	if msg.id != m.playing {
		return
	}
	m.playing = 0
	if msg.err != nil {
		m.logger.WithError(msg.err).Warn("audio player exited with error")
		m.setError("Audio abgebrochen: " + msg.err.Error())
		return
	}
	m.clearStatus()
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	var summary string
	if m.activeTab == tabVocab {
		summary = m.vocabSummary()
	} else {
		summary = m.textSummary(m.activeTextPane())
	}
	tabs := padLines(m.renderTabs(), m.width)
	return tabs + "\n" + headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderBody() string {
	if m.activeTab == tabVocab {
		return m.renderVocab()
	}
	return m.renderText(m.activeTextPane())
}

func (m *Model) renderHelp() string {
	var help string
	switch m.activeTab {
	case tabDiktat:
		help = "tab: Reiter  alt+n/alt+p: Text  alt+g: bewerten  alt+r: Referenz  alt+o/alt+x: Audio  esc: Ende"
	case tabDeEn:
		help = "tab: Reiter  alt+n/alt+p: Text  alt+g: bewerten  alt+r: Referenz  alt+h: Deutsch  esc: Ende"
	default:
		help = "enter: prüfen/weiter  alt+n: nächste  alt+c: Kapitel  alt+d: Richtung  alt+s: Mischen  alt+r: Wdh. zuerst  alt+t: Ziel  alt+e: Fehler  alt+b: neu  esc: Ende"
	}
	return footerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderFooter() string {
	status := ""
	if m.status != "" {
		if m.statusErr {
			status = errorStyle.Render(truncateLine(m.status, m.width))
		} else {
			status = statusStyle.Render(truncateLine(m.status, m.width))
		}
	}
	return m.renderHelp() + "\n" + status
}

func indexOf(items []string, want string) int {
	for i, it := range items {
		if it == want {
			return i
		}
	}
	return 0
}

func onOff(b bool) string {
	if b {
		return "an"
	}
	return "aus"
}

func directionLabel(d model.Direction) string {
	if d == model.EnToDe {
		return "EN → DE"
	}
	return "DE → EN"
}

func renderResult(res *grading.Result) string {
	if res == nil {
		return ""
	}
	lines := strings.Split(res.Report(), "\n")
	if res.Passed {
		lines[0] = passStyle.Render(lines[0])
	} else {
		lines[0] = failStyle.Render(lines[0])
	}
	return strings.Join(lines, "\n")
}

func section(title, body string, width int) string {
	style := sectionStyle
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(labelStyle.Render(title) + "\n" + body)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
