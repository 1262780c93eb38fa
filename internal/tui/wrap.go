package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

type span struct {
	start int
	end   int
}

// requiredSpans locates every case-insensitive occurrence of tokens in text,
// as rune offsets.
func requiredSpans(text []rune, tokens []string) []span {
	lower := make([]rune, len(text))
	for i, r := range text {
		lower[i] = unicode.ToLower(r)
	}
	var spans []span
	for _, tok := range tokens {
		needle := []rune(strings.ToLower(tok))
		if len(needle) == 0 {
			continue
		}
		for i := 0; i+len(needle) <= len(lower); i++ {
			if runesEqual(lower[i:i+len(needle)], needle) {
				spans = append(spans, span{start: i, end: i + len(needle)})
			}
		}
	}
	return spans
}

func runesEqual(a, b []rune) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func inSpans(spans []span, i int) bool {
	for _, s := range spans {
		if i >= s.start && i < s.end {
			return true
		}
	}
	return false
}

// buildStyledRunes renders text with required tokens highlighted. Whitespace
// folds to single spaces so it can wrap.
func buildStyledRunes(text []rune, spans []span, base lipgloss.Style) []styledRune {
	out := make([]styledRune, 0, len(text))
	for i, r := range text {
		if unicode.IsSpace(r) {
			out = append(out, styledRune{s: " ", width: 1, isSpace: true})
			continue
		}
		style := base
		if inSpans(spans, i) {
			style = tokenStyle
		}
		out = append(out, styledRune{
			s:     style.Render(string(r)),
			width: runewidth.RuneWidth(r),
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		if item.isSpace && len(line) == 0 {
			i++
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}

// wrapReference wraps a reference text to width with required tokens highlighted.
func wrapReference(text string, tokens []string, width int, base lipgloss.Style) string {
	runes := []rune(strings.TrimSpace(text))
	return wrapStyledRunes(buildStyledRunes(runes, requiredSpans(runes, tokens), base), width)
}
