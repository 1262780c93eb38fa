package content

import (
	"sort"
	"strings"

	"github.com/verte-zerg/seefunk/internal/model"
)

// AllChapters is the pseudo-chapter that selects every card.
const AllChapters = "Alle"

// ChapterOrder lists the canonical chapters in exam-book order.
var ChapterOrder = []string{
	"Wetter",
	"Notfälle",
	"Navigation",
	"Schiffsmerkmale",
	"Wendungen",
	"Weitere nautische Begriffe",
	"Meldungsstruktur",
}

var chapterAliases = map[string]string{
	"wetter":                     "Wetter",
	"notfälle":                   "Notfälle",
	"notfaelle":                  "Notfälle",
	"notfalle":                   "Notfälle",
	"navigation":                 "Navigation",
	"schiffsmerkmale":            "Schiffsmerkmale",
	"schiffs merkmale":           "Schiffsmerkmale",
	"wendungen":                  "Wendungen",
	"weitere nautische begriffe": "Weitere nautische Begriffe",
	"meldungsstruktur":           "Meldungsstruktur",
}

// CanonicalChapter maps a raw chapter label onto its canonical name.
// Unknown labels are returned trimmed but otherwise unchanged.
func CanonicalChapter(raw string) string {
	c := strings.TrimSpace(raw)
	if canon, ok := chapterAliases[strings.ToLower(c)]; ok {
		return canon
	}
	return c
}

// Chapters returns the selectable chapters: AllChapters, the canonical
// chapters in order, then any other labels present in cards sorted by name.
func Chapters(cards []model.Card) []string {
	out := make([]string, 0, len(ChapterOrder)+1)
	out = append(out, AllChapters)
	out = append(out, ChapterOrder...)

	known := make(map[string]struct{}, len(ChapterOrder))
	for _, ch := range ChapterOrder {
		known[ch] = struct{}{}
	}
	extra := map[string]struct{}{}
	for _, c := range cards {
		ch := strings.TrimSpace(c.Chapter)
		if ch == "" {
			continue
		}
		if _, ok := known[ch]; ok {
			continue
		}
		extra[ch] = struct{}{}
	}
	others := make([]string, 0, len(extra))
	for ch := range extra {
		others = append(others, ch)
	}
	sort.Strings(others)
	return append(out, others...)
}

// FilterChapter returns the cards of chapter, or all cards for AllChapters.
// The result is a fresh slice.
func FilterChapter(cards []model.Card, chapter string) []model.Card {
	chapter = strings.TrimSpace(chapter)
	out := make([]model.Card, 0, len(cards))
	for _, c := range cards {
		if chapter == AllChapters || strings.TrimSpace(c.Chapter) == chapter {
			out = append(out, c)
		}
	}
	return out
}

// CountByChapter counts cards per chapter label.
func CountByChapter(cards []model.Card) map[string]int {
	counts := make(map[string]int)
	for _, c := range cards {
		counts[strings.TrimSpace(c.Chapter)]++
	}
	return counts
}
