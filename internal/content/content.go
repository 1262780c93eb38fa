// Package content loads reference texts and vocabulary from JSON files.
package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/seefunk/internal/model"
)

const (
	// TextsFile holds the reference texts inside a content directory.
	TextsFile = "seefunktexte.json"
	// VocabFile holds the vocabulary cards inside a content directory.
	VocabFile = "vokabeln.json"
)

// Library is the loaded content set.
type Library struct {
	Dir   string
	Texts []model.ReferenceText
	Vocab []model.Card
}

// LoadTexts reads reference texts from path.
func LoadTexts(path string) ([]model.ReferenceText, error) {
	var texts []model.ReferenceText
	if err := readJSON(path, &texts); err != nil {
		return nil, err
	}
	return texts, nil
}

// LoadVocab reads vocabulary cards from path, trimming every field and
// canonicalizing chapter labels.
func LoadVocab(path string) ([]model.Card, error) {
	var raw []model.Card
	if err := readJSON(path, &raw); err != nil {
		return nil, err
	}
	cards := make([]model.Card, 0, len(raw))
	for _, c := range raw {
		cards = append(cards, CleanCard(c))
	}
	return cards, nil
}

// CleanCard trims a card and canonicalizes its chapter.
func CleanCard(c model.Card) model.Card {
	return model.Card{
		Chapter: CanonicalChapter(c.Chapter),
		DE:      strings.TrimSpace(c.DE),
		EN:      strings.TrimSpace(c.EN),
	}
}

// Load reads both content files from dir. A file that cannot be read or
// decoded is logged and replaced by an empty collection.
func Load(dir string, logger logrus.FieldLogger) Library {
	lib := Library{Dir: dir}

	textsPath := filepath.Join(dir, TextsFile)
	texts, err := LoadTexts(textsPath)
	if err != nil {
		logger.WithError(err).WithField("path", textsPath).Warn("reference texts unavailable; continuing without texts")
		texts = []model.ReferenceText{}
	}
	lib.Texts = texts

	vocabPath := filepath.Join(dir, VocabFile)
	vocab, err := LoadVocab(vocabPath)
	if err != nil {
		logger.WithError(err).WithField("path", vocabPath).Warn("vocabulary unavailable; continuing without cards")
		vocab = []model.Card{}
	}
	lib.Vocab = vocab

	logger.WithFields(logrus.Fields{
		"dir":   dir,
		"texts": len(lib.Texts),
		"cards": len(lib.Vocab),
	}).Info("content loaded")
	return lib
}

// AudioPath resolves a text's audio reference against the content directory.
// It returns an empty string when the text has no audio.
func (l Library) AudioPath(t model.ReferenceText) string {
	ref := strings.TrimSpace(t.Audio)
	if ref == "" {
		return ""
	}
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(l.Dir, ref)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
