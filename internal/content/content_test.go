package content

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/verte-zerg/seefunk/internal/model"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadCleansVocab(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, VocabFile, `[
		{"chapter": " notfaelle ", "de": "  Seenot ", "en": "distress  "},
		{"chapter": "WETTER", "de": "Sturm", "en": "gale"},
		{"chapter": "Funkverkehr", "de": "Kanal", "en": "channel"}
	]`)
	writeFile(t, dir, TextsFile, `[{"title": "Mayday", "de": "Mayday ...", "en": "Mayday ...", "audio": "audio/mayday.mp3"}]`)

	logger, _ := logtest.NewNullLogger()
	lib := Load(dir, logger)

	want := []model.Card{
		{Chapter: "Notfälle", DE: "Seenot", EN: "distress"},
		{Chapter: "Wetter", DE: "Sturm", EN: "gale"},
		{Chapter: "Funkverkehr", DE: "Kanal", EN: "channel"},
	}
	if !reflect.DeepEqual(lib.Vocab, want) {
		t.Fatalf("unexpected cards: %+v", lib.Vocab)
	}
	if len(lib.Texts) != 1 || lib.Texts[0].Title != "Mayday" {
		t.Fatalf("unexpected texts: %+v", lib.Texts)
	}
	if got := lib.AudioPath(lib.Texts[0]); got != filepath.Join(dir, "audio", "mayday.mp3") {
		t.Fatalf("unexpected audio path: %s", got)
	}
}

func TestLoadDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, TextsFile, `not json`)

	logger, hook := logtest.NewNullLogger()
	lib := Load(dir, logger)

	if lib.Texts == nil || len(lib.Texts) != 0 {
		t.Fatalf("expected empty texts, got %#v", lib.Texts)
	}
	if lib.Vocab == nil || len(lib.Vocab) != 0 {
		t.Fatalf("expected empty vocab, got %#v", lib.Vocab)
	}
	warnings := 0
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warnings++
		}
	}
	if warnings != 2 {
		t.Fatalf("expected 2 warnings, got %d", warnings)
	}
}

func TestAudioPathEmpty(t *testing.T) {
	lib := Library{Dir: "/content"}
	if got := lib.AudioPath(model.ReferenceText{}); got != "" {
		t.Fatalf("expected empty audio path, got %q", got)
	}
	if got := lib.AudioPath(model.ReferenceText{Audio: "/abs/a.mp3"}); got != "/abs/a.mp3" {
		t.Fatalf("expected absolute path to be kept, got %q", got)
	}
}
