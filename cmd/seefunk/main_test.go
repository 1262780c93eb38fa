package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/seefunk/internal/content"
	"github.com/verte-zerg/seefunk/internal/model"
)

const textsJSON = `[
  {
    "title": "Notruf",
    "de": "MAYDAY hier ist Seeadler Rufzeichen /DABC Position 54-10 N 007-52 E um 1200 UTC",
    "en": "MAYDAY this is Seeadler call sign /DABC position 54-10 N 007-52 E at 1200 UTC",
    "audio": "audio/notruf.mp3"
  },
  {"title": "", "de": "Wetterbericht", "en": "Weather report"}
]`

const vocabJSON = `[
  {"chapter": "wetter", "de": " Sturm ", "en": "gale"},
  {"chapter": "Notfaelle", "de": "Notruf", "en": "distress call"},
  {"chapter": "Wetter", "de": "Nebel", "en": "fog"}
]`

func setupContent(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, content.TextsFile), []byte(textsJSON), 0o644); err != nil {
		t.Fatalf("write texts: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, content.VocabFile), []byte(vocabJSON), 0o644); err != nil {
		t.Fatalf("write vocab: %v", err)
	}
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestGradeCommandPasses(t *testing.T) {
	dir := setupContent(t)
	answer := "MAYDAY this is Seeadler call sign DABC position 54-10 N 007-52 E at 1200 UTC"
	out, _, err := run(t, "", "grade", "--content", dir, "--text", "1", "--mode", "en", "--answer", answer)
	if err != nil {
		t.Fatalf("expected pass, got %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "BESTANDEN ✅\n") {
		t.Fatalf("unexpected report:\n%s", out)
	}
	if !strings.Contains(out, "Pflichtteile erkannt: 54-10 N 007-52 E, DABC, 1200 UTC") {
		t.Fatalf("expected required parts in report:\n%s", out)
	}
}

func TestGradeCommandReadsStdinAndFails(t *testing.T) {
	dir := setupContent(t)
	out, _, err := run(t, "MAYDAY hier ist Seeadler\n", "grade", "--content", dir, "--text", "1")
	if !errors.Is(err, errNotPassed) {
		t.Fatalf("expected errNotPassed, got %v", err)
	}
	if !strings.Contains(out, "NICHT BESTANDEN ❌") || !strings.Contains(out, "Fehlende Pflichtteile:") {
		t.Fatalf("unexpected report:\n%s", out)
	}
}

func TestGradeCommandValidatesInput(t *testing.T) {
	dir := setupContent(t)
	if _, _, err := run(t, "", "grade", "--content", dir, "--text", "3", "--answer", "x"); err == nil {
		t.Fatalf("expected out-of-range text error")
	}
	if _, _, err := run(t, "", "grade", "--content", dir, "--mode", "fr", "--answer", "x"); err == nil {
		t.Fatalf("expected invalid mode error")
	}
}

func TestTextsCommand(t *testing.T) {
	dir := setupContent(t)
	out, _, err := run(t, "", "texts", "--content", dir)
	if err != nil {
		t.Fatalf("texts: %v", err)
	}
	for _, want := range []string{"  1. Notruf ♪", "     EN: 54-10 N 007-52 E, DABC, 1200 UTC", "  2. Eintrag 2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestChaptersCommand(t *testing.T) {
	dir := setupContent(t)
	out, _, err := run(t, "", "chapters", "--content", dir)
	if err != nil {
		t.Fatalf("chapters: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.HasPrefix(lines[0], "Alle") || !strings.HasSuffix(lines[0], " 3") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Wetter") || !strings.HasSuffix(lines[1], " 2") {
		t.Fatalf("unexpected Wetter line %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "Notfälle") || !strings.HasSuffix(lines[2], " 1") {
		t.Fatalf("unexpected Notfälle line %q", lines[2])
	}
}

func TestChaptersCommandMissingContent(t *testing.T) {
	setupContent(t)
	out, errOut, err := run(t, "", "chapters", "--content", t.TempDir())
	if err != nil {
		t.Fatalf("expected missing content to degrade, got %v", err)
	}
	if !strings.Contains(out, "Keine Vokabeln") {
		t.Fatalf("expected empty-deck guidance, got %q", out)
	}
	if !strings.Contains(errOut, "vocabulary unavailable") {
		t.Fatalf("expected warning on stderr, got %q", errOut)
	}
}

func TestConfigOverlayRespectsFlags(t *testing.T) {
	setupContent(t)
	cfgDir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "seefunk")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	data := "[drill]\nchapter = \"notfaelle\"\ndirection = \"en2de\"\ntarget = \"all\"\nreview-first = true\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	root := newRootCmd()
	if err := root.ParseFlags([]string{"--direction", "de2en"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if err := loadFileConfig(root); err != nil {
		t.Fatalf("load config: %v", err)
	}
	settings, err := drillSettings()
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	want := model.DrillSettings{
		Chapter:     "Notfälle",
		Direction:   model.DeToEn,
		ReviewFirst: true,
		Target:      model.TargetAll,
	}
	if settings != want {
		t.Fatalf("expected %+v, got %+v", want, settings)
	}
}

func TestDrillSettingsValidation(t *testing.T) {
	newRootCmd()
	drillTarget = "0"
	if _, err := drillSettings(); err == nil {
		t.Fatalf("expected invalid target error")
	}
	drillTarget = defaultTarget
	drillDirection = "sideways"
	if _, err := drillSettings(); err == nil {
		t.Fatalf("expected invalid direction error")
	}
}
