// Package main provides the CLI entrypoint for seefunk.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/seefunk/internal/audio"
	"github.com/verte-zerg/seefunk/internal/config"
	"github.com/verte-zerg/seefunk/internal/content"
	"github.com/verte-zerg/seefunk/internal/drill"
	"github.com/verte-zerg/seefunk/internal/logging"
	"github.com/verte-zerg/seefunk/internal/model"
	"github.com/verte-zerg/seefunk/internal/tui"
)

const defaultTarget = "20"

var (
	contentDir string
	logLevel   string
	logFormat  string
	logFile    string

	drillChapter     string
	drillDirection   string
	drillShuffle     bool
	drillReviewFirst bool
	drillTarget      string
	audioPlayer      string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "seefunk",
		Short:         "Maritime radio exam trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTrainerCmd,
	}

	rootCmd.PersistentFlags().StringVar(&contentDir, "content", config.DefaultContentDir(), "directory with seefunktexte.json and vokabeln.json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text or json)")

	rootCmd.Flags().StringVar(&drillChapter, "chapter", content.AllChapters, "vocabulary chapter")
	rootCmd.Flags().StringVar(&drillDirection, "direction", string(model.DeToEn), "drill direction (de2en or en2de)")
	rootCmd.Flags().BoolVar(&drillShuffle, "shuffle", false, "shuffle the vocabulary deck")
	rootCmd.Flags().BoolVar(&drillReviewFirst, "review-first", false, "bring missed cards back as early as possible")
	rootCmd.Flags().StringVar(&drillTarget, "target", defaultTarget, "cards to master before the chapter is done (number or all)")
	rootCmd.Flags().StringVar(&audioPlayer, "player", "", "audio player command (default: first of mpv, ffplay, afplay, paplay, aplay)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "log file while the TUI runs")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newGradeCmd())
	rootCmd.AddCommand(newTextsCmd())
	rootCmd.AddCommand(newChaptersCmd())

	return rootCmd
}

// loadFileConfig overlays config file values onto every flag the user did not set.
func loadFileConfig(cmd *cobra.Command) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "content", &contentDir, fileCfg.Content.Dir)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-format", &logFormat, fileCfg.Log.Format)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	applyStringConfig(cmd, "chapter", &drillChapter, fileCfg.Drill.Chapter)
	applyStringConfig(cmd, "direction", &drillDirection, fileCfg.Drill.Direction)
	applyBoolConfig(cmd, "shuffle", &drillShuffle, fileCfg.Drill.Shuffle)
	applyBoolConfig(cmd, "review-first", &drillReviewFirst, fileCfg.Drill.ReviewFirst)
	applyStringConfig(cmd, "target", &drillTarget, fileCfg.Drill.Target)
	applyStringConfig(cmd, "player", &audioPlayer, fileCfg.Audio.Player)
	contentDir = config.ExpandHome(contentDir)
	logFile = config.ExpandHome(logFile)
	return nil
}

func drillSettings() (model.DrillSettings, error) {
	dir, err := model.ParseDirection(drillDirection)
	if err != nil {
		return model.DrillSettings{}, fmt.Errorf("invalid --direction: %w", err)
	}
	target, err := model.ParseTarget(drillTarget)
	if err != nil {
		return model.DrillSettings{}, fmt.Errorf("invalid --target: %w", err)
	}
	chapter := content.CanonicalChapter(drillChapter)
	if chapter == "" || strings.EqualFold(chapter, content.AllChapters) {
		chapter = content.AllChapters
	}
	return model.DrillSettings{
		Chapter:     chapter,
		Direction:   dir,
		Shuffle:     drillShuffle,
		ReviewFirst: drillReviewFirst,
		Target:      target,
	}, nil
}

// newCLILogger logs to stderr for one-shot subcommands; warnings only unless configured.
func newCLILogger(cmd *cobra.Command) (*logrus.Logger, error) {
	level := logLevel
	if level == "" {
		level = "warn"
	}
	return logging.New(logging.Options{Level: level, Format: logFormat, Output: cmd.ErrOrStderr()})
}

func runTrainerCmd(cmd *cobra.Command, _ []string) error {
	if err := loadFileConfig(cmd); err != nil {
		return err
	}
	settings, err := drillSettings()
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("the trainer needs an interactive terminal; use `seefunk grade` for scripted grading")
	}

	path := logFile
	if path == "" {
		path = config.DefaultLogPath()
	}
	f, err := logging.OpenFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()
	logger, err := logging.New(logging.Options{Level: logLevel, Format: logFormat, Output: f})
	if err != nil {
		return err
	}

	lib := content.Load(contentDir, logger)
	command := audio.ParseCommand(audioPlayer)
	if len(command) == 0 {
		command = audio.DetectCommand()
	}
	if len(command) == 0 {
		logger.Warn("no audio player found; playback disabled")
	}
	player := audio.NewPlayer(command, logger)
	defer player.Stop()

	logger.WithFields(logrus.Fields{
		"chapter":   settings.Chapter,
		"direction": settings.Direction,
		"target":    settings.Target.String(),
		"player":    player.Command(),
	}).Info("trainer started")

	m := tui.NewModel(tui.Options{
		Library: lib,
		Drill:   settings,
		Player:  player,
		Logger:  logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	created, err := config.EnsureFile(path)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(cmd.ErrOrStderr(), "created %s\n", path)
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	editCmd := exec.Command(parts[0], append(parts[1:], path)...)
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	if err := editCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func emptyDeckHint(w io.Writer) {
	fmt.Fprintln(w, drill.EmptyDeckMessage)
	fmt.Fprintln(w, drill.EmptyDeckHint)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
