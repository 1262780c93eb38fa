package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/seefunk/internal/content"
	"github.com/verte-zerg/seefunk/internal/grading"
)

var errNotPassed = errors.New("answer did not pass")

var (
	gradeText   int
	gradeMode   string
	gradeAnswer string
)

func newGradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Grade an answer against a reference text",
		Long: "Grade an answer against reference text N (see `seefunk texts`).\n" +
			"Mode de compares with the German text, en with the English one.\n" +
			"Without --answer the answer is read from stdin.",
		Args: cobra.NoArgs,
		RunE: runGradeCmd,
	}
	cmd.Flags().IntVar(&gradeText, "text", 1, "reference text number (1-based)")
	cmd.Flags().StringVar(&gradeMode, "mode", string(grading.ModeDE), "grading mode (de or en)")
	cmd.Flags().StringVar(&gradeAnswer, "answer", "", "answer text (default: read stdin)")
	return cmd
}

func runGradeCmd(cmd *cobra.Command, _ []string) error {
	if err := loadFileConfig(cmd); err != nil {
		return err
	}
	mode, err := grading.ParseMode(gradeMode)
	if err != nil {
		return fmt.Errorf("invalid --mode: %w", err)
	}
	logger, err := newCLILogger(cmd)
	if err != nil {
		return err
	}
	lib := content.Load(contentDir, logger)
	if gradeText < 1 || gradeText > len(lib.Texts) {
		return fmt.Errorf("--text must be between 1 and %d", len(lib.Texts))
	}
	t := lib.Texts[gradeText-1]

	answer := gradeAnswer
	if !cmd.Flags().Changed("answer") {
		answer, err = readAnswer(cmd)
		if err != nil {
			return err
		}
	}

	reference := t.DE
	if mode == grading.ModeEN {
		reference = t.EN
	}
	res := grading.Grade(answer, reference, mode)
	logger.WithFields(logrus.Fields{
		"text":       gradeText,
		"mode":       mode,
		"passed":     res.Passed,
		"similarity": fmt.Sprintf("%.2f", res.Similarity),
	}).Debug("answer graded")

	fmt.Fprintln(cmd.OutOrStdout(), res.Report())
	if !res.Passed {
		return errNotPassed
	}
	return nil
}

func readAnswer(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Antwort eingeben, Ende mit Ctrl+D:")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
