package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/seefunk/internal/content"
	"github.com/verte-zerg/seefunk/internal/grading"
)

func newTextsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "texts",
		Short: "List reference texts with their required parts",
		Args:  cobra.NoArgs,
		RunE:  runTextsCmd,
	}
}

func runTextsCmd(cmd *cobra.Command, _ []string) error {
	if err := loadFileConfig(cmd); err != nil {
		return err
	}
	logger, err := newCLILogger(cmd)
	if err != nil {
		return err
	}
	lib := content.Load(contentDir, logger)
	out := cmd.OutOrStdout()
	if len(lib.Texts) == 0 {
		fmt.Fprintf(out, "no reference texts found in %s\n", contentDir)
		return nil
	}
	for i, t := range lib.Texts {
		marker := ""
		if strings.TrimSpace(t.Audio) != "" {
			marker = " ♪"
		}
		fmt.Fprintf(out, "%3d. %s%s\n", i+1, t.DisplayTitle(i), marker)
		if req := grading.ExtractRequiredTokens(t.DE); len(req) > 0 {
			fmt.Fprintf(out, "     DE: %s\n", strings.Join(req, ", "))
		}
		if req := grading.ExtractRequiredTokens(t.EN); len(req) > 0 {
			fmt.Fprintf(out, "     EN: %s\n", strings.Join(req, ", "))
		}
	}
	return nil
}

func newChaptersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chapters",
		Short: "List vocabulary chapters with card counts",
		Args:  cobra.NoArgs,
		RunE:  runChaptersCmd,
	}
}

func runChaptersCmd(cmd *cobra.Command, _ []string) error {
	if err := loadFileConfig(cmd); err != nil {
		return err
	}
	logger, err := newCLILogger(cmd)
	if err != nil {
		return err
	}
	lib := content.Load(contentDir, logger)
	out := cmd.OutOrStdout()
	if len(lib.Vocab) == 0 {
		emptyDeckHint(out)
		return nil
	}
	counts := content.CountByChapter(lib.Vocab)
	for _, ch := range content.Chapters(lib.Vocab) {
		n := counts[ch]
		if ch == content.AllChapters {
			n = len(lib.Vocab)
		}
		fmt.Fprintf(out, "%-28s %4d\n", ch, n)
	}
	return nil
}
