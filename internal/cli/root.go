// Package cli wires the command line interface: flag parsing, source
// selection, retriever construction and the deck build itself.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wjrm500/lexideck/internal/config"
	"github.com/wjrm500/lexideck/internal/platform/logger"

	// Registered retrievers.
	_ "github.com/wjrm500/lexideck/internal/platform/gemini"
	_ "github.com/wjrm500/lexideck/internal/scraper"
)

var (
	cfg *config.Config
	log *slog.Logger

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lexideck",
	Short: "Build bilingual Anki flashcard decks",
	Long: `lexideck looks up words in online dictionaries or an LLM and turns the
translations into an Anki deck of language learning flashcards.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		level := cfg.App.LogLevel
		if verbose {
			level = "debug"
		}
		log = logger.Setup(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
