package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wjrm500/lexideck/internal/domain"
	"github.com/wjrm500/lexideck/internal/lang"
	"github.com/wjrm500/lexideck/internal/retrieval"
)

var lookupFlags struct {
	languageFrom  string
	languageTo    string
	retrieverType string
	conciseMode   bool
}

var lookupCmd = &cobra.Command{
	Use:   "lookup WORD",
	Short: "Look up translations for a single word",
	Long: `Retrieve and print the translations, definitions and example
sentences for one word, without building a deck.`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	f := lookupCmd.Flags()
	f.StringVarP(&lookupFlags.languageFrom, "language-from", "f", "english", "language to translate from")
	f.StringVarP(&lookupFlags.languageTo, "language-to", "t", "spanish", "language to translate to")
	f.StringVarP(&lookupFlags.retrieverType, "retriever-type", "r", "spanishdict",
		"retriever to use (spanishdict, collins, wordreference, gemini)")
	f.BoolVar(&lookupFlags.conciseMode, "concise-mode", false,
		"prune translations and definitions for more concise output")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	word := args[0]
	from, err := lang.Parse(lookupFlags.languageFrom)
	if err != nil {
		return err
	}
	to, err := lang.Parse(lookupFlags.languageTo)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	retriever, err := retrieval.New(ctx, lookupFlags.retrieverType, retrieval.Options{
		From:        from,
		To:          to,
		ConciseMode: lookupFlags.conciseMode,
		Logger:      log,
		APIKey:      cfg.LLM.GeminiAPIKey,
		Model:       cfg.LLM.ModelName,
		MaxRetries:  cfg.LLM.MaxRetries,
		RetryDelay:  time.Duration(cfg.LLM.RetryDelaySeconds) * time.Second,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := retriever.Close(); err != nil {
			log.Warn("failed to close retriever", "error", err)
		}
	}()

	translations, err := retriever.RetrieveTranslations(ctx, word)
	if err != nil {
		return err
	}

	fmt.Printf("Word to translate: %s\n\n", word)
	if len(translations) == 0 {
		fmt.Println("No translations found")
		return nil
	}
	fmt.Print(formatTranslations(translations))
	return nil
}

func formatTranslations(translations []*domain.Translation) string {
	var b strings.Builder
	for _, t := range translations {
		glosses := make([]string, len(t.Definitions))
		for i, d := range t.Definitions {
			glosses[i] = d.Text
		}
		fmt.Fprintf(&b, "%s (%s) - %s\n", t.Word, t.PartOfSpeech, strings.Join(glosses, ", "))
		for _, d := range t.Definitions {
			fmt.Fprintf(&b, "   %s\n", d.Text)
			for _, p := range d.SentencePairs {
				fmt.Fprintf(&b, "      %s - %s\n", p.SourceSentence, p.TargetSentence)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
