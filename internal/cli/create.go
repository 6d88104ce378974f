package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wjrm500/lexideck/internal/deck"
	"github.com/wjrm500/lexideck/internal/lang"
	"github.com/wjrm500/lexideck/internal/retrieval"
	"github.com/wjrm500/lexideck/internal/source"
)

var createFlags struct {
	words        []string
	csvPath      string
	skipFirstRow bool
	columnNumber int

	inputPackagePath string
	inputDeckName    string
	inputFieldName   string

	languageFrom  string
	languageTo    string
	retrieverType string
	conciseMode   bool

	concurrencyLimit int
	noteLimit        int

	outputPackagePath string
	outputDeckName    string
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an Anki deck from a word list",
	Long: `Create an Anki deck of flashcards for a set of words. Words come from
--words, a --csv file, or an existing Anki package; translations come
from the retriever selected with --retriever-type.`,
	RunE: runCreate,
}

func init() {
	f := createCmd.Flags()

	f.StringSliceVar(&createFlags.words, "words", nil, "words to translate")
	f.StringVar(&createFlags.csvPath, "csv", "", "path to CSV (.csv) file containing words to translate")
	f.BoolVar(&createFlags.skipFirstRow, "skip-first-row", false, "skip the first row of the CSV file")
	f.IntVar(&createFlags.columnNumber, "col-num", 0, "column number in the CSV file containing words to translate")
	f.StringVar(&createFlags.inputPackagePath, "input-anki-package-path", "",
		"path to Anki package (.apkg) file containing words to translate")
	f.StringVar(&createFlags.inputDeckName, "input-anki-deck-name", "",
		"name of deck inside the Anki package containing words to translate")
	f.StringVar(&createFlags.inputFieldName, "input-anki-field-name", "Word",
		"name of the note field holding the word")

	f.StringVarP(&createFlags.languageFrom, "language-from", "f", "",
		fmt.Sprintf("language to translate from (options: %s)", strings.Join(lang.Options(), ", ")))
	f.StringVarP(&createFlags.languageTo, "language-to", "t", "",
		fmt.Sprintf("language to translate to (options: %s)", strings.Join(lang.Options(), ", ")))
	f.StringVarP(&createFlags.retrieverType, "retriever-type", "r", "",
		fmt.Sprintf("retriever to use (options: %s)", strings.Join(retrieval.Keys(), ", ")))
	f.BoolVar(&createFlags.conciseMode, "concise-mode", false,
		"prune translations and definitions for smaller, more concise flashcards")

	f.IntVar(&createFlags.concurrencyLimit, "concurrency-limit", 1,
		"number of words to process concurrently (1 to 5)")
	f.IntVar(&createFlags.noteLimit, "note-limit", 0, "maximum number of notes to create (0 for no limit)")

	f.StringVarP(&createFlags.outputPackagePath, "output-anki-package-path", "o", "",
		"path of the output Anki package (.apkg) file")
	f.StringVar(&createFlags.outputDeckName, "output-anki-deck-name", "",
		"name of the deck inside the output Anki package")

	_ = createCmd.MarkFlagRequired("language-from")
	_ = createCmd.MarkFlagRequired("language-to")
	_ = createCmd.MarkFlagRequired("retriever-type")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	from, err := lang.Parse(createFlags.languageFrom)
	if err != nil {
		return err
	}
	to, err := lang.Parse(createFlags.languageTo)
	if err != nil {
		return err
	}

	words, err := wordsFromFlags()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	retriever, err := retrieval.New(ctx, createFlags.retrieverType, retrieval.Options{
		From:        from,
		To:          to,
		ConciseMode: createFlags.conciseMode,
		Logger:      log,
		APIKey:      cfg.LLM.GeminiAPIKey,
		Model:       cfg.LLM.ModelName,
		MaxRetries:  cfg.LLM.MaxRetries,
		RetryDelay:  time.Duration(cfg.LLM.RetryDelaySeconds) * time.Second,
	})
	if err != nil {
		return err
	}

	date := time.Now().Format("2006-01-02")
	packagePath := createFlags.outputPackagePath
	if packagePath == "" {
		packagePath = fmt.Sprintf("%s-%s-%s-%s.apkg", from, to, createFlags.retrieverType, date)
	} else if err := validateOutputPackagePath(packagePath); err != nil {
		return err
	}
	deckName := createFlags.outputDeckName
	if deckName == "" {
		deckName = fmt.Sprintf("%s to %s (%s - %s)", from.Title(), to.Title(), createFlags.retrieverType, date)
	}

	summary, err := deck.Create(ctx, words, retriever, deck.Options{
		Name:             deckName,
		PackagePath:      packagePath,
		ConcurrencyLimit: createFlags.concurrencyLimit,
		NoteLimit:        createFlags.noteLimit,
		Backoff:          time.Duration(cfg.Retriever.BackoffSeconds) * time.Second,
		Logger:           log,
	})
	if err != nil {
		return err
	}
	if summary.NotesCreated > 0 {
		fmt.Printf("Created %d notes from %d words in %s\n",
			summary.NotesCreated, summary.WordsProcessed, packagePath)
	}
	return nil
}

// wordsFromFlags picks the word source the way the flags describe it:
// a literal list, an existing Anki package, or a CSV file.
func wordsFromFlags() ([]string, error) {
	var src source.Source
	switch {
	case len(createFlags.words) > 0:
		src = &source.Simple{WordList: createFlags.words}
	case createFlags.inputPackagePath != "" && createFlags.inputDeckName != "":
		if err := validateInputPath(createFlags.inputPackagePath, ".apkg"); err != nil {
			return nil, err
		}
		src = &source.AnkiPackage{
			Path:      createFlags.inputPackagePath,
			DeckName:  createFlags.inputDeckName,
			FieldName: createFlags.inputFieldName,
		}
	case createFlags.csvPath != "":
		if err := validateInputPath(createFlags.csvPath, ".csv"); err != nil {
			return nil, err
		}
		src = &source.CSV{
			Path:         createFlags.csvPath,
			Column:       createFlags.columnNumber,
			SkipFirstRow: createFlags.skipFirstRow,
		}
	default:
		return nil, errors.New(
			"must provide either --words, --csv, or --input-anki-package-path with --input-anki-deck-name")
	}
	return src.Words()
}

func validateInputPath(path, extension string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file %s does not exist", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), extension) {
		return fmt.Errorf("the file must have a %s extension", extension)
	}
	return nil
}

func validateOutputPackagePath(path string) error {
	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("directory %s does not exist", dir)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".apkg") {
		return errors.New("the output file must have a .apkg extension")
	}
	return nil
}
