package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wjrm500/lexideck/internal/synonym"
)

var synonymsFlags struct {
	thesaurusPath string
}

var synonymsCmd = &cobra.Command{
	Use:   "synonyms WORD1 WORD2",
	Short: "Check whether two words are synonyms",
	Long: `Print the synonym sets of two words and whether the sets overlap,
using a thesaurus loaded from a JSON file mapping each word to its
synonyms.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		thesaurus, err := loadThesaurus(synonymsFlags.thesaurusPath)
		if err != nil {
			return err
		}
		checker := synonym.NewChecker(thesaurus)

		word1, word2 := args[0], args[1]
		fmt.Printf("Synonyms for %s: %s\n", word1, formatSynonyms(checker.Synonyms(word1)))
		fmt.Printf("Synonyms for %s: %s\n", word2, formatSynonyms(checker.Synonyms(word2)))
		fmt.Printf("Are %s and %s synonymous? %t\n", word1, word2, checker.AreSynonymous(word1, word2))
		return nil
	},
}

func loadThesaurus(path string) (synonym.Thesaurus, error) {
	if err := validateInputPath(path, ".json"); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading thesaurus file: %w", err)
	}
	var thesaurus synonym.Thesaurus
	if err := json.Unmarshal(data, &thesaurus); err != nil {
		return nil, fmt.Errorf("parsing thesaurus file %s: %w", path, err)
	}
	return thesaurus, nil
}

func formatSynonyms(set map[string]bool) string {
	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)
	return "{" + strings.Join(words, ", ") + "}"
}

func init() {
	f := synonymsCmd.Flags()
	f.StringVar(&synonymsFlags.thesaurusPath, "thesaurus", "", "path to JSON file mapping words to their synonyms")
	_ = synonymsCmd.MarkFlagRequired("thesaurus")
	rootCmd.AddCommand(synonymsCmd)
}
