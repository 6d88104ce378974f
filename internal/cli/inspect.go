package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wjrm500/lexideck/internal/anki"
)

var inspectFlags struct {
	maxDecks  int
	maxNotes  int
	maxFields int
}

var inspectCmd = &cobra.Command{
	Use:   "inspect PACKAGE",
	Short: "Show what is inside an Anki package",
	Long:  `Print the decks, notes and fields stored in an .apkg file.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if err := validateInputPath(path, ".apkg"); err != nil {
			return err
		}

		decks, err := anki.ReadPackage(path)
		if err != nil {
			return err
		}
		fmt.Printf("Loaded %d deck(s) from %s\n\n", len(decks), path)

		for _, deck := range limitDecks(decks, inspectFlags.maxDecks) {
			fmt.Printf("Deck %q has %d notes\n", deck.Name, len(deck.Notes))
			notes := deck.Notes
			if inspectFlags.maxNotes > 0 && len(notes) > inspectFlags.maxNotes {
				notes = notes[:inspectFlags.maxNotes]
			}
			for i, note := range notes {
				fmt.Printf("   Note %d:\n", i+1)
				for j, name := range note.Model.Fields {
					if inspectFlags.maxFields > 0 && j >= inspectFlags.maxFields {
						break
					}
					if j >= len(note.Fields) {
						break
					}
					fmt.Printf("      %s: %s\n", name, note.Fields[j])
				}
				fmt.Println()
			}
		}
		return nil
	},
}

func limitDecks(decks []*anki.Deck, limit int) []*anki.Deck {
	if limit > 0 && len(decks) > limit {
		return decks[:limit]
	}
	return decks
}

func init() {
	f := inspectCmd.Flags()
	f.IntVar(&inspectFlags.maxDecks, "max-display-decks", 1, "maximum number of decks to display (0 for all)")
	f.IntVar(&inspectFlags.maxNotes, "max-display-notes", 1, "maximum number of notes to display per deck (0 for all)")
	f.IntVar(&inspectFlags.maxFields, "max-display-fields", 0, "maximum number of fields to display per note (0 for all)")
	rootCmd.AddCommand(inspectCmd)
}
