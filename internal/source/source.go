// Package source supplies the words a deck build translates. A source
// may be a literal list, a CSV file, or an existing Anki package whose
// notes hold the words. All sources deduplicate, keeping first
// occurrences in order.
package source

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/wjrm500/lexideck/internal/anki"
)

// Source yields the words to translate.
type Source interface {
	Words() ([]string, error)
}

// deduplicate removes repeated words, preserving first-occurrence order.
func deduplicate(words []string) []string {
	seen := make(map[string]bool, len(words))
	unique := make([]string, 0, len(words))
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true
		unique = append(unique, w)
	}
	return unique
}

// Simple is a source backed by a literal word list.
type Simple struct {
	WordList []string
}

func (s *Simple) Words() ([]string, error) {
	return deduplicate(s.WordList), nil
}

// CSV reads words from one column of a CSV file.
type CSV struct {
	Path         string
	Column       int
	SkipFirstRow bool
}

func (c *CSV) Words() ([]string, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("open CSV file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	reader := csv.NewReader(f)
	// Word lists in the wild are often ragged.
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV file %s: %w", c.Path, err)
	}
	if c.SkipFirstRow && len(rows) > 0 {
		rows = rows[1:]
	}

	words := make([]string, 0, len(rows))
	for i, row := range rows {
		if c.Column >= len(row) {
			return nil, fmt.Errorf("row %d of %s has no column %d", i+1, c.Path, c.Column)
		}
		words = append(words, row[c.Column])
	}
	return deduplicate(words), nil
}

// AnkiPackage reads words out of one field of the notes in an existing
// .apkg file.
type AnkiPackage struct {
	Path string

	// DeckName selects the deck inside the package; empty means the
	// first deck.
	DeckName string

	// FieldName names the note field holding the word.
	FieldName string
}

func (a *AnkiPackage) Words() ([]string, error) {
	decks, err := anki.ReadPackage(a.Path)
	if err != nil {
		return nil, err
	}

	var deck *anki.Deck
	for _, d := range decks {
		if a.DeckName == "" || d.Name == a.DeckName {
			deck = d
			break
		}
	}
	if deck == nil {
		return nil, fmt.Errorf("deck %q not found in package %s", a.DeckName, a.Path)
	}
	if len(deck.Notes) == 0 {
		return nil, fmt.Errorf("deck %q has no notes", deck.Name)
	}

	model := deck.Notes[0].Model
	fieldIndex := -1
	for i, name := range model.Fields {
		if name == a.FieldName {
			fieldIndex = i
			break
		}
	}
	if fieldIndex < 0 {
		return nil, fmt.Errorf("field %q not found in model %q (available fields: %v)",
			a.FieldName, model.Name, model.Fields)
	}

	words := make([]string, 0, len(deck.Notes))
	for _, note := range deck.Notes {
		if fieldIndex < len(note.Fields) {
			words = append(words, note.Fields[fieldIndex])
		}
	}
	return deduplicate(words), nil
}
