package anki

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Template is one card layout within a model. The question and answer
// formats use Anki's mustache-style field syntax.
type Template struct {
	Name           string
	QuestionFormat string
	AnswerFormat   string
}

// Model describes a note type: its ordered field names and the card
// templates rendered from those fields. Each note referencing the model
// produces one card per template.
type Model struct {
	ID        int64
	Name      string
	Fields    []string
	Templates []Template
	CSS       string
}

// Note is a single flashcard note: a model plus one value per model
// field. The GUID identifies the note across imports.
type Note struct {
	Model  *Model
	Fields []string
	GUID   string
}

// NewNote builds a note for the given model. The field values must match
// the model's fields one to one. A fresh GUID is assigned, so re-imports
// of the same logical note are treated as distinct.
func NewNote(model *Model, fields []string) (*Note, error) {
	if model == nil {
		return nil, errors.New("note requires a model")
	}
	if len(fields) != len(model.Fields) {
		return nil, fmt.Errorf("note has %d field values, model %q wants %d",
			len(fields), model.Name, len(model.Fields))
	}
	return &Note{
		Model:  model,
		Fields: append([]string(nil), fields...),
		GUID:   uuid.NewString(),
	}, nil
}

// SortField returns the value Anki sorts and deduplicates notes by,
// which is the first field.
func (n *Note) SortField() string {
	if len(n.Fields) == 0 {
		return ""
	}
	return n.Fields[0]
}

// Deck is an ordered collection of notes destined for one Anki deck.
type Deck struct {
	ID    int64
	Name  string
	Notes []*Note
}

// NewDeck builds an empty deck.
func NewDeck(id int64, name string) *Deck {
	return &Deck{ID: id, Name: name}
}

// AddNote appends a note to the deck.
func (d *Deck) AddNote(n *Note) {
	d.Notes = append(d.Notes, n)
}

// Models returns the distinct models used by the deck's notes, in first
// use order.
func (d *Deck) Models() []*Model {
	var models []*Model
	seen := make(map[int64]bool)
	for _, n := range d.Notes {
		if n.Model == nil || seen[n.Model.ID] {
			continue
		}
		seen[n.Model.ID] = true
		models = append(models, n.Model)
	}
	return models
}
