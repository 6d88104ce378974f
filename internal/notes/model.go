package notes

import "github.com/wjrm500/lexideck/internal/anki"

// noteModelID is fixed so repeated runs produce notes of the same type,
// letting Anki merge imports instead of duplicating note types.
const noteModelID = 1098765432

var noteModel = &anki.Model{
	ID:   noteModelID,
	Name: "Language learning flashcard model",
	Fields: []string{
		"deck_id",
		"word_to_translate",
		"word_to_translate_html",
		"part_of_speech",
		"definition_html",
		"source_sentences",
		"target_sentences",
	},
	Templates: []anki.Template{
		{
			Name: "Card 1",
			QuestionFormat: "<div style='text-align:center;'>" +
				"<span style='font-size:20px; font-weight:bold'>{{word_to_translate_html}}</span> " +
				"<span style='color:gray;'>({{part_of_speech}})</span></div><br>" +
				"<div style='font-size:18px; text-align:center;'>{{source_sentences}}</div>",
			AnswerFormat: "{{FrontSide}}<hr>" +
				"<div style='font-size:18px; font-weight:bold; text-align:center;'>{{definition_html}}</div><br>" +
				"<div style='font-size:18px; text-align:center;'>{{target_sentences}}</div>",
		},
	},
}

// Model returns the note type used for generated flashcards.
func Model() *anki.Model {
	return noteModel
}
