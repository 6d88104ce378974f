package notes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wjrm500/lexideck/internal/anki"
	"github.com/wjrm500/lexideck/internal/domain"
)

// noteFromTranslation renders one translation as note fields. The first
// sentence pair of each definition supplies the example sentences; word
// and glosses become hyperlinks when the source can provide pages for
// them.
func (c *Creator) noteFromTranslation(t *domain.Translation) (*anki.Note, error) {
	sourceSentences := make([]string, 0, len(t.Definitions))
	targetSentences := make([]string, 0, len(t.Definitions))
	for _, d := range t.Definitions {
		sourceSentences = append(sourceSentences, d.SentencePairs[0].SourceSentence)
		targetSentences = append(targetSentences, d.SentencePairs[0].TargetSentence)
	}

	wordHTML := t.Word
	if source := t.Source(); source != nil {
		if link := source.Link(t.Word); link != "" {
			wordHTML = fmt.Sprintf("<a href='%s' style='color:red;'>%s</a>", link, t.Word)
		}
	}

	glossHTML := make([]string, 0, len(t.Definitions))
	for _, d := range t.Definitions {
		if owner := d.Translation(); owner != nil && owner.Source() != nil {
			if link := owner.Source().ReverseLink(d.Text); link != "" {
				glossHTML = append(glossHTML, fmt.Sprintf("<a href='%s' style='color:green;'>%s</a>", link, d.Text))
				continue
			}
		}
		glossHTML = append(glossHTML, d.Text)
	}

	fields := []string{
		// The deck ID field makes notes unique per run, so importing a
		// new deck does not update notes from an earlier one.
		strconv.FormatInt(c.deckID, 10),
		t.Word,
		wordHTML,
		t.PartOfSpeech,
		strings.Join(glossHTML, ", "),
		combineSentences(sourceSentences),
		combineSentences(targetSentences),
	}
	return anki.NewNote(noteModel, fields)
}

// combineSentences joins sentences into one HTML block, one per line,
// each prefixed with its index in dark gray. A single sentence is left
// bare.
func combineSentences(sentences []string) string {
	if len(sentences) == 1 {
		return sentences[0]
	}
	parts := make([]string, len(sentences))
	for i, s := range sentences {
		parts[i] = fmt.Sprintf("<span style='color: darkgray'>[%d]</span> %s", i+1, s)
	}
	return strings.Join(parts, "<br>")
}
