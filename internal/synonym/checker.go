// Package synonym provides the synonym-overlap collaborator consulted by
// the data model when pruning near-duplicate definitions. The check is a
// pure function over a thesaurus: two glosses are synonymous when their
// synonym sets overlap.
package synonym

import "strings"

// Thesaurus maps a word to the words in its synonym sets.
type Thesaurus map[string][]string

// Checker marks synonymous glosses using a static thesaurus. It
// implements domain.SynonymChecker.
type Checker struct {
	thesaurus Thesaurus
}

// NewChecker builds a Checker over the given thesaurus.
func NewChecker(t Thesaurus) *Checker {
	return &Checker{thesaurus: t}
}

// Synonyms returns the synonym set for a word, always including the word
// itself.
func (c *Checker) Synonyms(word string) map[string]bool {
	key := strings.ToLower(strings.TrimSpace(word))
	set := map[string]bool{key: true}
	for _, s := range c.thesaurus[key] {
		set[strings.ToLower(s)] = true
	}
	return set
}

// AreSynonymous reports whether the synonym sets of the two words
// overlap.
func (c *Checker) AreSynonymous(a, b string) bool {
	return overlap(c.Synonyms(a), c.Synonyms(b))
}

// MarkSynonymous returns one mark per gloss; a true mark means the gloss
// shares a synonym cluster with an earlier gloss in the list, so the
// earliest member of each cluster is left unmarked.
func (c *Checker) MarkSynonymous(glosses []string, partOfSpeech string) []bool {
	marks := make([]bool, len(glosses))
	sets := make([]map[string]bool, len(glosses))
	for i, g := range glosses {
		sets[i] = c.Synonyms(g)
	}
	for i := range sets {
		if marks[i] {
			continue
		}
		for j := i + 1; j < len(sets); j++ {
			if overlap(sets[i], sets[j]) {
				marks[j] = true
			}
		}
	}
	return marks
}

func overlap(a, b map[string]bool) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for w := range a {
		if b[w] {
			return true
		}
	}
	return false
}
