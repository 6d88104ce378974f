// Package domain contains the core data model for translation lookups.
//
// A word maps to zero or more Translations, one per part of speech. Each
// Translation holds one or more Definitions (the individual glosses for
// that sense), and each Definition holds one or more SentencePairs giving
// the gloss context in both the source and the target language.
//
// For example, the Spanish word "amanecer" has three translations: a
// masculine noun ("dawn"), an impersonal verb ("to dawn") and an
// intransitive verb with two definitions ("to wake up", "to stay up all
// night"). The word "banco" has a single translation (masculine noun)
// with two definitions ("bank", "bench").
package domain
