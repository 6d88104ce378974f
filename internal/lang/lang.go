// Package lang defines the languages a retriever can translate between.
package lang

import (
	"fmt"
	"strings"
)

// Language identifies one of the supported natural languages. The zero
// value is not a valid language.
type Language struct {
	name string
	iso  string
}

// The set of languages supported across the retriever implementations.
var (
	English    = Language{name: "english", iso: "en"}
	French     = Language{name: "french", iso: "fr"}
	German     = Language{name: "german", iso: "de"}
	Italian    = Language{name: "italian", iso: "it"}
	Portuguese = Language{name: "portuguese", iso: "pt"}
	Spanish    = Language{name: "spanish", iso: "es"}
)

var all = []Language{English, French, German, Italian, Portuguese, Spanish}

// String returns the lowercase English name of the language, e.g. "spanish".
func (l Language) String() string {
	return l.name
}

// ISO returns the two-letter ISO 639-1 code of the language, e.g. "es".
func (l Language) ISO() string {
	return l.iso
}

// IsZero reports whether l is the zero value rather than a real language.
func (l Language) IsZero() bool {
	return l.name == ""
}

// Title returns the language name with the first letter capitalized,
// suitable for user-facing messages.
func (l Language) Title() string {
	if l.name == "" {
		return ""
	}
	return strings.ToUpper(l.name[:1]) + l.name[1:]
}

// Parse resolves a language from its English name, case-insensitively.
func Parse(name string) (Language, error) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for _, l := range all {
		if l.name == lowered {
			return l, nil
		}
	}
	return Language{}, fmt.Errorf("unknown language %q (options: %s)", name, strings.Join(Options(), ", "))
}

// Options returns the names of all supported languages in a fixed order.
func Options() []string {
	names := make([]string, len(all))
	for i, l := range all {
		names[i] = l.name
	}
	return names
}

// Pair is an ordered (source language, target language) combination.
type Pair struct {
	From Language
	To   Language
}

// Contains reports whether the given pair appears in the list. An empty
// list means every pair is allowed.
func Contains(pairs []Pair, from, to Language) bool {
	if len(pairs) == 0 {
		return true
	}
	for _, p := range pairs {
		if p.From == from && p.To == to {
			return true
		}
	}
	return false
}
