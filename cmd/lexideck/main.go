// Package main implements the lexideck command, which builds bilingual
// Anki flashcard decks from online dictionaries or an LLM.
package main

import "github.com/wjrm500/lexideck/internal/cli"

func main() {
	cli.Execute()
}
