// Package anki builds and reads Anki flashcard packages (.apkg files).
// A package is a zip archive holding an SQLite collection database; the
// writer produces the legacy collection format every Anki client can
// import, and the reader recovers decks, notes and their field names
// from existing packages.
package anki
