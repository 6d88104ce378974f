package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// collectionFileNames lists the database entries a package may carry,
// in preference order. Newer Anki exports include both.
var collectionFileNames = []string{"collection.anki21", "collection.anki2"}

type deckInfo struct {
	Name string `json:"name"`
}

type modelInfo struct {
	Name   string `json:"name"`
	Fields []struct {
		Name string `json:"name"`
	} `json:"flds"`
}

// ReadPackage loads the decks stored in an .apkg file, excluding the
// default deck. Recovered models carry their field names but not their
// card templates; that is enough to pick fields out of notes.
func ReadPackage(path string) ([]*Deck, error) {
	dbPath, cleanup, err := extractCollection(path)
	if err != nil {
		return nil, fmt.Errorf("read package %s: %w", path, err)
	}
	defer cleanup()

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("read package %s: open collection: %w", path, err)
	}
	defer func() {
		_ = db.Close()
	}()

	var decksJSON, modelsJSON string
	if err := db.QueryRow("SELECT decks, models FROM col").Scan(&decksJSON, &modelsJSON); err != nil {
		return nil, fmt.Errorf("read package %s: read collection metadata: %w", path, err)
	}

	var deckInfos map[string]deckInfo
	if err := json.Unmarshal([]byte(decksJSON), &deckInfos); err != nil {
		return nil, fmt.Errorf("read package %s: parse decks: %w", path, err)
	}
	var modelInfos map[string]modelInfo
	if err := json.Unmarshal([]byte(modelsJSON), &modelInfos); err != nil {
		return nil, fmt.Errorf("read package %s: parse models: %w", path, err)
	}

	models := make(map[int64]*Model, len(modelInfos))
	for key, info := range modelInfos {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("read package %s: model key %q: %w", path, key, err)
		}
		fields := make([]string, len(info.Fields))
		for i, f := range info.Fields {
			fields[i] = f.Name
		}
		models[id] = &Model{ID: id, Name: info.Name, Fields: fields}
	}

	var decks []*Deck
	for key, info := range deckInfos {
		if key == "1" {
			continue
		}
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("read package %s: deck key %q: %w", path, key, err)
		}
		deck := NewDeck(id, info.Name)
		if err := loadNotes(db, deck, models); err != nil {
			return nil, fmt.Errorf("read package %s: deck %q: %w", path, info.Name, err)
		}
		decks = append(decks, deck)
	}
	return decks, nil
}

func loadNotes(db *sql.DB, deck *Deck, models map[int64]*Model) error {
	rows, err := db.Query(
		`SELECT guid, mid, flds FROM notes
		 WHERE id IN (SELECT nid FROM cards WHERE did = ?)
		 ORDER BY id`, deck.ID)
	if err != nil {
		return fmt.Errorf("query notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			guid    string
			modelID int64
			flds    string
		)
		if err := rows.Scan(&guid, &modelID, &flds); err != nil {
			return fmt.Errorf("scan note: %w", err)
		}
		model, ok := models[modelID]
		if !ok {
			return fmt.Errorf("note references unknown model %d", modelID)
		}
		deck.AddNote(&Note{
			Model:  model,
			Fields: strings.Split(flds, "\x1f"),
			GUID:   guid,
		})
	}
	return rows.Err()
}

// extractCollection copies the package's collection database into a
// temporary directory and returns its path with a cleanup function.
func extractCollection(path string) (string, func(), error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", nil, fmt.Errorf("open archive: %w", err)
	}
	defer func() {
		_ = archive.Close()
	}()

	var entry *zip.File
	for _, name := range collectionFileNames {
		for _, f := range archive.File {
			if f.Name == name {
				entry = f
				break
			}
		}
		if entry != nil {
			break
		}
	}
	if entry == nil {
		return "", nil, fmt.Errorf("no collection database in archive")
	}

	staging, err := os.MkdirTemp("", "lexideck-apkg-read-*")
	if err != nil {
		return "", nil, fmt.Errorf("create staging directory: %w", err)
	}
	cleanup := func() {
		_ = os.RemoveAll(staging)
	}

	src, err := entry.Open()
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("open collection entry: %w", err)
	}
	defer func() {
		_ = src.Close()
	}()

	dbPath := filepath.Join(staging, "collection.anki2")
	dst, err := os.Create(dbPath)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("create staged collection: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		cleanup()
		return "", nil, fmt.Errorf("extract collection: %w", err)
	}
	if err := dst.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return dbPath, cleanup, nil
}
