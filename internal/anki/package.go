package anki

import (
	"archive/zip"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// collectionSchema is the legacy Anki collection layout (schema version
// 11), which every Anki client still imports.
const collectionSchema = `
CREATE TABLE col (
	id integer primary key,
	crt integer not null,
	mod integer not null,
	scm integer not null,
	ver integer not null,
	dty integer not null,
	usn integer not null,
	ls integer not null,
	conf text not null,
	models text not null,
	decks text not null,
	dconf text not null,
	tags text not null
);
CREATE TABLE notes (
	id integer primary key,
	guid text not null,
	mid integer not null,
	mod integer not null,
	usn integer not null,
	tags text not null,
	flds text not null,
	sfld text not null,
	csum integer not null,
	flags integer not null,
	data text not null
);
CREATE TABLE cards (
	id integer primary key,
	nid integer not null,
	did integer not null,
	ord integer not null,
	mod integer not null,
	usn integer not null,
	type integer not null,
	queue integer not null,
	due integer not null,
	ivl integer not null,
	factor integer not null,
	reps integer not null,
	lapses integer not null,
	left integer not null,
	odue integer not null,
	odid integer not null,
	flags integer not null,
	data text not null
);
CREATE TABLE revlog (
	id integer primary key,
	cid integer not null,
	usn integer not null,
	ease integer not null,
	ivl integer not null,
	lastIvl integer not null,
	factor integer not null,
	time integer not null,
	type integer not null
);
CREATE TABLE graves (
	usn integer not null,
	oid integer not null,
	type integer not null
);
CREATE INDEX ix_notes_usn on notes (usn);
CREATE INDEX ix_cards_usn on cards (usn);
CREATE INDEX ix_revlog_usn on revlog (usn);
CREATE INDEX ix_cards_nid on cards (nid);
CREATE INDEX ix_cards_sched on cards (did, queue, due);
CREATE INDEX ix_revlog_cid on revlog (cid);
CREATE INDEX ix_notes_csum on notes (csum);
`

const latexPre = "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n" +
	"\\usepackage[utf8]{inputenc}\n\\usepackage{amssymb,amsmath}\n\\pagestyle{empty}\n" +
	"\\setlength{\\parindent}{0in}\n\\begin{document}\n"

// WritePackage writes the deck as an .apkg file at path. The collection
// database is staged in a temporary directory and zipped together with
// an empty media manifest.
func WritePackage(path string, deck *Deck) error {
	if deck == nil {
		return fmt.Errorf("write package %s: nil deck", path)
	}

	staging, err := os.MkdirTemp("", "lexideck-apkg-*")
	if err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(staging)
	}()

	dbPath := filepath.Join(staging, "collection.anki2")
	if err := writeCollection(dbPath, deck); err != nil {
		return fmt.Errorf("write collection database: %w", err)
	}
	if err := writeArchive(path, dbPath); err != nil {
		return fmt.Errorf("write package %s: %w", path, err)
	}
	return nil
}

func writeCollection(dbPath string, deck *Deck) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if _, err := db.Exec(collectionSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	now := time.Now()
	models := deck.Models()
	curModel := int64(0)
	if len(models) > 0 {
		curModel = models[0].ID
	}

	colConf, err := json.Marshal(map[string]any{
		"activeDecks":   []int64{1},
		"addToCur":      true,
		"collapseTime":  1200,
		"curDeck":       1,
		"curModel":      strconv.FormatInt(curModel, 10),
		"dueCounts":     true,
		"estTimes":      true,
		"newBury":       true,
		"newSpread":     0,
		"nextPos":       1,
		"sortBackwards": false,
		"sortType":      "noteFld",
		"timeLim":       0,
	})
	if err != nil {
		return fmt.Errorf("marshal conf: %w", err)
	}
	modelsJSON, err := json.Marshal(modelsBlob(models, deck.ID, now))
	if err != nil {
		return fmt.Errorf("marshal models: %w", err)
	}
	decksJSON, err := json.Marshal(decksBlob(deck, now))
	if err != nil {
		return fmt.Errorf("marshal decks: %w", err)
	}
	dconfJSON, err := json.Marshal(dconfBlob())
	if err != nil {
		return fmt.Errorf("marshal dconf: %w", err)
	}

	_, err = db.Exec(
		`INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		 VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		now.Unix(), now.UnixMilli(), now.UnixMilli(),
		string(colConf), string(modelsJSON), string(decksJSON), string(dconfJSON),
	)
	if err != nil {
		return fmt.Errorf("insert col row: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	noteID := now.UnixMilli()
	cardID := noteID + int64(len(deck.Notes))
	for _, note := range deck.Notes {
		noteID++
		sortField := note.SortField()
		_, err := tx.Exec(
			`INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
			 VALUES (?, ?, ?, ?, -1, '', ?, ?, ?, 0, '')`,
			noteID, note.GUID, note.Model.ID, now.Unix(),
			strings.Join(note.Fields, "\x1f"), sortField, fieldChecksum(sortField),
		)
		if err != nil {
			return fmt.Errorf("insert note: %w", err)
		}
		for ord := range note.Model.Templates {
			cardID++
			_, err := tx.Exec(
				`INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due,
				                    ivl, factor, reps, lapses, left, odue, odid, flags, data)
				 VALUES (?, ?, ?, ?, ?, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, '')`,
				cardID, noteID, deck.ID, ord, now.Unix(),
			)
			if err != nil {
				return fmt.Errorf("insert card: %w", err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit notes: %w", err)
	}
	return nil
}

// modelsBlob renders the models column JSON, keyed by model ID.
func modelsBlob(models []*Model, deckID int64, now time.Time) map[string]any {
	blob := make(map[string]any, len(models))
	for _, m := range models {
		fields := make([]map[string]any, len(m.Fields))
		for i, name := range m.Fields {
			fields[i] = map[string]any{
				"name":   name,
				"ord":    i,
				"font":   "Liberation Sans",
				"media":  []string{},
				"rtl":    false,
				"size":   20,
				"sticky": false,
			}
		}
		templates := make([]map[string]any, len(m.Templates))
		for i, t := range m.Templates {
			templates[i] = map[string]any{
				"name":  t.Name,
				"ord":   i,
				"qfmt":  t.QuestionFormat,
				"afmt":  t.AnswerFormat,
				"bqfmt": "",
				"bafmt": "",
				"did":   nil,
			}
		}
		// Every template draws on the first field, which is always set.
		required := make([][]any, len(m.Templates))
		for i := range m.Templates {
			required[i] = []any{i, "all", []int{0}}
		}
		blob[strconv.FormatInt(m.ID, 10)] = map[string]any{
			"id":        m.ID,
			"name":      m.Name,
			"did":       deckID,
			"flds":      fields,
			"tmpls":     templates,
			"css":       m.CSS,
			"latexPre":  latexPre,
			"latexPost": "\\end{document}",
			"mod":       now.Unix(),
			"req":       required,
			"sortf":     0,
			"tags":      []string{},
			"type":      0,
			"usn":       -1,
			"vers":      []string{},
		}
	}
	return blob
}

// decksBlob renders the decks column JSON: the mandatory default deck
// plus the written deck.
func decksBlob(deck *Deck, now time.Time) map[string]any {
	entry := func(id int64, name string) map[string]any {
		return map[string]any{
			"id":        id,
			"name":      name,
			"desc":      "",
			"collapsed": false,
			"conf":      1,
			"dyn":       0,
			"extendNew": 0,
			"extendRev": 50,
			"lrnToday":  []int{0, 0},
			"newToday":  []int{0, 0},
			"revToday":  []int{0, 0},
			"timeToday": []int{0, 0},
			"mod":       now.Unix(),
			"usn":       -1,
		}
	}
	return map[string]any{
		"1": entry(1, "Default"),
		strconv.FormatInt(deck.ID, 10): entry(deck.ID, deck.Name),
	}
}

// dconfBlob renders the default deck options group.
func dconfBlob() map[string]any {
	return map[string]any{
		"1": map[string]any{
			"id":       1,
			"name":     "Default",
			"autoplay": true,
			"maxTaken": 60,
			"replayq":  true,
			"timer":    0,
			"lapse": map[string]any{
				"delays":      []int{10},
				"leechAction": 0,
				"leechFails":  8,
				"minInt":      1,
				"mult":        0,
			},
			"new": map[string]any{
				"bury":          true,
				"delays":        []int{1, 10},
				"initialFactor": 2500,
				"ints":          []int{1, 4, 7},
				"order":         1,
				"perDay":        20,
				"separate":      true,
			},
			"rev": map[string]any{
				"bury":     true,
				"ease4":    1.3,
				"fuzz":     0.05,
				"ivlFct":   1,
				"maxIvl":   36500,
				"minSpace": 1,
				"perDay":   100,
			},
		},
	}
}

// fieldChecksum is the integer form of the first 8 hex digits of the
// SHA1 of the sort field, as Anki computes it for duplicate detection.
func fieldChecksum(sortField string) int64 {
	sum := sha1.Sum([]byte(sortField))
	digits := hex.EncodeToString(sum[:])[:8]
	value, err := strconv.ParseInt(digits, 16, 64)
	if err != nil {
		return 0
	}
	return value
}

// writeArchive zips the collection database and an empty media manifest
// into the final package file.
func writeArchive(path, dbPath string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(out)

	dbEntry, err := zw.Create("collection.anki2")
	if err != nil {
		return closeAll(err, zw, out)
	}
	dbFile, err := os.Open(dbPath)
	if err != nil {
		return closeAll(err, zw, out)
	}
	_, err = io.Copy(dbEntry, dbFile)
	_ = dbFile.Close()
	if err != nil {
		return closeAll(err, zw, out)
	}

	mediaEntry, err := zw.Create("media")
	if err != nil {
		return closeAll(err, zw, out)
	}
	if _, err := mediaEntry.Write([]byte("{}")); err != nil {
		return closeAll(err, zw, out)
	}

	if err := zw.Close(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func closeAll(err error, zw *zip.Writer, out *os.File) error {
	_ = zw.Close()
	_ = out.Close()
	return err
}
