// Package sqlitedict stores a WordNet taxonomy in SQLite and serves it as a
// wordnet.Dictionary.
package sqlitedict

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cognicore/wnsim/pkg/wnsim/internalerr"
	"github.com/cognicore/wnsim/pkg/wnsim/wordnet"
	"github.com/cognicore/wnsim/pkg/wnsim/wordnet/memdict"
)

// Dict implements wordnet.Dictionary on top of a SQLite database.
type Dict struct {
	db      *sql.DB
	version string
}

// Open opens a SQLite database with WAL mode enabled, creating the schema
// if needed.
func Open(ctx context.Context, path string) (*Dict, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	d := &Dict{db: db}
	if err := d.loadVersion(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database connection
func (d *Dict) Close() error {
	return d.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS synsets (
	pos TEXT NOT NULL,
	synset_offset INTEGER NOT NULL,
	gloss TEXT,
	PRIMARY KEY(pos, synset_offset)
);

CREATE TABLE IF NOT EXISTS synset_words (
	pos TEXT NOT NULL,
	synset_offset INTEGER NOT NULL,
	word_num INTEGER NOT NULL,
	lemma TEXT NOT NULL,
	PRIMARY KEY(pos, synset_offset, word_num)
);

CREATE TABLE IF NOT EXISTS senses (
	lemma TEXT NOT NULL,
	pos TEXT NOT NULL,
	sense_num INTEGER NOT NULL,
	synset_offset INTEGER NOT NULL,
	PRIMARY KEY(lemma, pos, sense_num)
);

CREATE INDEX IF NOT EXISTS idx_senses_lemma ON senses(lemma);

CREATE TABLE IF NOT EXISTS hypernyms (
	pos TEXT NOT NULL,
	synset_offset INTEGER NOT NULL,
	parent_offset INTEGER NOT NULL,
	link_num INTEGER NOT NULL,
	PRIMARY KEY(pos, synset_offset, parent_offset)
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

func (d *Dict) loadVersion(ctx context.Context) error {
	err := d.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'version'`).Scan(&d.version)
	if errors.Is(err, sql.ErrNoRows) {
		d.version = ""
		return nil
	}
	return err
}

// Version implements wordnet.Dictionary.
func (d *Dict) Version() string { return d.version }

// SetVersion records the WordNet version of the stored data.
func (d *Dict) SetVersion(ctx context.Context, version string) error {
	const stmt = `
INSERT INTO meta (key, value) VALUES ('version', ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value
`
	if _, err := d.db.ExecContext(ctx, stmt, version); err != nil {
		return err
	}
	d.version = version
	return nil
}

// Import replaces the database contents with the synsets, senses and
// hypernym links of src.
func (d *Dict) Import(ctx context.Context, src *memdict.Dict) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"synsets", "synset_words", "senses", "hypernyms"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	for _, s := range src.Synsets() {
		pos := s.POS.Key()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO synsets (pos, synset_offset, gloss) VALUES (?, ?, ?)`,
			pos, s.Offset, s.Gloss,
		); err != nil {
			return fmt.Errorf("insert synset %s: %w", s.ID(), err)
		}

		for i, w := range s.Words {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO synset_words (pos, synset_offset, word_num, lemma) VALUES (?, ?, ?, ?)`,
				pos, s.Offset, i, w,
			); err != nil {
				return fmt.Errorf("insert word %q of %s: %w", w, s.ID(), err)
			}
		}

		for i, pid := range src.HypernymIDs(s.ID()) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO hypernyms (pos, synset_offset, parent_offset, link_num) VALUES (?, ?, ?, ?)`,
				pos, s.Offset, pid.Offset, i,
			); err != nil {
				return fmt.Errorf("insert hypernym of %s: %w", s.ID(), err)
			}
		}
	}

	for _, iw := range src.AllIndexWords() {
		for i, s := range iw.Senses {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO senses (lemma, pos, sense_num, synset_offset) VALUES (?, ?, ?, ?)`,
				iw.Lemma, iw.POS.Key(), i+1, s.Offset,
			); err != nil {
				return fmt.Errorf("insert sense %s#%s#%d: %w", iw.Lemma, iw.POS.Key(), i+1, err)
			}
		}
	}

	const versionStmt = `
INSERT INTO meta (key, value) VALUES ('version', ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value
`
	if _, err := tx.ExecContext(ctx, versionStmt, src.Version()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	d.version = src.Version()
	return nil
}

// IndexWord implements wordnet.Dictionary.
func (d *Dict) IndexWord(ctx context.Context, pos wordnet.POS, lemma string) (*wordnet.IndexWord, error) {
	lemma = wordnet.NormalizeLemma(lemma)

	rows, err := d.db.QueryContext(ctx,
		`SELECT synset_offset FROM senses WHERE lemma = ? AND pos = ? ORDER BY sense_num`,
		lemma, pos.Key(),
	)
	if err != nil {
		return nil, err
	}
	offsets, err := scanOffsets(rows)
	if err != nil {
		return nil, err
	}
	if len(offsets) == 0 {
		return nil, nil
	}

	iw := &wordnet.IndexWord{Lemma: lemma, POS: pos, Senses: make([]*wordnet.Synset, 0, len(offsets))}
	for _, off := range offsets {
		s, err := d.synset(ctx, wordnet.SynsetID{POS: pos, Offset: off})
		if err != nil {
			return nil, err
		}
		iw.Senses = append(iw.Senses, s)
	}
	return iw, nil
}

// IndexWords implements wordnet.Dictionary.
func (d *Dict) IndexWords(ctx context.Context, lemma string) ([]*wordnet.IndexWord, error) {
	var out []*wordnet.IndexWord
	for _, pos := range wordnet.AllPOS {
		iw, err := d.IndexWord(ctx, pos, lemma)
		if err != nil {
			return nil, err
		}
		if iw != nil {
			out = append(out, iw)
		}
	}
	return out, nil
}

// Hypernyms implements wordnet.Dictionary.
func (d *Dict) Hypernyms(ctx context.Context, s *wordnet.Synset) ([]*wordnet.Synset, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT parent_offset FROM hypernyms WHERE pos = ? AND synset_offset = ? ORDER BY link_num`,
		s.POS.Key(), s.Offset,
	)
	if err != nil {
		return nil, err
	}
	offsets, err := scanOffsets(rows)
	if err != nil {
		return nil, err
	}

	parents := make([]*wordnet.Synset, 0, len(offsets))
	for _, off := range offsets {
		p, err := d.synset(ctx, wordnet.SynsetID{POS: s.POS, Offset: off})
		if err != nil {
			return nil, err
		}
		parents = append(parents, p)
	}
	return parents, nil
}

// Synset loads a single synset by ID.
func (d *Dict) Synset(ctx context.Context, id wordnet.SynsetID) (*wordnet.Synset, bool, error) {
	s, err := d.synset(ctx, id)
	if errors.Is(err, internalerr.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

func (d *Dict) synset(ctx context.Context, id wordnet.SynsetID) (*wordnet.Synset, error) {
	s := &wordnet.Synset{POS: id.POS, Offset: id.Offset}

	var gloss sql.NullString
	err := d.db.QueryRowContext(ctx,
		`SELECT gloss FROM synsets WHERE pos = ? AND synset_offset = ?`,
		id.POS.Key(), id.Offset,
	).Scan(&gloss)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("synset %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	s.Gloss = gloss.String

	rows, err := d.db.QueryContext(ctx,
		`SELECT lemma FROM synset_words WHERE pos = ? AND synset_offset = ? ORDER BY word_num`,
		id.POS.Key(), id.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var lemma string
		if err := rows.Scan(&lemma); err != nil {
			return nil, err
		}
		s.Words = append(s.Words, lemma)
	}
	return s, rows.Err()
}

func scanOffsets(rows *sql.Rows) ([]int64, error) {
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var off int64
		if err := rows.Scan(&off); err != nil {
			return nil, err
		}
		out = append(out, off)
	}
	return out, rows.Err()
}
