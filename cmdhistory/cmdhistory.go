// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmdhistory/cmdhistory.go
// Summary: Persisted, prefix-searchable command-line and search-line
// history surviving restarts (SPEC_FULL.md's supplement to spec.md
// §4.6's overlay "history scroll"). Grounded on
// apps/texelterm/parser/search_index.go's sqlite FTS index idiom, scaled
// down from terminal-scrollback indexing to a few hundred history rows.
package cmdhistory

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Kind distinguishes the two recall rings the dispatch overlay maintains.
type Kind string

const (
	KindCommand Kind = "command"
	KindSearch  Kind = "search"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	text TEXT NOT NULL,
	used_at INTEGER NOT NULL
);
CREATE VIRTUAL TABLE IF NOT EXISTS history_fts USING fts5(
	text, content='history', content_rowid='id'
);
CREATE TRIGGER IF NOT EXISTS history_ai AFTER INSERT ON history BEGIN
	INSERT INTO history_fts(rowid, text) VALUES (new.id, new.text);
END;
`

// Store is a small sqlite-backed ring of command/search history, open for
// the lifetime of one editor process.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at path and
// applies schema idempotently, matching search_index.go's
// CREATE-TABLE-IF-NOT-EXISTS migration style.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cmdhistory: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cmdhistory: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Append records one accepted overlay entry (spec.md's "Break is inserted
// ... on cursor-stopping events" framing doesn't apply to history rows —
// every accepted Enter is recorded here, independent of undo).
func (s *Store) Append(kind Kind, text string, at time.Time) error {
	if text == "" {
		return nil
	}
	_, err := s.db.Exec(`INSERT INTO history (kind, text, used_at) VALUES (?, ?, ?)`,
		string(kind), text, at.Unix())
	return err
}

// Recent returns up to limit most-recently-used entries of kind, oldest
// first (the order the dispatch package's in-memory ring expects so
// HistoryPrev/HistoryNext walk it the same way whether seeded from disk or
// accumulated this session).
func (s *Store) Recent(kind Kind, limit int) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT text FROM history WHERE kind = ? ORDER BY used_at DESC LIMIT ?`,
		string(kind), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	reverse(out)
	return out, rows.Err()
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Search runs a phrase-prefix query over kind's history via the FTS5 index,
// newest match first, for the overlay's Ctrl-R-style reverse search.
func (s *Store) Search(kind Kind, query string, limit int) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT h.text FROM history_fts f
		JOIN history h ON h.id = f.rowid
		WHERE f.text MATCH ? AND h.kind = ?
		ORDER BY h.used_at DESC LIMIT ?`,
		ftsQuery(query), string(kind), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, rows.Err()
}

// ftsQuery wraps query for FTS5's MATCH operator as a prefix search over
// the whole phrase, so e.g. "foo bar" matches rows where the token "foo" is
// directly followed by a token starting with "bar", rather than being
// parsed as FTS5 query syntax.
func ftsQuery(query string) string {
	return fmt.Sprintf("%q*", query)
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }
