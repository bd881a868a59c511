// Package docstore provides a SQLite-backed reference implementation
// of checkqueue's Document and DocumentDirectory collaborators. It
// persists per-paragraph locale and dirty-bit state plus an audit
// trail of dispatched checks, keyed by a correlation token.
package docstore

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store handles SQLite persistence for documents and their paragraphs.
// Concrete type, not an interface; thread-safety is via an internal
// mutex, matching the host's other storage layers.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Paragraph is one unit of checkable text within a document.
type Paragraph struct {
	DocID string
	Index int
	Locale string
	Text   string
	Dirty  bool
}

// CheckRecord is one audited dispatch of a check, identified by a
// correlation token so a follow-up or cancellation can be traced back
// to the run that produced it.
type CheckRecord struct {
	Token      string
	DocID      string
	NStart     int
	NEnd       int
	NCache     int
	StartedAt  time.Time
	FinishedAt time.Time
	Err        string
}

// Open creates or opens a Store at dbPath. Uses WAL mode for
// file-based databases; ":memory:" gets a shared-cache single
// connection so every caller sees the same in-memory database.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("docstore: open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("docstore: ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("docstore: enable WAL mode: %w", err)
		}
		if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
			db.Close()
			return nil, fmt.Errorf("docstore: set busy timeout: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("docstore: create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		disposed INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS paragraphs (
		doc_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		locale TEXT NOT NULL,
		text TEXT NOT NULL DEFAULT '',
		dirty INTEGER DEFAULT 0,
		PRIMARY KEY (doc_id, idx)
	);

	CREATE TABLE IF NOT EXISTS checks (
		token TEXT PRIMARY KEY,
		doc_id TEXT NOT NULL,
		n_start INTEGER NOT NULL,
		n_end INTEGER NOT NULL,
		n_cache INTEGER NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		err TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_paragraphs_dirty ON paragraphs(doc_id, dirty);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// CreateDocument registers a new, non-disposed document with the
// given paragraphs.
func (s *Store) CreateDocument(docID string, paragraphs []Paragraph) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT OR REPLACE INTO documents (id, disposed) VALUES (?, 0)`, docID); err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	for _, p := range paragraphs {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO paragraphs (doc_id, idx, locale, text, dirty) VALUES (?, ?, ?, ?, 0)`,
			docID, p.Index, p.Locale, p.Text,
		); err != nil {
			return fmt.Errorf("insert paragraph %d: %w", p.Index, err)
		}
	}
	return tx.Commit()
}

// DisposeDocument marks a document disposed; it remains queryable for
// audit purposes but IsDisposed reports true from then on.
func (s *Store) DisposeDocument(docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`UPDATE documents SET disposed = 1 WHERE id = ?`, docID)
	return err
}

// IsDisposed reports whether docID has been disposed, or true if it
// is unknown (a defensive default: an unknown document should never
// be dispatched to).
func (s *Store) IsDisposed(docID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var disposed int
	err := s.db.QueryRow(`SELECT disposed FROM documents WHERE id = ?`, docID).Scan(&disposed)
	if err != nil {
		return true
	}
	return disposed != 0
}

// DocumentIDs returns every known document ID, in insertion order.
func (s *Store) DocumentIDs() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.Query(`SELECT id FROM documents ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkDirty flags a paragraph as needing a follow-up check, e.g. after
// an edit that extended beyond the originally requested range.
func (s *Store) MarkDirty(docID string, idx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`UPDATE paragraphs SET dirty = 1 WHERE doc_id = ? AND idx = ?`, docID, idx)
	return err
}

// NextDirtyParagraph returns the lowest-indexed dirty paragraph for
// docID and clears its dirty bit, or ok=false if none is pending.
func (s *Store) NextDirtyParagraph(docID string) (idx int, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`SELECT idx FROM paragraphs WHERE doc_id = ? AND dirty = 1 ORDER BY idx ASC LIMIT 1`, docID)
	if err := row.Scan(&idx); err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, err
	}

	if _, err := s.db.Exec(`UPDATE paragraphs SET dirty = 0 WHERE doc_id = ? AND idx = ?`, docID, idx); err != nil {
		return 0, false, err
	}
	return idx, true, nil
}

// ParagraphLocale returns the locale tag recorded for a paragraph.
func (s *Store) ParagraphLocale(docID string, idx int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var locale string
	err := s.db.QueryRow(`SELECT locale FROM paragraphs WHERE doc_id = ? AND idx = ?`, docID, idx).Scan(&locale)
	if err != nil {
		return "", false
	}
	return locale, true
}

// ParagraphCount returns the number of paragraphs recorded for docID.
func (s *Store) ParagraphCount(docID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM paragraphs WHERE doc_id = ?`, docID).Scan(&n)
	return n, err
}

// BeginCheck records the start of a dispatched check and returns its
// correlation token.
func (s *Store) BeginCheck(docID string, nStart, nEnd, nCache int) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		`INSERT INTO checks (token, doc_id, n_start, n_end, n_cache, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		token, docID, nStart, nEnd, nCache, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("docstore: begin check: %w", err)
	}
	return token, nil
}

// FinishCheck records the completion of a previously begun check.
// checkErr may be nil.
func (s *Store) FinishCheck(token string, checkErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := ""
	if checkErr != nil {
		msg = checkErr.Error()
	}
	_, err := s.db.Exec(
		`UPDATE checks SET finished_at = ?, err = ? WHERE token = ?`,
		time.Now().UTC(), msg, token,
	)
	return err
}

// RecentChecks returns the most recently started checks for docID, up
// to limit, most recent first.
func (s *Store) RecentChecks(docID string, limit int) ([]CheckRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT token, doc_id, n_start, n_end, n_cache, started_at,
			COALESCE(finished_at, started_at), COALESCE(err, '')
		 FROM checks WHERE doc_id = ? ORDER BY started_at DESC LIMIT ?`,
		docID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CheckRecord
	for rows.Next() {
		var r CheckRecord
		if err := rows.Scan(&r.Token, &r.DocID, &r.NStart, &r.NEnd, &r.NCache, &r.StartedAt, &r.FinishedAt, &r.Err); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
