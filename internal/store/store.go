// Package store keeps the localized résumé documents in SQLite, one JSON
// document per language, and applies key-path edits to them.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	resumepdf "github.com/porticus-lab/go-resume-pdf"
)

var (
	// ErrNotFound is returned when no document exists for a language.
	ErrNotFound = errors.New("store: document not found")

	// ErrInvalidPath is returned for a key path that does not address a
	// field of the document.
	ErrInvalidPath = errors.New("store: invalid key path")
)

// A deleted document keeps its row with a NULL body so that revisions of a
// language never repeat.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
	language   TEXT PRIMARY KEY,
	body       TEXT,
	revision   INTEGER NOT NULL DEFAULT 1,
	updated_at INTEGER NOT NULL
)`

// Document is a stored content document.
type Document struct {
	Content   *resumepdf.Content
	Revision  int64
	UpdatedAt time.Time
}

// Store is a SQLite-backed document store. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", path, err)
	}
	// SQLite allows one writer; a single connection also keeps an
	// in-memory database alive for the lifetime of the store.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: creating schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores c under its language, replacing any previous version.
func (s *Store) Put(ctx context.Context, c *resumepdf.Content) error {
	if c == nil || c.Language == "" {
		return errors.New("store: document has no language")
	}
	body, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("store: encoding %s: %w", c.Language, err)
	}
	return s.write(ctx, s.db, c.Language, body)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) write(ctx context.Context, db execer, lang string, body []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO documents (language, body, revision, updated_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(language) DO UPDATE SET
			body = excluded.body,
			revision = documents.revision + 1,
			updated_at = excluded.updated_at
	`, lang, string(body), s.now().Unix())
	if err != nil {
		return fmt.Errorf("store: writing %s: %w", lang, err)
	}
	return nil
}

// Get returns the document for lang.
func (s *Store) Get(ctx context.Context, lang string) (*Document, error) {
	var (
		body    string
		doc     Document
		updated int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT body, revision, updated_at FROM documents WHERE language = ? AND body IS NOT NULL`, lang,
	).Scan(&body, &doc.Revision, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, lang)
	}
	if err != nil {
		return nil, fmt.Errorf("store: reading %s: %w", lang, err)
	}
	if doc.Content, err = resumepdf.LoadContent(bytes.NewReader([]byte(body))); err != nil {
		return nil, fmt.Errorf("store: %s: %w", lang, err)
	}
	doc.Content.Language = lang
	doc.UpdatedAt = time.Unix(updated, 0).UTC()
	return &doc, nil
}

// Languages lists the stored languages in sorted order.
func (s *Store) Languages(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT language FROM documents WHERE body IS NOT NULL ORDER BY language`)
	if err != nil {
		return nil, fmt.Errorf("store: listing languages: %w", err)
	}
	defer rows.Close()

	var langs []string
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, fmt.Errorf("store: listing languages: %w", err)
		}
		langs = append(langs, l)
	}
	return langs, rows.Err()
}

// Delete removes the document for lang. A later Put for the same language
// continues from the deleted document's revision.
func (s *Store) Delete(ctx context.Context, lang string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE documents SET body = NULL, revision = revision + 1, updated_at = ?
		WHERE language = ? AND body IS NOT NULL
	`, s.now().Unix(), lang)
	if err != nil {
		return fmt.Errorf("store: deleting %s: %w", lang, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, lang)
	}
	return nil
}

// SetField replaces the value at a dotted key path such as
// "experience.0.position" or "skills.levels.expert" with value, which
// must be JSON. The edited document must still decode as résumé content
// and pass every check; otherwise nothing is written.
func (s *Store) SetField(ctx context.Context, lang, keyPath string, value json.RawMessage, checks ...func(*resumepdf.Content) error) error {
	path, err := parsePath(keyPath)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(value, &v); err != nil {
		return fmt.Errorf("store: value for %s: %w", keyPath, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer tx.Rollback()

	var body string
	err = tx.QueryRowContext(ctx, `SELECT body FROM documents WHERE language = ? AND body IS NOT NULL`, lang).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, lang)
	}
	if err != nil {
		return fmt.Errorf("store: reading %s: %w", lang, err)
	}

	var doc any
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return fmt.Errorf("store: %s: %w", lang, err)
	}
	if doc, err = setPath(doc, path, v); err != nil {
		return fmt.Errorf("%w (%s)", err, keyPath)
	}
	edited, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: encoding %s: %w", lang, err)
	}
	// Decoding checks the edit kept the document shape intact.
	c, err := resumepdf.LoadContent(bytes.NewReader(edited))
	if err != nil {
		return fmt.Errorf("store: edit %s: %w", keyPath, err)
	}
	c.Language = lang
	for _, check := range checks {
		if err := check(c); err != nil {
			return fmt.Errorf("store: edit %s: %w", keyPath, err)
		}
	}
	if err := s.write(ctx, tx, lang, edited); err != nil {
		return err
	}
	return tx.Commit()
}

// Import stores every <lang>.json document in dir and returns the
// languages imported.
func (s *Store) Import(ctx context.Context, dir string) ([]string, error) {
	docs, err := resumepdf.LoadContentDir(dir)
	if err != nil {
		return nil, err
	}
	langs := make([]string, 0, len(docs))
	for lang := range docs {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		if err := s.Put(ctx, docs[lang]); err != nil {
			return nil, err
		}
	}
	return langs, nil
}
