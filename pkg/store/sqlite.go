package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/formforge/formforge/pkg/model"
)

// SQLite persists forms and responses in a single sqlite database file using
// the pure-Go driver. Form definitions and answer objects are stored as JSON
// columns; file blobs live in their own table keyed by response id.
type SQLite struct {
	db *sql.DB
}

var (
	_ SchemaStore   = (*SQLite)(nil)
	_ ResponseStore = (*SQLite)(nil)
)

// OpenSQLite opens (and initializes, if needed) the database at path. Use
// ":memory:" for an ephemeral store.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	s := &SQLite{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) init() error {
	stmts := []string{
		`PRAGMA foreign_keys=ON;`,
		`CREATE TABLE IF NOT EXISTS forms (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			json TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS responses (
			id TEXT PRIMARY KEY,
			form_id TEXT NOT NULL REFERENCES forms(id) ON DELETE CASCADE,
			submitted_at TIMESTAMP NOT NULL,
			answers_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_responses_form ON responses(form_id);`,
		`CREATE TABLE IF NOT EXISTS response_files (
			response_id TEXT NOT NULL REFERENCES responses(id) ON DELETE CASCADE,
			label TEXT NOT NULL,
			name TEXT NOT NULL,
			data BLOB NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return &TransportError{Op: "init schema", Err: err}
		}
	}
	return nil
}

func (s *SQLite) Fetch(ctx context.Context, formID string) (model.Form, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT json FROM forms WHERE id = ?`, formID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Form{}, ErrNotFound
	}
	if err != nil {
		return model.Form{}, &TransportError{Op: "fetch form", Err: err}
	}
	var form model.Form
	if err := json.Unmarshal([]byte(raw), &form); err != nil {
		return model.Form{}, fmt.Errorf("store: decode form %s: %w", formID, err)
	}
	return form, nil
}

func (s *SQLite) Create(ctx context.Context, form model.Form) (model.Form, error) {
	if form.ID == "" {
		form.ID = uuid.NewString()
	}
	raw, err := json.Marshal(form)
	if err != nil {
		return model.Form{}, fmt.Errorf("store: encode form: %w", err)
	}
	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO forms (id, title, json, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		form.ID, form.Title, string(raw), now, now)
	if err != nil {
		return model.Form{}, &TransportError{Op: "create form", Err: err}
	}
	return form, nil
}

func (s *SQLite) Update(ctx context.Context, formID string, form model.Form) error {
	form.ID = formID
	raw, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("store: encode form: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE forms SET title = ?, json = ?, updated_at = ? WHERE id = ?`,
		form.Title, string(raw), time.Now().UTC(), formID)
	if err != nil {
		return &TransportError{Op: "update form", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) SetAccepting(ctx context.Context, formID string, accepting bool) (model.Form, error) {
	form, err := s.Fetch(ctx, formID)
	if err != nil {
		return model.Form{}, err
	}
	form.Accepting = accepting
	if err := s.Update(ctx, formID, form); err != nil {
		return model.Form{}, err
	}
	return form, nil
}

func (s *SQLite) List(ctx context.Context) ([]model.Form, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT json FROM forms ORDER BY created_at`)
	if err != nil {
		return nil, &TransportError{Op: "list forms", Err: err}
	}
	defer rows.Close()

	var out []model.Form
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, &TransportError{Op: "list forms", Err: err}
		}
		var form model.Form
		if err := json.Unmarshal([]byte(raw), &form); err != nil {
			return nil, fmt.Errorf("store: decode form: %w", err)
		}
		out = append(out, form)
	}
	return out, rows.Err()
}

func (s *SQLite) Delete(ctx context.Context, formID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM forms WHERE id = ?`, formID)
	if err != nil {
		return &TransportError{Op: "delete form", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) Submit(ctx context.Context, formID string, sub Submission) (model.Response, error) {
	if _, err := s.Fetch(ctx, formID); err != nil {
		return model.Response{}, err
	}

	answers := make(map[string]any, len(sub.Answers)+len(sub.Files))
	for k, v := range sub.Answers {
		answers[k] = v
	}
	for _, part := range sub.Files {
		answers[part.Label] = part.Name
	}

	resp := model.Response{
		ResponseID:  uuid.NewString(),
		SubmittedAt: time.Now().UTC(),
		Answers:     answers,
	}
	raw, err := json.Marshal(resp.Answers)
	if err != nil {
		return model.Response{}, fmt.Errorf("store: encode answers: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Response{}, &TransportError{Op: "submit", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO responses (id, form_id, submitted_at, answers_json) VALUES (?, ?, ?, ?)`,
		resp.ResponseID, formID, resp.SubmittedAt, string(raw)); err != nil {
		return model.Response{}, &TransportError{Op: "submit", Err: err}
	}
	for _, part := range sub.Files {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO response_files (response_id, label, name, data) VALUES (?, ?, ?, ?)`,
			resp.ResponseID, part.Label, part.Name, part.Data); err != nil {
			return model.Response{}, &TransportError{Op: "submit file", Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return model.Response{}, &TransportError{Op: "submit", Err: err}
	}
	return resp, nil
}

func (s *SQLite) Responses(ctx context.Context, formID string) ([]model.Response, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, submitted_at, answers_json FROM responses WHERE form_id = ? ORDER BY submitted_at`, formID)
	if err != nil {
		return nil, &TransportError{Op: "list responses", Err: err}
	}
	defer rows.Close()

	var out []model.Response
	for rows.Next() {
		var (
			resp model.Response
			raw  string
		)
		if err := rows.Scan(&resp.ResponseID, &resp.SubmittedAt, &raw); err != nil {
			return nil, &TransportError{Op: "list responses", Err: err}
		}
		if err := json.Unmarshal([]byte(raw), &resp.Answers); err != nil {
			return nil, fmt.Errorf("store: decode answers %s: %w", resp.ResponseID, err)
		}
		out = append(out, resp)
	}
	return out, rows.Err()
}
