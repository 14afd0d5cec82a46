package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const auditFileName = "audit.sqlite"

// AuditEntry is one admin mutation recorded locally: what ran, against which
// resource, with which request id, and how it ended. The backend has its own
// audit trail; this one answers "what did I just do from this machine".
type AuditEntry struct {
	ID        int64     `json:"id"`
	At        time.Time `json:"at"`
	Action    string    `json:"action"`   // create|update|delete|approve|reject|upload
	Resource  string    `json:"resource"` // ads|token-packages|...
	RecordID  string    `json:"recordId,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	Outcome   string    `json:"outcome"` // success|error
	Detail    string    `json:"detail,omitempty"`
}

type AuditLog struct {
	db *sql.DB
}

// OpenAudit opens (and migrates) the audit database.
func (s Store) OpenAudit(ctx context.Context) (*AuditLog, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", filepath.Join(s.dir(), auditFileName))
	if err != nil {
		return nil, err
	}
	// WAL keeps a concurrent reader (the audit panel) from blocking writes;
	// busy_timeout avoids "database is locked" flakiness.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA synchronous=NORMAL;",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS audit_log (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	at         TEXT NOT NULL,
	action     TEXT NOT NULL,
	resource   TEXT NOT NULL,
	record_id  TEXT NOT NULL DEFAULT '',
	request_id TEXT NOT NULL DEFAULT '',
	outcome    TEXT NOT NULL,
	detail     TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_audit_log_at ON audit_log(at);
`); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate audit schema: %w", err)
	}
	return &AuditLog{db: db}, nil
}

func (a *AuditLog) Close() error { return a.db.Close() }

func (a *AuditLog) Append(ctx context.Context, e AuditEntry) error {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	if strings.TrimSpace(e.Outcome) == "" {
		e.Outcome = "success"
	}
	_, err := a.db.ExecContext(ctx, `
INSERT INTO audit_log (at, action, resource, record_id, request_id, outcome, detail)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.At.UTC().Format(time.RFC3339Nano), e.Action, e.Resource, e.RecordID, e.RequestID, e.Outcome, e.Detail)
	return err
}

// Recent returns the newest n entries, newest first.
func (a *AuditLog) Recent(ctx context.Context, n int) ([]AuditEntry, error) {
	if n <= 0 {
		n = 50
	}
	rows, err := a.db.QueryContext(ctx, `
SELECT id, at, action, resource, record_id, request_id, outcome, detail
FROM audit_log ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AuditEntry
	for rows.Next() {
		var e AuditEntry
		var at string
		if err := rows.Scan(&e.ID, &at, &e.Action, &e.Resource, &e.RecordID, &e.RequestID, &e.Outcome, &e.Detail); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			e.At = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
