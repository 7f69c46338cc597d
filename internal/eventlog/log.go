package eventlog

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS event_log (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	ts           TEXT NOT NULL,
	kind         TEXT NOT NULL,
	cycle_id     TEXT,
	root_cause   TEXT,
	payload_json TEXT
);

CREATE INDEX IF NOT EXISTS idx_event_log_kind ON event_log(kind);
`

// #endregion schema

// #region log-struct
// Log is the append-only audit sink. Every component writes through it
// before mutating shared state, so the record of a failure always lands
// before the state it explains is overwritten.
type Log struct {
	db *sql.DB
}

// #endregion log-struct

// #region constructor
// Open opens (or creates) the audit database and runs migrations.
func Open(dbPath string) (*Log, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate audit db: %w", err)
	}
	return &Log{db: db}, nil
}

// OpenShared wraps an already-open database handle so the audit log can
// share a file with the checkpoint store.
func OpenShared(db *sql.DB) (*Log, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate audit db: %w", err)
	}
	return &Log{db: db}, nil
}

// Close closes the underlying database connection.
func (l *Log) Close() error {
	return l.db.Close()
}

// DB returns the underlying handle for sharing with other stores.
func (l *Log) DB() *sql.DB {
	return l.db
}

// #endregion constructor

// #region append
// Append writes one entry. The timestamp defaults to now when unset.
func (l *Log) Append(e Entry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	_, err := l.db.Exec(
		`INSERT INTO event_log (ts, kind, cycle_id, root_cause, payload_json)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Timestamp.Format(time.RFC3339Nano),
		string(e.Kind),
		nullIfEmpty(e.CycleID),
		nullIfEmpty(e.RootCause),
		nullIfEmpty(e.PayloadJSON),
	)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// #endregion append

// #region queries
// Recent returns the most recent n entries, newest first.
func (l *Log) Recent(n int) ([]Entry, error) {
	rows, err := l.db.Query(
		`SELECT id, ts, kind, COALESCE(cycle_id, ''), COALESCE(root_cause, ''), COALESCE(payload_json, '')
		 FROM event_log ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ByKind returns the most recent n entries of one kind, newest first.
func (l *Log) ByKind(kind Kind, n int) ([]Entry, error) {
	rows, err := l.db.Query(
		`SELECT id, ts, kind, COALESCE(cycle_id, ''), COALESCE(root_cause, ''), COALESCE(payload_json, '')
		 FROM event_log WHERE kind = ? ORDER BY id DESC LIMIT ?`, string(kind), n)
	if err != nil {
		return nil, fmt.Errorf("query events by kind: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		var e Entry
		var ts, kind string
		if err := rows.Scan(&e.ID, &ts, &kind, &e.CycleID, &e.RootCause, &e.PayloadJSON); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse event timestamp: %w", err)
		}
		e.Timestamp = parsed
		e.Kind = Kind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}

// #endregion queries

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
