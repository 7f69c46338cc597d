package checkpoint

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNoActive is returned when no active checkpoint exists yet.
var ErrNoActive = errors.New("no active checkpoint")

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS checkpoints (
	checkpoint_id TEXT PRIMARY KEY,
	parent_id     TEXT,
	cycle_id      TEXT,
	payload       BLOB NOT NULL,
	created_at    TEXT NOT NULL,
	archived      INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (parent_id) REFERENCES checkpoints(checkpoint_id)
);

CREATE TABLE IF NOT EXISTS active_checkpoint (
	id            INTEGER PRIMARY KEY CHECK (id = 1),
	checkpoint_id TEXT NOT NULL,
	FOREIGN KEY (checkpoint_id) REFERENCES checkpoints(checkpoint_id)
);
`

// #endregion schema

// #region store-struct
// Store manages the checkpoint chain in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate checkpoint db: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStoreShared wraps an already-open handle so checkpoints can share a
// file with the audit log.
func NewStoreShared(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate checkpoint db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying handle for use by other stores.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion constructor

// #region create-initial
// CreateInitial creates the root checkpoint and marks it active.
func (s *Store) CreateInitial(payload []byte) (Checkpoint, error) {
	cp := Checkpoint{
		ID:        uuid.New().String(),
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Checkpoint{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO checkpoints (checkpoint_id, parent_id, cycle_id, payload, created_at)
		 VALUES (?, NULL, NULL, ?, ?)`,
		cp.ID, cp.Payload, cp.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("insert root checkpoint: %w", err)
	}
	_, err = tx.Exec(
		`INSERT INTO active_checkpoint (id, checkpoint_id) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET checkpoint_id = excluded.checkpoint_id`,
		cp.ID,
	)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("set active: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Checkpoint{}, fmt.Errorf("commit tx: %w", err)
	}
	return cp, nil
}

// #endregion create-initial

// #region current
// Current returns the active checkpoint.
func (s *Store) Current() (Checkpoint, error) {
	row := s.db.QueryRow(
		`SELECT c.checkpoint_id, COALESCE(c.parent_id, ''), COALESCE(c.cycle_id, ''), c.payload, c.created_at, c.archived
		 FROM checkpoints c JOIN active_checkpoint a ON a.checkpoint_id = c.checkpoint_id
		 WHERE a.id = 1`)
	cp, err := scanCheckpoint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Checkpoint{}, ErrNoActive
	}
	return cp, err
}

// #endregion current

// #region commit
// Commit appends a child of the active checkpoint and moves the active
// pointer to it. The superseded parent is archived, not deleted.
func (s *Store) Commit(payload []byte, cycleID string) (Checkpoint, error) {
	parent, err := s.Current()
	if err != nil {
		return Checkpoint{}, err
	}

	cp := Checkpoint{
		ID:        uuid.New().String(),
		ParentID:  parent.ID,
		CycleID:   cycleID,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Checkpoint{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO checkpoints (checkpoint_id, parent_id, cycle_id, payload, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		cp.ID, cp.ParentID, nullIfEmpty(cp.CycleID), cp.Payload, cp.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("insert checkpoint: %w", err)
	}
	if _, err := tx.Exec(`UPDATE checkpoints SET archived = 1 WHERE checkpoint_id = ?`, parent.ID); err != nil {
		return Checkpoint{}, fmt.Errorf("archive parent: %w", err)
	}
	if _, err := tx.Exec(`UPDATE active_checkpoint SET checkpoint_id = ? WHERE id = 1`, cp.ID); err != nil {
		return Checkpoint{}, fmt.Errorf("move active pointer: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Checkpoint{}, fmt.Errorf("commit tx: %w", err)
	}
	return cp, nil
}

// #endregion commit

// #region rollback
// Rollback moves the active pointer back to the parent of the current
// checkpoint and returns the restored checkpoint. The abandoned checkpoint
// is archived; nothing is deleted.
func (s *Store) Rollback() (Checkpoint, error) {
	current, err := s.Current()
	if err != nil {
		return Checkpoint{}, err
	}
	if current.ParentID == "" {
		return Checkpoint{}, fmt.Errorf("cannot roll back past root checkpoint %s", current.ID)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Checkpoint{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE checkpoints SET archived = 1 WHERE checkpoint_id = ?`, current.ID); err != nil {
		return Checkpoint{}, fmt.Errorf("archive abandoned checkpoint: %w", err)
	}
	if _, err := tx.Exec(`UPDATE checkpoints SET archived = 0 WHERE checkpoint_id = ?`, current.ParentID); err != nil {
		return Checkpoint{}, fmt.Errorf("restore parent: %w", err)
	}
	if _, err := tx.Exec(`UPDATE active_checkpoint SET checkpoint_id = ? WHERE id = 1`, current.ParentID); err != nil {
		return Checkpoint{}, fmt.Errorf("move active pointer: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Checkpoint{}, fmt.Errorf("commit tx: %w", err)
	}
	return s.Current()
}

// #endregion rollback

// #region chain
// Chain returns up to n checkpoints walking parent links from the active
// one, newest first.
func (s *Store) Chain(n int) ([]Checkpoint, error) {
	cp, err := s.Current()
	if err != nil {
		return nil, err
	}
	out := []Checkpoint{cp}
	for len(out) < n && cp.ParentID != "" {
		row := s.db.QueryRow(
			`SELECT checkpoint_id, COALESCE(parent_id, ''), COALESCE(cycle_id, ''), payload, created_at, archived
			 FROM checkpoints WHERE checkpoint_id = ?`, cp.ParentID)
		cp, err = scanCheckpoint(row)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}

// #endregion chain

// #region helpers
func scanCheckpoint(row *sql.Row) (Checkpoint, error) {
	var cp Checkpoint
	var created string
	var archived int
	if err := row.Scan(&cp.ID, &cp.ParentID, &cp.CycleID, &cp.Payload, &created, &archived); err != nil {
		return Checkpoint{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("parse checkpoint timestamp: %w", err)
	}
	cp.CreatedAt = parsed
	cp.Archived = archived != 0
	return cp, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
