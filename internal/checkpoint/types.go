package checkpoint

import "time"

// #region checkpoint
// Checkpoint is an immutable snapshot of governed state taken after a
// successful cycle. Checkpoints form a parent-linked chain; superseded ones
// are archived, never deleted, so the full history stays auditable.
type Checkpoint struct {
	ID        string
	ParentID  string
	CycleID   string
	Payload   []byte // opaque governed-state blob, owned by the agent
	CreatedAt time.Time
	Archived  bool
}

// #endregion checkpoint
