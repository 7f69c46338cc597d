package eventlog

import "time"

// #region kinds
// Kind classifies an audit entry.
type Kind string

const (
	KindCycleStart      Kind = "cycle_start"
	KindCycleCommit     Kind = "cycle_commit"
	KindCycleSkip       Kind = "cycle_skip" // paused, no-op cycle
	KindStabilityBreach Kind = "stability_breach"
	KindEnergyRecord    Kind = "energy_record"
	KindEnergyBreach    Kind = "energy_breach"
	KindDriftAlert      Kind = "drift_alert"
	KindStagnationAlert Kind = "stagnation_alert"
	KindProofVerdict    Kind = "proof_verdict"
	KindDiffApplied     Kind = "diff_applied"
	KindDiffRejected    Kind = "diff_rejected"
	KindRollback        Kind = "rollback"
	KindConfigUpdate    Kind = "config_update"
	KindShutdown        Kind = "shutdown"
)

// #endregion kinds

// #region entry
// Entry is a single append-only audit record. RootCause is set on failure
// entries (breach, rollback, rejection) and empty otherwise. Entries are
// never rewritten once appended.
type Entry struct {
	ID          int64
	Timestamp   time.Time
	Kind        Kind
	CycleID     string
	RootCause   string
	PayloadJSON string
}

// #endregion entry
