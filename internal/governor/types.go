package governor

import (
	"context"

	"github.com/raftagent/governor/internal/drift"
	"github.com/raftagent/governor/internal/energy"
	"github.com/raftagent/governor/internal/proofgate"
	"github.com/raftagent/governor/internal/stability"
)

// #region status
// Status is the terminal state of one cycle.
type Status string

const (
	// StatusCommitted means the cycle passed every guard and a new
	// checkpoint was appended.
	StatusCommitted Status = "committed"
	// StatusRolledBack means the stability guard tripped and the agent was
	// restored to the parent checkpoint. Recoverable; the loop continues.
	StatusRolledBack Status = "rolled_back"
	// StatusSkipped means the pause flag was set; no guard ran and no state
	// changed.
	StatusSkipped Status = "skipped"
	// StatusHalted means the kill flag was set; the loop must stop after
	// this cycle. Orderly, exit code 0.
	StatusHalted Status = "halted"
	// StatusTerminated means the energy budget was breached. Apoptosis:
	// the caller must carry the breach to the process entry point, which
	// exits without cleanup beyond the audit record already written.
	StatusTerminated Status = "terminated"
)

// #endregion status

// #region model
// Model is the governed model's introspection surface: Jacobian products
// for the stability probe plus a cost estimate for the energy budget.
type Model interface {
	stability.Operator
	MacsEstimate(ctx context.Context) (int64, error)
}

// #endregion model

// #region io
// CycleInput is everything one cycle consumes. Probe is the state-space
// point the stability probe linearizes around; Snapshot is the agent state
// to checkpoint on commit; Diff, when non-empty, is a staged
// self-modification awaiting verification.
type CycleInput struct {
	Probe    []float64
	Snapshot []byte
	Diff     string
}

// CycleResult reports what one cycle did.
type CycleResult struct {
	CycleID     string
	Status      Status
	Rho         float64
	JoulesUsed  float64
	Macs        int64
	Verdict     *proofgate.Verdict // nil when no diff was staged
	DiffApplied bool
	Alerts      []drift.Alert
	Breach      *energy.Breach // non-nil iff Status == StatusTerminated
	RootCause   string
}

// #endregion io
