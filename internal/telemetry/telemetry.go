package telemetry

import (
	"math"
	"sync/atomic"
	"time"
)

// #region metrics
// Metrics is the lock-free counter set shared by the cycle loop and the
// inspection surface. Writers are the governor goroutines; readers take a
// Snapshot at any time without coordination.
type Metrics struct {
	cyclesStarted   atomic.Int64
	cyclesCommitted atomic.Int64
	cyclesRolled    atomic.Int64
	cyclesSkipped   atomic.Int64
	proofsProved    atomic.Int64
	proofsDisproved atomic.Int64
	proofCacheHits  atomic.Int64
	driftAlerts     atomic.Int64

	lastRho    atomic.Uint64 // float64 bits
	lastRhoMax atomic.Uint64 // float64 bits
	lastJoules atomic.Uint64 // float64 bits
	lastCycle  atomic.Int64  // unix nanos
}

// Snapshot is a point-in-time read of the metrics.
type Snapshot struct {
	CyclesStarted   int64     `json:"cycles_started"`
	CyclesCommitted int64     `json:"cycles_committed"`
	CyclesRolled    int64     `json:"cycles_rolled_back"`
	CyclesSkipped   int64     `json:"cycles_skipped"`
	ProofsProved    int64     `json:"proofs_proved"`
	ProofsDisproved int64     `json:"proofs_disproved"`
	ProofCacheHits  int64     `json:"proof_cache_hits"`
	DriftAlerts     int64     `json:"drift_alerts"`
	LastRho         float64   `json:"last_rho"`
	RhoMax          float64   `json:"rho_max"`
	LastJoules      float64   `json:"last_joules"`
	LastCycleAt     time.Time `json:"last_cycle_at"`
}

// New returns a zeroed metrics set.
func New() *Metrics {
	return &Metrics{}
}

// #endregion metrics

// #region writers
func (m *Metrics) CycleStarted()    { m.cyclesStarted.Add(1); m.lastCycle.Store(time.Now().UnixNano()) }
func (m *Metrics) CycleCommitted()  { m.cyclesCommitted.Add(1) }
func (m *Metrics) CycleRolledBack() { m.cyclesRolled.Add(1) }
func (m *Metrics) CycleSkipped()    { m.cyclesSkipped.Add(1) }
func (m *Metrics) ProofProved()     { m.proofsProved.Add(1) }
func (m *Metrics) ProofDisproved()  { m.proofsDisproved.Add(1) }
func (m *Metrics) ProofCacheHit()   { m.proofCacheHits.Add(1) }
func (m *Metrics) DriftAlert()      { m.driftAlerts.Add(1) }

// ObserveRho records the latest spectral radius estimate.
func (m *Metrics) ObserveRho(rho float64) {
	m.lastRho.Store(math.Float64bits(rho))
}

// ObserveRhoMax records the ceiling the estimate was judged against, so a
// collector reading rho always sees the threshold that applied to it.
func (m *Metrics) ObserveRhoMax(rhoMax float64) {
	m.lastRhoMax.Store(math.Float64bits(rhoMax))
}

// ObserveJoules records the latest cycle energy measurement.
func (m *Metrics) ObserveJoules(joules float64) {
	m.lastJoules.Store(math.Float64bits(joules))
}

// #endregion writers

// #region snapshot
// Snapshot reads all counters. Reads of distinct counters are not a
// single atomic transaction, which is fine for a diagnostic surface.
func (m *Metrics) Snapshot() Snapshot {
	s := Snapshot{
		CyclesStarted:   m.cyclesStarted.Load(),
		CyclesCommitted: m.cyclesCommitted.Load(),
		CyclesRolled:    m.cyclesRolled.Load(),
		CyclesSkipped:   m.cyclesSkipped.Load(),
		ProofsProved:    m.proofsProved.Load(),
		ProofsDisproved: m.proofsDisproved.Load(),
		ProofCacheHits:  m.proofCacheHits.Load(),
		DriftAlerts:     m.driftAlerts.Load(),
		LastRho:         math.Float64frombits(m.lastRho.Load()),
		RhoMax:          math.Float64frombits(m.lastRhoMax.Load()),
		LastJoules:      math.Float64frombits(m.lastJoules.Load()),
	}
	if ns := m.lastCycle.Load(); ns != 0 {
		s.LastCycleAt = time.Unix(0, ns).UTC()
	}
	return s
}

// #endregion snapshot
