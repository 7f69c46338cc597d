package governor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/raftagent/governor/internal/checkpoint"
	"github.com/raftagent/governor/internal/config"
	"github.com/raftagent/governor/internal/diffc"
	"github.com/raftagent/governor/internal/drift"
	"github.com/raftagent/governor/internal/energy"
	"github.com/raftagent/governor/internal/eventlog"
	"github.com/raftagent/governor/internal/proofgate"
	"github.com/raftagent/governor/internal/stability"
	"github.com/raftagent/governor/internal/telemetry"
)

// #region governor-struct
// Deps is everything a Governor needs. All fields are required except
// Metrics and Beat.
type Deps struct {
	Config      *config.Store
	Audit       *eventlog.Log
	Checkpoints *checkpoint.Store
	Compiler    *diffc.Compiler
	Gate        *proofgate.Gate
	Model       Model
	Meter       energy.Meter
	Guard       *energy.Guard
	Drift       *drift.Monitor
	Metrics     *telemetry.Metrics
	Beat        func() // watchdog heartbeat, optional
	Stability   stability.Options
}

// Governor runs the commit cycle: probe stability, meter energy, verify
// staged self-modifications, then commit or roll back. It is the only
// writer of the checkpoint chain.
type Governor struct {
	deps       Deps
	policyHash string

	paused atomic.Bool
	killed atomic.Bool
}

// New wires a governor. The proof-cache policy hash is fixed at
// construction from the compiler's active pattern set.
func New(deps Deps) (*Governor, error) {
	switch {
	case deps.Config == nil:
		return nil, fmt.Errorf("governor: config store is required")
	case deps.Audit == nil:
		return nil, fmt.Errorf("governor: audit log is required")
	case deps.Checkpoints == nil:
		return nil, fmt.Errorf("governor: checkpoint store is required")
	case deps.Compiler == nil:
		return nil, fmt.Errorf("governor: diff compiler is required")
	case deps.Gate == nil:
		return nil, fmt.Errorf("governor: proof gate is required")
	case deps.Model == nil:
		return nil, fmt.Errorf("governor: model is required")
	case deps.Meter == nil:
		return nil, fmt.Errorf("governor: energy meter is required")
	case deps.Guard == nil:
		return nil, fmt.Errorf("governor: energy guard is required")
	case deps.Drift == nil:
		return nil, fmt.Errorf("governor: drift monitor is required")
	}
	if deps.Metrics == nil {
		deps.Metrics = telemetry.New()
	}
	if deps.Beat == nil {
		deps.Beat = func() {}
	}
	if deps.Stability.NIter == 0 {
		deps.Stability = stability.DefaultOptions()
	}
	return &Governor{
		deps:       deps,
		policyHash: proofgate.PolicyHash(deps.Compiler.Patterns()),
	}, nil
}

// Metrics exposes the telemetry set for the inspection surface.
func (g *Governor) Metrics() *telemetry.Metrics {
	return g.deps.Metrics
}

// #endregion governor-struct

// #region flags
// Pause sets or clears the pause flag. Paused cycles skip every guard and
// mutate nothing.
func (g *Governor) Pause(on bool) {
	g.paused.Store(on)
}

// Paused reports the pause flag.
func (g *Governor) Paused() bool {
	return g.paused.Load()
}

// Kill requests an orderly halt: the next cycle returns StatusHalted and
// the loop stops. Irreversible.
func (g *Governor) Kill() {
	g.killed.Store(true)
}

// Killed reports the kill flag.
func (g *Governor) Killed() bool {
	return g.killed.Load()
}

// UpdateConfig publishes new thresholds and records the change.
func (g *Governor) UpdateConfig(cfg config.RuntimeConfig) error {
	v, err := g.deps.Config.Update(cfg)
	if err != nil {
		return err
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"version":           v.Version,
		"rho_max":           cfg.RhoMax,
		"energy_multiplier": cfg.EnergyMultiplier,
	})
	if err := g.deps.Audit.Append(eventlog.Entry{
		Kind:        eventlog.KindConfigUpdate,
		PayloadJSON: string(payload),
	}); err != nil {
		log.Printf("[GOVERNOR] audit append failed: %v", err)
	}
	return nil
}

// #endregion flags

// #region cycle
// RunCycle executes one governing cycle. Guard order is fixed: kill flag,
// pause flag, stability probe, energy budget, drift feed, then the proof
// gate. The energy verdict outranks everything else in the same cycle: a
// breach is apoptosis even when the stability guard also tripped.
func (g *Governor) RunCycle(ctx context.Context, in CycleInput) (CycleResult, error) {
	res := CycleResult{CycleID: uuid.New().String()}

	if g.killed.Load() {
		res.Status = StatusHalted
		res.RootCause = "kill flag set"
		g.appendAudit(eventlog.Entry{Kind: eventlog.KindCycleSkip, CycleID: res.CycleID, RootCause: res.RootCause})
		return res, nil
	}
	if g.paused.Load() {
		res.Status = StatusSkipped
		res.RootCause = "paused"
		g.deps.Metrics.CycleSkipped()
		g.appendAudit(eventlog.Entry{Kind: eventlog.KindCycleSkip, CycleID: res.CycleID, RootCause: res.RootCause})
		return res, nil
	}

	g.deps.Metrics.CycleStarted()
	g.appendAudit(eventlog.Entry{Kind: eventlog.KindCycleStart, CycleID: res.CycleID})

	session, err := g.deps.Meter.Begin(ctx)
	if err != nil {
		return res, fmt.Errorf("begin energy measurement: %w", err)
	}

	// Stability probe. A probe failure means the next state cannot be
	// certified, so nothing is committed this cycle.
	rho, err := stability.EstimateRho(ctx, g.deps.Model, in.Probe, g.deps.Stability)
	if err != nil {
		res.Status = StatusSkipped
		res.RootCause = fmt.Sprintf("stability probe failed: %v", err)
		g.deps.Metrics.CycleSkipped()
		g.appendAudit(eventlog.Entry{Kind: eventlog.KindCycleSkip, CycleID: res.CycleID, RootCause: res.RootCause})
		return res, fmt.Errorf("estimate spectral radius: %w", err)
	}
	res.Rho = rho
	g.deps.Metrics.ObserveRho(rho)

	rhoMax := g.deps.Config.Current().Config.RhoMax
	g.deps.Metrics.ObserveRhoMax(rhoMax)
	// Reaching the ceiling is already a breach: contraction requires
	// strictly rho < rho_max.
	stable := rho < rhoMax
	if !stable {
		payload, _ := json.Marshal(map[string]float64{"rho": rho, "rho_max": rhoMax})
		g.appendAudit(eventlog.Entry{
			Kind:        eventlog.KindStabilityBreach,
			CycleID:     res.CycleID,
			RootCause:   fmt.Sprintf("spectral radius %.6f at or above rho_max %.6f", rho, rhoMax),
			PayloadJSON: string(payload),
		})
	}

	// Energy verdict before anything irreversible happens to the chain.
	breach, joules, macs := g.checkEnergy(ctx, session, res.CycleID)
	res.JoulesUsed, res.Macs = joules, macs
	if breach != nil {
		res.Breach = breach
		res.Status = StatusTerminated
		res.RootCause = breach.RootCause()
		return res, nil
	}

	if !stable {
		return g.rollback(res, rhoMax)
	}

	// Drift is advisory and only meaningful along the surviving
	// trajectory: samples from terminated or rolled-back cycles never
	// enter the window.
	res.Alerts = g.feedDrift(stability.Sample{Rho: rho, Timestamp: time.Now().UTC(), CycleID: res.CycleID})

	if in.Diff != "" {
		g.verifyDiff(ctx, in.Diff, &res)
	}

	cp, err := g.deps.Checkpoints.Commit(in.Snapshot, res.CycleID)
	if err != nil {
		return res, fmt.Errorf("commit checkpoint: %w", err)
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"checkpoint_id": cp.ID,
		"rho":           res.Rho,
		"joules_used":   res.JoulesUsed,
		"diff_applied":  res.DiffApplied,
	})
	g.appendAudit(eventlog.Entry{Kind: eventlog.KindCycleCommit, CycleID: res.CycleID, PayloadJSON: string(payload)})
	g.deps.Metrics.CycleCommitted()
	res.Status = StatusCommitted
	return res, nil
}

// #endregion cycle

// #region cycle-steps
func (g *Governor) feedDrift(sample stability.Sample) []drift.Alert {
	alerts := g.deps.Drift.Record(sample)
	for _, a := range alerts {
		kind := eventlog.KindDriftAlert
		if a.Kind == drift.AlertStagnation {
			kind = eventlog.KindStagnationAlert
		}
		payload, _ := json.Marshal(map[string]interface{}{
			"mean_drift": a.MeanDrift,
			"max_drift":  a.MaxDrift,
			"window":     a.Window,
		})
		g.appendAudit(eventlog.Entry{Kind: kind, CycleID: sample.CycleID, RootCause: a.Reason, PayloadJSON: string(payload)})
		g.deps.Metrics.DriftAlert()
	}
	return alerts
}

// checkEnergy ends the measurement and applies the budget. A failed cost
// estimate disables enforcement for this cycle rather than terminating the
// process on a transient RPC error; the measurement is still recorded.
func (g *Governor) checkEnergy(ctx context.Context, session energy.Session, cycleID string) (*energy.Breach, float64, int64) {
	joules, err := session.End(ctx)
	if err != nil {
		log.Printf("[GOVERNOR] energy measurement failed: %v", err)
		joules = 0
	}
	g.deps.Metrics.ObserveJoules(joules)

	macs, err := g.deps.Model.MacsEstimate(ctx)
	if err != nil {
		log.Printf("[GOVERNOR] cost estimate unavailable, skipping budget check: %v", err)
		return nil, joules, 0
	}
	breach := g.deps.Guard.CheckBudget(energy.Record{JoulesUsed: joules, Macs: macs}, cycleID)
	return breach, joules, macs
}

func (g *Governor) rollback(res CycleResult, rhoMax float64) (CycleResult, error) {
	restored, err := g.deps.Checkpoints.Rollback()
	if err != nil {
		return res, fmt.Errorf("roll back after stability breach: %w", err)
	}
	g.appendAudit(eventlog.Entry{
		Kind:      eventlog.KindRollback,
		CycleID:   res.CycleID,
		RootCause: fmt.Sprintf("restored checkpoint %s after spectral radius %.6f >= %.6f", restored.ID, res.Rho, rhoMax),
	})
	g.deps.Metrics.CycleRolledBack()
	g.deps.Drift.Reset()
	res.Status = StatusRolledBack
	res.RootCause = fmt.Sprintf("spectral radius %.6f at or above rho_max %.6f", res.Rho, rhoMax)
	return res, nil
}

// verifyDiff compiles and verifies a staged self-modification. A rejected
// diff does not abort the cycle: the checkpoint still advances, just
// without the change.
func (g *Governor) verifyDiff(ctx context.Context, diff string, res *CycleResult) {
	ob := g.deps.Compiler.Compile(diff)
	verdict, err := g.deps.Gate.VerifyObligation(ctx, ob, g.policyHash)
	if err != nil {
		// Fail closed.
		log.Printf("[GOVERNOR] verification failed, rejecting diff: %v", err)
		verdict = proofgate.Verdict{Proved: false}
	}
	res.Verdict = &verdict
	if verdict.Cached {
		g.deps.Metrics.ProofCacheHit()
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"risk_score": g.deps.Compiler.RiskScore(diff),
		"cached":     verdict.Cached,
	})
	if verdict.Proved {
		res.DiffApplied = true
		g.deps.Metrics.ProofProved()
		g.appendAudit(eventlog.Entry{Kind: eventlog.KindDiffApplied, CycleID: res.CycleID, PayloadJSON: string(payload)})
		return
	}
	g.deps.Metrics.ProofDisproved()
	rootCause := "safety obligation satisfiable"
	if verdict.Counterexample != nil {
		rootCause = verdict.Counterexample.Summary
	}
	g.appendAudit(eventlog.Entry{Kind: eventlog.KindDiffRejected, CycleID: res.CycleID, RootCause: rootCause, PayloadJSON: string(payload)})
}

func (g *Governor) appendAudit(e eventlog.Entry) {
	if err := g.deps.Audit.Append(e); err != nil {
		log.Printf("[GOVERNOR] audit append failed: %v", err)
	}
}

// #endregion cycle-steps

// #region loop
// Source supplies each cycle's input: the probe point, the state snapshot,
// and any staged diff.
type Source interface {
	Next(ctx context.Context) (CycleInput, error)
}

// Loop runs cycles on a fixed interval until the context is cancelled, the
// kill flag halts the loop, or a cycle terminates. The last result is
// returned so the entry point can map it to an exit code.
func (g *Governor) Loop(ctx context.Context, interval time.Duration, source Source) (CycleResult, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last CycleResult
	for {
		select {
		case <-ctx.Done():
			last.Status = StatusHalted
			last.RootCause = "context cancelled"
			return last, ctx.Err()
		case <-ticker.C:
			g.deps.Beat()
			in, err := source.Next(ctx)
			if err != nil {
				log.Printf("[GOVERNOR] input source failed, skipping cycle: %v", err)
				continue
			}
			res, err := g.RunCycle(ctx, in)
			if err != nil {
				log.Printf("[GOVERNOR] cycle %s: %v", res.CycleID, err)
			}
			last = res
			switch res.Status {
			case StatusTerminated, StatusHalted:
				return res, nil
			}
		}
	}
}

// #endregion loop
