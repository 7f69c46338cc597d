package replay

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/raftagent/governor/internal/checkpoint"
	"github.com/raftagent/governor/internal/config"
	"github.com/raftagent/governor/internal/diffc"
	"github.com/raftagent/governor/internal/drift"
	"github.com/raftagent/governor/internal/energy"
	"github.com/raftagent/governor/internal/eventlog"
	"github.com/raftagent/governor/internal/governor"
	"github.com/raftagent/governor/internal/proofgate"
)

// #region playback
// playbackModel replays a recorded spectral radius: a diagonal Jacobian
// whose every singular value equals the recorded rho, so the power
// iteration recovers it exactly.
type playbackModel struct {
	rho  float64
	macs int64
}

func (m *playbackModel) Jvp(_ context.Context, v []float64) ([]float64, error) {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = m.rho * v[i]
	}
	return out, nil
}

func (m *playbackModel) Vjp(ctx context.Context, v []float64) ([]float64, error) {
	return m.Jvp(ctx, v)
}

func (m *playbackModel) MacsEstimate(context.Context) (int64, error) {
	return m.macs, nil
}

// playbackMeter replays a recorded energy reading.
type playbackMeter struct {
	joules float64
}

func (m *playbackMeter) Begin(context.Context) (energy.Session, error) {
	return m, nil
}

func (m *playbackMeter) End(context.Context) (float64, error) {
	return m.joules, nil
}

// #endregion playback

// #region results
// Result captures the outcome of replaying one recorded cycle through the
// full pipeline.
type Result struct {
	CycleID     string
	Status      governor.Status
	Rho         float64
	JoulesUsed  float64
	DiffApplied bool
	Matched     bool
	Reason      string // divergence or error detail, empty when matched
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalCycles int
	Committed   int
	RolledBack  int
	Terminated  int
	Divergences int
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []Result) Summary {
	s := Summary{TotalCycles: len(results)}
	for _, r := range results {
		switch r.Status {
		case governor.StatusCommitted:
			s.Committed++
		case governor.StatusRolledBack:
			s.RolledBack++
		case governor.StatusTerminated:
			s.Terminated++
		}
		if !r.Matched {
			s.Divergences++
		}
	}
	return s
}

// #endregion results

// #region replay
// Replay runs every recorded cycle through the real pipeline — real diff
// compiler, real proof gate, real checkpoint chain — with the measurements
// stubbed to their recorded values. dir holds the throwaway databases. A
// terminated cycle ends the run, as it would live.
func Replay(ctx context.Context, f *Fixture, dir string) ([]Result, error) {
	audit, err := eventlog.Open(filepath.Join(dir, "replay.db"))
	if err != nil {
		return nil, err
	}
	defer audit.Close()

	cps, err := checkpoint.NewStoreShared(audit.DB())
	if err != nil {
		return nil, err
	}
	if _, err := cps.CreateInitial([]byte("replay-genesis")); err != nil {
		return nil, err
	}

	cfgStore, err := config.NewStore(config.RuntimeConfig{
		RhoMax:           f.Config.RhoMax,
		EnergyMultiplier: f.Config.EnergyMultiplier,
	}, "")
	if err != nil {
		return nil, fmt.Errorf("fixture config: %w", err)
	}
	mon, err := drift.NewMonitor(drift.DefaultConfig())
	if err != nil {
		return nil, err
	}

	model := &playbackModel{}
	meter := &playbackMeter{}
	g, err := governor.New(governor.Deps{
		Config:      cfgStore,
		Audit:       audit,
		Checkpoints: cps,
		Compiler:    diffc.NewCompiler(),
		Gate:        proofgate.NewGate(proofgate.NewMemoryCache(), proofgate.NativeSolver{}, audit),
		Model:       model,
		Meter:       meter,
		Guard:       energy.NewGuard(cfgStore, audit),
		Drift:       mon,
	})
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, c := range f.Cycles {
		model.rho = c.Rho
		model.macs = c.Macs
		meter.joules = c.Joules

		res, err := g.RunCycle(ctx, governor.CycleInput{
			Probe:    []float64{1, 0},
			Snapshot: []byte(c.CycleID),
			Diff:     c.Diff,
		})
		r := Result{
			CycleID:     c.CycleID,
			Status:      res.Status,
			Rho:         res.Rho,
			JoulesUsed:  res.JoulesUsed,
			DiffApplied: res.DiffApplied,
		}
		if err != nil {
			r.Reason = err.Error()
			results = append(results, r)
			continue
		}
		r.Matched, r.Reason = f.check(c.CycleID, res)
		results = append(results, r)

		if res.Status == governor.StatusTerminated {
			break
		}
	}
	return results, nil
}

// check compares one result against the fixture's expectation. Cycles
// without an expectation always match.
func (f *Fixture) check(cycleID string, res governor.CycleResult) (bool, string) {
	want, ok := f.expectationFor(cycleID)
	if !ok {
		return true, ""
	}
	if string(res.Status) != want.Status {
		return false, fmt.Sprintf("status: want %s, got %s", want.Status, res.Status)
	}
	if res.DiffApplied != want.DiffApplied {
		return false, fmt.Sprintf("diff_applied: want %v, got %v", want.DiffApplied, res.DiffApplied)
	}
	return true, ""
}

// #endregion replay
