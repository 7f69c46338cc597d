package energy

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/raftagent/governor/internal/config"
	"github.com/raftagent/governor/internal/eventlog"
)

// #region guard
// Guard enforces the hard energy budget: joules_used must not exceed
// macs × EnergyPerMAC × energy_multiplier. A breach is apoptosis — fatal
// and irreversible — so the guard returns a status value for the caller to
// carry to the process entry point instead of exiting here.
type Guard struct {
	cfg     *config.Store
	audit   *eventlog.Log // optional
	enabled bool
}

// NewGuard wires the guard. The ENERGY_GUARD_ENABLED=false environment
// toggle records measurements without enforcing, for profiling runs.
func NewGuard(cfg *config.Store, audit *eventlog.Log) *Guard {
	enabled := true
	if v := os.Getenv("ENERGY_GUARD_ENABLED"); v == "false" {
		enabled = false
		log.Printf("[ENERGY] enforcement disabled; measurements are recorded only")
	}
	return &Guard{cfg: cfg, audit: audit, enabled: enabled}
}

// Enabled reports whether enforcement is active.
func (g *Guard) Enabled() bool {
	return g.enabled
}

// #endregion guard

// #region check
// CheckBudget records the measurement and returns a non-nil Breach when
// the budget is violated and enforcement is enabled. The multiplier is
// read from the live config at call time.
func (g *Guard) CheckBudget(rec Record, cycleID string) *Breach {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	multiplier := g.cfg.Current().Config.EnergyMultiplier
	budget := float64(rec.Macs) * EnergyPerMAC * multiplier

	g.record(rec, cycleID, budget)

	if rec.JoulesUsed <= budget {
		return nil
	}
	breach := &Breach{
		JoulesUsed: rec.JoulesUsed,
		Budget:     budget,
		Macs:       rec.Macs,
		Multiplier: multiplier,
	}
	if !g.enabled {
		log.Printf("[ENERGY] budget exceeded but enforcement disabled: %s", breach.RootCause())
		return nil
	}
	if g.audit != nil {
		if err := g.audit.Append(eventlog.Entry{
			Kind:      eventlog.KindEnergyBreach,
			CycleID:   cycleID,
			RootCause: breach.RootCause(),
		}); err != nil {
			log.Printf("[ENERGY] audit append failed: %v", err)
		}
	}
	return breach
}

func (g *Guard) record(rec Record, cycleID string, budget float64) {
	if g.audit == nil {
		return
	}
	payload, _ := json.Marshal(struct {
		Record
		Budget float64 `json:"budget"`
	}{rec, budget})
	if err := g.audit.Append(eventlog.Entry{
		Kind:        eventlog.KindEnergyRecord,
		CycleID:     cycleID,
		PayloadJSON: string(payload),
	}); err != nil {
		log.Printf("[ENERGY] audit append failed: %v", err)
	}
}

// #endregion check

// #region render
func renderRootCause(b Breach) string {
	return fmt.Sprintf("energy budget exceeded: %.6g J used > %.6g J allowed (%d MACs x %.3g J/MAC x %.2f)",
		b.JoulesUsed, b.Budget, b.Macs, EnergyPerMAC, b.Multiplier)
}

// #endregion render
