package energy

import (
	"context"
	"testing"
	"time"

	"github.com/raftagent/governor/internal/config"
)

func testConfig(t *testing.T, multiplier float64) *config.Store {
	t.Helper()
	store, err := config.NewStore(config.RuntimeConfig{RhoMax: 0.9, EnergyMultiplier: multiplier}, "")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return store
}

func TestCheckBudgetWithinLimit(t *testing.T) {
	g := NewGuard(testConfig(t, 2.0), nil)
	macs := int64(1_000_000_000)
	budget := float64(macs) * EnergyPerMAC * 2.0

	if breach := g.CheckBudget(Record{JoulesUsed: budget - 1e-9, Macs: macs}, "c1"); breach != nil {
		t.Fatalf("within budget must not breach: %+v", breach)
	}
	// Exactly at the boundary is still within budget.
	if breach := g.CheckBudget(Record{JoulesUsed: budget, Macs: macs}, "c1"); breach != nil {
		t.Fatalf("boundary must not breach: %+v", breach)
	}
}

func TestCheckBudgetBreach(t *testing.T) {
	g := NewGuard(testConfig(t, 2.0), nil)
	macs := int64(1_000_000_000)
	budget := float64(macs) * EnergyPerMAC * 2.0

	breach := g.CheckBudget(Record{JoulesUsed: budget + 1e-9, Macs: macs}, "c1")
	if breach == nil {
		t.Fatal("over budget must breach")
	}
	if breach.Budget != budget || breach.Macs != macs {
		t.Fatalf("breach fields wrong: %+v", breach)
	}
	if breach.RootCause() == "" {
		t.Fatal("breach must render a root cause")
	}
}

func TestCheckBudgetReadsMultiplierAtCallTime(t *testing.T) {
	cfg := testConfig(t, 1.0)
	g := NewGuard(cfg, nil)
	macs := int64(1_000_000_000)
	used := float64(macs) * EnergyPerMAC * 1.5

	if breach := g.CheckBudget(Record{JoulesUsed: used, Macs: macs}, "c1"); breach == nil {
		t.Fatal("1.5x usage must breach a 1.0 multiplier")
	}
	if _, err := cfg.Update(config.RuntimeConfig{RhoMax: 0.9, EnergyMultiplier: 2.0}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if breach := g.CheckBudget(Record{JoulesUsed: used, Macs: macs}, "c1"); breach != nil {
		t.Fatalf("raised multiplier must clear the same usage: %+v", breach)
	}
}

func TestDisabledGuardRecordsWithoutEnforcing(t *testing.T) {
	t.Setenv("ENERGY_GUARD_ENABLED", "false")
	g := NewGuard(testConfig(t, 1.0), nil)
	if g.Enabled() {
		t.Fatal("guard should be disabled")
	}
	macs := int64(1_000_000)
	if breach := g.CheckBudget(Record{JoulesUsed: 1e6, Macs: macs}, "c1"); breach != nil {
		t.Fatalf("disabled guard must not breach: %+v", breach)
	}
}

func TestWallClockMeterEstimates(t *testing.T) {
	m := WallClockMeter{Watts: 100}
	s, err := m.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	joules, err := s.End(context.Background())
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	// 100 W for >= 10 ms is at least 1 J.
	if joules < 1 {
		t.Fatalf("estimate too low: %v J", joules)
	}
	if joules > 100 {
		t.Fatalf("estimate implausibly high: %v J", joules)
	}
}
