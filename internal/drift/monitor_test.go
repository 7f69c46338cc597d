package drift

import (
	"testing"

	"github.com/raftagent/governor/internal/stability"
)

func feed(t *testing.T, m *Monitor, values ...float64) []Alert {
	t.Helper()
	var last []Alert
	for _, v := range values {
		last = m.Record(stability.Sample{Rho: v})
	}
	return last
}

func hasKind(alerts []Alert, kind AlertKind) bool {
	for _, a := range alerts {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

func TestFirstSampleNeverAlerts(t *testing.T) {
	m, err := NewMonitor(DefaultConfig())
	if err != nil {
		t.Fatalf("monitor: %v", err)
	}
	if alerts := m.Record(stability.Sample{Rho: 0.5}); alerts != nil {
		t.Fatalf("single sample has no delta, got %+v", alerts)
	}
}

func TestStableSeriesIsQuiet(t *testing.T) {
	m, _ := NewMonitor(DefaultConfig())
	// Movements above epsilon but well under both thresholds.
	alerts := feed(t, m, 0.50, 0.51, 0.50, 0.52, 0.51, 0.50)
	if len(alerts) != 0 {
		t.Fatalf("stable series must not alert: %+v", alerts)
	}
}

func TestMaxStepTriggersDrift(t *testing.T) {
	m, _ := NewMonitor(DefaultConfig())
	alerts := feed(t, m, 0.50, 0.65) // single step 0.15 > 0.10
	if !hasKind(alerts, AlertDrift) {
		t.Fatalf("0.15 step must trigger drift alert, got %+v", alerts)
	}
}

func TestMeanDriftTriggersWithoutLargeStep(t *testing.T) {
	m, _ := NewMonitor(DefaultConfig())
	// Alternating +-0.08: every step under the 0.10 max threshold but the
	// mean |delta| is 0.08 > 0.05.
	alerts := feed(t, m, 0.50, 0.58, 0.50, 0.58, 0.50)
	if !hasKind(alerts, AlertDrift) {
		t.Fatalf("mean drift 0.08 must alert, got %+v", alerts)
	}
	if alerts[0].MaxDrift > 0.10 {
		t.Fatalf("no single step should exceed the max threshold: %+v", alerts[0])
	}
}

func TestWindowEvictsOldest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindowSize = 3
	m, _ := NewMonitor(cfg)
	feed(t, m, 0.1, 0.2, 0.3, 0.4)
	if m.Len() != 3 {
		t.Fatalf("window must cap at 3, got %d", m.Len())
	}
	w := m.Window()
	if w[0] != 0.2 || w[2] != 0.4 {
		t.Fatalf("oldest sample must be evicted: %v", w)
	}
}

func TestLargeStepEvictedStopsAlerting(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindowSize = 3
	m, _ := NewMonitor(cfg)
	if alerts := feed(t, m, 0.50, 0.80); !hasKind(alerts, AlertDrift) {
		t.Fatal("large step must alert while in window")
	}
	// Small moves push the spike out; alternate direction so the stagnation
	// condition stays clear of this test.
	alerts := feed(t, m, 0.81, 0.80, 0.81)
	if len(alerts) != 0 {
		t.Fatalf("evicted spike must stop alerting: %+v", alerts)
	}
}

func TestStagnationAfterFlatRun(t *testing.T) {
	m, _ := NewMonitor(DefaultConfig())
	v := 0.500000
	alerts := feed(t, m, v, v, v, v) // three consecutive flat deltas
	if !hasKind(alerts, AlertStagnation) {
		t.Fatalf("flat run of 3 must alert, got %+v", alerts)
	}
}

func TestMovementResetsStagnationRun(t *testing.T) {
	m, _ := NewMonitor(DefaultConfig())
	alerts := feed(t, m, 0.50, 0.50, 0.50, 0.51, 0.51, 0.51)
	// Two flat runs of 2 separated by a real move never reach 3.
	if hasKind(alerts, AlertStagnation) {
		t.Fatalf("movement must reset the flat run: %+v", alerts)
	}
}

func TestResetClearsState(t *testing.T) {
	m, _ := NewMonitor(DefaultConfig())
	feed(t, m, 0.5, 0.5, 0.5)
	m.Reset()
	if m.Len() != 0 {
		t.Fatalf("reset must empty the window, got %d", m.Len())
	}
	if alerts := feed(t, m, 0.5, 0.5); hasKind(alerts, AlertStagnation) {
		t.Fatalf("flat run must not survive reset: %+v", alerts)
	}
}

func TestRejectsDegenerateWindow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindowSize = 1
	if _, err := NewMonitor(cfg); err == nil {
		t.Fatal("window of 1 must be rejected")
	}
}
