package replay

import (
	"encoding/json"
	"fmt"
	"os"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: a recorded
// run of the governor with per-cycle observations and the outcomes the
// live run produced.
type Fixture struct {
	Description string               `json:"description"`
	Config      FixtureConfig        `json:"config"`
	Cycles      []FixtureCycle       `json:"cycles"`
	Expected    []FixtureExpectation `json:"expected_results"`
}

// FixtureConfig mirrors the runtime thresholds with JSON tags.
type FixtureConfig struct {
	RhoMax           float64 `json:"rho_max"`
	EnergyMultiplier float64 `json:"energy_multiplier"`
}

// FixtureCycle is one recorded cycle's observations: the spectral radius
// the probe measured, the bracketing energy reading, the cost estimate,
// and any staged diff.
type FixtureCycle struct {
	CycleID string  `json:"cycle_id"`
	Rho     float64 `json:"rho"`
	Joules  float64 `json:"joules"`
	Macs    int64   `json:"macs"`
	Diff    string  `json:"diff,omitempty"`
}

// FixtureExpectation captures the expected outcome per cycle.
type FixtureExpectation struct {
	CycleID     string `json:"cycle_id"`
	Status      string `json:"status"`
	DiffApplied bool   `json:"diff_applied,omitempty"`
}

// #endregion fixture-types

// #region fixture-io

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if len(f.Cycles) == 0 {
		return nil, fmt.Errorf("fixture %s has no cycles", path)
	}
	return &f, nil
}

// WriteFixture writes a fixture as indented JSON.
func WriteFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// expectationFor finds the expectation for a cycle, if any.
func (f *Fixture) expectationFor(cycleID string) (FixtureExpectation, bool) {
	for _, e := range f.Expected {
		if e.CycleID == cycleID {
			return e, true
		}
	}
	return FixtureExpectation{}, false
}

// #endregion fixture-io
