package drift

import (
	"fmt"
	"math"

	"github.com/raftagent/governor/internal/stability"
)

// #region types
// AlertKind distinguishes the two independent alert conditions.
type AlertKind string

const (
	// AlertDrift fires when spectral-radius movement is too large.
	AlertDrift AlertKind = "drift"
	// AlertStagnation fires when successive samples barely move: healthy
	// self-modification is expected to show some embedding movement, so a
	// flat run is its own signal and may trigger forced exploration.
	AlertStagnation AlertKind = "stagnation"
)

// Alert is an advisory finding. Alerts never block a commit.
type Alert struct {
	Kind      AlertKind
	Reason    string
	MeanDrift float64
	MaxDrift  float64
	Window    []float64
}

// Config holds the monitor thresholds.
type Config struct {
	WindowSize     int     // samples retained, minimum 2
	MeanThreshold  float64 // rolling mean |Δρ| alert level
	MaxThreshold   float64 // max single-step |Δρ| alert level
	NoveltyEpsilon float64 // below this a step counts as "no movement"
	StagnationRun  int     // consecutive flat steps before alerting
}

// DefaultConfig returns the charter thresholds.
func DefaultConfig() Config {
	return Config{
		WindowSize:     10,
		MeanThreshold:  0.05,
		MaxThreshold:   0.10,
		NoveltyEpsilon: 1e-4,
		StagnationRun:  3,
	}
}

// #endregion types

// #region monitor
// Monitor owns the bounded sliding window of stability samples and raises
// statistical alerts on each new one.
type Monitor struct {
	config  Config
	values  []float64 // FIFO, oldest first, len <= WindowSize
	flatRun int
}

// NewMonitor creates a monitor. Window sizes below 2 cannot express a
// delta and are rejected.
func NewMonitor(config Config) (*Monitor, error) {
	if config.WindowSize < 2 {
		return nil, fmt.Errorf("drift: window size must be at least 2, got %d", config.WindowSize)
	}
	return &Monitor{config: config}, nil
}

// Len returns the number of retained samples.
func (m *Monitor) Len() int {
	return len(m.values)
}

// Window returns a copy of the current window values, oldest first.
func (m *Monitor) Window() []float64 {
	out := make([]float64, len(m.values))
	copy(out, m.values)
	return out
}

// Reset clears the window and the stagnation run.
func (m *Monitor) Reset() {
	m.values = m.values[:0]
	m.flatRun = 0
}

// #endregion monitor

// #region record
// Record pushes a sample, evicting the oldest when over capacity, and
// returns any alerts it triggers.
func (m *Monitor) Record(sample stability.Sample) []Alert {
	prevLen := len(m.values)
	var lastValue float64
	if prevLen > 0 {
		lastValue = m.values[prevLen-1]
	}

	m.values = append(m.values, sample.Rho)
	if len(m.values) > m.config.WindowSize {
		m.values = m.values[1:]
	}
	if prevLen == 0 {
		return nil
	}

	var alerts []Alert

	meanDrift, maxDrift := m.stats()
	if meanDrift > m.config.MeanThreshold || maxDrift > m.config.MaxThreshold {
		alerts = append(alerts, Alert{
			Kind: AlertDrift,
			Reason: fmt.Sprintf("spectral radius drift: mean %.6f (limit %.6f), max %.6f (limit %.6f)",
				meanDrift, m.config.MeanThreshold, maxDrift, m.config.MaxThreshold),
			MeanDrift: meanDrift,
			MaxDrift:  maxDrift,
			Window:    m.Window(),
		})
	}

	if math.Abs(sample.Rho-lastValue) < m.config.NoveltyEpsilon {
		m.flatRun++
	} else {
		m.flatRun = 0
	}
	if m.flatRun >= m.config.StagnationRun {
		alerts = append(alerts, Alert{
			Kind: AlertStagnation,
			Reason: fmt.Sprintf("no movement in %d consecutive samples (novelty < %g); consider forced exploration",
				m.flatRun, m.config.NoveltyEpsilon),
			MeanDrift: meanDrift,
			MaxDrift:  maxDrift,
			Window:    m.Window(),
		})
	}
	return alerts
}

// stats computes the rolling mean and max of |Δρ| between consecutive
// window entries.
func (m *Monitor) stats() (meanDrift, maxDrift float64) {
	var sum float64
	for i := 1; i < len(m.values); i++ {
		d := math.Abs(m.values[i] - m.values[i-1])
		sum += d
		if d > maxDrift {
			maxDrift = d
		}
	}
	meanDrift = sum / float64(len(m.values)-1)
	return meanDrift, maxDrift
}

// #endregion record
