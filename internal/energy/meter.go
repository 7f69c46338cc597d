package energy

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// #region meter-interface
// Meter brackets a cycle with two energy samples. Begin is called before
// the cycle body and the returned Session's End after it.
type Meter interface {
	Begin(ctx context.Context) (Session, error)
}

// Session is one in-flight measurement.
type Session interface {
	End(ctx context.Context) (joulesUsed float64, err error)
}

// #endregion meter-interface

// #region rapl
const (
	raplEnergyPath = "/sys/class/powercap/intel-rapl:0/energy_uj"
	raplRangePath  = "/sys/class/powercap/intel-rapl:0/max_energy_range_uj"
	raplTimeout    = 500 * time.Millisecond
)

// RAPLMeter reads the package energy counter exposed by the powercap
// interface. The counter increases monotonically and wraps at a published
// range; two samples bracketing the cycle give joules consumed.
type RAPLMeter struct {
	path     string
	maxRange float64 // microjoules, 0 when unknown
}

// NewRAPLMeter probes the powercap counter and returns a meter over it.
func NewRAPLMeter() (*RAPLMeter, error) {
	if _, err := os.Stat(raplEnergyPath); err != nil {
		return nil, fmt.Errorf("rapl counter unavailable: %w", err)
	}
	m := &RAPLMeter{path: raplEnergyPath}
	if data, err := os.ReadFile(raplRangePath); err == nil {
		if r, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64); err == nil {
			m.maxRange = r
		}
	}
	return m, nil
}

type raplSession struct {
	meter *RAPLMeter
	start float64
}

// Begin samples the counter.
func (m *RAPLMeter) Begin(ctx context.Context) (Session, error) {
	v, err := m.read(ctx)
	if err != nil {
		return nil, err
	}
	return &raplSession{meter: m, start: v}, nil
}

// End samples the counter again and returns joules, handling wraparound.
func (s *raplSession) End(ctx context.Context) (float64, error) {
	end, err := s.meter.read(ctx)
	if err != nil {
		return 0, err
	}
	delta := end - s.start
	if delta < 0 {
		if s.meter.maxRange > 0 {
			delta += s.meter.maxRange
		} else {
			delta = 0
		}
	}
	return delta / 1e6, nil // microjoules -> joules
}

// read samples the counter with a bounded timeout; a hung sysfs read must
// not stall the cycle.
func (m *RAPLMeter) read(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, raplTimeout)
	defer cancel()

	type result struct {
		value float64
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := os.ReadFile(m.path)
		if err != nil {
			ch <- result{err: err}
			return
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
		ch <- result{value: v, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return 0, fmt.Errorf("read energy counter: %w", r.err)
		}
		return r.value, nil
	case <-ctx.Done():
		return 0, fmt.Errorf("read energy counter: %w", ctx.Err())
	}
}

// #endregion rapl

// #region wallclock
// WallClockMeter estimates energy as elapsed wall time times an assumed
// power draw. The fallback when no hardware counter is available.
type WallClockMeter struct {
	Watts float64
}

// DefaultAssumedWatts is the fallback power-draw assumption.
const DefaultAssumedWatts = 15.0

type wallClockSession struct {
	watts float64
	start time.Time
}

// Begin records the start time.
func (m WallClockMeter) Begin(context.Context) (Session, error) {
	watts := m.Watts
	if watts <= 0 {
		watts = DefaultAssumedWatts
	}
	return &wallClockSession{watts: watts, start: time.Now()}, nil
}

// End converts elapsed time to joules.
func (s *wallClockSession) End(context.Context) (float64, error) {
	return time.Since(s.start).Seconds() * s.watts, nil
}

// #endregion wallclock

// #region fallback
// FallbackMeter tries a primary meter and degrades to the fallback when
// the primary fails, so a flaky counter never fails the governing
// decision.
type FallbackMeter struct {
	Primary  Meter
	Fallback Meter
}

// Begin starts the primary measurement, falling back on error.
func (m FallbackMeter) Begin(ctx context.Context) (Session, error) {
	s, err := m.Primary.Begin(ctx)
	if err == nil {
		return fallbackSession{primary: s, meter: m, ctxStart: time.Now()}, nil
	}
	log.Printf("[ENERGY] primary meter unavailable, using fallback: %v", err)
	return m.Fallback.Begin(ctx)
}

type fallbackSession struct {
	primary  Session
	meter    FallbackMeter
	ctxStart time.Time
}

func (s fallbackSession) End(ctx context.Context) (float64, error) {
	joules, err := s.primary.End(ctx)
	if err == nil {
		return joules, nil
	}
	log.Printf("[ENERGY] primary meter read failed mid-cycle, estimating: %v", err)
	fb, fbErr := s.meter.Fallback.Begin(ctx)
	if fbErr != nil {
		return 0, fbErr
	}
	if ws, ok := fb.(*wallClockSession); ok {
		ws.start = s.ctxStart
		return ws.End(ctx)
	}
	return fb.End(ctx)
}

// NewMeter returns the best available meter: hardware counter when
// present, wall-clock estimate otherwise.
func NewMeter() Meter {
	rapl, err := NewRAPLMeter()
	if err != nil {
		log.Printf("[ENERGY] %v; using wall-clock estimator", err)
		return WallClockMeter{}
	}
	return FallbackMeter{Primary: rapl, Fallback: WallClockMeter{}}
}

// #endregion fallback
