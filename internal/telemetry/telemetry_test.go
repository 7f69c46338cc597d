package telemetry

import (
	"sync"
	"testing"
)

func TestSnapshotReflectsWrites(t *testing.T) {
	m := New()
	m.CycleStarted()
	m.CycleCommitted()
	m.ProofProved()
	m.ProofCacheHit()
	m.ObserveRho(0.42)
	m.ObserveRhoMax(0.9)
	m.ObserveJoules(1.5)

	s := m.Snapshot()
	if s.CyclesStarted != 1 || s.CyclesCommitted != 1 {
		t.Fatalf("cycle counters wrong: %+v", s)
	}
	if s.ProofsProved != 1 || s.ProofCacheHits != 1 {
		t.Fatalf("proof counters wrong: %+v", s)
	}
	if s.LastRho != 0.42 || s.RhoMax != 0.9 || s.LastJoules != 1.5 {
		t.Fatalf("gauges wrong: %+v", s)
	}
	if s.LastCycleAt.IsZero() {
		t.Fatal("last cycle time must be set after a start")
	}
}

func TestZeroValueSnapshot(t *testing.T) {
	s := New().Snapshot()
	if s.CyclesStarted != 0 || s.LastRho != 0 {
		t.Fatalf("fresh metrics must read zero: %+v", s)
	}
	if !s.LastCycleAt.IsZero() {
		t.Fatalf("no cycle yet, time must be zero: %v", s.LastCycleAt)
	}
}

func TestConcurrentWriters(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.CycleStarted()
				m.DriftAlert()
				m.ObserveRho(0.5)
			}
		}()
	}
	wg.Wait()
	s := m.Snapshot()
	if s.CyclesStarted != 800 || s.DriftAlerts != 800 {
		t.Fatalf("concurrent increments lost: %+v", s)
	}
}
