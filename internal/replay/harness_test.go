package replay

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/raftagent/governor/internal/energy"
)

func quietJoules(macs int64) float64 {
	return float64(macs) * energy.EnergyPerMAC * 0.5
}

func testFixture() *Fixture {
	macs := int64(1_000_000_000)
	return &Fixture{
		Description: "two commits, one stability rollback, one termination",
		Config:      FixtureConfig{RhoMax: 0.9, EnergyMultiplier: 2.0},
		Cycles: []FixtureCycle{
			{CycleID: "c1", Rho: 0.5, Joules: quietJoules(macs), Macs: macs},
			{CycleID: "c2", Rho: 0.6, Joules: quietJoules(macs), Macs: macs},
			{CycleID: "c3", Rho: 1.2, Joules: quietJoules(macs), Macs: macs},
			{CycleID: "c4", Rho: 0.5, Joules: 10.0, Macs: macs},
			{CycleID: "c5", Rho: 0.5, Joules: quietJoules(macs), Macs: macs},
		},
		Expected: []FixtureExpectation{
			{CycleID: "c1", Status: "committed"},
			{CycleID: "c2", Status: "committed"},
			{CycleID: "c3", Status: "rolled_back"},
			{CycleID: "c4", Status: "terminated"},
		},
	}
}

func TestReplayReproducesRecordedOutcomes(t *testing.T) {
	results, err := Replay(context.Background(), testFixture(), t.TempDir())
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	// c5 is never reached: termination ends the run.
	if len(results) != 4 {
		t.Fatalf("want 4 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Matched {
			t.Fatalf("cycle %s diverged: %s (status %s)", r.CycleID, r.Reason, r.Status)
		}
	}
	s := Summarize(results)
	if s.Committed != 2 || s.RolledBack != 1 || s.Terminated != 1 || s.Divergences != 0 {
		t.Fatalf("summary wrong: %+v", s)
	}
}

func TestReplayFlagsDivergence(t *testing.T) {
	f := testFixture()
	f.Expected[2].Status = "committed" // lie about the rollback
	results, err := Replay(context.Background(), f, t.TempDir())
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	s := Summarize(results)
	if s.Divergences != 1 {
		t.Fatalf("want 1 divergence, got %+v", s)
	}
	if results[2].Matched || results[2].Reason == "" {
		t.Fatalf("c3 must carry the divergence detail: %+v", results[2])
	}
}

func TestReplayVerifiesStagedDiffs(t *testing.T) {
	macs := int64(1_000_000_000)
	f := &Fixture{
		Description: "proved diff applies, forbidden diff is rejected",
		Config:      FixtureConfig{RhoMax: 0.9, EnergyMultiplier: 2.0},
		Cycles: []FixtureCycle{
			{CycleID: "c1", Rho: 0.5, Joules: quietJoules(macs), Macs: macs, Diff: "--- a/agent/planner.py\n+++ b/agent/planner.py\n@@ -1,3 +1,3 @@\n def plan(goal):\n-    return naive_search(goal)\n+    return guided_search(goal)\n"},
			{CycleID: "c2", Rho: 0.5, Joules: quietJoules(macs), Macs: macs, Diff: "--- a/agent/planner.py\n+++ b/agent/planner.py\n@@ -1,3 +1,3 @@\n def plan(goal):\n-    return naive_search(goal)\n+    return eval(goal)\n"},
		},
		Expected: []FixtureExpectation{
			{CycleID: "c1", Status: "committed", DiffApplied: true},
			{CycleID: "c2", Status: "committed", DiffApplied: false},
		},
	}
	results, err := Replay(context.Background(), f, t.TempDir())
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	for _, r := range results {
		if !r.Matched {
			t.Fatalf("cycle %s diverged: %s", r.CycleID, r.Reason)
		}
	}
}

func TestFixtureRoundTrip(t *testing.T) {
	f := testFixture()
	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := WriteFixture(path, f); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Cycles) != len(f.Cycles) || got.Config.RhoMax != f.Config.RhoMax {
		t.Fatalf("round trip lost data: %+v", got)
	}
}

func TestLoadFixtureRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := WriteFixture(path, &Fixture{Description: "empty"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFixture(path); err == nil {
		t.Fatal("fixture with no cycles must be rejected")
	}
}
