package eventlog

import (
	"path/filepath"
	"testing"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestAppendAndRecent(t *testing.T) {
	l := openTestLog(t)

	entries := []Entry{
		{Kind: KindCycleStart, CycleID: "c1"},
		{Kind: KindStabilityBreach, CycleID: "c1", RootCause: "rho 0.95 >= rho_max 0.90"},
		{Kind: KindRollback, CycleID: "c1", RootCause: "stability breach"},
	}
	for _, e := range entries {
		if err := l.Append(e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := l.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	// Newest first.
	if got[0].Kind != KindRollback {
		t.Fatalf("expected rollback first, got %s", got[0].Kind)
	}
	if got[0].RootCause != "stability breach" {
		t.Fatalf("root cause not persisted: %q", got[0].RootCause)
	}
	if got[0].Timestamp.IsZero() {
		t.Fatal("timestamp should be defaulted on append")
	}
}

func TestByKindFilters(t *testing.T) {
	l := openTestLog(t)

	for i := 0; i < 4; i++ {
		if err := l.Append(Entry{Kind: KindProofVerdict, CycleID: "c1"}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := l.Append(Entry{Kind: KindDriftAlert, CycleID: "c1", RootCause: "mean drift 0.06 > 0.05"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	verdicts, err := l.ByKind(KindProofVerdict, 10)
	if err != nil {
		t.Fatalf("by kind: %v", err)
	}
	if len(verdicts) != 4 {
		t.Fatalf("expected 4 verdict entries, got %d", len(verdicts))
	}
	alerts, err := l.ByKind(KindDriftAlert, 10)
	if err != nil {
		t.Fatalf("by kind: %v", err)
	}
	if len(alerts) != 1 || alerts[0].RootCause == "" {
		t.Fatalf("unexpected drift alerts: %+v", alerts)
	}
}
