package watchdog

import (
	"testing"
	"time"
)

func TestKillsAfterTwoMissedPolls(t *testing.T) {
	killed := make(chan struct{})
	w := New(
		WithInterval(20*time.Millisecond),
		WithKill(func() { close(killed) }),
	)
	w.Start()
	// Never beat.
	select {
	case <-killed:
	case <-time.After(2 * time.Second):
		t.Fatal("watchdog never fired")
	}
}

func TestBeatingKeepsProcessAlive(t *testing.T) {
	killed := make(chan struct{})
	w := New(
		WithInterval(30*time.Millisecond),
		WithKill(func() { close(killed) }),
	)
	w.Start()
	defer w.Stop()

	deadline := time.After(300 * time.Millisecond)
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-killed:
			t.Fatal("watchdog fired despite regular heartbeats")
		case <-tick.C:
			w.Beat()
		case <-deadline:
			return
		}
	}
}

func TestSingleMissIsForgiven(t *testing.T) {
	killed := make(chan struct{})
	w := New(
		WithInterval(40*time.Millisecond),
		WithKill(func() { close(killed) }),
	)
	w.Start()
	defer w.Stop()

	// Go quiet long enough for exactly one missed poll, then resume.
	time.Sleep(50 * time.Millisecond)
	w.Beat()

	stop := time.After(200 * time.Millisecond)
	tick := time.NewTicker(15 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-killed:
			t.Fatal("one missed poll must not kill")
		case <-tick.C:
			w.Beat()
		case <-stop:
			return
		}
	}
}

func TestStopDisarms(t *testing.T) {
	killed := make(chan struct{})
	w := New(
		WithInterval(20*time.Millisecond),
		WithKill(func() { close(killed) }),
	)
	w.Start()
	w.Stop()
	select {
	case <-killed:
		t.Fatal("stopped watchdog must not fire")
	case <-time.After(150 * time.Millisecond):
	}
}
