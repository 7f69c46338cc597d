package watchdog

import (
	"log"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/raftagent/governor/internal/eventlog"
)

// DefaultInterval is the heartbeat poll period.
const DefaultInterval = 5 * time.Second

// #region watchdog
// Watchdog runs beside the cycle loop and kills the process when the loop
// stops beating. It shares no locks with the loop: the heartbeat is a
// single atomic timestamp, so a wedged cycle cannot wedge the watchdog.
type Watchdog struct {
	interval time.Duration
	lastBeat atomic.Int64 // unix nanos
	missed   int
	audit    *eventlog.Log // optional
	kill     func()

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// Option adjusts watchdog construction.
type Option func(*Watchdog)

// WithInterval overrides the poll period.
func WithInterval(d time.Duration) Option {
	return func(w *Watchdog) { w.interval = d }
}

// WithAudit records the termination decision before the kill.
func WithAudit(audit *eventlog.Log) Option {
	return func(w *Watchdog) { w.audit = audit }
}

// WithKill replaces the kill action, for tests.
func WithKill(kill func()) Option {
	return func(w *Watchdog) { w.kill = kill }
}

// New builds a watchdog. Start must be called to arm it.
func New(opts ...Option) *Watchdog {
	w := &Watchdog{
		interval: DefaultInterval,
		kill:     defaultKill,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.lastBeat.Store(time.Now().UnixNano())
	return w
}

// defaultKill delivers SIGKILL to our own process. Not SIGTERM: a loop
// wedged badly enough to miss two heartbeats cannot be trusted to run
// shutdown handlers.
func defaultKill() {
	_ = syscall.Kill(os.Getpid(), syscall.SIGKILL)
}

// #endregion watchdog

// #region beats
// Beat records liveness. Called by the cycle loop once per iteration.
func (w *Watchdog) Beat() {
	w.lastBeat.Store(time.Now().UnixNano())
}

// Start launches the poll goroutine.
func (w *Watchdog) Start() {
	go w.run()
}

// Stop disarms the watchdog and waits for the poll goroutine to exit.
// Used on orderly shutdown so a slow final flush is not mistaken for a
// hang.
func (w *Watchdog) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	<-w.done
}

func (w *Watchdog) run() {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case now := <-ticker.C:
			if w.check(now) {
				return
			}
		}
	}
}

// check returns true when the process was killed. A single missed poll is
// tolerated; two consecutive misses are a hang.
func (w *Watchdog) check(now time.Time) bool {
	last := time.Unix(0, w.lastBeat.Load())
	if now.Sub(last) < w.interval {
		w.missed = 0
		return false
	}
	w.missed++
	log.Printf("[WATCHDOG] missed heartbeat %d/2 (last beat %s ago)", w.missed, now.Sub(last).Round(time.Millisecond))
	if w.missed < 2 {
		return false
	}
	if w.audit != nil {
		if err := w.audit.Append(eventlog.Entry{
			Kind:      eventlog.KindShutdown,
			RootCause: "watchdog: cycle loop unresponsive for two poll intervals",
		}); err != nil {
			log.Printf("[WATCHDOG] audit append failed: %v", err)
		}
	}
	log.Printf("[WATCHDOG] cycle loop unresponsive, terminating process")
	w.kill()
	return true
}

// #endregion beats
