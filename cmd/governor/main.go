package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/raftagent/governor/internal/checkpoint"
	"github.com/raftagent/governor/internal/config"
	"github.com/raftagent/governor/internal/diffc"
	"github.com/raftagent/governor/internal/drift"
	"github.com/raftagent/governor/internal/energy"
	"github.com/raftagent/governor/internal/eventlog"
	"github.com/raftagent/governor/internal/governor"
	"github.com/raftagent/governor/internal/model"
	"github.com/raftagent/governor/internal/proofgate"
	"github.com/raftagent/governor/internal/telemetry"
	"github.com/raftagent/governor/internal/watchdog"
)

// Exit codes: 0 orderly halt, 3 energy apoptosis, 4 unrecoverable loop
// error. Init failures exit 1 via log.Fatalf.
const (
	exitOK         = 0
	exitApoptosis  = 3
	exitLoopFailed = 4
)

// #region main
func main() {
	dbPath := envOr("GOVERNOR_DB", "governor.db")
	cfgPath := envOr("GOVERNOR_CONFIG", "governor.yaml")
	modelAddr := envOr("MODEL_ADDR", "localhost:50051")
	redisAddr := os.Getenv("REDIS_ADDR")
	diffDir := envOr("GOVERNOR_DIFF_DIR", "staged")
	interval := envDurationOr("CYCLE_INTERVAL", 5*time.Second)
	probeDim := envIntOr("MODEL_DIM", 8)

	audit, err := eventlog.Open(dbPath)
	if err != nil {
		log.Fatalf("open audit log: %v", err)
	}
	defer audit.Close()

	cps, err := checkpoint.NewStoreShared(audit.DB())
	if err != nil {
		log.Fatalf("open checkpoint store: %v", err)
	}
	if _, err := cps.Current(); err != nil {
		if !errors.Is(err, checkpoint.ErrNoActive) {
			log.Fatalf("read active checkpoint: %v", err)
		}
		log.Println("[MAIN] no active checkpoint, creating genesis")
		if _, err := cps.CreateInitial([]byte("genesis")); err != nil {
			log.Fatalf("create genesis checkpoint: %v", err)
		}
	}

	cfgStore, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cur := cfgStore.Current().Config
	log.Printf("[MAIN] rho_max=%.3f energy_multiplier=%.2f", cur.RhoMax, cur.EnergyMultiplier)

	compiler, err := buildCompiler()
	if err != nil {
		log.Fatalf("build diff compiler: %v", err)
	}

	gate := proofgate.NewGate(buildCache(redisAddr), buildSolver(), audit)

	probe := make([]float64, probeDim)
	probe[0] = 1
	mdl, err := model.NewClient(modelAddr, probe)
	if err != nil {
		log.Fatalf("connect to model service at %s: %v", modelAddr, err)
	}
	defer mdl.Close()

	mon, err := drift.NewMonitor(drift.DefaultConfig())
	if err != nil {
		log.Fatalf("drift monitor: %v", err)
	}

	dog := watchdog.New(watchdog.WithAudit(audit))
	dog.Start()

	g, err := governor.New(governor.Deps{
		Config:      cfgStore,
		Audit:       audit,
		Checkpoints: cps,
		Compiler:    compiler,
		Gate:        gate,
		Model:       mdl,
		Meter:       energy.NewMeter(),
		Guard:       energy.NewGuard(cfgStore, audit),
		Drift:       mon,
		Metrics:     telemetry.New(),
		Beat:        dog.Beat,
	})
	if err != nil {
		log.Fatalf("wire governor: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	handlePause(g)

	log.Printf("[MAIN] governing: db=%s model=%s interval=%s diffs=%s", dbPath, modelAddr, interval, diffDir)
	res, err := g.Loop(ctx, interval, &spoolSource{dir: diffDir, checkpoints: cps, probe: probe})
	dog.Stop()

	switch {
	case res.Status == governor.StatusTerminated:
		log.Printf("[MAIN] apoptosis: %s", res.RootCause)
		os.Exit(exitApoptosis)
	case res.Status == governor.StatusHalted:
		if err := audit.Append(eventlog.Entry{Kind: eventlog.KindShutdown, RootCause: res.RootCause}); err != nil {
			log.Printf("[MAIN] audit append failed: %v", err)
		}
		log.Printf("[MAIN] halted: %s", res.RootCause)
		os.Exit(exitOK)
	case err != nil:
		log.Printf("[MAIN] loop failed: %v", err)
		os.Exit(exitLoopFailed)
	}
}

// #endregion main

// #region wiring
// buildCompiler merges operator policy patterns from GOVERNOR_POLICY (one
// regex per line) into the built-in forbidden set. Policy can only add
// patterns, never remove.
func buildCompiler() (*diffc.Compiler, error) {
	path := os.Getenv("GOVERNOR_POLICY")
	if path == "" {
		return diffc.NewCompiler(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy %s: %w", path, err)
	}
	var policy []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			policy = append(policy, line)
		}
	}
	return diffc.NewCompilerWithPolicy(policy)
}

func buildCache(redisAddr string) proofgate.Cache {
	if redisAddr == "" {
		log.Println("[MAIN] REDIS_ADDR unset, proof cache is process-local")
		return proofgate.NewMemoryCache()
	}
	return proofgate.NewRedisCache(redisAddr)
}

func buildSolver() proofgate.Solver {
	z3 := proofgate.NewZ3Solver(envOr("Z3_BIN", "z3"))
	if z3.Available() {
		return z3
	}
	log.Println("[MAIN] z3 not found, using native fragment solver")
	return proofgate.NativeSolver{}
}

// handlePause toggles the pause flag on SIGUSR1.
func handlePause(g *governor.Governor) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR1)
	go func() {
		for range ch {
			next := !g.Paused()
			g.Pause(next)
			log.Printf("[MAIN] pause=%v", next)
		}
	}()
}

// #endregion wiring

// #region source
// spoolSource feeds cycles from a diff spool directory: the oldest staged
// .diff file is consumed per cycle and renamed .done once picked up. The
// snapshot carried into each commit is the active checkpoint's payload.
type spoolSource struct {
	dir         string
	checkpoints *checkpoint.Store
	probe       []float64
}

func (s *spoolSource) Next(context.Context) (governor.CycleInput, error) {
	cp, err := s.checkpoints.Current()
	if err != nil {
		return governor.CycleInput{}, err
	}
	in := governor.CycleInput{Probe: s.probe, Snapshot: cp.Payload}

	diff, path, err := s.popDiff()
	if err != nil {
		log.Printf("[MAIN] diff spool: %v", err)
		return in, nil
	}
	if diff != "" {
		log.Printf("[MAIN] staged diff: %s", filepath.Base(path))
		in.Diff = diff
	}
	return in, nil
}

func (s *spoolSource) popDiff() (string, string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.diff"))
	if err != nil || len(matches) == 0 {
		return "", "", err
	}
	sort.Strings(matches)
	path := matches[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	if err := os.Rename(path, path+".done"); err != nil {
		return "", "", err
	}
	return string(data), path, nil
}

// #endregion source

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return d
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Fatalf("%s must be a positive integer, got %q", key, v)
	}
	return n
}

// #endregion helpers
