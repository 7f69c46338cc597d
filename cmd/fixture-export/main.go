package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/raftagent/governor/internal/config"
	"github.com/raftagent/governor/internal/eventlog"
	"github.com/raftagent/governor/internal/replay"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to governor.db")
	last := flag.Int("last", 10, "number of most recent cycles to export")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/governor.db --out path/to/fixture.json [--last N]")
		os.Exit(2)
	}

	if err := run(*dbPath, *last, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region extract

// Audit payload shapes, matching what the governor writes.
type energyPayload struct {
	Joules float64 `json:"joules_used"`
	Macs   int64   `json:"macs"`
}

type commitPayload struct {
	Rho         float64 `json:"rho"`
	DiffApplied bool    `json:"diff_applied"`
}

type breachPayload struct {
	Rho float64 `json:"rho"`
}

type configPayload struct {
	RhoMax           float64 `json:"rho_max"`
	EnergyMultiplier float64 `json:"energy_multiplier"`
}

func run(dbPath string, last int, outPath string) error {
	audit, err := eventlog.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer audit.Close()

	starts, err := audit.ByKind(eventlog.KindCycleStart, last)
	if err != nil {
		return fmt.Errorf("query cycle starts: %w", err)
	}
	if len(starts) == 0 {
		return fmt.Errorf("no cycles recorded in %s", dbPath)
	}

	// ByKind returns DESC; walk oldest first.
	var cycles []replay.FixtureCycle
	var expected []replay.FixtureExpectation
	for i := len(starts) - 1; i >= 0; i-- {
		cycle, exp, err := exportCycle(audit, starts[i].CycleID)
		if err != nil {
			return err
		}
		cycles = append(cycles, cycle)
		expected = append(expected, exp)
	}

	fixture := &replay.Fixture{
		Description: fmt.Sprintf("exported from %s: last %d cycles", dbPath, len(cycles)),
		Config:      exportConfig(audit),
		Cycles:      cycles,
		Expected:    expected,
	}
	if err := replay.WriteFixture(outPath, fixture); err != nil {
		return err
	}
	fmt.Printf("Wrote fixture to %s (%d cycles)\n", outPath, len(cycles))
	fmt.Println("Note: staged diff text is not retained in the audit log; exported cycles replay guard outcomes only.")
	return nil
}

// exportCycle rebuilds one cycle's observations and outcome from its audit
// entries.
func exportCycle(audit *eventlog.Log, cycleID string) (replay.FixtureCycle, replay.FixtureExpectation, error) {
	rows, err := audit.DB().Query(
		`SELECT kind, COALESCE(payload_json, '') FROM event_log WHERE cycle_id = ? ORDER BY id ASC`, cycleID)
	if err != nil {
		return replay.FixtureCycle{}, replay.FixtureExpectation{}, fmt.Errorf("query cycle %s: %w", cycleID, err)
	}
	defer rows.Close()

	cycle := replay.FixtureCycle{CycleID: cycleID}
	exp := replay.FixtureExpectation{CycleID: cycleID, Status: "skipped"}

	for rows.Next() {
		var kind, payload string
		if err := rows.Scan(&kind, &payload); err != nil {
			return cycle, exp, fmt.Errorf("scan cycle %s: %w", cycleID, err)
		}
		switch eventlog.Kind(kind) {
		case eventlog.KindEnergyRecord:
			var p energyPayload
			if json.Unmarshal([]byte(payload), &p) == nil {
				cycle.Joules, cycle.Macs = p.Joules, p.Macs
			}
		case eventlog.KindStabilityBreach:
			var p breachPayload
			if json.Unmarshal([]byte(payload), &p) == nil {
				cycle.Rho = p.Rho
			}
		case eventlog.KindCycleCommit:
			var p commitPayload
			if json.Unmarshal([]byte(payload), &p) == nil {
				cycle.Rho = p.Rho
				exp.DiffApplied = p.DiffApplied
			}
			exp.Status = "committed"
		case eventlog.KindRollback:
			exp.Status = "rolled_back"
		case eventlog.KindEnergyBreach:
			exp.Status = "terminated"
		}
	}
	return cycle, exp, rows.Err()
}

// exportConfig takes the most recent recorded config update, falling back
// to the charter defaults.
func exportConfig(audit *eventlog.Log) replay.FixtureConfig {
	def := config.DefaultRuntimeConfig()
	out := replay.FixtureConfig{RhoMax: def.RhoMax, EnergyMultiplier: def.EnergyMultiplier}

	updates, err := audit.ByKind(eventlog.KindConfigUpdate, 1)
	if err != nil || len(updates) == 0 {
		return out
	}
	var p configPayload
	if json.Unmarshal([]byte(updates[0].PayloadJSON), &p) == nil && p.RhoMax > 0 {
		out.RhoMax = p.RhoMax
		out.EnergyMultiplier = p.EnergyMultiplier
	}
	return out
}

// #endregion extract
