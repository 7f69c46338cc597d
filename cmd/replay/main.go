package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/raftagent/governor/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	os.Exit(run(*fixturePath))
}

func run(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	dir, err := os.MkdirTemp("", "governor-replay-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "temp dir: %v\n", err)
		return 2
	}
	defer os.RemoveAll(dir)

	results, err := replay.Replay(context.Background(), f, dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}

	return printComparison(f, results)
}

// #endregion main

// #region output

// printComparison outputs a per-cycle comparison table and returns the
// exit code: 0 when every cycle matched, 1 otherwise.
func printComparison(f *replay.Fixture, results []replay.Result) int {
	fmt.Printf("%-10s| %8s  %12s | %-12s| %-8s| %s\n",
		"Cycle", "Rho", "Joules", "Status", "Applied", "Match")
	fmt.Printf("%-10s+%22s-+%-12s+%-8s+%s\n",
		"----------", "----------------------", "-------------", "---------", "------")

	for _, r := range results {
		match := "OK"
		if !r.Matched {
			match = "DIFF: " + r.Reason
		}
		fmt.Printf("%-10s| %8.4f  %12.3e | %-12s| %-8v| %s\n",
			r.CycleID, r.Rho, r.JoulesUsed, r.Status, r.DiffApplied, match)
	}

	s := replay.Summarize(results)
	fmt.Printf("\nSummary: %d cycles, %d committed, %d rolled back, %d terminated, %d diverge\n",
		s.TotalCycles, s.Committed, s.RolledBack, s.Terminated, s.Divergences)
	if len(results) < len(f.Cycles) {
		fmt.Printf("(%d recorded cycles never ran: the run terminated early)\n", len(f.Cycles)-len(results))
	}

	if s.Divergences > 0 {
		return 1
	}
	return 0
}

// #endregion output
