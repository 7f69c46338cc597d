package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/raftagent/governor/internal/checkpoint"
	"github.com/raftagent/governor/internal/diffc"
	"github.com/raftagent/governor/internal/eventlog"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to governor.db")
	last := flag.Int("last", 20, "show N most recent entries")
	kind := flag.String("kind", "", "filter audit entries to one kind (e.g. energy_breach)")
	chain := flag.Bool("chain", false, "show the checkpoint chain instead of the audit log")
	diffPath := flag.String("diff", "", "analyze a staged diff file instead of reading a db")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *diffPath != "" {
		if err := runDiffMode(*diffPath, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/governor.db [--last N] [--kind K] [--chain] [--json]")
		fmt.Fprintln(os.Stderr, "       inspect --diff path/to/staged.diff [--json]")
		os.Exit(2)
	}

	audit, err := eventlog.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer audit.Close()

	if *chain {
		err = runChainMode(audit, *last, *jsonOut)
	} else {
		err = runAuditMode(audit, *kind, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region audit-mode

type auditRow struct {
	ID        int64  `json:"id"`
	Time      string `json:"time"`
	Kind      string `json:"kind"`
	CycleID   string `json:"cycle_id,omitempty"`
	RootCause string `json:"root_cause,omitempty"`
	Payload   string `json:"payload,omitempty"`
}

func runAuditMode(audit *eventlog.Log, kind string, last int, jsonOut bool) error {
	var entries []eventlog.Entry
	var err error
	if kind != "" {
		entries, err = audit.ByKind(eventlog.Kind(kind), last)
	} else {
		entries, err = audit.Recent(last)
	}
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "no entries found")
		return nil
	}

	// Log returns DESC, reverse for chronological display.
	rows := make([]auditRow, len(entries))
	for i, e := range entries {
		rows[len(entries)-1-i] = auditRow{
			ID:        e.ID,
			Time:      e.Timestamp.Format("2006-01-02T15:04:05Z"),
			Kind:      string(e.Kind),
			CycleID:   e.CycleID,
			RootCause: e.RootCause,
			Payload:   e.PayloadJSON,
		}
	}

	if jsonOut {
		return printJSON(rows)
	}
	fmt.Printf("%-6s  %-20s  %-18s  %-10s  %s\n", "ID", "Time", "Kind", "Cycle", "Root Cause")
	for _, r := range rows {
		fmt.Printf("%-6d  %-20s  %-18s  %-10s  %s\n",
			r.ID, r.Time, r.Kind, shortID(r.CycleID), r.RootCause)
	}
	return nil
}

// #endregion audit-mode

// #region chain-mode

type chainRow struct {
	CheckpointID string `json:"checkpoint_id"`
	ParentID     string `json:"parent_id,omitempty"`
	CycleID      string `json:"cycle_id,omitempty"`
	CreatedAt    string `json:"created_at"`
	Archived     bool   `json:"archived"`
	PayloadBytes int    `json:"payload_bytes"`
}

func runChainMode(audit *eventlog.Log, last int, jsonOut bool) error {
	store, err := checkpoint.NewStoreShared(audit.DB())
	if err != nil {
		return err
	}
	chain, err := store.Chain(last)
	if err != nil {
		return err
	}

	rows := make([]chainRow, len(chain))
	for i, cp := range chain {
		rows[i] = chainRow{
			CheckpointID: cp.ID,
			ParentID:     cp.ParentID,
			CycleID:      cp.CycleID,
			CreatedAt:    cp.CreatedAt.Format("2006-01-02T15:04:05Z"),
			Archived:     cp.Archived,
			PayloadBytes: len(cp.Payload),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}
	fmt.Printf("%-12s  %-12s  %-10s  %-20s  %8s  %s\n",
		"Checkpoint", "Parent", "Cycle", "Created", "Bytes", "State")
	for i, r := range rows {
		state := "active"
		if i > 0 {
			state = "archived"
		}
		fmt.Printf("%-12s  %-12s  %-10s  %-20s  %8d  %s\n",
			shortID(r.CheckpointID), shortID(r.ParentID), shortID(r.CycleID),
			r.CreatedAt, r.PayloadBytes, state)
	}
	return nil
}

// #endregion chain-mode

// #region diff-mode

// runDiffMode summarizes a staged diff the way the governor will see it:
// files touched, forbidden-pattern hits, renames, and the heuristic risk
// score. It does not invoke the solver.
func runDiffMode(path string, jsonOut bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read diff: %w", err)
	}
	ctx := diffc.NewCompiler().Analyze(string(data))

	if jsonOut {
		return printJSON(ctx)
	}
	fmt.Printf("Files:      %d\n", ctx.FileCount)
	fmt.Printf("Added:      %d\n", ctx.AddedLines)
	fmt.Printf("Removed:    %d\n", ctx.RemovedLines)
	fmt.Printf("Risk score: %.2f\n", ctx.RiskScore)
	if len(ctx.Violations) > 0 {
		fmt.Println("\nForbidden-pattern hits:")
		for _, v := range ctx.Violations {
			fmt.Printf("  %-12s %s:%d  %s\n", v.Pattern, v.File, v.Line, v.Token)
		}
	}
	if len(ctx.Renames) > 0 {
		fmt.Println("\nRenames:")
		for oldName, newName := range ctx.Renames {
			fmt.Printf("  %s -> %s\n", oldName, newName)
		}
	}
	return nil
}

// #endregion diff-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
