package proofgate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"

	"golang.org/x/sync/singleflight"

	"github.com/raftagent/governor/internal/diffc"
	"github.com/raftagent/governor/internal/eventlog"
)

// #region gate-struct
// Gate submits safety obligations to the solver, interprets SAT/UNSAT, and
// consults/populates the proof cache. The dominant path is a cache hit; the
// solver is only reached on a miss, and concurrent callers for the same key
// collapse into a single solver invocation.
type Gate struct {
	cache  Cache
	solver Solver
	audit  *eventlog.Log // optional
	group  singleflight.Group
}

// NewGate wires a gate. audit may be nil when no sink is attached (replay).
func NewGate(cache Cache, solver Solver, audit *eventlog.Log) *Gate {
	return &Gate{cache: cache, solver: solver, audit: audit}
}

// #endregion gate-struct

// #region key
// CacheKey is sha256(formula):policyHash.
func CacheKey(formula, policyHash string) string {
	sum := sha256.Sum256([]byte(formula))
	return hex.EncodeToString(sum[:]) + ":" + policyHash
}

// PolicyHash hashes the active pattern set so cached verdicts are scoped to
// the policy that produced them.
func PolicyHash(patterns []diffc.Pattern) string {
	h := sha256.New()
	for _, p := range patterns {
		h.Write([]byte(p.Name))
		h.Write([]byte{0})
		h.Write([]byte(p.Regex.String()))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// #endregion key

// #region verify
// Verify returns the verdict for one compiled formula under one policy.
// Cache unavailability degrades to a miss; UNSAT means the unsafe condition
// is unreachable (Proved); SAT yields a Disproved verdict whose
// counterexample is the rendered model; UNKNOWN is Disproved, fail closed.
func (g *Gate) Verify(ctx context.Context, formula, policyHash string) (Verdict, error) {
	key := CacheKey(formula, policyHash)

	v, err, _ := g.group.Do(key, func() (interface{}, error) {
		if verdict, ok := g.lookup(ctx, key); ok {
			return verdict, nil
		}
		verdict := g.solve(ctx, formula)
		g.populate(ctx, key, verdict)
		return verdict, nil
	})
	if err != nil {
		return Verdict{}, err
	}

	verdict := v.(Verdict)
	g.logVerdict(ctx, key, policyHash, verdict)
	return verdict, nil
}

// VerifyObligation applies the structural rename check before the solver: a
// rename whose signatures differ is an automatic Disproved with a synthetic
// counterexample naming the function, no solver involved.
func (g *Gate) VerifyObligation(ctx context.Context, ob diffc.Obligation, policyHash string) (Verdict, error) {
	if len(ob.Mismatches) > 0 {
		m := ob.Mismatches[0]
		verdict := Verdict{
			Proved: false,
			Counterexample: &Counterexample{
				Assignments: map[string]string{
					"function": m.OldName,
					"old_sig":  m.OldSig.Render(m.OldName),
					"new_sig":  m.NewSig.Render(m.NewName),
				},
				Summary: fmt.Sprintf("rename %s -> %s changes signature", m.OldName, m.NewName),
			},
		}
		g.logVerdict(ctx, CacheKey(ob.Formula, policyHash), policyHash, verdict)
		return verdict, nil
	}
	return g.Verify(ctx, ob.Formula, policyHash)
}

// #endregion verify

// #region lookup
// lookup consults the cache. Any cache error is treated as a miss so an
// unreachable cache never aborts verification.
func (g *Gate) lookup(ctx context.Context, key string) (Verdict, bool) {
	val, err := g.cache.Get(ctx, key)
	if err != nil {
		log.Printf("[GATE] cache get failed, treating as miss: %v", err)
		return Verdict{}, false
	}
	switch val {
	case "1":
		return Verdict{Proved: true, Cached: true}, true
	case "0":
		verdict := Verdict{Proved: false, Cached: true}
		blob, err := g.cache.Get(ctx, key+":counterexample")
		if err != nil {
			log.Printf("[GATE] counterexample get failed: %v", err)
			return verdict, true
		}
		if blob != "" {
			var ce Counterexample
			if err := json.Unmarshal([]byte(blob), &ce); err != nil {
				// Corrupted blob degrades to "Disproved, no detail".
				log.Printf("[GATE] corrupted cached counterexample: %v", err)
			} else {
				verdict.Counterexample = &ce
			}
		}
		return verdict, true
	}
	return Verdict{}, false
}

// #endregion lookup

// #region solve
func (g *Gate) solve(ctx context.Context, formula string) Verdict {
	outcome, model, err := g.solver.Check(ctx, formula)
	if err != nil {
		log.Printf("[GATE] solver error, failing closed: %v", err)
		outcome = OutcomeUnknown
	}
	switch outcome {
	case OutcomeUnsat:
		return Verdict{Proved: true}
	case OutcomeSat:
		return Verdict{
			Proved: false,
			Counterexample: &Counterexample{
				Assignments: model,
				Summary:     summarize(model),
			},
		}
	default:
		return Verdict{
			Proved: false,
			Counterexample: &Counterexample{
				Assignments: map[string]string{},
				Summary:     "solver inconclusive (timeout or incompleteness), failing closed",
			},
		}
	}
}

// #endregion solve

// #region populate
// populate writes the verdict back, counterexample under a sibling key so a
// corrupted blob can never take the boolean outcome down with it.
func (g *Gate) populate(ctx context.Context, key string, verdict Verdict) {
	val := "0"
	if verdict.Proved {
		val = "1"
	}
	if err := g.cache.Set(ctx, key, val, CacheTTL); err != nil {
		log.Printf("[GATE] cache set failed: %v", err)
		return
	}
	if !verdict.Proved && verdict.Counterexample != nil {
		blob, err := json.Marshal(verdict.Counterexample)
		if err == nil {
			if err := g.cache.Set(ctx, key+":counterexample", string(blob), CacheTTL); err != nil {
				log.Printf("[GATE] counterexample set failed: %v", err)
			}
		}
	}
}

// #endregion populate

// #region audit
func (g *Gate) logVerdict(ctx context.Context, key, policyHash string, verdict Verdict) {
	if g.audit == nil {
		return
	}
	outcome := "proved"
	rootCause := ""
	if !verdict.Proved {
		outcome = "disproved"
		rootCause = "safety obligation satisfiable"
		if verdict.Counterexample != nil {
			rootCause = verdict.Counterexample.Summary
		}
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"key":         key,
		"policy_hash": policyHash,
		"outcome":     outcome,
		"cached":      verdict.Cached,
	})
	if err := g.audit.Append(eventlog.Entry{
		Kind:        eventlog.KindProofVerdict,
		RootCause:   rootCause,
		PayloadJSON: string(payload),
	}); err != nil {
		log.Printf("[GATE] audit append failed: %v", err)
	}
}

// #endregion audit
