package stability

import (
	"context"
	"time"
)

// #region operator
// Operator exposes a model's local Jacobian as matrix-vector products so
// the spectral radius can be estimated without materializing the Jacobian.
// Jvp is the forward-mode product J·v; Vjp is the reverse-mode product
// Jᵀ·v, needed only when the Jacobian is not square.
type Operator interface {
	Jvp(ctx context.Context, v []float64) ([]float64, error)
	Vjp(ctx context.Context, v []float64) ([]float64, error)
}

// #endregion operator

// #region sample
// Sample is one spectral-radius measurement. Produced once per cycle,
// immutable, appended to the drift window and never mutated afterwards.
type Sample struct {
	Rho       float64
	Timestamp time.Time
	CycleID   string
}

// #endregion sample

// #region options
// Options tunes one estimation call.
type Options struct {
	NIter     int     // hard iteration bound
	Tolerance float64 // early-stop threshold on |λₖ - λₖ₋₁|
	Seed      int64   // deterministic start-vector seed
}

// DefaultOptions returns the per-cycle defaults.
func DefaultOptions() Options {
	return Options{
		NIter:     8,
		Tolerance: 1e-6,
		Seed:      1,
	}
}

// #endregion options
