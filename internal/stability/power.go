package stability

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrZeroVector is returned when the linearization point is degenerate.
var ErrZeroVector = errors.New("stability: zero input vector")

// #region estimate
// EstimateRho approximates the spectral radius of the Jacobian at x0 by
// power iteration over Jacobian-vector products. The start vector is drawn
// from opts.Seed, so repeated calls with the same seed reproduce identical
// trajectories. For non-square Jacobians the iteration runs over the Gram
// operator JᵀJ (one forward pass composed with one reverse pass) and the
// result is √λ of that operator.
func EstimateRho(ctx context.Context, op Operator, x0 []float64, opts Options) (float64, error) {
	if len(x0) == 0 {
		return 0, fmt.Errorf("stability: empty input vector")
	}
	if norm(x0) == 0 {
		return 0, ErrZeroVector
	}
	if opts.NIter <= 0 {
		return 0, fmt.Errorf("stability: n_iter must be positive, got %d", opts.NIter)
	}

	v := randomUnit(len(x0), opts.Seed)

	// Probe once to learn the output dimensionality.
	probe, err := op.Jvp(ctx, v)
	if err != nil {
		return 0, fmt.Errorf("stability: jvp: %w", err)
	}
	square := len(probe) == len(v)

	apply := func(u []float64) ([]float64, error) {
		w, err := op.Jvp(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("stability: jvp: %w", err)
		}
		if square {
			return w, nil
		}
		w, err = op.Vjp(ctx, w)
		if err != nil {
			return nil, fmt.Errorf("stability: vjp: %w", err)
		}
		if len(w) != len(u) {
			return nil, fmt.Errorf("stability: gram operator not square: %d != %d", len(w), len(u))
		}
		return w, nil
	}

	var lambda, prev float64
	for i := 0; i < opts.NIter; i++ {
		w, err := apply(v)
		if err != nil {
			return 0, err
		}
		// Rayleigh-quotient estimate before normalization: λ = vᵀ(J v).
		lambda = dot(v, w)

		n := norm(w)
		if n == 0 {
			// The operator annihilated the iterate; dominant eigenvalue
			// along this trajectory is zero.
			return 0, nil
		}
		for j := range w {
			w[j] /= n
		}
		v = w

		if i > 0 && math.Abs(lambda-prev) < opts.Tolerance {
			break
		}
		prev = lambda
	}

	rho := math.Abs(lambda)
	if !square {
		rho = math.Sqrt(rho)
	}
	return rho, nil
}

// #endregion estimate

// #region batch
// EstimateRhoBatch estimates each sample independently and returns the
// arithmetic mean. A single high outlier can be masked by the mean, so
// callers must still run the single-sample estimate once per cycle rather
// than relying solely on batch aggregates. Inputs beyond two dimensions
// (batch, features) are rejected at the type level; ragged batches are
// rejected here.
func EstimateRhoBatch(ctx context.Context, op Operator, batch [][]float64, opts Options) (float64, error) {
	if len(batch) == 0 {
		return 0, fmt.Errorf("stability: empty batch")
	}
	dim := len(batch[0])
	var sum float64
	for i, x0 := range batch {
		if len(x0) != dim {
			return 0, fmt.Errorf("stability: ragged batch: row %d has %d features, want %d", i, len(x0), dim)
		}
		perSample := opts
		perSample.Seed = opts.Seed + int64(i)
		rho, err := EstimateRho(ctx, op, x0, perSample)
		if err != nil {
			return 0, err
		}
		sum += rho
	}
	return sum / float64(len(batch)), nil
}

// #endregion batch

// #region helpers
// randomUnit draws a deterministic unit vector of the given dimension.
func randomUnit(dim int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	v := make([]float64, dim)
	for {
		for i := range v {
			v[i] = rng.NormFloat64()
		}
		if n := norm(v); n > 0 {
			for i := range v {
				v[i] /= n
			}
			return v
		}
	}
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func norm(v []float64) float64 {
	return math.Sqrt(dot(v, v))
}

// #endregion helpers
