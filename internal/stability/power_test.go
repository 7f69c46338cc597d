package stability

import (
	"context"
	"errors"
	"math"
	"testing"
)

// #region test-operators
// matrixOp applies an explicit matrix, rows x cols.
type matrixOp struct {
	m [][]float64
}

func (o matrixOp) Jvp(_ context.Context, v []float64) ([]float64, error) {
	out := make([]float64, len(o.m))
	for i, row := range o.m {
		for j, a := range row {
			out[i] += a * v[j]
		}
	}
	return out, nil
}

func (o matrixOp) Vjp(_ context.Context, v []float64) ([]float64, error) {
	cols := len(o.m[0])
	out := make([]float64, cols)
	for i, row := range o.m {
		for j, a := range row {
			out[j] += a * v[i]
		}
	}
	return out, nil
}

// #endregion test-operators

func TestEstimateRhoConvergesToDominantEigenvalue(t *testing.T) {
	// Diagonal map: eigenvalues 0.5 and 0.9.
	op := matrixOp{m: [][]float64{{0.5, 0}, {0, 0.9}}}
	opts := Options{NIter: 50, Tolerance: 1e-9, Seed: 7}

	rho, err := EstimateRho(context.Background(), op, []float64{1, 1}, opts)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if math.Abs(rho-0.9) > 1e-6 {
		t.Fatalf("rho = %v, want 0.9", rho)
	}
}

func TestEstimateRhoNegativeDominantEigenvalue(t *testing.T) {
	// Dominant eigenvalue -1.2: the magnitude is what matters.
	op := matrixOp{m: [][]float64{{-1.2, 0}, {0, 0.3}}}
	opts := Options{NIter: 60, Tolerance: 1e-10, Seed: 3}

	rho, err := EstimateRho(context.Background(), op, []float64{1, 1}, opts)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if math.Abs(rho-1.2) > 1e-6 {
		t.Fatalf("rho = %v, want 1.2", rho)
	}
}

func TestEstimateRhoDeterministicPerSeed(t *testing.T) {
	op := matrixOp{m: [][]float64{{0.4, 0.2}, {0.1, 0.3}}}
	opts := Options{NIter: 5, Tolerance: 1e-12, Seed: 42}

	a, err := EstimateRho(context.Background(), op, []float64{1, 1}, opts)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	b, err := EstimateRho(context.Background(), op, []float64{1, 1}, opts)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if a != b {
		t.Fatalf("same seed must reproduce the trajectory: %v != %v", a, b)
	}
}

func TestEstimateRhoNonSquareUsesGramOperator(t *testing.T) {
	// 3x2 Jacobian: singular values are the column norms {1, 2} here.
	op := matrixOp{m: [][]float64{{1, 0}, {0, 2}, {0, 0}}}
	opts := Options{NIter: 60, Tolerance: 1e-10, Seed: 11}

	rho, err := EstimateRho(context.Background(), op, []float64{1, 1}, opts)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	// Dominant singular value of J = sqrt of dominant eigenvalue of JᵀJ.
	if math.Abs(rho-2.0) > 1e-5 {
		t.Fatalf("rho = %v, want 2.0", rho)
	}
}

func TestEstimateRhoRejectsZeroVector(t *testing.T) {
	op := matrixOp{m: [][]float64{{0.9, 0}, {0, 0.5}}}
	_, err := EstimateRho(context.Background(), op, []float64{0, 0}, DefaultOptions())
	if !errors.Is(err, ErrZeroVector) {
		t.Fatalf("expected ErrZeroVector, got %v", err)
	}
	if _, err := EstimateRho(context.Background(), op, nil, DefaultOptions()); err == nil {
		t.Fatal("empty input must be rejected")
	}
}

func TestEstimateRhoNilpotentOperatorReturnsZero(t *testing.T) {
	op := matrixOp{m: [][]float64{{0, 0}, {0, 0}}}
	rho, err := EstimateRho(context.Background(), op, []float64{1, 1}, DefaultOptions())
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if rho != 0 {
		t.Fatalf("zero map must estimate rho 0, got %v", rho)
	}
}

func TestEstimateRhoBatchMean(t *testing.T) {
	op := matrixOp{m: [][]float64{{0.5, 0}, {0, 0.5}}}
	opts := Options{NIter: 30, Tolerance: 1e-10, Seed: 1}

	rho, err := EstimateRhoBatch(context.Background(), op, [][]float64{{1, 0}, {0, 1}, {1, 1}}, opts)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	// Scalar map: every sample estimates exactly 0.5, so the mean does too.
	if math.Abs(rho-0.5) > 1e-6 {
		t.Fatalf("batch mean = %v, want 0.5", rho)
	}
}

func TestEstimateRhoBatchRejectsRaggedInput(t *testing.T) {
	op := matrixOp{m: [][]float64{{0.5, 0}, {0, 0.5}}}
	if _, err := EstimateRhoBatch(context.Background(), op, [][]float64{{1, 0}, {1}}, DefaultOptions()); err == nil {
		t.Fatal("ragged batch must be rejected")
	}
	if _, err := EstimateRhoBatch(context.Background(), op, nil, DefaultOptions()); err == nil {
		t.Fatal("empty batch must be rejected")
	}
}
