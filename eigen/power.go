package eigen

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/streampca/matrix"
)

const opExtractTop = "ExtractTop"

// ExtractTop returns the k dominant eigenpairs of the symmetric matrix R.
//
// Algorithm:
//  1. Validate R (non-nil, square, symmetric within tolerance) and 1 ≤ k ≤ D.
//  2. Copy R into a working matrix Rw.
//  3. For each component: start from a random unit vector, run power
//     iteration on Rw until |wPrev·w| > 1 − threshold, store w as the next
//     column, then deflate Rw ← Rw − w·(wᵀ·Rw).
//  4. Estimate λ_i = ‖R·w_i‖/‖w_i‖ on the original, undeflated R.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, matrix.ErrAsymmetry
//   - ErrInvalidComponentCount when k ∉ [1, D]
//   - *ConvergenceError (errors.Is ErrConvergenceFailure) on cap or collapse
//
// R is never mutated.
func ExtractTop(R matrix.Matrix, k int, opts ...Option) (*Basis, error) {
	o := gatherOptions(opts...)

	// Stage 1: validate.
	if err := matrix.ValidateSquare(R); err != nil {
		return nil, fmt.Errorf("%s: %w", opExtractTop, err)
	}
	n := R.Rows()
	if k < 1 || k > n {
		return nil, fmt.Errorf("%s: k=%d with D=%d: %w", opExtractTop, k, n, ErrInvalidComponentCount)
	}
	orig, err := matrix.ToDense(R) // read-only below; may alias R
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opExtractTop, err)
	}
	scale, err := matrix.MaxAbs(orig)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opExtractTop, err)
	}
	if err = matrix.ValidateSymmetric(orig, o.symTol*math.Max(1, scale)); err != nil {
		return nil, fmt.Errorf("%s: %w", opExtractTop, err)
	}

	// Stage 2: working copy and result buffers.
	work := orig.CloneDense()
	vectors, err := matrix.NewDense(n, k)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opExtractTop, err)
	}
	basis := &Basis{
		Vectors:    vectors,
		Values:     make([]float64, k),
		Iterations: make([]int, k),
	}
	w := make([]float64, n)
	next := make([]float64, n)

	// Stage 3: power iteration + deflation per component.
	for i := 0; i < k; i++ {
		randomUnit(o.rng, w)
		iters, err := powerIterate(work, w, next, o)
		if err != nil {
			var ce *ConvergenceError
			if errors.As(err, &ce) {
				ce.Component = i
			}
			return nil, fmt.Errorf("%s: %w", opExtractTop, err)
		}
		if err = vectors.SetCol(i, w); err != nil {
			return nil, fmt.Errorf("%s: %w", opExtractTop, err)
		}
		basis.Iterations[i] = iters

		// The last component needs no deflation.
		if i < k-1 {
			if err = deflate(work, w); err != nil {
				return nil, fmt.Errorf("%s: %w", opExtractTop, err)
			}
		}
	}

	// Stage 4: eigenvalues from the undeflated matrix.
	for i := 0; i < k; i++ {
		col, _ := vectors.Col(i) // i < k by construction
		img, err := matrix.MatVec(orig, col)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opExtractTop, err)
		}
		basis.Values[i] = matrix.Norm2(img) / matrix.Norm2(col)
	}

	return basis, nil
}

// randomUnit fills w with a random unit vector (standard normal entries).
// A zero draw is practically impossible but is redrawn rather than divided by.
func randomUnit(rng *rand.Rand, w []float64) {
	for {
		for i := range w {
			w[i] = rng.NormFloat64()
		}
		if _, err := matrix.NormalizeInPlace(w); err == nil {
			return
		}
	}
}

// powerIterate runs w ← normalize(work·w) until two successive iterates have
// |correlation| > 1 − threshold. On success w holds the converged vector.
// next is scratch space of the same length.
func powerIterate(work *matrix.Dense, w, next []float64, o Options) (int, error) {
	var corr float64
	for it := 1; it <= o.maxIter; it++ {
		if err := matrix.MatVecInto(work, w, next); err != nil {
			return it, err
		}
		if _, err := matrix.NormalizeInPlace(next); err != nil {
			return it, &ConvergenceError{Iterations: it, Degenerate: true, Cause: err}
		}
		corr, _ = matrix.Dot(w, next) // equal lengths
		copy(w, next)
		if converged(corr, o.threshold) {
			return it, nil
		}
	}

	return o.maxIter, &ConvergenceError{Iterations: o.maxIter, Correlation: math.Abs(corr)}
}

// converged reports whether two unit vectors with inner product corr point
// along the same line. The absolute value accepts a sign flip.
func converged(corr, threshold float64) bool {
	return math.Abs(corr) > 1-threshold
}

// deflate removes the action of work along w: work ← work − w·(wᵀ·work).
func deflate(work *matrix.Dense, w []float64) error {
	u, err := matrix.VecMat(w, work)
	if err != nil {
		return err
	}

	return matrix.RankOneUpdate(work, -1, w, u)
}
