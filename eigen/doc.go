// Package eigen extracts the leading eigenpairs of a symmetric matrix by
// power iteration with deflation.
//
// 🚀 What it does
//
//	Given a symmetric D×D matrix R (typically a covariance matrix) and a
//	component count k, ExtractTop returns the k dominant unit eigenvectors
//	as the columns of a D×k matrix, together with eigenvalue estimates:
//
//	  for i in 0..k:
//	    w  ← random unit vector
//	    repeat  wPrev ← w;  w ← normalize(Rw·w)   until |wPrev·w| > 1 − threshold
//	    W[:, i] ← w
//	    Rw ← Rw − w·(wᵀ·Rw)                       (deflation)
//	  λ_i ← ‖R·w_i‖ / ‖w_i‖                        (on the undeflated R)
//
// ✨ Properties
//   - R is never mutated; deflation runs on a private copy.
//   - Vectors have unit norm; distinct vectors are approximately orthogonal
//     (deflation is not exact under finite precision).
//   - Sign is not stabilised: the convergence test uses |wPrev·w|, so w and
//     −w are equally valid answers. Under near-tied eigenvalues the order of
//     the tied components is not stable across seeds either.
//   - Starting vectors are random. Pass WithSeed or WithRand for reproducible
//     output.
//
// ⚠️ Failure
//
//	Iteration is capped (WithMaxIter, default 10000). Exceeding the cap, or
//	reaching a zero image Rw·w = 0 (zero or rank-deficient matrices), yields a
//	*ConvergenceError matching ErrConvergenceFailure; nothing ever loops
//	forever or divides by zero.
//
// ⚙️ Usage:
//
//	basis, err := eigen.ExtractTop(cov, 2, eigen.WithSeed(42))
//	if err != nil {
//	  // ErrInvalidComponentCount, ErrConvergenceFailure, matrix.ErrAsymmetry, ...
//	}
//	coords, _ := basis.Project(sample)
//
// Complexity:
//
//   - Time:   O(k·I·D²), I = iterations per component
//   - Memory: O(D²) for the working copy
package eigen
