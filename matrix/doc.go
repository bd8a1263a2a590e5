// Package matrix is the dense linear-algebra substrate of streampca.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and deep Clone.
//   - Central validators (nil, square, symmetric, vector length, finiteness).
//   - Kernels with a *Dense fast-path: Sub, Mul, Transpose, Scale, MatVec, VecMat.
//   - In-place kernels used on hot paths: RankOneUpdate (A += α·x·yᵀ) and
//     BlendOuter (A ← (1−γ)·A + γ·x·xᵀ).
//   - Statistics: CenterColumns, ColumnMeans and sample Covariance (XcᵀXc/(n−1)).
//   - Vector helpers: Dot, Norm2, Normalize, Mean.
//
// Every public operation returns a sentinel from errors.go, wrapped with the
// operation name, and never panics on user input.
//
// See the examples in this package for usage patterns.
package matrix
