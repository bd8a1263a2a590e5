// Package ipca maintains a running covariance estimate over a stream of
// row vectors and extracts its principal components on demand.
//
// 🚀 What it does
//
//	An Estimator is seeded from an initial batch (column means and sample
//	covariance, ÷ N0−1) and then absorbs one sample at a time in O(D²):
//
//	  n ← n + 1
//	  γ ← WithGamma value, or 1/n
//	  m ← m + γ·(x − m)
//	  R ← R + γ·(x·xᵀ − R)
//
//	CurrentBasis(k) runs eigen.ExtractTop on a copy of R, so the stored
//	estimate is never touched by the solver. CompareDirection reports how the
//	leading eigenvector relates to a reference direction (usually the batch
//	eigenvector from PowerPCA).
//
// ✨ Update rules
//   - Default: the uncentred exponential average above. The running mean is
//     tracked but does not enter R, so on data with a non-zero mean R drifts
//     towards the second moment E[xxᵀ] rather than the covariance.
//   - WithCenteredUpdate(): exponentially weighted Welford rule
//     d = x − m;  m ← m + γ·d;  R ← (1−γ)·(R + γ·d·dᵀ).
//     With γ = 1/n this is the exact running covariance.
//
// ⚙️ Usage:
//
//	est, err := ipca.New(firstRows, ipca.WithSeed(42))
//	if err != nil { ... }
//	for _, x := range rest {
//	  if err := est.Update(x); err != nil { ... }
//	}
//	basis, err := est.CurrentBasis(2)
//
// Concurrency:
//
//	An Estimator is safe for concurrent use. Updates are serialised; an
//	extraction copies R under a read lock and solves without holding it.
//
// Complexity:
//
//   - Update:       O(D²) time, O(D) scratch
//   - CurrentBasis: O(D²) copy + O(k·I·D²) solve
package ipca
