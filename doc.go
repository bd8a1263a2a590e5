// Package streampca is a running principal-component analysis toolkit: it
// keeps a covariance estimate up to date as rows arrive and extracts the
// dominant eigenvectors on demand, without ever holding the dataset.
//
// 🚀 What is streampca?
//
//	A small, thread-safe library plus a CLI that bring together:
//		• matrix/   : row-major Dense storage, validators, kernels, statistics
//		• eigen/    : power iteration with deflation (ExtractTop)
//		• ipca/     : incremental covariance estimator, batch PCA, projections
//		• embedplot/: labelled 2-D embedding plots (gonum/plot)
//		• cmd/streampca: stream a CSV through the estimator, report drift
//
// ✨ Why?
//
//   - O(D²) per sample, no re-materialisation of past rows
//   - Reproducible: every random start can be seeded
//   - Honest failures: iteration caps and degenerate inputs surface as errors
//
// Quick start:
//
//	est, _ := ipca.New(firstRows, ipca.WithSeed(42))
//	for _, x := range stream {
//	  _ = est.Update(x)
//	}
//	basis, _ := est.CurrentBasis(2)
//	drift, _ := est.CompareDirection(reference)
package streampca
