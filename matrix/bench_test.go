// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/streampca/matrix"
)

func benchDense(b *testing.B, n int) *matrix.Dense {
	b.Helper()
	rng := rand.New(rand.NewSource(1))
	m, err := matrix.NewDense(n, n)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			_ = m.Set(i, j, rng.Float64())
		}
	}

	return m
}

func BenchmarkMatVecInto_128(b *testing.B) {
	m := benchDense(b, 128)
	x := make([]float64, 128)
	y := make([]float64, 128)
	for i := range x {
		x[i] = 1
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = matrix.MatVecInto(m, x, y)
	}
}

func BenchmarkBlendOuter_128(b *testing.B) {
	m := benchDense(b, 128)
	x := make([]float64, 128)
	for i := range x {
		x[i] = float64(i) / 128
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = matrix.BlendOuter(m, 0.01, x)
	}
}

func BenchmarkCovariance_500x32(b *testing.B) {
	rng := rand.New(rand.NewSource(2))
	X, _ := matrix.NewDense(500, 32)
	for i := 0; i < 500; i++ {
		for j := 0; j < 32; j++ {
			_ = X.Set(i, j, rng.NormFloat64())
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = matrix.Covariance(X)
	}
}
