package ipca_test

import (
	"fmt"

	"github.com/katalvlaran/streampca/ipca"
)

// ExampleEstimator seeds an estimator from four observations and folds in
// one more sample with the default 1/n weight.
func ExampleEstimator() {
	est, err := ipca.New([][]float64{
		{2, 0},
		{-2, 0},
		{0, 1},
		{0, -1},
	}, ipca.WithSeed(42))
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	basis, _ := est.CurrentBasis(2)
	fmt.Printf("n=%d eigenvalues=[%.3f %.3f]\n", est.Count(), basis.Values[0], basis.Values[1])

	_ = est.Update([]float64{3, 0})
	basis, _ = est.CurrentBasis(2)
	fmt.Printf("n=%d eigenvalues=[%.3f %.3f]\n", est.Count(), basis.Values[0], basis.Values[1])
	// Output:
	// n=4 eigenvalues=[2.667 0.667]
	// n=5 eigenvalues=[3.933 0.533]
}
