package eigen

import (
	"fmt"

	"github.com/katalvlaran/streampca/matrix"
)

// Basis is an ordered set of eigenpairs: column i of Vectors pairs with
// Values[i]. It is produced fresh by every extraction and owned by the caller.
type Basis struct {
	Vectors    *matrix.Dense // D×k, unit-norm columns
	Values     []float64     // k eigenvalue estimates, ‖R·w_i‖/‖w_i‖
	Iterations []int         // power-iteration steps spent on each component
}

// Len returns the number of components k.
func (b *Basis) Len() int { return len(b.Values) }

// Dim returns the vector dimension D.
func (b *Basis) Dim() int { return b.Vectors.Rows() }

// Value returns the i-th eigenvalue estimate.
func (b *Basis) Value(i int) (float64, error) {
	if i < 0 || i >= len(b.Values) {
		return 0, fmt.Errorf("Basis.Value(%d): %w", i, matrix.ErrOutOfRange)
	}

	return b.Values[i], nil
}

// Vector returns a copy of the i-th eigenvector.
func (b *Basis) Vector(i int) ([]float64, error) {
	return b.Vectors.Col(i)
}

// Project returns the coordinates Wᵀ·x of x in this basis (length k).
// Errors: matrix.ErrDimensionMismatch when len(x) != Dim().
func (b *Basis) Project(x []float64) ([]float64, error) {
	coords, err := matrix.VecMat(x, b.Vectors)
	if err != nil {
		return nil, fmt.Errorf("Basis.Project: %w", err)
	}

	return coords, nil
}
