package ipca

import (
	"fmt"

	"github.com/katalvlaran/streampca/eigen"
	"github.com/katalvlaran/streampca/matrix"
)

const opEmbed2D = "Embed2D"

// Embed2D projects every row onto the first two basis vectors after
// subtracting center (nil means no centring). The result feeds a scatter
// plot of the data in principal-component coordinates.
//
// Errors: ErrInvalidComponentCount (basis with fewer than two components),
// ErrDimensionMismatch (row or center length differs from basis.Dim()),
// matrix.ErrNilMatrix (nil basis).
func Embed2D(basis *eigen.Basis, rows [][]float64, center []float64) ([][2]float64, error) {
	if basis == nil || basis.Vectors == nil {
		return nil, fmt.Errorf("%s: %w", opEmbed2D, matrix.ErrNilMatrix)
	}
	if basis.Len() < 2 {
		return nil, fmt.Errorf("%s: basis has %d components: %w", opEmbed2D, basis.Len(), ErrInvalidComponentCount)
	}
	d := basis.Dim()
	if center != nil {
		if err := matrix.ValidateVecLen(center, d); err != nil {
			return nil, fmt.Errorf("%s: center: %w", opEmbed2D, err)
		}
	}
	w0, _ := basis.Vector(0)
	w1, _ := basis.Vector(1)

	out := make([][2]float64, len(rows))
	var p0, p1, v float64
	for r, x := range rows {
		if len(x) != d {
			return nil, fmt.Errorf("%s: row %d has %d values, want %d: %w", opEmbed2D, r, len(x), d, ErrDimensionMismatch)
		}
		p0, p1 = 0, 0
		for i := range x {
			v = x[i]
			if center != nil {
				v -= center[i]
			}
			p0 += v * w0[i]
			p1 += v * w1[i]
		}
		out[r] = [2]float64{p0, p1}
	}

	return out, nil
}
