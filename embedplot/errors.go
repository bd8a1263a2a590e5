package embedplot

import "errors"

var (
	// ErrNoPoints indicates an empty embedding.
	ErrNoPoints = errors.New("embedplot: no points to draw")

	// ErrLabelCount indicates a label slice whose length differs from the point count.
	ErrLabelCount = errors.New("embedplot: one label per point required")

	// ErrNonFinite indicates a NaN or ±Inf coordinate.
	ErrNonFinite = errors.New("embedplot: NaN or Inf coordinate")
)
