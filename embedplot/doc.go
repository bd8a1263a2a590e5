// Package embedplot draws 2-D embeddings (points in the plane of the first
// two principal components) as labelled scatter plots.
//
// Each axis is min-max normalised to [0, 1] (a constant axis maps to 0.5),
// every distinct label gets its own colour from plotutil's palette, and the
// axes are hidden since the coordinates carry no units after normalisation.
//
// Usage:
//
//	pts, _ := ipca.Embed2D(basis, rows, mean)
//	err := embedplot.Save("embedding.png", pts, labels, embedplot.WithTitle("PCA"))
package embedplot
