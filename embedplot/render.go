package embedplot

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg/draw"
)

// Normalize maps each axis of pts onto [0, 1] by min-max scaling. An axis
// with zero range maps to 0.5. pts is not modified.
func Normalize(pts [][2]float64) ([][2]float64, error) {
	if len(pts) == 0 {
		return nil, ErrNoPoints
	}
	lo := [2]float64{math.Inf(1), math.Inf(1)}
	hi := [2]float64{math.Inf(-1), math.Inf(-1)}
	for i, p := range pts {
		for a := 0; a < 2; a++ {
			if math.IsNaN(p[a]) || math.IsInf(p[a], 0) {
				return nil, fmt.Errorf("Normalize: point %d: %w", i, ErrNonFinite)
			}
			lo[a] = math.Min(lo[a], p[a])
			hi[a] = math.Max(hi[a], p[a])
		}
	}

	out := make([][2]float64, len(pts))
	for i, p := range pts {
		for a := 0; a < 2; a++ {
			if span := hi[a] - lo[a]; span > 0 {
				out[i][a] = (p[a] - lo[a]) / span
			} else {
				out[i][a] = 0.5
			}
		}
	}

	return out, nil
}

// Build assembles the plot without rendering it. labels may be nil (one
// group); otherwise it needs one entry per point.
func Build(pts [][2]float64, labels []int, opts ...Option) (*plot.Plot, error) {
	o := gatherOptions(opts...)
	if labels != nil && len(labels) != len(pts) {
		return nil, fmt.Errorf("Build: %d points, %d labels: %w", len(pts), len(labels), ErrLabelCount)
	}
	norm, err := Normalize(pts)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}

	// Stage 1: group points by label, in ascending label order.
	groups := make(map[int]plotter.XYs)
	for i, p := range norm {
		l := 0
		if labels != nil {
			l = labels[i]
		}
		groups[l] = append(groups[l], plotter.XY{X: p[0], Y: p[1]})
	}
	keys := make([]int, 0, len(groups))
	for l := range groups {
		keys = append(keys, l)
	}
	sort.Ints(keys)

	// Stage 2: one layer per label.
	p := plot.New()
	p.Title.Text = o.title
	p.HideAxes()
	p.X.Min, p.X.Max = -0.05, 1.05
	p.Y.Min, p.Y.Max = -0.05, 1.05
	for idx, l := range keys {
		c := plotutil.Color(idx)
		if o.text {
			names := make([]string, len(groups[l]))
			for i := range names {
				names[i] = strconv.Itoa(l)
			}
			lb, err := plotter.NewLabels(plotter.XYLabels{XYs: groups[l], Labels: names})
			if err != nil {
				return nil, fmt.Errorf("Build: label %d: %w", l, err)
			}
			for i := range lb.TextStyle {
				lb.TextStyle[i].Color = c
			}
			p.Add(lb)

			continue
		}
		sc, err := plotter.NewScatter(groups[l])
		if err != nil {
			return nil, fmt.Errorf("Build: label %d: %w", l, err)
		}
		sc.GlyphStyle.Color = c
		sc.GlyphStyle.Radius = o.radius
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		if labels != nil {
			p.Legend.Add(strconv.Itoa(l), sc)
		}
	}

	return p, nil
}

// Render writes the plot to w in the given format ("png", "svg", "pdf", ...).
func Render(w io.Writer, pts [][2]float64, labels []int, format string, opts ...Option) error {
	o := gatherOptions(opts...)
	p, err := Build(pts, labels, opts...)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(o.width, o.height, format)
	if err != nil {
		return fmt.Errorf("Render: %w", err)
	}
	if _, err = wt.WriteTo(w); err != nil {
		return fmt.Errorf("Render: %w", err)
	}

	return nil
}

// Save renders to path; the format follows the file extension.
func Save(path string, pts [][2]float64, labels []int, opts ...Option) error {
	o := gatherOptions(opts...)
	p, err := Build(pts, labels, opts...)
	if err != nil {
		return err
	}
	if err = p.Save(o.width, o.height, path); err != nil {
		return fmt.Errorf("Save %s: %w", filepath.Base(path), err)
	}

	return nil
}
