package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/streampca/eigen"
	"github.com/katalvlaran/streampca/embedplot"
	"github.com/katalvlaran/streampca/internal/config"
	"github.com/katalvlaran/streampca/internal/feed"
	"github.com/katalvlaran/streampca/ipca"
)

// openInput returns the configured input; "" and "-" mean stdin.
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}

	return f, nil
}

func feedOptions(cfg config.Config) []feed.Option {
	if cfg.Labels {
		return []feed.Option{feed.WithLabels()}
	}

	return nil
}

// printBasis writes one line per component: index, eigenvalue, vector.
func printBasis(w io.Writer, b *eigen.Basis) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "component\teigenvalue\tvector")
	for i := 0; i < b.Len(); i++ {
		v, err := b.Vector(i)
		if err != nil {
			return err
		}
		parts := make([]string, len(v))
		for j, x := range v {
			parts[j] = fmt.Sprintf("%+.6f", x)
		}
		fmt.Fprintf(tw, "%d\t%.6g\t[%s]\n", i, b.Values[i], strings.Join(parts, " "))
	}

	return tw.Flush()
}

// savePlot projects rows onto the first two components and writes the image.
func savePlot(cfg config.Config, basis *eigen.Basis, rows []feed.Row, center []float64) error {
	pts, err := ipca.Embed2D(basis, feed.Values(rows), center)
	if err != nil {
		return err
	}
	var labels []int
	if cfg.Labels {
		labels = feed.Labels(rows)
	}

	return embedplot.Save(cfg.Plot.Path, pts, labels,
		embedplot.WithTitle(cfg.Plot.Title),
		embedplot.WithSize(vg.Length(cfg.Plot.WidthIn)*vg.Inch, vg.Length(cfg.Plot.HeightIn)*vg.Inch),
	)
}
