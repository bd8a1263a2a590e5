package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/streampca/eigen"
	"github.com/katalvlaran/streampca/internal/config"
	"github.com/katalvlaran/streampca/internal/feed"
	"github.com/katalvlaran/streampca/internal/metrics"
	"github.com/katalvlaran/streampca/ipca"
	"github.com/katalvlaran/streampca/matrix"
)

func runCmd(a *app) *cobra.Command {
	var ov runOverrides
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Stream rows through the incremental estimator and track the leading directions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ov.apply(cmd.Flags(), &a.cfg)
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			src, err := openInput(a.cfg.Input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer src.Close()

			return a.stream(cmd.Context(), src, cmd.OutOrStdout())
		},
	}
	ov.bind(cmd.Flags())

	return cmd
}

// runOverrides holds the run flags; each one wins over the configuration
// file only when set explicitly.
type runOverrides struct {
	input        string
	plotPath     string
	metricsFile  string
	gamma        float64
	centered     bool
	reportEvery  int
	initialBatch int
}

func (ov *runOverrides) bind(f *pflag.FlagSet) {
	f.StringVarP(&ov.input, "input", "i", "", "CSV input file (default stdin)")
	f.StringVar(&ov.plotPath, "plot", "", "write the 2-D embedding to this image file")
	f.StringVar(&ov.metricsFile, "metrics-file", "", "write Prometheus textfile metrics here")
	f.Float64Var(&ov.gamma, "gamma", 0, "fixed forgetting factor in (0, 1] (default 1/n)")
	f.BoolVar(&ov.centered, "centered", false, "use the mean-centred update rule")
	f.IntVar(&ov.reportEvery, "report-every", 500, "log eigenvalues and drift every N streamed rows (0 disables)")
	f.IntVar(&ov.initialBatch, "initial-batch", 100, "rows used to seed the estimator")
}

func (ov *runOverrides) apply(f *pflag.FlagSet, cfg *config.Config) {
	if f.Changed("input") {
		cfg.Input = ov.input
	}
	if f.Changed("plot") {
		cfg.Plot.Path = ov.plotPath
	}
	if f.Changed("metrics-file") {
		cfg.MetricsFile = ov.metricsFile
	}
	if f.Changed("gamma") {
		g := ov.gamma
		cfg.Gamma = &g
	}
	if f.Changed("centered") {
		cfg.Centered = ov.centered
	}
	if f.Changed("report-every") {
		cfg.ReportEvery = ov.reportEvery
	}
	if f.Changed("initial-batch") {
		cfg.InitialBatch = ov.initialBatch
	}
}

// stream seeds the estimator, computes the batch reference direction and
// feeds the remaining rows one at a time.
func (a *app) stream(ctx context.Context, src io.Reader, out io.Writer) error {
	cfg := a.cfg
	rec := metrics.New()
	reader := feed.NewReader(src, feedOptions(cfg)...)

	// Stage 1: initial batch.
	seedRows, err := reader.ReadN(cfg.InitialBatch)
	if err != nil {
		return err
	}
	if len(seedRows) < 2 {
		return fmt.Errorf("initial batch: %d rows: %w", len(seedRows), ipca.ErrInsufficientBatchSize)
	}
	est, err := ipca.New(feed.Values(seedRows), a.estimatorOptions()...)
	if err != nil {
		return err
	}
	if err = checkComponents(cfg.Components, est.Dim()); err != nil {
		return err
	}
	rec.AddSamples(len(seedRows))

	// Stage 2: reference direction from the batch alone.
	X, err := matrix.NewDenseFromRows(feed.Values(seedRows))
	if err != nil {
		return err
	}
	ref, _, err := ipca.PowerPCA(X, 1, a.solverOptions()...)
	if err != nil {
		return fmt.Errorf("reference direction: %w", err)
	}
	reference, _ := ref.Vector(0)
	a.log.Info().Int("rows", len(seedRows)).Int("dim", est.Dim()).
		Float64("lambda0", ref.Values[0]).Msg("estimator seeded")

	var kept []feed.Row
	if cfg.Plot.Path != "" {
		kept = append(kept, seedRows...)
	}

	// Stage 3: stream.
	streamed, rejected := 0, 0
	for {
		if err = ctx.Err(); err != nil {
			a.log.Warn().Int("streamed", streamed).Msg("interrupted, finishing with the rows seen so far")

			break
		}
		row, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if err = est.Update(row.Values); err != nil {
			rejected++
			rec.Rejected(err)
			a.log.Warn().Err(err).Int("record", row.Line).Msg("row rejected")

			continue
		}
		rec.AddSamples(1)
		streamed++
		if kept != nil {
			kept = append(kept, row)
		}
		if cfg.ReportEvery > 0 && streamed%cfg.ReportEvery == 0 {
			a.report(est, rec, reference)
		}
	}

	// Stage 4: final basis and outputs.
	basis, err := a.extract(est, rec, cfg.Components)
	if err != nil {
		return err
	}
	drift, err := est.CompareDirection(reference)
	if err != nil {
		return err
	}
	rec.Drift(drift)
	a.log.Info().Int("streamed", streamed).Int("rejected", rejected).Int("count", est.Count()).
		Float64("drift", drift).Msg("stream finished")

	if err = printBasis(out, basis); err != nil {
		return err
	}
	if cfg.Plot.Path != "" {
		if err = savePlot(cfg, basis, kept, est.Mean()); err != nil {
			return err
		}
		a.log.Info().Str("path", cfg.Plot.Path).Msg("embedding written")
	}
	if cfg.MetricsFile != "" {
		if err = rec.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
	}

	return nil
}

// extract runs CurrentBasis and records it.
func (a *app) extract(est *ipca.Estimator, rec *metrics.Recorder, k int) (*eigen.Basis, error) {
	start := time.Now()
	basis, err := est.CurrentBasis(k)
	rec.Extraction(basis, time.Since(start), err)

	return basis, err
}

// report logs the periodic progress line. Failures are logged, not fatal:
// a later row may restore a well-conditioned estimate.
func (a *app) report(est *ipca.Estimator, rec *metrics.Recorder, reference []float64) {
	basis, err := a.extract(est, rec, a.cfg.Components)
	if err != nil {
		a.log.Warn().Err(err).Int("count", est.Count()).Msg("extraction failed")

		return
	}
	drift, err := est.CompareDirection(reference)
	if err != nil {
		a.log.Warn().Err(err).Msg("direction comparison failed")

		return
	}
	rec.Drift(drift)
	a.log.Info().Int("count", est.Count()).Floats64("eigenvalues", basis.Values).
		Float64("drift", drift).Msg("progress")
}
