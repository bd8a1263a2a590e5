package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/streampca/internal/feed"
	"github.com/katalvlaran/streampca/ipca"
	"github.com/katalvlaran/streampca/matrix"
)

func batchCmd(a *app) *cobra.Command {
	var (
		input    string
		plotPath string
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Principal components of the whole input at once",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("input") {
				a.cfg.Input = input
			}
			if cmd.Flags().Changed("plot") {
				a.cfg.Plot.Path = plotPath
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			src, err := openInput(a.cfg.Input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer src.Close()

			rows, err := feed.NewReader(src, feedOptions(a.cfg)...).ReadAll()
			if err != nil {
				return err
			}
			if len(rows) < 2 {
				return fmt.Errorf("batch: %d rows: %w", len(rows), ipca.ErrInsufficientBatchSize)
			}
			X, err := matrix.NewDenseFromRows(feed.Values(rows))
			if err != nil {
				return err
			}
			if err = checkComponents(a.cfg.Components, X.Cols()); err != nil {
				return err
			}
			basis, means, err := ipca.PowerPCA(X, a.cfg.Components, a.solverOptions()...)
			if err != nil {
				return err
			}
			a.log.Info().Int("rows", len(rows)).Floats64("eigenvalues", basis.Values).Msg("batch PCA done")

			if err = printBasis(cmd.OutOrStdout(), basis); err != nil {
				return err
			}
			if a.cfg.Plot.Path != "" {
				return savePlot(a.cfg, basis, rows, means)
			}

			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "CSV input file (default stdin)")
	cmd.Flags().StringVar(&plotPath, "plot", "", "write the 2-D embedding to this image file")

	return cmd
}
