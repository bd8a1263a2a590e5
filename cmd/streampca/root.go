package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/streampca/eigen"
	"github.com/katalvlaran/streampca/internal/config"
	"github.com/katalvlaran/streampca/ipca"
)

// app carries the resolved configuration from the root command to its
// sub-commands.
type app struct {
	cfg config.Config
	log zerolog.Logger
}

// Execute runs the CLI until ctx is cancelled or the command returns.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var (
		a          = &app{}
		configPath string
		logLevel   string
		components int
		seed       int64
	)
	root := &cobra.Command{
		Use:           "streampca",
		Short:         "Incremental principal component analysis over CSV streams",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if flags.Changed("components") {
				cfg.Components = components
			}
			if flags.Changed("seed") {
				cfg.Seed = &seed
			}
			if err = cfg.Validate(); err != nil {
				return err
			}
			a.cfg = cfg
			a.log = log.Logger.Level(cfg.LogLevel())
			a.log.Debug().Str("config", configPath).Int("components", cfg.Components).Msg("configuration resolved")

			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML configuration file")
	pf.StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.IntVarP(&components, "components", "k", 2, "number of principal components")
	pf.Int64Var(&seed, "seed", 0, "random seed for reproducible eigenvectors")

	root.AddCommand(runCmd(a), batchCmd(a))

	return root
}

// solverOptions maps the configuration onto eigensolver options.
func (a *app) solverOptions() []eigen.Option {
	opts := []eigen.Option{eigen.WithThreshold(a.cfg.Threshold), eigen.WithMaxIter(a.cfg.MaxIter)}
	if a.cfg.Seed != nil {
		opts = append(opts, eigen.WithSeed(*a.cfg.Seed))
	}

	return opts
}

// estimatorOptions maps the configuration onto estimator options.
func (a *app) estimatorOptions() []ipca.Option {
	opts := []ipca.Option{
		ipca.WithThreshold(a.cfg.Threshold),
		ipca.WithMaxIter(a.cfg.MaxIter),
		ipca.WithLogger(a.log.With().Str("component", "ipca").Logger()),
	}
	if a.cfg.Seed != nil {
		opts = append(opts, ipca.WithSeed(*a.cfg.Seed))
	}
	if a.cfg.Gamma != nil {
		opts = append(opts, ipca.WithGamma(*a.cfg.Gamma))
	}
	if a.cfg.Centered {
		opts = append(opts, ipca.WithCenteredUpdate())
	}

	return opts
}

func checkComponents(k, dim int) error {
	if k > dim {
		return fmt.Errorf("components=%d exceeds data dimension %d: %w", k, dim, ipca.ErrInvalidComponentCount)
	}

	return nil
}
