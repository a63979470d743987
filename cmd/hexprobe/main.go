// Command hexprobe builds and inspects toroidal hexagonal lattices:
// coordinates, pairwise distances, recurrent weights and Fourier encoders.
//
// Usage:
//
//	hexprobe [flags] <command>
//
// Examples:
//
//	hexprobe check
//	hexprobe --n 6 coords --limit 20
//	hexprobe --config lattice.yaml weights
//	hexprobe encoder --cells 8
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool
	flagN      int
	flagSpace  float64
	flagCenter bool

	cfg    *Config
	logger = zap.NewNop()
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hexprobe",
		Short: "Inspect toroidal hexagonal lattices and their Fourier encoders",
		Long: `hexprobe builds the 3D hexagonal-close-packed lattice on an n x n x n torus
and reports on its coordinates, distances, recurrent weights and the
Fourier encoder seeded with a bump function.

Settings come from an optional YAML file (--config) and are overridden by
the lattice flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zcfg := zap.NewProductionConfig()
			if verbose {
				zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := zcfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l

			loaded, err := Load(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("n") {
				loaded.Lattice.N = flagN
			}
			if flags.Changed("spacing") {
				loaded.Lattice.Spacing = flagSpace
			}
			if flags.Changed("centered") {
				loaded.Lattice.Centered = flagCenter
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			cfg = loaded
			logger.Debug("Configuration loaded",
				zap.String("path", configPath),
				zap.Int("n", cfg.Lattice.N),
				zap.Float64("spacing", cfg.Lattice.Spacing),
				zap.Bool("centered", cfg.Lattice.Centered))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML configuration file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.IntVar(&flagN, "n", 8, "lattice size per axis")
	pf.Float64Var(&flagSpace, "spacing", 1, "nearest-neighbour distance")
	pf.BoolVar(&flagCenter, "centered", false, "centre the lattice on the origin")

	root.AddCommand(
		newCoordsCmd(),
		newDistancesCmd(),
		newWeightsCmd(),
		newEncoderCmd(),
		newDFTCmd(),
		newCheckCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
