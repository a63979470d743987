package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-lattice/lattice/abelian"
	"github.com/cwbudde/algo-lattice/lattice/fourier"
	"github.com/cwbudde/algo-lattice/lattice/hex"
	"github.com/cwbudde/algo-lattice/lattice/ndarray"
)

var errCheckFailed = errors.New("hexprobe: coordinate check failed")

func latticeOptions(c *Config) []hex.Option {
	opts := []hex.Option{hex.WithSpacing(c.Lattice.Spacing)}
	if c.Lattice.Centered {
		opts = append(opts, hex.WithCentered())
	}
	return opts
}

func newCoordsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "coords",
		Short: "Print lattice cell coordinates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCoords(cmd.OutOrStdout(), cfg, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of cells to print (0 = all)")
	return cmd
}

func runCoords(w io.Writer, c *Config, limit int) error {
	n := c.Lattice.N
	coords, err := hex.Coordinates(n, latticeOptions(c)...)
	if err != nil {
		return err
	}
	cells := n * n * n
	if limit <= 0 || limit > cells {
		limit = cells
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "i\tj\tk\tu\tv\tw\tx\ty\tz\n")
	fmt.Fprintf(tw, "-\t-\t-\t-\t-\t-\t-\t-\t-\n")
	for cell := 0; cell < limit; cell++ {
		i, j, k := cell/(n*n), (cell/n)%n, cell%n
		u, v, wi := hex.UnwrapIndex(i, j, k, n)
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%.4f\t%.4f\t%.4f\n",
			i, j, k, u, v, wi, coords.At(i, j, k, 0), coords.At(i, j, k, 1), coords.At(i, j, k, 2))
	}
	return tw.Flush()
}

func newDistancesCmd() *cobra.Command {
	var open bool
	cmd := &cobra.Command{
		Use:   "distances",
		Short: "Summarize the pairwise distance tensor",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDistances(cmd.Context(), cmd.OutOrStdout(), cfg, open)
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "use open boundaries instead of the torus")
	return cmd
}

func latticeDistances(ctx context.Context, c *Config, open bool) (*ndarray.Dense[float64], error) {
	n := c.Lattice.N
	coords, err := hex.Coordinates(n, latticeOptions(c)...)
	if err != nil {
		return nil, err
	}
	var opts []hex.DistanceOption
	if open {
		opts = append(opts, hex.WithoutPeriodic())
	}
	logger.Debug("Computing distances", zap.Int("cells", n*n*n), zap.Bool("periodic", !open))
	return hex.Distances(ctx, coords, n, opts...)
}

func runDistances(ctx context.Context, w io.Writer, c *Config, open bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	dist, err := latticeDistances(ctx, c, open)
	if err != nil {
		return err
	}
	d := dist.Data()
	nearest := math.Inf(1)
	for _, v := range d {
		if v > 1e-12 && v < nearest {
			nearest = v
		}
	}
	neighbours := 0
	for _, v := range d[:dist.Shape()[1]] {
		if math.Abs(v-nearest) < 1e-9 {
			neighbours++
		}
	}
	printStats(w, "distances", dist.Shape(), d, [][2]string{
		{"nearest", fmt.Sprintf("%.6f", nearest)},
		{"neighbours(cell 0)", fmt.Sprintf("%d", neighbours)},
	})
	return nil
}

func newWeightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weights",
		Short: "Summarize the recurrent connection weights",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWeights(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}
}

func runWeights(ctx context.Context, w io.Writer, c *Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	dist, err := latticeDistances(ctx, c, false)
	if err != nil {
		return err
	}
	opts := []hex.WeightOption{hex.WithLambda(c.Weights.Lambda), hex.WithAmplitude(c.Weights.Amplitude)}
	if c.Weights.ZeroDiagonal {
		opts = append(opts, hex.WithZeroDiagonal())
	}
	weights, err := hex.RecurrentWeights(dist, opts...)
	if err != nil {
		return err
	}
	positive := 0
	for _, v := range weights.Data() {
		if v > 0 {
			positive++
		}
	}
	printStats(w, "weights", weights.Shape(), weights.Data(), [][2]string{
		{"positive", fmt.Sprintf("%d", positive)},
	})
	return nil
}

func printStats(w io.Writer, name string, shape []int, data []float64, extra [][2]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%v\n", name, shape)
	fmt.Fprintf(tw, "min\t%.6f\n", floats.Min(data))
	fmt.Fprintf(tw, "max\t%.6f\n", floats.Max(data))
	fmt.Fprintf(tw, "mean\t%.6f\n", stat.Mean(data, nil))
	for _, kv := range extra {
		fmt.Fprintf(tw, "%s\t%s\n", kv[0], kv[1])
	}
	_ = tw.Flush()
}

// bumpSeed returns the bump on Z_n^3 configured by c.
func bumpSeed(c *Config) (abelian.Group, abelian.Bump) {
	n := c.Lattice.N
	g := abelian.MustGroup([]int{n, n, n})
	opts := []abelian.BumpOption{abelian.WithRadius(c.Bump.Radius)}
	if c.Bump.HexMetric {
		opts = append(opts, abelian.WithMetric(hex.Norm))
	}
	return g, abelian.NewBump(opts...)
}

func newEncoderCmd() *cobra.Command {
	var cells int
	cmd := &cobra.Command{
		Use:   "encoder",
		Short: "Build the Fourier encoder matrix from a bump seed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncoder(cmd.OutOrStdout(), cfg, cells)
		},
	}
	cmd.Flags().IntVar(&cells, "cells", 4, "number of cells to verify against a directly shifted bump")
	return cmd
}

func runEncoder(w io.Writer, c *Config, verify int) error {
	n := c.Lattice.N
	g, bump := bumpSeed(c)
	coefs, err := bump.Coefficients(g)
	if err != nil {
		return err
	}
	cropped, err := abelian.CropConjugateSymmetry(coefs)
	if err != nil {
		return err
	}
	full := []int{n, n, n}
	enc, err := fourier.EncoderMatrix(abelian.FlattenCoefs(cropped), cropped.Shape(), full)
	if err != nil {
		return err
	}
	rows, cols := enc.Dims()
	logger.Debug("Encoder built", zap.Int("rows", rows), zap.Int("cols", cols))

	total := n * n * n
	verify = min(max(verify, 0), total)
	step := max(total/max(verify, 1), 1)
	worst := 0.0
	for cell := 0; cell < verify*step && cell < total; cell += step {
		shift := []float64{float64(cell / (n * n)), float64((cell / n) % n), float64(cell % n)}
		dft, err := bump.Function(g).Shift(shift).DFT()
		if err != nil {
			return err
		}
		table, err := dft.ToTable()
		if err != nil {
			return err
		}
		want, err := abelian.CropConjugateSymmetry(table)
		if err != nil {
			return err
		}
		got := mat.Row(nil, cell, enc)
		diff := make([]float64, len(got))
		floats.SubTo(diff, got, abelian.FlattenCoefs(want))
		worst = math.Max(worst, floats.Norm(diff, math.Inf(1)))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "seed\t%s\n", bump.Function(g))
	fmt.Fprintf(tw, "coefficients\t%v -> %v\n", coefs.Shape(), cropped.Shape())
	fmt.Fprintf(tw, "encoder\t%d x %d\n", rows, cols)
	fmt.Fprintf(tw, "verified cells\t%d\n", verify)
	fmt.Fprintf(tw, "max error\t%.3e\n", worst)
	return tw.Flush()
}

func newDFTCmd() *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "dft",
		Short: "Print the strongest Fourier coefficients of the bump seed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDFT(cmd.OutOrStdout(), cfg, top)
		},
	}
	cmd.Flags().IntVar(&top, "top", 8, "number of coefficients to print")
	return cmd
}

func runDFT(w io.Writer, c *Config, top int) error {
	g, bump := bumpSeed(c)
	coefs, err := bump.Coefficients(g)
	if err != nil {
		return err
	}
	power := fourier.Power(coefs).Data()
	order := make([]int, len(power))
	sorted := append([]float64(nil), power...)
	floats.Argsort(sorted, order)
	if top <= 0 || top > len(order) {
		top = len(order)
	}

	n := c.Lattice.N
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "domain\t%v\n", g)
	fmt.Fprintf(tw, "kx\tky\tkz\tpower\n")
	for r := 0; r < top; r++ {
		idx := coefs.Index(order[len(order)-1-r])
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.6e\n",
			fourier.Frequency(idx[0], n), fourier.Frequency(idx[1], n), fourier.Frequency(idx[2], n),
			power[order[len(order)-1-r]])
	}
	return tw.Flush()
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that the three coordinate constructions agree",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), cfg)
		},
	}
}

// runCheck compares the direct coordinates with the wrapped unwrapped grid
// (exactly) and with the generator matrix product (within tolerance).
func runCheck(w io.Writer, c *Config) error {
	n := c.Lattice.N
	opts := latticeOptions(c)

	direct, err := hex.Coordinates(n, opts...)
	if err != nil {
		return err
	}
	unwrapped, err := hex.CoordinatesUnwrapped(n, opts...)
	if err != nil {
		return err
	}
	wrapped, err := hex.Wrap(unwrapped)
	if err != nil {
		return err
	}
	product, err := hex.CoordinatesMatMul(n, opts...)
	if err != nil {
		return err
	}

	exact := ndarray.Equal(direct, wrapped)
	near := ndarray.AllClose(direct, product, c.Check.RTol, c.Check.ATol)
	diff, err := ndarray.MaxAbsDiff(direct, product)
	if err != nil {
		return err
	}
	logger.Debug("Coordinate check",
		zap.Int("n", n),
		zap.Bool("exact", exact),
		zap.Bool("close", near),
		zap.Float64("max_diff", diff))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "wrap(unwrapped) == direct\t%t\n", exact)
	fmt.Fprintf(tw, "matmul ~= direct\t%t\t(max diff %.3e)\n", near, diff)
	if err := tw.Flush(); err != nil {
		return err
	}

	if !exact || !near {
		logger.Error("Coordinate constructions disagree", zap.Int("n", n))
		return errCheckFailed
	}
	return nil
}
