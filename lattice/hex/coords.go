package hex

import (
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-lattice/lattice/ndarray"
)

// Option configures coordinate generation.
type Option func(*config)

type config struct {
	spacing  float64
	centered bool
}

func defaultConfig() config {
	return config{spacing: 1}
}

// WithSpacing sets the nearest-neighbour distance. Non-positive values are
// ignored.
func WithSpacing(s float64) Option {
	return func(c *config) {
		if s > 0 {
			c.spacing = s
		}
	}
}

// WithCentered shifts every index by -n/2 so the lattice is centred on the
// origin.
func WithCentered() Option {
	return func(c *config) {
		c.centered = true
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// point writes the Cartesian position of cell (i, j, k) to dst.
func (c config) point(dst []float64, i, j, k, n int) {
	if c.centered {
		i, j, k = i-n/2, j-n/2, k-n/2
	}
	fi, fj, fk := float64(i), float64(j), float64(k)
	for r := range generator {
		dst[r] = (generator[r][0]*fi + generator[r][1]*fj + generator[r][2]*fk) * c.spacing
	}
}

// Coordinates returns an (n, n, n, 3) array holding the position of every
// lattice cell, indexed by lattice coordinates.
func Coordinates(n int, opts ...Option) (*ndarray.Dense[float64], error) {
	if err := validateSize(n); err != nil {
		return nil, err
	}
	cfg := applyOptions(opts)
	out := ndarray.New[float64](n, n, n, 3)
	data := out.Data()
	off := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				cfg.point(data[off:off+3], i, j, k, n)
				off += 3
			}
		}
	}
	return out, nil
}

// CoordinatesUnwrapped returns the same positions as Coordinates, computed
// by walking the orthogonal storage grid and stored by orthogonal index.
// Wrap of the result is identical to Coordinates.
func CoordinatesUnwrapped(n int, opts ...Option) (*ndarray.Dense[float64], error) {
	if err := validateSize(n); err != nil {
		return nil, err
	}
	cfg := applyOptions(opts)
	out := ndarray.New[float64](n, n, n, 3)
	data := out.Data()
	off := 0
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			for w := 0; w < n; w++ {
				i, j, k := WrapIndex(u, v, w, n)
				cfg.point(data[off:off+3], i, j, k, n)
				off += 3
			}
		}
	}
	return out, nil
}

// CoordinatesMatMul computes the positions as a single matrix product
// G * I, where I holds every cell index as a column. The result agrees with
// Coordinates up to rounding.
func CoordinatesMatMul(n int, opts ...Option) (*ndarray.Dense[float64], error) {
	if err := validateSize(n); err != nil {
		return nil, err
	}
	cfg := applyOptions(opts)
	cells := n * n * n
	offset := 0.0
	if cfg.centered {
		offset = float64(n / 2)
	}

	idx := mat.NewDense(3, cells, nil)
	col := 0
	ndarray.ForEachIndex([]int{n, n, n}, func(ijk []int) {
		for r, v := range ijk {
			idx.Set(r, col, float64(v)-offset)
		}
		col++
	})

	var pos mat.Dense
	pos.Mul(Generator(), idx)
	pos.Scale(cfg.spacing, &pos)

	out := ndarray.New[float64](n, n, n, 3)
	data := out.Data()
	for c := 0; c < cells; c++ {
		for r := 0; r < 3; r++ {
			data[3*c+r] = pos.At(r, c)
		}
	}
	return out, nil
}
