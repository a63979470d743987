package abelian

import (
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-lattice/lattice/ndarray"
)

// Metric measures the length of a displacement vector.
type Metric func(d []float64) float64

// EuclideanMetric is the standard 2-norm.
func EuclideanMetric(d []float64) float64 {
	var sum float64
	for _, v := range d {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// BumpOption configures a Bump.
type BumpOption func(*Bump)

// WithRadius sets the support radius. Non-positive values are ignored.
func WithRadius(r float64) BumpOption {
	return func(b *Bump) {
		if r > 0 {
			b.radius = r
		}
	}
}

// WithCenter sets the peak location. Missing components are zero.
func WithCenter(c ...float64) BumpOption {
	return func(b *Bump) {
		b.center = slices.Clone(c)
	}
}

// WithMetric replaces the Euclidean distance, e.g. with a lattice norm.
func WithMetric(m Metric) BumpOption {
	return func(b *Bump) {
		if m != nil {
			b.metric = m
		}
	}
}

// Bump is a smooth compactly supported function
//
//	psi(r) = exp(1 - 1/(1 - (r/R)^2))  for r < R, 0 otherwise
//
// with peak value 1 at its center. Distances wrap around periodic group
// components.
type Bump struct {
	radius float64
	center []float64
	metric Metric
}

// NewBump returns a bump with radius 2.5 centered at the origin unless
// configured otherwise.
func NewBump(opts ...BumpOption) Bump {
	b := Bump{radius: 2.5, metric: EuclideanMetric}
	for _, opt := range opts {
		if opt != nil {
			opt(&b)
		}
	}
	return b
}

// Radius returns the support radius.
func (b Bump) Radius() float64 { return b.radius }

// Eval returns the bump at x on a group with the given periods.
func (b Bump) Eval(x []float64, periods []int) float64 {
	d := make([]float64, len(x))
	for i, v := range x {
		if i < len(b.center) {
			v -= b.center[i]
		}
		if i < len(periods) && periods[i] > 0 {
			p := float64(periods[i])
			v = math.Mod(v, p)
			if v > p/2 {
				v -= p
			} else if v < -p/2 {
				v += p
			}
		}
		d[i] = v
	}
	r := b.metric(d) / b.radius
	if r >= 1 {
		return 0
	}
	return math.Exp(1 - 1/(1-r*r))
}

// Function returns the bump as a Function on g.
func (b Bump) Function(g Group) *Function {
	periods := g.Periods()
	f := NewFunction(g, func(x []float64) complex128 {
		return complex(b.Eval(x, periods), 0)
	})
	f.name = "bump"
	return f
}

// Coefficients returns the DFT table of the bump on a finite group.
func (b Bump) Coefficients(g Group) (*ndarray.Dense[complex128], error) {
	dft, err := b.Function(g).DFT()
	if err != nil {
		return nil, fmt.Errorf("abelian: bump coefficients: %w", err)
	}
	return dft.ToTable()
}
