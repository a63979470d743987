package hex

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-lattice/lattice/ndarray"
)

// WeightOption configures RecurrentWeights.
type WeightOption func(*weightConfig)

type weightConfig struct {
	lambda       float64
	amplitude    float64
	zeroDiagonal bool
}

func defaultWeightConfig() weightConfig {
	return weightConfig{lambda: 13, amplitude: 1}
}

// WithLambda sets the preferred period of the connectivity profile.
// Non-positive values are ignored.
func WithLambda(l float64) WeightOption {
	return func(c *weightConfig) {
		if l > 0 {
			c.lambda = l
		}
	}
}

// WithAmplitude sets the excitatory amplitude a. Negative values are
// ignored.
func WithAmplitude(a float64) WeightOption {
	return func(c *weightConfig) {
		if a >= 0 {
			c.amplitude = a
		}
	}
}

// WithInhibitionOnly drops the excitatory term (a = 0).
func WithInhibitionOnly() WeightOption {
	return func(c *weightConfig) {
		c.amplitude = 0
	}
}

// WithZeroDiagonal removes self connections.
func WithZeroDiagonal() WeightOption {
	return func(c *weightConfig) {
		c.zeroDiagonal = true
	}
}

// RecurrentWeights maps a square distance tensor to connection weights
// with the difference-of-Gaussians profile
//
//	W(d) = a*exp(-gamma*d^2) - exp(-beta*d^2),  beta = 3/lambda^2, gamma = 1.05*beta
//
// The result has the shape of dist and inherits its symmetry.
func RecurrentWeights(dist *ndarray.Dense[float64], opts ...WeightOption) (*ndarray.Dense[float64], error) {
	shape := dist.Shape()
	if len(shape) != 2 || shape[0] != shape[1] {
		return nil, fmt.Errorf("%w: distance tensor must be square, got %v", ErrShapeMismatch, shape)
	}
	cfg := defaultWeightConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	beta := 3 / (cfg.lambda * cfg.lambda)
	gamma := 1.05 * beta

	d := dist.Data()
	excite := make([]float64, len(d))
	inhibit := make([]float64, len(d))
	for i, v := range d {
		d2 := v * v
		excite[i] = math.Exp(-gamma * d2)
		inhibit[i] = math.Exp(-beta * d2)
	}

	out := ndarray.New[float64](shape...)
	w := out.Data()
	floats.ScaleTo(w, cfg.amplitude, excite)
	floats.Sub(w, inhibit)

	if cfg.zeroDiagonal {
		for i := 0; i < shape[0]; i++ {
			out.Set(0, i, i)
		}
	}
	return out, nil
}
