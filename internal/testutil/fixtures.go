package testutil

import (
	"math/rand"

	"github.com/cwbudde/algo-lattice/lattice/ndarray"
)

// DeterministicComplex fills an array of the given shape with uniform
// complex noise in [-1,1]x[-1,1] drawn from a fixed seed.
func DeterministicComplex(seed int64, shape ...int) *ndarray.Dense[complex128] {
	out := ndarray.New[complex128](shape...)
	rng := rand.New(rand.NewSource(seed))
	data := out.Data()
	for i := range data {
		data[i] = complex(rng.Float64()*2-1, rng.Float64()*2-1)
	}
	return out
}

// DeterministicReal fills an array of the given shape with uniform noise in
// [-1,1] drawn from a fixed seed.
func DeterministicReal(seed int64, shape ...int) *ndarray.Dense[float64] {
	out := ndarray.New[float64](shape...)
	rng := rand.New(rand.NewSource(seed))
	data := out.Data()
	for i := range data {
		data[i] = rng.Float64()*2 - 1
	}
	return out
}

// Impulse returns a real array with a single 1 at idx.
func Impulse(shape []int, idx ...int) *ndarray.Dense[float64] {
	out := ndarray.New[float64](shape...)
	out.Set(1, idx...)
	return out
}
