package abelian

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-lattice/lattice/ndarray"
)

// CropConjugateSymmetry keeps indices 0..n/2 of the last axis of c. For the
// spectrum of a real function this drops exactly the bins recoverable from
// X[-k] = conj(X[k]).
func CropConjugateSymmetry(c *ndarray.Dense[complex128]) (*ndarray.Dense[complex128], error) {
	shape := c.Shape()
	if len(shape) == 0 || c.Size() == 0 {
		return nil, fmt.Errorf("%w: cannot crop shape %v", ErrShapeMismatch, shape)
	}
	last := len(shape) - 1
	cropped := shape[last]/2 + 1
	outShape := append(shape[:last:last], cropped)
	out := ndarray.New[complex128](outShape...)
	ndarray.ForEachIndex(outShape, func(idx []int) {
		out.Set(c.At(idx...), idx...)
	})
	return out, nil
}

// RestoreConjugateSymmetry rebuilds the full spectrum from a cropped one.
// n is the original length of the last axis.
func RestoreConjugateSymmetry(c *ndarray.Dense[complex128], n int) (*ndarray.Dense[complex128], error) {
	shape := c.Shape()
	if len(shape) == 0 || n <= 0 || shape[len(shape)-1] != n/2+1 {
		return nil, fmt.Errorf("%w: cropped shape %v does not match length %d", ErrShapeMismatch, shape, n)
	}
	last := len(shape) - 1
	fullShape := append(shape[:last:last], n)
	out := ndarray.New[complex128](fullShape...)
	mirror := make([]int, len(fullShape))
	ndarray.ForEachIndex(fullShape, func(idx []int) {
		if idx[last] < shape[last] {
			out.Set(c.At(idx...), idx...)
			return
		}
		for a, v := range idx {
			mirror[a] = (fullShape[a] - v) % fullShape[a]
		}
		out.Set(cmplx.Conj(c.At(mirror...)), idx...)
	})
	return out, nil
}

// FlattenCoefs lays out c as [re..., im...] in row-major order.
func FlattenCoefs(c *ndarray.Dense[complex128]) []float64 {
	data := c.Data()
	m := len(data)
	out := make([]float64, 2*m)
	for i, v := range data {
		out[i] = real(v)
		out[m+i] = imag(v)
	}
	return out
}

// UnflattenCoefs is the inverse of FlattenCoefs.
func UnflattenCoefs(v []float64, shape ...int) (*ndarray.Dense[complex128], error) {
	m := ndarray.ShapeSize(shape)
	if len(v) != 2*m {
		return nil, fmt.Errorf("%w: %d values for %d coefficients", ErrShapeMismatch, len(v), m)
	}
	out := ndarray.New[complex128](shape...)
	data := out.Data()
	for i := range data {
		data[i] = complex(v[i], v[m+i])
	}
	return out, nil
}
