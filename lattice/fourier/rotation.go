package fourier

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-lattice/lattice/ndarray"
)

// phases returns theta[m] = 2*pi * sum_a f(k[a]) * shift[a] / fullShape[a]
// for every coefficient index k of shape, in row-major order.
func phases(shape, fullShape []int, shift []float64) ([]float64, error) {
	if err := validateRotation(shape, fullShape, shift); err != nil {
		return nil, err
	}
	out := make([]float64, 0, ndarray.ShapeSize(shape))
	ndarray.ForEachIndex(shape, func(idx []int) {
		theta := 0.0
		for a, k := range idx {
			theta += float64(Frequency(k, fullShape[a])) * shift[a] / float64(fullShape[a])
		}
		out = append(out, 2*math.Pi*theta)
	})
	return out, nil
}

func validateRotation(shape, fullShape []int, shift []float64) error {
	if len(shape) == 0 {
		return ErrEmptyInput
	}
	if len(shape) != len(fullShape) || len(shape) != len(shift) {
		return fmt.Errorf("%w: shape %v, full shape %v, shift %v", ErrShapeMismatch, shape, fullShape, shift)
	}
	for a := range shape {
		if shape[a] <= 0 || shape[a] > fullShape[a] {
			return fmt.Errorf("%w: axis %d has %d coefficients for period %d", ErrShapeMismatch, a, shape[a], fullShape[a])
		}
	}
	return nil
}

// RotationMatrix returns the dense 2M x 2M matrix that translates a
// flattened coefficient vector of the given shape by shift lattice units.
// fullShape holds the lattice periods the coefficients were computed on;
// shape may be cropped along any axis.
func RotationMatrix(shape, fullShape []int, shift []float64) (*mat.Dense, error) {
	theta, err := phases(shape, fullShape, shift)
	if err != nil {
		return nil, err
	}
	m := len(theta)
	r := mat.NewDense(2*m, 2*m, nil)
	for i, th := range theta {
		sin, cos := math.Sincos(th)
		r.Set(i, i, cos)
		r.Set(i, m+i, sin)
		r.Set(m+i, i, -sin)
		r.Set(m+i, m+i, cos)
	}
	return r, nil
}

// RotateCoefs applies the translation of RotationMatrix to flat without
// building the matrix.
func RotateCoefs(flat []float64, shape, fullShape []int, shift []float64) ([]float64, error) {
	theta, err := phases(shape, fullShape, shift)
	if err != nil {
		return nil, err
	}
	m := len(theta)
	if len(flat) != 2*m {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrLengthMismatch, len(flat), 2*m)
	}
	out := make([]float64, 2*m)
	rotateInto(out, flat, theta)
	return out, nil
}

func rotateInto(dst, src, theta []float64) {
	m := len(theta)
	for i, th := range theta {
		sin, cos := math.Sincos(th)
		re, im := src[i], src[m+i]
		dst[i] = re*cos + im*sin
		dst[m+i] = im*cos - re*sin
	}
}
