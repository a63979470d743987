package ndarray

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// Default tolerances for AllClose.
const (
	DefaultRTol = 1e-5
	DefaultATol = 1e-8
)

// Equal reports whether a and b have the same shape and identical elements.
// NaN never equals NaN.
func Equal[T Elem](a, b *Dense[T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !SameShape(a, b) {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}

// AllClose reports whether a and b have the same shape and every element
// pair satisfies |a-b| <= atol + rtol*|b|. Negative tolerances are replaced
// by the defaults.
func AllClose[T Elem](a, b *Dense[T], rtol, atol float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !SameShape(a, b) {
		return false
	}
	if rtol < 0 {
		rtol = DefaultRTol
	}
	if atol < 0 {
		atol = DefaultATol
	}
	for i := range a.data {
		diff := abs(a.data[i] - b.data[i])
		if !(diff <= atol+rtol*abs(b.data[i])) {
			return false
		}
	}
	return true
}

// MaxAbsDiff returns max |a-b| over all elements.
func MaxAbsDiff[T Elem](a, b *Dense[T]) (float64, error) {
	if !SameShape(a, b) {
		return 0, fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, a.shape, b.shape)
	}
	diff := make([]float64, len(a.data))
	for i := range a.data {
		diff[i] = abs(a.data[i] - b.data[i])
	}
	return floats.Norm(diff, math.Inf(1)), nil
}

func abs[T Elem](v T) float64 {
	switch x := any(v).(type) {
	case float64:
		return math.Abs(x)
	case complex128:
		return cmplx.Abs(x)
	}
	return math.NaN()
}
