package fourier

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	gonumfft "gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-lattice/lattice/ndarray"
)

// Errors returned by transform and matrix builders.
var (
	ErrEmptyInput     = errors.New("fourier: empty input")
	ErrShapeMismatch  = errors.New("fourier: shape mismatch")
	ErrLengthMismatch = errors.New("fourier: coefficient length mismatch")
)

// lineTransform runs a 1-D transform over a single axis line.
// inverse must include the 1/n normalization.
type lineTransform interface {
	forward(dst, src []complex128) error
	inverse(dst, src []complex128) error
}

type planTransform struct {
	plan *algofft.Plan[complex128]
}

func (p planTransform) forward(dst, src []complex128) error { return p.plan.Forward(dst, src) }
func (p planTransform) inverse(dst, src []complex128) error { return p.plan.Inverse(dst, src) }

type gonumTransform struct {
	fft *gonumfft.CmplxFFT
	n   int
}

func (g gonumTransform) forward(dst, src []complex128) error {
	g.fft.Coefficients(dst, src)
	return nil
}

func (g gonumTransform) inverse(dst, src []complex128) error {
	g.fft.Sequence(dst, src)
	scale := 1 / float64(g.n)
	for i := range dst {
		dst[i] *= complex(scale, 0)
	}
	return nil
}

type identityTransform struct{}

func (identityTransform) forward(dst, src []complex128) error { copy(dst, src); return nil }
func (identityTransform) inverse(dst, src []complex128) error { copy(dst, src); return nil }

func newLineTransform(n int) (lineTransform, error) {
	switch {
	case n == 1:
		return identityTransform{}, nil
	case isPowerOf2(n):
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("fourier: failed to create FFT plan: %w", err)
		}
		return planTransform{plan: plan}, nil
	default:
		return gonumTransform{fft: gonumfft.NewCmplxFFT(n), n: n}, nil
	}
}

// FFTN returns the unnormalized N-dimensional DFT of a.
func FFTN(a *ndarray.Dense[complex128]) (*ndarray.Dense[complex128], error) {
	return transformAll(a, false)
}

// IFFTN returns the inverse N-dimensional DFT of a, divided by a.Size().
func IFFTN(a *ndarray.Dense[complex128]) (*ndarray.Dense[complex128], error) {
	return transformAll(a, true)
}

func transformAll(a *ndarray.Dense[complex128], inverse bool) (*ndarray.Dense[complex128], error) {
	if a == nil || a.Size() == 0 {
		return nil, ErrEmptyInput
	}
	out := a.Clone()
	shape := out.Shape()
	for axis := range shape {
		if err := transformAxis(out, shape, axis, inverse); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// transformAxis transforms every line of data along axis in place.
func transformAxis(a *ndarray.Dense[complex128], shape []int, axis int, inverse bool) error {
	n := shape[axis]
	tr, err := newLineTransform(n)
	if err != nil {
		return err
	}

	stride := 1
	for i := axis + 1; i < len(shape); i++ {
		stride *= shape[i]
	}
	outer := a.Size() / (n * stride)

	data := a.Data()
	line := make([]complex128, n)
	res := make([]complex128, n)
	for o := 0; o < outer; o++ {
		for s := 0; s < stride; s++ {
			base := o*n*stride + s
			for k := 0; k < n; k++ {
				line[k] = data[base+k*stride]
			}
			if inverse {
				err = tr.inverse(res, line)
			} else {
				err = tr.forward(res, line)
			}
			if err != nil {
				return fmt.Errorf("fourier: axis %d transform failed: %w", axis, err)
			}
			for k := 0; k < n; k++ {
				data[base+k*stride] = res[k]
			}
		}
	}
	return nil
}

// Frequency returns the signed frequency of bin k in a transform of length
// n: k for k <= (n-1)/2, otherwise k-n.
func Frequency(k, n int) int {
	if k <= (n-1)/2 {
		return k
	}
	return k - n
}

// Frequencies returns the signed frequencies of all n bins.
func Frequencies(n int) []int {
	out := make([]int, n)
	for k := range out {
		out[k] = Frequency(k, n)
	}
	return out
}

// Power returns |X|^2 for every coefficient, keeping the shape.
func Power(c *ndarray.Dense[complex128]) *ndarray.Dense[float64] {
	out := ndarray.New[float64](c.Shape()...)
	if c.Size() == 0 {
		return out
	}
	re := make([]float64, c.Size())
	im := make([]float64, c.Size())
	for i, v := range c.Data() {
		re[i] = real(v)
		im[i] = imag(v)
	}
	vecmath.Power(out.Data(), re, im)
	return out
}

func isPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
