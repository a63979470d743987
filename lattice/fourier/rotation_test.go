package fourier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-lattice/internal/testutil"
	"github.com/cwbudde/algo-lattice/lattice/ndarray"
)

func flatten(c *ndarray.Dense[complex128]) []float64 {
	m := c.Size()
	out := make([]float64, 2*m)
	for i, v := range c.Data() {
		out[i] = real(v)
		out[m+i] = imag(v)
	}
	return out
}

// circularShift returns y[x] = a[x - p mod n].
func circularShift(a *ndarray.Dense[complex128], p []int) *ndarray.Dense[complex128] {
	shape := a.Shape()
	out := ndarray.New[complex128](shape...)
	src := make([]int, len(shape))
	ndarray.ForEachIndex(shape, func(x []int) {
		for ax := range shape {
			src[ax] = ((x[ax]-p[ax])%shape[ax] + shape[ax]) % shape[ax]
		}
		out.Set(a.At(src...), x...)
	})
	return out
}

func TestRotateCoefsMatchesShiftTheorem(t *testing.T) {
	shape := []int{4, 3, 5}
	x := testutil.DeterministicComplex(11, shape...)
	base, err := FFTN(x)
	require.NoError(t, err)

	p := []int{1, 2, 3}
	shifted, err := FFTN(circularShift(x, p))
	require.NoError(t, err)

	got, err := RotateCoefs(flatten(base), shape, shape, []float64{1, 2, 3})
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, got, flatten(shifted), 1e-9)
}

func TestRotationMatrixMatchesRotateCoefs(t *testing.T) {
	shape := []int{3, 2}
	full := []int{4, 2}
	base := testutil.DeterministicReal(5, 2*6).Data()
	shift := []float64{0.5, 1.25}

	r, err := RotationMatrix(shape, full, shift)
	require.NoError(t, err)
	rows, cols := r.Dims()
	require.Equal(t, 12, rows)
	require.Equal(t, 12, cols)

	var v mat.VecDense
	v.MulVec(r, mat.NewVecDense(len(base), base))

	want, err := RotateCoefs(base, shape, full, shift)
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, v.RawVector().Data, want, 1e-12)
}

func TestRotationMatrixIsOrthogonal(t *testing.T) {
	r, err := RotationMatrix([]int{4, 4, 3}, []int{4, 4, 4}, []float64{0.3, -1.7, 2})
	require.NoError(t, err)

	var rtr mat.Dense
	rtr.Mul(r.T(), r)
	n, _ := rtr.Dims()
	require.True(t, mat.EqualApprox(&rtr, eye(n), 1e-12))
}

func TestRotationZeroShiftIsIdentity(t *testing.T) {
	r, err := RotationMatrix([]int{2, 3}, []int{2, 4}, []float64{0, 0})
	require.NoError(t, err)
	n, _ := r.Dims()
	require.True(t, mat.Equal(r, eye(n)))
}

func TestRotationValidation(t *testing.T) {
	_, err := RotationMatrix([]int{5}, []int{4}, []float64{1})
	require.True(t, errors.Is(err, ErrShapeMismatch))

	_, err = RotationMatrix([]int{2, 2}, []int{2, 2}, []float64{1})
	require.True(t, errors.Is(err, ErrShapeMismatch))

	_, err = RotateCoefs([]float64{1, 2, 3}, []int{2}, []int{2}, []float64{1})
	require.True(t, errors.Is(err, ErrLengthMismatch))
}

func TestEncoderMatrixRows(t *testing.T) {
	shape := []int{3, 2}
	full := []int{3, 2}
	base := testutil.DeterministicReal(21, 12).Data()

	enc, err := EncoderMatrix(base, shape, full)
	require.NoError(t, err)
	rows, cols := enc.Dims()
	require.Equal(t, 6, rows)
	require.Equal(t, 12, cols)

	testutil.RequireSliceNearlyEqual(t, mat.Row(nil, 0, enc), base, 0)

	// Row 3 is cell (1, 1).
	want, err := RotateCoefs(base, shape, full, []float64{1, 1})
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, mat.Row(nil, 3, enc), want, 1e-15)
}

func TestEncoderMatrixLengthMismatch(t *testing.T) {
	_, err := EncoderMatrix([]float64{1, 2}, []int{2}, []int{2})
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func eye(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}
