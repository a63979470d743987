package hex

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-lattice/lattice/ndarray"
)

// Errors returned by lattice builders.
var (
	ErrInvalidSize   = errors.New("hex: lattice size must be > 0")
	ErrShapeMismatch = errors.New("hex: shape mismatch")
)

// Generator entries, row-major. Column c is lattice vector a(c+1).
var generator = [3][3]float64{
	{1, 0.5, 0.5},
	{0, math.Sqrt(3) / 2, math.Sqrt(3) / 6},
	{0, 0, math.Sqrt(2.0 / 3.0)},
}

// Generator returns the 3x3 matrix whose columns are the lattice vectors.
func Generator() *mat.Dense {
	g := mat.NewDense(3, 3, nil)
	for r := range generator {
		g.SetRow(r, generator[r][:])
	}
	return g
}

// Norm returns |G*d|, the Cartesian length of a displacement d given in
// lattice units. It can be used as an abelian.Metric.
func Norm(d []float64) float64 {
	var sum float64
	for r := range generator {
		var v float64
		for c := 0; c < len(d) && c < 3; c++ {
			v += generator[r][c] * d[c]
		}
		sum += v * v
	}
	return math.Sqrt(sum)
}

// UnwrapIndex maps lattice cell (i, j, k) of an n-torus to its orthogonal
// storage index.
func UnwrapIndex(i, j, k, n int) (u, v, w int) {
	u = mod(i+(j+k)/2, n)
	v = mod(j+k/3, n)
	w = k
	return u, v, w
}

// WrapIndex is the inverse of UnwrapIndex.
func WrapIndex(u, v, w, n int) (i, j, k int) {
	k = w
	j = mod(v-k/3, n)
	i = mod(u-(j+k)/2, n)
	return i, j, k
}

// Unwrap moves every (i, j, k, ...) entry of a to (UnwrapIndex(i, j, k), ...).
// The first three axes of a must all have length n.
func Unwrap[T ndarray.Elem](a *ndarray.Dense[T]) (*ndarray.Dense[T], error) {
	return permute(a, UnwrapIndex)
}

// Wrap is the inverse of Unwrap.
func Wrap[T ndarray.Elem](a *ndarray.Dense[T]) (*ndarray.Dense[T], error) {
	return permute(a, WrapIndex)
}

// permute writes out[f(i,j,k), rest] = a[i, j, k, rest].
func permute[T ndarray.Elem](a *ndarray.Dense[T], f func(i, j, k, n int) (int, int, int)) (*ndarray.Dense[T], error) {
	shape := a.Shape()
	if len(shape) < 3 || shape[0] != shape[1] || shape[1] != shape[2] || shape[0] == 0 {
		return nil, fmt.Errorf("%w: need leading n x n x n axes, got %v", ErrShapeMismatch, shape)
	}
	n := shape[0]
	inner := ndarray.ShapeSize(shape[3:])
	out := ndarray.New[T](shape...)
	src, dst := a.Data(), out.Data()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				u, v, w := f(i, j, k, n)
				from := ((i*n+j)*n + k) * inner
				to := ((u*n+v)*n + w) * inner
				copy(dst[to:to+inner], src[from:from+inner])
			}
		}
	}
	return out, nil
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

func validateSize(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	return nil
}
