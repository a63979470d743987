package abelian

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-lattice/internal/testutil"
	"github.com/cwbudde/algo-lattice/lattice/ndarray"
)

func sumFunc(x []float64) complex128 {
	var s float64
	for _, v := range x {
		s += v
	}
	return complex(s, 0)
}

func squareSumFunc(x []float64) complex128 {
	s := real(sumFunc(x))
	return complex(s*s, 0)
}

func points1D(lo, hi int) [][]float64 {
	var out [][]float64
	for i := lo; i <= hi; i++ {
		out = append(out, []float64{float64(i)})
	}
	return out
}

func realParts(v []complex128) []float64 {
	out := make([]float64, len(v))
	for i, c := range v {
		out[i] = real(c)
	}
	return out
}

func TestEvaluateProjectsPeriodicDomain(t *testing.T) {
	f := NewFunction(MustGroup([]int{5, 10}), squareSumFunc)
	a, err := f.Evaluate([]float64{1, 1})
	require.NoError(t, err)
	b, err := f.Evaluate([]float64{6, 11})
	require.NoError(t, err)
	require.Equal(t, a, b)

	_, err = f.Evaluate([]float64{1})
	require.ErrorIs(t, err, ErrDomainMismatch)
}

func TestTableFunction(t *testing.T) {
	table, _ := ndarray.FromSlice([]complex128{1, 2, 3, 4, 5, 6}, 3, 2)
	f, err := NewTableFunction(MustGroup([]int{3, 2}), table)
	require.NoError(t, err)

	v, _ := f.Evaluate([]float64{1, 1})
	require.Equal(t, complex128(4), v)
	v, _ = f.Evaluate([]float64{3, 1})
	require.Equal(t, complex128(2), v)

	_, err = NewTableFunction(MustGroup([]int{2, 3}), table)
	require.ErrorIs(t, err, ErrShapeMismatch)
	_, err = NewTableFunction(MustGroup([]int{0}), table)
	require.ErrorIs(t, err, ErrNotFinite)
}

func TestSampleAndShift(t *testing.T) {
	f := NewFunction(MustGroup([]int{0}), sumFunc)
	vals, err := f.Shift([]float64{2}).Sample(points1D(0, 3))
	require.NoError(t, err)
	require.Equal(t, []float64{-2, -1, 0, 1}, realParts(vals))
	require.Equal(t, "function * shift", f.Shift([]float64{2}).Name())
}

func TestPointwise(t *testing.T) {
	d := MustGroup([]int{5})
	f1 := NewFunction(d, sumFunc)
	f2 := NewFunction(d, func(x []float64) complex128 { return 2 * sumFunc(x) })

	mul, err := f1.Pointwise(f2, func(a, b complex128) complex128 { return a * b })
	require.NoError(t, err)
	vals, err := mul.Sample(points1D(0, 4))
	require.NoError(t, err)
	require.Equal(t, []float64{0, 2, 8, 18, 32}, realParts(vals))

	_, err = f1.Pointwise(NewFunction(MustGroup([]int{4}), sumFunc), nil)
	require.ErrorIs(t, err, ErrDomainMismatch)
}

func TestPullback(t *testing.T) {
	z := MustGroup([]int{0})
	f := NewFunction(z, func(x []float64) complex128 { return complex(x[0]*x[0], 0) })
	phi, _ := NewHomomorphism([][]float64{{2}}, z, z)
	pb, err := f.Pullback(phi)
	require.NoError(t, err)
	v, _ := pb.Evaluate([]float64{4})
	require.Equal(t, complex128(64), v)

	domain := MustGroup([]int{5, 3})
	g := NewFunction(domain, func(x []float64) complex128 { return complex(x[0]*x[0]+x[1]*x[1], 0) })
	psi, _ := NewHomomorphism([][]float64{{1}, {1}}, z, domain)
	gpb, err := g.Pullback(psi)
	require.NoError(t, err)
	v, _ = gpb.Evaluate([]float64{8})
	require.Equal(t, complex128(13), v)

	_, err = g.Pullback(phi)
	require.ErrorIs(t, err, ErrDomainMismatch)
}

func TestPushforward(t *testing.T) {
	z2 := MustGroup([]int{0, 0})
	f := NewFunction(z2, func(x []float64) complex128 {
		return complex(math.Pow(2, -(x[0]*x[0] + x[1]*x[1])), 0)
	})
	phi, err := NewHomomorphism([][]float64{{1, 0}, {0, 2}}, z2, MustGroup([]int{2, 3}))
	require.NoError(t, err)

	push, err := f.Pushforward(phi, 0)
	require.NoError(t, err)
	v, err := push.Evaluate([]float64{1, 1})
	require.NoError(t, err)
	require.InDelta(t, 0.56471, real(v), 5e-6)
}

func TestPushforwardFiniteSourceSumsFibres(t *testing.T) {
	// Z_6 -> Z_3, x -> x: every y has the two preimages y and y+3.
	f := NewFunction(MustGroup([]int{6}), sumFunc)
	phi, _ := NewHomomorphism([][]float64{{1}}, MustGroup([]int{6}), MustGroup([]int{3}))
	push, err := f.Pushforward(phi, 1)
	require.NoError(t, err)
	vals, err := push.Sample(points1D(0, 2))
	require.NoError(t, err)
	require.Equal(t, []float64{3, 5, 7}, realParts(vals))
}

func TestPushforwardRequiresDiscreteSource(t *testing.T) {
	r := MustGroup([]int{0}, false)
	f := NewFunction(r, sumFunc)
	phi, _ := NewHomomorphism([][]float64{{1}}, r, r)
	_, err := f.Pushforward(phi, 0)
	require.ErrorIs(t, err, ErrNotFGA)
}

func TestTransversal(t *testing.T) {
	const n = 5
	f := NewFunction(MustGroup([]int{n}), squareSumFunc)
	epi, _ := NewHomomorphism([][]float64{{1}}, MustGroup([]int{0}), MustGroup([]int{n}))
	rule := func(y []float64) []float64 {
		if y[0] < n/2.0 {
			return []float64{y[0]}
		}
		return []float64{y[0] - n}
	}

	onZ, err := f.Transversal(epi, rule, 0)
	require.NoError(t, err)
	vals, err := onZ.Sample(points1D(-n, n))
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0, 9, 16, 0, 1, 4, 0, 0, 0}, realParts(vals))
}

func TestDFTAndIDFT(t *testing.T) {
	domain := MustGroup([]int{5, 4, 3})
	f := NewFunction(domain, sumFunc)

	dft, err := f.DFT()
	require.NoError(t, err)
	v, _ := dft.Evaluate([]float64{0, 0, 0})
	testutil.RequireComplexNear(t, v, 4.5, 1e-12)

	back, err := dft.IDFT()
	require.NoError(t, err)
	got, _ := back.Evaluate([]float64{1, 2, 1})
	testutil.RequireComplexNear(t, got, 4, 1e-10)

	g := NewFunction(domain, func(x []float64) complex128 {
		return complex(x[0]+x[1], x[2]-x[0])
	})
	idft, err := g.IDFT()
	require.NoError(t, err)
	v, _ = idft.Evaluate([]float64{0, 0, 0})
	testutil.RequireComplexNear(t, v, 210-60i, 1e-9)
}

func TestDFTRequiresFiniteDomain(t *testing.T) {
	_, err := NewFunction(MustGroup([]int{0}), sumFunc).DFT()
	require.ErrorIs(t, err, ErrNotFinite)
}

func TestConvolveMatchesDirectSum(t *testing.T) {
	domain := MustGroup([]int{4, 3})
	ft := testutil.DeterministicComplex(1, 4, 3)
	gt := testutil.DeterministicComplex(2, 4, 3)
	f, _ := NewTableFunction(domain, ft)
	g, _ := NewTableFunction(domain, gt)

	h, err := f.Convolve(g)
	require.NoError(t, err)

	ndarray.ForEachIndex([]int{4, 3}, func(x []int) {
		var want complex128
		ndarray.ForEachIndex([]int{4, 3}, func(y []int) {
			want += ft.At(y...) * gt.At((x[0]-y[0]+4)%4, (x[1]-y[1]+3)%3)
		})
		got, _ := h.Evaluate([]float64{float64(x[0]), float64(x[1])})
		if cmplx.Abs(got-want) > 1e-10 {
			t.Fatalf("conv at %v = %v, want %v", x, got, want)
		}
	})
}

func TestCopyIsIndependent(t *testing.T) {
	table, _ := ndarray.FromSlice([]complex128{1, 2, 3}, 3)
	f, _ := NewTableFunction(MustGroup([]int{3}), table)
	g := f.Copy()
	table.Set(9, 0)

	v, _ := g.Evaluate([]float64{0})
	require.Equal(t, complex128(1), v)
	v, _ = f.Evaluate([]float64{0})
	require.Equal(t, complex128(9), v)
}

func TestStringAndLatex(t *testing.T) {
	f := NewFunction(MustGroup([]int{5}), sumFunc)
	require.Equal(t, "Function (function) on domain Z_5", f.String())
	require.Equal(t, `\operatorname{function} \in \mathbb{C}^G, \ G = \mathbb{Z}_{5}`, f.Latex())
}
