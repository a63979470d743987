package testutil

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-lattice/lattice/ndarray"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireComplexNear fails t if |got-want| exceeds eps.
func RequireComplexNear(t *testing.T, got, want complex128, eps float64) {
	t.Helper()
	if d := cmplx.Abs(got - want); d > eps {
		t.Fatalf("got %v, want %v (diff %v > eps %v)", got, want, d, eps)
	}
}

// RequireArrayClose fails t if the arrays differ in shape or any element
// pair differs by more than eps. The first offending index is reported.
func RequireArrayClose[T ndarray.Elem](t *testing.T, got, want *ndarray.Dense[T], eps float64) {
	t.Helper()
	if !ndarray.SameShape(got, want) {
		t.Fatalf("shape mismatch: got %v, want %v", got.Shape(), want.Shape())
	}
	g, w := got.Data(), want.Data()
	for i := range g {
		if d := absDiff(g[i], w[i]); d > eps {
			t.Fatalf("index %v: got %v, want %v (diff %v > eps %v)", got.Index(i), g[i], w[i], d, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

func absDiff[T ndarray.Elem](a, b T) float64 {
	switch d := any(a - b).(type) {
	case float64:
		return math.Abs(d)
	case complex128:
		return cmplx.Abs(d)
	}
	return math.Inf(1)
}
