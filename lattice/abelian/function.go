package abelian

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/cwbudde/algo-lattice/lattice/fourier"
	"github.com/cwbudde/algo-lattice/lattice/ndarray"
)

// DefaultPushforwardRadius bounds the search over unbounded source
// components in Pushforward.
const DefaultPushforwardRadius = 10

// elementTol is the tolerance used when comparing group elements.
const elementTol = 1e-9

// Function is a complex-valued function on a Group.
//
// A Function is immutable except for its lazily computed table, so it must
// not be shared between goroutines before ToTable has been called.
type Function struct {
	domain Group
	name   string
	fn     func(x []float64) complex128
	table  *ndarray.Dense[complex128]
}

// NewFunction wraps fn as a function on domain. fn receives elements
// already projected into the domain.
func NewFunction(domain Group, fn func(x []float64) complex128) *Function {
	return &Function{domain: domain, name: "function", fn: fn}
}

// NewTableFunction builds a function on a finite domain from a table whose
// shape equals the domain periods.
func NewTableFunction(domain Group, table *ndarray.Dense[complex128]) (*Function, error) {
	if !domain.IsFinite() {
		return nil, fmt.Errorf("%w: %v", ErrNotFinite, domain)
	}
	if !slices.Equal(table.Shape(), domain.periods) {
		return nil, fmt.Errorf("%w: table %v, domain periods %v", ErrShapeMismatch, table.Shape(), domain.periods)
	}
	f := &Function{domain: domain, name: "table", table: table}
	f.fn = func(x []float64) complex128 {
		idx := make([]int, len(x))
		for i, v := range x {
			p := domain.periods[i]
			idx[i] = ((int(math.Round(v)) % p) + p) % p
		}
		return table.At(idx...)
	}
	return f, nil
}

// Domain returns the domain of f.
func (f *Function) Domain() Group { return f.domain }

// Evaluate returns f(x). x must have one component per domain component.
func (f *Function) Evaluate(x []float64) (complex128, error) {
	if len(x) != f.domain.Rank() {
		return 0, fmt.Errorf("%w: element has %d components, domain %v has %d",
			ErrDomainMismatch, len(x), f.domain, f.domain.Rank())
	}
	return f.call(x), nil
}

// call projects x and evaluates the representation.
func (f *Function) call(x []float64) complex128 {
	return f.fn(f.domain.Project(x))
}

// Sample evaluates f at every point.
func (f *Function) Sample(points [][]float64) ([]complex128, error) {
	out := make([]complex128, len(points))
	for i, p := range points {
		v, err := f.Evaluate(p)
		if err != nil {
			return nil, fmt.Errorf("abelian: sample %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Shift returns x -> f(x - s).
func (f *Function) Shift(s []float64) *Function {
	s = slices.Clone(s)
	return f.derive("shift", f.domain, func(x []float64) complex128 {
		shifted := make([]float64, len(x))
		for i := range x {
			shifted[i] = x[i]
			if i < len(s) {
				shifted[i] -= s[i]
			}
		}
		return f.call(shifted)
	})
}

// Pointwise returns x -> op(f(x), g(x)). Both functions must share a domain.
func (f *Function) Pointwise(g *Function, op func(a, b complex128) complex128) (*Function, error) {
	if !f.domain.Equal(g.domain) {
		return nil, fmt.Errorf("%w: %v and %v", ErrDomainMismatch, f.domain, g.domain)
	}
	return f.derive("pointwise", f.domain, func(x []float64) complex128 {
		return op(f.call(x), g.call(x))
	}), nil
}

// Pullback returns f∘phi, a function on phi's source.
func (f *Function) Pullback(phi *Homomorphism) (*Function, error) {
	if !f.domain.Equal(phi.target) {
		return nil, fmt.Errorf("%w: morphism target %v is not the function domain %v", ErrDomainMismatch, phi.target, f.domain)
	}
	return f.derive("pullback", phi.source, func(x []float64) complex128 {
		return f.call(phi.apply(x))
	}), nil
}

// Pushforward returns y -> sum of f(x) over source elements with phi(x) = y.
//
// Finite components of the source are enumerated over a full period.
// Unbounded components are enumerated over [-radius, radius] and only
// elements whose unbounded part has 1-norm at most radius contribute.
// radius <= 0 selects DefaultPushforwardRadius.
func (f *Function) Pushforward(phi *Homomorphism, radius int) (*Function, error) {
	if !f.domain.Equal(phi.source) {
		return nil, fmt.Errorf("%w: morphism source %v is not the function domain %v", ErrDomainMismatch, phi.source, f.domain)
	}
	if !f.domain.IsFGA() {
		return nil, fmt.Errorf("%w: %v", ErrNotFGA, f.domain)
	}
	if radius <= 0 {
		radius = DefaultPushforwardRadius
	}

	candidates := enumerate(f.domain, radius)
	return f.derive("pushforward", phi.target, func(y []float64) complex128 {
		var sum complex128
		for _, x := range candidates {
			if phi.target.sameElement(phi.apply(x), y, elementTol) {
				sum += f.call(x)
			}
		}
		return sum
	}), nil
}

// enumerate lists the source elements visited by Pushforward.
func enumerate(g Group, radius int) [][]float64 {
	shape := make([]int, g.Rank())
	offset := make([]int, g.Rank())
	for i, p := range g.periods {
		if p > 0 {
			shape[i] = p
		} else {
			shape[i] = 2*radius + 1
			offset[i] = -radius
		}
	}

	var out [][]float64
	ndarray.ForEachIndex(shape, func(idx []int) {
		norm := 0
		x := make([]float64, len(idx))
		for i, v := range idx {
			x[i] = float64(v + offset[i])
			if g.periods[i] == 0 {
				norm += abs(v + offset[i])
			}
		}
		if norm <= radius {
			out = append(out, x)
		}
	})
	return out
}

// Transversal pushes f forward along an epimorphism using a section rule.
// The result at x is f(epi(x)) when rule(epi(x)) == x and def otherwise.
func (f *Function) Transversal(epi *Homomorphism, rule func(y []float64) []float64, def complex128) (*Function, error) {
	if !f.domain.Equal(epi.target) {
		return nil, fmt.Errorf("%w: epimorphism target %v is not the function domain %v", ErrDomainMismatch, epi.target, f.domain)
	}
	return f.derive("transversal", epi.source, func(x []float64) complex128 {
		y := epi.apply(x)
		back := rule(slices.Clone(y))
		if back == nil || !epi.source.sameElement(back, x, elementTol) {
			return def
		}
		return f.call(y)
	}), nil
}

// ToTable returns the values of f on every element of a finite domain,
// indexed by the element. The table is computed once and cached.
func (f *Function) ToTable() (*ndarray.Dense[complex128], error) {
	if !f.domain.IsFinite() {
		return nil, fmt.Errorf("%w: %v", ErrNotFinite, f.domain)
	}
	if f.table != nil {
		return f.table, nil
	}
	table := ndarray.New[complex128](f.domain.periods...)
	x := make([]float64, f.domain.Rank())
	ndarray.ForEachIndex(f.domain.periods, func(idx []int) {
		for i, v := range idx {
			x[i] = float64(v)
		}
		table.Set(f.fn(x), idx...)
	})
	f.table = table
	return table, nil
}

// DFT returns the discrete Fourier transform of f, divided by the group
// order.
func (f *Function) DFT() (*Function, error) {
	return f.transform(false)
}

// IDFT returns the inverse discrete Fourier transform of f without the
// 1/N factor, so that f.DFT().IDFT() reproduces f.
func (f *Function) IDFT() (*Function, error) {
	return f.transform(true)
}

func (f *Function) transform(inverse bool) (*Function, error) {
	table, err := f.ToTable()
	if err != nil {
		return nil, err
	}
	var out *ndarray.Dense[complex128]
	scale := complex(float64(f.domain.Order()), 0)
	if inverse {
		out, err = fourier.IFFTN(table)
	} else {
		out, err = fourier.FFTN(table)
		scale = 1 / scale
	}
	if err != nil {
		return nil, fmt.Errorf("abelian: transform of %v: %w", f.domain, err)
	}
	data := out.Data()
	for i := range data {
		data[i] *= scale
	}
	g, err := NewTableFunction(f.domain, out)
	if err != nil {
		return nil, err
	}
	if inverse {
		g.name = "idft * " + f.name
	} else {
		g.name = "dft * " + f.name
	}
	return g, nil
}

// Convolve returns the circular convolution x -> sum_y f(y) g(x-y) of two
// functions on the same finite domain.
func (f *Function) Convolve(g *Function) (*Function, error) {
	if !f.domain.Equal(g.domain) {
		return nil, fmt.Errorf("%w: %v and %v", ErrDomainMismatch, f.domain, g.domain)
	}
	ft, err := f.ToTable()
	if err != nil {
		return nil, err
	}
	gt, err := g.ToTable()
	if err != nil {
		return nil, err
	}
	fs, err := fourier.FFTN(ft)
	if err != nil {
		return nil, fmt.Errorf("abelian: convolve: %w", err)
	}
	gs, err := fourier.FFTN(gt)
	if err != nil {
		return nil, fmt.Errorf("abelian: convolve: %w", err)
	}
	prod := fs.Data()
	for i, v := range gs.Data() {
		prod[i] *= v
	}
	out, err := fourier.IFFTN(fs)
	if err != nil {
		return nil, fmt.Errorf("abelian: convolve: %w", err)
	}
	h, err := NewTableFunction(f.domain, out)
	if err != nil {
		return nil, err
	}
	h.name = f.name + " conv " + g.name
	return h, nil
}

// Copy returns an independent copy of f.
func (f *Function) Copy() *Function {
	g := &Function{
		domain: Group{periods: slices.Clone(f.domain.periods), discrete: slices.Clone(f.domain.discrete)},
		name:   f.name,
		fn:     f.fn,
	}
	if f.table != nil {
		t, _ := NewTableFunction(g.domain, f.table.Clone())
		g.fn, g.table = t.fn, t.table
	}
	return g
}

// Name returns the composition name of f, e.g. "pullback * table".
func (f *Function) Name() string { return f.name }

func (f *Function) String() string {
	return fmt.Sprintf("Function (%s) on domain %v", f.name, f.domain)
}

// Latex returns f as a LaTeX membership statement.
func (f *Function) Latex() string {
	name := strings.ReplaceAll(f.name, " ", `\ `)
	return fmt.Sprintf(`\operatorname{%s} \in \mathbb{C}^G, \ G = %s`, name, f.domain.Latex())
}

func (f *Function) derive(op string, domain Group, fn func(x []float64) complex128) *Function {
	return &Function{domain: domain, name: f.name + " * " + op, fn: fn}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
