package abelian

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Homomorphism is a linear map between groups given by a real matrix with
// Target.Rank() rows and Source.Rank() columns.
type Homomorphism struct {
	a      *mat.Dense
	source Group
	target Group
}

// NewHomomorphism validates that a has one row per target component and
// one column per source component.
func NewHomomorphism(a [][]float64, source, target Group) (*Homomorphism, error) {
	rows, cols := target.Rank(), source.Rank()
	if len(a) != rows {
		return nil, fmt.Errorf("%w: matrix has %d rows, target rank is %d", ErrDomainMismatch, len(a), rows)
	}
	m := mat.NewDense(max(rows, 1), max(cols, 1), nil)
	for i, row := range a {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: matrix row %d has %d columns, source rank is %d", ErrDomainMismatch, i, len(row), cols)
		}
		m.SetRow(i, row)
	}
	return &Homomorphism{a: m, source: source, target: target}, nil
}

// Source returns the domain of h.
func (h *Homomorphism) Source() Group { return h.source }

// Target returns the codomain of h.
func (h *Homomorphism) Target() Group { return h.target }

// Matrix returns a copy of the matrix of h.
func (h *Homomorphism) Matrix() *mat.Dense { return mat.DenseCopyOf(h.a) }

// Evaluate returns A*x projected into the target.
func (h *Homomorphism) Evaluate(x []float64) ([]float64, error) {
	if len(x) != h.source.Rank() {
		return nil, fmt.Errorf("%w: element has %d components, source rank is %d", ErrDomainMismatch, len(x), h.source.Rank())
	}
	return h.apply(x), nil
}

func (h *Homomorphism) apply(x []float64) []float64 {
	rows := h.target.Rank()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		var sum float64
		for j, v := range x {
			sum += h.a.At(i, j) * v
		}
		out[i] = sum
	}
	return h.target.Project(out)
}

// Compose returns h∘other, which applies other first.
func (h *Homomorphism) Compose(other *Homomorphism) (*Homomorphism, error) {
	if !other.target.Equal(h.source) {
		return nil, fmt.Errorf("%w: cannot compose %v -> %v with %v -> %v",
			ErrDomainMismatch, other.source, other.target, h.source, h.target)
	}
	rows, cols := h.target.Rank(), other.source.Rank()
	var prod mat.Dense
	prod.Mul(h.a, other.a)
	a := make([][]float64, rows)
	for i := range a {
		a[i] = make([]float64, cols)
		for j := range a[i] {
			a[i][j] = prod.At(i, j)
		}
	}
	return NewHomomorphism(a, other.source, h.target)
}

func (h *Homomorphism) String() string {
	return fmt.Sprintf("Homomorphism %v -> %v\n%v", h.source, h.target, mat.Formatted(h.a, mat.Squeeze()))
}
