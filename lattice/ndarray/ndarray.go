package ndarray

import (
	"errors"
	"fmt"
	"slices"
)

// Errors returned by array constructors and comparisons.
var (
	ErrShapeMismatch = errors.New("ndarray: shape mismatch")
	ErrInvalidShape  = errors.New("ndarray: invalid shape")
)

// Elem is the set of supported element types.
type Elem interface {
	float64 | complex128
}

// Dense is a row-major N-dimensional array.
type Dense[T Elem] struct {
	shape   []int
	strides []int
	data    []T
}

// New allocates a zero-filled array with the given shape.
// It panics on negative dimensions.
func New[T Elem](shape ...int) *Dense[T] {
	if err := validateShape(shape); err != nil {
		panic(err)
	}
	return &Dense[T]{
		shape:   slices.Clone(shape),
		strides: stridesFor(shape),
		data:    make([]T, ShapeSize(shape)),
	}
}

// FromSlice wraps data with the given shape. The slice is not copied.
func FromSlice[T Elem](data []T, shape ...int) (*Dense[T], error) {
	if err := validateShape(shape); err != nil {
		return nil, err
	}
	if ShapeSize(shape) != len(data) {
		return nil, fmt.Errorf("%w: %d elements for shape %v", ErrShapeMismatch, len(data), shape)
	}
	return &Dense[T]{
		shape:   slices.Clone(shape),
		strides: stridesFor(shape),
		data:    data,
	}, nil
}

// Shape returns a copy of the array shape.
func (a *Dense[T]) Shape() []int { return slices.Clone(a.shape) }

// Ndim returns the number of axes.
func (a *Dense[T]) Ndim() int { return len(a.shape) }

// Size returns the number of elements.
func (a *Dense[T]) Size() int { return len(a.data) }

// Data returns the flat row-major backing slice.
func (a *Dense[T]) Data() []T { return a.data }

// Offset returns the flat offset of idx. It panics if idx has the wrong
// length or any component is out of range.
func (a *Dense[T]) Offset(idx ...int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("ndarray: index %v has %d axes, array has %d", idx, len(idx), len(a.shape)))
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= a.shape[i] {
			panic(fmt.Sprintf("ndarray: index %d out of range for axis %d with size %d", v, i, a.shape[i]))
		}
		off += v * a.strides[i]
	}
	return off
}

// Index converts a flat offset back into a multi-index.
func (a *Dense[T]) Index(offset int) []int {
	idx := make([]int, len(a.shape))
	for i := range a.shape {
		idx[i] = offset / a.strides[i]
		offset %= a.strides[i]
	}
	return idx
}

// At returns the element at idx.
func (a *Dense[T]) At(idx ...int) T { return a.data[a.Offset(idx...)] }

// Set stores v at idx.
func (a *Dense[T]) Set(v T, idx ...int) { a.data[a.Offset(idx...)] = v }

// Clone returns a deep copy.
func (a *Dense[T]) Clone() *Dense[T] {
	return &Dense[T]{
		shape:   slices.Clone(a.shape),
		strides: slices.Clone(a.strides),
		data:    slices.Clone(a.data),
	}
}

// Reshape returns a view with a new shape over the same data. At most one
// dimension may be -1, in which case it is inferred.
func (a *Dense[T]) Reshape(shape ...int) (*Dense[T], error) {
	shape = slices.Clone(shape)
	infer := -1
	known := 1
	for i, d := range shape {
		switch {
		case d == -1 && infer < 0:
			infer = i
		case d < 0:
			return nil, fmt.Errorf("%w: %v", ErrInvalidShape, shape)
		default:
			known *= d
		}
	}
	if infer >= 0 {
		if known == 0 || len(a.data)%known != 0 {
			return nil, fmt.Errorf("%w: cannot infer %v from %d elements", ErrShapeMismatch, shape, len(a.data))
		}
		shape[infer] = len(a.data) / known
	}
	return FromSlice(a.data, shape...)
}

// ShapeSize returns the product of the dimensions. An empty shape is a
// scalar of size 1.
func ShapeSize(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// ForEachIndex calls fn for every multi-index of shape in row-major order.
// The idx slice is reused between calls and must not be retained.
func ForEachIndex(shape []int, fn func(idx []int)) {
	total := ShapeSize(shape)
	if total == 0 {
		return
	}
	idx := make([]int, len(shape))
	for n := 0; n < total; n++ {
		fn(idx)
		for ax := len(shape) - 1; ax >= 0; ax-- {
			idx[ax]++
			if idx[ax] < shape[ax] {
				break
			}
			idx[ax] = 0
		}
	}
}

// SameShape reports whether a and b have identical shapes.
func SameShape[T, U Elem](a *Dense[T], b *Dense[U]) bool {
	return slices.Equal(a.shape, b.shape)
}

// Real returns the real parts of c as a new float array.
func Real(c *Dense[complex128]) *Dense[float64] {
	out := New[float64](c.shape...)
	for i, v := range c.data {
		out.data[i] = real(v)
	}
	return out
}

// Complexify returns r as a complex array with zero imaginary parts.
func Complexify(r *Dense[float64]) *Dense[complex128] {
	out := New[complex128](r.shape...)
	for i, v := range r.data {
		out.data[i] = complex(v, 0)
	}
	return out
}

func validateShape(shape []int) error {
	for _, d := range shape {
		if d < 0 {
			return fmt.Errorf("%w: negative dimension in %v", ErrInvalidShape, shape)
		}
	}
	return nil
}

func stridesFor(shape []int) []int {
	strides := make([]int, len(shape))
	s := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = s
		s *= shape[i]
	}
	return strides
}
