package abelian

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Errors returned by group, homomorphism and function operations.
var (
	ErrInvalidGroup   = errors.New("abelian: invalid group")
	ErrDomainMismatch = errors.New("abelian: domain mismatch")
	ErrNotFinite      = errors.New("abelian: domain is not a finite discrete group")
	ErrNotFGA         = errors.New("abelian: domain is not finitely generated")
	ErrShapeMismatch  = errors.New("abelian: table shape mismatch")
)

// Group is a direct sum of one-dimensional LCAs. Component i has period
// periods[i] (0 means unbounded) and is discrete or continuous.
type Group struct {
	periods  []int
	discrete []bool
}

// NewGroup builds a group from periods. discrete flags default to true for
// every component that has none given.
func NewGroup(periods []int, discrete ...bool) (Group, error) {
	if len(discrete) > len(periods) {
		return Group{}, fmt.Errorf("%w: %d discrete flags for %d periods", ErrInvalidGroup, len(discrete), len(periods))
	}
	for i, p := range periods {
		if p < 0 {
			return Group{}, fmt.Errorf("%w: negative period %d at component %d", ErrInvalidGroup, p, i)
		}
	}
	d := make([]bool, len(periods))
	for i := range d {
		d[i] = i >= len(discrete) || discrete[i]
	}
	return Group{periods: slices.Clone(periods), discrete: d}, nil
}

// MustGroup is like NewGroup but panics on error.
func MustGroup(periods []int, discrete ...bool) Group {
	g, err := NewGroup(periods, discrete...)
	if err != nil {
		panic(err)
	}
	return g
}

// Rank returns the number of components.
func (g Group) Rank() int { return len(g.periods) }

// Periods returns a copy of the component periods.
func (g Group) Periods() []int { return slices.Clone(g.periods) }

// IsFGA reports whether every component is discrete.
func (g Group) IsFGA() bool {
	for _, d := range g.discrete {
		if !d {
			return false
		}
	}
	return true
}

// IsFinite reports whether g is discrete with every period positive.
func (g Group) IsFinite() bool {
	if !g.IsFGA() {
		return false
	}
	for _, p := range g.periods {
		if p <= 0 {
			return false
		}
	}
	return true
}

// Order returns the number of elements of a finite group and 0 otherwise.
func (g Group) Order() int {
	if !g.IsFinite() {
		return 0
	}
	n := 1
	for _, p := range g.periods {
		n *= p
	}
	return n
}

// Project maps x into the canonical fundamental domain [0, p) of every
// periodic component. Unbounded components are left alone.
func (g Group) Project(x []float64) []float64 {
	out := slices.Clone(x)
	for i, p := range g.periods {
		if i >= len(out) || p == 0 {
			continue
		}
		v := math.Mod(out[i], float64(p))
		if v < 0 {
			v += float64(p)
		}
		out[i] = v
	}
	return out
}

// Equal reports whether g and o have the same components.
func (g Group) Equal(o Group) bool {
	return slices.Equal(g.periods, o.periods) && slices.Equal(g.discrete, o.discrete)
}

func (g Group) String() string {
	parts := make([]string, len(g.periods))
	for i, p := range g.periods {
		switch {
		case g.discrete[i] && p == 0:
			parts[i] = "Z"
		case g.discrete[i]:
			parts[i] = fmt.Sprintf("Z_%d", p)
		case p == 0:
			parts[i] = "R"
		case p == 1:
			parts[i] = "T"
		default:
			parts[i] = fmt.Sprintf("R/%dZ", p)
		}
	}
	return strings.Join(parts, " + ")
}

// Latex returns the group as a LaTeX direct sum.
func (g Group) Latex() string {
	parts := make([]string, len(g.periods))
	for i, p := range g.periods {
		switch {
		case g.discrete[i] && p == 0:
			parts[i] = `\mathbb{Z}`
		case g.discrete[i]:
			parts[i] = fmt.Sprintf(`\mathbb{Z}_{%d}`, p)
		case p == 0:
			parts[i] = `\mathbb{R}`
		case p == 1:
			parts[i] = `\mathbb{T}`
		default:
			parts[i] = fmt.Sprintf(`\mathbb{R}/%d\mathbb{Z}`, p)
		}
	}
	return strings.Join(parts, ` \oplus `)
}

// sameElement reports whether a and b agree within tol, modulo the
// period on periodic components.
func (g Group) sameElement(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if i < len(g.periods) && g.periods[i] > 0 {
			p := float64(g.periods[i])
			d = math.Mod(d, p)
			d = math.Min(d, p-d)
		}
		if d > tol {
			return false
		}
	}
	return true
}
