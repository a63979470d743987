// Package abelian represents complex-valued functions on locally compact
// abelian groups built from Z, Z_n, R and R/pZ, and the Fourier
// coefficient helpers used to seed lattice encoders.
//
// A [Group] is a direct sum of cyclic and continuous components. A
// [Function] on a group is either a Go closure or, on a finite group, a
// table of values. Functions can be shifted, combined pointwise, pulled
// back and pushed forward along a [Homomorphism], and transformed with the
// discrete Fourier transform when the domain is finite.
//
// # DFT convention
//
// The forward transform divides by the group order and the inverse does
// not:
//
//	F(k) = 1/N * sum_x f(x) exp(-2*pi*i <k, x/n>)
//	f(x) = sum_k F(k) exp(+2*pi*i <k, x/n>)
//
// so F(0) is the mean of f.
//
// # Example
//
//	g, _ := abelian.NewGroup([]int{5, 4, 3})
//	f := abelian.NewFunction(g, func(x []float64) complex128 {
//		return complex(x[0]+x[1]+x[2], 0)
//	})
//	dft, _ := f.DFT()
//	mean, _ := dft.Evaluate([]float64{0, 0, 0}) // 4.5
package abelian
