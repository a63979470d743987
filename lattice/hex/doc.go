// Package hex builds coordinates, distances and recurrent connection
// weights for a toroidal hexagonal-close-packed lattice in three
// dimensions.
//
// Lattice cell (i, j, k) of an n x n x n torus sits at G * (i, j, k), where
// the columns of the generator G are
//
//	a1 = (1,   0,      0)
//	a2 = (1/2, √3/2,   0)
//	a3 = (1/2, √3/6,   √(2/3))
//
// so that every cell has twelve nearest neighbours at unit distance.
//
// # Wrapped and unwrapped storage
//
// Arrays indexed by (i, j, k) follow the skewed lattice axes. [UnwrapIndex]
// maps a cell to an orthogonal storage index (u, v, w) in which x and y
// grow monotonically within each layer; [WrapIndex] is its exact inverse.
// [Unwrap] and [Wrap] apply the same permutation to the leading three axes
// of an array.
package hex
