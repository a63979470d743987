// Package ndarray provides a small dense N-dimensional array used by the
// lattice packages.
//
// Arrays are stored row-major in a flat slice. Reshape shares the backing
// data; Clone copies it. The element type is either float64 or complex128.
//
// # Comparison
//
// [Equal] reports exact elementwise equality with matching shapes, and
// [AllClose] applies the usual relative/absolute tolerance test:
//
//	|a - b| <= atol + rtol*|b|
//
// Neither function broadcasts: arrays of different shape never compare equal.
package ndarray
