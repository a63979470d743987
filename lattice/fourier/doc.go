// Package fourier computes N-dimensional discrete Fourier transforms of
// lattice arrays and the rotation and encoder matrices that act on their
// coefficients.
//
// # Transforms
//
// [FFTN] and [IFFTN] follow the usual convention: the forward transform is
// unnormalized and the inverse divides by the number of elements. Axes
// whose length is a power of two run on algo-fft plans; all other lengths
// fall back to gonum's mixed-radix transform.
//
// # Translation
//
// Shifting a lattice function by p multiplies coefficient k by
// exp(-2*pi*i * sum(k[a]*p[a]/n[a])). On the flattened real layout produced
// by abelian.FlattenCoefs ([re..., im...]) this is a block rotation:
//
//	re' = re*cos(theta) + im*sin(theta)
//	im' = im*cos(theta) - re*sin(theta)
//
// [RotationMatrix] materializes that rotation as a dense matrix;
// [RotateCoefs] applies it directly. [EncoderMatrix] stacks one rotated copy
// of a seed coefficient vector per lattice cell.
package fourier
