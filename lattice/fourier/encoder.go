package fourier

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-lattice/lattice/ndarray"
)

// EncoderMatrix returns an N x 2M matrix whose row p is base translated to
// lattice cell p, where N is the number of cells in fullShape and cells are
// enumerated in row-major order.
func EncoderMatrix(base []float64, shape, fullShape []int) (*mat.Dense, error) {
	zero := make([]float64, len(fullShape))
	theta0, err := phases(shape, fullShape, zero)
	if err != nil {
		return nil, err
	}
	m := len(theta0)
	if len(base) != 2*m {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrLengthMismatch, len(base), 2*m)
	}

	cells := ndarray.ShapeSize(fullShape)
	enc := mat.NewDense(cells, 2*m, nil)
	row := make([]float64, 2*m)
	shift := make([]float64, len(fullShape))

	p := 0
	ndarray.ForEachIndex(fullShape, func(idx []int) {
		for a, v := range idx {
			shift[a] = float64(v)
		}
		// validated above; shape and fullShape are unchanged.
		theta, _ := phases(shape, fullShape, shift)
		rotateInto(row, base, theta)
		enc.SetRow(p, row)
		p++
	})
	return enc, nil
}
