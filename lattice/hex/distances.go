package hex

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-lattice/lattice/ndarray"
)

// DistanceOption configures Distances.
type DistanceOption func(*distanceConfig)

type distanceConfig struct {
	periodic bool
	workers  int
}

// WithoutPeriodic measures plain Euclidean distance instead of the
// minimum-image distance on the torus.
func WithoutPeriodic() DistanceOption {
	return func(c *distanceConfig) {
		c.periodic = false
	}
}

// WithWorkers bounds the number of goroutines filling the tensor.
// Non-positive values are ignored.
func WithWorkers(n int) DistanceOption {
	return func(c *distanceConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// Distances returns the (N, N) tensor of pairwise distances between the
// cells of an (n, n, n, 3) coordinate array, N = n^3. Rows follow the
// row-major cell order of coords.
//
// The torus periods are read off coords itself: n times the displacement
// to cells (1,0,0), (0,1,0) and (0,0,1). Periodic distances take the
// minimum over the 27 neighbouring images.
func Distances(ctx context.Context, coords *ndarray.Dense[float64], n int, opts ...DistanceOption) (*ndarray.Dense[float64], error) {
	if err := validateSize(n); err != nil {
		return nil, err
	}
	if shape := coords.Shape(); len(shape) != 4 || shape[0] != n || shape[1] != n || shape[2] != n || shape[3] != 3 {
		return nil, fmt.Errorf("%w: want (%d, %d, %d, 3), got %v", ErrShapeMismatch, n, n, n, shape)
	}
	cfg := distanceConfig{periodic: true, workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var images [][3]float64
	if cfg.periodic && n > 1 {
		images = torusImages(coords, n)
	} else {
		images = [][3]float64{{0, 0, 0}}
	}

	cells := n * n * n
	pts := coords.Data()
	out := ndarray.New[float64](cells, cells)
	dist := out.Data()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for row := 0; row < cells; row++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a := pts[3*row : 3*row+3]
			line := dist[row*cells : (row+1)*cells]
			for col := 0; col < cells; col++ {
				b := pts[3*col : 3*col+3]
				line[col] = minImage(b[0]-a[0], b[1]-a[1], b[2]-a[2], images)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("hex: distances: %w", err)
	}
	return out, nil
}

// torusImages returns the 27 translations s1*T1 + s2*T2 + s3*T3 with
// s in {-1, 0, 1}.
func torusImages(coords *ndarray.Dense[float64], n int) [][3]float64 {
	var basis [3][3]float64
	unit := [3][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for b, u := range unit {
		for r := 0; r < 3; r++ {
			basis[b][r] = float64(n) * (coords.At(u[0], u[1], u[2], r) - coords.At(0, 0, 0, r))
		}
	}

	images := make([][3]float64, 0, 27)
	for s1 := -1; s1 <= 1; s1++ {
		for s2 := -1; s2 <= 1; s2++ {
			for s3 := -1; s3 <= 1; s3++ {
				var t [3]float64
				for r := 0; r < 3; r++ {
					t[r] = float64(s1)*basis[0][r] + float64(s2)*basis[1][r] + float64(s3)*basis[2][r]
				}
				images = append(images, t)
			}
		}
	}
	return images
}

func minImage(dx, dy, dz float64, images [][3]float64) float64 {
	best := math.Inf(1)
	for _, t := range images {
		x, y, z := dx+t[0], dy+t[1], dz+t[2]
		if d := x*x + y*y + z*z; d < best {
			best = d
		}
	}
	return math.Sqrt(best)
}
