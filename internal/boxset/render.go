package boxset

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/drueck/reboot/internal/geometry"
)

// ErrTooLarge is returned by Render when the bounding area of the set exceeds
// the caller's limit.
var ErrTooLarge = errors.New("region too large to render")

const (
	cellOn  = '#'
	cellOff = '.'
)

// Render draws a 2D set as a character grid over its bounding rectangle,
// one row per y value in ascending order. Lit cells are '#', others '.'.
// An empty set renders nothing.
func Render(w io.Writer, s *Set[geometry.Axes2], limit uint64) error {
	bounds, ok := s.Bounds()
	if !ok {
		return nil
	}

	// Compare per axis; the product of two wide axes wraps.
	xs, ys := bounds.Axis(0), bounds.Axis(1)
	cols, rows := xs.Len(), ys.Len()
	if cols > limit || rows > limit || cols > limit/rows {
		return fmt.Errorf("%w: %dx%d cells over %v (limit %d)", ErrTooLarge, cols, rows, bounds, limit)
	}

	width := int(cols)

	grid := make([][]byte, rows)
	for i := range grid {
		row := make([]byte, width+1)
		for j := 0; j < width; j++ {
			row[j] = cellOff
		}
		row[width] = '\n'
		grid[i] = row
	}

	for _, b := range s.boxes {
		bx, by := b.Axis(0), b.Axis(1)
		for y := by.Min; y < by.Max; y++ {
			row := grid[y-ys.Min]
			for x := bx.Min; x < bx.Max; x++ {
				row[x-xs.Min] = cellOn
			}
		}
	}

	bw := bufio.NewWriter(w)
	for _, row := range grid {
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}
