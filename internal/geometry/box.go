// Package geometry implements axis-aligned boxes over integer space.
//
// A Box is a value: every operation returns new boxes and none mutates its
// receiver, so boxes may be copied and compared with == freely. The number of
// axes is fixed at compile time by the Axes type parameter.
package geometry

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// ErrDegenerate is returned when a box would have an empty axis.
var ErrDegenerate = errors.New("degenerate box")

// Axes is the set of supported axis arrays.
type Axes interface {
	[2]Interval | [3]Interval
}

type (
	Axes2 = [2]Interval
	Axes3 = [3]Interval
)

// Box is an axis-aligned hyperrectangle. Every axis is a non-empty
// half-open interval.
type Box[A Axes] struct {
	axes A
}

type (
	Rect   = Box[Axes2]
	Cuboid = Box[Axes3]
)

var axisNames = [...]string{"x", "y", "z"}

// New validates axes and returns the box they describe.
func New[A Axes](axes A) (Box[A], error) {
	for i := 0; i < len(axes); i++ {
		if axes[i].Empty() {
			return Box[A]{}, fmt.Errorf("%w: %s=%s", ErrDegenerate, axisNames[i], axes[i])
		}
	}
	return Box[A]{axes: axes}, nil
}

// Must is like New but panics on a degenerate axis.
func Must[A Axes](axes A) Box[A] {
	b, err := New(axes)
	if err != nil {
		panic(err)
	}
	return b
}

func RectOf(x, y Interval) Rect {
	return Must(Axes2{x, y})
}

func CuboidOf(x, y, z Interval) Cuboid {
	return Must(Axes3{x, y, z})
}

// Dims is the number of axes.
func (b Box[A]) Dims() int {
	return len(b.axes)
}

// Axis returns the interval of axis i.
func (b Box[A]) Axis(i int) Interval {
	return b.axes[i]
}

// Axes returns a copy of the axis array.
func (b Box[A]) Axes() A {
	return b.axes
}

func (b Box[A]) Equal(o Box[A]) bool {
	return b.axes == o.axes
}

// Volume is the number of unit cells inside b. It wraps when the count
// does not fit in a uint64; use CheckedVolume where inputs are unbounded.
func (b Box[A]) Volume() uint64 {
	v := uint64(1)
	for i := 0; i < len(b.axes); i++ {
		v *= b.axes[i].Len()
	}
	return v
}

// CheckedVolume is Volume, reporting false instead of wrapping.
func (b Box[A]) CheckedVolume() (uint64, bool) {
	v := uint64(1)
	for i := 0; i < len(b.axes); i++ {
		hi, lo := bits.Mul64(v, b.axes[i].Len())
		if hi != 0 {
			return 0, false
		}
		v = lo
	}
	return v, true
}

// Contains reports whether o lies entirely inside b. A box contains itself.
func (b Box[A]) Contains(o Box[A]) bool {
	for i := 0; i < len(b.axes); i++ {
		if !b.axes[i].Contains(o.axes[i]) {
			return false
		}
	}
	return true
}

// DoesNotIntersect reports whether b and o are disjoint on at least one axis.
// Boxes sharing only a boundary face do not intersect.
func (b Box[A]) DoesNotIntersect(o Box[A]) bool {
	for i := 0; i < len(b.axes); i++ {
		if !b.axes[i].Overlaps(o.axes[i]) {
			return true
		}
	}
	return false
}

func (b Box[A]) Intersects(o Box[A]) bool {
	return !b.DoesNotIntersect(o)
}

// Intersection returns the region common to b and o. The second result is
// false when they do not intersect.
func (b Box[A]) Intersection(o Box[A]) (Box[A], bool) {
	if b.DoesNotIntersect(o) {
		return Box[A]{}, false
	}
	axes := b.axes
	for i := 0; i < len(axes); i++ {
		axes[i] = b.axes[i].Intersect(o.axes[i])
	}
	return Box[A]{axes: axes}, true
}

// Hull returns the smallest box containing both b and o.
func (b Box[A]) Hull(o Box[A]) Box[A] {
	axes := b.axes
	for i := 0; i < len(axes); i++ {
		axes[i] = b.axes[i].hull(o.axes[i])
	}
	return Box[A]{axes: axes}
}

func (b Box[A]) String() string {
	var sb strings.Builder
	for i := 0; i < len(b.axes); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(axisNames[i])
		sb.WriteByte('=')
		sb.WriteString(b.axes[i].String())
	}
	return sb.String()
}
