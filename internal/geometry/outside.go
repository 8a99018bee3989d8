package geometry

import "fmt"

// Outside returns pairwise disjoint boxes that exactly cover the part of o
// lying outside b. None of the returned boxes intersects b.
//
// Sides are sliced in a fixed order: axis 0 high, axis 0 low, axis 1 high,
// axis 1 low, and so on. Each slab spans the part of o that has not been
// sliced yet, so later slabs never overlap earlier ones. The result holds at
// most 2×Dims boxes.
func (b Box[A]) Outside(o Box[A]) []Box[A] {
	if b.Contains(o) {
		return nil
	}
	if b.DoesNotIntersect(o) {
		return []Box[A]{o}
	}

	var out []Box[A]
	rest := o.axes
	for i := 0; i < len(rest); i++ {
		cur := rest[i]

		if cur.Max > b.axes[i].Max {
			slab := rest
			slab[i] = Interval{Min: b.axes[i].Max, Max: cur.Max}
			out = append(out, Box[A]{axes: slab})
			cur.Max = b.axes[i].Max
			rest[i] = cur
		}

		if cur.Min < b.axes[i].Min {
			slab := rest
			slab[i] = Interval{Min: cur.Min, Max: b.axes[i].Min}
			out = append(out, Box[A]{axes: slab})
			cur.Min = b.axes[i].Min
			rest[i] = cur
		}
	}

	if remainder := (Box[A]{axes: rest}); !b.Contains(remainder) {
		panic(fmt.Sprintf("geometry: remainder %v of %v not inside %v", remainder, o, b))
	}
	return out
}
