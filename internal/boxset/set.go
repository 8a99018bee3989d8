// Package boxset maintains a region of integer space as a collection of
// pairwise disjoint boxes.
package boxset

import (
	"errors"
	"fmt"
	"math/bits"
	"slices"

	"github.com/drueck/reboot/internal/geometry"
)

// ErrOverlap is reported by Validate when two members intersect.
var ErrOverlap = errors.New("overlapping members")

// Set is a union of disjoint boxes. The zero value is an empty set.
//
// No two members intersect after any exported method returns, so the
// volume of the region is the sum of member volumes.
type Set[A geometry.Axes] struct {
	boxes []geometry.Box[A]
}

// Add makes the region of b part of the set.
func (s *Set[A]) Add(b geometry.Box[A]) {
	s.boxes = slices.DeleteFunc(s.boxes, b.Contains)

	// Members are disjoint, but a candidate may straddle several of them, so
	// each survivor is checked against every remaining member in turn.
	pending := []geometry.Box[A]{b}
	for _, member := range s.boxes {
		var next []geometry.Box[A]
		for _, c := range pending {
			switch {
			case member.Contains(c):
				// already covered
			case member.Intersects(c):
				next = append(next, member.Outside(c)...)
			default:
				next = append(next, c)
			}
		}
		pending = next
		if len(pending) == 0 {
			return
		}
	}

	s.boxes = append(s.boxes, pending...)
}

// Subtract removes the region of c from the set.
func (s *Set[A]) Subtract(c geometry.Box[A]) {
	var pieces []geometry.Box[A]

	kept := s.boxes[:0]
	for _, member := range s.boxes {
		switch {
		case c.Contains(member):
			// erased
		case c.Intersects(member):
			// Every piece lies inside member, which is disjoint from all
			// other members, so the pieces can be inserted directly.
			pieces = append(pieces, c.Outside(member)...)
		default:
			kept = append(kept, member)
		}
	}
	clear(s.boxes[len(kept):])

	s.boxes = append(kept, pieces...)
}

// Volume is the number of unit cells in the region.
func (s *Set[A]) Volume() uint64 {
	var v uint64
	for _, b := range s.boxes {
		v += b.Volume()
	}
	return v
}

// CheckedVolume is Volume, reporting false when the count does not fit in a
// uint64.
func (s *Set[A]) CheckedVolume() (uint64, bool) {
	var v uint64
	for _, b := range s.boxes {
		bv, ok := b.CheckedVolume()
		if !ok {
			return 0, false
		}
		var carry uint64
		v, carry = bits.Add64(v, bv, 0)
		if carry != 0 {
			return 0, false
		}
	}
	return v, true
}

// Len is the number of member boxes.
func (s *Set[A]) Len() int {
	return len(s.boxes)
}

// Boxes returns a copy of the members in no particular order.
func (s *Set[A]) Boxes() []geometry.Box[A] {
	return slices.Clone(s.boxes)
}

// Clone returns an independent copy of s.
func (s *Set[A]) Clone() *Set[A] {
	return &Set[A]{boxes: slices.Clone(s.boxes)}
}

// Bounds returns the smallest box enclosing every member. It reports false
// for an empty set.
func (s *Set[A]) Bounds() (geometry.Box[A], bool) {
	if len(s.boxes) == 0 {
		return geometry.Box[A]{}, false
	}
	out := s.boxes[0]
	for _, b := range s.boxes[1:] {
		out = out.Hull(b)
	}
	return out, true
}

// Validate checks that no two members intersect. It is quadratic in Len.
func (s *Set[A]) Validate() error {
	for i, a := range s.boxes {
		for _, b := range s.boxes[i+1:] {
			if a.Intersects(b) {
				return fmt.Errorf("%w: %v and %v", ErrOverlap, a, b)
			}
		}
	}
	return nil
}
