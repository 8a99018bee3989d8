package geometry

import "fmt"

// Interval is the half-open integer range [Min, Max).
type Interval struct {
	Min int64
	Max int64
}

// Span is shorthand for Interval{Min: min, Max: max}.
func Span(min, max int64) Interval {
	return Interval{Min: min, Max: max}
}

func (i Interval) String() string {
	return fmt.Sprintf("[%d,%d)", i.Min, i.Max)
}

// Empty reports whether the interval covers no integers.
func (i Interval) Empty() bool {
	return i.Max <= i.Min
}

// Len is the number of integers covered by i.
func (i Interval) Len() uint64 {
	if i.Empty() {
		return 0
	}
	return uint64(i.Max - i.Min)
}

// Contains reports whether o is a subset of i.
func (i Interval) Contains(o Interval) bool {
	return o.Min >= i.Min && o.Max <= i.Max
}

// Overlaps reports whether i and o share at least one integer.
// Intervals that only touch (i.Max == o.Min) do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Min < o.Max && o.Min < i.Max
}

// Intersect returns the common part of i and o. The result is Empty when
// they do not overlap.
func (i Interval) Intersect(o Interval) Interval {
	return Interval{Min: max(i.Min, o.Min), Max: min(i.Max, o.Max)}
}

// hull returns the smallest interval covering both i and o.
func (i Interval) hull(o Interval) Interval {
	return Interval{Min: min(i.Min, o.Min), Max: max(i.Max, o.Max)}
}
