package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Operation is what an instruction does to its region.
type Operation string

const (
	OpOn  Operation = "on"
	OpOff Operation = "off"
)

// Range is an inclusive integer range lo..hi as written in instruction files.
type Range struct {
	Lo int64 `json:"lo"`
	Hi int64 `json:"hi"`
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Lo, r.Hi)
}

// HalfOpen converts r to the [min, max) bounds used by the geometry.
func (r Range) HalfOpen() (min, max int64) {
	return r.Lo, r.Hi + 1
}

// Validate rejects reversed ranges and ranges whose half-open form would
// overflow.
func (r Range) Validate() error {
	if r.Lo > r.Hi {
		return fmt.Errorf("%w: range %s is reversed", ErrParse, r)
	}
	if r.Hi == math.MaxInt64 {
		return fmt.Errorf("%w: range %s upper bound too large", ErrParse, r)
	}
	return nil
}

// ParseRange parses "lo..hi".
func ParseRange(s string) (Range, error) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(s), "..")
	if !ok {
		return Range{}, fmt.Errorf("%w: range %q must look like lo..hi", ErrParse, s)
	}
	l, err := strconv.ParseInt(lo, 10, 64)
	if err != nil {
		return Range{}, fmt.Errorf("%w: range %q: %v", ErrParse, s, err)
	}
	h, err := strconv.ParseInt(hi, 10, 64)
	if err != nil {
		return Range{}, fmt.Errorf("%w: range %q: %v", ErrParse, s, err)
	}
	r := Range{Lo: l, Hi: h}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// Instruction switches one region on or off. Ranges holds one entry per axis
// in x, y, z order.
type Instruction struct {
	Line   int
	Op     Operation
	Ranges []Range
}

// Program is a parsed instruction file. Every instruction has Dims ranges.
type Program struct {
	Path         string
	Dims         int
	Instructions []Instruction
}
