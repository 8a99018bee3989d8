package geometry

import (
	"errors"
	"testing"
)

func rect(x0, x1, y0, y1 int64) Rect {
	return RectOf(Span(x0, x1), Span(y0, y1))
}

func cuboid(x0, x1, y0, y1, z0, z1 int64) Cuboid {
	return CuboidOf(Span(x0, x1), Span(y0, y1), Span(z0, z1))
}

func TestNew_RejectsDegenerateAxis(t *testing.T) {
	cases := []Axes3{
		{Span(0, 0), Span(0, 1), Span(0, 1)},
		{Span(0, 1), Span(3, 2), Span(0, 1)},
		{Span(0, 1), Span(0, 1), Span(-1, -1)},
	}
	for _, axes := range cases {
		if _, err := New(axes); !errors.Is(err, ErrDegenerate) {
			t.Errorf("New(%v): expected ErrDegenerate, got %v", axes, err)
		}
	}
}

func TestMust_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	_ = RectOf(Span(1, 1), Span(0, 1))
}

func TestVolume(t *testing.T) {
	if got := cuboid(-5, 5, -5, 5, -5, 5).Volume(); got != 1000 {
		t.Fatalf("expected 1000, got %d", got)
	}
	if got := rect(-5, 5, -5, 5).Volume(); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestVolume_LargeRanges(t *testing.T) {
	c := cuboid(-100000, 100000, -100000, 100000, -100000, 100000)
	if got, want := c.Volume(), uint64(8_000_000_000_000_000); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestContains(t *testing.T) {
	outer := cuboid(0, 4, 0, 4, 0, 4)
	inner := cuboid(1, 3, 1, 3, 1, 3)

	if !outer.Contains(inner) {
		t.Errorf("expected outer to contain inner")
	}
	if inner.Contains(outer) {
		t.Errorf("expected inner not to contain outer")
	}
	if !outer.Contains(outer) {
		t.Errorf("expected a box to contain itself")
	}
	if outer.Contains(cuboid(3, 5, 0, 1, 0, 1)) {
		t.Errorf("expected partial overlap not to be contained")
	}
}

func TestIntersects(t *testing.T) {
	cases := []struct {
		name string
		a, b Cuboid
		want bool
	}{
		{"identical", cuboid(0, 1, 0, 1, 0, 1), cuboid(0, 1, 0, 1, 0, 1), true},
		{"enclosed", cuboid(0, 4, 0, 4, 0, 4), cuboid(1, 3, 1, 3, 1, 3), true},
		{"overlap x", cuboid(0, 2, 0, 1, 0, 1), cuboid(1, 3, 0, 1, 0, 1), true},
		{"touch x", cuboid(0, 2, 0, 1, 0, 1), cuboid(2, 3, 0, 1, 0, 1), false},
		{"overlap y", cuboid(0, 1, 0, 2, 0, 1), cuboid(0, 1, 1, 3, 0, 1), true},
		{"touch y", cuboid(0, 1, 0, 2, 0, 1), cuboid(0, 1, 2, 3, 0, 1), false},
		{"overlap z", cuboid(0, 1, 0, 1, 0, 2), cuboid(0, 1, 0, 1, 1, 3), true},
		{"touch z", cuboid(0, 1, 0, 1, 0, 2), cuboid(0, 1, 0, 1, 2, 3), false},
		{"apart on one axis only", cuboid(0, 4, 0, 4, 0, 4), cuboid(1, 3, 1, 3, 7, 9), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Intersects(c.b); got != c.want {
				t.Errorf("a.Intersects(b) = %v, want %v", got, c.want)
			}
			if got := c.b.Intersects(c.a); got != c.want {
				t.Errorf("b.Intersects(a) = %v, want %v", got, c.want)
			}
			if got := c.a.DoesNotIntersect(c.b); got == c.want {
				t.Errorf("DoesNotIntersect must be the complement of Intersects")
			}
		})
	}
}

func TestIntersection(t *testing.T) {
	got, ok := rect(0, 4, 0, 4).Intersection(rect(2, 6, -1, 1))
	if !ok {
		t.Fatalf("expected intersection")
	}
	if want := rect(2, 4, 0, 1); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, ok := rect(0, 2, 0, 2).Intersection(rect(2, 4, 0, 2)); ok {
		t.Fatalf("expected touching rects not to intersect")
	}
}

func TestHull(t *testing.T) {
	got := rect(0, 2, 0, 2).Hull(rect(5, 6, -3, 1))
	if want := rect(0, 6, -3, 2); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestEqualAndAccessors(t *testing.T) {
	a := cuboid(1, 2, 3, 4, 5, 6)
	b := CuboidOf(Span(1, 2), Span(3, 4), Span(5, 6))
	if !a.Equal(b) || a != b {
		t.Fatalf("expected equal boxes")
	}
	if a.Equal(cuboid(1, 2, 3, 4, 5, 7)) {
		t.Fatalf("expected different boxes")
	}
	if a.Dims() != 3 || rect(0, 1, 0, 1).Dims() != 2 {
		t.Fatalf("unexpected dims")
	}
	if a.Axis(2) != Span(5, 6) {
		t.Fatalf("unexpected axis 2: %v", a.Axis(2))
	}
	if a.Axes() != (Axes3{Span(1, 2), Span(3, 4), Span(5, 6)}) {
		t.Fatalf("unexpected axes: %v", a.Axes())
	}
}

func TestString(t *testing.T) {
	if got, want := cuboid(-1, 2, 0, 1, 5, 9).String(), "x=[-1,2), y=[0,1), z=[5,9)"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCheckedVolume(t *testing.T) {
	cases := []struct {
		name string
		v    uint64
		ok   bool
		got  func() (uint64, bool)
	}{
		{"small", 24, true, cuboid(0, 2, 0, 3, 0, 4).CheckedVolume},
		{"2^63", 1 << 63, true, rect(0, 1<<32, 0, 1<<31).CheckedVolume},
		{"2^64 wraps", 0, false, rect(0, 1<<32, 0, 1<<32).CheckedVolume},
		{"3D overflow", 0, false, cuboid(0, 1<<22, 0, 1<<21, 0, 1<<21).CheckedVolume},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, ok := c.got()
			if v != c.v || ok != c.ok {
				t.Fatalf("CheckedVolume() = %d, %v; want %d, %v", v, ok, c.v, c.ok)
			}
		})
	}

	if rect(0, 1<<32, 0, 1<<32).Volume() != 0 {
		t.Fatalf("expected Volume to wrap")
	}
}
