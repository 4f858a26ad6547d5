package svgpath

import (
	"math"
	"testing"

	"golang.org/x/image/math/f32"
)

func TestPolyline(t *testing.T) {
	for _, test := range []struct {
		description string
		coords      []float32
		expected    string
		ops         int
	}{
		{"three points", []float32{0, 0, 10, 0, 10, 10}, "M0 0 L10 0 L10 10 ", 3},
		{"single point", []float32{4.5, 2}, "M4.5 2 ", 1},
		{"fractions", []float32{0.1, 1.25, -3, 1e-7}, "M0.1 1.25 L-3 0.0000001 ", 2},
		{"empty", nil, "", 0},
	} {
		p := Polyline(test.coords)
		if len(p) != test.ops {
			t.Fatalf("%s: expected %d operations, got %d", test.description, test.ops, len(p))
		}
		if got := p.ToSVGPath(); got != test.expected {
			t.Errorf("%s: expected %q, got %q", test.description, test.expected, got)
		}
	}
}

func TestPolylineCommands(t *testing.T) {
	p := Polyline([]float32{1, 2, 3, 4, 5, 6})
	if _, ok := p[0].(MoveTo); !ok {
		t.Fatalf("first operation should be a MoveTo, got %T", p[0])
	}
	for i, op := range p[1:] {
		if _, ok := op.(LineTo); !ok {
			t.Fatalf("operation %d should be a LineTo, got %T", i+1, op)
		}
	}
	exp := []f32.Vec2{{1, 2}, {3, 4}, {5, 6}}
	for i, op := range p {
		if pt := op.point(); pt != exp[i] {
			t.Errorf("point %d: expected %v, got %v", i, exp[i], pt)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	for _, test := range []struct {
		in  float32
		out string
	}{
		{0, "0"},
		{10, "10"},
		{-2.5, "-2.5"},
		{1.0 / 3, "0.33333334"},
		{123456.79, "123456.79"},
		{float32(math.Copysign(0, -1)), "-0"},
	} {
		if got := FormatNumber(test.in); got != test.out {
			t.Errorf("FormatNumber(%v): expected %q, got %q", test.in, test.out, got)
		}
	}
}
