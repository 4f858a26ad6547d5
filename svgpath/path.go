// Implements an abstract representation of
// the polyline paths drawn from session curves,
// and their serialization as a SVG `d` attribute.
package svgpath

import (
	"strconv"
	"strings"

	"golang.org/x/image/math/f32"
)

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
)

// Operation groups the different SVG commands
type Operation interface {
	command() pathCommand
	point() f32.Vec2
}

// MoveTo starts a new sub-path at the given point.
type MoveTo f32.Vec2

// LineTo draws a straight line from the current point.
type LineTo f32.Vec2

func (MoveTo) command() pathCommand { return pathMoveTo }
func (LineTo) command() pathCommand { return pathLineTo }

func (op MoveTo) point() f32.Vec2 { return f32.Vec2(op) }
func (op LineTo) point() f32.Vec2 { return f32.Vec2(op) }

// Path describes a sequence of basic SVG operations, which should not be nil
type Path []Operation

// FormatNumber writes v in its shortest decimal form
// which parses back to the same float32, never using an exponent.
func FormatNumber(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

// ToSVGPath returns the `d` attribute of the path:
// each command is written as its letter followed by "x y"
// and a trailing space, for instance "M0 0 L10 0 ".
func (p Path) ToSVGPath() string {
	var b strings.Builder
	for _, op := range p {
		switch op.command() {
		case pathMoveTo:
			b.WriteByte('M')
		case pathLineTo:
			b.WriteByte('L')
		}
		pt := op.point()
		b.WriteString(FormatNumber(pt[0]))
		b.WriteByte(' ')
		b.WriteString(FormatNumber(pt[1]))
		b.WriteByte(' ')
	}
	return b.String()
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Start starts a new curve at the given point.
func (p *Path) Start(a f32.Vec2) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b f32.Vec2) {
	*p = append(*p, LineTo(b))
}

// Polyline builds the path going through the points stored
// as flat (x, y) pairs in `coords`: a MoveTo to the first point,
// then a LineTo for each following one.
// A trailing odd value is ignored; no coordinates gives an empty path.
func Polyline(coords []float32) Path {
	n := len(coords) / 2
	if n == 0 {
		return nil
	}
	p := make(Path, 0, n)
	p.Start(f32.Vec2{coords[0], coords[1]})
	for i := 1; i < n; i++ {
		p.Line(f32.Vec2{coords[2*i], coords[2*i+1]})
	}
	return p
}
