package session

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/benoitkugler/sessionsvg/blob"
)

// Data holds the decoded arrays of a session.
// Curve i is made of the PointCounts[i] points following
// the points of the previous curves, drawn with Widths[i] and Colors[i].
type Data struct {
	Points      []float32 // x0, y0, x1, y1, ...
	PointCounts []int32
	Widths      []float32
	Colors      []uint32
}

// Curve is a view on one curve of a Data.
type Curve struct {
	Points []float32 // 2 * point count values
	Width  float32
	Color  uint32
}

// Decode decodes the four payloads, using `order` for the elements,
// and checks that the resulting arrays are consistent.
func Decode(p Payload, order binary.ByteOrder) (Data, error) {
	var (
		out Data
		err error
	)
	if out.Points, err = blob.Float32s(p.Points, order); err != nil {
		return Data{}, WrapError(KindDecode, LabelPoints, "can't decode payload", err)
	}
	if out.PointCounts, err = blob.Int32s(p.PointCounts, order); err != nil {
		return Data{}, WrapError(KindDecode, LabelPointCounts, "can't decode payload", err)
	}
	if out.Widths, err = blob.Float32s(p.Widths, order); err != nil {
		return Data{}, WrapError(KindDecode, LabelWidths, "can't decode payload", err)
	}
	if out.Colors, err = blob.Uint32s(p.Colors, order); err != nil {
		return Data{}, WrapError(KindDecode, LabelColors, "can't decode payload", err)
	}
	if err = out.Validate(); err != nil {
		return Data{}, err
	}
	return out, nil
}

// Validate checks that the arrays describe a drawable set of curves:
// an even number of coordinates, at least one point, strictly positive
// point counts summing to the number of points, one width and one
// color per curve, and finite coordinates and widths.
func (d Data) Validate() error {
	if len(d.Points)%2 != 0 {
		return NewError(KindConsistency, LabelPoints, fmt.Sprintf("odd number of coordinates (%d)", len(d.Points)))
	}
	if len(d.Points) == 0 {
		return NewError(KindConsistency, LabelPoints, "session has no points")
	}
	var total int64
	for i, n := range d.PointCounts {
		if n <= 0 {
			return NewError(KindConsistency, LabelPointCounts, fmt.Sprintf("curve %d has invalid point count %d", i, n))
		}
		total += int64(n)
	}
	if nbPoints := int64(len(d.Points) / 2); total != nbPoints {
		return NewError(KindConsistency, LabelPointCounts,
			fmt.Sprintf("point counts add up to %d, but %d points are stored", total, nbPoints))
	}
	if len(d.Widths) != len(d.PointCounts) {
		return NewError(KindConsistency, LabelWidths,
			fmt.Sprintf("%d widths for %d curves", len(d.Widths), len(d.PointCounts)))
	}
	if len(d.Colors) != len(d.PointCounts) {
		return NewError(KindConsistency, LabelColors,
			fmt.Sprintf("%d colors for %d curves", len(d.Colors), len(d.PointCounts)))
	}
	for i, v := range d.Points {
		if !isFinite(v) {
			return NewError(KindConsistency, LabelPoints, fmt.Sprintf("point %d has a non finite coordinate %v", i/2, v))
		}
	}
	for i, w := range d.Widths {
		if !isFinite(w) {
			return NewError(KindConsistency, LabelWidths, fmt.Sprintf("curve %d has a non finite width %v", i, w))
		}
	}
	return nil
}

func isFinite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

// NumPoints returns the number of (x, y) points.
func (d Data) NumPoints() int { return len(d.Points) / 2 }

// MaxY returns the largest y coordinate, that is the largest
// odd-indexed value of Points. It panics if there is no point.
func (d Data) MaxY() float32 {
	maxY := d.Points[1]
	for i := 3; i < len(d.Points); i += 2 {
		if d.Points[i] > maxY {
			maxY = d.Points[i]
		}
	}
	return maxY
}

// Curves splits the point stream into curves, following PointCounts.
// It returns an error if the arrays are inconsistent (see Validate).
func (d Data) Curves() ([]Curve, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	out := make([]Curve, len(d.PointCounts))
	pointsSoFar := 0
	for i, n := range d.PointCounts {
		end := pointsSoFar + int(n)
		out[i] = Curve{
			Points: d.Points[2*pointsSoFar : 2*end],
			Width:  d.Widths[i],
			Color:  d.Colors[i],
		}
		pointsSoFar = end
	}
	return out, nil
}
