// Given the decoded arrays of a session, implements how to
// draw its curves as a SVG document.
// Each curve becomes one stroked, unfilled path; the canvas has
// a fixed width and a height following the drawn content.
package svgdraw

import (
	"image/color"
	"log/slog"

	"github.com/benoitkugler/sessionsvg/internal/logging"
	"github.com/benoitkugler/sessionsvg/session"
	"github.com/benoitkugler/sessionsvg/svgpath"
)

const (
	// DefaultWidth is the canvas width, in user units.
	DefaultWidth = 565
	// DefaultAspectRatio is the height/width ratio of the margin band
	// added below the lowest point.
	DefaultAspectRatio = 16. / 9.
)

// Options parametrize Draw. Zero values select the defaults.
type Options struct {
	Width       int
	AspectRatio float64
	Logger      *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.AspectRatio <= 0 {
		o.AspectRatio = DefaultAspectRatio
	}
	if o.Logger == nil {
		o.Logger = logging.NewNop()
	}
	return o
}

// CanvasHeight returns the height of the canvas for the given content:
// the largest y coordinate plus width * aspectRatio.
func CanvasHeight(maxY float32, width int, aspectRatio float64) float32 {
	// the explicit conversion keeps the product rounded to float32 (no fused multiply-add)
	return maxY + float32(float32(width)*float32(aspectRatio))
}

// Draw builds the SVG document of the session `data`:
// one path per curve, in the order of data.PointCounts.
// Inconsistent arrays are reported as a session.KindConsistency error.
func Draw(data session.Data, opts Options) (*Document, error) {
	opts = opts.withDefaults()
	curves, err := data.Curves()
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Width:  opts.Width,
		Height: CanvasHeight(data.MaxY(), opts.Width, opts.AspectRatio),
		Paths:  make([]Path, 0, len(curves)),
	}
	for _, curve := range curves {
		doc.Paths = append(doc.Paths, curvePath(curve))
	}

	opts.Logger.Info("session drawn",
		logging.Int("curves", len(doc.Paths)),
		logging.Int("points", data.NumPoints()),
		logging.Int("width", doc.Width),
		logging.Float64("height", float64(doc.Height)),
	)
	return doc, nil
}

func curvePath(curve session.Curve) Path {
	return Path{
		Path:  svgpath.Polyline(curve.Points),
		Color: UnpackColor(curve.Color),
		Width: curve.Width,
	}
}

// UnpackColor splits a packed session color.
// The red channel is stored in the lowest byte, then come green, blue,
// and alpha in the highest byte: 0xAABBGGRR.
func UnpackColor(packed uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(packed),
		G: uint8(packed >> 8),
		B: uint8(packed >> 16),
		A: uint8(packed >> 24),
	}
}

// Opacity returns the alpha channel of c, normalized to [0, 1].
func Opacity(c color.NRGBA) float32 {
	return float32(c.A) / 255
}
