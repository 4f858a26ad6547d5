package svgdraw

import (
	"bytes"
	"encoding/xml"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/sessionsvg/session"
)

func TestUnpackColor(t *testing.T) {
	for _, test := range []struct {
		packed   uint32
		expected color.NRGBA
	}{
		{0x80FF4020, color.NRGBA{R: 0x20, G: 0x40, B: 0xFF, A: 0x80}},
		{0x000000FF, color.NRGBA{R: 0xFF, G: 0, B: 0, A: 0}},
		{0xFF000000, color.NRGBA{R: 0, G: 0, B: 0, A: 0xFF}},
		{0x12345678, color.NRGBA{R: 0x78, G: 0x56, B: 0x34, A: 0x12}},
	} {
		if got := UnpackColor(test.packed); got != test.expected {
			t.Errorf("UnpackColor(%#08x): expected %v, got %v", test.packed, test.expected, got)
		}
	}
}

func TestOpacity(t *testing.T) {
	require.Equal(t, float32(1), Opacity(color.NRGBA{A: 255}))
	require.Equal(t, float32(0), Opacity(color.NRGBA{A: 0}))
	require.InDelta(t, 0.5, Opacity(color.NRGBA{A: 128}), 0.01)
}

func TestDrawSingleCurve(t *testing.T) {
	data := session.Data{
		Points:      []float32{0, 0, 10, 0, 10, 10},
		PointCounts: []int32{3},
		Widths:      []float32{2},
		Colors:      []uint32{0x000000FF},
	}
	doc, err := Draw(data, Options{})
	require.NoError(t, err)
	require.Len(t, doc.Paths, 1)

	require.Equal(t, DefaultWidth, doc.Width)
	require.Equal(t, CanvasHeight(10, DefaultWidth, DefaultAspectRatio), doc.Height)

	p := doc.Paths[0]
	require.Equal(t, "M0 0 L10 0 L10 10 ", p.Path.ToSVGPath())
	require.Equal(t, float32(2), p.Width)
	require.Equal(t, color.NRGBA{R: 255}, p.Color)

	el := p.element()
	require.Equal(t, "none", el.Fill)
	require.Equal(t, "rgb(255,0,0)", el.Stroke)
	require.Equal(t, "round", el.StrokeLinecap)
	require.Equal(t, "round", el.StrokeLinejoin)
	require.Equal(t, "0", el.StrokeOpacity)
	require.Equal(t, "2", el.StrokeWidth)
}

func TestDrawAdvancesCursor(t *testing.T) {
	data := session.Data{
		Points:      []float32{1, 2, 3, 4, 5, 6},
		PointCounts: []int32{2, 1},
		Widths:      []float32{1, 3.5},
		Colors:      []uint32{0xFF0000FF, 0x8000FF00},
	}
	doc, err := Draw(data, Options{})
	require.NoError(t, err)
	require.Len(t, doc.Paths, 2)

	require.Equal(t, "M1 2 L3 4 ", doc.Paths[0].Path.ToSVGPath())
	require.Equal(t, "M5 6 ", doc.Paths[1].Path.ToSVGPath())

	second := doc.Paths[1].element()
	require.Equal(t, "rgb(0,255,0)", second.Stroke)
	require.Equal(t, "3.5", second.StrokeWidth)
	require.Equal(t, "0.5019608", second.StrokeOpacity)
	require.Equal(t, "1", doc.Paths[0].element().StrokeOpacity)
}

func TestDrawHeightCoversContent(t *testing.T) {
	data := session.Data{
		Points:      []float32{0, 1500, 3, -20, 7, 800},
		PointCounts: []int32{3},
		Widths:      []float32{1},
		Colors:      []uint32{0xFF000000},
	}
	doc, err := Draw(data, Options{Width: 100, AspectRatio: 2})
	require.NoError(t, err)
	require.Equal(t, 100, doc.Width)
	require.Equal(t, float32(1700), doc.Height)
	require.GreaterOrEqual(t, doc.Height, data.MaxY())
}

func TestDrawRejectsInconsistentData(t *testing.T) {
	for name, data := range map[string]session.Data{
		"counts beyond points": {
			Points: []float32{0, 0, 1, 1}, PointCounts: []int32{3},
			Widths: []float32{1}, Colors: []uint32{0},
		},
		"points left over": {
			Points: []float32{0, 0, 1, 1, 2, 2}, PointCounts: []int32{2},
			Widths: []float32{1}, Colors: []uint32{0},
		},
		"missing width": {
			Points: []float32{0, 0}, PointCounts: []int32{1},
			Widths: nil, Colors: []uint32{0},
		},
		"missing color": {
			Points: []float32{0, 0}, PointCounts: []int32{1},
			Widths: []float32{1}, Colors: nil,
		},
	} {
		_, err := Draw(data, Options{})
		require.Error(t, err, name)
		require.True(t, session.IsKind(err, session.KindConsistency), name)
	}
}

func TestWriteTo(t *testing.T) {
	data := session.Data{
		Points:      []float32{0, 0, 10, 0, 10, 10, 2, 3},
		PointCounts: []int32{3, 1},
		Widths:      []float32{2, 1},
		Colors:      []uint32{0xFF0000FF, 0xFF00FF00},
	}
	doc, err := Draw(data, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	require.True(t, strings.HasPrefix(buf.String(), "<?xml"))

	var parsed struct {
		XMLName xml.Name `xml:"svg"`
		ViewBox string   `xml:"viewBox,attr"`
		Width   string   `xml:"width,attr"`
		Height  string   `xml:"height,attr"`
		Paths   []struct {
			D string `xml:"d,attr"`
		} `xml:"path"`
	}
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &parsed))
	require.Equal(t, svgNamespace, parsed.XMLName.Space)
	require.Equal(t, "565", parsed.Width)
	require.Equal(t, "0 0 565 "+parsed.Height, parsed.ViewBox)
	require.Len(t, parsed.Paths, 2)
	require.Equal(t, "M0 0 L10 0 L10 10 ", parsed.Paths[0].D)
	require.Equal(t, "M2 3 ", parsed.Paths[1].D)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.svg")
	doc := &Document{Width: 10, Height: 20}
	require.NoError(t, doc.Save(out))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(content), `viewBox="0 0 10 20"`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file should have been renamed")
}

func TestSaveMissingDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "out.svg")
	err := (&Document{Width: 10, Height: 20}).Save(out)
	require.Error(t, err)
	require.True(t, session.IsKind(err, session.KindWrite))
	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr))
}
