package svgdraw

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/benoitkugler/sessionsvg/session"
	"github.com/benoitkugler/sessionsvg/svgpath"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// Path binds a style to a path. The path is always stroked with
// round caps and joins, and never filled.
type Path struct {
	Path  svgpath.Path
	Color color.NRGBA // stroke color; alpha gives the stroke opacity
	Width float32     // stroke width
}

// Document is a drawn session, ready to be serialized.
// Its view box is (0, 0, Width, Height).
type Document struct {
	Width  int
	Height float32
	Paths  []Path
}

type svgElement struct {
	XMLName xml.Name      `xml:"svg"`
	Xmlns   string        `xml:"xmlns,attr"`
	ViewBox string        `xml:"viewBox,attr"`
	Width   string        `xml:"width,attr"`
	Height  string        `xml:"height,attr"`
	Paths   []pathElement `xml:"path"`
}

type pathElement struct {
	D              string `xml:"d,attr"`
	Fill           string `xml:"fill,attr"`
	Stroke         string `xml:"stroke,attr"`
	StrokeLinecap  string `xml:"stroke-linecap,attr"`
	StrokeLinejoin string `xml:"stroke-linejoin,attr"`
	StrokeOpacity  string `xml:"stroke-opacity,attr"`
	StrokeWidth    string `xml:"stroke-width,attr"`
}

func (p Path) element() pathElement {
	return pathElement{
		D:              p.Path.ToSVGPath(),
		Fill:           "none",
		Stroke:         fmt.Sprintf("rgb(%d,%d,%d)", p.Color.R, p.Color.G, p.Color.B),
		StrokeLinecap:  "round",
		StrokeLinejoin: "round",
		StrokeOpacity:  svgpath.FormatNumber(Opacity(p.Color)),
		StrokeWidth:    svgpath.FormatNumber(p.Width),
	}
}

func (d *Document) element() svgElement {
	width, height := strconv.Itoa(d.Width), svgpath.FormatNumber(d.Height)
	out := svgElement{
		Xmlns:   svgNamespace,
		ViewBox: "0 0 " + width + " " + height,
		Width:   width,
		Height:  height,
		Paths:   make([]pathElement, len(d.Paths)),
	}
	for i, p := range d.Paths {
		out.Paths[i] = p.element()
	}
	return out
}

// WriteTo writes the standalone SVG document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if _, err := io.WriteString(cw, xml.Header); err != nil {
		return cw.n, err
	}
	enc := xml.NewEncoder(cw)
	enc.Indent("", "  ")
	if err := enc.Encode(d.element()); err != nil {
		return cw.n, err
	}
	if err := enc.Close(); err != nil {
		return cw.n, err
	}
	_, err := io.WriteString(cw, "\n")
	return cw.n, err
}

// Save writes the document to the named file.
// The content is written to a temporary file in the same directory,
// which is then renamed, so that a failure never leaves a partial file.
func (d *Document) Save(svgFile string) error {
	tmp, err := os.CreateTemp(filepath.Dir(svgFile), ".sessionsvg-*.tmp")
	if err != nil {
		return session.WrapError(session.KindWrite, "", "can't create output file", err)
	}
	tmpName := tmp.Name()
	fail := func(msg string, cause error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return session.WrapError(session.KindWrite, "", msg, cause)
	}

	buf := bufio.NewWriter(tmp)
	if _, err := d.WriteTo(buf); err != nil {
		return fail("can't write svg", err)
	}
	if err := buf.Flush(); err != nil {
		return fail("can't write svg", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail("can't set output permissions", err)
	}
	if err := tmp.Close(); err != nil {
		return fail("can't write svg", err)
	}
	if err := os.Rename(tmpName, svgFile); err != nil {
		_ = os.Remove(tmpName)
		return session.WrapError(session.KindWrite, "", "can't move svg into place", err)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
