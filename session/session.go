// Reads drawing session files: plist XML documents embedding,
// as base64 data, the points, point counts, widths and colors
// of freehand curves.
// The document is first located as four raw payloads (see Payload),
// which are then decoded into typed sequences (see Data),
// ready to be drawn by the svgdraw package.
package session

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/beevik/etree"

	"github.com/benoitkugler/sessionsvg/internal/logging"
)

// Labels of the four arrays, as they appear in the session file.
const (
	LabelPoints      = "curvespoints"
	LabelPointCounts = "curvesnumpoints"
	LabelWidths      = "curveswidth"
	LabelColors      = "curvescolors"
)

// Labels lists the four labels, in the order they are reported when missing.
var Labels = [...]string{LabelPoints, LabelPointCounts, LabelWidths, LabelColors}

var errNoRootElement = errors.New("document has no root element")

// Payload holds the four base64 strings found in a session file,
// stripped of whitespace wrapping.
type Payload struct {
	Points      string // float32 (x, y) pairs
	PointCounts string // int32, one per curve
	Widths      string // float32, one per curve
	Colors      string // uint32 packed colors, one per curve
}

func (p *Payload) field(label string) *string {
	switch label {
	case LabelPoints:
		return &p.Points
	case LabelPointCounts:
		return &p.PointCounts
	case LabelWidths:
		return &p.Widths
	case LabelColors:
		return &p.Colors
	}
	return nil
}

// ReadPayloadStream parses the session document from `stream`
// and extracts the four payloads.
// If logger is nil, nothing is logged.
func ReadPayloadStream(stream io.Reader, logger *slog.Logger) (Payload, error) {
	doc, err := ParseTree(stream)
	if err != nil {
		return Payload{}, WrapError(KindParse, "", "invalid session xml", err)
	}
	return LocatePayload(doc, logger)
}

// ReadPayload reads the named session file and extracts the four payloads.
// The file is closed before the document is searched.
func ReadPayload(sessionFile string, logger *slog.Logger) (Payload, error) {
	content, err := os.ReadFile(sessionFile)
	if err != nil {
		return Payload{}, WrapError(KindIO, "", "can't read session file", err)
	}
	return ReadPayloadStream(bytes.NewReader(content), logger)
}

// LocatePayload searches every text node of `doc` for the four labels and
// resolves their values with ValueOf.
// When a label appears several times, the last occurrence wins.
func LocatePayload(doc *etree.Document, logger *slog.Logger) (Payload, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	var (
		payload Payload
		found   = map[string]bool{}
		err     error
	)
	if root := doc.Root(); root != nil {
		walk(root, func(t etree.Token) bool {
			label, ok := t.(*etree.CharData)
			if !ok {
				return true
			}
			dst := payload.field(label.Data)
			if dst == nil {
				return true
			}
			var value string
			if value, err = ValueOf(label); err != nil {
				return false
			}
			if found[label.Data] {
				logger.Debug("label found again, keeping the last value", logging.String("label", label.Data))
			}
			found[label.Data] = true
			*dst = cleanPayload(value)
			return true
		})
	}
	if err != nil {
		return Payload{}, err
	}
	for _, label := range Labels {
		if !found[label] {
			return Payload{}, NewError(KindMissingLabel, label, "label not found in session")
		}
		logger.Debug("payload located", logging.String("label", label), logging.Int("length", len(*payload.field(label))))
	}
	return payload, nil
}

// ValueOf resolves the value associated with the label text node `label`.
//
// Session files store their entries as a key/value list:
//
//	<key>curvespoints</key>
//	<data>
//	BASE64...
//	</data>
//
// The key element (the label's parent) is followed by one separator node
// (the whitespace between the two elements), then by the value element,
// whose first child carries the text.
func ValueOf(label *etree.CharData) (string, error) {
	key := label.Parent()
	if key == nil {
		return "", NewError(KindStructure, label.Data, "label is not enclosed in a key element")
	}
	separator := nextSibling(key)
	if separator == nil {
		return "", NewError(KindStructure, label.Data, "key element has no following sibling")
	}
	value := nextSibling(separator)
	if value == nil {
		return "", NewError(KindStructure, label.Data, "no value node after the key separator")
	}
	content := firstChild(value)
	if content == nil {
		return "", NewError(KindStructure, label.Data, "value node is empty")
	}
	text, ok := textOf(content)
	if !ok {
		return "", NewError(KindStructure, label.Data, "value node carries no text")
	}
	return text, nil
}

// cleanPayload removes the wrapping applied to long data values.
func cleanPayload(s string) string {
	s = strings.TrimSpace(s)
	return strings.NewReplacer("\n", "", "\t", "").Replace(s)
}
