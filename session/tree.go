package session

import (
	"errors"
	"io"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

var errManyRootElements = errors.New("document has several root elements")

// ParseTree reads a whole XML document.
// Non UTF-8 documents are supported through their encoding declaration.
//
// Whitespace-only text between elements is kept, and adjacent character
// data (text and CDATA sections) is merged into a single node, so sibling
// positions match the serialized layout.
func ParseTree(stream io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if _, err := doc.ReadFrom(stream); err != nil {
		return nil, err
	}

	roots := 0
	for _, c := range doc.Child {
		if _, ok := c.(*etree.Element); ok {
			roots++
		}
	}
	switch {
	case roots == 0:
		return nil, errNoRootElement
	case roots > 1:
		return nil, errManyRootElements
	}

	mergeCharData(doc.Root())
	return doc, nil
}

func mergeCharData(e *etree.Element) {
	for i := 0; i < len(e.Child); {
		switch c := e.Child[i].(type) {
		case *etree.Element:
			mergeCharData(c)
		case *etree.CharData:
			if i > 0 {
				if prev, ok := e.Child[i-1].(*etree.CharData); ok {
					prev.Data += c.Data
					e.RemoveChildAt(i)
					continue
				}
			}
		}
		i++
	}
}

// walk calls fn on t and all its descendants, in document order.
// It stops as soon as fn returns false.
func walk(t etree.Token, fn func(etree.Token) bool) bool {
	if !fn(t) {
		return false
	}
	if e, ok := t.(*etree.Element); ok {
		for _, c := range e.Child {
			if !walk(c, fn) {
				return false
			}
		}
	}
	return true
}

// nextSibling returns the token following t in its parent, or nil.
func nextSibling(t etree.Token) etree.Token {
	parent := t.Parent()
	if parent == nil {
		return nil
	}
	i := t.Index() + 1
	if i <= 0 || i >= len(parent.Child) {
		return nil
	}
	return parent.Child[i]
}

func firstChild(t etree.Token) etree.Token {
	if e, ok := t.(*etree.Element); ok && len(e.Child) != 0 {
		return e.Child[0]
	}
	return nil
}

// textOf returns the text carried by t: its content for character data,
// the content of its first child, when it is character data, for an element.
func textOf(t etree.Token) (string, bool) {
	switch t := t.(type) {
	case *etree.CharData:
		return t.Data, true
	case *etree.Element:
		if c, ok := firstChild(t).(*etree.CharData); ok {
			return c.Data, true
		}
	}
	return "", false
}
