// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package xmltree materializes an XML element into a small tree that can be
// walked by name.
//
// Every lookup method is safe to call on a nil *Element, which makes it
// possible to descend a fixed path and check for absence once at the end:
//
//	out := iq.Child("command").Child("iodata").Child("out")
//	if out == nil {
//		…
//	}
package xmltree // import "mellium.im/openlink/xmltree"

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"mellium.im/openlink/internal/attr"
	"mellium.im/xmlstream"
)

// ErrNoElement is returned by Decode if the stream ends before a start
// element is found.
var ErrNoElement = errors.New("xmltree: expected start element")

// Element is an XML element with its attributes, child elements and
// character data.
type Element struct {
	XMLName  xml.Name
	Attr     []xml.Attr
	Children []*Element

	text []byte
}

// Decode reads the element that begins with start from r.
// If start is nil the first start element in r is used and anything before it
// is skipped.
func Decode(r xml.TokenReader, start *xml.StartElement) (*Element, error) {
	if start == nil {
		for {
			tok, err := r.Token()
			if s, ok := tok.(xml.StartElement); ok {
				start = &s
				break
			}
			if err != nil {
				if err == io.EOF {
					return nil, ErrNoElement
				}
				return nil, err
			}
		}
	}
	el := &Element{
		XMLName: start.Name,
		Attr:    copyAttr(start.Attr),
	}
	for {
		// Readers may return the final token together with io.EOF.
		tok, err := r.Token()
		switch t := tok.(type) {
		case xml.StartElement:
			if err != nil {
				return el, io.ErrUnexpectedEOF
			}
			child, err := Decode(r, &t)
			if err != nil {
				return el, err
			}
			el.Children = append(el.Children, child)
		case xml.CharData:
			el.text = append(el.text, t...)
		case xml.EndElement:
			return el, nil
		}
		if err != nil {
			if err == io.EOF {
				return el, io.ErrUnexpectedEOF
			}
			return el, err
		}
	}
}

// Parse decodes the first element in the XML document read from r.
func Parse(r io.Reader) (*Element, error) {
	return Decode(xml.NewDecoder(r), nil)
}

// ParseString is like Parse but reads from a string.
func ParseString(s string) (*Element, error) {
	return Parse(strings.NewReader(s))
}

func copyAttr(a []xml.Attr) []xml.Attr {
	if len(a) == 0 {
		return nil
	}
	out := make([]xml.Attr, len(a))
	copy(out, a)
	return out
}

// Local returns the local name of the element or an empty string if e is nil.
func (e *Element) Local() string {
	if e == nil {
		return ""
	}
	return e.XMLName.Local
}

// Space returns the namespace of the element or an empty string if e is nil.
func (e *Element) Space() string {
	if e == nil {
		return ""
	}
	return e.XMLName.Space
}

// Child returns the first child element with the given local name.
func (e *Element) Child(local string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.XMLName.Local == local {
			return c
		}
	}
	return nil
}

// Path descends through the first child with each local name in turn.
func (e *Element) Path(local ...string) *Element {
	for _, l := range local {
		e = e.Child(l)
	}
	return e
}

// All returns every child element with the given local name in document
// order.
func (e *Element) All(local string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if c.XMLName.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// Elements returns every child element.
func (e *Element) Elements() []*Element {
	if e == nil {
		return nil
	}
	return e.Children
}

// AttrValue returns the value of the first attribute with the given local
// name, and whether it was present.
func (e *Element) AttrValue(local string) (string, bool) {
	if e == nil {
		return "", false
	}
	i, v := attr.Get(e.Attr, local)
	return v, i >= 0
}

// Text returns the character data directly inside the element with leading
// and trailing white space removed.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(string(e.text))
}

// ChildText returns the text of the first child with the given local name.
func (e *Element) ChildText(local string) string {
	return e.Child(local).Text()
}

// TokenReader returns a stream of tokens that re-encodes the element.
func (e *Element) TokenReader() xml.TokenReader {
	if e == nil {
		return xmlstream.MultiReader()
	}
	start := xml.StartElement{Name: e.XMLName}
	for _, a := range e.Attr {
		if a.Name.Local == "xmlns" || a.Name.Space == "xmlns" {
			continue
		}
		start.Attr = append(start.Attr, a)
	}
	inner := make([]xml.TokenReader, 0, len(e.Children)+1)
	if len(e.text) > 0 {
		inner = append(inner, xmlstream.Token(xml.CharData(e.text)))
	}
	for _, c := range e.Children {
		inner = append(inner, c.TokenReader())
	}
	return xmlstream.Wrap(xmlstream.MultiReader(inner...), start)
}
