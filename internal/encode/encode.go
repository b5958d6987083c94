// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package encode contains helpers for building token streams out of
// optional Openlink fields.
package encode // import "mellium.im/openlink/internal/encode"

import (
	"encoding/xml"
	"time"

	"mellium.im/openlink/internal/decode"
	"mellium.im/xmlstream"
)

// Elem wraps the non-nil inner readers in an element.
func Elem(name xml.Name, attr []xml.Attr, inner ...xml.TokenReader) xml.TokenReader {
	return xmlstream.Wrap(
		Multi(inner...),
		xml.StartElement{Name: name, Attr: attr},
	)
}

// Local is like Elem for an element without a namespace.
func Local(local string, attr []xml.Attr, inner ...xml.TokenReader) xml.TokenReader {
	return Elem(xml.Name{Local: local}, attr, inner...)
}

// Text returns an element containing value as character data, or nil if
// value is empty.
func Text(local, value string) xml.TokenReader {
	if value == "" {
		return nil
	}
	return Chars(local, nil, value)
}

// Chars returns an element with the given attributes containing value even if
// value is empty.
func Chars(local string, attr []xml.Attr, value string) xml.TokenReader {
	var inner xml.TokenReader
	if value != "" {
		inner = xmlstream.Token(xml.CharData(value))
	}
	return xmlstream.Wrap(inner, xml.StartElement{Name: xml.Name{Local: local}, Attr: attr})
}

// Multi concatenates the non-nil readers.
func Multi(r ...xml.TokenReader) xml.TokenReader {
	inner := make([]xml.TokenReader, 0, len(r))
	for _, tr := range r {
		if tr != nil {
			inner = append(inner, tr)
		}
	}
	return xmlstream.MultiReader(inner...)
}

// Attr returns an attribute with no namespace.
func Attr(local, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: local}, Value: value}
}

// Bool returns an element containing "true" or "false", or nil if b is nil.
func Bool(local string, b *bool) xml.TokenReader {
	if b == nil {
		return nil
	}
	return Text(local, decode.FormatBool(*b))
}

// Int returns an element containing i in base 10, or nil if i is nil.
func Int(local string, i *int64) xml.TokenReader {
	if i == nil {
		return nil
	}
	return Text(local, decode.FormatInt(*i))
}

// Millis returns an element containing d in milliseconds, or nil if d is nil.
func Millis(local string, d *time.Duration) xml.TokenReader {
	if d == nil {
		return nil
	}
	return Text(local, decode.FormatMillis(*d))
}

// Time returns an element containing t in the XEP-0082 profile, or nil if t is
// the zero time.
func Time(local string, t time.Time) xml.TokenReader {
	if t.IsZero() {
		return nil
	}
	return Text(local, decode.FormatTime(t))
}

// Legacy returns an element containing t as a deprecated timestamp, or nil if
// t is the zero time.
func Legacy(local string, t time.Time) xml.TokenReader {
	if t.IsZero() {
		return nil
	}
	return Text(local, decode.FormatLegacy(t))
}

// Date returns an element containing t as MM/dd/yyyy, or nil if t is the zero
// time.
func Date(local string, t time.Time) xml.TokenReader {
	if t.IsZero() {
		return nil
	}
	return Text(local, decode.FormatDate(t))
}
