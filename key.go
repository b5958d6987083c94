// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package openlink

import (
	"encoding/xml"

	"mellium.im/openlink/internal/attr"
	"mellium.im/openlink/internal/decode"
	"mellium.im/openlink/internal/encode"
	"mellium.im/openlink/internal/validate"
	"mellium.im/openlink/xmltree"
	"mellium.im/xmlstream"
)

// Key is a programmable key on a device.
type Key struct {
	ID        KeyID
	Label     KeyLabel
	Function  KeyFunction
	Qualifier KeyQualifier
	Modifier  KeyModifier
	Color     KeyColor
	Interest  InterestID
}

func (k Key) check(v *validate.Checker) {
	v.Field(k.ID != "", "key", "id")
}

// Validate returns the first problem with the key.
func (k Key) Validate() error { return strictCheck(k) }

// Problems returns every problem with the key.
func (k Key) Problems() []string { return lenientCheck(k) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (k Key) TokenReader() xml.TokenReader {
	a := attr.Append(nil, "id", string(k.ID))
	a = attr.Append(a, "label", string(k.Label))
	a = attr.Append(a, "function", string(k.Function))
	a = attr.Append(a, "qualifier", string(k.Qualifier))
	a = attr.Append(a, "modifier", string(k.Modifier))
	a = attr.Append(a, "color", string(k.Color))
	a = attr.Append(a, "interest", string(k.Interest))
	return encode.Local("key", a)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (k Key) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, k.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (k Key) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, k.TokenReader())
}

func decodeKey(el *xmltree.Element) Key {
	get := func(local string) string {
		v, _ := el.AttrValue(local)
		return v
	}
	return Key{
		ID:        KeyID(get("id")),
		Label:     KeyLabel(get("label")),
		Function:  KeyFunction(get("function")),
		Qualifier: KeyQualifier(get("qualifier")),
		Modifier:  KeyModifier(get("modifier")),
		Color:     KeyColor(get("color")),
		Interest:  InterestID(get("interest")),
	}
}

// KeyPage is a page of keys on a device.
type KeyPage struct {
	ID           KeyPageID
	Label        KeyPageLabel
	Module       KeyPageModule
	LocalKeyPage LocalKeyPage
	Keys         []Key
}

func (p KeyPage) check(v *validate.Checker) {
	v.Field(p.ID != "", "keypage", "id")
	ids := make([]KeyID, 0, len(p.Keys))
	for _, k := range p.Keys {
		k.check(v)
		ids = append(ids, k.ID)
	}
	validate.Unique(v, ids, "key")
}

// Validate returns the first problem with the key page.
func (p KeyPage) Validate() error { return strictCheck(p) }

// Problems returns every problem with the key page.
func (p KeyPage) Problems() []string { return lenientCheck(p) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (p KeyPage) TokenReader() xml.TokenReader {
	a := attr.Append(nil, "id", string(p.ID))
	a = attr.Append(a, "label", string(p.Label))
	a = attr.Append(a, "module", string(p.Module))
	a = attr.Append(a, "local_keypage", string(p.LocalKeyPage))
	keys := make([]xml.TokenReader, 0, len(p.Keys))
	for _, k := range p.Keys {
		keys = append(keys, k.TokenReader())
	}
	return encode.Local("keypage", a, keys...)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (p KeyPage) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, p.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (p KeyPage) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, p.TokenReader())
}

// DecodeKeyPage decodes a keypage element.
// Key pages carry only strings so no conversion errors are possible, the
// second return value is always nil and is present for symmetry.
func DecodeKeyPage(el *xmltree.Element) (KeyPage, []string) {
	var e decode.Errors
	return decodeKeyPage(el, &e), e.List()
}

func decodeKeyPage(el *xmltree.Element, _ *decode.Errors) KeyPage {
	get := func(local string) string {
		v, _ := el.AttrValue(local)
		return v
	}
	p := KeyPage{
		ID:           KeyPageID(get("id")),
		Label:        KeyPageLabel(get("label")),
		Module:       KeyPageModule(get("module")),
		LocalKeyPage: LocalKeyPage(get("local_keypage")),
	}
	for _, k := range el.All("key") {
		p.Keys = append(p.Keys, decodeKey(k))
	}
	return p
}
