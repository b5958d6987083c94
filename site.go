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

// Site is the telephony system a profile or call belongs to.
type Site struct {
	ID      SiteID
	Default *bool
	Type    SiteType
	Name    string
}

func (s Site) check(v *validate.Checker) {
	v.Field(s.ID != "", "site", "id")
	v.Field(s.Type != "", "site", "type")
	v.Field(s.Name != "", "site", "name")
}

// Validate returns the first problem with the site.
func (s Site) Validate() error { return strictCheck(s) }

// Problems returns every problem with the site.
func (s Site) Problems() []string { return lenientCheck(s) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (s Site) TokenReader() xml.TokenReader {
	a := boolAttr(nil, "default", s.Default)
	a = attr.Append(a, "id", string(s.ID))
	a = attr.Append(a, "type", string(s.Type))
	return encode.Chars("site", a, s.Name)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (s Site) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, s.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (s Site) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, s.TokenReader())
}

// DecodeSite decodes a site element.
// The returned errors describe text that could not be converted.
func DecodeSite(el *xmltree.Element) (Site, []string) {
	var e decode.Errors
	s := decodeSite(el, &e)
	return s, e.List()
}

func decodeSite(el *xmltree.Element, e *decode.Errors) Site {
	id, _ := el.AttrValue("id")
	def, _ := el.AttrValue("default")
	typ, _ := el.AttrValue("type")
	return Site{
		ID:      SiteID(id),
		Default: e.Bool("site default", def),
		Type:    decode.Enum(e, "site type", typ, ParseSiteType),
		Name:    el.Text(),
	}
}
