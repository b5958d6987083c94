// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package openlink

import (
	"encoding/xml"

	"mellium.im/openlink/internal/attr"
	"mellium.im/openlink/internal/decode"
	"mellium.im/openlink/internal/encode"
	"mellium.im/openlink/internal/ns"
	"mellium.im/openlink/internal/validate"
	"mellium.im/openlink/xmltree"
	"mellium.im/xmlstream"
)

// Action is a request action offered by a profile.
type Action struct {
	ID    RequestAction
	Label string
}

// Profile is a user's view of a device at a site together with the actions
// it supports.
type Profile struct {
	ID       ProfileID
	Default  *bool
	Device   DeviceID
	Label    string
	Online   *bool
	Site     *Site
	Actions  []Action
	KeyPages []KeyPage
}

func (p Profile) check(v *validate.Checker) {
	v.Field(p.ID != "", "profile", "id")
	if p.Site != nil {
		p.Site.check(v)
	}
	for _, a := range p.Actions {
		v.Field(a.ID != "", "profile action", "id")
	}
	ids := make([]KeyPageID, 0, len(p.KeyPages))
	for _, kp := range p.KeyPages {
		kp.check(v)
		ids = append(ids, kp.ID)
	}
	validate.Unique(v, ids, "keypage")
}

// Validate returns the first problem with the profile.
func (p Profile) Validate() error { return strictCheck(p) }

// Problems returns every problem with the profile.
func (p Profile) Problems() []string { return lenientCheck(p) }

// TokenReader satisfies the xmlstream.Marshaler interface.
// The profile element is not namespaced; it inherits the namespace of the
// profiles element that contains it.
func (p Profile) TokenReader() xml.TokenReader {
	return p.tokenReader(xml.Name{Local: "profile"})
}

// TokenReaderNS is like TokenReader except that the profile element carries
// the profiles namespace.
func (p Profile) TokenReaderNS() xml.TokenReader {
	return p.tokenReader(xml.Name{Space: ns.Profiles, Local: "profile"})
}

func (p Profile) tokenReader(name xml.Name) xml.TokenReader {
	a := boolAttr(nil, "default", p.Default)
	a = attr.Append(a, "device", string(p.Device))
	a = attr.Append(a, "id", string(p.ID))
	a = attr.Append(a, "label", p.Label)
	a = boolAttr(a, "online", p.Online)

	var site, actions, keypages xml.TokenReader
	if p.Site != nil {
		site = p.Site.TokenReader()
	}
	if len(p.Actions) > 0 {
		inner := make([]xml.TokenReader, 0, len(p.Actions))
		for _, act := range p.Actions {
			aa := attr.Append(nil, "id", string(act.ID))
			aa = attr.Append(aa, "label", act.Label)
			inner = append(inner, encode.Local("action", aa))
		}
		actions = encode.Local("actions", nil, inner...)
	}
	if len(p.KeyPages) > 0 {
		inner := make([]xml.TokenReader, 0, len(p.KeyPages))
		for _, kp := range p.KeyPages {
			inner = append(inner, kp.TokenReader())
		}
		keypages = encode.Local("keypages", nil, inner...)
	}
	return encode.Elem(name, a, site, actions, keypages)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (p Profile) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, p.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (p Profile) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, p.TokenReader())
}

// DecodeProfile decodes a profile element.
// The returned errors describe text that could not be converted.
func DecodeProfile(el *xmltree.Element) (Profile, []string) {
	var e decode.Errors
	p := decodeProfile(el, &e)
	return p, e.List()
}

func decodeProfile(el *xmltree.Element, e *decode.Errors) Profile {
	get := func(local string) string {
		v, _ := el.AttrValue(local)
		return v
	}
	p := Profile{
		ID:      ProfileID(get("id")),
		Default: e.Bool("profile default", get("default")),
		Device:  DeviceID(get("device")),
		Label:   get("label"),
		Online:  e.Bool("profile online", get("online")),
	}
	if site := el.Child("site"); site != nil {
		s := decodeSite(site, e)
		p.Site = &s
	}
	for _, a := range el.Child("actions").All("action") {
		id, _ := a.AttrValue("id")
		label, _ := a.AttrValue("label")
		p.Actions = append(p.Actions, Action{
			ID:    decode.Enum(e, "profile action", id, ParseRequestAction),
			Label: label,
		})
	}
	for _, kp := range el.Child("keypages").All("keypage") {
		p.KeyPages = append(p.KeyPages, decodeKeyPage(kp, e))
	}
	return p
}
