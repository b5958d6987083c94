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

// Interest is a line or extension whose call events can be subscribed to.
type Interest struct {
	ID       InterestID
	Type     string
	Label    string
	Default  *bool
	MaxCalls *int64

	// CallStatus is the current status of the interest, if the server
	// included it.
	CallStatus *CallStatus
}

func (i Interest) check(v *validate.Checker) {
	v.Field(i.ID != "", "interest", "id")
	v.Field(i.Type != "", "interest", "type")
	v.Field(i.Label != "", "interest", "label")
	if i.CallStatus != nil {
		i.CallStatus.check(v)
	}
}

// Validate returns the first problem with the interest.
func (i Interest) Validate() error { return strictCheck(i) }

// Problems returns every problem with the interest.
func (i Interest) Problems() []string { return lenientCheck(i) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (i Interest) TokenReader() xml.TokenReader {
	a := attr.Append(nil, "id", string(i.ID))
	a = attr.Append(a, "type", i.Type)
	a = attr.Append(a, "label", i.Label)
	a = boolAttr(a, "default", i.Default)
	a = intAttr(a, "maxCalls", i.MaxCalls)
	var status xml.TokenReader
	if i.CallStatus != nil {
		status = i.CallStatus.TokenReader()
	}
	return encode.Local("interest", a, status)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (i Interest) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, i.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (i Interest) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, i.TokenReader())
}

// DecodeInterest decodes an interest element.
// The returned errors describe text that could not be converted.
func DecodeInterest(el *xmltree.Element) (Interest, []string) {
	var e decode.Errors
	i := decodeInterest(el, &e)
	return i, e.List()
}

func decodeInterest(el *xmltree.Element, e *decode.Errors) Interest {
	get := func(local string) string {
		v, _ := el.AttrValue(local)
		return v
	}
	i := Interest{
		ID:       InterestID(get("id")),
		Type:     get("type"),
		Label:    get("label"),
		Default:  e.Bool("interest default", get("default")),
		MaxCalls: e.Int("interest maxCalls", get("maxCalls")),
	}
	if cs := el.Child("callstatus"); cs != nil {
		status := decodeCallStatus(cs, e)
		i.CallStatus = &status
	}
	return i
}
