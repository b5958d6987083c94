// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package openlink

import (
	"encoding/xml"

	"mellium.im/openlink/internal/decode"
	"mellium.im/openlink/internal/encode"
	"mellium.im/openlink/internal/ns"
	"mellium.im/openlink/internal/validate"
	"mellium.im/openlink/xmltree"
	"mellium.im/xmlstream"
)

// CallStatus is a snapshot of one or more calls.
type CallStatus struct {
	Busy  *bool
	Calls []Call
}

func (cs CallStatus) check(v *validate.Checker) {
	v.Require(len(cs.Calls) > 0,
		"The callstatus has no calls",
		"Invalid callstatus; missing or invalid calls",
	)
	ids := make([]CallID, 0, len(cs.Calls))
	for _, c := range cs.Calls {
		ids = append(ids, c.ID)
	}
	validate.Unique(v, ids, "call")
	for _, c := range cs.Calls {
		c.check(v)
	}
}

// Validate returns the first problem with the call status.
func (cs CallStatus) Validate() error { return strictCheck(cs) }

// Problems returns every problem with the call status.
func (cs CallStatus) Problems() []string { return lenientCheck(cs) }

// Interests returns the interest of each call in order.
func (cs CallStatus) Interests() []InterestID {
	ids := make([]InterestID, 0, len(cs.Calls))
	for _, c := range cs.Calls {
		ids = append(ids, c.Interest)
	}
	return ids
}

// TokenReader satisfies the xmlstream.Marshaler interface.
func (cs CallStatus) TokenReader() xml.TokenReader {
	calls := make([]xml.TokenReader, 0, len(cs.Calls))
	for _, c := range cs.Calls {
		calls = append(calls, c.TokenReader())
	}
	return encode.Elem(
		xml.Name{Space: ns.CallStatus, Local: "callstatus"},
		boolAttr(nil, "busy", cs.Busy),
		calls...,
	)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (cs CallStatus) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, cs.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (cs CallStatus) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, cs.TokenReader())
}

// DecodeCallStatus decodes a callstatus element.
// The returned errors describe text that could not be converted.
func DecodeCallStatus(el *xmltree.Element) (CallStatus, []string) {
	var e decode.Errors
	cs := decodeCallStatus(el, &e)
	return cs, e.List()
}

func decodeCallStatus(el *xmltree.Element, e *decode.Errors) CallStatus {
	busy, _ := el.AttrValue("busy")
	cs := CallStatus{
		Busy: e.Bool("callstatus busy", busy),
	}
	for _, c := range el.All("call") {
		cs.Calls = append(cs.Calls, decodeCall(c, e))
	}
	return cs
}
