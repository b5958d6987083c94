// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package openlink

import (
	"encoding/xml"
	"time"

	"mellium.im/openlink/internal/decode"
	"mellium.im/openlink/internal/encode"
	"mellium.im/openlink/internal/validate"
	"mellium.im/openlink/xmltree"
	"mellium.im/xmlstream"
	"mellium.im/xmpp/jid"
)

// HistoricalCall is a call history record.
// Every field is mandatory.
type HistoricalCall struct {
	ID           CallID
	User         UserID
	Interest     InterestID
	State        CallState
	Direction    CallDirection
	CallerNumber PhoneNumber
	CallerName   string
	CalledNumber PhoneNumber
	CalledName   string
	// StartTime is encoded in UTC with millisecond precision, so a decoded
	// entry always carries a UTC time truncated to the millisecond.
	StartTime time.Time
	Duration  *time.Duration

	// TSC is the telephony service component that recorded the call.
	TSC jid.JID
}

func (h HistoricalCall) check(v *validate.Checker) {
	const entity = "historical call"
	v.Field(h.ID != "", entity, "id")
	v.Field(h.User != "", entity, "user id")
	v.Field(h.Interest != "", entity, "interest id")
	v.Field(h.State != "", entity, "state")
	v.Field(h.Direction != "", entity, "direction")
	v.Field(h.CallerNumber != "", entity, "caller number")
	v.Field(h.CallerName != "", entity, "caller name")
	v.Field(h.CalledNumber != "", entity, "called number")
	v.Field(h.CalledName != "", entity, "called name")
	v.Field(!h.StartTime.IsZero(), entity, "start time")
	v.Field(h.Duration != nil, entity, "duration")
	v.Field(!h.TSC.Equal(jid.JID{}), entity, "tsc")
}

// Validate returns the first problem with the record.
func (h HistoricalCall) Validate() error { return strictCheck(h) }

// Problems returns every problem with the record.
func (h HistoricalCall) Problems() []string { return lenientCheck(h) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (h HistoricalCall) TokenReader() xml.TokenReader {
	var tsc xml.TokenReader
	if !h.TSC.Equal(jid.JID{}) {
		tsc = encode.Text("tsc", h.TSC.String())
	}
	return encode.Local("call", nil,
		encode.Text("id", string(h.ID)),
		encode.Text("userid", string(h.User)),
		encode.Text("interest", string(h.Interest)),
		encode.Text("state", string(h.State)),
		encode.Text("direction", string(h.Direction)),
		encode.Text("callernumber", string(h.CallerNumber)),
		encode.Text("callername", h.CallerName),
		encode.Text("callednumber", string(h.CalledNumber)),
		encode.Text("calledname", h.CalledName),
		encode.Time("timestamp", h.StartTime),
		encode.Millis("duration", h.Duration),
		tsc,
	)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (h HistoricalCall) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, h.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (h HistoricalCall) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, h.TokenReader())
}

// DecodeHistoricalCall decodes a call element of a call history.
// The returned errors describe text that could not be converted.
func DecodeHistoricalCall(el *xmltree.Element) (HistoricalCall, []string) {
	var e decode.Errors
	h := decodeHistoricalCall(el, &e)
	return h, e.List()
}

func decodeHistoricalCall(el *xmltree.Element, e *decode.Errors) HistoricalCall {
	return HistoricalCall{
		ID:           CallID(el.ChildText("id")),
		User:         UserID(el.ChildText("userid")),
		Interest:     InterestID(el.ChildText("interest")),
		State:        decode.Enum(e, "state", el.ChildText("state"), ParseCallState),
		Direction:    decode.Enum(e, "direction", el.ChildText("direction"), ParseCallDirection),
		CallerNumber: PhoneNumber(el.ChildText("callernumber")),
		CallerName:   el.ChildText("callername"),
		CalledNumber: PhoneNumber(el.ChildText("callednumber")),
		CalledName:   el.ChildText("calledname"),
		StartTime:    e.Time("timestamp", el.ChildText("timestamp")),
		Duration:     e.Millis("duration", el.ChildText("duration")),
		TSC:          e.JID("tsc", el.ChildText("tsc")),
	}
}
