// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package openlink

import (
	"encoding/xml"
	"time"

	"mellium.im/openlink/internal/attr"
	"mellium.im/openlink/internal/decode"
	"mellium.im/openlink/internal/encode"
	"mellium.im/openlink/internal/validate"
	"mellium.im/openlink/xmltree"
	"mellium.im/xmlstream"
)

// Call is the state of one leg of a telephone call as seen from a profile.
type Call struct {
	ID              CallID
	TelephonyCallID TelephonyCallID
	Conference      ConferenceID
	Site            *Site
	Profile         ProfileID
	Interest        InterestID
	Changed         Changed
	State           CallState
	Direction       CallDirection
	Caller          PartyInfo
	Called          PartyInfo

	OriginatorReferences OriginatorReferences

	// StartTime is encoded in UTC with millisecond precision, so a decoded
	// call always carries a UTC time truncated to the millisecond.
	StartTime time.Time
	Duration  *time.Duration

	Actions      []RequestAction
	Features     []Feature
	Participants []Participant
}

// IsParticipating reports whether the profile's user is taking part in the
// call given its state and direction.
func (c Call) IsParticipating() bool {
	return c.State.IsParticipating(c.Direction)
}

func (c Call) check(v *validate.Checker) {
	v.Field(c.ID != "", "call", "id")
	v.Field(c.Profile != "", "call", "profile")
	v.Field(c.Interest != "", "call", "interest")
	v.Field(c.State != "", "call", "state")
	v.Field(c.Direction != "", "call", "direction")
	v.Field(!c.StartTime.IsZero(), "call", "start time")
	v.Field(c.Duration != nil, "call", "duration")
	if c.Site != nil {
		c.Site.check(v)
	}
	c.OriginatorReferences.check(v)
	checkFeatures(v, c.Features)
	for _, p := range c.Participants {
		p.check(v)
	}
}

// Validate returns the first problem with the call.
func (c Call) Validate() error { return strictCheck(c) }

// Problems returns every problem with the call.
func (c Call) Problems() []string { return lenientCheck(c) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (c Call) TokenReader() xml.TokenReader {
	var id, site, actions, participants xml.TokenReader
	if c.ID != "" || c.TelephonyCallID != "" {
		id = encode.Chars("id", attr.Append(nil, "telephony", string(c.TelephonyCallID)), string(c.ID))
	}
	if c.Site != nil {
		site = c.Site.TokenReader()
	}
	if len(c.Actions) > 0 {
		inner := make([]xml.TokenReader, 0, len(c.Actions))
		for _, a := range c.Actions {
			inner = append(inner, encode.Local(string(a), nil))
		}
		actions = encode.Local("actions", nil, inner...)
	}
	if len(c.Participants) > 0 {
		inner := make([]xml.TokenReader, 0, len(c.Participants))
		for _, p := range c.Participants {
			inner = append(inner, p.TokenReader())
		}
		participants = encode.Local("participants", nil, inner...)
	}
	return encode.Local("call", nil,
		id,
		encode.Text("conference", string(c.Conference)),
		site,
		encode.Text("profile", string(c.Profile)),
		encode.Text("interest", string(c.Interest)),
		encode.Text("changed", string(c.Changed)),
		encode.Text("state", string(c.State)),
		encode.Text("direction", string(c.Direction)),
		c.Caller.tokenReader("caller"),
		c.Called.tokenReader("called"),
		c.OriginatorReferences.TokenReader(),
		encode.Time("starttime", c.StartTime),
		encode.Legacy("timestamp", c.StartTime),
		encode.Millis("duration", c.Duration),
		actions,
		featuresElem(c.Features),
		participants,
	)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (c Call) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, c.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (c Call) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, c.TokenReader())
}

// DecodeCall decodes a call element.
// The returned errors describe text that could not be converted.
//
// The start time is read from the starttime element and falls back to the
// deprecated timestamp element.
// If both are present and disagree the start time is used and the mismatch is
// reported.
func DecodeCall(el *xmltree.Element) (Call, []string) {
	var e decode.Errors
	c := decodeCall(el, &e)
	return c, e.List()
}

func decodeCall(el *xmltree.Element, e *decode.Errors) Call {
	id := el.Child("id")
	tcid, _ := id.AttrValue("telephony")
	c := Call{
		ID:              CallID(id.Text()),
		TelephonyCallID: TelephonyCallID(tcid),
		Conference:      ConferenceID(el.ChildText("conference")),
		Profile:         ProfileID(el.ChildText("profile")),
		Interest:        InterestID(el.ChildText("interest")),
		Changed:         decode.Enum(e, "call changed", el.ChildText("changed"), ParseChanged),
		State:           decode.Enum(e, "call state", el.ChildText("state"), ParseCallState),
		Direction:       decode.Enum(e, "call direction", el.ChildText("direction"), ParseCallDirection),
	}
	if site := el.Child("site"); site != nil {
		s := decodeSite(site, e)
		c.Site = &s
	}
	if caller := el.Child("caller"); caller != nil {
		c.Caller = decodePartyInfo(caller)
	}
	if called := el.Child("called"); called != nil {
		c.Called = decodePartyInfo(called)
	}
	c.OriginatorReferences = DecodeOriginatorReferences(el.Child("originator-ref"))
	c.StartTime = e.StartTime("call",
		e.Time("starttime", el.ChildText("starttime")),
		e.LegacyTime("timestamp", el.ChildText("timestamp")),
	)
	c.Duration = e.Millis("duration", el.ChildText("duration"))
	for _, a := range el.Child("actions").Elements() {
		if action := decode.Enum(e, "call action", a.Local(), ParseRequestAction); action != "" {
			c.Actions = append(c.Actions, action)
		}
	}
	c.Features = decodeFeatures(el.Child("features"), e)
	for _, p := range el.Child("participants").All("participant") {
		c.Participants = append(c.Participants, decodeParticipant(p, e))
	}
	return c
}
