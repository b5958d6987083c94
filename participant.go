// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package openlink

import (
	"encoding/xml"
	"strings"
	"time"

	"mellium.im/openlink/internal/attr"
	"mellium.im/openlink/internal/decode"
	"mellium.im/openlink/internal/encode"
	"mellium.im/openlink/internal/validate"
	"mellium.im/openlink/xmltree"
	"mellium.im/xmlstream"
	"mellium.im/xmpp/jid"
)

// Participant is another party on a call.
type Participant struct {
	JID       jid.JID
	Type      ParticipantType
	Direction CallDirection
	StartTime time.Time
	Duration  *time.Duration
}

func (p Participant) check(v *validate.Checker) {
	v.Field(!p.JID.Equal(jid.JID{}), "participant", "jid")
	v.Field(p.Type != "", "participant", "type")
	v.Field(p.Direction != "", "participant", "direction")
}

// Validate returns the first problem with the participant.
func (p Participant) Validate() error { return strictCheck(p) }

// Problems returns every problem with the participant.
func (p Participant) Problems() []string { return lenientCheck(p) }

// TokenReader satisfies the xmlstream.Marshaler interface.
// The start time is written twice, once in the deprecated timestamp format.
func (p Participant) TokenReader() xml.TokenReader {
	var a []xml.Attr
	if !p.JID.Equal(jid.JID{}) {
		a = attr.Append(a, "jid", p.JID.String())
	}
	a = attr.Append(a, "type", string(p.Type))
	a = attr.Append(a, "direction", string(p.Direction))
	a = timeAttr(a, "starttime", p.StartTime)
	a = legacyAttr(a, "timestamp", p.StartTime)
	a = millisAttr(a, "duration", p.Duration)
	return encode.Local("participant", a)
}

func decodeParticipant(el *xmltree.Element, e *decode.Errors) Participant {
	get := func(local string) string {
		v, _ := el.AttrValue(local)
		return v
	}
	return Participant{
		JID:       e.JID("participant jid", get("jid")),
		Type:      decode.Enum(e, "participant type", get("type"), ParseParticipantType),
		Direction: decode.Enum(e, "participant direction", get("direction"), ParseCallDirection),
		StartTime: e.StartTime("participant",
			e.Time("participant starttime", get("starttime")),
			e.LegacyTime("participant timestamp", get("timestamp")),
		),
		Duration: e.Millis("participant duration", get("duration")),
	}
}

// PartyInfo describes the caller or called party of a call.
type PartyInfo struct {
	Number      PhoneNumber
	Name        string
	E164        []PhoneNumber
	Destination PhoneNumber
}

func (p PartyInfo) isZero() bool {
	return p.Number == "" && p.Name == "" && len(p.E164) == 0 && p.Destination == ""
}

func (p PartyInfo) tokenReader(local string) xml.TokenReader {
	if p.isZero() {
		return nil
	}
	var a []xml.Attr
	if len(p.E164) > 0 {
		numbers := make([]string, 0, len(p.E164))
		for _, n := range p.E164 {
			numbers = append(numbers, string(n))
		}
		a = attr.Append(a, "e164", strings.Join(numbers, ","))
	}
	a = attr.Append(a, "destination", string(p.Destination))
	var number xml.TokenReader
	if p.Number != "" || len(a) > 0 {
		number = encode.Chars("number", a, string(p.Number))
	}
	return encode.Local(local, nil, number, encode.Text("name", p.Name))
}

func decodePartyInfo(el *xmltree.Element) PartyInfo {
	number := el.Child("number")
	destination, _ := number.AttrValue("destination")
	p := PartyInfo{
		Number:      PhoneNumber(number.Text()),
		Name:        el.ChildText("name"),
		Destination: PhoneNumber(destination),
	}
	e164, _ := number.AttrValue("e164")
	for _, n := range strings.Split(e164, ",") {
		if n = strings.TrimSpace(n); n != "" {
			p.E164 = append(p.E164, PhoneNumber(n))
		}
	}
	return p
}

// OriginatorReference is an opaque key/value pair that the originator of a
// call attached to it.
type OriginatorReference struct {
	Key   OriginatorReferenceKey
	Value string
}

// OriginatorReferences is the content of an originator-ref element.
type OriginatorReferences []OriginatorReference

func (refs OriginatorReferences) check(v *validate.Checker) {
	for _, r := range refs {
		v.Field(r.Key != "", "originator reference", "key")
	}
}

// TokenReader returns the originator-ref element.
// If there are no references the stream is empty.
func (refs OriginatorReferences) TokenReader() xml.TokenReader {
	if len(refs) == 0 {
		return xmlstream.MultiReader()
	}
	inner := make([]xml.TokenReader, 0, len(refs))
	for _, r := range refs {
		inner = append(inner, encode.Local("property",
			attr.Append(nil, "id", string(r.Key)),
			encode.Chars("value", nil, r.Value),
		))
	}
	return encode.Local("originator-ref", nil, inner...)
}

// DecodeOriginatorReferences decodes an originator-ref element.
func DecodeOriginatorReferences(el *xmltree.Element) OriginatorReferences {
	var refs OriginatorReferences
	for _, p := range el.All("property") {
		key, _ := p.AttrValue("id")
		refs = append(refs, OriginatorReference{
			Key:   OriginatorReferenceKey(key),
			Value: p.ChildText("value"),
		})
	}
	return refs
}
