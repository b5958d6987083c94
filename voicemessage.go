// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package openlink

import (
	"encoding/xml"
	"time"

	"mellium.im/openlink/internal/decode"
	"mellium.im/openlink/internal/encode"
	"mellium.im/openlink/internal/ns"
	"mellium.im/openlink/internal/validate"
	"mellium.im/openlink/xmltree"
	"mellium.im/xmlstream"
)

// VoiceMessage is the payload of a voice message feature reported in device
// status.
type VoiceMessage struct {
	Label         string
	Status        VoiceMessageStatus
	StatusMessage string
	Action        ManageVoiceMessageAction
	Length        *time.Duration
	Created       time.Time
	Extension     PhoneNumber
}

func (m VoiceMessage) check(v *validate.Checker) {
	v.Field(m.Status != "", "voice message", "status")
}

// Validate returns the first problem with the voice message.
func (m VoiceMessage) Validate() error { return strictCheck(m) }

// Problems returns every problem with the voice message.
func (m VoiceMessage) Problems() []string { return lenientCheck(m) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (m VoiceMessage) TokenReader() xml.TokenReader {
	return encode.Elem(
		xml.Name{Space: ns.VoiceMessage, Local: "voicemessage"}, nil,
		encode.Text("label", m.Label),
		encode.Text("status", string(m.Status)),
		encode.Text("statusmessage", m.StatusMessage),
		encode.Text("action", string(m.Action)),
		encode.Millis("msglen", m.Length),
		encode.Time("creationdate", m.Created),
		encode.Text("exten", string(m.Extension)),
	)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (m VoiceMessage) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, m.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (m VoiceMessage) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, m.TokenReader())
}

func decodeVoiceMessage(el *xmltree.Element, e *decode.Errors) VoiceMessage {
	return VoiceMessage{
		Label:         el.ChildText("label"),
		Status:        decode.Enum(e, "voice message status", el.ChildText("status"), ParseVoiceMessageStatus),
		StatusMessage: el.ChildText("statusmessage"),
		Action:        decode.Enum(e, "voice message action", el.ChildText("action"), ParseManageVoiceMessageAction),
		Length:        e.Millis("msglen", el.ChildText("msglen")),
		Created:       e.Time("creationdate", el.ChildText("creationdate")),
		Extension:     PhoneNumber(el.ChildText("exten")),
	}
}
