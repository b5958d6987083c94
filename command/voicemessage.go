// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package command

import (
	"encoding/xml"

	"mellium.im/openlink"
	"mellium.im/openlink/internal/decode"
	"mellium.im/openlink/internal/encode"
	"mellium.im/openlink/internal/envelope"
	"mellium.im/openlink/internal/validate"
	"mellium.im/openlink/xmltree"
	"mellium.im/xmlstream"
	"mellium.im/xmpp/jid"
	"mellium.im/xmpp/stanza"
)

// ManageVoiceMessageRequest records, plays back or edits the voice messages of
// a profile.
// Which of Label and Features are needed depends on the action; see
// openlink.ManageVoiceMessageAction.
type ManageVoiceMessageRequest struct {
	stanza.IQ
	openlink.Parsed

	Profile  openlink.ProfileID
	Action   openlink.ManageVoiceMessageAction
	Label    string
	Features []openlink.FeatureID
}

// NewManageVoiceMessageRequest returns a request to perform action on the
// voice messages of profile sent to the telephony service tsc.
func NewManageVoiceMessageRequest(tsc jid.JID, profile openlink.ProfileID, action openlink.ManageVoiceMessageAction) ManageVoiceMessageRequest {
	return ManageVoiceMessageRequest{
		IQ:      envelope.NewIQ(tsc, stanza.SetIQ),
		Profile: profile,
		Action:  action,
	}
}

func (r ManageVoiceMessageRequest) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.SetIQ)
	v.Field(r.Profile != "", "manage-voice-message request", "profile")
	v.Field(r.Action != "", "manage-voice-message request", "action")
	if r.Action != "" {
		action := string(r.Action)
		v.Check(!r.Action.LabelRequired() || r.Label != "",
			"A label is required for action "+action)
		v.Check(!r.Action.FeaturesRequired() || len(r.Features) > 0,
			"At least one feature is required for action "+action)
		v.Check(r.Action.MultipleFeatures() || len(r.Features) < 2,
			"Only one feature is allowed for action "+action)
	}
	for _, f := range r.Features {
		v.Field(f != "", "voice message feature", "id")
	}
	validate.Unique(v, r.Features, "feature")
}

// Validate returns the first problem with the request.
func (r ManageVoiceMessageRequest) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the request.
func (r ManageVoiceMessageRequest) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r ManageVoiceMessageRequest) TokenReader() xml.TokenReader {
	var features xml.TokenReader
	if len(r.Features) > 0 {
		inner := make([]xml.TokenReader, 0, len(r.Features))
		for _, f := range r.Features {
			inner = append(inner, encode.Local("feature", nil, encode.Text("id", string(f))))
		}
		features = encode.Local("features", nil, inner...)
	}
	return request(r.IQ, ManageVoiceMessage,
		encode.Text("profile", string(r.Profile)),
		encode.Text("action", string(r.Action)),
		encode.Text("label", r.Label),
		features,
	)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r ManageVoiceMessageRequest) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r ManageVoiceMessageRequest) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeManageVoiceMessageRequest decodes a manage-voice-message request from
// an iq element.
func DecodeManageVoiceMessageRequest(el *xmltree.Element) ManageVoiceMessageRequest {
	var e decode.Errors
	r := ManageVoiceMessageRequest{IQ: envelope.DecodeIQ(el, &e)}
	in := iodata(el, "in", &e)
	r.Profile = openlink.ProfileID(in.ChildText("profile"))
	r.Action = decode.Enum(&e, "action", in.ChildText("action"), openlink.ParseManageVoiceMessageAction)
	r.Label = in.ChildText("label")
	for _, f := range in.Child("features").All("feature") {
		r.Features = append(r.Features, openlink.FeatureID(f.ChildText("id")))
	}
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}

// ManageVoiceMessageResult holds the voice message features affected by the
// request.
type ManageVoiceMessageResult struct {
	stanza.IQ
	openlink.Parsed

	DeviceStatus *openlink.DeviceStatus
}

// NewManageVoiceMessageResult returns the result to req.
func NewManageVoiceMessageResult(req ManageVoiceMessageRequest, status openlink.DeviceStatus) ManageVoiceMessageResult {
	return ManageVoiceMessageResult{IQ: envelope.ResultIQ(req.IQ), DeviceStatus: &status}
}

func (r ManageVoiceMessageResult) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.ResultIQ)
	checkDeviceStatus(v, "manage-voice-message result", r.DeviceStatus)
}

// Validate returns the first problem with the result.
func (r ManageVoiceMessageResult) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the result.
func (r ManageVoiceMessageResult) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r ManageVoiceMessageResult) TokenReader() xml.TokenReader {
	return result(r.IQ, ManageVoiceMessage, deviceStatusElem(r.DeviceStatus))
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r ManageVoiceMessageResult) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r ManageVoiceMessageResult) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeManageVoiceMessageResult decodes a manage-voice-message result from an
// iq element.
func DecodeManageVoiceMessageResult(el *xmltree.Element) ManageVoiceMessageResult {
	var e decode.Errors
	r := ManageVoiceMessageResult{IQ: envelope.DecodeIQ(el, &e)}
	out := iodata(el, "out", &e)
	r.DeviceStatus = decodeDeviceStatus(out, &e)
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}
