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

// MakeCallFeature sets a feature for the duration of a new call.
type MakeCallFeature struct {
	ID     openlink.FeatureID
	Value1 string
	Value2 string
}

// MakeCallRequest places a call.
// If Interest is empty the telephony service picks the user's default
// interest, and if Destination is empty the call is placed to the user's own
// device.
type MakeCallRequest struct {
	stanza.IQ
	openlink.Parsed

	JID                  jid.JID
	Interest             openlink.InterestID
	Destination          openlink.PhoneNumber
	OriginatorReferences openlink.OriginatorReferences
	Features             []MakeCallFeature
}

// NewMakeCallRequest returns a request to call destination on behalf of user
// sent to the telephony service tsc.
func NewMakeCallRequest(tsc, user jid.JID, destination openlink.PhoneNumber) MakeCallRequest {
	return MakeCallRequest{
		IQ:          envelope.NewIQ(tsc, stanza.SetIQ),
		JID:         user,
		Destination: destination,
	}
}

func (r MakeCallRequest) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.SetIQ)
	v.Field(!r.JID.Equal(jid.JID{}), "make-call request", "jid")
	for _, ref := range r.OriginatorReferences {
		v.Field(ref.Key != "", "originator reference", "key")
	}
	ids := make([]openlink.FeatureID, 0, len(r.Features))
	for _, f := range r.Features {
		v.Field(f.ID != "", "make-call feature", "id")
		ids = append(ids, f.ID)
	}
	validate.Unique(v, ids, "feature")
}

// Validate returns the first problem with the request.
func (r MakeCallRequest) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the request.
func (r MakeCallRequest) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r MakeCallRequest) TokenReader() xml.TokenReader {
	var features xml.TokenReader
	if len(r.Features) > 0 {
		inner := make([]xml.TokenReader, 0, len(r.Features))
		for _, f := range r.Features {
			inner = append(inner, encode.Local("feature", nil,
				encode.Text("id", string(f.ID)),
				encode.Text("value1", f.Value1),
				encode.Text("value2", f.Value2),
			))
		}
		features = encode.Local("features", nil, inner...)
	}
	return request(r.IQ, MakeCall,
		jidText("jid", r.JID),
		encode.Text("interest", string(r.Interest)),
		encode.Text("destination", string(r.Destination)),
		r.OriginatorReferences.TokenReader(),
		features,
	)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r MakeCallRequest) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r MakeCallRequest) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeMakeCallRequest decodes a make-call request from an iq element.
func DecodeMakeCallRequest(el *xmltree.Element) MakeCallRequest {
	var e decode.Errors
	r := MakeCallRequest{IQ: envelope.DecodeIQ(el, &e)}
	in := iodata(el, "in", &e)
	r.JID = e.JID("jid", in.ChildText("jid"))
	r.Interest = openlink.InterestID(in.ChildText("interest"))
	r.Destination = openlink.PhoneNumber(in.ChildText("destination"))
	r.OriginatorReferences = openlink.DecodeOriginatorReferences(in.Child("originator-ref"))
	for _, f := range in.Child("features").All("feature") {
		r.Features = append(r.Features, MakeCallFeature{
			ID:     openlink.FeatureID(f.ChildText("id")),
			Value1: f.ChildText("value1"),
			Value2: f.ChildText("value2"),
		})
	}
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}

// MakeCallResult holds the status of the new call.
type MakeCallResult struct {
	stanza.IQ
	openlink.Parsed

	CallStatus *openlink.CallStatus
}

// NewMakeCallResult returns the result to req.
func NewMakeCallResult(req MakeCallRequest, status openlink.CallStatus) MakeCallResult {
	return MakeCallResult{IQ: envelope.ResultIQ(req.IQ), CallStatus: &status}
}

func (r MakeCallResult) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.ResultIQ)
	checkCallStatus(v, "make-call result", r.CallStatus)
}

func checkCallStatus(v *validate.Checker, entity string, status *openlink.CallStatus) {
	v.Field(status != nil, entity, "callstatus")
	if status != nil {
		v.Nested(*status)
	}
}

func callStatusElem(status *openlink.CallStatus) xml.TokenReader {
	if status == nil {
		return nil
	}
	return status.TokenReader()
}

func decodeCallStatus(out *xmltree.Element, e *decode.Errors) *openlink.CallStatus {
	el := out.Child("callstatus")
	if el == nil {
		return nil
	}
	status, errs := openlink.DecodeCallStatus(el)
	e.Append(errs...)
	return &status
}

// Validate returns the first problem with the result.
func (r MakeCallResult) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the result.
func (r MakeCallResult) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r MakeCallResult) TokenReader() xml.TokenReader {
	return result(r.IQ, MakeCall, callStatusElem(r.CallStatus))
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r MakeCallResult) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r MakeCallResult) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeMakeCallResult decodes a make-call result from an iq element.
func DecodeMakeCallResult(el *xmltree.Element) MakeCallResult {
	var e decode.Errors
	r := MakeCallResult{IQ: envelope.DecodeIQ(el, &e)}
	out := iodata(el, "out", &e)
	r.CallStatus = decodeCallStatus(out, &e)
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}

// RequestActionRequest performs an action on an existing call.
// The number of values depends on the action; see
// openlink.RequestAction.MinValues and MaxValues.
type RequestActionRequest struct {
	stanza.IQ
	openlink.Parsed

	Interest openlink.InterestID
	Action   openlink.RequestAction
	Call     openlink.CallID
	Value1   openlink.RequestActionValue
	Value2   openlink.RequestActionValue
}

// NewRequestActionRequest returns a request to perform action on call sent to
// the telephony service tsc.
// Values are assigned to Value1 and Value2 in order; extra values are ignored.
func NewRequestActionRequest(tsc jid.JID, interest openlink.InterestID, call openlink.CallID, action openlink.RequestAction, values ...openlink.RequestActionValue) RequestActionRequest {
	r := RequestActionRequest{
		IQ:       envelope.NewIQ(tsc, stanza.SetIQ),
		Interest: interest,
		Action:   action,
		Call:     call,
	}
	if len(values) > 0 {
		r.Value1 = values[0]
	}
	if len(values) > 1 {
		r.Value2 = values[1]
	}
	return r
}

func (r RequestActionRequest) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.SetIQ)
	v.Field(r.Interest != "", "request-action request", "interest")
	v.Field(r.Action != "", "request-action request", "action")
	v.Field(r.Call != "", "request-action request", "call")
	if r.Action == "" {
		return
	}
	action := string(r.Action)
	least, most := r.Action.MinValues(), r.Action.MaxValues()
	v.Check(least < 1 || r.Value1 != "", "value1 is required for action "+action)
	v.Check(least < 2 || r.Value2 != "", "value2 is required for action "+action)
	v.Check(most >= 1 || r.Value1 == "", "value1 is not allowed for action "+action)
	v.Check(most >= 2 || r.Value2 == "", "value2 is not allowed for action "+action)
}

// Validate returns the first problem with the request.
func (r RequestActionRequest) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the request.
func (r RequestActionRequest) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r RequestActionRequest) TokenReader() xml.TokenReader {
	return request(r.IQ, RequestAction,
		encode.Text("interest", string(r.Interest)),
		encode.Text("action", string(r.Action)),
		encode.Text("call", string(r.Call)),
		encode.Text("value1", string(r.Value1)),
		encode.Text("value2", string(r.Value2)),
	)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r RequestActionRequest) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r RequestActionRequest) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeRequestActionRequest decodes a request-action request from an iq
// element.
func DecodeRequestActionRequest(el *xmltree.Element) RequestActionRequest {
	var e decode.Errors
	r := RequestActionRequest{IQ: envelope.DecodeIQ(el, &e)}
	in := iodata(el, "in", &e)
	r.Interest = openlink.InterestID(in.ChildText("interest"))
	r.Action = decode.Enum(&e, "action", in.ChildText("action"), openlink.ParseRequestAction)
	r.Call = openlink.CallID(in.ChildText("call"))
	r.Value1 = openlink.RequestActionValue(in.ChildText("value1"))
	r.Value2 = openlink.RequestActionValue(in.ChildText("value2"))
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}

// RequestActionResult holds the status of the call after the action.
type RequestActionResult struct {
	stanza.IQ
	openlink.Parsed

	CallStatus *openlink.CallStatus
}

// NewRequestActionResult returns the result to req.
func NewRequestActionResult(req RequestActionRequest, status openlink.CallStatus) RequestActionResult {
	return RequestActionResult{IQ: envelope.ResultIQ(req.IQ), CallStatus: &status}
}

func (r RequestActionResult) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.ResultIQ)
	checkCallStatus(v, "request-action result", r.CallStatus)
}

// Validate returns the first problem with the result.
func (r RequestActionResult) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the result.
func (r RequestActionResult) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r RequestActionResult) TokenReader() xml.TokenReader {
	return result(r.IQ, RequestAction, callStatusElem(r.CallStatus))
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r RequestActionResult) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r RequestActionResult) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeRequestActionResult decodes a request-action result from an iq
// element.
func DecodeRequestActionResult(el *xmltree.Element) RequestActionResult {
	var e decode.Errors
	r := RequestActionResult{IQ: envelope.DecodeIQ(el, &e)}
	out := iodata(el, "out", &e)
	r.CallStatus = decodeCallStatus(out, &e)
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}
