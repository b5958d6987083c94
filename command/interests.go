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
	"mellium.im/openlink/internal/ns"
	"mellium.im/openlink/internal/validate"
	"mellium.im/openlink/xmltree"
	"mellium.im/xmlstream"
	"mellium.im/xmpp/jid"
	"mellium.im/xmpp/stanza"
)

// GetInterestsRequest asks for the interests of a profile.
type GetInterestsRequest struct {
	stanza.IQ
	openlink.Parsed

	Profile openlink.ProfileID
}

// NewGetInterestsRequest returns a request for the interests of profile sent
// to the telephony service tsc.
func NewGetInterestsRequest(tsc jid.JID, profile openlink.ProfileID) GetInterestsRequest {
	return GetInterestsRequest{IQ: envelope.NewIQ(tsc, stanza.SetIQ), Profile: profile}
}

func (r GetInterestsRequest) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.SetIQ)
	v.Field(r.Profile != "", "get-interests request", "profile")
}

// Validate returns the first problem with the request.
func (r GetInterestsRequest) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the request.
func (r GetInterestsRequest) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r GetInterestsRequest) TokenReader() xml.TokenReader {
	return request(r.IQ, GetInterests, encode.Text("profile", string(r.Profile)))
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r GetInterestsRequest) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r GetInterestsRequest) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeGetInterestsRequest decodes a get-interests request from an iq
// element.
func DecodeGetInterestsRequest(el *xmltree.Element) GetInterestsRequest {
	var e decode.Errors
	r := GetInterestsRequest{IQ: envelope.DecodeIQ(el, &e)}
	in := iodata(el, "in", &e)
	r.Profile = openlink.ProfileID(in.ChildText("profile"))
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}

// GetInterestsResult lists the interests of a profile.
type GetInterestsResult struct {
	stanza.IQ
	openlink.Parsed

	Interests []openlink.Interest
}

// NewGetInterestsResult returns the result to req.
func NewGetInterestsResult(req GetInterestsRequest, interests []openlink.Interest) GetInterestsResult {
	return GetInterestsResult{IQ: envelope.ResultIQ(req.IQ), Interests: interests}
}

func (r GetInterestsResult) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.ResultIQ)
	checkInterests(v, r.Interests)
}

func checkInterests(v *validate.Checker, interests []openlink.Interest) {
	ids := make([]openlink.InterestID, 0, len(interests))
	for _, i := range interests {
		v.Nested(i)
		ids = append(ids, i.ID)
	}
	validate.Unique(v, ids, "interest")
}

// Validate returns the first problem with the result.
func (r GetInterestsResult) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the result.
func (r GetInterestsResult) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r GetInterestsResult) TokenReader() xml.TokenReader {
	return result(r.IQ, GetInterests, interestsElem(r.Interests))
}

func interestsElem(interests []openlink.Interest) xml.TokenReader {
	inner := make([]xml.TokenReader, 0, len(interests))
	for _, i := range interests {
		inner = append(inner, i.TokenReader())
	}
	return encode.Elem(xml.Name{Space: ns.Interests, Local: "interests"}, nil, inner...)
}

func decodeInterests(el *xmltree.Element, e *decode.Errors) []openlink.Interest {
	var interests []openlink.Interest
	for _, i := range el.All("interest") {
		interest, errs := openlink.DecodeInterest(i)
		e.Append(errs...)
		interests = append(interests, interest)
	}
	return interests
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r GetInterestsResult) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r GetInterestsResult) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeGetInterestsResult decodes a get-interests result from an iq element.
func DecodeGetInterestsResult(el *xmltree.Element) GetInterestsResult {
	var e decode.Errors
	r := GetInterestsResult{IQ: envelope.DecodeIQ(el, &e)}
	out := iodata(el, "out", &e)
	interests := out.Child("interests")
	if out != nil && interests == nil {
		e.Add("Invalid get-interests result; missing 'interests' element")
	}
	r.Interests = decodeInterests(interests, &e)
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}

// GetInterestRequest asks for a single interest.
type GetInterestRequest struct {
	stanza.IQ
	openlink.Parsed

	Interest openlink.InterestID
}

// NewGetInterestRequest returns a request for interest sent to the telephony
// service tsc.
func NewGetInterestRequest(tsc jid.JID, interest openlink.InterestID) GetInterestRequest {
	return GetInterestRequest{IQ: envelope.NewIQ(tsc, stanza.SetIQ), Interest: interest}
}

func (r GetInterestRequest) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.SetIQ)
	v.Field(r.Interest != "", "get-interest request", "interest")
}

// Validate returns the first problem with the request.
func (r GetInterestRequest) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the request.
func (r GetInterestRequest) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r GetInterestRequest) TokenReader() xml.TokenReader {
	return request(r.IQ, GetInterest, encode.Text("interest", string(r.Interest)))
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r GetInterestRequest) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r GetInterestRequest) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeGetInterestRequest decodes a get-interest request from an iq element.
func DecodeGetInterestRequest(el *xmltree.Element) GetInterestRequest {
	var e decode.Errors
	r := GetInterestRequest{IQ: envelope.DecodeIQ(el, &e)}
	in := iodata(el, "in", &e)
	r.Interest = openlink.InterestID(in.ChildText("interest"))
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}

// GetInterestResult holds a single interest.
type GetInterestResult struct {
	stanza.IQ
	openlink.Parsed

	Interest *openlink.Interest
}

// NewGetInterestResult returns the result to req.
func NewGetInterestResult(req GetInterestRequest, interest openlink.Interest) GetInterestResult {
	return GetInterestResult{IQ: envelope.ResultIQ(req.IQ), Interest: &interest}
}

func (r GetInterestResult) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.ResultIQ)
	v.Field(r.Interest != nil, "get-interest result", "interest")
	if r.Interest != nil {
		v.Nested(*r.Interest)
	}
}

// Validate returns the first problem with the result.
func (r GetInterestResult) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the result.
func (r GetInterestResult) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
// The interest is sent inside an interests element.
func (r GetInterestResult) TokenReader() xml.TokenReader {
	var interests []openlink.Interest
	if r.Interest != nil {
		interests = append(interests, *r.Interest)
	}
	return result(r.IQ, GetInterest, interestsElem(interests))
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r GetInterestResult) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r GetInterestResult) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeGetInterestResult decodes a get-interest result from an iq element.
// Only the first interest is kept.
func DecodeGetInterestResult(el *xmltree.Element) GetInterestResult {
	var e decode.Errors
	r := GetInterestResult{IQ: envelope.DecodeIQ(el, &e)}
	out := iodata(el, "out", &e)
	if interests := decodeInterests(out.Child("interests"), &e); len(interests) > 0 {
		r.Interest = &interests[0]
	}
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}
