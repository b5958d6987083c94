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

// GetProfilesRequest asks for the profiles of a user.
type GetProfilesRequest struct {
	stanza.IQ
	openlink.Parsed

	JID jid.JID
}

// NewGetProfilesRequest returns a request for the profiles of user sent to
// the telephony service tsc.
func NewGetProfilesRequest(tsc, user jid.JID) GetProfilesRequest {
	return GetProfilesRequest{IQ: envelope.NewIQ(tsc, stanza.SetIQ), JID: user}
}

func (r GetProfilesRequest) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.SetIQ)
	v.Field(!r.JID.Equal(jid.JID{}), "get-profiles request", "jid")
}

// Validate returns the first problem with the request.
func (r GetProfilesRequest) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the request.
func (r GetProfilesRequest) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r GetProfilesRequest) TokenReader() xml.TokenReader {
	return request(r.IQ, GetProfiles, jidText("jid", r.JID))
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r GetProfilesRequest) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r GetProfilesRequest) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeGetProfilesRequest decodes a get-profiles request from an iq element.
func DecodeGetProfilesRequest(el *xmltree.Element) GetProfilesRequest {
	var e decode.Errors
	r := GetProfilesRequest{IQ: envelope.DecodeIQ(el, &e)}
	in := iodata(el, "in", &e)
	r.JID = e.JID("jid", in.ChildText("jid"))
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}

// GetProfilesResult lists the profiles of a user.
type GetProfilesResult struct {
	stanza.IQ
	openlink.Parsed

	Profiles []openlink.Profile
}

// NewGetProfilesResult returns the result to req.
func NewGetProfilesResult(req GetProfilesRequest, profiles []openlink.Profile) GetProfilesResult {
	return GetProfilesResult{IQ: envelope.ResultIQ(req.IQ), Profiles: profiles}
}

func (r GetProfilesResult) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.ResultIQ)
	ids := make([]openlink.ProfileID, 0, len(r.Profiles))
	for _, p := range r.Profiles {
		v.Nested(p)
		ids = append(ids, p.ID)
	}
	validate.Unique(v, ids, "profile")
}

// Validate returns the first problem with the result.
func (r GetProfilesResult) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the result.
func (r GetProfilesResult) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
// The profiles element is always present, even if there are no profiles.
func (r GetProfilesResult) TokenReader() xml.TokenReader {
	inner := make([]xml.TokenReader, 0, len(r.Profiles))
	for _, p := range r.Profiles {
		inner = append(inner, p.TokenReader())
	}
	return result(r.IQ, GetProfiles,
		encode.Elem(xml.Name{Space: ns.Profiles, Local: "profiles"}, nil, inner...),
	)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r GetProfilesResult) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r GetProfilesResult) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeGetProfilesResult decodes a get-profiles result from an iq element.
func DecodeGetProfilesResult(el *xmltree.Element) GetProfilesResult {
	var e decode.Errors
	r := GetProfilesResult{IQ: envelope.DecodeIQ(el, &e)}
	out := iodata(el, "out", &e)
	profiles := out.Child("profiles")
	if out != nil && profiles == nil {
		e.Add("Invalid get-profiles result; missing 'profiles' element")
	}
	for _, p := range profiles.All("profile") {
		profile, errs := openlink.DecodeProfile(p)
		e.Append(errs...)
		r.Profiles = append(r.Profiles, profile)
	}
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}

// GetProfileRequest asks for a single profile.
type GetProfileRequest struct {
	stanza.IQ
	openlink.Parsed

	Profile openlink.ProfileID
}

// NewGetProfileRequest returns a request for profile sent to the telephony
// service tsc.
func NewGetProfileRequest(tsc jid.JID, profile openlink.ProfileID) GetProfileRequest {
	return GetProfileRequest{IQ: envelope.NewIQ(tsc, stanza.SetIQ), Profile: profile}
}

func (r GetProfileRequest) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.SetIQ)
	v.Field(r.Profile != "", "get-profile request", "profile")
}

// Validate returns the first problem with the request.
func (r GetProfileRequest) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the request.
func (r GetProfileRequest) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r GetProfileRequest) TokenReader() xml.TokenReader {
	return request(r.IQ, GetProfile, encode.Text("profile", string(r.Profile)))
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r GetProfileRequest) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r GetProfileRequest) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeGetProfileRequest decodes a get-profile request from an iq element.
func DecodeGetProfileRequest(el *xmltree.Element) GetProfileRequest {
	var e decode.Errors
	r := GetProfileRequest{IQ: envelope.DecodeIQ(el, &e)}
	in := iodata(el, "in", &e)
	r.Profile = openlink.ProfileID(in.ChildText("profile"))
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}

// GetProfileResult holds a single profile.
type GetProfileResult struct {
	stanza.IQ
	openlink.Parsed

	Profile *openlink.Profile
}

// NewGetProfileResult returns the result to req.
func NewGetProfileResult(req GetProfileRequest, profile openlink.Profile) GetProfileResult {
	return GetProfileResult{IQ: envelope.ResultIQ(req.IQ), Profile: &profile}
}

func (r GetProfileResult) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.ResultIQ)
	v.Field(r.Profile != nil, "get-profile result", "profile")
	if r.Profile != nil {
		v.Nested(*r.Profile)
	}
}

// Validate returns the first problem with the result.
func (r GetProfileResult) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the result.
func (r GetProfileResult) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r GetProfileResult) TokenReader() xml.TokenReader {
	var profile xml.TokenReader
	if r.Profile != nil {
		profile = r.Profile.TokenReaderNS()
	}
	return result(r.IQ, GetProfile, profile)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r GetProfileResult) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r GetProfileResult) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeGetProfileResult decodes a get-profile result from an iq element.
func DecodeGetProfileResult(el *xmltree.Element) GetProfileResult {
	var e decode.Errors
	r := GetProfileResult{IQ: envelope.DecodeIQ(el, &e)}
	out := iodata(el, "out", &e)
	if p := out.Child("profile"); p != nil {
		profile, errs := openlink.DecodeProfile(p)
		e.Append(errs...)
		r.Profile = &profile
	}
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}
