// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package command

import (
	"encoding/xml"

	"mellium.im/openlink"
	"mellium.im/openlink/internal/attr"
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

// GetFeaturesRequest asks for the features of a profile.
type GetFeaturesRequest struct {
	stanza.IQ
	openlink.Parsed

	Profile openlink.ProfileID
}

// NewGetFeaturesRequest returns a request for the features of profile sent to
// the telephony service tsc.
func NewGetFeaturesRequest(tsc jid.JID, profile openlink.ProfileID) GetFeaturesRequest {
	return GetFeaturesRequest{IQ: envelope.NewIQ(tsc, stanza.SetIQ), Profile: profile}
}

func (r GetFeaturesRequest) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.SetIQ)
	v.Field(r.Profile != "", "get-features request", "profile")
}

// Validate returns the first problem with the request.
func (r GetFeaturesRequest) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the request.
func (r GetFeaturesRequest) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r GetFeaturesRequest) TokenReader() xml.TokenReader {
	return request(r.IQ, GetFeatures, encode.Text("profile", string(r.Profile)))
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r GetFeaturesRequest) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r GetFeaturesRequest) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeGetFeaturesRequest decodes a get-features request from an iq element.
func DecodeGetFeaturesRequest(el *xmltree.Element) GetFeaturesRequest {
	var e decode.Errors
	r := GetFeaturesRequest{IQ: envelope.DecodeIQ(el, &e)}
	in := iodata(el, "in", &e)
	r.Profile = openlink.ProfileID(in.ChildText("profile"))
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}

// GetFeaturesResult lists the features of a profile.
type GetFeaturesResult struct {
	stanza.IQ
	openlink.Parsed

	Profile  openlink.ProfileID
	Features []openlink.Feature
}

// NewGetFeaturesResult returns the result to req.
func NewGetFeaturesResult(req GetFeaturesRequest, features []openlink.Feature) GetFeaturesResult {
	return GetFeaturesResult{IQ: envelope.ResultIQ(req.IQ), Profile: req.Profile, Features: features}
}

func (r GetFeaturesResult) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.ResultIQ)
	v.Field(r.Profile != "", "get-features result", "profile")
	ids := make([]openlink.FeatureID, 0, len(r.Features))
	for _, f := range r.Features {
		v.Nested(f)
		ids = append(ids, f.ID)
	}
	validate.Unique(v, ids, "feature")
}

// Validate returns the first problem with the result.
func (r GetFeaturesResult) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the result.
func (r GetFeaturesResult) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r GetFeaturesResult) TokenReader() xml.TokenReader {
	var profile xml.TokenReader
	if r.Profile != "" {
		profile = encode.Local("profile", attr.Append(nil, "id", string(r.Profile)))
	}
	inner := make([]xml.TokenReader, 0, len(r.Features))
	for _, f := range r.Features {
		inner = append(inner, f.TokenReader())
	}
	return result(r.IQ, GetFeatures,
		profile,
		encode.Elem(xml.Name{Space: ns.Features, Local: "features"}, nil, inner...),
	)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r GetFeaturesResult) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r GetFeaturesResult) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeGetFeaturesResult decodes a get-features result from an iq element.
func DecodeGetFeaturesResult(el *xmltree.Element) GetFeaturesResult {
	var e decode.Errors
	r := GetFeaturesResult{IQ: envelope.DecodeIQ(el, &e)}
	out := iodata(el, "out", &e)
	id, _ := out.Child("profile").AttrValue("id")
	r.Profile = openlink.ProfileID(id)
	for _, f := range out.Child("features").All("feature") {
		feature, errs := openlink.DecodeFeature(f)
		e.Append(errs...)
		r.Features = append(r.Features, feature)
	}
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}

// SetFeaturesRequest changes the state of a feature of a profile.
// The meaning of the values depends on the feature type; a handset feature for
// example takes "true" or "false" in Value1.
type SetFeaturesRequest struct {
	stanza.IQ
	openlink.Parsed

	Profile openlink.ProfileID
	Feature openlink.FeatureID
	Value1  string
	Value2  string
	Value3  string
}

// NewSetFeaturesRequest returns a request to set feature of profile to value
// sent to the telephony service tsc.
func NewSetFeaturesRequest(tsc jid.JID, profile openlink.ProfileID, feature openlink.FeatureID, value string) SetFeaturesRequest {
	return SetFeaturesRequest{
		IQ:      envelope.NewIQ(tsc, stanza.SetIQ),
		Profile: profile,
		Feature: feature,
		Value1:  value,
	}
}

func (r SetFeaturesRequest) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.SetIQ)
	v.Field(r.Profile != "", "set-features request", "profile")
	v.Field(r.Feature != "", "set-features request", "feature")
	v.Field(r.Value1 != "", "set-features request", "value1")
}

// Validate returns the first problem with the request.
func (r SetFeaturesRequest) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the request.
func (r SetFeaturesRequest) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r SetFeaturesRequest) TokenReader() xml.TokenReader {
	return request(r.IQ, SetFeatures,
		encode.Text("profile", string(r.Profile)),
		encode.Text("feature", string(r.Feature)),
		encode.Text("value1", r.Value1),
		encode.Text("value2", r.Value2),
		encode.Text("value3", r.Value3),
	)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r SetFeaturesRequest) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r SetFeaturesRequest) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeSetFeaturesRequest decodes a set-features request from an iq element.
func DecodeSetFeaturesRequest(el *xmltree.Element) SetFeaturesRequest {
	var e decode.Errors
	r := SetFeaturesRequest{IQ: envelope.DecodeIQ(el, &e)}
	in := iodata(el, "in", &e)
	r.Profile = openlink.ProfileID(in.ChildText("profile"))
	r.Feature = openlink.FeatureID(in.ChildText("feature"))
	r.Value1 = in.ChildText("value1")
	r.Value2 = in.ChildText("value2")
	r.Value3 = in.ChildText("value3")
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}

// SetFeaturesResult acknowledges a set-features request.
type SetFeaturesResult struct {
	stanza.IQ
	openlink.Parsed
}

// NewSetFeaturesResult returns the result to req.
func NewSetFeaturesResult(req SetFeaturesRequest) SetFeaturesResult {
	return SetFeaturesResult{IQ: envelope.ResultIQ(req.IQ)}
}

func (r SetFeaturesResult) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.ResultIQ)
}

// Validate returns the first problem with the result.
func (r SetFeaturesResult) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the result.
func (r SetFeaturesResult) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r SetFeaturesResult) TokenReader() xml.TokenReader {
	return result(r.IQ, SetFeatures)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r SetFeaturesResult) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r SetFeaturesResult) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeSetFeaturesResult decodes a set-features result from an iq element.
// The output of a set-features command is empty so only the envelope is
// checked.
func DecodeSetFeaturesResult(el *xmltree.Element) SetFeaturesResult {
	var e decode.Errors
	r := SetFeaturesResult{IQ: envelope.DecodeIQ(el, &e)}
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}

// QueryFeaturesRequest asks for the current state of the features of a
// profile's device, or of a single feature.
type QueryFeaturesRequest struct {
	stanza.IQ
	openlink.Parsed

	Profile openlink.ProfileID
	Feature openlink.FeatureID
}

// NewQueryFeaturesRequest returns a request for the state of the features of
// profile sent to the telephony service tsc.
func NewQueryFeaturesRequest(tsc jid.JID, profile openlink.ProfileID) QueryFeaturesRequest {
	return QueryFeaturesRequest{IQ: envelope.NewIQ(tsc, stanza.SetIQ), Profile: profile}
}

func (r QueryFeaturesRequest) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.SetIQ)
	v.Field(r.Profile != "", "query-features request", "profile")
}

// Validate returns the first problem with the request.
func (r QueryFeaturesRequest) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the request.
func (r QueryFeaturesRequest) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r QueryFeaturesRequest) TokenReader() xml.TokenReader {
	return request(r.IQ, QueryFeatures,
		encode.Text("profile", string(r.Profile)),
		encode.Text("feature", string(r.Feature)),
	)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r QueryFeaturesRequest) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r QueryFeaturesRequest) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeQueryFeaturesRequest decodes a query-features request from an iq
// element.
func DecodeQueryFeaturesRequest(el *xmltree.Element) QueryFeaturesRequest {
	var e decode.Errors
	r := QueryFeaturesRequest{IQ: envelope.DecodeIQ(el, &e)}
	in := iodata(el, "in", &e)
	r.Profile = openlink.ProfileID(in.ChildText("profile"))
	r.Feature = openlink.FeatureID(in.ChildText("feature"))
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}

// QueryFeaturesResult holds the state of a profile's device.
type QueryFeaturesResult struct {
	stanza.IQ
	openlink.Parsed

	DeviceStatus *openlink.DeviceStatus
}

// NewQueryFeaturesResult returns the result to req.
func NewQueryFeaturesResult(req QueryFeaturesRequest, status openlink.DeviceStatus) QueryFeaturesResult {
	return QueryFeaturesResult{IQ: envelope.ResultIQ(req.IQ), DeviceStatus: &status}
}

func (r QueryFeaturesResult) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.ResultIQ)
	checkDeviceStatus(v, "query-features result", r.DeviceStatus)
}

func checkDeviceStatus(v *validate.Checker, entity string, status *openlink.DeviceStatus) {
	v.Field(status != nil, entity, "device status")
	if status != nil {
		v.Nested(*status)
	}
}

func deviceStatusElem(status *openlink.DeviceStatus) xml.TokenReader {
	if status == nil {
		return nil
	}
	return status.TokenReader()
}

func decodeDeviceStatus(out *xmltree.Element, e *decode.Errors) *openlink.DeviceStatus {
	el := out.Child("devicestatus")
	if el == nil {
		return nil
	}
	status, errs := openlink.DecodeDeviceStatus(el)
	e.Append(errs...)
	return &status
}

// Validate returns the first problem with the result.
func (r QueryFeaturesResult) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the result.
func (r QueryFeaturesResult) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r QueryFeaturesResult) TokenReader() xml.TokenReader {
	return result(r.IQ, QueryFeatures, deviceStatusElem(r.DeviceStatus))
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r QueryFeaturesResult) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r QueryFeaturesResult) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeQueryFeaturesResult decodes a query-features result from an iq
// element.
func DecodeQueryFeaturesResult(el *xmltree.Element) QueryFeaturesResult {
	var e decode.Errors
	r := QueryFeaturesResult{IQ: envelope.DecodeIQ(el, &e)}
	out := iodata(el, "out", &e)
	r.DeviceStatus = decodeDeviceStatus(out, &e)
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}
