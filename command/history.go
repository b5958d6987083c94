// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package command

import (
	"encoding/xml"
	"time"

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

// GetCallHistoryRequest asks for the call history of a user.
// Every filter is optional.
type GetCallHistoryRequest struct {
	stanza.IQ
	openlink.Parsed

	JID      jid.JID
	Caller   openlink.PhoneNumber
	Called   openlink.PhoneNumber
	CallType openlink.CallType

	// FromDate and UpToDate bound the calls by day; only the date is sent.
	FromDate time.Time
	UpToDate time.Time

	// Start is the offset of the first record to return and Count the maximum
	// number of records.
	Start *int64
	Count *int64
}

// NewGetCallHistoryRequest returns a request for the call history of user
// sent to the telephony service tsc.
func NewGetCallHistoryRequest(tsc, user jid.JID) GetCallHistoryRequest {
	return GetCallHistoryRequest{IQ: envelope.NewIQ(tsc, stanza.SetIQ), JID: user}
}

func (r GetCallHistoryRequest) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.SetIQ)
	v.Field(!r.JID.Equal(jid.JID{}), "get-call-history request", "jid")
	v.Require(r.FromDate.IsZero() || r.UpToDate.IsZero() || !r.UpToDate.Before(r.FromDate),
		"The get-call-history request up-to date must not be before the from date",
		"Invalid get-call-history request; up-to date is before from date",
	)
}

// Validate returns the first problem with the request.
func (r GetCallHistoryRequest) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the request.
func (r GetCallHistoryRequest) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r GetCallHistoryRequest) TokenReader() xml.TokenReader {
	return request(r.IQ, GetCallHistory,
		jidText("jid", r.JID),
		encode.Text("caller", string(r.Caller)),
		encode.Text("called", string(r.Called)),
		encode.Text("calltype", string(r.CallType)),
		encode.Date("fromdate", r.FromDate),
		encode.Date("uptodate", r.UpToDate),
		encode.Int("start", r.Start),
		encode.Int("count", r.Count),
	)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r GetCallHistoryRequest) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r GetCallHistoryRequest) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeGetCallHistoryRequest decodes a get-call-history request from an iq
// element.
func DecodeGetCallHistoryRequest(el *xmltree.Element) GetCallHistoryRequest {
	var e decode.Errors
	r := GetCallHistoryRequest{IQ: envelope.DecodeIQ(el, &e)}
	in := iodata(el, "in", &e)
	r.JID = e.JID("jid", in.ChildText("jid"))
	r.Caller = openlink.PhoneNumber(in.ChildText("caller"))
	r.Called = openlink.PhoneNumber(in.ChildText("called"))
	r.CallType = decode.Enum(&e, "calltype", in.ChildText("calltype"), openlink.ParseCallType)
	r.FromDate = e.Date("fromdate", in.ChildText("fromdate"))
	r.UpToDate = e.Date("uptodate", in.ChildText("uptodate"))
	r.Start = e.Int("start", in.ChildText("start"))
	r.Count = e.Int("count", in.ChildText("count"))
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}

// GetCallHistoryResult is one batch of a user's call history.
type GetCallHistoryResult struct {
	stanza.IQ
	openlink.Parsed

	// Total is the number of records matching the request, Start the offset
	// of this batch and Count the number of records in it.
	Total *int64
	Start *int64
	Count *int64
	Calls []openlink.HistoricalCall
}

// NewGetCallHistoryResult returns the result to req.
// Count is set to the number of calls.
func NewGetCallHistoryResult(req GetCallHistoryRequest, total, start int64, calls []openlink.HistoricalCall) GetCallHistoryResult {
	count := int64(len(calls))
	return GetCallHistoryResult{
		IQ:    envelope.ResultIQ(req.IQ),
		Total: &total,
		Start: &start,
		Count: &count,
		Calls: calls,
	}
}

func (r GetCallHistoryResult) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.ResultIQ)
	v.Check(r.Count == nil || *r.Count == int64(len(r.Calls)),
		"Invalid call history; incorrect batch record count",
	)
	for _, c := range r.Calls {
		v.Nested(c)
	}
}

// Validate returns the first problem with the result.
func (r GetCallHistoryResult) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the result.
func (r GetCallHistoryResult) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r GetCallHistoryResult) TokenReader() xml.TokenReader {
	a := intAttr(nil, "total", r.Total)
	a = intAttr(a, "start", r.Start)
	a = intAttr(a, "count", r.Count)
	calls := make([]xml.TokenReader, 0, len(r.Calls))
	for _, c := range r.Calls {
		calls = append(calls, c.TokenReader())
	}
	return result(r.IQ, GetCallHistory,
		encode.Elem(xml.Name{Space: ns.CallHistory, Local: "callhistory"}, a, calls...),
	)
}

func intAttr(a []xml.Attr, local string, i *int64) []xml.Attr {
	if i == nil {
		return a
	}
	return append(a, encode.Attr(local, decode.FormatInt(*i)))
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r GetCallHistoryResult) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r GetCallHistoryResult) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeGetCallHistoryResult decodes a get-call-history result from an iq
// element.
func DecodeGetCallHistoryResult(el *xmltree.Element) GetCallHistoryResult {
	var e decode.Errors
	r := GetCallHistoryResult{IQ: envelope.DecodeIQ(el, &e)}
	out := iodata(el, "out", &e)
	history := out.Child("callhistory")
	if out != nil && history == nil {
		e.Add("Invalid get-call-history result; missing 'callhistory' element")
	}
	get := func(local string) string {
		v, _ := history.AttrValue(local)
		return v
	}
	r.Total = e.Int("total", get("total"))
	r.Start = e.Int("start", get("start"))
	r.Count = e.Int("count", get("count"))
	for _, c := range history.All("call") {
		call, errs := openlink.DecodeHistoricalCall(c)
		e.Append(errs...)
		r.Calls = append(r.Calls, call)
	}
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}
