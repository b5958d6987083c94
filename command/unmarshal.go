// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package command

import (
	"encoding/xml"
	"errors"
	"strings"

	"mellium.im/openlink/internal/ns"
	"mellium.im/openlink/xmltree"
	"mellium.im/xmpp/stanza"
)

// Errors returned by Unmarshal.
var (
	ErrNotIQ       = errors.New("command: expected an iq")
	ErrUnknownNode = errors.New("command: unknown node")
)

type decoder func(*xmltree.Element) Stanza

type direction struct {
	name   string
	result bool
}

var decoders = map[direction]decoder{
	{GetProfiles, false}:        func(el *xmltree.Element) Stanza { return DecodeGetProfilesRequest(el) },
	{GetProfiles, true}:         func(el *xmltree.Element) Stanza { return DecodeGetProfilesResult(el) },
	{GetProfile, false}:         func(el *xmltree.Element) Stanza { return DecodeGetProfileRequest(el) },
	{GetProfile, true}:          func(el *xmltree.Element) Stanza { return DecodeGetProfileResult(el) },
	{GetInterests, false}:       func(el *xmltree.Element) Stanza { return DecodeGetInterestsRequest(el) },
	{GetInterests, true}:        func(el *xmltree.Element) Stanza { return DecodeGetInterestsResult(el) },
	{GetInterest, false}:        func(el *xmltree.Element) Stanza { return DecodeGetInterestRequest(el) },
	{GetInterest, true}:         func(el *xmltree.Element) Stanza { return DecodeGetInterestResult(el) },
	{GetFeatures, false}:        func(el *xmltree.Element) Stanza { return DecodeGetFeaturesRequest(el) },
	{GetFeatures, true}:         func(el *xmltree.Element) Stanza { return DecodeGetFeaturesResult(el) },
	{SetFeatures, false}:        func(el *xmltree.Element) Stanza { return DecodeSetFeaturesRequest(el) },
	{SetFeatures, true}:         func(el *xmltree.Element) Stanza { return DecodeSetFeaturesResult(el) },
	{QueryFeatures, false}:      func(el *xmltree.Element) Stanza { return DecodeQueryFeaturesRequest(el) },
	{QueryFeatures, true}:       func(el *xmltree.Element) Stanza { return DecodeQueryFeaturesResult(el) },
	{GetCallHistory, false}:     func(el *xmltree.Element) Stanza { return DecodeGetCallHistoryRequest(el) },
	{GetCallHistory, true}:      func(el *xmltree.Element) Stanza { return DecodeGetCallHistoryResult(el) },
	{MakeCall, false}:           func(el *xmltree.Element) Stanza { return DecodeMakeCallRequest(el) },
	{MakeCall, true}:            func(el *xmltree.Element) Stanza { return DecodeMakeCallResult(el) },
	{RequestAction, false}:      func(el *xmltree.Element) Stanza { return DecodeRequestActionRequest(el) },
	{RequestAction, true}:       func(el *xmltree.Element) Stanza { return DecodeRequestActionResult(el) },
	{ManageVoiceMessage, false}: func(el *xmltree.Element) Stanza { return DecodeManageVoiceMessageRequest(el) },
	{ManageVoiceMessage, true}:  func(el *xmltree.Element) Stanza { return DecodeManageVoiceMessageResult(el) },
}

// Unmarshal reads an iq from r and decodes the Openlink command it carries.
// The message type is picked by the command node and by whether the iq is a
// result.
//
// The returned error is only non-nil if the XML could not be read, the first
// element is not an iq, or the command is not an Openlink command.
// Problems with the content of the command are reported in the ParseErrors of
// the returned stanza.
func Unmarshal(r xml.TokenReader) (Stanza, error) {
	el, err := xmltree.Decode(r, nil)
	if err != nil {
		return nil, err
	}
	return UnmarshalElement(el)
}

// UnmarshalElement is like Unmarshal except that it decodes an iq that has
// already been read.
func UnmarshalElement(el *xmltree.Element) (Stanza, error) {
	if el.Local() != "iq" {
		return nil, ErrNotIQ
	}
	node, _ := el.Child("command").AttrValue("node")
	name := strings.TrimPrefix(node, ns.Openlink+"#")
	typ, _ := el.AttrValue("type")
	dec, ok := decoders[direction{
		name:   name,
		result: stanza.IQType(typ) == stanza.ResultIQ,
	}]
	if !ok || name == node {
		return nil, ErrUnknownNode
	}
	return dec(el), nil
}
