// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package pubsub

import (
	"encoding/xml"
	"errors"

	"mellium.im/openlink/xmltree"
)

// Errors returned by Unmarshal.
var (
	ErrNotStanza      = errors.New("pubsub: expected an iq or message")
	ErrUnknownPayload = errors.New("pubsub: unknown payload")
)

// Unmarshal reads an iq or message from r and decodes the pubsub payload it
// carries.
//
// As with the command package, the returned error is only non-nil if the XML
// could not be read or does not hold a known payload.
// Problems with the content are reported in the ParseErrors of the returned
// stanza.
func Unmarshal(r xml.TokenReader) (Stanza, error) {
	el, err := xmltree.Decode(r, nil)
	if err != nil {
		return nil, err
	}
	return UnmarshalElement(el)
}

// UnmarshalElement is like Unmarshal except that it decodes a stanza that has
// already been read.
func UnmarshalElement(el *xmltree.Element) (Stanza, error) {
	switch el.Local() {
	case "message":
		if el.Child("event") == nil {
			return nil, ErrUnknownPayload
		}
		return DecodeEvent(el), nil
	case "iq":
	default:
		return nil, ErrNotStanza
	}
	ps := el.Child("pubsub")
	switch {
	case ps.Child("publish") != nil:
		return DecodePublishRequest(el), nil
	case ps.Child("subscribe") != nil:
		return DecodeSubscribeRequest(el), nil
	case ps.Child("unsubscribe") != nil:
		return DecodeUnsubscribeRequest(el), nil
	case ps.Child("subscription") != nil:
		return DecodeSubscriptionResult(el), nil
	}
	return nil, ErrUnknownPayload
}
