// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package envelope builds, checks and decodes the stanza envelopes that wrap
// Openlink payloads.
package envelope // import "mellium.im/openlink/internal/envelope"

import (
	"mellium.im/openlink/internal/attr"
	"mellium.im/openlink/internal/decode"
	"mellium.im/openlink/internal/validate"
	"mellium.im/openlink/xmltree"
	"mellium.im/xmpp/jid"
	"mellium.im/xmpp/stanza"
)

// NewIQ returns an IQ of the given type addressed to to with a random ID.
func NewIQ(to jid.JID, typ stanza.IQType) stanza.IQ {
	return stanza.IQ{
		ID:   attr.RandomID(),
		To:   to,
		Type: typ,
	}
}

// ResultIQ returns the envelope of the result to req.
func ResultIQ(req stanza.IQ) stanza.IQ {
	return stanza.IQ{
		ID:   req.ID,
		To:   req.From,
		From: req.To,
		Type: stanza.ResultIQ,
	}
}

// CheckIQ checks the parts of the envelope that every request and result
// needs.
// The sender is optional since the server stamps it on outgoing stanzas.
func CheckIQ(v *validate.Checker, iq stanza.IQ, typ stanza.IQType) {
	v.Field(!iq.To.Equal(jid.JID{}), "stanza", "'to'")
	v.Field(iq.ID != "", "stanza", "'id'")
	v.Require(iq.Type == typ,
		"The stanza type must be '"+string(typ)+"'",
		"Invalid stanza; type must be '"+string(typ)+"'",
	)
}

// DecodeIQ reads the envelope of an iq element.
func DecodeIQ(el *xmltree.Element, e *decode.Errors) stanza.IQ {
	id, to, from, lang, typ := attrs(el, e)
	return stanza.IQ{
		ID:   id,
		To:   to,
		From: from,
		Lang: lang,
		Type: stanza.IQType(typ),
	}
}

// DecodeMessage reads the envelope of a message element.
func DecodeMessage(el *xmltree.Element, e *decode.Errors) stanza.Message {
	id, to, from, lang, typ := attrs(el, e)
	return stanza.Message{
		ID:   id,
		To:   to,
		From: from,
		Lang: lang,
		Type: stanza.MessageType(typ),
	}
}

func attrs(el *xmltree.Element, e *decode.Errors) (id string, to, from jid.JID, lang, typ string) {
	get := func(local string) string {
		v, _ := el.AttrValue(local)
		return v
	}
	return get("id"),
		e.JID("stanza to", get("to")),
		e.JID("stanza from", get("from")),
		get("lang"),
		get("type")
}
