// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package pubsub

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

// SubscribeRequest subscribes a JID to the events of a node.
type SubscribeRequest struct {
	stanza.IQ
	openlink.Parsed

	Node openlink.PubSubNodeID
	JID  jid.JID
}

// NewSubscribeRequest returns a request to subscribe user to node on the
// pubsub service.
func NewSubscribeRequest(service jid.JID, node openlink.PubSubNodeID, user jid.JID) SubscribeRequest {
	return SubscribeRequest{IQ: envelope.NewIQ(service, stanza.SetIQ), Node: node, JID: user}
}

func (r SubscribeRequest) check(v *validate.Checker) {
	checkSubscription(v, r.IQ, stanza.SetIQ, "subscribe request", r.Node, r.JID)
}

// Validate returns the first problem with the request.
func (r SubscribeRequest) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the request.
func (r SubscribeRequest) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r SubscribeRequest) TokenReader() xml.TokenReader {
	return subscriptionIQ(r.IQ, "subscribe", r.Node, r.JID, nil)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r SubscribeRequest) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r SubscribeRequest) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeSubscribeRequest decodes a subscribe iq.
func DecodeSubscribeRequest(el *xmltree.Element) SubscribeRequest {
	var e decode.Errors
	r := SubscribeRequest{IQ: envelope.DecodeIQ(el, &e)}
	r.Node, r.JID = decodeSubscription(el, "subscribe", &e)
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}

// UnsubscribeRequest removes the subscription of a JID to a node.
type UnsubscribeRequest struct {
	stanza.IQ
	openlink.Parsed

	Node openlink.PubSubNodeID
	JID  jid.JID
}

// NewUnsubscribeRequest returns a request to unsubscribe user from node on
// the pubsub service.
func NewUnsubscribeRequest(service jid.JID, node openlink.PubSubNodeID, user jid.JID) UnsubscribeRequest {
	return UnsubscribeRequest{IQ: envelope.NewIQ(service, stanza.SetIQ), Node: node, JID: user}
}

func (r UnsubscribeRequest) check(v *validate.Checker) {
	checkSubscription(v, r.IQ, stanza.SetIQ, "unsubscribe request", r.Node, r.JID)
}

// Validate returns the first problem with the request.
func (r UnsubscribeRequest) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the request.
func (r UnsubscribeRequest) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r UnsubscribeRequest) TokenReader() xml.TokenReader {
	return subscriptionIQ(r.IQ, "unsubscribe", r.Node, r.JID, nil)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r UnsubscribeRequest) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r UnsubscribeRequest) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeUnsubscribeRequest decodes an unsubscribe iq.
func DecodeUnsubscribeRequest(el *xmltree.Element) UnsubscribeRequest {
	var e decode.Errors
	r := UnsubscribeRequest{IQ: envelope.DecodeIQ(el, &e)}
	r.Node, r.JID = decodeSubscription(el, "unsubscribe", &e)
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}

// SubscriptionResult is the reply of the pubsub service to a subscribe or
// unsubscribe request.
type SubscriptionResult struct {
	stanza.IQ
	openlink.Parsed

	Node         openlink.PubSubNodeID
	JID          jid.JID
	Subscription openlink.SubscriptionState
}

// NewSubscriptionResult returns the reply to a subscribe request.
func NewSubscriptionResult(req SubscribeRequest, state openlink.SubscriptionState) SubscriptionResult {
	return SubscriptionResult{
		IQ:           envelope.ResultIQ(req.IQ),
		Node:         req.Node,
		JID:          req.JID,
		Subscription: state,
	}
}

func (r SubscriptionResult) check(v *validate.Checker) {
	checkSubscription(v, r.IQ, stanza.ResultIQ, "subscription result", r.Node, r.JID)
	v.Field(r.Subscription != "", "subscription result", "subscription")
}

// Validate returns the first problem with the result.
func (r SubscriptionResult) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the result.
func (r SubscriptionResult) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r SubscriptionResult) TokenReader() xml.TokenReader {
	return subscriptionIQ(r.IQ, "subscription", r.Node, r.JID,
		attr.Append(nil, "subscription", string(r.Subscription)),
	)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r SubscriptionResult) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r SubscriptionResult) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodeSubscriptionResult decodes a subscription iq.
func DecodeSubscriptionResult(el *xmltree.Element) SubscriptionResult {
	var e decode.Errors
	r := SubscriptionResult{IQ: envelope.DecodeIQ(el, &e)}
	r.Node, r.JID = decodeSubscription(el, "subscription", &e)
	sub, _ := el.Path("pubsub", "subscription").AttrValue("subscription")
	r.Subscription = decode.Enum(&e, "subscription", sub, openlink.ParseSubscriptionState)
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}

func checkSubscription(v *validate.Checker, iq stanza.IQ, typ stanza.IQType, entity string, node openlink.PubSubNodeID, j jid.JID) {
	envelope.CheckIQ(v, iq, typ)
	v.Field(node != "", entity, "node")
	v.Field(!j.Equal(jid.JID{}), entity, "jid")
}

func subscriptionIQ(iq stanza.IQ, local string, node openlink.PubSubNodeID, j jid.JID, extra []xml.Attr) xml.TokenReader {
	a := attr.Append(nil, "node", string(node))
	if !j.Equal(jid.JID{}) {
		a = append(a, encode.Attr("jid", j.String()))
	}
	a = append(a, extra...)
	return iq.Wrap(encode.Elem(
		xml.Name{Space: ns.PubSub, Local: "pubsub"}, nil,
		encode.Local(local, a),
	))
}

func decodeSubscription(el *xmltree.Element, local string, e *decode.Errors) (openlink.PubSubNodeID, jid.JID) {
	sub := el.Path("pubsub", local)
	if sub == nil {
		e.Add("Invalid stanza; missing or invalid '%s' element", local)
	}
	node, _ := sub.AttrValue("node")
	j, _ := sub.AttrValue("jid")
	return openlink.PubSubNodeID(node), e.JID("jid", j)
}
