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

// PublishRequest publishes a call status or device status to the node of an
// interest.
type PublishRequest struct {
	stanza.IQ
	openlink.Parsed

	Node openlink.PubSubNodeID
	Item Item
}

// NewPublishCallStatus returns a request publishing status to node on the
// pubsub service.
// The item gets a random ID.
func NewPublishCallStatus(service jid.JID, node openlink.PubSubNodeID, status openlink.CallStatus) PublishRequest {
	item := newItem()
	item.CallStatus = &status
	return PublishRequest{IQ: envelope.NewIQ(service, stanza.SetIQ), Node: node, Item: item}
}

// NewPublishDeviceStatus is like NewPublishCallStatus for a device status.
func NewPublishDeviceStatus(service jid.JID, node openlink.PubSubNodeID, status openlink.DeviceStatus) PublishRequest {
	item := newItem()
	item.DeviceStatus = &status
	return PublishRequest{IQ: envelope.NewIQ(service, stanza.SetIQ), Node: node, Item: item}
}

func (r PublishRequest) check(v *validate.Checker) {
	envelope.CheckIQ(v, r.IQ, stanza.SetIQ)
	v.Field(r.Node != "", "publish request", "node")
	r.Item.check(v, "publish request", r.Node)
}

// Validate returns the first problem with the request.
func (r PublishRequest) Validate() error { return validate.First(r.check) }

// Problems returns every problem with the request.
func (r PublishRequest) Problems() []string { return validate.All(r.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r PublishRequest) TokenReader() xml.TokenReader {
	return r.IQ.Wrap(encode.Elem(
		xml.Name{Space: ns.PubSub, Local: "pubsub"}, nil,
		encode.Local("publish", attr.Append(nil, "node", string(r.Node)),
			r.Item.TokenReader(),
		),
	))
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r PublishRequest) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r PublishRequest) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, r.TokenReader())
}

// DecodePublishRequest decodes a publish iq.
func DecodePublishRequest(el *xmltree.Element) PublishRequest {
	var e decode.Errors
	r := PublishRequest{IQ: envelope.DecodeIQ(el, &e)}
	publish := el.Path("pubsub", "publish")
	if publish == nil {
		e.Add("Invalid stanza; missing or invalid 'publish' element")
	}
	node, _ := publish.AttrValue("node")
	r.Node = openlink.PubSubNodeID(node)
	r.Item = decodeItem(publish.Child("item"), &e)
	r.ParseErrors = parseErrors(&e, r.Problems())
	return r
}
