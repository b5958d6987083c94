// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package pubsub

import (
	"encoding/xml"
	"time"

	"mellium.im/openlink"
	"mellium.im/openlink/internal/attr"
	"mellium.im/openlink/internal/decode"
	"mellium.im/openlink/internal/encode"
	"mellium.im/openlink/internal/envelope"
	"mellium.im/openlink/internal/ns"
	"mellium.im/openlink/internal/validate"
	"mellium.im/openlink/xmltree"
	"mellium.im/xmlstream"
	"mellium.im/xmpp/delay"
	"mellium.im/xmpp/jid"
	"mellium.im/xmpp/stanza"
)

// Event is a message sent by the pubsub service to the subscribers of a node
// when an item is published to it.
type Event struct {
	stanza.Message
	openlink.Parsed

	Node openlink.PubSubNodeID
	Item Item

	// Delay is the time the item was originally published if the service
	// delayed delivery of the event.
	Delay time.Time
}

// NewEvent returns a headline message from the pubsub service to a
// subscriber carrying the item published to node.
func NewEvent(service, subscriber jid.JID, node openlink.PubSubNodeID, item Item) Event {
	return Event{
		Message: stanza.Message{
			ID:   attr.RandomID(),
			From: service,
			To:   subscriber,
			Type: stanza.HeadlineMessage,
		},
		Node: node,
		Item: item,
	}
}

func (ev Event) check(v *validate.Checker) {
	v.Field(ev.Node != "", "event", "node")
	ev.Item.check(v, "event", ev.Node)
}

// Validate returns the first problem with the event.
func (ev Event) Validate() error { return validate.First(ev.check) }

// Problems returns every problem with the event.
func (ev Event) Problems() []string { return validate.All(ev.check) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (ev Event) TokenReader() xml.TokenReader {
	var stamp xml.TokenReader
	if !ev.Delay.IsZero() {
		stamp = delay.Delay{Time: ev.Delay}.TokenReader()
	}
	return ev.Message.Wrap(encode.Multi(
		encode.Elem(
			xml.Name{Space: ns.PubSubEvent, Local: "event"}, nil,
			encode.Local("items", attr.Append(nil, "node", string(ev.Node)),
				ev.Item.TokenReader(),
			),
		),
		stamp,
	))
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (ev Event) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, ev.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (ev Event) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, ev.TokenReader())
}

// DecodeEvent decodes a message carrying a pubsub event.
func DecodeEvent(el *xmltree.Element) Event {
	var e decode.Errors
	ev := Event{Message: envelope.DecodeMessage(el, &e)}
	items := el.Path("event", "items")
	if items == nil {
		e.Add("Invalid stanza; missing or invalid 'items' element")
	}
	node, _ := items.AttrValue("node")
	ev.Node = openlink.PubSubNodeID(node)
	ev.Item = decodeItem(items.Child("item"), &e)
	stamp, _ := el.Child("delay").AttrValue("stamp")
	ev.Delay = e.Time("delay stamp", stamp)
	ev.ParseErrors = parseErrors(&e, ev.Problems())
	return ev
}
