// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package pubsub

import (
	"encoding/xml"
	"fmt"

	"mellium.im/openlink"
	"mellium.im/openlink/internal/attr"
	"mellium.im/openlink/internal/decode"
	"mellium.im/openlink/internal/encode"
	"mellium.im/openlink/internal/validate"
	"mellium.im/openlink/xmltree"
	"mellium.im/xmlstream"
)

// Stanza is implemented by every message in this package.
type Stanza interface {
	xmlstream.Marshaler
	xmlstream.WriterTo

	// Validate returns the first problem with the stanza.
	Validate() error

	// Problems returns every problem with the stanza.
	Problems() []string

	// Errors returns the problems found when the stanza was decoded.
	Errors() []string
}

// Item is a pubsub item holding either a call status or a device status.
type Item struct {
	ID           openlink.ItemID
	CallStatus   *openlink.CallStatus
	DeviceStatus *openlink.DeviceStatus
}

// check verifies that the item has exactly one payload and that every call it
// carries belongs to the interest of node.
func (i Item) check(v *validate.Checker, entity string, node openlink.PubSubNodeID) {
	v.Require((i.CallStatus == nil) != (i.DeviceStatus == nil),
		"The "+entity+" must contain exactly one of callstatus or devicestatus",
		"Invalid "+entity+"; exactly one of callstatus or devicestatus is required",
	)
	if i.CallStatus != nil {
		if node != "" {
			for _, c := range i.CallStatus.Calls {
				v.Check(c.Interest == node.InterestID(), fmt.Sprintf(
					"The call with id %s is on interest %s which differs from the pub-sub node id %s",
					c.ID, c.Interest, node,
				))
			}
		}
		v.Nested(*i.CallStatus)
	}
	if i.DeviceStatus != nil {
		v.Nested(*i.DeviceStatus)
	}
}

// TokenReader returns the item element.
func (i Item) TokenReader() xml.TokenReader {
	var payload xml.TokenReader
	switch {
	case i.CallStatus != nil:
		payload = i.CallStatus.TokenReader()
	case i.DeviceStatus != nil:
		payload = i.DeviceStatus.TokenReader()
	}
	return encode.Local("item", attr.Append(nil, "id", string(i.ID)), payload)
}

func decodeItem(el *xmltree.Element, e *decode.Errors) Item {
	id, _ := el.AttrValue("id")
	item := Item{ID: openlink.ItemID(id)}
	if cs := el.Child("callstatus"); cs != nil {
		status, errs := openlink.DecodeCallStatus(cs)
		e.Append(errs...)
		item.CallStatus = &status
	}
	if ds := el.Child("devicestatus"); ds != nil {
		status, errs := openlink.DecodeDeviceStatus(ds)
		e.Append(errs...)
		item.DeviceStatus = &status
	}
	return item
}

// newItem returns an item with a random ID.
func newItem() Item {
	return Item{ID: openlink.ItemID(attr.RandomID())}
}

func parseErrors(e *decode.Errors, problems []string) []string {
	e.Append(problems...)
	return e.List()
}

func marshal(e *xml.Encoder, r xml.TokenReader) error {
	_, err := xmlstream.Copy(e, r)
	return err
}
