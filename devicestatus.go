// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package openlink

import (
	"encoding/xml"

	"mellium.im/openlink/internal/decode"
	"mellium.im/openlink/internal/encode"
	"mellium.im/openlink/internal/ns"
	"mellium.im/openlink/internal/validate"
	"mellium.im/openlink/xmltree"
	"mellium.im/xmlstream"
)

// DeviceStatus reports the state of the features of a profile's device.
type DeviceStatus struct {
	Profile  ProfileID
	Online   *bool
	Features []Feature
}

func (d DeviceStatus) check(v *validate.Checker) {
	v.Field(d.Profile != "", "devicestatus", "profile")
	checkFeatures(v, d.Features)
}

// Validate returns the first problem with the device status.
func (d DeviceStatus) Validate() error { return strictCheck(d) }

// Problems returns every problem with the device status.
func (d DeviceStatus) Problems() []string { return lenientCheck(d) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (d DeviceStatus) TokenReader() xml.TokenReader {
	var profile xml.TokenReader
	if d.Profile != "" || d.Online != nil {
		profile = encode.Chars("profile", boolAttr(nil, "online", d.Online), string(d.Profile))
	}
	return encode.Elem(
		xml.Name{Space: ns.DeviceStatus, Local: "devicestatus"}, nil,
		profile,
		featuresElem(d.Features),
	)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (d DeviceStatus) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, d.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (d DeviceStatus) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, d.TokenReader())
}

// DecodeDeviceStatus decodes a devicestatus element.
// The returned errors describe text that could not be converted.
func DecodeDeviceStatus(el *xmltree.Element) (DeviceStatus, []string) {
	var e decode.Errors
	d := decodeDeviceStatus(el, &e)
	return d, e.List()
}

func decodeDeviceStatus(el *xmltree.Element, e *decode.Errors) DeviceStatus {
	profile := el.Child("profile")
	online, _ := profile.AttrValue("online")
	return DeviceStatus{
		Profile:  ProfileID(profile.Text()),
		Online:   e.Bool("profile online", online),
		Features: decodeFeatures(el.Child("features"), e),
	}
}
