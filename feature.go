// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package openlink

import (
	"encoding/xml"
	"fmt"
	"strings"

	"mellium.im/openlink/internal/attr"
	"mellium.im/openlink/internal/decode"
	"mellium.im/openlink/internal/encode"
	"mellium.im/openlink/internal/ns"
	"mellium.im/openlink/internal/validate"
	"mellium.im/openlink/xmltree"
	"mellium.im/xmlstream"
)

// Feature is a capability of a profile, device or call.
//
// Payload holds the state of the feature when it has any.
// It is one of Boolean, Handset, DeviceKey, SpeakerChannel, TextValue,
// VoiceRecorderInfo or VoiceMessage.
type Feature struct {
	ID      FeatureID
	Type    FeatureType
	Label   string
	Payload FeaturePayload
}

// FeaturePayload is the type specific content of a feature.
// It is implemented only by the payload types in this package.
type FeaturePayload interface {
	// TokenReader returns the content of the feature element.
	TokenReader() xml.TokenReader

	check(v *validate.Checker)
}

func (f Feature) check(v *validate.Checker) {
	v.Field(f.ID != "", "feature", "id")
	v.Field(f.Type != "", "feature", "type")
	if f.Payload != nil {
		if kind, ok := f.textKind(); !ok {
			v.Require(false,
				fmt.Sprintf("The feature %s of type %s cannot carry a %s payload", f.ID, f.Type, kind),
				fmt.Sprintf("Invalid feature %s; a %s payload cannot be sent for type %s", f.ID, kind, f.Type),
			)
		}
		f.Payload.check(v)
	}
}

// textKind reports whether a payload sent as bare character data would decode
// back to the same payload kind for the type of the feature.
// Payloads with their own element always decode back and are reported as ok.
func (f Feature) textKind() (string, bool) {
	switch p := f.Payload.(type) {
	case Handset:
		return "handset", f.Type == FeatureHandset
	case Boolean:
		return "boolean", f.Type != FeatureHandset && f.Type != FeatureCallForward
	case TextValue:
		if f.Type == FeatureCallForward {
			return "text", true
		}
		return "text", f.Type != FeatureHandset && !isBoolText(p.Value)
	}
	return "", true
}

func isBoolText(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false":
		return true
	}
	return false
}

// Validate returns the first problem with the feature.
func (f Feature) Validate() error { return strictCheck(f) }

// Problems returns every problem with the feature.
func (f Feature) Problems() []string { return lenientCheck(f) }

// TokenReader satisfies the xmlstream.Marshaler interface.
func (f Feature) TokenReader() xml.TokenReader {
	a := attr.Append(nil, "id", string(f.ID))
	a = attr.Append(a, "type", string(f.Type))
	a = attr.Append(a, "label", f.Label)
	var inner xml.TokenReader
	if f.Payload != nil {
		inner = f.Payload.TokenReader()
	}
	return encode.Local("feature", a, inner)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (f Feature) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, f.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (f Feature) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return marshal(e, f.TokenReader())
}

// DecodeFeature decodes a feature element.
// The returned errors describe text that could not be converted.
//
// The payload is chosen by the child element if there is one, and otherwise
// by the feature type: handsets decode to Handset and call forwarding to
// TextValue. Any other feature with text content decodes to Boolean if the
// text is "true" or "false" and to TextValue if it is not.
func DecodeFeature(el *xmltree.Element) (Feature, []string) {
	var e decode.Errors
	f := decodeFeature(el, &e)
	return f, e.List()
}

func decodeFeature(el *xmltree.Element, e *decode.Errors) Feature {
	id, _ := el.AttrValue("id")
	typ, _ := el.AttrValue("type")
	label, _ := el.AttrValue("label")
	f := Feature{
		ID:    FeatureID(id),
		Type:  decode.Enum(e, "feature type", typ, ParseFeatureType),
		Label: label,
	}
	switch {
	case el.Child("devicekeys") != nil:
		f.Payload = DeviceKey{Key: KeyID(el.Path("devicekeys", "key").Text())}
	case el.Child("speakerchannel") != nil:
		sc := el.Child("speakerchannel")
		f.Payload = SpeakerChannel{
			Channel:    e.Int("speaker channel", sc.ChildText("channel")),
			Microphone: e.Bool("speaker microphone", sc.ChildText("microphone")),
			Mute:       e.Bool("speaker mute", sc.ChildText("mute")),
		}
	case el.Child("voicerecorder") != nil:
		vr := el.Child("voicerecorder")
		f.Payload = VoiceRecorderInfo{
			Number:  RecorderNumber(vr.ChildText("recnumber")),
			Port:    RecorderPort(vr.ChildText("recport")),
			Channel: RecorderChannel(vr.ChildText("recchan")),
			Type:    RecorderType(vr.ChildText("rectype")),
		}
	case el.Child("voicemessage") != nil:
		f.Payload = decodeVoiceMessage(el.Child("voicemessage"), e)
	case el.Text() == "":
	case f.Type == FeatureHandset:
		f.Payload = Handset{Enabled: e.Bool("handset enabled", el.Text())}
	case f.Type == FeatureCallForward:
		f.Payload = TextValue{Value: el.Text()}
	case isBoolText(el.Text()):
		f.Payload = Boolean{Enabled: e.Bool("feature enabled", el.Text())}
	default:
		f.Payload = TextValue{Value: el.Text()}
	}
	return f
}

// Boolean is the payload of a feature that is either on or off.
type Boolean struct {
	Enabled *bool
}

func (b Boolean) check(v *validate.Checker) {
	v.Field(b.Enabled != nil, "feature", "enabled flag")
}

// TokenReader returns the feature state as character data.
func (b Boolean) TokenReader() xml.TokenReader {
	return boolChars(b.Enabled)
}

// Handset is the payload of a handset feature: whether the handset is in
// use.
type Handset struct {
	Enabled *bool
}

func (h Handset) check(v *validate.Checker) {
	v.Field(h.Enabled != nil, "handset feature", "enabled flag")
}

// TokenReader returns the handset state as character data.
func (h Handset) TokenReader() xml.TokenReader {
	return boolChars(h.Enabled)
}

func boolChars(b *bool) xml.TokenReader {
	if b == nil {
		return xmlstream.MultiReader()
	}
	return xmlstream.Token(xml.CharData(decode.FormatBool(*b)))
}

// DeviceKey is the payload of a device key feature.
type DeviceKey struct {
	Key KeyID
}

func (k DeviceKey) check(v *validate.Checker) {
	v.Field(k.Key != "", "device key feature", "key")
}

// TokenReader satisfies the xmlstream.Marshaler interface.
func (k DeviceKey) TokenReader() xml.TokenReader {
	return encode.Elem(
		xml.Name{Space: ns.DeviceKeys, Local: "devicekeys"}, nil,
		encode.Text("key", string(k.Key)),
	)
}

// SpeakerChannel is the payload of a speaker channel feature.
type SpeakerChannel struct {
	Channel    *int64
	Microphone *bool
	Mute       *bool
}

func (s SpeakerChannel) check(v *validate.Checker) {
	v.Field(s.Channel != nil, "speaker channel feature", "channel")
	v.Field(s.Microphone != nil, "speaker channel feature", "microphone flag")
	v.Field(s.Mute != nil, "speaker channel feature", "mute flag")
}

// TokenReader satisfies the xmlstream.Marshaler interface.
func (s SpeakerChannel) TokenReader() xml.TokenReader {
	return encode.Elem(
		xml.Name{Space: ns.Speaker, Local: "speakerchannel"}, nil,
		encode.Int("channel", s.Channel),
		encode.Bool("microphone", s.Microphone),
		encode.Bool("mute", s.Mute),
	)
}

// TextValue is the payload of a feature whose state is free text, such as a
// call forwarding destination.
type TextValue struct {
	Value string
}

func (t TextValue) check(v *validate.Checker) {
	v.Field(t.Value != "", "text feature", "value")
}

// TokenReader returns the value as character data.
func (t TextValue) TokenReader() xml.TokenReader {
	if t.Value == "" {
		return xmlstream.MultiReader()
	}
	return xmlstream.Token(xml.CharData(t.Value))
}

// VoiceRecorderInfo is the payload of a voice recorder feature.
type VoiceRecorderInfo struct {
	Number  RecorderNumber
	Port    RecorderPort
	Channel RecorderChannel
	Type    RecorderType
}

func (r VoiceRecorderInfo) check(v *validate.Checker) {
	v.Field(r.Number != "", "voice recorder feature", "number")
	v.Field(r.Port != "", "voice recorder feature", "port")
	v.Field(r.Channel != "", "voice recorder feature", "channel")
	v.Field(r.Type != "", "voice recorder feature", "type")
}

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r VoiceRecorderInfo) TokenReader() xml.TokenReader {
	return encode.Elem(
		xml.Name{Space: ns.Recorder, Local: "voicerecorder"}, nil,
		encode.Text("recnumber", string(r.Number)),
		encode.Text("recport", string(r.Port)),
		encode.Text("recchan", string(r.Channel)),
		encode.Text("rectype", string(r.Type)),
	)
}

func decodeFeatures(el *xmltree.Element, e *decode.Errors) []Feature {
	var out []Feature
	for _, f := range el.All("feature") {
		out = append(out, decodeFeature(f, e))
	}
	return out
}

func featureIDs(features []Feature) []FeatureID {
	ids := make([]FeatureID, 0, len(features))
	for _, f := range features {
		ids = append(ids, f.ID)
	}
	return ids
}

// checkFeatures checks each feature and then that their ids are unique.
func checkFeatures(v *validate.Checker, features []Feature) {
	for _, f := range features {
		f.check(v)
	}
	validate.Unique(v, featureIDs(features), "feature")
}

func featuresElem(features []Feature) xml.TokenReader {
	if len(features) == 0 {
		return nil
	}
	inner := make([]xml.TokenReader, 0, len(features))
	for _, f := range features {
		inner = append(inner, f.TokenReader())
	}
	return encode.Local("features", nil, inner...)
}
