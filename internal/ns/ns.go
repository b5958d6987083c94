// Copyright 2016 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package ns provides namespace constants that are used by the openlink
// packages.
package ns // import "mellium.im/openlink/internal/ns"

import (
	"mellium.im/xmpp/commands"
	"mellium.im/xmpp/pubsub"
)

// List of commonly used namespaces.
const (
	Commands    = commands.NS
	IOData      = "urn:xmpp:tmp:io-data"
	PubSub      = pubsub.NS
	PubSubEvent = pubsub.NS + "#event"
	XML         = "http://www.w3.org/XML/1998/namespace"

	Openlink     = "http://xmpp.org/protocol/openlink:01:00:00"
	CallHistory  = Openlink + "/call-history"
	CallStatus   = "http://xmpp.org/protocol/openlink:01:00:00#call-status"
	DeviceKeys   = Openlink + "/features#device-keys"
	DeviceStatus = Openlink + "#device-status"
	Features     = Openlink + "/features"
	Interests    = Openlink + "/interests"
	Profiles     = Openlink + "/profiles"
	Speaker      = Openlink + "/features#speaker-channel"
	VoiceMessage = Openlink + "/features#voice-message"
	Recorder     = Openlink + "/features#voice-recorder"
)

// Node returns the ad-hoc command node for the named Openlink command.
func Node(name string) string {
	return Openlink + "#" + name
}
