// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package command

import (
	"encoding/xml"

	"mellium.im/openlink/internal/decode"
	"mellium.im/openlink/internal/encode"
	"mellium.im/openlink/internal/ns"
	"mellium.im/openlink/xmltree"
	"mellium.im/xmlstream"
	"mellium.im/xmpp/jid"
	"mellium.im/xmpp/stanza"
)

// Names of the Openlink commands.
// The command node is the Openlink namespace followed by "#" and the name.
const (
	GetProfiles        = "get-profiles"
	GetProfile         = "get-profile"
	GetInterests       = "get-interests"
	GetInterest        = "get-interest"
	GetFeatures        = "get-features"
	SetFeatures        = "set-features"
	QueryFeatures      = "query-features"
	GetCallHistory     = "get-call-history"
	MakeCall           = "make-call"
	RequestAction      = "request-action"
	ManageVoiceMessage = "manage-voice-message"
)

// Node returns the command node for the named command.
func Node(name string) string {
	return ns.Node(name)
}

// Stanza is implemented by every request and result in this package.
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

// request wraps the input arguments of the named command in an IQ.
func request(iq stanza.IQ, name string, in ...xml.TokenReader) xml.TokenReader {
	return iq.Wrap(encode.Elem(
		xml.Name{Space: ns.Commands, Local: "command"},
		[]xml.Attr{encode.Attr("node", Node(name)), encode.Attr("action", "execute")},
		encode.Elem(
			xml.Name{Space: ns.IOData, Local: "iodata"},
			[]xml.Attr{encode.Attr("type", "input")},
			encode.Local("in", nil, in...),
		),
	))
}

// result wraps the output of the named command in an IQ.
func result(iq stanza.IQ, name string, out ...xml.TokenReader) xml.TokenReader {
	return iq.Wrap(encode.Elem(
		xml.Name{Space: ns.Commands, Local: "command"},
		[]xml.Attr{encode.Attr("node", Node(name)), encode.Attr("status", "completed")},
		encode.Elem(
			xml.Name{Space: ns.IOData, Local: "iodata"},
			[]xml.Attr{encode.Attr("type", "output")},
			encode.Local("out", nil, out...),
		),
	))
}

// iodata returns the in or out element of a command, recording an error if it
// is missing.
func iodata(el *xmltree.Element, local string, e *decode.Errors) *xmltree.Element {
	data := el.Path("command", "iodata", local)
	if data == nil {
		e.Add("Invalid stanza; missing or invalid '%s' element", local)
	}
	return data
}

// parseErrors returns the decoding errors followed by the problems found by a
// lenient check of the decoded value.
func parseErrors(e *decode.Errors, problems []string) []string {
	e.Append(problems...)
	return e.List()
}

func jidText(local string, j jid.JID) xml.TokenReader {
	if j.Equal(jid.JID{}) {
		return nil
	}
	return encode.Text(local, j.String())
}

func marshal(e *xml.Encoder, r xml.TokenReader) error {
	_, err := xmlstream.Copy(e, r)
	return err
}
