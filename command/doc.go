// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package command implements the Openlink requests and results that are
// carried as XEP-0050: Ad-Hoc Commands.
//
// Each request is an IQ of type set holding a command element whose node names
// the Openlink operation, with the arguments in an XEP-0244 io-data input
// element:
//
//	<iq type="set" to="tsc.example.net" id="…">
//	  <command xmlns="http://jabber.org/protocol/commands"
//	           node="http://xmpp.org/protocol/openlink:01:00:00#get-profiles"
//	           action="execute">
//	    <iodata xmlns="urn:xmpp:tmp:io-data" type="input">
//	      <in><jid>user@example.net</jid></in>
//	    </iodata>
//	  </command>
//	</iq>
//
// The matching result is an IQ of type result with a completed command and
// an io-data output element.
//
// Every message type embeds the stanza.IQ it is sent in, and can be built by
// the application (and then checked with Validate before it is sent) or
// decoded from the network with Unmarshal or one of the DecodeXxx functions.
// Decoding never fails on malformed Openlink content; every problem found is
// listed in the message's ParseErrors.
package command // import "mellium.im/openlink/command"
