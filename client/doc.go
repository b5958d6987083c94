// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package client sends Openlink requests over an XMPP session and delivers
// call and device events to the application.
//
// A Client wraps an established session (normally an *xmpp.Session) and the
// address of the telephony service component.
// Every request is validated before it is sent and every result is decoded
// leniently: problems with the payload are returned in the ParseErrors of the
// result instead of failing the call.
// Error replies from the service are returned as a stanza.Error.
//
// Events published to the nodes the user is subscribed to arrive as
// messages; register HandleEvents on the session's mux to receive them:
//
//	c := client.New(session, tsc)
//	m := mux.New(stanza.NSClient, c.HandleEvents(handler))
//	go session.Serve(m)
package client // import "mellium.im/openlink/client"
