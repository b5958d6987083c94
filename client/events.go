// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package client

import (
	"encoding/xml"

	"mellium.im/openlink/internal/ns"
	"mellium.im/openlink/pubsub"
	"mellium.im/openlink/xmltree"
	"mellium.im/xmlstream"
	"mellium.im/xmpp/mux"
	"mellium.im/xmpp/stanza"
)

// EventHandler is called with every event published to a node the user is
// subscribed to.
// Events are decoded leniently; any problems are in the ParseErrors of the
// event.
type EventHandler interface {
	HandleEvent(ev pubsub.Event) error
}

// The EventHandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers.
type EventHandlerFunc func(ev pubsub.Event) error

// HandleEvent calls f(ev).
func (f EventHandlerFunc) HandleEvent(ev pubsub.Event) error {
	return f(ev)
}

// HandleEvents returns an option that registers h for the pubsub events sent
// in normal and headline messages.
// Events that are not sent by the pubsub service of the client are dropped.
func (c *Client) HandleEvents(h EventHandler) mux.Option {
	name := xml.Name{Space: ns.PubSubEvent, Local: "event"}
	handler := eventHandler{c: c, h: h}
	return func(m *mux.ServeMux) {
		mux.Message(stanza.NormalMessage, name, handler)(m)
		mux.Message(stanza.HeadlineMessage, name, handler)(m)
	}
}

type eventHandler struct {
	c *Client
	h EventHandler
}

func (e eventHandler) HandleMessage(msg stanza.Message, t xmlstream.TokenReadEncoder) error {
	el, err := xmltree.Decode(t, nil)
	if err != nil {
		return err
	}
	ev := pubsub.DecodeEvent(el)
	logger := e.c.logger.With().Str("from", msg.From.String()).Str("node", string(ev.Node)).Logger()
	if !msg.From.Equal(e.c.pubsub) {
		logger.Warn().Msg("dropping event from unexpected sender")
		return nil
	}

	payload := "none"
	switch {
	case ev.Item.CallStatus != nil:
		payload = "callstatus"
	case ev.Item.DeviceStatus != nil:
		payload = "devicestatus"
	}
	e.c.metrics.event(payload)
	e.c.metrics.parsed("event", ev.ParseErrors)
	if len(ev.ParseErrors) > 0 {
		logger.Warn().Str("payload", payload).Strs("errors", ev.ParseErrors).Msg("event has problems")
	} else {
		logger.Debug().Str("payload", payload).Msg("received event")
	}
	return e.h.HandleEvent(ev)
}
