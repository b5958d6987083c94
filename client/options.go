// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package client

import (
	"strings"

	"github.com/rs/zerolog"

	"mellium.im/xmpp/jid"
)

// Option's can be used to configure the client.
type Option func(*options)
type options struct {
	logger  zerolog.Logger
	metrics *Metrics
	pubsub  jid.JID
}

func getOpts(tsc jid.JID, o ...Option) (res options) {
	// Log to nowhere by default.
	res.logger = zerolog.Nop()
	for _, f := range o {
		f(&res)
	}

	// Openlink services publish events on the pubsub component next to the
	// telephony component unless told otherwise.
	if res.pubsub.Equal(jid.JID{}) {
		domain := tsc.Domainpart()
		if i := strings.IndexByte(domain, '.'); i >= 0 {
			domain = domain[i+1:]
		}
		res.pubsub, _ = jid.Parse("pubsub." + domain)
	}
	return
}

// The Logger option can be provided to have the Client log requests, results
// and events along with any problems found while decoding them.
func Logger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics records the number of requests, parse errors and events in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// PubSubService sets the address of the pubsub service that publishes the
// events of the telephony service.
// The default replaces the first label of the telephony service's domain with
// "pubsub", so "openlink.example.net" publishes on "pubsub.example.net".
func PubSubService(j jid.JID) Option {
	return func(o *options) {
		o.pubsub = j
	}
}
