// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes of a request as recorded in the requests_total metric.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
)

// Metrics holds the Prometheus collectors updated by a Client.
// A nil *Metrics records nothing.
type Metrics struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	parseErrors *prometheus.CounterVec
	events      *prometheus.CounterVec
}

// NewMetrics creates the client collectors and registers them with reg.
// If reg is nil the collectors are created but not registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "openlink",
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Total Openlink requests by command and outcome.",
			},
			[]string{"command", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "openlink",
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "Time between sending a request and decoding its result.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"command"},
		),
		parseErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "openlink",
				Subsystem: "client",
				Name:      "parse_errors_total",
				Help:      "Problems found while decoding results and events.",
			},
			[]string{"stanza"},
		),
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "openlink",
				Subsystem: "client",
				Name:      "events_total",
				Help:      "Pubsub events received by payload.",
			},
			[]string{"payload"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration, m.parseErrors, m.events)
	}
	return m
}

func (m *Metrics) request(name, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(name, outcome).Inc()
	if outcome == OutcomeOK || outcome == OutcomeRejected {
		m.duration.WithLabelValues(name).Observe(d.Seconds())
	}
}

func (m *Metrics) parsed(name string, errs []string) {
	if m == nil || len(errs) == 0 {
		return
	}
	m.parseErrors.WithLabelValues(name).Add(float64(len(errs)))
}

func (m *Metrics) event(payload string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(payload).Inc()
}
