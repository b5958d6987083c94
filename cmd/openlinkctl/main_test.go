// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"mellium.im/openlink/client"
)

func TestMetricsServer(t *testing.T) {
	reg := prometheus.NewRegistry()
	client.NewMetrics(reg)
	calls := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "openlinkctl_test_total",
		Help: "Counter used by the metrics server test.",
	})
	reg.MustRegister(calls)
	calls.Add(3)

	srv := metricsServer("localhost:0", reg)
	if srv.Addr != "localhost:0" {
		t.Fatalf("unexpected server addr: %q", srv.Addr)
	}
	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(body), "openlinkctl_test_total 3") {
		t.Fatalf("counter missing from metrics output:\n%s", body)
	}

	resp, err = http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("get root: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected only /metrics to be served, got status %d", resp.StatusCode)
	}
}
