// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func writeConfig(t *testing.T, s string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "openlinkctl.toml")
	if err := os.WriteFile(path, []byte(s), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
addr = "user@example.net"
password = "secret"
tsc = "openlink.example.net"
log_level = "debug"
timeout = "5s"
`)
	cfg, err := loadConfig(path, defaultConfig())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Addr.String() != "user@example.net" {
		t.Fatalf("unexpected addr: %v", cfg.Addr)
	}
	if cfg.Password != "secret" {
		t.Fatalf("unexpected password: %q", cfg.Password)
	}
	if cfg.TSC.String() != "openlink.example.net" {
		t.Fatalf("unexpected tsc: %v", cfg.TSC)
	}
	if cfg.PubSub.String() != "" {
		t.Fatalf("pubsub should keep its default: %v", cfg.PubSub)
	}
	if cfg.Level != zerolog.DebugLevel {
		t.Fatalf("unexpected log level: %v", cfg.Level)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Timeout)
	}
}

func TestLoadConfigMetrics(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, `metrics_addr = " localhost:9100 "`), defaultConfig())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.MetricsAddr != "localhost:9100" {
		t.Fatalf("unexpected metrics addr: %q", cfg.MetricsAddr)
	}
	cfg, err = loadConfig(writeConfig(t, ""), defaultConfig())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.MetricsAddr != "" {
		t.Fatalf("metrics should be off by default, got addr %q", cfg.MetricsAddr)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, ""), defaultConfig())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Level != zerolog.InfoLevel {
		t.Fatalf("unexpected log level: %v", cfg.Level)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Timeout)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		toml string
		err  string
	}{
		{name: "timeout", toml: `timeout = "soon"`, err: "parse timeout"},
		{name: "level", toml: `log_level = "loud"`, err: "parse log_level"},
		{name: "jid", toml: `tsc = "@"`, err: "parse tsc"},
		{name: "syntax", toml: `addr = `, err: "load config"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tc.toml), defaultConfig())
			if err == nil || !strings.Contains(err.Error(), tc.err) {
				t.Fatalf("expected error containing %q, got %v", tc.err, err)
			}
		})
	}
}
