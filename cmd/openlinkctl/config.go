// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"mellium.im/xmpp/jid"
)

type config struct {
	Addr     jid.JID
	Password string
	TSC      jid.JID
	PubSub   jid.JID
	Level    zerolog.Level
	Timeout  time.Duration

	// MetricsAddr is the address to serve Prometheus metrics on.
	// Metrics are not collected if it is empty.
	MetricsAddr string
}

func defaultConfig() config {
	return config{
		Level:   zerolog.InfoLevel,
		Timeout: 30 * time.Second,
	}
}

type fileConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	TSC      string `toml:"tsc"`
	PubSub   string `toml:"pubsub"`
	LogLevel string `toml:"log_level"`
	Timeout  string `toml:"timeout"`
	Metrics  string `toml:"metrics_addr"`
}

// loadConfig overrides the values of cfg that are set in the TOML file at
// path.
func loadConfig(path string, cfg config) (config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("addr") {
		if cfg.Addr, err = parseJID("addr", raw.Addr); err != nil {
			return cfg, err
		}
	}
	if meta.IsDefined("password") {
		cfg.Password = raw.Password
	}
	if meta.IsDefined("tsc") {
		if cfg.TSC, err = parseJID("tsc", raw.TSC); err != nil {
			return cfg, err
		}
	}
	if meta.IsDefined("pubsub") {
		if cfg.PubSub, err = parseJID("pubsub", raw.PubSub); err != nil {
			return cfg, err
		}
	}
	if meta.IsDefined("log_level") {
		if cfg.Level, err = zerolog.ParseLevel(strings.TrimSpace(raw.LogLevel)); err != nil {
			return cfg, fmt.Errorf("parse log_level: %w", err)
		}
	}
	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return cfg, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.Metrics)
	}
	return cfg, nil
}

func parseJID(name, s string) (jid.JID, error) {
	j, err := jid.Parse(strings.TrimSpace(s))
	if err != nil {
		return jid.JID{}, fmt.Errorf("parse %s: %w", name, err)
	}
	return j, nil
}
