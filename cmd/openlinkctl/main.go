// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// The openlinkctl command logs in to an XMPP server and talks to an Openlink
// telephony service.
//
// For more information try running:
//
//	openlinkctl -help
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"mellium.im/openlink/client"
	"mellium.im/sasl"
	"mellium.im/xmpp"
	"mellium.im/xmpp/mux"
	"mellium.im/xmpp/stanza"
)

/* #nosec */
const (
	envAddr = "XMPP_ADDR"
	envPass = "XMPP_PASS"
)

const usage = `Usage: %s [options] command [args]

Commands:
  profiles                 list the profiles of the user
  interests <profile>      list the interests of a profile
  features <profile>       list the features of a profile
  call <number>            call a number from the default interest of the user
  subscribe <interest>     print the events of an interest until interrupted

  $%s: The JID to log in as
  $%s: The password

Options:
`

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("app", "openlinkctl").Logger()

	cfg := defaultConfig()
	var (
		configPath string
		addr       = os.Getenv(envAddr)
		tsc        string
		metrics    string
		verbose    bool
	)
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), usage, flags.Name(), envAddr, envPass)
		flags.PrintDefaults()
	}
	flags.StringVar(&configPath, "config", configPath, "a TOML file to read the configuration from")
	flags.StringVar(&addr, "addr", addr, "the JID to log in as")
	flags.StringVar(&tsc, "tsc", tsc, "the JID of the telephony service")
	flags.StringVar(&metrics, "metrics", metrics, "serve Prometheus metrics on this address, eg. localhost:9100")
	flags.BoolVar(&verbose, "v", verbose, "turns on verbose debug logging")

	switch err := flags.Parse(os.Args[1:]); err {
	case flag.ErrHelp:
		return
	case nil:
	default:
		logger.Fatal().Err(err).Msg("bad arguments")
	}

	var err error
	if configPath != "" {
		cfg, err = loadConfig(configPath, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("bad configuration")
		}
	}
	if addr != "" {
		if cfg.Addr, err = parseJID("addr", addr); err != nil {
			logger.Fatal().Err(err).Msg("bad address")
		}
	}
	if tsc != "" {
		if cfg.TSC, err = parseJID("tsc", tsc); err != nil {
			logger.Fatal().Err(err).Msg("bad telephony service")
		}
	}
	if metrics != "" {
		cfg.MetricsAddr = metrics
	}
	if pass := os.Getenv(envPass); pass != "" {
		cfg.Password = pass
	}
	if verbose {
		cfg.Level = zerolog.DebugLevel
	}
	logger = logger.Level(cfg.Level)

	// Return a sane error if the address is empty instead of erroring out when we
	// try to dial it.
	if cfg.Addr.String() == "" {
		logger.Fatal().Msgf("address not specified, use the -addr flag or set $%s", envAddr)
	}
	if cfg.TSC.String() == "" {
		logger.Fatal().Msg("telephony service not specified, use the -tsc flag or the config file")
	}
	if flags.NArg() == 0 {
		flags.Usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, cfg, logger, flags.Args()); err != nil {
		if errors.Is(err, errUsage) {
			flags.Usage()
			os.Exit(2)
		}
		logger.Fatal().Err(err).Msg("command failed")
	}
}

func run(ctx context.Context, cfg config, logger zerolog.Logger, args []string) error {
	dialCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	session, err := xmpp.DialClientSession(
		dialCtx,
		cfg.Addr,
		xmpp.StartTLS(&tls.Config{
			ServerName: cfg.Addr.Domain().String(),
			MinVersion: tls.VersionTLS12,
		}),
		xmpp.SASL("", cfg.Password, sasl.ScramSha256Plus, sasl.ScramSha1Plus, sasl.ScramSha256, sasl.ScramSha1, sasl.Plain),
		xmpp.BindResource(),
	)
	if err != nil {
		return fmt.Errorf("logging in as %s: %w", cfg.Addr, err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Debug().Err(err).Msg("closing session")
		}
	}()
	logger.Debug().Str("addr", session.LocalAddr().String()).Msg("logged in")

	opts := []client.Option{client.Logger(logger)}
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, client.WithMetrics(client.NewMetrics(reg)))
		srv := metricsServer(cfg.MetricsAddr, reg)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Str("addr", cfg.MetricsAddr).Msg("serving metrics")
			}
		}()
		defer srv.Close()
	}
	if cfg.PubSub.String() != "" {
		opts = append(opts, client.PubSubService(cfg.PubSub))
	}
	c := client.New(session, cfg.TSC, opts...)

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	events := make(eventQueue, eventBuffer)
	go func() {
		err := session.Serve(mux.New(stanza.NSClient, c.HandleEvents(events)))
		if err != nil {
			logger.Error().Err(err).Msg("session ended")
		}
		stop()
	}()

	return dispatch(ctx, cfg, c, events, os.Stdout, args)
}

// metricsServer returns a server that exposes the metrics gathered by reg at
// /metrics.
func metricsServer(addr string, reg *prometheus.Registry) *http.Server {
	m := http.NewServeMux()
	m.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:              addr,
		Handler:           m,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
