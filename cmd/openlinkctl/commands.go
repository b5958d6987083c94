// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"mellium.im/openlink"
	"mellium.im/openlink/client"
	"mellium.im/openlink/command"
	"mellium.im/openlink/pubsub"
)

var errUsage = errors.New("bad usage")

const eventBuffer = 16

// eventQueue hands events from the session to the subscribe command.
// Events arriving while the queue is full are dropped.
type eventQueue chan pubsub.Event

func (q eventQueue) HandleEvent(ev pubsub.Event) error {
	select {
	case q <- ev:
	default:
	}
	return nil
}

func dispatch(ctx context.Context, cfg config, c *client.Client, events <-chan pubsub.Event, w io.Writer, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}
	reqCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	switch args[0] {
	case "profiles":
		res, err := c.GetProfiles(reqCtx, command.GetProfilesRequest{})
		if err != nil {
			return err
		}
		printProfiles(w, res.Profiles)
	case "interests":
		if arg(1) == "" {
			return errUsage
		}
		res, err := c.GetInterests(reqCtx, command.NewGetInterestsRequest(c.TSC(), openlink.ProfileID(arg(1))))
		if err != nil {
			return err
		}
		printInterests(w, res.Interests)
	case "features":
		if arg(1) == "" {
			return errUsage
		}
		res, err := c.GetFeatures(reqCtx, command.NewGetFeaturesRequest(c.TSC(), openlink.ProfileID(arg(1))))
		if err != nil {
			return err
		}
		printFeatures(w, res.Features)
	case "call":
		if arg(1) == "" {
			return errUsage
		}
		// The client fills in the logged in user and the envelope.
		req := command.MakeCallRequest{Destination: openlink.PhoneNumber(arg(1))}
		res, err := c.MakeCall(reqCtx, req)
		if err != nil {
			return err
		}
		if res.CallStatus != nil {
			printCalls(w, res.CallStatus.Calls)
		}
	case "subscribe":
		if arg(1) == "" {
			return errUsage
		}
		return subscribe(ctx, cfg, c, events, w, openlink.PubSubNodeID(arg(1)))
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return nil
}

func subscribe(ctx context.Context, cfg config, c *client.Client, events <-chan pubsub.Event, w io.Writer, node openlink.PubSubNodeID) error {
	reqCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	res, err := c.Subscribe(reqCtx, node)
	cancel()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %s\n", res.Node, res.Subscription)

	for {
		select {
		case ev := <-events:
			if ev.Node != node {
				continue
			}
			switch {
			case ev.Item.CallStatus != nil:
				printCalls(w, ev.Item.CallStatus.Calls)
			case ev.Item.DeviceStatus != nil:
				printFeatures(w, ev.Item.DeviceStatus.Features)
			}
		case <-ctx.Done():
			// The parent context is gone so unsubscribing gets its own.
			reqCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
			defer cancel()
			return c.Unsubscribe(reqCtx, node)
		}
	}
}

func table(w io.Writer, header string, rows func(tw io.Writer)) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	/* #nosec */
	tw.Flush()
}

func boolText(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func printProfiles(w io.Writer, profiles []openlink.Profile) {
	table(w, "ID\tDEVICE\tLABEL\tDEFAULT", func(tw io.Writer) {
		for _, p := range profiles {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Device, p.Label, boolText(p.Default))
		}
	})
}

func printInterests(w io.Writer, interests []openlink.Interest) {
	table(w, "ID\tTYPE\tLABEL\tDEFAULT", func(tw io.Writer) {
		for _, i := range interests {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", i.ID, i.Type, i.Label, boolText(i.Default))
		}
	})
}

func printFeatures(w io.Writer, features []openlink.Feature) {
	table(w, "ID\tTYPE\tLABEL", func(tw io.Writer) {
		for _, f := range features {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", f.ID, f.Type, f.Label)
		}
	})
}

func printCalls(w io.Writer, calls []openlink.Call) {
	table(w, "ID\tINTEREST\tSTATE\tDIRECTION\tCALLER\tCALLED\tSTARTED", func(tw io.Writer) {
		for _, c := range calls {
			started := ""
			if !c.StartTime.IsZero() {
				started = c.StartTime.Format(time.RFC3339)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				c.ID, c.Interest, c.State, c.Direction, c.Caller.Number, c.Called.Number, started)
		}
	})
}
