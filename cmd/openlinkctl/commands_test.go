// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"strings"
	"testing"
	"time"

	"mellium.im/openlink"
	"mellium.im/openlink/client"
	"mellium.im/openlink/command"
	"mellium.im/openlink/pubsub"
	"mellium.im/openlink/xmltree"
	"mellium.im/xmlstream"
	"mellium.im/xmpp/jid"
	"mellium.im/xmpp/stanza"
)

var (
	tsc   = jid.MustParse("openlink.example.net")
	local = jid.MustParse("user@example.net/desk")
)

type nopCloser struct {
	xml.TokenReader
}

func (nopCloser) Close() error { return nil }

// replySender answers every request with the result built by reply.
type replySender struct {
	reply func(*xmltree.Element) xml.TokenReader
}

func (replySender) LocalAddr() jid.JID { return local }

func (s replySender) SendIQ(_ context.Context, r xml.TokenReader) (xmlstream.TokenReadCloser, error) {
	el, err := xmltree.Decode(r, nil)
	if err != nil {
		return nil, err
	}
	el.Attr = append(el.Attr, xml.Attr{Name: xml.Name{Local: "from"}, Value: local.String()})
	return nopCloser{s.reply(el)}, nil
}

func testConfig() config {
	cfg := defaultConfig()
	cfg.Addr = local.Bare()
	cfg.TSC = tsc
	return cfg
}

func TestDispatchProfiles(t *testing.T) {
	c := client.New(replySender{reply: func(el *xmltree.Element) xml.TokenReader {
		req := command.DecodeGetProfilesRequest(el)
		return command.NewGetProfilesResult(req, []openlink.Profile{
			{ID: "p1", Device: "3001", Label: "Desk"},
		}).TokenReader()
	}}, tsc)

	var buf bytes.Buffer
	err := dispatch(context.Background(), testConfig(), c, nil, &buf, []string{"profiles"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "ID") || !strings.Contains(out, "p1") || !strings.Contains(out, "Desk") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestDispatchInterests(t *testing.T) {
	c := client.New(replySender{reply: func(el *xmltree.Element) xml.TokenReader {
		req := command.DecodeGetInterestsRequest(el)
		if req.Profile != "p1" {
			t.Errorf("wrong profile requested: %q", req.Profile)
		}
		return command.NewGetInterestsResult(req, []openlink.Interest{
			{ID: "i1", Type: "DirectoryNumber", Label: "3001"},
		}).TokenReader()
	}}, tsc)

	var buf bytes.Buffer
	err := dispatch(context.Background(), testConfig(), c, nil, &buf, []string{"interests", "p1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "DirectoryNumber") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestDispatchUsage(t *testing.T) {
	c := client.New(replySender{}, tsc)
	for _, args := range [][]string{
		nil,
		{"interests"},
		{"features"},
		{"call"},
		{"subscribe"},
		{"dance"},
	} {
		err := dispatch(context.Background(), testConfig(), c, nil, &bytes.Buffer{}, args)
		if !errors.Is(err, errUsage) {
			t.Errorf("%q: expected usage error, got %v", args, err)
		}
	}
}

func TestSubscribe(t *testing.T) {
	var unsubscribed bool
	c := client.New(replySender{reply: func(el *xmltree.Element) xml.TokenReader {
		switch {
		case el.Path("pubsub", "subscribe") != nil:
			req := pubsub.DecodeSubscribeRequest(el)
			return pubsub.NewSubscriptionResult(req, openlink.SubscriptionSubscribed).TokenReader()
		case el.Path("pubsub", "unsubscribe") != nil:
			unsubscribed = true
		}
		id, _ := el.AttrValue("id")
		return stanza.IQ{ID: id, To: local, Type: stanza.ResultIQ}.Wrap(nil)
	}}, tsc)

	ctx, cancel := context.WithCancel(context.Background())
	events := make(eventQueue, eventBuffer)
	status := openlink.CallStatus{Calls: []openlink.Call{{
		ID:        "c1",
		Interest:  "i1",
		State:     openlink.CallDelivered,
		Direction: openlink.Incoming,
		Caller:    openlink.PartyInfo{Number: "3002"},
		StartTime: time.Date(2022, time.March, 4, 5, 6, 7, 0, time.UTC),
	}}}
	for _, node := range []openlink.PubSubNodeID{"i2", "i1"} {
		err := events.HandleEvent(pubsub.Event{Node: node, Item: pubsub.Item{ID: "1", CallStatus: &status}})
		if err != nil {
			t.Fatalf("error queueing event: %v", err)
		}
	}

	var buf bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- subscribe(ctx, testConfig(), c, events, &buf, "i1")
	}()
	// Once the queue is empty both events have been read, and each is printed
	// before subscribe looks at the context again.
	deadline := time.After(5 * time.Second)
	for len(events) > 0 {
		select {
		case err := <-done:
			cancel()
			t.Fatalf("subscribe returned before reading the events: %v", err)
		case <-deadline:
			cancel()
			t.Fatalf("timed out waiting for the events to be read")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-deadline:
		t.Fatalf("timed out waiting for subscribe to return")
	}
	if !unsubscribed {
		t.Errorf("subscription was not removed")
	}
	out := buf.String()
	if !strings.HasPrefix(out, "i1: subscribed\n") {
		t.Errorf("subscription not printed:\n%s", out)
	}
	if !strings.Contains(out, "CallDelivered") || !strings.Contains(out, "3002") {
		t.Errorf("event not printed:\n%s", out)
	}
}
