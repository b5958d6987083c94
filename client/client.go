// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package client

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"time"

	"mellium.im/openlink"
	"mellium.im/openlink/command"
	"mellium.im/openlink/internal/attr"
	"mellium.im/openlink/pubsub"
	"mellium.im/openlink/xmltree"
	"mellium.im/xmlstream"
	"mellium.im/xmpp/jid"
	"mellium.im/xmpp/stanza"
)

// ErrNoResponse is returned if the session returns no response to a request.
var ErrNoResponse = errors.New("client: no response to request")

// Sender is the part of an *xmpp.Session used by Client.
type Sender interface {
	LocalAddr() jid.JID
	SendIQ(ctx context.Context, r xml.TokenReader) (xmlstream.TokenReadCloser, error)
}

// A Client sends Openlink requests to a telephony service.
type Client struct {
	options
	s   Sender
	tsc jid.JID
}

// New creates a client that sends requests over s to the telephony service
// component tsc.
func New(s Sender, tsc jid.JID, opts ...Option) *Client {
	return &Client{
		options: getOpts(tsc, opts...),
		s:       s,
		tsc:     tsc,
	}
}

// TSC returns the address of the telephony service.
func (c *Client) TSC() jid.JID {
	return c.tsc
}

// address fills in the parts of a request envelope left empty by the caller.
func (c *Client) address(iq stanza.IQ, to jid.JID) stanza.IQ {
	if iq.To.Equal(jid.JID{}) {
		iq.To = to
	}
	if iq.Type == "" {
		iq.Type = stanza.SetIQ
	}
	if iq.ID == "" {
		iq.ID = attr.RandomID()
	}
	return iq
}

// GetProfiles requests the profiles of the user named in req.
// If req.JID is empty the bare address of the session is used.
func (c *Client) GetProfiles(ctx context.Context, req command.GetProfilesRequest) (command.GetProfilesResult, error) {
	req.IQ = c.address(req.IQ, c.tsc)
	if req.JID.Equal(jid.JID{}) {
		req.JID = c.s.LocalAddr().Bare()
	}
	return roundTrip(ctx, c, command.GetProfiles, req, command.DecodeGetProfilesResult)
}

// GetProfile requests a single profile.
func (c *Client) GetProfile(ctx context.Context, req command.GetProfileRequest) (command.GetProfileResult, error) {
	req.IQ = c.address(req.IQ, c.tsc)
	return roundTrip(ctx, c, command.GetProfile, req, command.DecodeGetProfileResult)
}

// GetInterests requests the interests of a profile.
func (c *Client) GetInterests(ctx context.Context, req command.GetInterestsRequest) (command.GetInterestsResult, error) {
	req.IQ = c.address(req.IQ, c.tsc)
	return roundTrip(ctx, c, command.GetInterests, req, command.DecodeGetInterestsResult)
}

// GetInterest requests a single interest.
func (c *Client) GetInterest(ctx context.Context, req command.GetInterestRequest) (command.GetInterestResult, error) {
	req.IQ = c.address(req.IQ, c.tsc)
	return roundTrip(ctx, c, command.GetInterest, req, command.DecodeGetInterestResult)
}

// GetFeatures requests the features of a profile.
func (c *Client) GetFeatures(ctx context.Context, req command.GetFeaturesRequest) (command.GetFeaturesResult, error) {
	req.IQ = c.address(req.IQ, c.tsc)
	return roundTrip(ctx, c, command.GetFeatures, req, command.DecodeGetFeaturesResult)
}

// SetFeatures changes the value of a feature.
func (c *Client) SetFeatures(ctx context.Context, req command.SetFeaturesRequest) (command.SetFeaturesResult, error) {
	req.IQ = c.address(req.IQ, c.tsc)
	return roundTrip(ctx, c, command.SetFeatures, req, command.DecodeSetFeaturesResult)
}

// QueryFeatures requests the current state of the features of a profile.
func (c *Client) QueryFeatures(ctx context.Context, req command.QueryFeaturesRequest) (command.QueryFeaturesResult, error) {
	req.IQ = c.address(req.IQ, c.tsc)
	return roundTrip(ctx, c, command.QueryFeatures, req, command.DecodeQueryFeaturesResult)
}

// GetCallHistory requests a page of call history records.
// If req.JID is empty the bare address of the session is used.
func (c *Client) GetCallHistory(ctx context.Context, req command.GetCallHistoryRequest) (command.GetCallHistoryResult, error) {
	req.IQ = c.address(req.IQ, c.tsc)
	if req.JID.Equal(jid.JID{}) {
		req.JID = c.s.LocalAddr().Bare()
	}
	return roundTrip(ctx, c, command.GetCallHistory, req, command.DecodeGetCallHistoryResult)
}

// MakeCall asks the telephony service to place a call.
// If req.JID is empty the bare address of the session is used.
func (c *Client) MakeCall(ctx context.Context, req command.MakeCallRequest) (command.MakeCallResult, error) {
	req.IQ = c.address(req.IQ, c.tsc)
	if req.JID.Equal(jid.JID{}) {
		req.JID = c.s.LocalAddr().Bare()
	}
	return roundTrip(ctx, c, command.MakeCall, req, command.DecodeMakeCallResult)
}

// RequestAction performs an action on an existing call.
func (c *Client) RequestAction(ctx context.Context, req command.RequestActionRequest) (command.RequestActionResult, error) {
	req.IQ = c.address(req.IQ, c.tsc)
	return roundTrip(ctx, c, command.RequestAction, req, command.DecodeRequestActionResult)
}

// ManageVoiceMessage records, plays back, edits, queries or deletes voice
// messages.
func (c *Client) ManageVoiceMessage(ctx context.Context, req command.ManageVoiceMessageRequest) (command.ManageVoiceMessageResult, error) {
	req.IQ = c.address(req.IQ, c.tsc)
	return roundTrip(ctx, c, command.ManageVoiceMessage, req, command.DecodeManageVoiceMessageResult)
}

// Subscribe subscribes the bare address of the session to the events of
// node.
func (c *Client) Subscribe(ctx context.Context, node openlink.PubSubNodeID) (pubsub.SubscriptionResult, error) {
	req := pubsub.NewSubscribeRequest(c.pubsub, node, c.s.LocalAddr().Bare())
	return roundTrip(ctx, c, "subscribe", req, pubsub.DecodeSubscriptionResult)
}

// Unsubscribe removes the subscription of the bare address of the session to
// node.
func (c *Client) Unsubscribe(ctx context.Context, node openlink.PubSubNodeID) error {
	req := pubsub.NewUnsubscribeRequest(c.pubsub, node, c.s.LocalAddr().Bare())
	_, err := send(ctx, c, "unsubscribe", req)
	return err
}

// Publish publishes a call status or device status item.
// If req has no recipient it is sent to the pubsub service.
func (c *Client) Publish(ctx context.Context, req pubsub.PublishRequest) error {
	req.IQ = c.address(req.IQ, c.pubsub)
	_, err := send(ctx, c, "publish", req)
	return err
}

type request interface {
	xmlstream.Marshaler
	Validate() error
}

type result interface {
	Errors() []string
}

// roundTrip sends req and decodes the reply with decode.
func roundTrip[Res result, Req request](ctx context.Context, c *Client, name string, req Req, decode func(*xmltree.Element) Res) (Res, error) {
	var zero Res
	el, err := send(ctx, c, name, req)
	if err != nil {
		return zero, err
	}
	res := decode(el)
	errs := res.Errors()
	c.metrics.parsed(name, errs)
	id, _ := el.AttrValue("id")
	if len(errs) > 0 {
		c.logger.Warn().Str("command", name).Str("id", id).Strs("errors", errs).Msg("result has problems")
	} else {
		c.logger.Debug().Str("command", name).Str("id", id).Msg("received result")
	}
	return res, nil
}

// send validates req, sends it and reads the reply.
// Error replies are returned as a stanza.Error.
func send(ctx context.Context, c *Client, name string, req request) (*xmltree.Element, error) {
	start := time.Now()
	if err := req.Validate(); err != nil {
		c.metrics.request(name, OutcomeInvalid, 0)
		return nil, fmt.Errorf("client: invalid %s request: %w", name, err)
	}
	resp, err := c.s.SendIQ(ctx, req.TokenReader())
	if err != nil {
		c.metrics.request(name, OutcomeFailed, 0)
		return nil, fmt.Errorf("client: sending %s request: %w", name, err)
	}
	if resp == nil {
		c.metrics.request(name, OutcomeFailed, 0)
		return nil, ErrNoResponse
	}
	/* #nosec */
	defer resp.Close()
	el, err := xmltree.Decode(resp, nil)
	if err != nil {
		c.metrics.request(name, OutcomeFailed, 0)
		return nil, fmt.Errorf("client: reading %s result: %w", name, err)
	}
	if err := iqError(el); err != nil {
		c.metrics.request(name, OutcomeRejected, time.Since(start))
		c.logger.Info().Str("command", name).Err(err).Msg("request rejected")
		return nil, err
	}
	c.metrics.request(name, OutcomeOK, time.Since(start))
	return el, nil
}

// iqError returns the stanza error carried by an error IQ.
func iqError(el *xmltree.Element) error {
	if typ, _ := el.AttrValue("type"); stanza.IQType(typ) != stanza.ErrorIQ {
		return nil
	}
	var se stanza.Error
	if e := el.Child("error"); e != nil {
		if err := xml.NewTokenDecoder(e.TokenReader()).Decode(&se); err != nil {
			return fmt.Errorf("client: decoding error reply: %w", err)
		}
	}
	return se
}
