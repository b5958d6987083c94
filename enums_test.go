// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package openlink_test

import (
	"strconv"
	"testing"

	"mellium.im/openlink"
)

func TestParseLabels(t *testing.T) {
	if s, ok := openlink.ParseCallState("callestablished"); !ok || s != openlink.CallEstablished {
		t.Errorf("wrong call state: got=%q, %t", s, ok)
	}
	if d, ok := openlink.ParseCallDirection("OUTGOING"); !ok || d != openlink.Outgoing {
		t.Errorf("wrong direction: got=%q, %t", d, ok)
	}
	if s, ok := openlink.ParseSiteType("cisco"); !ok || s != openlink.SiteCisco {
		t.Errorf("wrong site type: got=%q, %t", s, ok)
	}
	if a, ok := openlink.ParseRequestAction("startvoicedrop"); !ok || a != openlink.StartVoiceDrop {
		t.Errorf("wrong action: got=%q, %t", a, ok)
	}
	if f, ok := openlink.ParseFeatureType("callforward"); !ok || f != openlink.FeatureCallForward {
		t.Errorf("wrong feature type: got=%q, %t", f, ok)
	}
	if c, ok := openlink.ParseCallType("Missed"); !ok || c != openlink.CallTypeMissed {
		t.Errorf("wrong call type: got=%q, %t", c, ok)
	}
	if s, ok := openlink.ParseSubscriptionState("Subscribed"); !ok || s != openlink.SubscriptionSubscribed {
		t.Errorf("wrong subscription: got=%q, %t", s, ok)
	}
	for _, s := range []string{"", "nope", "Call Established"} {
		if _, ok := openlink.ParseCallState(s); ok {
			t.Errorf("expected %q not to parse", s)
		}
	}
}

var valueRuleTestCases = [...]struct {
	action   openlink.RequestAction
	min, max int
}{
	0: {action: openlink.AnswerCall},
	1: {action: openlink.ConsultationCall, min: 1, max: 1},
	2: {action: openlink.SendDigits, min: 1, max: 1},
	3: {action: openlink.StartVoiceDrop, min: 2, max: 2},
	4: {action: openlink.StopVoiceDrop},
	5: {action: openlink.AddThirdParty, min: 1, max: 1},
	6: {action: openlink.ConnectSpeaker},
}

func TestRequestActionValues(t *testing.T) {
	for i, tc := range valueRuleTestCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if n := tc.action.MinValues(); n != tc.min {
				t.Errorf("wrong min: want=%d, got=%d", tc.min, n)
			}
			if n := tc.action.MaxValues(); n != tc.max {
				t.Errorf("wrong max: want=%d, got=%d", tc.max, n)
			}
		})
	}
}

var voiceMessageRuleTestCases = [...]struct {
	action   openlink.ManageVoiceMessageAction
	features bool
	multiple bool
	label    bool
}{
	0: {action: openlink.Playback, features: true, multiple: true},
	1: {action: openlink.Record, label: true},
	2: {action: openlink.Edit, features: true, label: true},
	3: {action: openlink.Query, features: true, multiple: true},
	4: {action: openlink.Delete, features: true, multiple: true},
}

func TestVoiceMessageRules(t *testing.T) {
	for i, tc := range voiceMessageRuleTestCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if b := tc.action.FeaturesRequired(); b != tc.features {
				t.Errorf("wrong features required: want=%t, got=%t", tc.features, b)
			}
			if b := tc.action.MultipleFeatures(); b != tc.multiple {
				t.Errorf("wrong multiple features: want=%t, got=%t", tc.multiple, b)
			}
			if b := tc.action.LabelRequired(); b != tc.label {
				t.Errorf("wrong label required: want=%t, got=%t", tc.label, b)
			}
		})
	}
}

var participatingTestCases = [...]struct {
	state openlink.CallState
	dir   openlink.CallDirection
	out   bool
}{
	0:  {state: openlink.CallOriginated, dir: openlink.Outgoing, out: true},
	1:  {state: openlink.CallOriginated, dir: openlink.Incoming},
	2:  {state: openlink.CallDelivered, dir: openlink.Outgoing, out: true},
	3:  {state: openlink.CallDelivered, dir: openlink.Incoming},
	4:  {state: openlink.CallEstablished, dir: openlink.Incoming, out: true},
	5:  {state: openlink.CallConferenced, dir: openlink.Outgoing, out: true},
	6:  {state: openlink.CallHeld, dir: openlink.Incoming, out: true},
	7:  {state: openlink.CallTransferring, dir: openlink.Outgoing, out: true},
	8:  {state: openlink.CallEstablishedElsewhere, dir: openlink.Incoming},
	9:  {state: openlink.ConnectionCleared, dir: openlink.Outgoing},
	10: {state: openlink.CallEstablished},
	11: {dir: openlink.Incoming},
}

func TestIsParticipating(t *testing.T) {
	for i, tc := range participatingTestCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			c := openlink.Call{State: tc.state, Direction: tc.dir}
			if p := c.IsParticipating(); p != tc.out {
				t.Errorf("wrong result: want=%t, got=%t", tc.out, p)
			}
		})
	}
}
