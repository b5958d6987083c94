// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package command_test

import (
	"encoding/xml"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"mellium.im/openlink"
	"mellium.im/openlink/command"
	"mellium.im/openlink/internal/xmpptest"
	"mellium.im/xmpp/jid"
	"mellium.im/xmpp/stanza"
)

func ptr[T any](v T) *T { return &v }

var (
	tsc   = jid.MustParse("tsc.example.net")
	user  = jid.MustParse("user@example.net")
	setIQ = stanza.IQ{
		ID:   "123",
		To:   tsc,
		From: jid.MustParse("user@example.net/desk"),
		Type: stanza.SetIQ,
	}
	resultIQ = stanza.IQ{
		ID:   "123",
		To:   jid.MustParse("user@example.net/desk"),
		From: tsc,
		Type: stanza.ResultIQ,
	}

	start   = time.Date(2022, time.March, 4, 5, 6, 7, 0, time.UTC)
	handset = openlink.Feature{
		ID:      "hs_1",
		Type:    openlink.FeatureHandset,
		Label:   "Handset",
		Payload: openlink.Handset{Enabled: ptr(false)},
	}
	call = openlink.Call{
		ID:        "c1",
		Profile:   "p1",
		Interest:  "i1",
		State:     openlink.CallEstablished,
		Direction: openlink.Outgoing,
		StartTime: start,
		Duration:  ptr(5 * time.Second),
		Actions:   []openlink.RequestAction{openlink.ClearCall},
	}
	status       = openlink.CallStatus{Busy: ptr(true), Calls: []openlink.Call{call}}
	deviceStatus = openlink.DeviceStatus{Profile: "p1", Features: []openlink.Feature{handset}}
	interest     = openlink.Interest{ID: "i1", Type: "DirectoryNumber", Label: "3001"}
	history      = openlink.HistoricalCall{
		ID:           "h1",
		User:         "user",
		Interest:     "i1",
		State:        openlink.ConnectionCleared,
		Direction:    openlink.Incoming,
		CallerNumber: "3002",
		CallerName:   "Bob",
		CalledNumber: "3001",
		CalledName:   "User",
		StartTime:    start,
		Duration:     ptr(time.Minute),
		TSC:          tsc,
	}
)

var roundTripTestCases = [...]command.Stanza{
	0: command.GetProfilesRequest{IQ: setIQ, JID: user},
	1: command.GetProfilesResult{IQ: resultIQ},
	2: command.GetProfilesResult{IQ: resultIQ, Profiles: []openlink.Profile{
		{
			ID:      "p1",
			Default: ptr(true),
			Site:    &openlink.Site{ID: "1", Type: openlink.SiteITS, Name: "London"},
			Actions: []openlink.Action{{ID: openlink.AnswerCall, Label: "Answer"}},
		},
		{ID: "p2", Device: "3001"},
	}},
	3:  command.GetProfileRequest{IQ: setIQ, Profile: "p1"},
	4:  command.GetProfileResult{IQ: resultIQ, Profile: &openlink.Profile{ID: "p1", Online: ptr(true)}},
	5:  command.GetInterestsRequest{IQ: setIQ, Profile: "p1"},
	6:  command.GetInterestsResult{IQ: resultIQ, Interests: []openlink.Interest{interest}},
	7:  command.GetInterestRequest{IQ: setIQ, Interest: "i1"},
	8:  command.GetInterestResult{IQ: resultIQ, Interest: &openlink.Interest{ID: "i1", Type: "DirectoryNumber", Label: "3001", CallStatus: &status}},
	9:  command.GetFeaturesRequest{IQ: setIQ, Profile: "p1"},
	10: command.GetFeaturesResult{IQ: resultIQ, Profile: "p1", Features: []openlink.Feature{handset}},
	11: command.SetFeaturesRequest{IQ: setIQ, Profile: "p1", Feature: "hs_1", Value1: "true", Value3: "x"},
	12: command.SetFeaturesResult{IQ: resultIQ},
	13: command.QueryFeaturesRequest{IQ: setIQ, Profile: "p1", Feature: "hs_1"},
	14: command.QueryFeaturesResult{IQ: resultIQ, DeviceStatus: &deviceStatus},
	15: command.GetCallHistoryRequest{
		IQ:       setIQ,
		JID:      user,
		Caller:   "3002",
		CallType: openlink.CallTypeMissed,
		FromDate: time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC),
		UpToDate: time.Date(2022, time.January, 31, 0, 0, 0, 0, time.UTC),
		Start:    ptr(int64(0)),
		Count:    ptr(int64(50)),
	},
	16: command.GetCallHistoryResult{
		IQ:    resultIQ,
		Total: ptr(int64(10)),
		Start: ptr(int64(0)),
		Count: ptr(int64(1)),
		Calls: []openlink.HistoricalCall{history},
	},
	17: command.MakeCallRequest{
		IQ:                   setIQ,
		JID:                  user,
		Interest:             "i1",
		Destination:          "3002",
		OriginatorReferences: openlink.OriginatorReferences{{Key: "platform", Value: "web"}},
		Features:             []command.MakeCallFeature{{ID: "hs_1", Value1: "true"}},
	},
	18: command.MakeCallResult{IQ: resultIQ, CallStatus: &status},
	19: command.RequestActionRequest{IQ: setIQ, Interest: "i1", Action: openlink.HoldCall, Call: "c1"},
	20: command.RequestActionRequest{IQ: setIQ, Interest: "i1", Action: openlink.StartVoiceDrop, Call: "c1", Value1: "msg1", Value2: "3001"},
	21: command.RequestActionResult{IQ: resultIQ, CallStatus: &status},
	22: command.ManageVoiceMessageRequest{IQ: setIQ, Profile: "p1", Action: openlink.Playback, Features: []openlink.FeatureID{"MK1", "MK2"}},
	23: command.ManageVoiceMessageRequest{IQ: setIQ, Profile: "p1", Action: openlink.Record, Label: "greeting"},
	24: command.ManageVoiceMessageResult{IQ: resultIQ, DeviceStatus: &deviceStatus},
}

func TestRoundTrip(t *testing.T) {
	for i, tc := range roundTripTestCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if err := tc.Validate(); err != nil {
				t.Fatalf("test value is invalid: %v", err)
			}
			out := xmpptest.Marshal(t, tc)
			s, err := command.Unmarshal(xml.NewDecoder(strings.NewReader(out)))
			if err != nil {
				t.Fatalf("error unmarshaling %s: %v", out, err)
			}
			if errs := s.Errors(); len(errs) != 0 {
				t.Fatalf("unexpected parse errors in %s: %q", out, errs)
			}
			if !reflect.DeepEqual(s, tc) {
				t.Errorf("round trip changed the value:\nwant=%+v,\n got=%+v", tc, s)
			}
		})
	}
}

func TestUnmarshalTokenReader(t *testing.T) {
	for i, tc := range roundTripTestCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			s, err := command.Unmarshal(tc.TokenReader())
			if err != nil {
				t.Fatalf("error unmarshaling: %v", err)
			}
			if errs := s.Errors(); len(errs) != 0 {
				t.Fatalf("unexpected parse errors: %q", errs)
			}
			if !reflect.DeepEqual(s, tc) {
				t.Errorf("round trip changed the value:\nwant=%+v,\n got=%+v", tc, s)
			}
		})
	}
}

const (
	commandsNS  = `http://jabber.org/protocol/commands`
	openlinkNS  = `http://xmpp.org/protocol/openlink:01:00:00`
	requestHead = `<iodata xmlns="urn:xmpp:tmp:io-data" type="input"><in>`
	requestTail = `</in></iodata></command>`
	resultHead  = `<iodata xmlns="urn:xmpp:tmp:io-data" type="output"><out>`
	resultTail  = `</out></iodata></command>`
)

func requestXML(name, in string) string {
	return `<command xmlns="` + commandsNS + `" node="` + openlinkNS + `#` + name + `" action="execute">` + requestHead + in + requestTail
}

func resultXML(name, out string) string {
	return `<command xmlns="` + commandsNS + `" node="` + openlinkNS + `#` + name + `" status="completed">` + resultHead + out + resultTail
}

var payloadTestCases = [...]struct {
	s       command.Stanza
	payload string
}{
	0: {
		s:       roundTripTestCases[0],
		payload: requestXML("get-profiles", `<jid>user@example.net</jid>`),
	},
	1: {
		s:       roundTripTestCases[1],
		payload: resultXML("get-profiles", `<profiles xmlns="`+openlinkNS+`/profiles"></profiles>`),
	},
	2: {
		s:       roundTripTestCases[4],
		payload: resultXML("get-profile", `<profile xmlns="`+openlinkNS+`/profiles" id="p1" online="true"></profile>`),
	},
	3: {
		s:       roundTripTestCases[6],
		payload: resultXML("get-interests", `<interests xmlns="`+openlinkNS+`/interests"><interest id="i1" type="DirectoryNumber" label="3001"></interest></interests>`),
	},
	4: {
		s: roundTripTestCases[10],
		payload: resultXML("get-features", `<profile id="p1"></profile><features xmlns="`+openlinkNS+`/features">`+
			`<feature id="hs_1" type="Handset" label="Handset">false</feature></features>`),
	},
	5: {
		s:       roundTripTestCases[11],
		payload: requestXML("set-features", `<profile>p1</profile><feature>hs_1</feature><value1>true</value1><value3>x</value3>`),
	},
	6: {
		s:       roundTripTestCases[12],
		payload: resultXML("set-features", ``),
	},
	7: {
		s: roundTripTestCases[15],
		payload: requestXML("get-call-history", `<jid>user@example.net</jid><caller>3002</caller><calltype>missed</calltype>`+
			`<fromdate>01/01/2022</fromdate><uptodate>01/31/2022</uptodate><start>0</start><count>50</count>`),
	},
	8: {
		s: roundTripTestCases[16],
		payload: resultXML("get-call-history", `<callhistory xmlns="`+openlinkNS+`/call-history" total="10" start="0" count="1">`+
			`<call><id>h1</id><userid>user</userid><interest>i1</interest><state>ConnectionCleared</state><direction>Incoming</direction>`+
			`<callernumber>3002</callernumber><callername>Bob</callername><callednumber>3001</callednumber><calledname>User</calledname>`+
			`<timestamp>2022-03-04T05:06:07.000Z</timestamp><duration>60000</duration><tsc>tsc.example.net</tsc></call></callhistory>`),
	},
	9: {
		s: roundTripTestCases[17],
		payload: requestXML("make-call", `<jid>user@example.net</jid><interest>i1</interest><destination>3002</destination>`+
			`<originator-ref><property id="platform"><value>web</value></property></originator-ref>`+
			`<features><feature><id>hs_1</id><value1>true</value1></feature></features>`),
	},
	10: {
		s:       roundTripTestCases[20],
		payload: requestXML("request-action", `<interest>i1</interest><action>StartVoiceDrop</action><call>c1</call><value1>msg1</value1><value2>3001</value2>`),
	},
	11: {
		s: roundTripTestCases[21],
		payload: resultXML("request-action", `<callstatus xmlns="`+openlinkNS+`#call-status" busy="true"><call><id>c1</id><profile>p1</profile>`+
			`<interest>i1</interest><state>CallEstablished</state><direction>Outgoing</direction>`+
			`<starttime>2022-03-04T05:06:07.000Z</starttime><timestamp>Fri Mar  4 05:06:07 UTC 2022</timestamp><duration>5000</duration>`+
			`<actions><ClearCall></ClearCall></actions></call></callstatus>`),
	},
	12: {
		s: roundTripTestCases[22],
		payload: requestXML("manage-voice-message", `<profile>p1</profile><action>Playback</action>`+
			`<features><feature><id>MK1</id></feature><feature><id>MK2</id></feature></features>`),
	},
	13: {
		s: roundTripTestCases[24],
		payload: resultXML("manage-voice-message", `<devicestatus xmlns="`+openlinkNS+`#device-status"><profile>p1</profile>`+
			`<features><feature id="hs_1" type="Handset" label="Handset">false</feature></features></devicestatus>`),
	},
}

func TestPayload(t *testing.T) {
	for i, tc := range payloadTestCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			out := xmpptest.Marshal(t, tc.s)
			if !strings.HasPrefix(out, "<iq") || !strings.HasSuffix(out, tc.payload+"</iq>") {
				t.Errorf("wrong payload:\nwant=%s,\n got=%s", tc.payload, out)
			}
			if !strings.Contains(out, `id="123"`) {
				t.Errorf("expected id to be set: %s", out)
			}
		})
	}
}

func TestGetProfilesScenario(t *testing.T) {
	domainUser := jid.MustParse("user@domain")
	req := command.NewGetProfilesRequest(tsc, domainUser)
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := xmpptest.Marshal(t, req)
	if !strings.Contains(out, `type="set"`) {
		t.Errorf("expected set iq: %s", out)
	}
	if !strings.Contains(out, `<in><jid>user@domain</jid></in>`) {
		t.Errorf("expected jid input: %s", out)
	}
	s, err := command.Unmarshal(xml.NewDecoder(strings.NewReader(out)))
	if err != nil {
		t.Fatalf("error unmarshaling: %v", err)
	}
	decoded, ok := s.(command.GetProfilesRequest)
	if !ok {
		t.Fatalf("wrong type: %T", s)
	}
	if !decoded.JID.Equal(domainUser) {
		t.Errorf("wrong jid: want=%v, got=%v", domainUser, decoded.JID)
	}
	if len(decoded.ParseErrors) != 0 {
		t.Errorf("unexpected parse errors: %q", decoded.ParseErrors)
	}
}

const badHistory = `<iq type="result" id="1" from="tsc.example.net" to="user@example.net">` +
	`<command xmlns="http://jabber.org/protocol/commands" node="http://xmpp.org/protocol/openlink:01:00:00#get-call-history" status="completed">` +
	`<iodata xmlns="urn:xmpp:tmp:io-data" type="output"><out>` +
	`<callhistory xmlns="http://xmpp.org/protocol/openlink:01:00:00/call-history" total="2" start="0" count="2">` +
	`<call><state>not-a-state</state><direction>not-a-direction</direction><timestamp>not-a-timestamp</timestamp><duration>not-a-duration</duration></call>` +
	`</callhistory></out></iodata></command></iq>`

func TestCallHistoryScenario(t *testing.T) {
	r := command.DecodeGetCallHistoryResult(xmpptest.Parse(t, badHistory))
	for _, want := range []string{
		"invalid state 'not-a-state'",
		"invalid direction 'not-a-direction'",
		"invalid timestamp 'not-a-timestamp'; format should be compliant with XEP-0082",
		"invalid duration 'not-a-duration'; please supply an integer",
		"Invalid call history; incorrect batch record count",
	} {
		found := false
		for _, err := range r.ParseErrors {
			if err == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected parse error %q in %q", want, r.ParseErrors)
		}
	}
	if len(r.Calls) != 1 {
		t.Fatalf("wrong number of calls: want=1, got=%d", len(r.Calls))
	}
	if c := r.Calls[0]; !reflect.DeepEqual(c, openlink.HistoricalCall{}) {
		t.Errorf("expected every field to be absent, got %+v", c)
	}
	if r.Count == nil || *r.Count != 2 {
		t.Errorf("wrong count: %v", r.Count)
	}
}

func TestRequestActionScenario(t *testing.T) {
	req := command.NewRequestActionRequest(tsc, "i1", "c1", openlink.StartVoiceDrop, "msg1")
	const want = "value2 is required for action StartVoiceDrop"
	err := req.Validate()
	if err == nil || err.Error() != want {
		t.Errorf("wrong error: want=%q, got=%v", want, err)
	}
	if p := req.Problems(); !reflect.DeepEqual(p, []string{want}) {
		t.Errorf("wrong problems: %q", p)
	}
}

var validateTestCases = [...]struct {
	s        command.Stanza
	err      string
	problems []string
}{
	0: {
		s:   command.GetProfilesRequest{},
		err: "The stanza 'to' has not been set",
		problems: []string{
			"Invalid stanza; missing 'to' field is mandatory",
			"Invalid stanza; missing 'id' field is mandatory",
			"Invalid stanza; type must be 'set'",
			"Invalid get-profiles request; missing jid field is mandatory",
		},
	},
	1: {
		s:        command.GetProfilesResult{IQ: setIQ},
		err:      "The stanza type must be 'result'",
		problems: []string{"Invalid stanza; type must be 'result'"},
	},
	2: {
		s:        command.GetProfilesResult{IQ: resultIQ, Profiles: []openlink.Profile{{ID: "p1"}, {ID: "p1"}}},
		err:      "Each profile id must be unique - 'p1' appears more than once",
		problems: []string{"Each profile id must be unique - 'p1' appears more than once"},
	},
	3: {
		s:   command.GetProfileResult{IQ: resultIQ},
		err: "The get-profile result profile has not been set",
		problems: []string{
			"Invalid get-profile result; missing profile field is mandatory",
		},
	},
	4: {
		s:   command.GetInterestsResult{IQ: resultIQ, Interests: []openlink.Interest{{ID: "i1"}, interest}},
		err: "The interest type has not been set",
		problems: []string{
			"Invalid interest; missing type field is mandatory",
			"Invalid interest; missing label field is mandatory",
			"Each interest id must be unique - 'i1' appears more than once",
		},
	},
	5: {
		s:   command.SetFeaturesRequest{IQ: setIQ, Profile: "p1"},
		err: "The set-features request feature has not been set",
		problems: []string{
			"Invalid set-features request; missing feature field is mandatory",
			"Invalid set-features request; missing value1 field is mandatory",
		},
	},
	6: {
		s: command.GetCallHistoryRequest{
			IQ:       setIQ,
			JID:      user,
			FromDate: time.Date(2022, time.February, 1, 0, 0, 0, 0, time.UTC),
			UpToDate: time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		err:      "The get-call-history request up-to date must not be before the from date",
		problems: []string{"Invalid get-call-history request; up-to date is before from date"},
	},
	7: {
		s:        command.GetCallHistoryResult{IQ: resultIQ, Count: ptr(int64(1))},
		err:      "Invalid call history; incorrect batch record count",
		problems: []string{"Invalid call history; incorrect batch record count"},
	},
	8: {
		s: command.MakeCallRequest{
			IQ:       setIQ,
			JID:      user,
			Features: []command.MakeCallFeature{{ID: "f"}, {ID: "f"}},
		},
		err:      "Each feature id must be unique - 'f' appears more than once",
		problems: []string{"Each feature id must be unique - 'f' appears more than once"},
	},
	9: {
		s:   command.MakeCallResult{IQ: resultIQ, CallStatus: &openlink.CallStatus{}},
		err: "The callstatus has no calls",
		problems: []string{
			"Invalid callstatus; missing or invalid calls",
		},
	},
	10: {
		s:   command.RequestActionRequest{IQ: setIQ, Interest: "i1", Call: "c1", Action: openlink.HoldCall, Value1: "x", Value2: "y"},
		err: "value1 is not allowed for action HoldCall",
		problems: []string{
			"value1 is not allowed for action HoldCall",
			"value2 is not allowed for action HoldCall",
		},
	},
	11: {
		s:   command.RequestActionRequest{IQ: setIQ, Interest: "i1", Call: "c1", Action: openlink.SendDigits, Value2: "y"},
		err: "value1 is required for action SendDigits",
		problems: []string{
			"value1 is required for action SendDigits",
			"value2 is not allowed for action SendDigits",
		},
	},
	12: {
		s:        command.ManageVoiceMessageRequest{IQ: setIQ, Profile: "p1", Action: openlink.Record},
		err:      "A label is required for action Record",
		problems: []string{"A label is required for action Record"},
	},
	13: {
		s:   command.ManageVoiceMessageRequest{IQ: setIQ, Profile: "p1", Action: openlink.Edit, Features: []openlink.FeatureID{"a", "b"}},
		err: "A label is required for action Edit",
		problems: []string{
			"A label is required for action Edit",
			"Only one feature is allowed for action Edit",
		},
	},
	14: {
		s:        command.ManageVoiceMessageRequest{IQ: setIQ, Profile: "p1", Action: openlink.Delete},
		err:      "At least one feature is required for action Delete",
		problems: []string{"At least one feature is required for action Delete"},
	},
	15: {
		s:        command.QueryFeaturesResult{IQ: resultIQ},
		err:      "The query-features result device status has not been set",
		problems: []string{"Invalid query-features result; missing device status field is mandatory"},
	},
}

func TestValidate(t *testing.T) {
	for i, tc := range validateTestCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			err := tc.s.Validate()
			if err == nil || err.Error() != tc.err {
				t.Errorf("wrong error: want=%q, got=%v", tc.err, err)
			}
			var verr *openlink.ValidationError
			if err != nil && !errors.As(err, &verr) {
				t.Errorf("wrong error type: %T", err)
			}
			if p := tc.s.Problems(); !reflect.DeepEqual(p, tc.problems) {
				t.Errorf("wrong problems:\nwant=%q,\n got=%q", tc.problems, p)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	req := command.NewGetInterestsRequest(tsc, "p1")
	if req.ID == "" || req.Type != stanza.SetIQ || !req.To.Equal(tsc) {
		t.Errorf("wrong envelope: %+v", req.IQ)
	}
	req.From = user
	res := command.NewGetInterestsResult(req, []openlink.Interest{interest})
	if res.ID != req.ID || res.Type != stanza.ResultIQ || !res.To.Equal(user) || !res.From.Equal(tsc) {
		t.Errorf("wrong result envelope: %+v", res.IQ)
	}
	if err := res.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if other := command.NewGetInterestsRequest(tsc, "p1"); other.ID == req.ID {
		t.Errorf("expected random ids to differ")
	}
	action := command.NewRequestActionRequest(tsc, "i1", "c1", openlink.StartVoiceDrop, "a", "b", "c")
	if action.Value1 != "a" || action.Value2 != "b" {
		t.Errorf("wrong values: %q %q", action.Value1, action.Value2)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	for i, tc := range []struct {
		in  string
		err error
	}{
		0: {in: `<message/>`, err: command.ErrNotIQ},
		1: {in: `<iq type="set"><command xmlns="http://jabber.org/protocol/commands" node="urn:other#get-profiles"/></iq>`, err: command.ErrUnknownNode},
		2: {in: `<iq type="set"><command xmlns="http://jabber.org/protocol/commands" node="http://xmpp.org/protocol/openlink:01:00:00#reboot"/></iq>`, err: command.ErrUnknownNode},
		3: {in: `<iq type="set"></iq>`, err: command.ErrUnknownNode},
	} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			_, err := command.Unmarshal(xml.NewDecoder(strings.NewReader(tc.in)))
			if !errors.Is(err, tc.err) {
				t.Errorf("wrong error: want=%v, got=%v", tc.err, err)
			}
		})
	}
	if _, err := command.Unmarshal(xml.NewDecoder(strings.NewReader(`<iq`))); err == nil {
		t.Errorf("expected syntax error")
	}
}

func TestMissingIOData(t *testing.T) {
	const in = `<iq type="set" id="1" to="tsc.example.net"><command xmlns="http://jabber.org/protocol/commands" node="http://xmpp.org/protocol/openlink:01:00:00#get-profile"/></iq>`
	s, err := command.Unmarshal(xml.NewDecoder(strings.NewReader(in)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"Invalid stanza; missing or invalid 'in' element",
		"Invalid get-profile request; missing profile field is mandatory",
	}
	if errs := s.Errors(); !reflect.DeepEqual(errs, want) {
		t.Errorf("wrong errors:\nwant=%q,\n got=%q", want, errs)
	}
}
