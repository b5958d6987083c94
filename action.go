// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package openlink

// RequestAction is an action that can be requested on a call.
type RequestAction string

// A list of request actions.
const (
	AnswerCall         RequestAction = "AnswerCall"
	ClearCall          RequestAction = "ClearCall"
	ClearConnection    RequestAction = "ClearConnection"
	ClearConference    RequestAction = "ClearConference"
	HoldCall           RequestAction = "HoldCall"
	RetrieveCall       RequestAction = "RetrieveCall"
	JoinCall           RequestAction = "JoinCall"
	PrivateCall        RequestAction = "PrivateCall"
	PublicCall         RequestAction = "PublicCall"
	TransferCall       RequestAction = "TransferCall"
	ConsultationCall   RequestAction = "ConsultationCall"
	SingleStepTransfer RequestAction = "SingleStepTransfer"
	IntercomTransfer   RequestAction = "IntercomTransfer"
	SendDigit          RequestAction = "SendDigit"
	SendDigits         RequestAction = "SendDigits"
	StartVoiceDrop     RequestAction = "StartVoiceDrop"
	StopVoiceDrop      RequestAction = "StopVoiceDrop"
	AddThirdParty      RequestAction = "AddThirdParty"
	RemoveThirdParty   RequestAction = "RemoveThirdParty"
	ConnectSpeaker     RequestAction = "ConnectSpeaker"
	DisconnectSpeaker  RequestAction = "DisconnectSpeaker"
)

type valueRule struct {
	min, max int
}

// requestActions is ordered; actions without an entry in valueRules take no
// values.
var requestActions = []RequestAction{
	AnswerCall, ClearCall, ClearConnection, ClearConference, HoldCall,
	RetrieveCall, JoinCall, PrivateCall, PublicCall, TransferCall,
	ConsultationCall, SingleStepTransfer, IntercomTransfer, SendDigit,
	SendDigits, StartVoiceDrop, StopVoiceDrop, AddThirdParty,
	RemoveThirdParty, ConnectSpeaker, DisconnectSpeaker,
}

var valueRules = map[RequestAction]valueRule{
	ConsultationCall:   {1, 1},
	SingleStepTransfer: {1, 1},
	IntercomTransfer:   {1, 1},
	SendDigit:          {1, 1},
	SendDigits:         {1, 1},
	StartVoiceDrop:     {2, 2},
	AddThirdParty:      {1, 1},
	RemoveThirdParty:   {1, 1},
}

// ParseRequestAction matches a request action label ignoring case.
func ParseRequestAction(s string) (RequestAction, bool) { return parseLabel(requestActions, s) }

func (a RequestAction) String() string { return string(a) }

// MinValues is the number of values (value1, value2) the action requires.
func (a RequestAction) MinValues() int { return valueRules[a].min }

// MaxValues is the number of values (value1, value2) the action accepts.
func (a RequestAction) MaxValues() int { return valueRules[a].max }

// ManageVoiceMessageAction is an operation on stored voice messages.
type ManageVoiceMessageAction string

// A list of voice message actions.
const (
	Playback ManageVoiceMessageAction = "Playback"
	Record   ManageVoiceMessageAction = "Record"
	Edit     ManageVoiceMessageAction = "Edit"
	Query    ManageVoiceMessageAction = "Query"
	Delete   ManageVoiceMessageAction = "Delete"
)

type voiceMessageRule struct {
	featuresRequired bool
	multipleFeatures bool
	labelRequired    bool
}

var voiceMessageActions = []ManageVoiceMessageAction{Playback, Record, Edit, Query, Delete}

var voiceMessageRules = map[ManageVoiceMessageAction]voiceMessageRule{
	Playback: {featuresRequired: true, multipleFeatures: true},
	Record:   {labelRequired: true},
	Edit:     {featuresRequired: true, labelRequired: true},
	Query:    {featuresRequired: true, multipleFeatures: true},
	Delete:   {featuresRequired: true, multipleFeatures: true},
}

// ParseManageVoiceMessageAction matches a voice message action label ignoring
// case.
func ParseManageVoiceMessageAction(s string) (ManageVoiceMessageAction, bool) {
	return parseLabel(voiceMessageActions, s)
}

func (a ManageVoiceMessageAction) String() string { return string(a) }

// FeaturesRequired reports whether at least one voice message feature must be
// named.
func (a ManageVoiceMessageAction) FeaturesRequired() bool {
	return voiceMessageRules[a].featuresRequired
}

// MultipleFeatures reports whether more than one voice message feature may be
// named.
func (a ManageVoiceMessageAction) MultipleFeatures() bool {
	return voiceMessageRules[a].multipleFeatures
}

// LabelRequired reports whether a label must be supplied.
func (a ManageVoiceMessageAction) LabelRequired() bool {
	return voiceMessageRules[a].labelRequired
}
