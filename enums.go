// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package openlink

import (
	"golang.org/x/text/cases"
)

// parseLabel matches s against labels ignoring case.
func parseLabel[T ~string](labels []T, s string) (T, bool) {
	var zero T
	if s == "" {
		return zero, false
	}
	fold := cases.Fold()
	want := fold.String(s)
	for _, l := range labels {
		if fold.String(string(l)) == want {
			return l, true
		}
	}
	return zero, false
}

// CallDirection is the direction of a call relative to the profile's device.
type CallDirection string

// A list of call directions.
const (
	Incoming CallDirection = "Incoming"
	Outgoing CallDirection = "Outgoing"
)

var callDirections = []CallDirection{Incoming, Outgoing}

// ParseCallDirection matches a call direction label ignoring case.
func ParseCallDirection(s string) (CallDirection, bool) { return parseLabel(callDirections, s) }

func (d CallDirection) String() string { return string(d) }

// CallType filters call history.
type CallType string

// A list of call history filters.
const (
	CallTypeIn     CallType = "in"
	CallTypeOut    CallType = "out"
	CallTypeMissed CallType = "missed"
)

var callTypes = []CallType{CallTypeIn, CallTypeOut, CallTypeMissed}

// ParseCallType matches a call type label ignoring case.
func ParseCallType(s string) (CallType, bool) { return parseLabel(callTypes, s) }

func (t CallType) String() string { return string(t) }

// Changed indicates which part of a call triggered a call status event.
type Changed string

// A list of call changes.
const (
	ChangedState        Changed = "State"
	ChangedCallerCalled Changed = "CallerCalled"
	ChangedActions      Changed = "Actions"
	ChangedParticipants Changed = "Participants"
	ChangedFeatures     Changed = "Features"
)

var changes = []Changed{ChangedState, ChangedCallerCalled, ChangedActions, ChangedParticipants, ChangedFeatures}

// ParseChanged matches a change label ignoring case.
func ParseChanged(s string) (Changed, bool) { return parseLabel(changes, s) }

func (c Changed) String() string { return string(c) }

// ParticipantType is the role of a participant in a call.
type ParticipantType string

// A list of participant types.
const (
	Active   ParticipantType = "Active"
	Inactive ParticipantType = "Inactive"
)

var participantTypes = []ParticipantType{Active, Inactive}

// ParseParticipantType matches a participant type label ignoring case.
func ParseParticipantType(s string) (ParticipantType, bool) { return parseLabel(participantTypes, s) }

func (t ParticipantType) String() string { return string(t) }

// SubscriptionState is the state of a pubsub subscription.
type SubscriptionState string

// A list of subscription states.
const (
	SubscriptionNone         SubscriptionState = "none"
	SubscriptionPending      SubscriptionState = "pending"
	SubscriptionSubscribed   SubscriptionState = "subscribed"
	SubscriptionUnconfigured SubscriptionState = "unconfigured"
)

var subscriptionStates = []SubscriptionState{
	SubscriptionNone, SubscriptionPending, SubscriptionSubscribed, SubscriptionUnconfigured,
}

// ParseSubscriptionState matches a subscription state label ignoring case.
func ParseSubscriptionState(s string) (SubscriptionState, bool) {
	return parseLabel(subscriptionStates, s)
}

func (s SubscriptionState) String() string { return string(s) }

// SiteType is the kind of telephony system behind a site.
type SiteType string

// A list of site types.
const (
	SiteBTSM  SiteType = "BTSM"
	SiteCisco SiteType = "CISCO"
	SiteITS   SiteType = "ITS"
	SiteIPT   SiteType = "IPT"
)

var siteTypes = []SiteType{SiteBTSM, SiteCisco, SiteITS, SiteIPT}

// ParseSiteType matches a site type label ignoring case.
func ParseSiteType(s string) (SiteType, bool) { return parseLabel(siteTypes, s) }

func (t SiteType) String() string { return string(t) }

// FeatureType is the kind of a feature.
type FeatureType string

// A list of feature types.
const (
	FeatureHandset              FeatureType = "Handset"
	FeaturePrivacy              FeatureType = "Privacy"
	FeatureDoNotDisturb         FeatureType = "DoNotDisturb"
	FeatureCallBack             FeatureType = "CallBack"
	FeatureCallForward          FeatureType = "CallForward"
	FeatureConference           FeatureType = "Conference"
	FeatureDirectDial           FeatureType = "DirectDial"
	FeatureMessageWaiting       FeatureType = "MessageWaiting"
	FeatureSpeakerChannel       FeatureType = "SpeakerChannel"
	FeatureDeviceKeys           FeatureType = "DeviceKeys"
	FeatureVoiceMessage         FeatureType = "VoiceMessage"
	FeatureVoiceMessagePlaylist FeatureType = "VoiceMessagePlaylist"
	FeatureVoiceRecorder        FeatureType = "VoiceRecorder"
	FeatureVoiceDrop            FeatureType = "VoiceDrop"
)

var featureTypes = []FeatureType{
	FeatureHandset, FeaturePrivacy, FeatureDoNotDisturb, FeatureCallBack,
	FeatureCallForward, FeatureConference, FeatureDirectDial,
	FeatureMessageWaiting, FeatureSpeakerChannel, FeatureDeviceKeys,
	FeatureVoiceMessage, FeatureVoiceMessagePlaylist, FeatureVoiceRecorder,
	FeatureVoiceDrop,
}

// ParseFeatureType matches a feature type label ignoring case.
func ParseFeatureType(s string) (FeatureType, bool) { return parseLabel(featureTypes, s) }

func (t FeatureType) String() string { return string(t) }

// VoiceMessageStatus is the outcome of a voice message operation.
type VoiceMessageStatus string

// A list of voice message statuses.
const (
	VoiceMessageOK    VoiceMessageStatus = "ok"
	VoiceMessageWarn  VoiceMessageStatus = "warn"
	VoiceMessageError VoiceMessageStatus = "error"
)

var voiceMessageStatuses = []VoiceMessageStatus{VoiceMessageOK, VoiceMessageWarn, VoiceMessageError}

// ParseVoiceMessageStatus matches a voice message status label ignoring case.
func ParseVoiceMessageStatus(s string) (VoiceMessageStatus, bool) {
	return parseLabel(voiceMessageStatuses, s)
}

func (s VoiceMessageStatus) String() string { return string(s) }
