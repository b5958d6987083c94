// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package openlink

// FromString returns s as an identifier of type T.
// An empty string has no identifier and ok is false.
func FromString[T ~string](s string) (id T, ok bool) {
	if s == "" {
		return id, false
	}
	return T(s), true
}

// Identifiers used by Openlink entities.
// The zero value of each type means the identifier is absent.
type (
	// CallID identifies a call leg.
	CallID string

	// ConferenceID identifies a conference that a call is part of.
	ConferenceID string

	// DeviceID identifies a telephony device.
	DeviceID string

	// FeatureID identifies a feature of a profile, device or call.
	FeatureID string

	// InterestID identifies an interest; it is also the name of the pubsub node
	// that carries events for the interest.
	InterestID string

	// ItemID identifies an item published to a pubsub node.
	ItemID string

	// OriginatorReferenceKey is the key of an originator reference.
	OriginatorReferenceKey string

	// PhoneNumber is a dialable number, destination or extension.
	PhoneNumber string

	// ProfileID identifies a profile.
	ProfileID string

	// PubSubNodeID identifies a pubsub node.
	PubSubNodeID string

	// RequestActionValue is an argument to a request-action command.
	RequestActionValue string

	// SiteID identifies a telephony site.
	SiteID string

	// TelephonyCallID is the identifier the telephony system uses for a call.
	TelephonyCallID string

	// UserID identifies the owner of a call record.
	UserID string
)

// Identifiers used by device keys and key pages.
type (
	KeyID         string
	KeyLabel      string
	KeyFunction   string
	KeyQualifier  string
	KeyModifier   string
	KeyColor      string
	KeyPageID     string
	KeyPageLabel  string
	KeyPageModule string
	LocalKeyPage  string
)

// Identifiers used by voice recorder features.
type (
	RecorderNumber  string
	RecorderPort    string
	RecorderChannel string
	RecorderType    string
)

// NewCallID returns s as a CallID.
func NewCallID(s string) (CallID, bool) { return FromString[CallID](s) }

// NewConferenceID returns s as a ConferenceID.
func NewConferenceID(s string) (ConferenceID, bool) { return FromString[ConferenceID](s) }

// NewDeviceID returns s as a DeviceID.
func NewDeviceID(s string) (DeviceID, bool) { return FromString[DeviceID](s) }

// NewFeatureID returns s as a FeatureID.
func NewFeatureID(s string) (FeatureID, bool) { return FromString[FeatureID](s) }

// NewInterestID returns s as an InterestID.
func NewInterestID(s string) (InterestID, bool) { return FromString[InterestID](s) }

// NewItemID returns s as an ItemID.
func NewItemID(s string) (ItemID, bool) { return FromString[ItemID](s) }

// NewOriginatorReferenceKey returns s as an OriginatorReferenceKey.
func NewOriginatorReferenceKey(s string) (OriginatorReferenceKey, bool) {
	return FromString[OriginatorReferenceKey](s)
}

// NewPhoneNumber returns s as a PhoneNumber.
func NewPhoneNumber(s string) (PhoneNumber, bool) { return FromString[PhoneNumber](s) }

// NewProfileID returns s as a ProfileID.
func NewProfileID(s string) (ProfileID, bool) { return FromString[ProfileID](s) }

// NewPubSubNodeID returns s as a PubSubNodeID.
func NewPubSubNodeID(s string) (PubSubNodeID, bool) { return FromString[PubSubNodeID](s) }

// NewRequestActionValue returns s as a RequestActionValue.
func NewRequestActionValue(s string) (RequestActionValue, bool) {
	return FromString[RequestActionValue](s)
}

// NewSiteID returns s as a SiteID.
func NewSiteID(s string) (SiteID, bool) { return FromString[SiteID](s) }

// NewTelephonyCallID returns s as a TelephonyCallID.
func NewTelephonyCallID(s string) (TelephonyCallID, bool) { return FromString[TelephonyCallID](s) }

// NewUserID returns s as a UserID.
func NewUserID(s string) (UserID, bool) { return FromString[UserID](s) }

// NewKeyID returns s as a KeyID.
func NewKeyID(s string) (KeyID, bool) { return FromString[KeyID](s) }

// NewKeyPageID returns s as a KeyPageID.
func NewKeyPageID(s string) (KeyPageID, bool) { return FromString[KeyPageID](s) }

// NewRecorderNumber returns s as a RecorderNumber.
func NewRecorderNumber(s string) (RecorderNumber, bool) { return FromString[RecorderNumber](s) }

// PubSubNodeID returns the pubsub node that carries events for the interest.
func (id InterestID) PubSubNodeID() PubSubNodeID {
	return PubSubNodeID(id)
}

// InterestID returns the interest whose events are carried by the node.
func (id PubSubNodeID) InterestID() InterestID {
	return InterestID(id)
}
