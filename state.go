// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package openlink

// CallState is the state of a call leg.
type CallState string

// A list of call states.
const (
	CallOriginated           CallState = "CallOriginated"
	CallDelivered            CallState = "CallDelivered"
	CallEstablished          CallState = "CallEstablished"
	CallEstablishedElsewhere CallState = "CallEstablishedElsewhere"
	CallConferenced          CallState = "CallConferenced"
	CallFailed               CallState = "CallFailed"
	CallBusy                 CallState = "CallBusy"
	CallHeld                 CallState = "CallHeld"
	CallHeldElsewhere        CallState = "CallHeldElsewhere"
	CallTransferring         CallState = "CallTransferring"
	CallTransferred          CallState = "CallTransferred"
	ConnectionCleared        CallState = "ConnectionCleared"
	CallMissed               CallState = "CallMissed"
)

// participating lists, per state, the call directions in which the profile's
// user is taking part in the call.
var participating = map[CallState][]CallDirection{
	CallOriginated:   {Outgoing},
	CallDelivered:    {Outgoing},
	CallEstablished:  {Incoming, Outgoing},
	CallConferenced:  {Incoming, Outgoing},
	CallHeld:         {Incoming, Outgoing},
	CallTransferring: {Incoming, Outgoing},
}

var callStates = []CallState{
	CallOriginated, CallDelivered, CallEstablished, CallEstablishedElsewhere,
	CallConferenced, CallFailed, CallBusy, CallHeld, CallHeldElsewhere,
	CallTransferring, CallTransferred, ConnectionCleared, CallMissed,
}

// ParseCallState matches a call state label ignoring case.
func ParseCallState(s string) (CallState, bool) { return parseLabel(callStates, s) }

func (s CallState) String() string { return string(s) }

// IsParticipating reports whether a call in state s with direction d has the
// user actively taking part.
func (s CallState) IsParticipating(d CallDirection) bool {
	for _, dir := range participating[s] {
		if dir == d {
			return true
		}
	}
	return false
}
