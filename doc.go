// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package openlink implements the value types of the Openlink telephony
// control protocol.
//
// Openlink runs over XMPP: requests are ad-hoc commands (see the command
// package) and call and device events are published to pubsub nodes (see the
// pubsub package).
// This package contains the entities those messages carry: calls, call
// status, profiles, interests, features, key pages, voice messages and call
// history records, along with the identifier types used to refer to them.
//
// # Validation
//
// Every composite value can be checked in two ways.
// Validate returns the first violated invariant as an error and is meant for
// values built by the application before they are sent.
// Problems runs the same checks in the same order but returns every violation
// as a human readable string; it is used when decoding values received from
// the network, where a malformed payload should still produce a best effort
// value and a full list of what was wrong.
//
// # Decoding
//
// The DecodeXxx functions walk an xmltree.Element and never fail.
// Text that cannot be converted (an integer that is not a number, a malformed
// date, an unknown enum label) is left absent and reported in the returned
// list of parse errors.
package openlink // import "mellium.im/openlink"

import (
	"mellium.im/openlink/internal/validate"
)

// ValidationError is the error returned by the Validate methods.
// Its message identifies the entity and field that are invalid.
type ValidationError = validate.Error
