// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package pubsub implements the publish–subscribe messages that carry
// Openlink call and device events.
//
// Each interest has a pubsub node with the same identifier.
// A telephony service publishes a call status or device status item to the
// node whenever something changes and every subscriber of the node receives
// it in an Event message.
// Subscribing to and unsubscribing from a node uses the SubscribeRequest and
// UnsubscribeRequest IQs.
package pubsub // import "mellium.im/openlink/pubsub"
