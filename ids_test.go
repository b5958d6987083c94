// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package openlink_test

import (
	"strconv"
	"testing"

	"mellium.im/openlink"
)

func ptr[T any](v T) *T { return &v }

var fromStringTestCases = [...]struct {
	in string
	ok bool
}{
	0: {},
	1: {in: "c1", ok: true},
	2: {in: " ", ok: true},
}

func TestFromString(t *testing.T) {
	for i, tc := range fromStringTestCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			id, ok := openlink.NewCallID(tc.in)
			if ok != tc.ok {
				t.Fatalf("wrong ok value: want=%t, got=%t", tc.ok, ok)
			}
			if string(id) != tc.in {
				t.Errorf("wrong id: want=%q, got=%q", tc.in, id)
			}
		})
	}
}

func TestInterestNode(t *testing.T) {
	const id = "sip:3001@example.net"
	node := openlink.InterestID(id).PubSubNodeID()
	if node != openlink.PubSubNodeID(id) {
		t.Errorf("wrong node: want=%q, got=%q", id, node)
	}
	if interest := node.InterestID(); interest != openlink.InterestID(id) {
		t.Errorf("wrong interest: want=%q, got=%q", id, interest)
	}
}
