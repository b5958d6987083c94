// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package xmpptest provides utilities for testing Openlink payloads.
package xmpptest // import "mellium.im/openlink/internal/xmpptest"

import (
	"encoding/xml"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"mellium.im/openlink/xmltree"
	"mellium.im/xmlstream"
)

// EncodingTestCase is a test that marshals the value and checks that the result
// matches XML, then decodes XML and checks that it matches the original value
// with reflect.DeepEqual and that decoding reported no errors.
// If NoMarshal or NoDecode is set then the corresponding part of the test is
// not run (for payloads that are not roundtrippable).
type EncodingTestCase[T xmlstream.Marshaler] struct {
	Value     T
	XML       string
	NoMarshal bool
	NoDecode  bool
}

// DecodeFunc decodes an element and returns the value along with any errors.
type DecodeFunc[T any] func(*xmltree.Element) (T, []string)

// RunEncodingTests iterates over the test cases and runs each one.
func RunEncodingTests[T xmlstream.Marshaler](t *testing.T, decode DecodeFunc[T], testCases []EncodingTestCase[T]) {
	t.Helper()
	for i, tc := range testCases {
		tc := tc
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if !tc.NoMarshal {
				t.Run("marshal", func(t *testing.T) {
					if out := Marshal(t, tc.Value); out != tc.XML {
						t.Fatalf("unexpected output:\nwant=%q,\n got=%q", tc.XML, out)
					}
				})
			}
			if !tc.NoDecode {
				t.Run("decode", func(t *testing.T) {
					val, errs := decode(Parse(t, tc.XML))
					if len(errs) != 0 {
						t.Fatalf("unexpected decode errors: %q", errs)
					}
					if !reflect.DeepEqual(val, tc.Value) {
						t.Fatalf("unexpected value:\nwant=%+v,\n got=%+v", tc.Value, val)
					}
				})
			}
		})
	}
}

// ParseErrorTestCase is a test that decodes XML and checks the errors
// reported.
type ParseErrorTestCase struct {
	XML    string
	Errors []string
}

// RunParseErrorTests iterates over the test cases and runs each one.
func RunParseErrorTests[T any](t *testing.T, decode DecodeFunc[T], testCases []ParseErrorTestCase) {
	t.Helper()
	for i, tc := range testCases {
		tc := tc
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			_, errs := decode(Parse(t, tc.XML))
			if !reflect.DeepEqual(errs, tc.Errors) {
				t.Errorf("unexpected errors:\nwant=%q,\n got=%q", tc.Errors, errs)
			}
		})
	}
}

// Marshal encodes the value and returns the resulting XML.
func Marshal(t *testing.T, v xmlstream.Marshaler) string {
	t.Helper()
	var b strings.Builder
	e := xml.NewEncoder(&b)
	if _, err := xmlstream.Copy(e, v.TokenReader()); err != nil {
		t.Fatalf("error encoding: %v", err)
	}
	if err := e.Flush(); err != nil {
		t.Fatalf("error flushing: %v", err)
	}
	return b.String()
}

// Parse decodes s into a tree or fails the test.
func Parse(t *testing.T, s string) *xmltree.Element {
	t.Helper()
	el, err := xmltree.ParseString(s)
	if err != nil {
		t.Fatalf("error parsing %q: %v", s, err)
	}
	return el
}
