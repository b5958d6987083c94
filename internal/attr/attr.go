// Copyright 2017 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package attr contains unexported functions for working with XML attributes.
package attr // import "mellium.im/openlink/internal/attr"

import (
	"encoding/xml"
)

// Get returns the index and value of the first attribute with the provided
// local name from a list of attributes, or -1 and an empty string if no such
// attribute exists.
// Namespace prefix declarations are not attributes and are skipped.
func Get(attr []xml.Attr, local string) (int, string) {
	for i, a := range attr {
		if a.Name.Local == local && a.Name.Space != "xmlns" {
			return i, a.Value
		}
	}
	return -1, ""
}

// Append adds an attribute with the provided local name and value to attr if
// the value is not empty.
func Append(attr []xml.Attr, local, value string) []xml.Attr {
	if value == "" {
		return attr
	}
	return append(attr, xml.Attr{Name: xml.Name{Local: local}, Value: value})
}
