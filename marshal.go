// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package openlink

import (
	"encoding/xml"
	"time"

	"mellium.im/openlink/internal/attr"
	"mellium.im/openlink/internal/decode"
	"mellium.im/openlink/internal/validate"
	"mellium.im/xmlstream"
)

// checker is implemented by every composite value.
type checker interface {
	check(v *validate.Checker)
}

func strictCheck(c checker) error {
	return validate.First(c.check)
}

func lenientCheck(c checker) []string {
	return validate.All(c.check)
}

func marshal(e *xml.Encoder, r xml.TokenReader) error {
	_, err := xmlstream.Copy(e, r)
	return err
}

func boolAttr(a []xml.Attr, local string, b *bool) []xml.Attr {
	if b == nil {
		return a
	}
	return attr.Append(a, local, decode.FormatBool(*b))
}

func intAttr(a []xml.Attr, local string, i *int64) []xml.Attr {
	if i == nil {
		return a
	}
	return attr.Append(a, local, decode.FormatInt(*i))
}

func millisAttr(a []xml.Attr, local string, d *time.Duration) []xml.Attr {
	if d == nil {
		return a
	}
	return attr.Append(a, local, decode.FormatMillis(*d))
}

func timeAttr(a []xml.Attr, local string, t time.Time) []xml.Attr {
	if t.IsZero() {
		return a
	}
	return attr.Append(a, local, decode.FormatTime(t))
}

func legacyAttr(a []xml.Attr, local string, t time.Time) []xml.Attr {
	if t.IsZero() {
		return a
	}
	return attr.Append(a, local, decode.FormatLegacy(t))
}
