// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package decode converts the text of Openlink elements and attributes into
// typed values, recording a parse error instead of failing.
package decode // import "mellium.im/openlink/internal/decode"

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"mellium.im/xmpp/jid"
)

// Layouts used on the wire.
const (
	// DateTime is the XEP-0082 profile with millisecond precision.
	DateTime = "2006-01-02T15:04:05.000Z07:00"

	// Legacy is the format of the deprecated timestamp fields.
	Legacy = time.UnixDate

	// Date is the format of call history date filters (MM/dd/yyyy).
	Date = "01/02/2006"
)

// Errors collects parse errors.
// The zero value is ready to use.
type Errors struct {
	list []string
}

// Add appends a formatted parse error.
func (e *Errors) Add(format string, v ...interface{}) {
	e.list = append(e.list, fmt.Sprintf(format, v...))
}

// Append adds already formatted errors.
func (e *Errors) Append(errs ...string) {
	e.list = append(e.list, errs...)
}

// List returns the collected errors or nil if there are none.
func (e *Errors) List() []string {
	return e.list
}

// Int parses raw as a base 10 integer.
// An empty string is absent and is not an error.
func (e *Errors) Int(field, raw string) *int64 {
	if raw == "" {
		return nil
	}
	i, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		e.Add("invalid %s '%s'; please supply an integer", field, raw)
		return nil
	}
	return &i
}

// Bool parses "true" or "false" in any case.
func (e *Errors) Bool(field, raw string) *bool {
	var b bool
	switch strings.ToLower(raw) {
	case "":
		return nil
	case "true":
		b = true
	case "false":
	default:
		e.Add("invalid %s '%s'; please supply 'true' or 'false'", field, raw)
		return nil
	}
	return &b
}

// Millis parses an integer count of milliseconds.
func (e *Errors) Millis(field, raw string) *time.Duration {
	i := e.Int(field, raw)
	if i == nil {
		return nil
	}
	d := time.Duration(*i) * time.Millisecond
	return &d
}

// Time parses an XEP-0082 date and time.
// The result is in UTC.
func (e *Errors) Time(field, raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		e.Add("invalid %s '%s'; format should be compliant with XEP-0082", field, raw)
		return time.Time{}
	}
	return t.UTC()
}

// LegacyTime parses a deprecated timestamp.
// The result is in UTC.
func (e *Errors) LegacyTime(field, raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(Legacy, raw)
	if err != nil {
		e.Add("invalid %s '%s'; format should be '%s'", field, raw, Legacy)
		return time.Time{}
	}
	return t.UTC()
}

// Date parses a MM/dd/yyyy date.
func (e *Errors) Date(field, raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(Date, raw)
	if err != nil {
		e.Add("invalid %s '%s'; date format is 'MM/dd/yyyy'", field, raw)
		return time.Time{}
	}
	return t
}

// JID parses an XMPP address.
func (e *Errors) JID(field, raw string) jid.JID {
	if raw == "" {
		return jid.JID{}
	}
	j, err := jid.Parse(raw)
	if err != nil {
		e.Add("invalid %s '%s'; %v", field, raw, err)
		return jid.JID{}
	}
	return j
}

// StartTime reconciles a start time with the deprecated timestamp carrying
// the same instant at second precision.
// The start time wins when both are present; a mismatch is recorded against
// entity.
func (e *Errors) StartTime(entity string, start, timestamp time.Time) time.Time {
	switch {
	case start.IsZero():
		return timestamp
	case timestamp.IsZero():
		return start
	}
	if !start.Truncate(time.Second).Equal(timestamp) {
		e.Add("Invalid %s; the deprecated timestamp '%s' does not match the start time '%s'",
			entity, FormatLegacy(timestamp), FormatTime(start))
	}
	return start
}

// FormatTime formats t using the XEP-0082 profile in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(DateTime)
}

// FormatLegacy formats t as a deprecated timestamp in UTC.
func FormatLegacy(t time.Time) string {
	return t.UTC().Format(Legacy)
}

// FormatDate formats t as MM/dd/yyyy.
func FormatDate(t time.Time) string {
	return t.Format(Date)
}

// FormatMillis formats d as an integer count of milliseconds.
func FormatMillis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}

// FormatInt formats i in base 10.
func FormatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// FormatBool formats b as "true" or "false".
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}

// Enum parses a label with parse.
// Unknown labels are absent and recorded as a parse error.
func Enum[T ~string](e *Errors, field, raw string, parse func(string) (T, bool)) T {
	var zero T
	if raw == "" {
		return zero
	}
	v, ok := parse(raw)
	if !ok {
		e.Add("invalid %s '%s'", field, raw)
		return zero
	}
	return v
}
