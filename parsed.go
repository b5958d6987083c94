// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package openlink

// Parsed records the problems found when a stanza was decoded.
// It is embedded in every request, result and event and is empty for stanzas
// built by the application.
type Parsed struct {
	ParseErrors []string
}

// Errors returns ParseErrors.
func (p Parsed) Errors() []string {
	return p.ParseErrors
}
