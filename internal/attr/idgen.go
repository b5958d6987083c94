// Copyright 2016 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package attr

import (
	"strings"

	"github.com/google/uuid"
)

// IDLen is the standard length of stanza identifiers in bytes.
const IDLen = 16

// RandomID generates a new random identifier of length IDLen.
// If the OS's entropy pool isn't initialized, or we can't generate random
// numbers for some other reason, panic.
func RandomID() string {
	return RandomLen(IDLen)
}

// RandomLen is like RandomID but the length is configurable.
// Lengths above 32 are truncated to 32.
func RandomLen(n int) string {
	return randomID(n, uuid.New)
}

func randomID(n int, gen func() uuid.UUID) string {
	id := strings.ReplaceAll(gen().String(), "-", "")
	if n > len(id) {
		n = len(id)
	}
	return id[:n]
}
