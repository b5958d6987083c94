// Copyright 2016 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package attr

import (
	"testing"

	"github.com/google/uuid"
)

func TestPublicRandomIDLength(t *testing.T) {
	if s := RandomID(); len(s) != IDLen {
		t.Errorf("Expected length %d got %d", IDLen, len(s))
	}
}

func TestRandomIDLength(t *testing.T) {
	zero := func() uuid.UUID { return uuid.UUID{} }
	for i := 0; i <= 32; i++ {
		if s := randomID(i, zero); len(s) != i {
			t.Errorf("Expected length %d got %d", i, len(s))
		}
	}
	if s := randomID(40, zero); len(s) != 32 {
		t.Errorf("Expected oversized IDs to be truncated to 32, got %d", len(s))
	}
}

func TestRandomIDUnique(t *testing.T) {
	if a, b := RandomID(), RandomID(); a == b {
		t.Errorf("Expected distinct IDs, got %q twice", a)
	}
}
