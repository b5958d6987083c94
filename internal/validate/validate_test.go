// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package validate_test

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"mellium.im/openlink/internal/validate"
)

func run(c *validate.Checker) {
	c.Require(true, "strict 0", "lenient 0")
	c.Require(false, "strict 1", "lenient 1")
	c.Check(false, "both 2")
}

func TestStrict(t *testing.T) {
	c := validate.Strict()
	run(c)
	err := c.Err()
	var vErr *validate.Error
	if !errors.As(err, &vErr) {
		t.Fatalf("wrong error type: %T", err)
	}
	if vErr.Msg != "strict 1" {
		t.Errorf("wrong error: want=%q, got=%q", "strict 1", vErr.Msg)
	}
	if p := c.Problems(); p != nil {
		t.Errorf("strict checker should not record problems, got %v", p)
	}
}

func TestLenient(t *testing.T) {
	c := validate.Lenient()
	run(c)
	if err := c.Err(); err != nil {
		t.Errorf("lenient checker returned error: %v", err)
	}
	want := []string{"lenient 1", "both 2"}
	if p := c.Problems(); !reflect.DeepEqual(p, want) {
		t.Errorf("wrong problems: want=%v, got=%v", want, p)
	}
}

func TestNoProblems(t *testing.T) {
	var c validate.Checker
	c.Require(true, "a", "b")
	if c.Err() != nil || c.Problems() != nil {
		t.Errorf("unexpected result: %v, %v", c.Err(), c.Problems())
	}
}

var duplicateTests = [...]struct {
	ids []string
	dup string
	ok  bool
}{
	0: {},
	1: {ids: []string{"a", "b", "c"}},
	2: {ids: []string{"a", "b", "a"}, dup: "a", ok: true},
	3: {ids: []string{"a", "b", "b", "a"}, dup: "b", ok: true},
	4: {ids: []string{"", "b", ""}},
}

func TestFirstDuplicate(t *testing.T) {
	for i, tc := range duplicateTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			dup, ok := validate.FirstDuplicate(tc.ids)
			if dup != tc.dup || ok != tc.ok {
				t.Errorf("want=(%q, %t), got=(%q, %t)", tc.dup, tc.ok, dup, ok)
			}
		})
	}
}

func TestField(t *testing.T) {
	strict := validate.Strict()
	strict.Field(false, "call", "id")
	if err := strict.Err(); err == nil || err.Error() != "The call id has not been set" {
		t.Errorf("wrong strict error: %v", err)
	}
	lenient := validate.Lenient()
	lenient.Field(false, "call", "id")
	want := []string{"Invalid call; missing id field is mandatory"}
	if p := lenient.Problems(); !reflect.DeepEqual(p, want) {
		t.Errorf("wrong problems: want=%v, got=%v", want, p)
	}
}

func TestUnique(t *testing.T) {
	c := validate.Lenient()
	validate.Unique(c, []string{"a", "b", "a", "b"}, "profile")
	want := []string{"Each profile id must be unique - 'a' appears more than once"}
	if p := c.Problems(); !reflect.DeepEqual(p, want) {
		t.Errorf("wrong problems: want=%v, got=%v", want, p)
	}
}

type nested struct {
	problems []string
}

func (n nested) Validate() error {
	if len(n.problems) == 0 {
		return nil
	}
	return errors.New("strict " + n.problems[0])
}

func (n nested) Problems() []string { return n.problems }

func TestNested(t *testing.T) {
	check := func(c *validate.Checker) {
		c.Nested(nested{problems: []string{"a", "b"}})
		c.Check(false, "c")
	}
	if err := validate.First(check); err == nil || err.Error() != "strict a" {
		t.Errorf("wrong strict error: %v", err)
	}
	want := []string{"a", "b", "c"}
	if p := validate.All(check); !reflect.DeepEqual(p, want) {
		t.Errorf("wrong problems: want=%q, got=%q", want, p)
	}
	if p := validate.All(func(c *validate.Checker) { c.Nested(nested{}) }); p != nil {
		t.Errorf("expected no problems, got %q", p)
	}
}
