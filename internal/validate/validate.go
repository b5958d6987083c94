// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package validate runs the same sequence of checks in one of two modes.
//
// In strict mode the first failed check is kept as an error and every later
// check is ignored.
// In lenient mode every failed check is recorded as a human readable problem
// and checking continues.
package validate // import "mellium.im/openlink/internal/validate"

// Error is the error returned by a strict Checker.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}

// Checker accumulates the result of a series of checks.
// The zero value is a lenient checker.
type Checker struct {
	strict   bool
	err      *Error
	problems []string
}

// Strict returns a checker that stops at the first failed check.
func Strict() *Checker {
	return &Checker{strict: true}
}

// Lenient returns a checker that records every failed check.
func Lenient() *Checker {
	return &Checker{}
}

// Require records a failure if ok is false.
// strict is the message used in strict mode and lenient the message appended
// in lenient mode.
func (c *Checker) Require(ok bool, strict, lenient string) {
	if ok || c.Failed() {
		return
	}
	if c.strict {
		c.err = &Error{Msg: strict}
		return
	}
	c.problems = append(c.problems, lenient)
}

// Check is like Require except that the same message is used in both modes.
func (c *Checker) Check(ok bool, msg string) {
	c.Require(ok, msg, msg)
}

// Failed reports whether a strict checker has already failed.
// Lenient checkers never report failure.
func (c *Checker) Failed() bool {
	return c.err != nil
}

// Err returns the first failure of a strict checker.
func (c *Checker) Err() error {
	if c.err == nil {
		return nil
	}
	return c.err
}

// Problems returns the failures recorded by a lenient checker.
func (c *Checker) Problems() []string {
	return c.problems
}

// FirstDuplicate returns the first element of ids that matches an element
// before it. Zero values are ignored.
func FirstDuplicate[T comparable](ids []T) (T, bool) {
	var zero T
	seen := make(map[T]struct{}, len(ids))
	for _, id := range ids {
		if id == zero {
			continue
		}
		if _, ok := seen[id]; ok {
			return id, true
		}
		seen[id] = struct{}{}
	}
	return zero, false
}

// Field is a Require for a mandatory field of an entity using the standard
// wording.
func (c *Checker) Field(ok bool, entity, field string) {
	c.Require(ok,
		"The "+entity+" "+field+" has not been set",
		"Invalid "+entity+"; missing "+field+" field is mandatory",
	)
}

// Unique checks that ids contains no duplicates, naming the first duplicate
// found.
func Unique[T ~string](c *Checker, ids []T, entity string) {
	if c.Failed() {
		return
	}
	if dup, ok := FirstDuplicate(ids); ok {
		c.Check(false, "Each "+entity+" id must be unique - '"+string(dup)+"' appears more than once")
	}
}

// Value is a value that can check itself in both modes.
type Value interface {
	Validate() error
	Problems() []string
}

// Nested runs the checks of a nested value in the mode of c.
func (c *Checker) Nested(v Value) {
	if c.Failed() {
		return
	}
	if !c.strict {
		c.problems = append(c.problems, v.Problems()...)
		return
	}
	if err := v.Validate(); err != nil {
		c.err = &Error{Msg: err.Error()}
	}
}

// First runs check in strict mode and returns the first failure.
func First(check func(*Checker)) error {
	c := Strict()
	check(c)
	return c.Err()
}

// All runs check in lenient mode and returns every failure.
func All(check func(*Checker)) []string {
	c := Lenient()
	check(c)
	return c.Problems()
}
