// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package test collects small assertion helpers shared by this module's
// test suites, in place of a third-party assertion library (none of which
// appears anywhere in the example pack this module was grounded on).
package test

import (
	"reflect"
	"testing"
)

// ExpectSuccess fails the test if err is non-nil.
func ExpectSuccess(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// ExpectFailure fails the test if err is nil.
func ExpectFailure(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error, got none")
	}
}

// ExpectEquality fails the test if got and want are not deeply equal.
func ExpectEquality(t *testing.T, got, want interface{}) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

// ExpectInequality fails the test if got and want are deeply equal.
func ExpectInequality(t *testing.T, got, notWant interface{}) {
	t.Helper()
	if reflect.DeepEqual(got, notWant) {
		t.Fatalf("got %#v, wanted anything else", got)
	}
}

// Equate returns whether got equals want, for callers that want to build
// their own failure message.
func Equate(got, want interface{}) bool {
	return reflect.DeepEqual(got, want)
}
