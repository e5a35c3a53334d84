// asserter_test.go -- small test helper shared across this package's
// tests: assert := newAsserter(t); assert(cond, fmt, args...)
//
// This software does not come with any express or implied warranty;
// it is provided "as is". No claim is made to its suitability for any
// purpose.

package xorfilter

import "testing"

type asserter func(cond bool, f string, v ...interface{})

func newAsserter(t *testing.T) asserter {
	return func(cond bool, f string, v ...interface{}) {
		t.Helper()
		if !cond {
			t.Fatalf(f, v...)
		}
	}
}
