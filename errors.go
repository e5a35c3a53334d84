// errors.go -- error values for the xor filter core
//
// This software does not come with any express or implied warranty;
// it is provided "as is". No claim is made to its suitability for any
// purpose.

package xorfilter

import "errors"

var (
	// ErrBuildFailed is returned by Populate when peeling did not
	// converge within the retry budget. The filter's fingerprints are
	// left in whatever state the last failed attempt produced; callers
	// must treat the filter as invalid.
	ErrBuildFailed = errors.New("xorfilter: failed to build filter after retry budget exhausted")

	// ErrTooManyKeys is returned by Populate when the key count exceeds
	// the filter's 3*B fingerprint slots. A count above the n given to
	// Allocate but within 3*B is not rejected by this check.
	ErrTooManyKeys = errors.New("xorfilter: more keys than filter was allocated for")

	// ErrTruncated is returned by FromBytes when the supplied raw
	// fingerprint block is shorter than blockLength requires.
	ErrTruncated = errors.New("xorfilter: truncated fingerprint block")

	// ErrUnknownWidth is returned when a caller asks for a fingerprint
	// width this package does not support.
	ErrUnknownWidth = errors.New("xorfilter: unsupported fingerprint width")
)
