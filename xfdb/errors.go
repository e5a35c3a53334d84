// errors.go -- error values for the on-disk xor filter envelope
//
// This software does not come with any express or implied warranty;
// it is provided "as is". No claim is made to its suitability for any
// purpose.

package xfdb

import (
	"errors"
	"fmt"
)

func errShortWrite(n int) error {
	return fmt.Errorf("xfdb: incomplete write; saw %d bytes", n)
}

var (
	// ErrFrozen is returned when attempting to add keys to, or freeze,
	// a Writer that has already been frozen.
	ErrFrozen = errors.New("xfdb: writer already frozen")

	// ErrDuplicateKey is returned by Writer.Add for a key already added.
	ErrDuplicateKey = errors.New("xfdb: duplicate key")

	// ErrUnknownWidth is returned when a Writer is asked for a
	// fingerprint width other than 8 or 16.
	ErrUnknownWidth = errors.New("xfdb: fingerprint width must be 8 or 16")

	// ErrCorrupt is returned by Open when the file's header, magic, or
	// size bounds are invalid.
	ErrCorrupt = errors.New("xfdb: corrupt or truncated file")

	// ErrChecksumMismatch is returned by Open when the siphash tag or
	// the whole-file SHA-512/256 trailer does not match the stored
	// fingerprint block.
	ErrChecksumMismatch = errors.New("xfdb: checksum mismatch")
)
