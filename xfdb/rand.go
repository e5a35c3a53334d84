// rand.go -- random salt/suffix generation for the on-disk envelope.
//
// This is deliberately distinct from the core xorfilter package's
// splitmix64 construction seed: the envelope's salt keys a siphash tag
// used only for tamper detection of the persisted file, and has no
// bearing on filter determinism.
//
// This software does not come with any express or implied warranty;
// it is provided "as is". No claim is made to its suitability for any
// purpose.

package xfdb

import (
	"crypto/rand"
	"encoding/binary"
	"io"
)

func randbytes(n int) []byte {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		panic("xfdb: can't read crypto/rand")
	}
	return b
}

func rand32() uint32 {
	var b [4]byte
	if _, err := io.ReadFull(rand.Reader, b[:]); err != nil {
		panic("xfdb: can't read crypto/rand")
	}
	return binary.BigEndian.Uint32(b[:])
}
