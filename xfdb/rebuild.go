// rebuild.go -- atomically replace an existing envelope file in place
// from a refreshed key list, without the incremental Add/Freeze dance.
//
// This software does not come with any express or implied warranty;
// it is provided "as is". No claim is made to its suitability for any
// purpose.

package xfdb

import (
	"bytes"
	"crypto/sha512"
	"encoding/binary"
	"os"

	"github.com/dchest/siphash"
	"github.com/natefinch/atomic"
)

// Rebuild builds a fresh filter over keys and atomically replaces fn
// with it in a single write, using github.com/natefinch/atomic rather
// than Writer's own tmpfile-plus-rename dance: unlike Freeze, which
// streams header/body/trailer incrementally while computing a running
// checksum, Rebuild already has the whole envelope in memory, so it
// hands the finished buffer to the pack's other atomic-write primitive
// instead of re-deriving Freeze's sequence.
//
// retryBudget caps the number of peeling reseed attempts (0 keeps the
// library default), mirroring Writer.SetRetryBudget.
func Rebuild(fn string, keys []uint64, width int, retryBudget int) error {
	if width != 8 && width != 16 {
		return ErrUnknownWidth
	}

	n := uint32(len(keys))
	filt, err := allocateFilter(byte(width), n)
	if err != nil {
		return err
	}
	if err := filt.PopulateWithRetries(keys, retryBudget); err != nil {
		return err
	}

	salt := randbytes(16)
	pgsz := int64(os.Getpagesize())
	bodyOffset := alignUp(headerSize, pgsz)

	hdr := encodeHeader(byte(width), salt, uint64(n), filt.BlockLength(), filt.Seed(), uint64(bodyOffset))
	fp := filt.Bytes()

	sh := siphash.New(salt)
	sh.Write(fp)
	var tag [siphashTagLen]byte
	binary.BigEndian.PutUint64(tag[:], sh.Sum64())

	h := sha512.New512_256()
	h.Write(hdr[:])
	h.Write(fp)
	h.Write(tag[:])
	trailer := h.Sum(nil)

	buf := make([]byte, 0, int64(bodyOffset)+int64(len(fp))+siphashTagLen+trailerLen)
	buf = append(buf, hdr[:]...)
	buf = append(buf, make([]byte, bodyOffset-headerSize)...)
	buf = append(buf, fp...)
	buf = append(buf, tag[:]...)
	buf = append(buf, trailer...)

	return atomic.WriteFile(fn, bytes.NewReader(buf))
}
