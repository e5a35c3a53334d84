// writer.go -- builds an xor filter from a key stream and freezes it
// to a constant, mmap-able file.
//
// This software does not come with any express or implied warranty;
// it is provided "as is". No claim is made to its suitability for any
// purpose.

package xfdb

import (
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/dchest/siphash"
)

// Writer accumulates distinct uint64 keys and, on Freeze, builds a
// xorfilter.Filter over them and writes it to disk in the xfdb
// envelope format.
type Writer struct {
	fd    *os.File
	fntmp string
	fn    string

	width       byte
	keys        []uint64
	seen        map[uint64]bool
	salt        []byte
	retryBudget int

	frozen bool
}

// NewWriter prepares file fn to hold an xor filter with the given
// fingerprint width (8 or 16). The file is not created (nor any
// existing file at fn touched) until Freeze succeeds.
func NewWriter(fn string, width int) (*Writer, error) {
	if width != 8 && width != 16 {
		return nil, ErrUnknownWidth
	}

	tmp := fmt.Sprintf("%s.tmp.%d", fn, rand32())
	fd, err := os.OpenFile(tmp, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, err
	}

	w := &Writer{
		fd:    fd,
		fntmp: tmp,
		fn:    fn,
		width: byte(width),
		seen:  make(map[uint64]bool),
		salt:  randbytes(16),
	}

	// Reserve space for the header; filled in once Freeze knows nkeys,
	// blockLength and seed.
	var z [headerSize]byte
	if _, err := writeAll(fd, z[:]); err != nil {
		fd.Close()
		os.Remove(tmp)
		return nil, err
	}

	return w, nil
}

// Len returns the number of distinct keys added so far.
func (w *Writer) Len() int {
	return len(w.keys)
}

// SetRetryBudget overrides the number of reseed attempts Freeze's
// Populate call will make before giving up (0 keeps the library
// default). Must be called before Freeze.
func (w *Writer) SetRetryBudget(n int) {
	w.retryBudget = n
}

// Add adds a single key. Duplicate keys are rejected explicitly here
// (unlike the core xorfilter package, which leaves duplicate handling
// undefined) since the Writer already tracks every key in a map for
// this purpose.
func (w *Writer) Add(key uint64) error {
	if w.frozen {
		return ErrFrozen
	}
	if w.seen[key] {
		return ErrDuplicateKey
	}

	w.seen[key] = true
	w.keys = append(w.keys, key)
	return nil
}

// Freeze builds the xor filter over all added keys and writes the
// envelope to fn, replacing any existing file atomically via
// rename-on-success. It is safe to call Freeze exactly once; subsequent
// calls return ErrFrozen.
func (w *Writer) Freeze() (err error) {
	defer func() {
		if err != nil {
			w.fd.Close()
			os.Remove(w.fntmp)
		}
	}()

	if w.frozen {
		return ErrFrozen
	}

	n := uint32(len(w.keys))
	filt, err := allocateFilter(w.width, n)
	if err != nil {
		return err
	}
	if err = filt.PopulateWithRetries(w.keys, w.retryBudget); err != nil {
		return err
	}

	// The fingerprint block must start at a page-aligned file offset so
	// Reader can mmap it directly.
	pgsz := int64(os.Getpagesize())
	bodyOffset := alignUp(headerSize, pgsz)

	h := sha512.New512_256()
	tee := io.MultiWriter(w.fd, h)

	hdr := encodeHeader(w.width, w.salt, uint64(n), filt.BlockLength(), filt.Seed(), uint64(bodyOffset))
	if _, err = writeAll(tee, hdr[:]); err != nil {
		return err
	}

	// Padding up to the page boundary is not part of the checksummed
	// content (Reader's trailer check hashes only header || body), so
	// it is written directly to the file, bypassing the sha512 tee.
	if pad := bodyOffset - headerSize; pad > 0 {
		if _, err = writeAll(w.fd, make([]byte, pad)); err != nil {
			return err
		}
	}

	fp := filt.Bytes()
	if _, err = writeAll(tee, fp); err != nil {
		return err
	}

	sh := siphash.New(w.salt)
	sh.Write(fp)
	var tag [siphashTagLen]byte
	binary.BigEndian.PutUint64(tag[:], sh.Sum64())
	if _, err = writeAll(tee, tag[:]); err != nil {
		return err
	}

	trailer := h.Sum(nil)
	if _, err = writeAll(w.fd, trailer); err != nil {
		return err
	}

	if err = w.fd.Sync(); err != nil {
		return err
	}
	if err = w.fd.Close(); err != nil {
		return err
	}

	if err = os.Rename(w.fntmp, w.fn); err != nil {
		return err
	}

	w.frozen = true
	return nil
}

// Abort discards the in-progress file without freezing it.
func (w *Writer) Abort() {
	w.fd.Close()
	os.Remove(w.fntmp)
}

func writeAll(w io.Writer, buf []byte) (int, error) {
	n, err := w.Write(buf)
	if err != nil {
		return n, err
	}
	if n != len(buf) {
		return n, errShortWrite(n)
	}
	return n, nil
}
