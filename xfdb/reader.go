// reader.go -- mmap-backed constant-time reader for the xfdb envelope
//
// This software does not come with any express or implied warranty;
// it is provided "as is". No claim is made to its suitability for any
// purpose.

package xfdb

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/dchest/siphash"
)

// Reader provides constant-time Contains queries against a filter
// previously written by a Writer, without reading the fingerprint
// block into the Go heap: it is memory-mapped directly.
type Reader struct {
	filt filterOps

	width  byte
	nkeys  uint64
	salt   []byte
	region []byte // mmap'd fingerprint block + siphash tag

	fd *os.File
	fn string
}

// Open opens fn, verifies its header, siphash tag and whole-file
// checksum, and memory-maps the fingerprint block for querying.
func Open(fn string) (*Reader, error) {
	fd, err := os.Open(fn)
	if err != nil {
		return nil, err
	}

	st, err := fd.Stat()
	if err != nil {
		fd.Close()
		return nil, fmt.Errorf("%s: can't stat: %w", fn, err)
	}
	if st.Size() < headerSize+siphashTagLen+trailerLen {
		fd.Close()
		return nil, ErrCorrupt
	}

	var hdrb [headerSize]byte
	if _, err := io.ReadFull(fd, hdrb[:]); err != nil {
		fd.Close()
		return nil, fmt.Errorf("%s: can't read header: %w", fn, err)
	}

	width, salt, nkeys, blockLength, seed, bodyOffset, err := decodeHeader(hdrb[:])
	if err != nil {
		fd.Close()
		return nil, err
	}

	fpLen := int(3*blockLength) * widthBytes(width)
	regionLen := fpLen + siphashTagLen
	wantSize := int64(bodyOffset) + int64(regionLen) + trailerLen
	if bodyOffset < headerSize || st.Size() != wantSize {
		fd.Close()
		return nil, ErrCorrupt
	}

	region, err := syscall.Mmap(int(fd.Fd()), int64(bodyOffset), regionLen, syscall.PROT_READ, syscall.MAP_PRIVATE)
	if err != nil {
		fd.Close()
		return nil, fmt.Errorf("%s: mmap failed: %w", fn, err)
	}

	rd := &Reader{
		width:  width,
		nkeys:  nkeys,
		salt:   salt,
		region: region,
		fd:     fd,
		fn:     fn,
	}

	fp := region[:fpLen]
	tag := region[fpLen:regionLen]

	sh := siphash.New(salt)
	sh.Write(fp)
	var want [siphashTagLen]byte
	binary.BigEndian.PutUint64(want[:], sh.Sum64())
	if subtle.ConstantTimeCompare(want[:], tag) != 1 {
		rd.Close()
		return nil, ErrChecksumMismatch
	}

	if err := rd.verifyTrailer(hdrb[:], st.Size()); err != nil {
		rd.Close()
		return nil, err
	}

	filt, err := filterFromBytes(width, seed, blockLength, fp)
	if err != nil {
		rd.Close()
		return nil, err
	}
	rd.filt = filt

	return rd, nil
}

func (rd *Reader) verifyTrailer(hdrb []byte, sz int64) error {
	h := sha512.New512_256()
	h.Write(hdrb)
	h.Write(rd.region)

	var got [trailerLen]byte
	if _, err := rd.fd.ReadAt(got[:], sz-trailerLen); err != nil {
		return fmt.Errorf("%s: can't read trailer: %w", rd.fn, err)
	}

	sum := h.Sum(nil)
	if subtle.ConstantTimeCompare(sum, got[:]) != 1 {
		return ErrChecksumMismatch
	}
	return nil
}

// Contains reports whether k was a member of the key set the filter
// was frozen from. See xorfilter.Filter.Contains for the false-positive
// guarantees.
func (rd *Reader) Contains(k uint64) bool {
	return rd.filt.Contains(k)
}

// Len returns the number of distinct keys the filter was built from.
func (rd *Reader) Len() int {
	return int(rd.nkeys)
}

// Width returns the fingerprint width in bits (8 or 16).
func (rd *Reader) Width() int {
	return int(rd.width)
}

// SizeInBytes returns the in-memory size of the mapped fingerprint
// block plus its header, matching xorfilter.Filter.SizeInBytes.
func (rd *Reader) SizeInBytes() int {
	return rd.filt.SizeInBytes()
}

// Close unmaps the fingerprint block and closes the underlying file.
func (rd *Reader) Close() error {
	if rd.region != nil {
		syscall.Munmap(rd.region)
		rd.region = nil
	}
	rd.filt = nil
	if rd.fd != nil {
		err := rd.fd.Close()
		rd.fd = nil
		return err
	}
	return nil
}
