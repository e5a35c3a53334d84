// envelope.go -- on-disk layout shared by Writer and Reader.
//
// File layout (all multi-byte header fields big-endian; the
// fingerprint block itself is little-endian, so it can be mmap'd
// directly on (the overwhelmingly common) little-endian hosts):
//
//   - 64 byte header:
//      * magic    [4]byte "XORF"
//      * flags    uint32  reserved, zero
//      * salt     [16]byte siphash-2-4 key for the fingerprint tag
//      * width    byte (8 or 16), 7 reserved bytes
//      * nkeys    uint64
//      * blockLength uint64 (B)
//      * seed     uint64
//      * bodyOffset uint64 -- file offset of the fingerprint block,
//        page-aligned so it can be mmap'd directly (mmap requires a
//        page-aligned offset on every OS this targets)
//   - zero padding from the end of the header up to bodyOffset
//   - fingerprint block: 3*B fingerprints of `width` bits each,
//     little-endian
//   - siphash-2-4 tag of the fingerprint block, keyed by salt: 8 bytes
//   - SHA-512/256 of (header || fingerprint block || siphash tag): 32
//     bytes
//
// This software does not come with any express or implied warranty;
// it is provided "as is". No claim is made to its suitability for any
// purpose.

package xfdb

import (
	"encoding/binary"

	"github.com/opencoff/go-xorfilter"
)

const (
	headerSize    = 64
	siphashTagLen = 8
	trailerLen    = 32
)

var magic = [4]byte{'X', 'O', 'R', 'F'}

// filterOps is the subset of *xorfilter.Filter[W] that the envelope
// code needs, abstracted over the two supported widths so a Writer or
// Reader can hold either one behind a single field chosen at runtime
// from a CLI/config-supplied width.
type filterOps interface {
	Populate(keys []uint64) error
	PopulateWithRetries(keys []uint64, maxRetries int) error
	Contains(k uint64) bool
	BlockLength() uint64
	Seed() uint64
	SizeInBytes() int
	Bytes() []byte
}

var (
	_ filterOps = (*xorfilter.Filter8)(nil)
	_ filterOps = (*xorfilter.Filter16)(nil)
)

func widthBytes(width byte) int {
	switch width {
	case 8:
		return 1
	case 16:
		return 2
	default:
		return 0
	}
}

func allocateFilter(width byte, n uint32) (filterOps, error) {
	switch width {
	case 8:
		return xorfilter.Allocate[uint8](n)
	case 16:
		return xorfilter.Allocate[uint16](n)
	default:
		return nil, ErrUnknownWidth
	}
}

func filterFromBytes(width byte, seed, blockLength uint64, raw []byte) (filterOps, error) {
	switch width {
	case 8:
		return xorfilter.FromBytes[uint8](seed, blockLength, raw)
	case 16:
		return xorfilter.FromBytes[uint16](seed, blockLength, raw)
	default:
		return nil, ErrUnknownWidth
	}
}

func encodeHeader(width byte, salt []byte, nkeys, blockLength, seed, bodyOffset uint64) [headerSize]byte {
	var hdr [headerSize]byte
	be := binary.BigEndian

	copy(hdr[0:4], magic[:])
	copy(hdr[8:24], salt)
	hdr[24] = width
	be.PutUint64(hdr[32:40], nkeys)
	be.PutUint64(hdr[40:48], blockLength)
	be.PutUint64(hdr[48:56], seed)
	be.PutUint64(hdr[56:64], bodyOffset)

	return hdr
}

func decodeHeader(hdr []byte) (width byte, salt []byte, nkeys, blockLength, seed, bodyOffset uint64, err error) {
	if len(hdr) < headerSize || string(hdr[0:4]) != string(magic[:]) {
		return 0, nil, 0, 0, 0, 0, ErrCorrupt
	}

	be := binary.BigEndian
	salt = append([]byte(nil), hdr[8:24]...)
	width = hdr[24]
	if widthBytes(width) == 0 {
		return 0, nil, 0, 0, 0, 0, ErrCorrupt
	}
	nkeys = be.Uint64(hdr[32:40])
	blockLength = be.Uint64(hdr[40:48])
	seed = be.Uint64(hdr[48:56])
	bodyOffset = be.Uint64(hdr[56:64])
	return
}

// alignUp rounds off up to the next multiple of align (align must be a
// power of 2).
func alignUp(off int64, align int64) int64 {
	m := align - 1
	return (off + m) &^ m
}
