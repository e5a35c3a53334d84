// layout.go -- zero-copy slice reinterpretation for loading a filter's
// fingerprint block directly out of a memory-mapped file, and the
// matching write-side view.
//
// This software does not come with any express or implied warranty;
// it is provided "as is". No claim is made to its suitability for any
// purpose.

package xorfilter

import "unsafe"

// sliceFromBytes reinterprets raw bytes as a []W without copying. b
// must outlive the returned slice (it is typically backed by an mmap
// region owned by the caller).
func sliceFromBytes[W fpWidth](b []byte) []W {
	var zero W
	width := sizeOfWidth(zero)
	n := len(b) / width
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*W)(unsafe.Pointer(&b[0])), n)
}

// bytesFromSlice is the inverse of sliceFromBytes: a zero-copy byte
// view over a fingerprint slice, used when writing it out.
func bytesFromSlice[W fpWidth](s []W) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero W
	width := sizeOfWidth(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*width)
}

// fixupFingerprintEndianness corrects the byte order of each
// fingerprint in place after a little-endian-encoded block has been
// zero-copy mapped on a big-endian host (or before writing one out on
// such a host). It is a no-op for uint8 fingerprints, which have no
// byte order, and a no-op entirely on little-endian hosts.
func fixupFingerprintEndianness[W fpWidth](s []W) {
	if !nativeIsBigEndian {
		return
	}
	for i := range s {
		if v, ok := any(s[i]).(uint16); ok {
			s[i] = any(swapUint16(v)).(W)
		}
	}
}

// FromBytes reconstructs a Filter from a seed, a block length, and a
// little-endian-encoded fingerprint block of length 3*blockLength*W.
// On a little-endian host the returned Filter's fingerprint storage
// aliases raw directly (no fixup is needed, so none is performed),
// which is how xfdb.Reader maps a filter straight out of a
// memory-mapped, read-only file without copying the fingerprint block;
// raw must then remain valid (and unmodified by anyone else) for the
// Filter's lifetime. On a big-endian host raw may be backed by a
// read-only mapping too, so the fingerprints are copied into a
// heap-owned slice before being byte-swapped in place, rather than
// swapping the alias itself.
func FromBytes[W fpWidth](seed, blockLength uint64, raw []byte) (*Filter[W], error) {
	var zero W
	want := int(3*blockLength) * sizeOfWidth(zero)
	if len(raw) < want {
		return nil, ErrTruncated
	}

	fp := sliceFromBytes[W](raw[:want])
	if nativeIsBigEndian {
		owned := make([]W, len(fp))
		copy(owned, fp)
		fixupFingerprintEndianness(owned)
		fp = owned
	}

	return &Filter[W]{
		seed:         seed,
		blockLength:  blockLength,
		fingerprints: fp,
	}, nil
}

// Bytes returns a little-endian-encoded view of the filter's
// fingerprint block, suitable for writing to disk. On a little-endian
// host (the common case) this is a zero-copy alias of the filter's own
// storage: callers must not retain it past the filter's lifetime or
// mutate it concurrently with Populate. On a big-endian host the
// fingerprints must be byte-swapped for the on-disk little-endian
// encoding, so a fresh copy is returned instead.
func (f *Filter[W]) Bytes() []byte {
	if !nativeIsBigEndian {
		return bytesFromSlice(f.fingerprints)
	}

	swapped := make([]W, len(f.fingerprints))
	copy(swapped, f.fingerprints)
	fixupFingerprintEndianness(swapped)
	return bytesFromSlice(swapped)
}
