// hash.go -- seeded 64-bit hash kernel for the xor filter
//
// This software does not come with any express or implied warranty;
// it is provided "as is". No claim is made to its suitability for any
// purpose.

package xorfilter

// mix runs k+seed through the murmur64 finalizer. All arithmetic is
// unsigned wrapping 64-bit, matching Go's native uint64 semantics.
func mix(k, seed uint64) uint64 {
	h := k + seed
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

// reduce maps a 32-bit hash approximately uniformly into [0, n) using
// the high bits of a 64-bit multiply -- a fast alternative to modulo.
func reduce(x, n uint32) uint32 {
	return uint32((uint64(x) * uint64(n)) >> 32)
}

// fingerprintOf folds the high and low halves of h with XOR. Callers
// truncate the result to the stored fingerprint width.
func fingerprintOf(h uint64) uint64 {
	return h ^ (h >> 32)
}

func rotl64(x uint64, n uint) uint64 {
	n &= 63
	return (x << n) | (x >> (64 - n))
}

// tripleSlots returns the three block-local slot indices touched by hash
// h over a table with block length b: h0 in [0,b), h1 in [b,2b), h2 in
// [2b,3b). The three slots never collide with each other.
func tripleSlots(h uint64, b uint32) (h0, h1, h2 uint32) {
	r0 := uint32(h)
	r1 := uint32(rotl64(h, 21))
	r2 := uint32(rotl64(h, 42))

	h0 = reduce(r0, b)
	h1 = reduce(r1, b) + b
	h2 = reduce(r2, b) + 2*b
	return
}

// splitmix64 advances *state and returns the next pseudo-random value.
// It is used only to derive and reseed the filter's construction seed;
// it is not part of the query path and carries no cryptographic claim.
func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
