// invariant.go -- debug-build verification of the peel/back-assignment
// invariant: no slot is assigned by more than one stack entry, and
// after assignment every key's three slots XOR to its fingerprint.
//
// This software does not come with any express or implied warranty;
// it is provided "as is". No claim is made to its suitability for any
// purpose.

package xorfilter

import "fmt"

func assertPeelInvariant[W fpWidth](fingerprints []W, stack []stackEntry, b uint32) {
	assigned := newBitVector(uint64(len(fingerprints)))
	for _, e := range stack {
		if assigned.IsSet(uint64(e.slot)) {
			panic(fmt.Sprintf("xorfilter: slot %d assigned more than once during back-assignment", e.slot))
		}
		assigned.Set(uint64(e.slot))
	}

	for _, e := range stack {
		h0, h1, h2 := tripleSlots(e.hash, b)
		fp := W(fingerprintOf(e.hash))
		if got := fp ^ fingerprints[h0] ^ fingerprints[h1] ^ fingerprints[h2]; got != 0 {
			panic(fmt.Sprintf("xorfilter: peel invariant violated for hash %#x: xor residual %v", e.hash, got))
		}
	}
}
