// build.go -- peeling construction and back-assignment
//
// This is the core of the xor filter: find a random 3-uniform
// hypergraph assignment over the fingerprint table such that every key
// can be peeled via a unique degree-1 slot, then back-assign
// fingerprint bytes in reverse peel order.
//
// This software does not come with any express or implied warranty;
// it is provided "as is". No claim is made to its suitability for any
// purpose.

package xorfilter

// maxBuildRetries bounds the number of reseed attempts Populate will
// make before giving up. A single attempt succeeds with probability
// bounded below by a constant at the 1.23 load factor, so this is a
// guard against pathological input (e.g. duplicate keys), not a
// tuning knob for ordinary use.
const maxBuildRetries = 100

// xorset is the transient per-slot bookkeeping used while peeling:
// xormask is the XOR of all hashes currently incident on the slot,
// count is the current degree. While count == 1, xormask is exactly
// the one surviving incident key's hash.
type xorset struct {
	xormask uint64
	count   uint32
}

type stackEntry struct {
	hash uint64
	slot uint32
}

// Populate builds the filter from keys, replacing Seed and the
// fingerprint block, using the default retry budget (maxBuildRetries).
// See PopulateWithRetries for the full contract.
func (f *Filter[W]) Populate(keys []uint64) error {
	return f.PopulateWithRetries(keys, maxBuildRetries)
}

// PopulateWithRetries is Populate with an explicit cap on the number of
// reseed attempts, for callers (such as xfdb's Writer and Rebuild) that
// expose the retry budget as a configuration knob. maxRetries <= 0 is
// treated as maxBuildRetries.
//
// keys must be distinct; duplicates are this package's caller's
// responsibility (see package doc) and will, with high probability,
// exhaust the retry budget and return ErrBuildFailed rather than
// silently producing a broken filter.
//
// PopulateWithRetries is not safe to call concurrently with Contains or
// with another Populate/PopulateWithRetries on the same Filter.
//
// An empty key set is accepted: the seed is reset to 0 and the
// fingerprint block is zeroed. Contains then reports true only for
// keys whose W-bit fingerprint under seed 0 is zero (key 0 among
// them), about 2^-W of all keys, and false for the rest.
func (f *Filter[W]) PopulateWithRetries(keys []uint64, maxRetries int) error {
	if maxRetries <= 0 {
		maxRetries = maxBuildRetries
	}

	n := uint32(len(keys))
	b := uint32(f.blockLength)
	if n > 3*b {
		return ErrTooManyKeys
	}

	if n == 0 {
		f.seed = 0
		for i := range f.fingerprints {
			f.fingerprints[i] = 0
		}
		return nil
	}

	sets := make([]xorset, 3*b)
	queue := make([]uint32, 0, 3*b)
	stack := make([]stackEntry, 0, n)

	var rngState uint64 = 1

	for attempt := 0; attempt < maxRetries; attempt++ {
		seed := splitmix64(&rngState)

		for i := range sets {
			sets[i] = xorset{}
		}
		queue = queue[:0]
		stack = stack[:0]

		for _, k := range keys {
			h := mix(k, seed)
			h0, h1, h2 := tripleSlots(h, b)
			addEdge(sets, h0, h)
			addEdge(sets, h1, h)
			addEdge(sets, h2, h)
		}

		for i := range sets {
			if sets[i].count == 1 {
				queue = append(queue, uint32(i))
			}
		}

		for len(queue) > 0 {
			i := queue[len(queue)-1]
			queue = queue[:len(queue)-1]

			if sets[i].count != 1 {
				// Stale entry: this slot was enqueued while at degree
				// 1 but has since been peeled down to 0 (or was never
				// really 1, e.g. it was pushed twice). Skip it.
				continue
			}

			h := sets[i].xormask
			stack = append(stack, stackEntry{hash: h, slot: i})

			h0, h1, h2 := tripleSlots(h, b)
			for _, j := range [3]uint32{h0, h1, h2} {
				removeEdge(sets, j, h)
				if sets[j].count == 1 {
					queue = append(queue, j)
				}
			}
		}

		if uint32(len(stack)) == n {
			f.seed = seed
			backAssign(f.fingerprints, stack, b)
			if debugInvariants {
				assertPeelInvariant(f.fingerprints, stack, b)
			}
			return nil
		}
	}

	return ErrBuildFailed
}

func addEdge(sets []xorset, slot uint32, h uint64) {
	sets[slot].xormask ^= h
	sets[slot].count++
}

func removeEdge(sets []xorset, slot uint32, h uint64) {
	sets[slot].xormask ^= h
	sets[slot].count--
}

// backAssign pops the peel stack in reverse (most-recently-peeled
// first) and fills fingerprints so that for every key the XOR of its
// three slots equals its fingerprint. At the moment a key was peeled,
// slot i was its unique remaining incident slot, so every key peeled
// after it (= popped before it here) occupies slots other than i;
// writing F[i] now cannot disturb an earlier pop's invariant.
func backAssign[W fpWidth](fingerprints []W, stack []stackEntry, b uint32) {
	for idx := len(stack) - 1; idx >= 0; idx-- {
		e := stack[idx]
		h0, h1, h2 := tripleSlots(e.hash, b)

		fingerprints[e.slot] = 0
		fp := W(fingerprintOf(e.hash))
		fingerprints[e.slot] = fp ^ fingerprints[h0] ^ fingerprints[h1] ^ fingerprints[h2]
	}
}
