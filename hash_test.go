// hash_test.go -- bit-exact vectors for the hash kernel
//
// This software does not come with any express or implied warranty;
// it is provided "as is". No claim is made to its suitability for any
// purpose.

package xorfilter

import "testing"

func TestMixVectors(t *testing.T) {
	assert := newAsserter(t)

	cases := []struct {
		k, seed, want uint64
	}{
		{0, 0, 0},
	}

	for _, c := range cases {
		got := mix(c.k, c.seed)
		assert(got == c.want, "mix(%#x,%#x): exp %#x, saw %#x", c.k, c.seed, c.want, got)
	}
}

func TestMixDeterministic(t *testing.T) {
	assert := newAsserter(t)

	keys := []uint64{0, 1, 2, 1 << 63, ^uint64(0)}
	seeds := []uint64{0, 1, 1 << 63, ^uint64(0)}

	for _, k := range keys {
		for _, s := range seeds {
			a := mix(k, s)
			b := mix(k, s)
			assert(a == b, "mix(%#x,%#x) not deterministic: %#x vs %#x", k, s, a, b)
		}
	}

	// mix hashes k+seed, so pairs with the same wrapping sum (e.g. (0,1)
	// and (1,0)) share a hash by construction. Pairs with distinct sums
	// should essentially never collide for this tiny sample; a collision
	// here would indicate a broken finalizer.
	seen := make(map[uint64]uint64)
	for _, k := range keys {
		for _, s := range seeds {
			h := mix(k, s)
			sum, ok := seen[h]
			assert(!ok || sum == k+s, "unexpected collision for mix(%#x,%#x)", k, s)
			seen[h] = k + s
		}
	}
}

func TestReduceRange(t *testing.T) {
	assert := newAsserter(t)

	for _, n := range []uint32{1, 2, 3, 100, 1 << 20} {
		for _, x := range []uint32{0, 1, 1 << 31, ^uint32(0)} {
			r := reduce(x, n)
			assert(r < n || n == 0, "reduce(%#x,%d)=%d out of range", x, n, r)
		}
	}

	assert(reduce(0, 100) == 0, "reduce(0,n) must be 0")
	assert(reduce(^uint32(0), 100) < 100, "reduce(max,100) out of range")
}

func TestTripleSlotsDisjointRanges(t *testing.T) {
	assert := newAsserter(t)

	b := uint32(1000)
	for _, h := range []uint64{0, 1, 0xdeadbeefcafef00d, ^uint64(0)} {
		h0, h1, h2 := tripleSlots(h, b)
		assert(h0 < b, "h0=%d out of [0,%d)", h0, b)
		assert(h1 >= b && h1 < 2*b, "h1=%d out of [%d,%d)", h1, b, 2*b)
		assert(h2 >= 2*b && h2 < 3*b, "h2=%d out of [%d,%d)", h2, 2*b, 3*b)
	}
}

func TestSplitmix64Deterministic(t *testing.T) {
	assert := newAsserter(t)

	var s1, s2 uint64 = 1, 1
	for i := 0; i < 10; i++ {
		a := splitmix64(&s1)
		b := splitmix64(&s2)
		assert(a == b, "splitmix64 diverged at step %d: %#x vs %#x", i, a, b)
	}
}
