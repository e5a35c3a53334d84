// filter_test.go -- general membership properties
//
// This software does not come with any express or implied warranty;
// it is provided "as is". No claim is made to its suitability for any
// purpose.

package xorfilter

import (
	"math/rand"
	"sync"
	"testing"
)

func TestNoFalseNegativesRandomSets(t *testing.T) {
	assert := newAsserter(t)

	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		n := 1 + r.Intn(5000)
		seen := make(map[uint64]bool, n)
		keys := make([]uint64, 0, n)
		for len(keys) < n {
			k := r.Uint64()
			if seen[k] {
				continue
			}
			seen[k] = true
			keys = append(keys, k)
		}

		f, err := Allocate[uint8](uint32(n))
		assert(err == nil, "trial %d: allocate: %s", trial, err)
		assert(f.Populate(keys) == nil, "trial %d: populate failed", trial)

		for _, k := range keys {
			assert(f.Contains(k), "trial %d: member %#x missing", trial, k)
		}
	}
}

func TestBoundedFalsePositiveRateWidth8(t *testing.T) {
	assert := newAsserter(t)

	r := rand.New(rand.NewSource(7))
	n := 50_000
	seen := make(map[uint64]bool, n)
	keys := make([]uint64, 0, n)
	for len(keys) < n {
		k := r.Uint64()
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}

	f := buildFilter8(t, keys)

	probes := 200_000
	fp := 0
	for i := 0; i < probes; i++ {
		var k uint64
		for {
			k = r.Uint64()
			if !seen[k] {
				break
			}
		}
		if f.Contains(k) {
			fp++
		}
	}

	rate := float64(fp) / float64(probes)
	assert(rate <= 0.006, "empirical FPR %.5f exceeds 0.6%% budget for W=8", rate)
}

func TestQueryPurityConcurrent(t *testing.T) {
	assert := newAsserter(t)

	n := 20_000
	keys := make([]uint64, n)
	for i := range keys {
		keys[i] = uint64(i)*2 + 1
	}
	f := buildFilter8(t, keys)

	before := make([]byte, len(f.fingerprints))
	for i, v := range f.fingerprints {
		before[i] = v
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 10_000; i++ {
				k := uint64(g*10_000 + i)
				_ = f.Contains(k)
			}
		}(g)
	}
	wg.Wait()

	for i, v := range f.fingerprints {
		assert(before[i] == v, "Contains mutated fingerprint[%d]", i)
	}
}
