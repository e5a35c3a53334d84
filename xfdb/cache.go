// cache.go -- ARC-cached membership queries over a mmap'd filter
//
// This software does not come with any express or implied warranty;
// it is provided "as is". No claim is made to its suitability for any
// purpose.

package xfdb

import (
	lru "github.com/opencoff/golang-lru"
)

// CachedReader wraps a Reader with an ARC cache of recent Contains
// results. The underlying 3-slot xor filter query is already
// branch-free and cheap, but memoizing it is worthwhile when the same
// hot keys are probed in a tight loop against a filter large enough
// that its mmap'd pages are not resident.
type CachedReader struct {
	rd    *Reader
	cache *lru.ARCCache
}

// NewCachedReader wraps rd with an ARC cache sized to hold size recent
// query results (default 128 if size <= 0).
func NewCachedReader(rd *Reader, size int) (*CachedReader, error) {
	if size <= 0 {
		size = 128
	}

	c, err := lru.NewARC(size)
	if err != nil {
		return nil, err
	}

	return &CachedReader{rd: rd, cache: c}, nil
}

// Contains reports whether k was a member of the original key set,
// consulting the ARC cache before falling back to the mmap'd filter.
func (c *CachedReader) Contains(k uint64) bool {
	if v, ok := c.cache.Get(k); ok {
		return v.(bool)
	}

	res := c.rd.Contains(k)
	c.cache.Add(k, res)
	return res
}

// Close purges the cache and closes the underlying Reader.
func (c *CachedReader) Close() error {
	c.cache.Purge()
	return c.rd.Close()
}
