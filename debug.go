//go:build !xfdebug

package xorfilter

// debugInvariants is false in ordinary builds: the peel-invariant
// assertion has O(N) cost per Populate call and is meant for
// development and CI, not production construction of large filters.
// Build with -tags xfdebug to enable it.
const debugInvariants = false
