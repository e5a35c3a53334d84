// Package xorfilter implements an approximate-membership data structure
// based on the xor filter construction: given a static set of up to
// ~2^32 distinct uint64 keys, it answers Contains(k) with no false
// negatives and a bounded false-positive rate of roughly 2^-8 or 2^-16,
// using about 1.23*8 or 1.23*16 bits per key.
//
// The structure is immutable once built. Construction finds a random
// 3-uniform hypergraph over the fingerprint table by peeling degree-1
// vertices, then back-assigns fingerprint bytes in reverse peel order
// so that the XOR of each key's three slots reproduces its fingerprint.
//
// This software does not come with any express or implied warranty;
// it is provided "as is". No claim is made to its suitability for any
// purpose.
package xorfilter
