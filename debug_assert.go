//go:build xfdebug

package xorfilter

const debugInvariants = true
