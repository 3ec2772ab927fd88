//go:build !linux

package store

// adviseRandom is a no-op where madvise is unavailable.
func adviseRandom(m []byte) {}
