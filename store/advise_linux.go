//go:build linux

package store

import "golang.org/x/sys/unix"

// adviseRandom hints the kernel that the mapping will see random access, so
// readahead is wasted on it. Best effort; failures are ignored.
func adviseRandom(m []byte) {
	_ = unix.Madvise(m, unix.MADV_RANDOM)
}
