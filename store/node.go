package store

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/edsrzf/mmap-go"
)

const (
	// NodeCapacity is the number of pointer slots in an index node, one per
	// 16-bit key digit.
	NodeCapacity = 1 << 16

	// NodeBytes is the on-disk length of one index node record. It is a
	// multiple of the page size, so node offsets are always mappable.
	NodeBytes = NodeCapacity * 8
)

// indexNode is one radix tree level, memory-mapped onto its record in the
// index file. Slot digit lives at byte offset digit*8.
type indexNode struct {
	mu    sync.RWMutex
	mem   mmap.MMap
	dirty atomic.Bool
}

// mapNode maps the node record at off. The record must already exist in the
// file; off must be node-aligned.
func mapNode(f *os.File, off int64) (*indexNode, error) {
	m, err := mmap.MapRegion(f, NodeBytes, mmap.RDWR, 0, off)
	if err != nil {
		return nil, fmt.Errorf("store: map index node at %d: %w", off, err)
	}
	adviseRandom(m)
	return &indexNode{mem: m}, nil
}

// pointer reads the slot for digit. The zero TaggedOffset means unset.
func (n *indexNode) pointer(digit uint16) TaggedOffset {
	n.mu.RLock()
	v := binary.LittleEndian.Uint64(n.mem[int(digit)*8:])
	n.mu.RUnlock()
	return TaggedOffset(v)
}

// setPointer records a tagged offset in the slot for digit and marks the
// node dirty.
func (n *indexNode) setPointer(digit uint16, off int64) {
	n.mu.Lock()
	binary.LittleEndian.PutUint64(n.mem[int(digit)*8:], uint64(TagOffset(off)))
	n.mu.Unlock()
	n.dirty.Store(true)
}

// flush writes the node's mapped memory back to the file if it is dirty.
func (n *indexNode) flush() error {
	if !n.dirty.Load() {
		return nil
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.mem.Flush(); err != nil {
		return fmt.Errorf("store: flush index node: %w", err)
	}
	n.dirty.Store(false)
	return nil
}

func (n *indexNode) unmap() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.mem == nil {
		return nil
	}
	err := n.mem.Unmap()
	n.mem = nil
	return err
}
