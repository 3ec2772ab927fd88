package store

import (
	"sync"
	"sync/atomic"

	"github.com/edsrzf/mmap-go"

	"github.com/voxelgrid/chunkstore/chunk"
	"github.com/voxelgrid/chunkstore/spatial"
)

// Handle is a loaded chunk payload. It pairs an in-memory chunk with the
// memory-mapped file region backing it. Mutations stay in memory until the
// owning store's Save copies them into the mapping.
type Handle struct {
	mu    sync.RWMutex
	data  *chunk.Chunk
	mem   mmap.MMap
	off   int64
	dirty atomic.Bool
}

// Coordinate returns the chunk's position in chunk space.
func (h *Handle) Coordinate() spatial.ChunkCoordinate {
	return h.data.Coordinate()
}

// Offset returns the chunk's record offset in the chunk file.
func (h *Handle) Offset() int64 {
	return h.off
}

// View calls fn with read access to the chunk. The chunk must not be
// retained or mutated past the call.
func (h *Handle) View(fn func(*chunk.Chunk)) {
	h.mu.RLock()
	fn(h.data)
	h.mu.RUnlock()
}

// Update calls fn with exclusive access to the chunk. The chunk must not be
// retained past the call.
func (h *Handle) Update(fn func(*chunk.Chunk)) {
	h.mu.Lock()
	fn(h.data)
	h.mu.Unlock()
}

// Block returns the block at linear index i.
func (h *Handle) Block(i int) chunk.BlockID {
	h.mu.RLock()
	b := h.data.Block(i)
	h.mu.RUnlock()
	return b
}

// SetBlock stores id at linear index i.
func (h *Handle) SetBlock(i int, id chunk.BlockID) {
	h.mu.Lock()
	h.data.SetBlock(i, id)
	h.mu.Unlock()
}

// save copies the in-memory blocks into the mapped file region.
func (h *Handle) save() error {
	h.mu.RLock()
	err := h.data.EncodeBlocks(h.mem)
	h.mu.RUnlock()
	if err != nil {
		return err
	}
	h.dirty.Store(true)
	return nil
}

// sync forces the mapped region to stable storage if it has unsynced saves.
func (h *Handle) sync() error {
	if !h.dirty.Load() {
		return nil
	}
	if err := h.mem.Flush(); err != nil {
		return err
	}
	h.dirty.Store(false)
	return nil
}

func (h *Handle) unmap() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.mem == nil {
		return nil
	}
	err := h.mem.Unmap()
	h.mem = nil
	return err
}
