// Package chunk holds the in-memory payload of one terrain chunk and the
// registry of block identifiers.
//
// A chunk is a fixed 16x16x16 cube of blocks. Each block is an opaque 16-bit
// identifier where 0 means "no block present". The payload serializes to a
// flat little-endian array regardless of host byte order, so saved files are
// portable across architectures.
package chunk

import (
	"github.com/voxelgrid/chunkstore/spatial"
)

const (
	// Diameter is the number of blocks per axis.
	Diameter = 1 << spatial.BlockShift

	// Volume is the number of blocks in one chunk.
	Volume = Diameter * Diameter * Diameter

	// BlockBytes is the serialized size of one block.
	BlockBytes = 2

	// PayloadBytes is the serialized size of one chunk's block data.
	PayloadBytes = Volume * BlockBytes
)

// BlockID identifies a block type within a chunk. Zero means no block.
type BlockID uint16

// Chunk is the in-memory block data of one terrain chunk. A freshly created
// chunk is all air. Out-of-range indices are caller defects and panic.
type Chunk struct {
	coord  spatial.ChunkCoordinate
	blocks [Volume]BlockID
}

// New creates an empty chunk at the given coordinate.
func New(coord spatial.ChunkCoordinate) *Chunk {
	return &Chunk{coord: coord}
}

// Coordinate returns the chunk's position in chunk space.
func (c *Chunk) Coordinate() spatial.ChunkCoordinate {
	return c.coord
}

// Index converts a local block position to a linear index into the payload.
// x varies fastest, then y, then z.
func Index(x, y, z int) int {
	return x + y*Diameter + z*Diameter*Diameter
}

// Block returns the block at linear index i.
func (c *Chunk) Block(i int) BlockID {
	return c.blocks[i]
}

// SetBlock stores id at linear index i.
func (c *Chunk) SetBlock(i int, id BlockID) {
	c.blocks[i] = id
}

// BlockAt returns the block at a local coordinate.
func (c *Chunk) BlockAt(l spatial.LocalCoordinate) BlockID {
	return c.blocks[Index(int(l.X), int(l.Y), int(l.Z))]
}

// SetBlockAt stores id at a local coordinate.
func (c *Chunk) SetBlockAt(l spatial.LocalCoordinate, id BlockID) {
	c.blocks[Index(int(l.X), int(l.Y), int(l.Z))] = id
}

// Blocks exposes the raw block array. Mutations through the returned slice
// are visible to the chunk.
func (c *Chunk) Blocks() []BlockID {
	return c.blocks[:]
}

// Fill sets every block in the chunk to id.
func (c *Chunk) Fill(id BlockID) {
	for i := range c.blocks {
		c.blocks[i] = id
	}
}
