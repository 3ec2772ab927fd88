package spatial

import "fmt"

const (
	// BlockShift is the number of bits of a block address that are local to
	// its chunk, per axis.
	BlockShift = 4

	// BlockMask extracts the chunk-local part of a global block axis value.
	BlockMask = (1 << BlockShift) - 1
)

// ChunkCoordinate addresses a chunk in chunk space.
type ChunkCoordinate struct {
	X, Y, Z int16
}

// String formats the coordinate as "(x, y, z)".
func (c ChunkCoordinate) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

// LocalCoordinate addresses a block within a chunk. Valid axis values are
// [0, 1<<BlockShift).
type LocalCoordinate struct {
	X, Y, Z int8
}

// BlockCoordinate addresses a block in global space.
type BlockCoordinate struct {
	X, Y, Z int64
}

// BlockOrigin returns the global coordinate of this chunk's local block 0,0,0.
func (c ChunkCoordinate) BlockOrigin() BlockCoordinate {
	return BlockCoordinate{
		X: int64(c.X) << BlockShift,
		Y: int64(c.Y) << BlockShift,
		Z: int64(c.Z) << BlockShift,
	}
}

// Chunk returns the coordinate of the chunk containing this block.
func (b BlockCoordinate) Chunk() ChunkCoordinate {
	return ChunkCoordinate{
		X: int16(b.X >> BlockShift),
		Y: int16(b.Y >> BlockShift),
		Z: int16(b.Z >> BlockShift),
	}
}

// Local returns the position of this block within its chunk.
func (b BlockCoordinate) Local() LocalCoordinate {
	return LocalCoordinate{
		X: int8(b.X & BlockMask),
		Y: int8(b.Y & BlockMask),
		Z: int8(b.Z & BlockMask),
	}
}

// Global returns the position of this block in global space, offset by the
// block origin of its chunk.
func (l LocalCoordinate) Global(c ChunkCoordinate) BlockCoordinate {
	o := c.BlockOrigin()
	return BlockCoordinate{
		X: o.X + int64(l.X),
		Y: o.Y + int64(l.Y),
		Z: o.Z + int64(l.Z),
	}
}
