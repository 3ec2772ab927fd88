package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkCoordinateBlockOrigin(t *testing.T) {
	assert.Equal(t, BlockCoordinate{0, 0, 0}, ChunkCoordinate{}.BlockOrigin())
	assert.Equal(t, BlockCoordinate{16, 32, -16}, ChunkCoordinate{1, 2, -1}.BlockOrigin())
}

func TestBlockCoordinateChunk(t *testing.T) {
	assert.Equal(t, ChunkCoordinate{0, 0, 0}, BlockCoordinate{15, 0, 3}.Chunk())
	assert.Equal(t, ChunkCoordinate{1, 0, 0}, BlockCoordinate{16, 0, 0}.Chunk())
	// Negative axes round toward negative infinity.
	assert.Equal(t, ChunkCoordinate{-1, -1, -1}, BlockCoordinate{-1, -16, -15}.Chunk())
	assert.Equal(t, ChunkCoordinate{-2, 0, 0}, BlockCoordinate{-17, 0, 0}.Chunk())
}

func TestBlockCoordinateLocal(t *testing.T) {
	assert.Equal(t, LocalCoordinate{15, 0, 3}, BlockCoordinate{15, 16, 3}.Local())
	// -1 is the last block of chunk -1.
	assert.Equal(t, LocalCoordinate{15, 0, 1}, BlockCoordinate{-1, -16, -15}.Local())
}

func TestLocalCoordinateGlobalRoundTrip(t *testing.T) {
	for _, b := range []BlockCoordinate{
		{0, 0, 0}, {15, 15, 15}, {16, 0, -1}, {-1, -16, -17}, {1000, -1000, 31},
	} {
		got := b.Local().Global(b.Chunk())
		assert.Equal(t, b, got)
	}
}
