package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelgrid/chunkstore/spatial"
)

func TestNewChunkIsAir(t *testing.T) {
	c := New(spatial.ChunkCoordinate{X: 1, Y: -2, Z: 3})
	assert.Equal(t, spatial.ChunkCoordinate{X: 1, Y: -2, Z: 3}, c.Coordinate())
	for i := 0; i < Volume; i++ {
		require.Equal(t, BlockID(0), c.Block(i))
	}
}

func TestIndexOrder(t *testing.T) {
	// x fastest, then y, then z.
	assert.Equal(t, 0, Index(0, 0, 0))
	assert.Equal(t, 1, Index(1, 0, 0))
	assert.Equal(t, Diameter, Index(0, 1, 0))
	assert.Equal(t, Diameter*Diameter, Index(0, 0, 1))
	assert.Equal(t, Volume-1, Index(Diameter-1, Diameter-1, Diameter-1))
}

func TestBlockAccess(t *testing.T) {
	c := New(spatial.ChunkCoordinate{})

	c.SetBlock(0, 7)
	assert.Equal(t, BlockID(7), c.Block(0))

	l := spatial.LocalCoordinate{X: 3, Y: 2, Z: 1}
	c.SetBlockAt(l, 9)
	assert.Equal(t, BlockID(9), c.BlockAt(l))
	assert.Equal(t, BlockID(9), c.Block(Index(3, 2, 1)))

	assert.Panics(t, func() { c.Block(Volume) })
	assert.Panics(t, func() { c.SetBlock(-1, 1) })
}

func TestFill(t *testing.T) {
	c := New(spatial.ChunkCoordinate{})
	c.Fill(5)
	assert.Equal(t, BlockID(5), c.Block(0))
	assert.Equal(t, BlockID(5), c.Block(Volume-1))
}
