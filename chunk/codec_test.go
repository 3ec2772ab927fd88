package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelgrid/chunkstore/spatial"
)

func TestCodecRoundTrip(t *testing.T) {
	src := New(spatial.ChunkCoordinate{X: 2})
	src.SetBlock(0, 7)
	src.SetBlock(Volume-1, 0xBEEF)
	src.SetBlockAt(spatial.LocalCoordinate{X: 5, Y: 6, Z: 7}, 42)

	buf := make([]byte, PayloadBytes)
	require.NoError(t, src.EncodeBlocks(buf))

	dst := New(spatial.ChunkCoordinate{X: 2})
	require.NoError(t, dst.DecodeBlocks(buf))
	assert.Equal(t, src.Blocks(), dst.Blocks())
}

func TestCodecLittleEndian(t *testing.T) {
	c := New(spatial.ChunkCoordinate{})
	c.SetBlock(0, 0x0102)

	buf := make([]byte, PayloadBytes)
	require.NoError(t, c.EncodeBlocks(buf))
	assert.Equal(t, byte(0x02), buf[0])
	assert.Equal(t, byte(0x01), buf[1])
}

func TestCodecBadLength(t *testing.T) {
	c := New(spatial.ChunkCoordinate{})
	assert.ErrorIs(t, c.EncodeBlocks(make([]byte, PayloadBytes-1)), ErrBadLength)
	assert.ErrorIs(t, c.DecodeBlocks(make([]byte, PayloadBytes+1)), ErrBadLength)
}
