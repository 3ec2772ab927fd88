package world

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelgrid/chunkstore/chunk"
	"github.com/voxelgrid/chunkstore/gen"
	"github.com/voxelgrid/chunkstore/spatial"
	"github.com/voxelgrid/chunkstore/store"
)

func openTestWorld(t *testing.T, dir string, opts *Options) *World {
	t.Helper()
	w, err := Open(dir, opts)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return w
}

func TestOpenCreatesLayout(t *testing.T) {
	dir := t.TempDir()
	w := openTestWorld(t, dir, &Options{Name: "testland", Seed: 42})

	m := w.Manifest()
	assert.Equal(t, FormatVersion, m.FormatVersion)
	assert.Equal(t, "testland", m.Name)
	assert.Equal(t, int64(42), m.Seed)
	assert.False(t, m.CreatedAt.IsZero())

	for _, p := range []string{
		filepath.Join(dir, "manifest.yaml"),
		filepath.Join(dir, "terrain", "index.bin"),
		filepath.Join(dir, "terrain", "chunks.bin"),
	} {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
}

func TestReopenKeepsIdentity(t *testing.T) {
	dir := t.TempDir()

	w, err := Open(dir, &Options{Name: "original", Seed: 7})
	require.NoError(t, err)
	first := w.Manifest()
	require.NoError(t, w.Close())

	// Name and Seed from the options must lose against the stored manifest.
	w = openTestWorld(t, dir, &Options{Name: "other", Seed: 99})
	second := w.Manifest()

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "original", second.Name)
	assert.Equal(t, int64(7), second.Seed)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
}

func TestGeneratedTerrain(t *testing.T) {
	w := openTestWorld(t, t.TempDir(), nil)
	require.NoError(t, w.AddGenerator(gen.NewFlatWorld()))

	ground, ok := w.Registry().IDByName("abstract_block")
	require.True(t, ok)

	id, err := w.Block(spatial.BlockCoordinate{X: 3, Y: -1, Z: 100})
	require.NoError(t, err)
	assert.Equal(t, ground, id)

	id, err = w.Block(spatial.BlockCoordinate{X: 3, Y: 0, Z: 100})
	require.NoError(t, err)
	assert.Equal(t, chunk.BlockID(0), id)
}

func TestSetBlockAcrossChunkBoundary(t *testing.T) {
	dir := t.TempDir()
	w := openTestWorld(t, dir, nil)

	// Neighbouring global blocks in different chunks.
	a := spatial.BlockCoordinate{X: 15, Y: 0, Z: 0}
	b := spatial.BlockCoordinate{X: 16, Y: 0, Z: 0}
	require.NotEqual(t, a.Chunk(), b.Chunk())

	require.NoError(t, w.SetBlock(a, 11))
	require.NoError(t, w.SetBlock(b, 22))

	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	w = openTestWorld(t, dir, nil)

	id, err := w.Block(a)
	require.NoError(t, err)
	assert.Equal(t, chunk.BlockID(11), id)

	id, err = w.Block(b)
	require.NoError(t, err)
	assert.Equal(t, chunk.BlockID(22), id)
}

func TestNegativeBlockCoordinates(t *testing.T) {
	w := openTestWorld(t, t.TempDir(), nil)

	c := spatial.BlockCoordinate{X: -1, Y: -1, Z: -1}
	require.NoError(t, w.SetBlock(c, 5))

	id, err := w.Block(c)
	require.NoError(t, err)
	assert.Equal(t, chunk.BlockID(5), id)

	// The neighbour at origin lives in a different chunk and stays empty.
	id, err = w.Block(spatial.BlockCoordinate{})
	require.NoError(t, err)
	assert.Equal(t, chunk.BlockID(0), id)
}

func TestEachPopulatesBox(t *testing.T) {
	w := openTestWorld(t, t.TempDir(), nil)
	require.NoError(t, w.AddGenerator(gen.NewFlatWorld()))

	ground, ok := w.Registry().IDByName("abstract_block")
	require.True(t, ok)

	var visited []spatial.ChunkCoordinate
	err := w.Each(
		spatial.ChunkCoordinate{X: 0, Y: -1, Z: 0},
		spatial.ChunkCoordinate{X: 2, Y: 1, Z: 2},
		spatial.OrderYXZ,
		func(h *store.Handle) error {
			visited = append(visited, h.Coordinate())
			return nil
		},
	)
	require.NoError(t, err)
	assert.Len(t, visited, 2*2*2)

	for _, coord := range visited {
		h, err := w.Chunk(coord)
		require.NoError(t, err)
		want := chunk.BlockID(0)
		if coord.Y < 0 {
			want = ground
		}
		assert.Equal(t, want, h.Block(0), "chunk %s", coord)
	}
}

func TestRejectsNewerManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := "format_version: 99\nid: 7b0e3f3e-1f6a-4fd3-9a37-25d5ef6cfb10\nname: future\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.yaml"), []byte(manifest), 0o644))

	_, err := Open(dir, nil)
	assert.Error(t, err)
}
