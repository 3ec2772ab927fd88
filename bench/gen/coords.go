// Package gen produces deterministic workloads for the benchmark stages.
package gen

import (
	"math/rand"

	"github.com/voxelgrid/chunkstore/chunk"
	"github.com/voxelgrid/chunkstore/spatial"
)

// Coordinates returns n distinct chunk coordinates drawn uniformly from a
// cube of the given radius around the origin. The same seed yields the same
// sequence.
func Coordinates(n int, radius int16, seed int64) []spatial.ChunkCoordinate {
	rng := rand.New(rand.NewSource(seed))
	span := int(radius) * 2

	seen := make(map[spatial.ChunkCoordinate]bool, n)
	coords := make([]spatial.ChunkCoordinate, 0, n)
	for len(coords) < n {
		c := spatial.ChunkCoordinate{
			X: int16(rng.Intn(span)) - radius,
			Y: int16(rng.Intn(span)) - radius,
			Z: int16(rng.Intn(span)) - radius,
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		coords = append(coords, c)
	}
	return coords
}

// Payload fills a fresh chunk at coord with pseudo-random blocks. Roughly
// half the blocks stay empty so compressed backends have something to work
// with.
func Payload(coord spatial.ChunkCoordinate, seed int64) *chunk.Chunk {
	rng := rand.New(rand.NewSource(seed ^ int64(spatial.PackCoordinate(coord))))
	c := chunk.New(coord)
	for i := 0; i < chunk.Volume; i++ {
		if rng.Intn(2) == 0 {
			c.SetBlock(i, chunk.BlockID(rng.Intn(1<<16-1)+1))
		}
	}
	return c
}
