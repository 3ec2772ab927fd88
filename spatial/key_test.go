package spatial

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackCoordinateBitMapping(t *testing.T) {
	// Every source bit must land three positions apart, with x offset by two
	// and y offset by one.
	for bit := 0; bit < 16; bit++ {
		v := int16(uint16(1) << bit)

		x := PackCoordinate(ChunkCoordinate{X: v})
		y := PackCoordinate(ChunkCoordinate{Y: v})
		z := PackCoordinate(ChunkCoordinate{Z: v})

		assert.Equal(t, Key(1)<<(3*bit+2), x, "x bit %d", bit)
		assert.Equal(t, Key(1)<<(3*bit+1), y, "y bit %d", bit)
		assert.Equal(t, Key(1)<<(3*bit), z, "z bit %d", bit)
	}

	assert.Equal(t, Key(0), PackCoordinate(ChunkCoordinate{}))
}

func TestPackCoordinateBijection(t *testing.T) {
	seen := make(map[Key]ChunkCoordinate)
	for x := int16(-8); x <= 8; x++ {
		for y := int16(-8); y <= 8; y++ {
			for z := int16(-8); z <= 8; z++ {
				c := ChunkCoordinate{x, y, z}
				k := PackCoordinate(c)
				prev, dup := seen[k]
				require.Falsef(t, dup, "key %v collides: %+v and %+v", k, prev, c)
				seen[k] = c
			}
		}
	}
}

func hammingLow6(a, b Key) int {
	d := (a ^ b) & 0x3F
	n := 0
	for d != 0 {
		n += int(d & 1)
		d >>= 1
	}
	return n
}

func TestPackCoordinateLocality(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const samples = 2000

	var neighborDist, randomDist float64
	for i := 0; i < samples; i++ {
		c := ChunkCoordinate{
			X: int16(rng.Intn(1 << 16)),
			Y: int16(rng.Intn(1 << 16)),
			Z: int16(rng.Intn(1 << 16)),
		}
		k := PackCoordinate(c)

		var nd float64
		for _, n := range []ChunkCoordinate{
			{c.X + 1, c.Y, c.Z}, {c.X - 1, c.Y, c.Z},
			{c.X, c.Y + 1, c.Z}, {c.X, c.Y - 1, c.Z},
			{c.X, c.Y, c.Z + 1}, {c.X, c.Y, c.Z - 1},
		} {
			nd += float64(hammingLow6(k, PackCoordinate(n)))
		}
		neighborDist += nd / 6

		other := ChunkCoordinate{
			X: int16(rng.Intn(1 << 16)),
			Y: int16(rng.Intn(1 << 16)),
			Z: int16(rng.Intn(1 << 16)),
		}
		randomDist += float64(hammingLow6(k, PackCoordinate(other)))
	}

	assert.Less(t, neighborDist, randomDist,
		"axis neighbors should differ in fewer low key bits than random pairs")
}

func TestKeyDigits(t *testing.T) {
	k := PackCoordinate(ChunkCoordinate{X: -21555, Y: 12345, Z: 3})

	d := k.Digits()
	assert.Equal(t, uint16(k>>32), d[0])
	assert.Equal(t, uint16(k>>16), d[1])
	assert.Equal(t, uint16(k), d[2])

	for i := 0; i < KeyDigits; i++ {
		assert.Equal(t, d[i], k.Digit(i))
	}

	recombined := Key(d[0])<<32 | Key(d[1])<<16 | Key(d[2])
	assert.Equal(t, k, recombined)
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "000000000000", PackCoordinate(ChunkCoordinate{}).String())

	// -32768 is bit 15 on every axis.
	most := ChunkCoordinate{X: -32768, Y: -32768, Z: -32768}
	assert.Equal(t, "E00000000000", PackCoordinate(most).String())

	assert.Equal(t, "000E00000000", PackCoordinate(ChunkCoordinate{0x0800, 0x0800, 0x0800}).String())
	assert.Equal(t, "000000E00000", PackCoordinate(ChunkCoordinate{0x0080, 0x0080, 0x0080}).String())
	assert.Equal(t, "000000000E00", PackCoordinate(ChunkCoordinate{0x0008, 0x0008, 0x0008}).String())
}
