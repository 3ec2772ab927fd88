package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeFromEndPointsNormalizes(t *testing.T) {
	a := RangeFromEndPoints(ChunkCoordinate{2, -1, 3}, ChunkCoordinate{-1, 4, 0})
	b := RangeFromEndPoints(ChunkCoordinate{-1, 4, 0}, ChunkCoordinate{2, -1, 3})

	an, af := a.NearAndFar()
	bn, bf := b.NearAndFar()
	assert.Equal(t, an, bn)
	assert.Equal(t, af, bf)
	assert.Equal(t, ChunkCoordinate{-1, -1, 0}, an)
	assert.Equal(t, ChunkCoordinate{2, 4, 3}, af)
}

func TestRangeCount(t *testing.T) {
	r := RangeFromEndPoints(ChunkCoordinate{0, 0, 0}, ChunkCoordinate{3, 2, 1})
	assert.Equal(t, 6, r.Count())

	empty := RangeFromEndPoints(ChunkCoordinate{5, 5, 5}, ChunkCoordinate{5, 5, 5})
	assert.Equal(t, 0, empty.Count())
}

func TestRangeEachCoversAllOrders(t *testing.T) {
	r := RangeFromEndPoints(ChunkCoordinate{-1, -1, -1}, ChunkCoordinate{2, 2, 2})

	for _, order := range []Order{OrderXYZ, OrderXZY, OrderYXZ, OrderYZX, OrderZXY, OrderZYX} {
		seen := make(map[ChunkCoordinate]bool)
		r.Each(order, func(c ChunkCoordinate) {
			assert.False(t, seen[c], "order %d visited %+v twice", order, c)
			seen[c] = true
		})
		assert.Equalf(t, 27, len(seen), "order %d", order)
	}
}

func TestRangeEachNesting(t *testing.T) {
	r := RangeFromEndPoints(ChunkCoordinate{0, 0, 0}, ChunkCoordinate{2, 2, 2})

	var got []ChunkCoordinate
	r.Each(OrderYXZ, func(c ChunkCoordinate) { got = append(got, c) })

	want := []ChunkCoordinate{
		{0, 0, 0}, {0, 0, 1}, {1, 0, 0}, {1, 0, 1},
		{0, 1, 0}, {0, 1, 1}, {1, 1, 0}, {1, 1, 1},
	}
	assert.Equal(t, want, got)
}
