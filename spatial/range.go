package spatial

// Order selects the axis nesting of a range walk. The first letter is the
// outermost loop, the last is the innermost.
type Order int

// Supported walk orders.
const (
	OrderXYZ Order = iota
	OrderXZY
	OrderYXZ
	OrderYZX
	OrderZXY
	OrderZYX
)

// ChunkRange selects an axis-aligned box of chunks. The far corner is
// exclusive, so a range built from two equal points is empty.
type ChunkRange struct {
	near ChunkCoordinate
	size ChunkCoordinate // never negative
}

// RangeFromEndPoints builds a range from two corner points, in any order.
func RangeFromEndPoints(first, second ChunkCoordinate) ChunkRange {
	near := ChunkCoordinate{
		X: min(first.X, second.X),
		Y: min(first.Y, second.Y),
		Z: min(first.Z, second.Z),
	}
	return ChunkRange{
		near: near,
		size: ChunkCoordinate{
			X: absDiff(first.X, second.X),
			Y: absDiff(first.Y, second.Y),
			Z: absDiff(first.Z, second.Z),
		},
	}
}

func absDiff(a, b int16) int16 {
	if a > b {
		return a - b
	}
	return b - a
}

// NearAndFar returns the most down-west-south corner and the exclusive
// up-east-north corner of the range.
func (r ChunkRange) NearAndFar() (ChunkCoordinate, ChunkCoordinate) {
	return r.near, ChunkCoordinate{
		X: r.near.X + r.size.X,
		Y: r.near.Y + r.size.Y,
		Z: r.near.Z + r.size.Z,
	}
}

// Count returns the number of chunks the range covers.
func (r ChunkRange) Count() int {
	return int(r.size.X) * int(r.size.Y) * int(r.size.Z)
}

// Each walks every coordinate in the range in the given nesting order.
func (r ChunkRange) Each(order Order, fn func(ChunkCoordinate)) {
	near, far := r.NearAndFar()
	var outer, mid, inner axisRange
	var assemble func(a, b, c int16) ChunkCoordinate

	x := axisRange{near.X, far.X}
	y := axisRange{near.Y, far.Y}
	z := axisRange{near.Z, far.Z}

	switch order {
	case OrderXYZ:
		outer, mid, inner = x, y, z
		assemble = func(a, b, c int16) ChunkCoordinate { return ChunkCoordinate{a, b, c} }
	case OrderXZY:
		outer, mid, inner = x, z, y
		assemble = func(a, b, c int16) ChunkCoordinate { return ChunkCoordinate{a, c, b} }
	case OrderYXZ:
		outer, mid, inner = y, x, z
		assemble = func(a, b, c int16) ChunkCoordinate { return ChunkCoordinate{b, a, c} }
	case OrderYZX:
		outer, mid, inner = y, z, x
		assemble = func(a, b, c int16) ChunkCoordinate { return ChunkCoordinate{c, a, b} }
	case OrderZXY:
		outer, mid, inner = z, x, y
		assemble = func(a, b, c int16) ChunkCoordinate { return ChunkCoordinate{b, c, a} }
	default: // OrderZYX
		outer, mid, inner = z, y, x
		assemble = func(a, b, c int16) ChunkCoordinate { return ChunkCoordinate{c, b, a} }
	}

	for a := int32(outer.lo); a < int32(outer.hi); a++ {
		for b := int32(mid.lo); b < int32(mid.hi); b++ {
			for c := int32(inner.lo); c < int32(inner.hi); c++ {
				fn(assemble(int16(a), int16(b), int16(c)))
			}
		}
	}
}

type axisRange struct {
	lo, hi int16
}
