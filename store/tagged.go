package store

// sentinelBit marks a slot as set. Offsets are at most 63 bits, so the top
// bit is free to distinguish a stored zero offset from an unset slot.
const sentinelBit = uint64(1) << 63

// TaggedOffset is a file offset as stored in an index node slot. The zero
// value means "unset". All sentinel handling lives here; call sites never
// touch the raw bit pattern.
type TaggedOffset uint64

// TagOffset tags a file offset for storage in a slot.
func TagOffset(off int64) TaggedOffset {
	return TaggedOffset(uint64(off) | sentinelBit)
}

// IsSet reports whether the slot holds an offset.
func (t TaggedOffset) IsSet() bool {
	return t != 0
}

// Offset returns the untagged file offset. Only meaningful when IsSet.
func (t TaggedOffset) Offset() int64 {
	return int64(uint64(t) &^ sentinelBit)
}
