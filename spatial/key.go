package spatial

import "fmt"

// Key is the Morton (Z-order) encoding of a ChunkCoordinate. Only the low
// KeyBits bits are ever non-zero.
type Key uint64

const (
	// KeyBits is the number of significant bits in a Key (3 axes x 16 bits).
	KeyBits = 48

	// KeyDigits is the number of 16-bit digits a Key decomposes into for
	// index traversal.
	KeyDigits = 3
)

// Each step doubles the gap between consecutive bits of the input until the
// 16 source bits sit 3 positions apart within a 48-bit field.
var spreadSteps = [...]struct {
	shift uint
	mask  uint64
}{
	{32, 0x00FF00000000FFFF},
	{16, 0x00FF0000FF0000FF},
	{8, 0xF00F00F00F00F00F},
	{4, 0x30C30C30C30C30C3},
	{2, 0x9249249249249249},
}

func spreadBits(v int16) uint64 {
	// Two's-complement bits of negative values spread the same as positive
	// ones, so ordering by key is not numeric ordering. Locality is all the
	// encoding promises.
	b := uint64(uint16(v))
	for _, s := range spreadSteps {
		b = (b | b<<s.shift) & s.mask
	}
	return b
}

// PackCoordinate interleaves the bits of the three axes into a single key.
// The mapping is a bijection over the full coordinate space: bit i of x lands
// at key bit 3i+2, y at 3i+1 and z at 3i.
func PackCoordinate(c ChunkCoordinate) Key {
	x := spreadBits(c.X)
	y := spreadBits(c.Y)
	z := spreadBits(c.Z)
	return Key(x<<2 | y<<1 | z)
}

// Digit returns the level-th traversal digit, most significant first.
// level must be in [0, KeyDigits).
func (k Key) Digit(level int) uint16 {
	return uint16(k >> (16 * (KeyDigits - 1 - level)))
}

// Digits returns all traversal digits, most significant first.
func (k Key) Digits() [KeyDigits]uint16 {
	return [KeyDigits]uint16{uint16(k >> 32), uint16(k >> 16), uint16(k)}
}

// String renders the key as fixed-width hex, e.g. for chunk file names.
func (k Key) String() string {
	return fmt.Sprintf("%012X", uint64(k))
}
