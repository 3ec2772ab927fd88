package chunk

import (
	"encoding/binary"
	"errors"
)

// ErrBadLength is returned when a payload buffer is not exactly PayloadBytes.
var ErrBadLength = errors.New("chunk: bad payload length")

// EncodeBlocks writes the block array into dst as little-endian uint16
// values in linear index order. dst must be exactly PayloadBytes long.
func (c *Chunk) EncodeBlocks(dst []byte) error {
	if len(dst) != PayloadBytes {
		return ErrBadLength
	}
	for i, b := range c.blocks {
		binary.LittleEndian.PutUint16(dst[i*BlockBytes:], uint16(b))
	}
	return nil
}

// DecodeBlocks replaces the block array with the payload in src. src must be
// exactly PayloadBytes long.
func (c *Chunk) DecodeBlocks(src []byte) error {
	if len(src) != PayloadBytes {
		return ErrBadLength
	}
	for i := range c.blocks {
		c.blocks[i] = BlockID(binary.LittleEndian.Uint16(src[i*BlockBytes:]))
	}
	return nil
}
