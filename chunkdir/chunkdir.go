// Package chunkdir persists chunks as one file per chunk inside a flat
// directory. Files are named after the chunk key in fixed-width hex, so a
// directory listing sorts in key order. Each file holds the encoded block
// payload, optionally compressed, followed by a single codec byte.
//
// Compared to the tree store in package store, the directory layout trades
// lookup speed for simplicity: chunks can be inspected, copied or deleted
// with ordinary file tools.
package chunkdir

import "errors"

const (
	fileDeflateCompression = 0
	fileSnappyCompression  = 1
	fileNoCompression      = 2
)

// ErrNotFound is returned by Get when no file exists for the chunk key.
var ErrNotFound = errors.New("chunkdir: chunk not found")

var (
	errBadCompression = errors.New("chunkdir: bad compression codec")
	errCorruptFile    = errors.New("chunkdir: corrupt chunk file")
)

// Compression is the compression codec applied to chunk files.
type Compression byte

func (c Compression) isValid() bool {
	return c >= DeflateCompression && c <= unknownCompression
}

// Supported compression codecs
const (
	DeflateCompression Compression = iota
	SnappyCompression
	NoCompression
	unknownCompression
)
