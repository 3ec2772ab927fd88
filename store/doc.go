// Package store persists terrain chunks in two files: an index file holding a
// radix tree over Morton keys, and a chunk file holding fixed-size block
// payloads. Both are accessed through page-aligned memory-mapped windows.
//
// The index file is a sequence of fixed-length node records. Record 0 is the
// root. Each record is NodeCapacity slots of 8 little-endian bytes; slot i is
// either zero, meaning unset, or a file offset tagged with a high sentinel
// bit so that a legitimate offset of zero is still distinguishable from an
// empty slot. A chunk's key decomposes into three 16-bit digits: the first
// two walk node records, the last addresses a record in the chunk file.
//
// The chunk file is a sequence of fixed-length payload records, one
// little-endian uint16 per block position. Records are created zeroed, so a
// chunk that has been created but never filled reads as all air.
//
// Chunks are created lazily, exactly once, and never deleted. Flush persists
// dirty index nodes only; chunk durability is the caller's to request via
// Save and SyncChunks, because the index and the payloads have independent
// durability needs.
package store
