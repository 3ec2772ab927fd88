package store

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/edsrzf/mmap-go"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/voxelgrid/chunkstore/chunk"
	"github.com/voxelgrid/chunkstore/spatial"
)

// Store owns the index file and the chunk file and resolves chunk
// coordinates to payload handles. It is safe for concurrent use.
type Store struct {
	log *zap.Logger

	// File handles and their current lengths. Growth is serialized per file;
	// existing mapped windows stay valid across growth because every window
	// covers a fully allocated record.
	indexMu   sync.Mutex
	indexFile *os.File
	indexSize int64

	chunkMu   sync.Mutex
	chunkFile *os.File
	chunkSize int64

	// allocMu serializes the check-then-insert that links a new node or
	// chunk record into the tree, giving at-most-once allocation per slot.
	allocMu sync.Mutex

	nodes  *cache[int64, *indexNode]
	chunks *cache[spatial.Key, *Handle]

	closed atomic.Bool
}

// Open opens or creates the index file and the chunk file. An empty index
// file gets a single zero-filled root node at offset 0.
func Open(indexPath, chunkPath string, cfg *Config) (*Store, error) {
	cfg = cfg.OrDefault()

	indexFile, err := os.OpenFile(indexPath, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("store: open index file: %w", err)
	}
	chunkFile, err := os.OpenFile(chunkPath, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		indexFile.Close()
		return nil, fmt.Errorf("store: open chunk file: %w", err)
	}

	s := &Store{
		log:       cfg.Logger,
		indexFile: indexFile,
		chunkFile: chunkFile,
		nodes:     newCache[int64, *indexNode](),
		chunks:    newCache[spatial.Key, *Handle](),
	}

	fail := func(err error) (*Store, error) {
		indexFile.Close()
		chunkFile.Close()
		return nil, err
	}

	indexInfo, err := indexFile.Stat()
	if err != nil {
		return fail(fmt.Errorf("store: stat index file: %w", err))
	}
	chunkInfo, err := chunkFile.Stat()
	if err != nil {
		return fail(fmt.Errorf("store: stat chunk file: %w", err))
	}
	s.indexSize = indexInfo.Size()
	s.chunkSize = chunkInfo.Size()

	if s.indexSize == 0 {
		if _, err := s.growIndexFile(); err != nil {
			return fail(err)
		}
	}
	// The root is about to be walked by every lookup; map it now.
	if _, err := s.node(0); err != nil {
		return fail(err)
	}

	s.log.Debug("store opened",
		zap.String("index", indexPath),
		zap.String("chunks", chunkPath),
		zap.Int64("index_bytes", s.indexSize),
		zap.Int64("chunk_bytes", s.chunkSize))
	return s, nil
}

// GetOrCreate returns the payload handle for coord, creating the index chain
// and a zeroed payload record on first access.
func (s *Store) GetOrCreate(coord spatial.ChunkCoordinate) (*Handle, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	key := spatial.PackCoordinate(coord)
	if h, ok := s.chunks.get(key); ok {
		return h, nil
	}
	off, err := s.resolve(key, true)
	if err != nil {
		return nil, err
	}
	return s.loadChunk(key, coord, off)
}

// Get returns the payload handle for coord, or ErrNotFound if any link in
// the index chain is unset. It never creates anything.
func (s *Store) Get(coord spatial.ChunkCoordinate) (*Handle, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	key := spatial.PackCoordinate(coord)
	if h, ok := s.chunks.get(key); ok {
		return h, nil
	}
	off, err := s.resolve(key, false)
	if err != nil {
		return nil, err
	}
	return s.loadChunk(key, coord, off)
}

// Save copies the handle's in-memory blocks into its backing file region.
// Durability still requires SyncChunks.
func (s *Store) Save(h *Handle) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return h.save()
}

// Flush persists every dirty index node to stable storage. Chunk payloads
// are synced separately via SyncChunks.
func (s *Store) Flush() error {
	if s.closed.Load() {
		return ErrClosed
	}
	for _, n := range s.nodes.values() {
		if err := n.flush(); err != nil {
			return err
		}
	}
	s.log.Debug("index flushed", zap.Int("nodes", s.nodes.len()))
	return nil
}

// SyncChunks forces every saved chunk payload to stable storage.
func (s *Store) SyncChunks() error {
	if s.closed.Load() {
		return ErrClosed
	}
	for _, h := range s.chunks.values() {
		if err := h.sync(); err != nil {
			return fmt.Errorf("store: sync chunk: %w", err)
		}
	}
	return nil
}

// Range visits every chunk in the inclusive box from low to high, creating
// chunks that do not exist yet. Coordinates are walked with z varying
// fastest, then x, then y. Returning an error from visit stops the walk.
func (s *Store) Range(low, high spatial.ChunkCoordinate, visit func(*Handle) error) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if low.X > high.X || low.Y > high.Y || low.Z > high.Z {
		return ErrBadRange
	}
	for y := int32(low.Y); y <= int32(high.Y); y++ {
		for x := int32(low.X); x <= int32(high.X); x++ {
			for z := int32(low.Z); z <= int32(high.Z); z++ {
				h, err := s.GetOrCreate(spatial.ChunkCoordinate{X: int16(x), Y: int16(y), Z: int16(z)})
				if err != nil {
					return err
				}
				if err := visit(h); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Close flushes the index, syncs saved chunks and releases every mapping and
// file handle. The store must not be used afterwards.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return ErrClosed
	}
	var err error
	for _, n := range s.nodes.values() {
		err = multierr.Append(err, n.flush())
	}
	for _, h := range s.chunks.values() {
		err = multierr.Append(err, h.sync())
		err = multierr.Append(err, h.unmap())
	}
	for _, n := range s.nodes.values() {
		err = multierr.Append(err, n.unmap())
	}
	err = multierr.Append(err, s.indexFile.Close())
	err = multierr.Append(err, s.chunkFile.Close())
	return err
}

// resolve walks the index chain for key and returns the chunk record offset.
// With create set it allocates missing links; without it, a missing link is
// ErrNotFound.
func (s *Store) resolve(key spatial.Key, create bool) (int64, error) {
	digits := key.Digits()

	nodeOff := int64(0) // root
	for level := 0; level < spatial.KeyDigits-1; level++ {
		n, err := s.node(nodeOff)
		if err != nil {
			return 0, err
		}
		ptr := n.pointer(digits[level])
		if ptr.IsSet() {
			nodeOff = ptr.Offset()
			continue
		}
		if !create {
			return 0, ErrNotFound
		}
		nodeOff, err = s.createChild(n, digits[level])
		if err != nil {
			return 0, err
		}
	}

	n, err := s.node(nodeOff)
	if err != nil {
		return 0, err
	}
	last := key.Digit(spatial.KeyDigits - 1)
	if ptr := n.pointer(last); ptr.IsSet() {
		return ptr.Offset(), nil
	}
	if !create {
		return 0, ErrNotFound
	}

	s.allocMu.Lock()
	defer s.allocMu.Unlock()
	// Someone else may have allocated while we waited for the lock.
	if ptr := n.pointer(last); ptr.IsSet() {
		return ptr.Offset(), nil
	}
	off, err := s.growChunkFile()
	if err != nil {
		return 0, err
	}
	n.setPointer(last, off)
	s.log.Debug("chunk record allocated", zap.Int64("offset", off), zap.Stringer("key", key))
	return off, nil
}

// createChild allocates a node record and links it into parent's slot. The
// record is extended and mapped before the pointer is published, so a reader
// can never follow a pointer to a node that does not fully exist. A failed
// growth leaves the parent untouched.
func (s *Store) createChild(parent *indexNode, digit uint16) (int64, error) {
	s.allocMu.Lock()
	defer s.allocMu.Unlock()
	if ptr := parent.pointer(digit); ptr.IsSet() {
		return ptr.Offset(), nil
	}
	off, err := s.growIndexFile()
	if err != nil {
		return 0, err
	}
	if _, err := s.node(off); err != nil {
		return 0, err
	}
	parent.setPointer(digit, off)
	s.log.Debug("index node allocated", zap.Int64("offset", off))
	return off, nil
}

// node returns the mapped node at off, mapping and caching it on first use.
func (s *Store) node(off int64) (*indexNode, error) {
	return s.nodes.getOrInsert(off, func() (*indexNode, error) {
		return mapNode(s.indexFile, off)
	})
}

// loadChunk maps the payload record at off and caches the handle, so
// repeated lookups of one coordinate share a single handle.
func (s *Store) loadChunk(key spatial.Key, coord spatial.ChunkCoordinate, off int64) (*Handle, error) {
	return s.chunks.getOrInsert(key, func() (*Handle, error) {
		m, err := mmap.MapRegion(s.chunkFile, chunk.PayloadBytes, mmap.RDWR, 0, off)
		if err != nil {
			return nil, fmt.Errorf("store: map chunk at %d: %w", off, err)
		}
		adviseRandom(m)
		c := chunk.New(coord)
		if err := c.DecodeBlocks(m); err != nil {
			m.Unmap()
			return nil, err
		}
		return &Handle{data: c, mem: m, off: off}, nil
	})
}

// growIndexFile extends the index file by one zero-filled node record and
// returns the record's offset. On failure the recorded length is unchanged.
func (s *Store) growIndexFile() (int64, error) {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	off := s.indexSize
	if err := s.indexFile.Truncate(off + NodeBytes); err != nil {
		return 0, fmt.Errorf("store: grow index file: %w", err)
	}
	s.indexSize = off + NodeBytes
	return off, nil
}

// growChunkFile extends the chunk file by one zero-filled payload record and
// returns the record's offset.
func (s *Store) growChunkFile() (int64, error) {
	s.chunkMu.Lock()
	defer s.chunkMu.Unlock()
	off := s.chunkSize
	if err := s.chunkFile.Truncate(off + chunk.PayloadBytes); err != nil {
		return 0, fmt.Errorf("store: grow chunk file: %w", err)
	}
	s.chunkSize = off + chunk.PayloadBytes
	return off, nil
}
