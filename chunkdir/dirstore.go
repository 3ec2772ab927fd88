package chunkdir

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"go.uber.org/zap"

	"github.com/voxelgrid/chunkstore/chunk"
	"github.com/voxelgrid/chunkstore/spatial"
)

// Options configure a DirStore.
type Options struct {
	// The compression codec applied to chunk files.
	// Default: DeflateCompression.
	Compression Compression

	// Logger for diagnostics. Default: a no-op logger.
	Logger *zap.Logger
}

// OrDefault returns a copy of the options with missing fields set to their
// defaults. It can be called on a nil receiver.
func (o *Options) OrDefault() *Options {
	var oo Options
	if o != nil {
		oo = *o
	}
	if !oo.Compression.isValid() {
		oo.Compression = DeflateCompression
	}
	if oo.Logger == nil {
		oo.Logger = zap.NewNop()
	}
	return &oo
}

// DirStore stores chunks as individual files in a single directory.
type DirStore struct {
	dir  string
	opts *Options
	log  *zap.Logger
}

// Open prepares a chunk directory, creating it if necessary.
func Open(dir string, opts *Options) (*DirStore, error) {
	opts = opts.OrDefault()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("chunkdir: create %s: %w", dir, err)
	}
	return &DirStore{dir: dir, opts: opts, log: opts.Logger}, nil
}

// Get reads the chunk stored for coord. It returns ErrNotFound when no file
// exists for that coordinate.
func (d *DirStore) Get(coord spatial.ChunkCoordinate) (*chunk.Chunk, error) {
	key := spatial.PackCoordinate(coord)
	raw, err := os.ReadFile(d.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("chunkdir: read %s: %w", key, err)
	}
	if len(raw) < 1 {
		return nil, errCorruptFile
	}

	var payload []byte
	switch cBitPos := len(raw) - 1; raw[cBitPos] {
	case fileNoCompression:
		payload = raw[:cBitPos]
	case fileSnappyCompression:
		if payload, err = snappy.Decode(nil, raw[:cBitPos]); err != nil {
			return nil, fmt.Errorf("chunkdir: decompress %s: %w", key, err)
		}
	case fileDeflateCompression:
		fr := flate.NewReader(bytes.NewReader(raw[:cBitPos]))
		if payload, err = io.ReadAll(fr); err != nil {
			return nil, fmt.Errorf("chunkdir: decompress %s: %w", key, err)
		}
		if err = fr.Close(); err != nil {
			return nil, fmt.Errorf("chunkdir: decompress %s: %w", key, err)
		}
	default:
		return nil, errBadCompression
	}

	c := chunk.New(coord)
	if err := c.DecodeBlocks(payload); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes the chunk to its file. An existing file is kept as a .backup
// sibling until the replacement has been written in full.
func (d *DirStore) Save(c *chunk.Chunk) error {
	key := spatial.PackCoordinate(c.Coordinate())
	payload := make([]byte, chunk.PayloadBytes)
	if err := c.EncodeBlocks(payload); err != nil {
		return err
	}

	var file []byte
	switch d.opts.Compression {
	case SnappyCompression:
		file = append(snappy.Encode(nil, payload), fileSnappyCompression)
	case DeflateCompression:
		var buf bytes.Buffer
		fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
		if err != nil {
			return fmt.Errorf("chunkdir: compress %s: %w", key, err)
		}
		if _, err = fw.Write(payload); err != nil {
			return fmt.Errorf("chunkdir: compress %s: %w", key, err)
		}
		if err = fw.Close(); err != nil {
			return fmt.Errorf("chunkdir: compress %s: %w", key, err)
		}
		file = append(buf.Bytes(), fileDeflateCompression)
	default:
		file = append(append([]byte(nil), payload...), fileNoCompression)
	}

	final := d.path(key)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, file, 0o644); err != nil {
		return fmt.Errorf("chunkdir: write %s: %w", key, err)
	}
	if _, err := os.Stat(final); err == nil {
		if err := os.Rename(final, final+".backup"); err != nil {
			return fmt.Errorf("chunkdir: backup %s: %w", key, err)
		}
	}
	if err := os.Rename(tmp, final); err != nil {
		return fmt.Errorf("chunkdir: write %s: %w", key, err)
	}

	d.log.Debug("chunk saved", zap.Stringer("key", key), zap.Int("bytes", len(file)))
	return nil
}

// Remove deletes the chunk file and any backup for coord. Removing a chunk
// that was never saved is not an error.
func (d *DirStore) Remove(coord spatial.ChunkCoordinate) error {
	key := spatial.PackCoordinate(coord)
	if err := os.Remove(d.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("chunkdir: remove %s: %w", key, err)
	}
	if err := os.Remove(d.path(key) + ".backup"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("chunkdir: remove %s: %w", key, err)
	}
	return nil
}

// Keys returns the keys of all chunks stored in the directory, in the order
// a directory listing yields them.
func (d *DirStore) Keys() ([]spatial.Key, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("chunkdir: list %s: %w", d.dir, err)
	}

	var keys []spatial.Key
	for _, ent := range entries {
		if ent.IsDir() || filepath.Ext(ent.Name()) != "" {
			continue
		}
		var raw uint64
		if _, err := fmt.Sscanf(ent.Name(), "%012X", &raw); err != nil {
			continue
		}
		keys = append(keys, spatial.Key(raw))
	}
	return keys, nil
}

func (d *DirStore) path(key spatial.Key) string {
	return filepath.Join(d.dir, key.String())
}
