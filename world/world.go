// Package world ties the pieces together into a saved world on disk: a
// manifest identifying the world, the tree-indexed chunk store holding its
// terrain, and a generator pipeline that fills chunks on first access.
//
// The directory layout is
//
//	<dir>/manifest.yaml
//	<dir>/terrain/index.bin
//	<dir>/terrain/chunks.bin
package world

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voxelgrid/chunkstore/chunk"
	"github.com/voxelgrid/chunkstore/gen"
	"github.com/voxelgrid/chunkstore/spatial"
	"github.com/voxelgrid/chunkstore/store"
)

// Options configure a world on first creation. Opening an existing world
// ignores Name and Seed in favor of the stored manifest.
type Options struct {
	// Name of the world. Default: the directory base name.
	Name string

	// Seed for terrain generation.
	Seed int64

	// Logger for diagnostics. Default: a no-op logger.
	Logger *zap.Logger
}

// OrDefault returns a copy of the options with missing fields set to their
// defaults. It can be called on a nil receiver.
func (o *Options) OrDefault(dir string) *Options {
	var oo Options
	if o != nil {
		oo = *o
	}
	if oo.Name == "" {
		oo.Name = filepath.Base(dir)
	}
	if oo.Logger == nil {
		oo.Logger = zap.NewNop()
	}
	return &oo
}

// World is a saved world directory. Methods on World are safe for concurrent
// use once the generator pipeline is set up.
type World struct {
	dir      string
	manifest Manifest
	store    *store.Store
	pipeline *gen.Pipeline
	log      *zap.Logger
}

// Open loads the world stored in dir, creating a fresh one if the directory
// does not hold a world yet.
func Open(dir string, opts *Options) (*World, error) {
	opts = opts.OrDefault(dir)
	log := opts.Logger

	terrainDir := filepath.Join(dir, "terrain")
	if err := os.MkdirAll(terrainDir, 0o755); err != nil {
		return nil, fmt.Errorf("world: create %s: %w", dir, err)
	}

	manifestPath := filepath.Join(dir, "manifest.yaml")
	manifest, err := readManifest(manifestPath)
	switch {
	case os.IsNotExist(err):
		manifest = Manifest{
			FormatVersion: FormatVersion,
			ID:            uuid.New(),
			Name:          opts.Name,
			Seed:          opts.Seed,
			CreatedAt:     time.Now().UTC(),
		}
		if err := writeManifest(manifestPath, manifest); err != nil {
			return nil, err
		}
		log.Info("world created",
			zap.String("dir", dir),
			zap.String("id", manifest.ID.String()),
			zap.Int64("seed", manifest.Seed))
	case err != nil:
		return nil, err
	default:
		log.Info("world opened",
			zap.String("dir", dir),
			zap.String("id", manifest.ID.String()))
	}

	s, err := store.Open(
		filepath.Join(terrainDir, "index.bin"),
		filepath.Join(terrainDir, "chunks.bin"),
		&store.Config{Logger: log},
	)
	if err != nil {
		return nil, err
	}

	return &World{
		dir:      dir,
		manifest: manifest,
		store:    s,
		pipeline: gen.NewPipeline(chunk.NewRegistry(), log),
		log:      log,
	}, nil
}

// Manifest returns the world's identifying metadata.
func (w *World) Manifest() Manifest {
	return w.manifest
}

// Registry returns the block registry the generator pipeline registers into.
func (w *World) Registry() *chunk.Registry {
	return w.pipeline.Registry()
}

// AddGenerator appends a terrain generator. Generators must be added before
// the chunks they should populate are first accessed.
func (w *World) AddGenerator(g gen.Generator) error {
	return w.pipeline.Add(g)
}

// Chunk returns a handle for the chunk at coord, creating and populating it
// through the generator pipeline if it does not exist yet.
func (w *World) Chunk(coord spatial.ChunkCoordinate) (*store.Handle, error) {
	h, err := w.store.Get(coord)
	if err == nil {
		return h, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	h, err = w.store.GetOrCreate(coord)
	if err != nil {
		return nil, err
	}
	var genErr error
	h.Update(func(c *chunk.Chunk) {
		genErr = w.pipeline.Populate(c)
	})
	if genErr != nil {
		return nil, genErr
	}
	if err := w.store.Save(h); err != nil {
		return nil, err
	}
	return h, nil
}

// Block returns the block at a global block coordinate, generating the
// containing chunk if needed.
func (w *World) Block(b spatial.BlockCoordinate) (chunk.BlockID, error) {
	h, err := w.Chunk(b.Chunk())
	if err != nil {
		return 0, err
	}
	var id chunk.BlockID
	h.View(func(c *chunk.Chunk) {
		id = c.BlockAt(b.Local())
	})
	return id, nil
}

// SetBlock stores a block at a global block coordinate and writes the chunk
// through to disk.
func (w *World) SetBlock(b spatial.BlockCoordinate, id chunk.BlockID) error {
	h, err := w.Chunk(b.Chunk())
	if err != nil {
		return err
	}
	h.Update(func(c *chunk.Chunk) {
		c.SetBlockAt(b.Local(), id)
	})
	return w.store.Save(h)
}

// Each calls visit for every chunk in the box spanned by the two corner
// coordinates, far corner exclusive, creating and populating missing chunks
// on the way. Chunks are visited in the given axis order.
func (w *World) Each(first, second spatial.ChunkCoordinate, order spatial.Order, visit func(*store.Handle) error) error {
	var err error
	spatial.RangeFromEndPoints(first, second).Each(order, func(coord spatial.ChunkCoordinate) {
		if err != nil {
			return
		}
		var h *store.Handle
		if h, err = w.Chunk(coord); err != nil {
			return
		}
		err = visit(h)
	})
	return err
}

// Flush forces all buffered terrain data to disk.
func (w *World) Flush() error {
	if err := w.store.SyncChunks(); err != nil {
		return err
	}
	return w.store.Flush()
}

// Close flushes and releases the world. The World must not be used after
// Close returns.
func (w *World) Close() error {
	return w.store.Close()
}
