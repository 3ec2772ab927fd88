// Package gen produces terrain for freshly created chunks. Generators are
// chained into a Pipeline: each one either finishes a chunk or hands it to
// the next stage.
package gen

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/voxelgrid/chunkstore/chunk"
)

// Result tells a Pipeline whether a chunk needs further generation stages.
type Result int

const (
	// Finished means the chunk is complete; later generators are skipped.
	Finished Result = iota

	// Continue means the chunk should be passed to the next generator.
	Continue
)

// Generator populates chunks with terrain.
type Generator interface {
	// RegisterBlocks claims the block identifiers the generator needs. It is
	// called once, before the first Populate.
	RegisterBlocks(reg *chunk.Registry) error

	// Populate fills the chunk with terrain. The chunk is initially empty.
	Populate(c *chunk.Chunk) (Result, error)
}

// Pipeline runs a sequence of generators over new chunks.
type Pipeline struct {
	registry   *chunk.Registry
	generators []Generator
	log        *zap.Logger
}

// NewPipeline creates a pipeline that registers blocks in reg. A nil logger
// disables diagnostics.
func NewPipeline(reg *chunk.Registry, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{registry: reg, log: log}
}

// Registry returns the block registry the pipeline registers into.
func (p *Pipeline) Registry() *chunk.Registry {
	return p.registry
}

// Add appends a generator to the pipeline. Generators run in the order they
// were added.
func (p *Pipeline) Add(g Generator) error {
	if err := g.RegisterBlocks(p.registry); err != nil {
		return fmt.Errorf("gen: register blocks: %w", err)
	}
	p.generators = append(p.generators, g)
	return nil
}

// Populate runs the chunk through the generator chain. A generator returning
// Finished stops the chain; Continue hands the chunk to the next one.
func (p *Pipeline) Populate(c *chunk.Chunk) error {
	for _, g := range p.generators {
		res, err := g.Populate(c)
		if err != nil {
			return fmt.Errorf("gen: populate %s: %w", c.Coordinate(), err)
		}
		if res == Finished {
			break
		}
	}
	return nil
}
