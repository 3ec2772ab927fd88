package gen

import "github.com/voxelgrid/chunkstore/chunk"

// FlatWorld fills every chunk below y=0 with a single block type, producing
// an endless flat plain. It is mainly useful for tests and demos.
type FlatWorld struct {
	block chunk.BlockID
}

// NewFlatWorld creates a flat world generator.
func NewFlatWorld() *FlatWorld {
	return &FlatWorld{}
}

func (f *FlatWorld) RegisterBlocks(reg *chunk.Registry) error {
	id, err := reg.Add("abstract_block", "Abstract Block")
	if err != nil {
		// Another generator already claimed the name; share its identifier.
		id, _ = reg.IDByName("abstract_block")
	}
	f.block = id
	return nil
}

func (f *FlatWorld) Populate(c *chunk.Chunk) (Result, error) {
	if c.Coordinate().Y < 0 {
		c.Fill(f.block)
	}
	return Finished, nil
}
