package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaggedOffset(t *testing.T) {
	var unset TaggedOffset
	assert.False(t, unset.IsSet())

	// A zero offset is the whole reason the sentinel exists: the very first
	// record in a file lives at offset 0 and must still read as "set".
	zero := TagOffset(0)
	assert.True(t, zero.IsSet())
	assert.Equal(t, int64(0), zero.Offset())

	big := TagOffset(1<<62 + 8192)
	assert.True(t, big.IsSet())
	assert.Equal(t, int64(1<<62+8192), big.Offset())
}
