package chunk

import (
	"bytes"
	"fmt"
)

// BlockCapacity and BiomeCapacity are the voxel counts of a 16x16x16 chunk
// and its coarser 4x4x4 biome grid (spec.md §3.4).
const (
	BlockCapacity = 16 * 16 * 16
	BiomeCapacity = 4 * 4 * 4
)

// AirStateID is the global block-state id a chunk is seeded with and the
// id block_count excludes, per spec.md §3.4's "block_count equals the
// number of voxels whose block-state is not air" invariant.
const AirStateID int32 = 0

// Chunk is one 16x16x16 section of a chunk column: a block palette, a
// biome palette, and the running non-air voxel tally the wire protocol
// reports alongside them.
type Chunk struct {
	blocks     *PalettedContainer
	biomes     *PalettedContainer
	blockCount int
}

// NewChunk returns a chunk wholly filled with air and a single default
// biome.
func NewChunk(defaultBiome int32) *Chunk {
	return &Chunk{
		blocks: NewSingle(BlockCapacity, BlockBits, AirStateID),
		biomes: NewSingle(BiomeCapacity, BiomeBits, defaultBiome),
	}
}

// dataPosition implements spec.md §4.4 step 1's flat-indexing convention.
func dataPosition(x, y, z int) int {
	return y*256 + z*16 + x
}

// Block returns the block-state id at the given local coordinates.
func (c *Chunk) Block(x, y, z int) int32 {
	return c.blocks.Get(dataPosition(x, y, z))
}

// SetBlock writes a block-state id at the given local coordinates,
// maintaining block_count per spec.md §3.4's invariant.
func (c *Chunk) SetBlock(x, y, z int, state int32) {
	pos := dataPosition(x, y, z)
	old := c.blocks.Get(pos)
	if old == state {
		return
	}
	c.blocks.Set(pos, state)
	if old == AirStateID && state != AirStateID {
		c.blockCount++
	} else if old != AirStateID && state == AirStateID {
		c.blockCount--
	}
}

// Biome returns the biome id covering the given local block coordinates
// (each biome cell spans a 4x4x4 region of blocks).
func (c *Chunk) Biome(x, y, z int) int32 {
	return c.biomes.Get((y/4)*16 + (z/4)*4 + x/4)
}

// SetBiome writes the biome id for the 4x4x4 cell containing the given
// local block coordinates.
func (c *Chunk) SetBiome(x, y, z int, biome int32) {
	c.biomes.Set((y/4)*16+(z/4)*4+x/4, biome)
}

// BlockCount reports the number of non-air voxels in the chunk.
func (c *Chunk) BlockCount() int {
	return c.blockCount
}

// Empty reports whether the chunk has no non-air voxels, the condition
// under which the protocol's chunk-data packet may omit it from the
// client's render distance bookkeeping.
func (c *Chunk) Empty() bool {
	return c.blockCount == 0
}

// Encode writes block_count followed by the block and biome paletted
// containers, the per-chunk record spec.md §4.3/§6.3 both build on.
func (c *Chunk) Encode(buf *bytes.Buffer) {
	buf.WriteByte(byte(c.blockCount >> 8))
	buf.WriteByte(byte(c.blockCount))
	c.blocks.Encode(buf)
	c.biomes.Encode(buf)
}

// DecodeChunk reads a chunk record written by Encode.
func DecodeChunk(b []byte) (*Chunk, []byte, error) {
	if len(b) < 2 {
		return nil, nil, fmt.Errorf("chunk: truncated chunk record")
	}
	count := int(b[0])<<8 | int(b[1])
	b = b[2:]

	blocks, b, err := Decode(b, BlockCapacity, BlockBits)
	if err != nil {
		return nil, nil, err
	}
	biomes, b, err := Decode(b, BiomeCapacity, BiomeBits)
	if err != nil {
		return nil, nil, err
	}
	return &Chunk{blocks: blocks, biomes: biomes, blockCount: count}, b, nil
}
