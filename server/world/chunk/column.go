package chunk

import (
	"bytes"

	"github.com/glimmermc/glimmer/server/world/light"
)

// LightBottomY is the extended world bottom the light engine propagates
// against, one section below the block range (spec.md §3.4/§4.5).
const LightBottomY = WorldBottomY - 16

// World vertical range (spec.md §3.4's "e.g. -64..320"). SectionCount is
// the number of 16-voxel chunk sections that span it.
const (
	WorldBottomY  int32 = -64
	WorldTopY     int32 = 320
	SectionCount        = int((WorldTopY - WorldBottomY) / 16)

	// LightSectionCount adds one section below and one above the block
	// range for sky-light propagation headroom (spec.md §3.4).
	LightSectionCount = SectionCount + 2
)

// Column is an ordered stack of chunks spanning the world's vertical
// range plus a heightmap, the per-(cx,cz) unit the world map stores and
// loaders hold references to (spec.md §3.4).
type Column struct {
	X, Z      int32
	sections  [SectionCount]*Chunk
	Heightmap *Heightmap
	Light     *light.Sky
}

// NewColumn returns a column filled with air and the given default
// biome, with its heightmap floored at the world bottom and its sky-light
// array allocated (but not yet initialized; call InitLight once the
// column's terrain has been generated).
func NewColumn(x, z int32, defaultBiome int32) *Column {
	col := &Column{X: x, Z: z, Heightmap: NewHeightmap(WorldBottomY), Light: light.NewSky(LightSectionCount)}
	for i := range col.sections {
		col.sections[i] = NewChunk(defaultBiome)
	}
	return col
}

// lightSource adapts a Column into light.Source, the collaborator the
// light engine needs for block/heightmap lookups (spec.md §4.5/§6.2).
type lightSource struct {
	col           *Column
	isTransparent func(int32) bool
	attenuation   func(int32) uint8
}

func (s lightSource) Block(bx int, y int32, bz int) int32 { return s.col.Block(bx, y, bz) }
func (s lightSource) IsTransparent(state int32) bool      { return s.isTransparent(state) }
func (s lightSource) Attenuation(state int32) uint8        { return s.attenuation(state) }
func (s lightSource) Height(bx, bz int) int32              { return s.col.Heightmap.Get(bx, bz) }

// InitLight seeds the column's sky-light array from its heightmap, per
// spec.md §4.5's initialization pass. Call after InitHeightmap.
func (col *Column) InitLight(isTransparent func(int32) bool, attenuation func(int32) uint8) {
	light.Init(col.Light, lightSource{col, isTransparent, attenuation}, LightBottomY, WorldTopY+16)
}

// PropagateLight re-runs the BFS of spec.md §4.5 from bx,y,bz (typically
// after a block mutation); seeds should include the mutated voxel and its
// six neighbours.
func (col *Column) PropagateLight(isTransparent func(int32) bool, attenuation func(int32) uint8, seeds []struct {
	BX, BZ int
	Y      int32
}) {
	light.Propagate(col.Light, lightSource{col, isTransparent, attenuation}, LightBottomY, seeds)
}

// sectionFor resolves a world y to its section and the section-local y.
func sectionFor(y int32) (idx int, local int, ok bool) {
	if y < WorldBottomY || y >= WorldTopY {
		return 0, 0, false
	}
	rel := y - WorldBottomY
	return int(rel / 16), int(rel % 16), true
}

// Section returns the chunk section at the given section index (0 is the
// bottommost, spanning [WorldBottomY, WorldBottomY+16)).
func (col *Column) Section(idx int) *Chunk {
	if idx < 0 || idx >= SectionCount {
		return nil
	}
	return col.sections[idx]
}

// Block returns the block-state id at local (bx, y, bz), where bx/bz are
// 0..15 within the column and y is an absolute world height.
func (col *Column) Block(bx int, y int32, bz int) int32 {
	idx, local, ok := sectionFor(y)
	if !ok {
		return AirStateID
	}
	return col.sections[idx].Block(bx, local, bz)
}

// SetBlock writes a block-state id and keeps the heightmap in step with
// spec.md §4.5's mutation rules (this does not itself re-propagate
// sky-light; see server/world/light for that).
func (col *Column) SetBlock(bx int, y int32, bz int, state int32, isTransparent func(int32) bool) {
	idx, local, ok := sectionFor(y)
	if !ok {
		return
	}
	col.sections[idx].SetBlock(bx, local, bz, state)

	top := col.Heightmap.Get(bx, bz)
	switch {
	case !isTransparent(state) && y > top:
		col.Heightmap.Set(bx, bz, y)
	case y == top && isTransparent(state):
		col.Heightmap.RecomputeColumn(bx, bz, top-1, WorldBottomY,
			func(yy int32) int32 { return col.Block(bx, yy, bz) }, isTransparent)
	}
}

// InitHeightmap walks every (bx,bz) column downward from the world top
// and records the highest non-transparent y, per spec.md §4.5's
// initialization pass.
func (col *Column) InitHeightmap(isTransparent func(int32) bool) {
	for bx := 0; bx < 16; bx++ {
		for bz := 0; bz < 16; bz++ {
			col.Heightmap.RecomputeColumn(bx, bz, WorldTopY-1, WorldBottomY,
				func(yy int32) int32 { return col.Block(bx, yy, bz) }, isTransparent)
		}
	}
}

// Encode writes every section in bottom-to-top order followed by the
// heightmap, the payload the world map assembles into a ChunkData packet's
// opaque data field (spec.md §6.2's get_network_chunk_column_data) and,
// unmodified, the on-disk record of spec.md §6.3 ("concatenation of its
// per-chunk ... records followed by the heightmap").
func (col *Column) Encode(buf *bytes.Buffer) {
	for _, c := range col.sections {
		c.Encode(buf)
	}
	col.Heightmap.Encode(buf)
}

// DecodeColumn reads a column written by Encode.
func DecodeColumn(b []byte, x, z int32) (*Column, []byte, error) {
	col := &Column{X: x, Z: z, Light: light.NewSky(LightSectionCount)}
	for i := range col.sections {
		c, rest, err := DecodeChunk(b)
		if err != nil {
			return nil, nil, err
		}
		col.sections[i] = c
		b = rest
	}
	hm, rest, err := DecodeHeightmap(b, WorldBottomY)
	if err != nil {
		return nil, nil, err
	}
	col.Heightmap = hm
	return col, rest, nil
}
