package chunk

import (
	"bytes"
	"fmt"

	"github.com/glimmermc/glimmer/server/protocol"
)

// HeightmapEntries is the number of (bx,bz) columns a 16x16 chunk column
// covers.
const HeightmapEntries = 16 * 16

// Heightmap tracks, per (bx,bz), the highest y storing a sky-light-blocking
// block (spec.md §3.4/§4.5). Entries are kept as plain int32s in memory and
// packed into a bit-width that grows lazily as the observed maximum height
// increases, mirroring the paletted container's adaptive bits-per-entry.
type Heightmap struct {
	bottomY int32
	values  [HeightmapEntries]int32
	bits    uint8
}

// NewHeightmap returns a heightmap with every column floored at bottomY
// (spec.md §8's "or the floor of the world if none"). Entries pack as
// offsets from bottomY-1 so the below-floor sentinel RecomputeColumn
// records for an all-transparent column stays representable.
func NewHeightmap(bottomY int32) *Heightmap {
	h := &Heightmap{bottomY: bottomY}
	for i := range h.values {
		h.values[i] = bottomY
	}
	h.growToFit(bottomY)
	return h
}

func heightIndex(bx, bz int) int { return bz*16 + bx }

// Get returns the recorded height for column (bx,bz).
func (h *Heightmap) Get(bx, bz int) int32 {
	return h.values[heightIndex(bx, bz)]
}

// Set records a new height for column (bx,bz), growing the packed bit
// width if y no longer fits the current one.
func (h *Heightmap) Set(bx, bz int, y int32) {
	h.values[heightIndex(bx, bz)] = y
	h.growToFit(y)
}

func (h *Heightmap) growToFit(y int32) {
	if need := bitsForRange(y - h.bottomY + 1); need > h.bits {
		h.bits = need
	}
}

func bitsForRange(v int32) uint8 {
	if v < 0 {
		v = 0
	}
	bits := uint8(0)
	for (int32(1) << bits) <= v {
		bits++
	}
	return bits
}

// Encode writes the heightmap's base bits-per-entry followed by its
// packed long array, the same LSB-first packing the paletted container
// uses for its data array.
func (h *Heightmap) Encode(buf *bytes.Buffer) {
	buf.WriteByte(h.bits)
	if h.bits == 0 {
		protocol.WriteVarInt(buf, 0)
		return
	}
	perLong := 64 / int(h.bits)
	longCount := (HeightmapEntries + perLong - 1) / perLong
	longs := make([]int64, longCount)
	for i, v := range h.values {
		word := i / perLong
		shift := uint(i%perLong) * uint(h.bits)
		longs[word] |= int64(v-h.bottomY+1) << shift
	}
	protocol.WriteArray(buf, longs, func(b *bytes.Buffer, v int64) { protocol.WriteVarLong(b, v) })
}

// DecodeHeightmap reads a heightmap written by Encode.
func DecodeHeightmap(b []byte, bottomY int32) (*Heightmap, []byte, error) {
	if len(b) < 1 {
		return nil, nil, fmt.Errorf("chunk: truncated heightmap")
	}
	bits := b[0]
	b = b[1:]

	h := &Heightmap{bottomY: bottomY, bits: bits}
	longs, rest, err := protocol.ReadArray(b, protocol.ReadVarLong)
	if err != nil {
		return nil, nil, err
	}
	if bits == 0 {
		for i := range h.values {
			h.values[i] = bottomY
		}
		return h, rest, nil
	}
	perLong := 64 / int(bits)
	mask := int64(1)<<uint(bits) - 1
	for i := range h.values {
		word := i / perLong
		if word >= len(longs) {
			h.values[i] = bottomY
			continue
		}
		shift := uint(i%perLong) * uint(bits)
		h.values[i] = bottomY - 1 + int32((longs[word]>>shift)&mask)
	}
	return h, rest, nil
}

// RecomputeColumn walks a single (bx,bz) column of a chunk downward from
// top and records the highest y carrying a non-transparent block, per
// spec.md §4.5's initialization walk. isTransparent is the collaborator
// callback over block-state ids (spec.md §6.2).
func (h *Heightmap) RecomputeColumn(bx, bz int, topY, bottomY int32, blockAt func(y int32) int32, isTransparent func(state int32) bool) {
	for y := topY; y >= bottomY; y-- {
		if !isTransparent(blockAt(y)) {
			h.Set(bx, bz, y)
			return
		}
	}
	h.Set(bx, bz, bottomY-1)
}
