// Package chunk implements the paletted block/biome container codec and
// the chunk/column storage it backs (spec.md §3.4/§4.4), following the
// teacher's manual byte-level (non encoding/binary) bit-packing style from
// its own sub-chunk decoder.
package chunk

import (
	"bytes"
	"fmt"

	"github.com/glimmermc/glimmer/server/protocol"
)

// Kind distinguishes the three wire/in-memory representations a
// PalettedContainer may take (spec.md §3.4).
type Kind uint8

const (
	KindSingle Kind = iota
	KindPaletted
	KindRaw
)

// bitsConfig names the (min, max, fallback) triple for a container's
// entry domain — blocks get (4, 8, 15), biomes get (0, 3, 6).
type bitsConfig struct {
	min, max, fallback uint8
}

var (
	BlockBits  = bitsConfig{min: 4, max: 8, fallback: 15}
	BiomeBits  = bitsConfig{min: 0, max: 3, fallback: 6}
)

// PalettedContainer holds one capacity-sized array of entries (4096 for a
// 16³ block container, 64 for a 4³ biome container), encoded as Single,
// Paletted, or Raw per spec.md §4.4.
type PalettedContainer struct {
	capacity int
	cfg      bitsConfig

	kind    Kind
	single  int32
	palette []int32
	counts  []int32
	indexed []uint16 // valid when kind == KindPaletted, one palette index per voxel
	raw     []int32  // valid when kind == KindRaw, one value per voxel
}

// NewSingle builds a container wholly filled with value.
func NewSingle(capacity int, cfg bitsConfig, value int32) *PalettedContainer {
	return &PalettedContainer{capacity: capacity, cfg: cfg, kind: KindSingle, single: value}
}

// Get returns the value at the given flat data_position (spec.md §4.4's
// `by*256 + bz*16 + bx` indexing convention, generalized to capacity).
func (c *PalettedContainer) Get(pos int) int32 {
	switch c.kind {
	case KindSingle:
		return c.single
	case KindPaletted:
		return c.palette[c.indexed[pos]]
	default:
		return c.raw[pos]
	}
}

// Set implements the set-block algorithm of spec.md §4.4 steps 1-7.
func (c *PalettedContainer) Set(pos int, value int32) {
	switch c.kind {
	case KindSingle:
		if value == c.single {
			return
		}
		c.kind = KindPaletted
		c.palette = []int32{c.single, value}
		c.counts = []int32{int32(c.capacity - 1), 1}
		c.indexed = make([]uint16, c.capacity)
		c.indexed[pos] = 1
		return
	case KindRaw:
		c.raw[pos] = value
		return
	}

	old := c.indexed[pos]
	c.counts[old]--
	c.trimTrailingZeros()

	if idx, ok := c.findInPalette(value); ok {
		c.indexed[pos] = uint16(idx)
		c.counts[idx]++
	} else if idx, ok := c.findEmptySlot(); ok {
		c.palette[idx] = value
		c.counts[idx] = 1
		c.indexed[pos] = uint16(idx)
	} else if len(c.palette) <= 255 {
		c.palette = append(c.palette, value)
		c.counts = append(c.counts, 1)
		c.indexed[pos] = uint16(len(c.palette) - 1)
	} else {
		c.convertToRaw()
		c.raw[pos] = value
		return
	}

	if c.nonZeroPaletteEntries() == 1 {
		c.collapseToSingle()
	}
}

func (c *PalettedContainer) findInPalette(value int32) (int, bool) {
	for i, v := range c.palette {
		if v == value && c.counts[i] > 0 {
			return i, true
		}
	}
	return 0, false
}

func (c *PalettedContainer) findEmptySlot() (int, bool) {
	for i, n := range c.counts {
		if n == 0 {
			return i, true
		}
	}
	return 0, false
}

// trimTrailingZeros drops trailing zero-count palette entries, per spec.md
// §4.4 step 2's "shrink the palette by truncating trailing zero-count
// entries". Entries are never removed from the middle since `indexed`
// values reference them positionally.
func (c *PalettedContainer) trimTrailingZeros() {
	n := len(c.counts)
	for n > 0 && c.counts[n-1] == 0 {
		n--
	}
	c.palette = c.palette[:n]
	c.counts = c.counts[:n]
}

func (c *PalettedContainer) nonZeroPaletteEntries() int {
	n := 0
	for _, cnt := range c.counts {
		if cnt > 0 {
			n++
		}
	}
	return n
}

func (c *PalettedContainer) collapseToSingle() {
	for i, cnt := range c.counts {
		if cnt > 0 {
			c.kind = KindSingle
			c.single = c.palette[i]
			c.palette = nil
			c.counts = nil
			c.indexed = nil
			return
		}
	}
}

func (c *PalettedContainer) convertToRaw() {
	raw := make([]int32, c.capacity)
	for i, idx := range c.indexed {
		raw[i] = c.palette[idx]
	}
	c.kind = KindRaw
	c.raw = raw
	c.palette = nil
	c.counts = nil
	c.indexed = nil
}

// bitsPerEntry returns the wire bits-per-entry this container currently
// requires to encode, clamped into [cfg.min, cfg.max] and falling back to
// cfg.fallback once the palette outgrows cfg.max.
func (c *PalettedContainer) bitsPerEntry() uint8 {
	switch c.kind {
	case KindSingle:
		return 0
	case KindRaw:
		return c.cfg.fallback
	}
	bits := bitsFor(len(c.palette))
	if bits > c.cfg.max {
		return c.cfg.fallback
	}
	if bits < c.cfg.min {
		bits = c.cfg.min
	}
	return bits
}

func bitsFor(paletteLen int) uint8 {
	if paletteLen <= 1 {
		return 0
	}
	bits := uint8(0)
	for (1 << bits) < paletteLen {
		bits++
	}
	return bits
}

// Encode writes the container's wire form per spec.md §4.4.
func (c *PalettedContainer) Encode(buf *bytes.Buffer) {
	bpe := c.bitsPerEntry()
	buf.WriteByte(bpe)

	switch {
	case bpe == 0:
		protocol.WriteVarInt(buf, c.single)
		protocol.WriteVarInt(buf, 0)
	case bpe <= c.cfg.max:
		protocol.WriteVarInt(buf, int32(len(c.palette)))
		for _, v := range c.palette {
			protocol.WriteVarInt(buf, v)
		}
		writePacked(buf, c.indexed, c.capacity, bpe)
	default:
		writeRawRaw(buf, c.raw, bpe)
	}
}

func writePacked(buf *bytes.Buffer, indexed []uint16, capacity int, bpe uint8) {
	perLong := 64 / int(bpe)
	longCount := (capacity + perLong - 1) / perLong
	longs := make([]int64, longCount)
	for i := 0; i < capacity; i++ {
		word := i / perLong
		shift := uint((i % perLong)) * uint(bpe)
		longs[word] |= int64(indexed[i]) << shift
	}
	protocol.WriteArray(buf, longs, protocol.WriteInt64)
}

func writeRawRaw(buf *bytes.Buffer, raw []int32, bpe uint8) {
	perLong := 64 / int(bpe)
	longCount := (len(raw) + perLong - 1) / perLong
	longs := make([]int64, longCount)
	for i, v := range raw {
		word := i / perLong
		shift := uint((i % perLong)) * uint(bpe)
		longs[word] |= int64(v) << shift
	}
	protocol.WriteArray(buf, longs, protocol.WriteInt64)
}

// Decode reads a container of the given capacity/config from b.
func Decode(b []byte, capacity int, cfg bitsConfig) (*PalettedContainer, []byte, error) {
	if len(b) < 1 {
		return nil, nil, fmt.Errorf("chunk: paletted container: unexpected end of data")
	}
	bpe := b[0]
	b = b[1:]

	if bpe == 0 {
		value, rest, err := protocol.ReadVarInt(b)
		if err != nil {
			return nil, nil, err
		}
		_, rest, err = protocol.ReadVarInt(rest) // empty data array length, always 0
		if err != nil {
			return nil, nil, err
		}
		return NewSingle(capacity, cfg, value), rest, nil
	}

	if bpe <= cfg.max {
		paletteLen, rest, err := protocol.ReadVarInt(b)
		if err != nil {
			return nil, nil, err
		}
		palette := make([]int32, paletteLen)
		for i := range palette {
			palette[i], rest, err = protocol.ReadVarInt(rest)
			if err != nil {
				return nil, nil, err
			}
		}
		longs, rest, err := protocol.ReadArray(rest, protocol.ReadInt64)
		if err != nil {
			return nil, nil, err
		}
		actual := bpe
		if actual < cfg.min {
			actual = cfg.min
		}
		indexed := readPacked(longs, capacity, actual)
		counts := make([]int32, len(palette))
		for _, idx := range indexed {
			counts[idx]++
		}
		return &PalettedContainer{
			capacity: capacity, cfg: cfg, kind: KindPaletted,
			palette: palette, counts: counts, indexed: indexed,
		}, rest, nil
	}

	longs, rest, err := protocol.ReadArray(b, protocol.ReadInt64)
	if err != nil {
		return nil, nil, err
	}
	raw := readRawRaw(longs, capacity, cfg.fallback)
	return &PalettedContainer{capacity: capacity, cfg: cfg, kind: KindRaw, raw: raw}, rest, nil
}

func readPacked(longs []int64, capacity int, bpe uint8) []uint16 {
	perLong := 64 / int(bpe)
	mask := int64(1)<<uint(bpe) - 1
	out := make([]uint16, capacity)
	for i := 0; i < capacity; i++ {
		word := i / perLong
		if word >= len(longs) {
			break
		}
		shift := uint((i % perLong)) * uint(bpe)
		out[i] = uint16((longs[word] >> shift) & mask)
	}
	return out
}

func readRawRaw(longs []int64, capacity int, bpe uint8) []int32 {
	perLong := 64 / int(bpe)
	mask := int64(1)<<uint(bpe) - 1
	out := make([]int32, capacity)
	for i := 0; i < capacity; i++ {
		word := i / perLong
		if word >= len(longs) {
			break
		}
		shift := uint((i % perLong)) * uint(bpe)
		out[i] = int32((longs[word] >> shift) & mask)
	}
	return out
}
