// Package light implements the sky-light engine of spec.md §4.5: per-section
// bit-packed nibble arrays, heightmap-seeded initialization, and the
// heap-driven BFS that keeps transparent voxels within one attenuation step
// of their brightest neighbour. No teacher example models Minecraft sky
// light, so the storage/algorithm shape is authored from spec.md §4.5
// directly; the max-heap propagation queue uses stdlib container/heap, the
// idiomatic Go tool for exactly this "always process the highest-priority
// item next" shape.
package light

import (
	"container/heap"

	"github.com/glimmermc/glimmer/server/protocol"
)

// MaxLevel is the brightest sky-light level (GLOSSARY: "bounded by MAX =
// 15").
const MaxLevel = 15

// SectionNibbles is the byte size of one section's packed nibble array
// (4096 voxels at 4 bits each).
const SectionNibbles = 2048

// Sky holds one chunk column's sky-light section array, spanning the
// block-height sections plus one below and one above for propagation
// headroom (spec.md §3.4/§4.5).
type Sky struct {
	sections [][]byte // each either nil (all-zero, reported via emptyMask) or SectionNibbles bytes
	nonEmpty protocol.BitSet
	empty    protocol.BitSet
}

// NewSky returns a Sky with sectionCount all-empty sections.
func NewSky(sectionCount int) *Sky {
	s := &Sky{sections: make([][]byte, sectionCount)}
	for i := range s.sections {
		s.empty.Set(i)
	}
	return s
}

func nibbleIndex(local int) (byteIdx int, high bool) {
	return local / 2, local%2 == 1
}

func getNibble(b []byte, local int) uint8 {
	if b == nil {
		return 0
	}
	idx, high := nibbleIndex(local)
	if high {
		return b[idx] >> 4
	}
	return b[idx] & 0x0F
}

func setNibble(b []byte, local int, v uint8) {
	idx, high := nibbleIndex(local)
	if high {
		b[idx] = (b[idx] & 0x0F) | (v << 4)
	} else {
		b[idx] = (b[idx] & 0xF0) | (v & 0x0F)
	}
}

// localIndex mirrors the paletted container's data_position convention
// (spec.md §4.4 step 1), scoped to one 16x16x16 section.
func localIndex(bx, sy, bz int) int { return sy*256 + bz*16 + bx }

// Get returns the sky-light level at section sectionIdx, local (bx,sy,bz).
func (s *Sky) Get(sectionIdx, bx, sy, bz int) uint8 {
	if sectionIdx < 0 || sectionIdx >= len(s.sections) {
		return 0
	}
	return getNibble(s.sections[sectionIdx], localIndex(bx, sy, bz))
}

// Set writes the sky-light level at section sectionIdx, local (bx,sy,bz),
// allocating the section's backing array on first write and maintaining
// the non-empty/empty mask pair.
func (s *Sky) Set(sectionIdx, bx, sy, bz int, level uint8) {
	if sectionIdx < 0 || sectionIdx >= len(s.sections) {
		return
	}
	if s.sections[sectionIdx] == nil {
		if level == 0 {
			return
		}
		s.sections[sectionIdx] = make([]byte, SectionNibbles)
		s.nonEmpty.Set(sectionIdx)
		s.empty.Clear(sectionIdx)
	}
	setNibble(s.sections[sectionIdx], localIndex(bx, sy, bz), level)
}

// Masks reports the non-empty/empty section bitmasks (spec.md §4.5's
// light_mask/empty_light_mask pair). The two are always complementary over
// len(s.sections) per the invariant in spec.md §4.5.
func (s *Sky) Masks() (nonEmpty, empty protocol.BitSet) {
	return s.nonEmpty, s.empty
}

// Arrays returns the packed nibble arrays of every non-empty section, in
// ascending section order, the payload a LightUpdate packet carries
// alongside Masks().
func (s *Sky) Arrays() [][]byte {
	out := make([][]byte, 0, len(s.sections))
	for _, sec := range s.sections {
		if sec != nil {
			out = append(out, sec)
		}
	}
	return out
}

// Source is the collaborator a column gives the light engine: block
// lookups, the transparency/attenuation table (spec.md §6.2), and the
// heightmap the engine seeds from.
type Source interface {
	Block(bx int, y int32, bz int) int32
	IsTransparent(state int32) bool
	Attenuation(state int32) uint8
	Height(bx, bz int) int32
}

// Init sets every voxel above a column's heightmap to MaxLevel and leaves
// the rest at zero, per spec.md §4.5's initialization pass ("every voxel
// above this is set to max sky-light; every voxel below has sky-light
// initially 0"). bottomY is the world's extended bottom (one section below
// the block range); topY is the extended top.
func Init(s *Sky, src Source, bottomY, topY int32) {
	for bx := 0; bx < 16; bx++ {
		for bz := 0; bz < 16; bz++ {
			top := src.Height(bx, bz)
			for y := topY - 1; y > top; y-- {
				setAbsolute(s, bottomY, bx, y, bz, MaxLevel)
			}
		}
	}
}

func sectionAndLocalY(bottomY, y int32) (sectionIdx, localY int) {
	rel := y - bottomY
	return int(rel / 16), int(rel % 16)
}

func setAbsolute(s *Sky, bottomY int32, bx int, y int32, bz int, level uint8) {
	sec, ly := sectionAndLocalY(bottomY, y)
	s.Set(sec, bx, ly, bz, level)
}

func getAbsolute(s *Sky, bottomY int32, bx int, y int32, bz int) uint8 {
	sec, ly := sectionAndLocalY(bottomY, y)
	return s.Get(sec, bx, ly, bz)
}

// voxel names one (bx, y, bz) position within a column for the propagation
// queue; bx/bz stay within 0..15 (cross-column propagation is out of scope
// for this single-column engine, per DESIGN.md).
type voxel struct {
	bx, bz int
	y      int32
}

// queue is a max-heap of pending voxels keyed by the sky-light level they
// were enqueued to propagate from, per spec.md §4.5's "max-heap keyed by y
// (higher first)" (read here as "higher level first", the form that keeps
// the BFS from re-visiting a voxel after a brighter source has already
// set it).
type queueItem struct {
	voxel
	level uint8
}

type maxHeap []queueItem

func (h maxHeap) Len() int            { return len(h) }
func (h maxHeap) Less(i, j int) bool  { return h[i].level > h[j].level }
func (h maxHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x interface{}) { *h = append(*h, x.(queueItem)) }
func (h *maxHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Propagate runs the BFS of spec.md §4.5 from the given seed voxels
// (typically the mutated voxel and its six neighbours), pushing light
// outward while it strictly increases a neighbour's level. bottomY is the
// same extended-bottom coordinate Init uses.
func Propagate(s *Sky, src Source, bottomY int32, seeds []struct {
	BX, BZ int
	Y      int32
}) {
	h := &maxHeap{}
	heap.Init(h)
	for _, sd := range seeds {
		heap.Push(h, queueItem{voxel{sd.BX, sd.BZ, sd.Y}, getAbsolute(s, bottomY, sd.BX, sd.Y, sd.BZ)})
	}

	type delta struct{ dx, dy, dz int32 }
	neighbours := []delta{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}

	for h.Len() > 0 {
		p := heap.Pop(h).(queueItem)
		for _, d := range neighbours {
			nbx, nbz := p.bx+int(d.dx), p.bz+int(d.dz)
			ny := p.y + d.dy
			if nbx < 0 || nbx > 15 || nbz < 0 || nbz > 15 {
				continue
			}
			state := src.Block(nbx, ny, nbz)
			if !src.IsTransparent(state) {
				continue
			}
			atten := src.Attenuation(state)
			inside := ny <= src.Height(nbx, nbz)
			var next uint8
			if inside {
				if p.level == 0 {
					continue
				}
				want := int(p.level) - int(atten) - 1
				if want < 0 {
					continue
				}
				next = uint8(want)
			} else {
				next = MaxLevel
			}
			if next <= getAbsolute(s, bottomY, nbx, ny, nbz) {
				continue
			}
			setAbsolute(s, bottomY, nbx, ny, nbz, next)
			heap.Push(h, queueItem{voxel{nbx, nbz, ny}, next})
		}
	}
}
