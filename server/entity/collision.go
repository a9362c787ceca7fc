package entity

import "github.com/go-gl/mathgl/mgl64"

// Box is an axis-aligned bounding box, the entity-collision analogue of
// the teacher's per-block-shape cube.BBox composition (server/block/model),
// generalized here to plain solid/non-solid voxel collision rather than a
// catalog of block shapes.
type Box struct {
	Min, Max mgl64.Vec3
}

// NewBox returns the Box spanning the two corners given in any order.
func NewBox(x1, y1, z1, x2, y2, z2 float64) Box {
	b := Box{Min: mgl64.Vec3{x1, y1, z1}, Max: mgl64.Vec3{x2, y2, z2}}
	return b.normalise()
}

func (b Box) normalise() Box {
	for i := 0; i < 3; i++ {
		if b.Min[i] > b.Max[i] {
			b.Min[i], b.Max[i] = b.Max[i], b.Min[i]
		}
	}
	return b
}

// Translate shifts b by delta.
func (b Box) Translate(delta mgl64.Vec3) Box {
	return Box{Min: b.Min.Add(delta), Max: b.Max.Add(delta)}
}

// Extend grows b by delta along each axis delta is non-zero on, stretching
// in the direction of its sign (mirrors cube.BBox.ExtendTowards's shape,
// collapsed to a single vector since entities only ever extend along their
// velocity).
func (b Box) Extend(delta mgl64.Vec3) Box {
	for i := 0; i < 3; i++ {
		if delta[i] > 0 {
			b.Max[i] += delta[i]
		} else {
			b.Min[i] += delta[i]
		}
	}
	return b
}

// Intersects reports whether b and other overlap on every axis.
func (b Box) Intersects(other Box) bool {
	return b.Min[0] < other.Max[0] && b.Max[0] > other.Min[0] &&
		b.Min[1] < other.Max[1] && b.Max[1] > other.Min[1] &&
		b.Min[2] < other.Max[2] && b.Max[2] > other.Min[2]
}

// SolidLookup reports whether the block at the given block coordinate is
// solid for collision purposes.
type SolidLookup func(x, y, z int32) bool

// VoxelBoxes returns a unit Box for every solid voxel inside region,
// scanning each whole block region overlaps (spec.md doesn't name a
// block-shape catalog for the client-facing protocol, so every solid
// block collides as a full unit cube).
func VoxelBoxes(region Box, solid SolidLookup) []Box {
	minX, minY, minZ := int32(floor(region.Min[0])), int32(floor(region.Min[1])), int32(floor(region.Min[2]))
	maxX, maxY, maxZ := int32(floor(region.Max[0])), int32(floor(region.Max[1])), int32(floor(region.Max[2]))

	var boxes []Box
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				if solid(x, y, z) {
					fx, fy, fz := float64(x), float64(y), float64(z)
					boxes = append(boxes, Box{Min: mgl64.Vec3{fx, fy, fz}, Max: mgl64.Vec3{fx + 1, fy + 1, fz + 1}})
				}
			}
		}
	}
	return boxes
}

func floor(v float64) float64 {
	i := float64(int64(v))
	if v < i {
		return i - 1
	}
	return i
}

// ResolveAxis clamps delta, a proposed movement of box along axis (0=X,
// 1=Y, 2=Z), so the swept box never penetrates any block in blocks. The
// other two axes of box are assumed already final for this sweep, matching
// the per-axis sweep-then-clamp order the teacher's liquid/model code
// performs one direction at a time.
func ResolveAxis(box Box, delta float64, axis int, blocks []Box) float64 {
	for _, blk := range blocks {
		if !overlapsOtherAxes(box, blk, axis) {
			continue
		}
		delta = clampAxis(box, blk, delta, axis)
	}
	return delta
}

func overlapsOtherAxes(box, blk Box, axis int) bool {
	for i := 0; i < 3; i++ {
		if i == axis {
			continue
		}
		if box.Min[i] >= blk.Max[i] || box.Max[i] <= blk.Min[i] {
			return false
		}
	}
	return true
}

func clampAxis(box, blk Box, delta float64, axis int) float64 {
	if delta > 0 && box.Max[axis] <= blk.Min[axis] {
		if d := blk.Min[axis] - box.Max[axis]; d < delta {
			return max(d, 0)
		}
	} else if delta < 0 && box.Min[axis] >= blk.Max[axis] {
		if d := blk.Max[axis] - box.Min[axis]; d > delta {
			return min(d, 0)
		}
	}
	return delta
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
