// Package worldgen supplements spec.md §4.6's "load inserts a freshly
// generated column (from a flat-world default when no on-disk source is
// available)" with a concrete generator: a configurable horizontal-layer
// stack loaded from a YAML preset, the same flat-world shape every
// vanilla-compatible server ships as its default world type.
package worldgen

import (
	"fmt"
	"os"

	"github.com/glimmermc/glimmer/server/world/chunk"
	"gopkg.in/yaml.v2"
)

// Layer is one horizontal band of the flat-world stack, [FromY, ToY)
// filled uniformly with State.
type Layer struct {
	FromY int32 `yaml:"from_y"`
	ToY   int32 `yaml:"to_y"`
	State int32 `yaml:"state"`
}

// Preset is the on-disk flat-world configuration (spec.md §9's "static ID
// tables are a given external collaborator" extends naturally to the
// world preset: this package only consumes block-state ids, it never
// names blocks).
type Preset struct {
	Biome  int32   `yaml:"biome"`
	Layers []Layer `yaml:"layers"`
}

// DefaultPreset is the classic flat stack (bedrock, dirt, one
// grass_block cap) using this module's built-in blockstate ids, with the
// grass surface at y=-49.
func DefaultPreset() *Preset {
	return &Preset{
		Biome: 1,
		Layers: []Layer{
			{FromY: chunk.WorldBottomY, ToY: chunk.WorldBottomY + 1, State: 33}, // bedrock
			{FromY: chunk.WorldBottomY + 1, ToY: -49, State: 8},                 // dirt
			{FromY: -49, ToY: -48, State: 9},                                    // grass_block
		},
	}
}

// LoadPreset reads a YAML-encoded Preset from path.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("worldgen: read preset %s: %w", path, err)
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("worldgen: parse preset %s: %w", path, err)
	}
	return &p, nil
}

// Flat generates every column identically from a Preset's layer stack.
// It implements world.Generator.
type Flat struct {
	preset *Preset
}

// NewFlat returns a Flat generator over preset.
func NewFlat(preset *Preset) *Flat {
	return &Flat{preset: preset}
}

// Generate fills a new column with f's layer stack. The caller is
// responsible for the heightmap/light initialization passes that follow
// a generate (spec.md §4.5's init pass), since those depend on the full
// column and are better run once than per-layer.
func (f *Flat) Generate(cx, cz int32) *chunk.Column {
	col := chunk.NewColumn(cx, cz, f.preset.Biome)
	for _, layer := range f.preset.Layers {
		from, to := layer.FromY, layer.ToY
		if from < chunk.WorldBottomY {
			from = chunk.WorldBottomY
		}
		if to > chunk.WorldTopY {
			to = chunk.WorldTopY
		}
		for y := from; y < to; y++ {
			idx := int((y - chunk.WorldBottomY) / 16)
			local := int((y - chunk.WorldBottomY) % 16)
			section := col.Section(idx)
			for bx := 0; bx < 16; bx++ {
				for bz := 0; bz < 16; bz++ {
					section.SetBlock(bx, local, bz, layer.State)
				}
			}
		}
	}
	return col
}
