package chunk

import (
	"bytes"
	"testing"
)

func TestChunkBlockCountTracksNonAir(t *testing.T) {
	c := NewChunk(1)
	if c.BlockCount() != 0 {
		t.Fatalf("BlockCount = %d, want 0 for an all-air chunk", c.BlockCount())
	}

	c.SetBlock(1, 2, 3, 9) // dirt
	if c.BlockCount() != 1 {
		t.Fatalf("BlockCount = %d, want 1", c.BlockCount())
	}

	c.SetBlock(1, 2, 3, 33) // stone, still non-air
	if c.BlockCount() != 1 {
		t.Fatalf("BlockCount = %d, want 1 after overwriting a non-air voxel", c.BlockCount())
	}

	c.SetBlock(1, 2, 3, AirStateID)
	if c.BlockCount() != 0 {
		t.Fatalf("BlockCount = %d, want 0 after clearing back to air", c.BlockCount())
	}
}

func TestChunkScenario4FromSpec(t *testing.T) {
	c := NewChunk(1)
	c.SetBlock(0, 0, 0, 0) // still air, no-op relative to the single value below

	// Fill every voxel with dirt (palette index analogue of value 1), then
	// set exactly one voxel to stone, matching the worked example in
	// spec.md §8 scenario 4.
	filled := NewChunk(1)
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			for z := 0; z < 16; z++ {
				filled.SetBlock(x, y, z, 10) // dirt id
			}
		}
	}
	if filled.blocks.kind != KindSingle || filled.blocks.single != 10 {
		t.Fatalf("expected a Single container filled with dirt, got kind=%v single=%d", filled.blocks.kind, filled.blocks.single)
	}

	filled.SetBlock(3, 4, 5, 33) // stone id
	if filled.blocks.kind != KindPaletted {
		t.Fatalf("kind = %v, want KindPaletted after diverging one voxel", filled.blocks.kind)
	}
	if got := filled.blocks.bitsPerEntry(); got != 4 {
		t.Fatalf("bitsPerEntry = %d, want 4", got)
	}
	if got := filled.Block(3, 4, 5); got != 33 {
		t.Fatalf("Block(3,4,5) = %d, want 33", got)
	}
	if filled.BlockCount() != 4096 {
		t.Fatalf("BlockCount = %d, want 4096 (only dirt/stone, no air)", filled.BlockCount())
	}
}

func TestChunkEncodeDecodeRoundTrip(t *testing.T) {
	c := NewChunk(2)
	c.SetBlock(0, 0, 0, 9)
	c.SetBlock(15, 15, 15, 33)

	var buf bytes.Buffer
	c.Encode(&buf)

	decoded, rest, err := DecodeChunk(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeChunk: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("leftover bytes: % x", rest)
	}
	if decoded.BlockCount() != c.BlockCount() {
		t.Fatalf("BlockCount = %d, want %d", decoded.BlockCount(), c.BlockCount())
	}
	if decoded.Block(0, 0, 0) != 9 || decoded.Block(15, 15, 15) != 33 {
		t.Fatalf("decoded blocks do not match encoded values")
	}
}
