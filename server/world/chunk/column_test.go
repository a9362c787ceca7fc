package chunk

import (
	"bytes"
	"testing"
)

func isTransparentStub(state int32) bool { return state == AirStateID }

func TestColumnSetBlockRaisesHeightmap(t *testing.T) {
	col := NewColumn(0, 0, 1)
	col.SetBlock(0, -49, 0, 9, isTransparentStub) // grass/dirt analogue

	if got := col.Heightmap.Get(0, 0); got != -49 {
		t.Fatalf("Heightmap.Get(0,0) = %d, want -49", got)
	}
	if got := col.Block(0, -49, 0); got != 9 {
		t.Fatalf("Block(0,-49,0) = %d, want 9", got)
	}
}

func TestColumnSetBlockLowersHeightmapWhenTopClears(t *testing.T) {
	col := NewColumn(0, 0, 1)
	col.SetBlock(0, -49, 0, 9, isTransparentStub)
	col.SetBlock(0, -50, 0, 9, isTransparentStub)

	col.SetBlock(0, -49, 0, AirStateID, isTransparentStub) // scenario 5 of spec.md §8
	if got := col.Heightmap.Get(0, 0); got != -50 {
		t.Fatalf("Heightmap.Get(0,0) = %d, want -50 after clearing the top layer", got)
	}
}

func TestColumnSectionIndexing(t *testing.T) {
	col := NewColumn(1, -1, 1)
	col.SetBlock(5, WorldBottomY, 5, 42, isTransparentStub)
	if got := col.Section(0).Block(5, 0, 5); got != 42 {
		t.Fatalf("bottom section Block = %d, want 42", got)
	}

	col.SetBlock(5, WorldTopY-1, 5, 7, isTransparentStub)
	if got := col.Section(SectionCount - 1).Block(5, 15, 5); got != 7 {
		t.Fatalf("top section Block = %d, want 7", got)
	}
}

func TestColumnEncodeDecodeRoundTrip(t *testing.T) {
	col := NewColumn(2, 3, 1)
	col.SetBlock(0, WorldBottomY, 0, 9, isTransparentStub)

	var buf bytes.Buffer
	col.Encode(&buf)

	decoded, rest, err := DecodeColumn(buf.Bytes(), 2, 3)
	if err != nil {
		t.Fatalf("DecodeColumn: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("leftover bytes: % x", rest)
	}
	if got := decoded.Block(0, WorldBottomY, 0); got != 9 {
		t.Fatalf("decoded Block = %d, want 9", got)
	}
}
