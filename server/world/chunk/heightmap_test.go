package chunk

import (
	"bytes"
	"testing"
)

func TestHeightmapDefaultsToFloor(t *testing.T) {
	h := NewHeightmap(-64)
	if got := h.Get(3, 7); got != -64 {
		t.Fatalf("Get = %d, want -64 (floor sentinel)", got)
	}
}

func TestHeightmapGrowsBitsOnDemand(t *testing.T) {
	h := NewHeightmap(-64)
	if h.bits != 1 {
		t.Fatalf("bits = %d, want 1 for a freshly floored heightmap", h.bits)
	}
	h.Set(0, 0, 63) // 128 above the sentinel, needs 8 bits
	if h.bits < 8 {
		t.Fatalf("bits = %d, want >= 8 after recording y=63", h.bits)
	}
}

func TestHeightmapEncodeDecodeRoundTrip(t *testing.T) {
	h := NewHeightmap(-64)
	h.Set(0, 0, 70)
	h.Set(5, 5, -10)
	h.Set(15, 15, 319)

	var buf bytes.Buffer
	h.Encode(&buf)

	decoded, rest, err := DecodeHeightmap(buf.Bytes(), -64)
	if err != nil {
		t.Fatalf("DecodeHeightmap: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("leftover bytes: % x", rest)
	}
	for bx := 0; bx < 16; bx++ {
		for bz := 0; bz < 16; bz++ {
			if got, want := decoded.Get(bx, bz), h.Get(bx, bz); got != want {
				t.Fatalf("Get(%d,%d) = %d, want %d", bx, bz, got, want)
			}
		}
	}
}

func TestHeightmapRecomputeColumnFindsTopmostSolid(t *testing.T) {
	h := NewHeightmap(-64)
	solidAt := map[int32]bool{10: true, 20: true}
	h.RecomputeColumn(0, 0, 63, -64, func(y int32) int32 {
		if solidAt[y] {
			return 1
		}
		return 0
	}, func(state int32) bool { return state == 0 })

	if got := h.Get(0, 0); got != 20 {
		t.Fatalf("Get(0,0) = %d, want 20 (topmost solid voxel)", got)
	}
}

func TestHeightmapSentinelSurvivesRoundTrip(t *testing.T) {
	h := NewHeightmap(-64)
	h.Set(0, 0, 100)
	h.Set(1, 1, -65) // all-transparent column sentinel

	var buf bytes.Buffer
	h.Encode(&buf)
	decoded, _, err := DecodeHeightmap(buf.Bytes(), -64)
	if err != nil {
		t.Fatalf("DecodeHeightmap: %v", err)
	}
	if got := decoded.Get(1, 1); got != -65 {
		t.Fatalf("Get(1,1) = %d, want the -65 sentinel preserved", got)
	}
	if got := decoded.Get(0, 0); got != 100 {
		t.Fatalf("Get(0,0) = %d, want 100", got)
	}
}

func TestHeightmapRecomputeColumnFloorsWhenAllTransparent(t *testing.T) {
	h := NewHeightmap(-64)
	h.RecomputeColumn(0, 0, 63, -64, func(int32) int32 { return 0 }, func(int32) bool { return true })
	if got := h.Get(0, 0); got != -65 {
		t.Fatalf("Get(0,0) = %d, want -65 (one below the floor)", got)
	}
}
