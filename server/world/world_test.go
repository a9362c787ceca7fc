package world

import (
	"bytes"
	"testing"

	"github.com/glimmermc/glimmer/server/blockstate"
	"github.com/glimmermc/glimmer/server/protocol"
	"github.com/glimmermc/glimmer/server/world/change"
	"github.com/glimmermc/glimmer/server/world/worldgen"
	"github.com/google/uuid"
)

func newTestWorld() *World {
	return New(worldgen.NewFlat(worldgen.DefaultPreset()), WithShardCount(4))
}

func TestLoadGeneratesAndCachesColumn(t *testing.T) {
	w := newTestWorld()
	pos := change.ColumnPos{X: 0, Z: 0}

	col := w.Load(pos)
	if col == nil {
		t.Fatalf("Load returned nil")
	}
	if got := w.Load(pos); got != col {
		t.Fatalf("second Load returned a different column, want the same cached one")
	}
}

func TestGetSetBlockRoundTrip(t *testing.T) {
	w := newTestWorld()
	loaderID := uuid.New()
	w.AddLoader(loaderID)
	w.UpdateLoadedChunks(loaderID, []change.ColumnPos{{X: 0, Z: 0}})

	pos := protocol.Position{X: 0, Y: -49, Z: 0}
	bw, _ := blockstate.WithStateFromStateID(9)
	w.SetBlock(pos, bw)

	got, ok := w.GetBlock(pos)
	if !ok {
		t.Fatalf("GetBlock reported not found")
	}
	if got.StateID != 9 {
		t.Fatalf("GetBlock = %d, want 9", got.StateID)
	}
}

func TestGetBlockUnloadedReturnsAirSentinel(t *testing.T) {
	w := newTestWorld()
	got, ok := w.GetBlock(protocol.Position{X: 1000, Y: 0, Z: 1000})
	if ok {
		t.Fatalf("ok = true for a column never loaded")
	}
	if got.StateID != blockstate.AirStateID {
		t.Fatalf("StateID = %d, want the air sentinel %d", got.StateID, blockstate.AirStateID)
	}
	if !got.Block.Transparent {
		t.Fatalf("sentinel block is opaque, want the registered air entry")
	}
}

// TestSetBlockHeightmapScenario exercises spec.md §8 scenario 5: clearing the top
// block of a flat world's grass layer drops the heightmap one level.
func TestSetBlockHeightmapScenario(t *testing.T) {
	w := newTestWorld()
	loaderID := uuid.New()
	w.AddLoader(loaderID)
	w.UpdateLoadedChunks(loaderID, []change.ColumnPos{{X: 0, Z: 0}})

	pos := protocol.Position{X: 0, Y: -49, Z: 0} // top of the default preset's grass layer
	before := w.Load(change.ColumnPos{X: 0, Z: 0}).Heightmap.Get(0, 0)
	if before != -49 {
		t.Fatalf("heightmap before clearing = %d, want -49", before)
	}

	w.SetBlock(pos, blockstate.BlockWithState{StateID: blockstate.AirStateID})
	after := w.Load(change.ColumnPos{X: 0, Z: 0}).Heightmap.Get(0, 0)
	if after != -50 {
		t.Fatalf("heightmap after clearing = %d, want -50", after)
	}
}

func TestGetNetworkChunkColumnDataCachesUntilMutation(t *testing.T) {
	w := newTestWorld()
	loaderID := uuid.New()
	w.AddLoader(loaderID)
	w.UpdateLoadedChunks(loaderID, []change.ColumnPos{{X: 0, Z: 0}})

	first, ok := w.GetNetworkChunkColumnData(0, 0)
	if !ok || len(first) == 0 {
		t.Fatalf("GetNetworkChunkColumnData: ok=%v len=%d", ok, len(first))
	}
	second, _ := w.GetNetworkChunkColumnData(0, 0)
	if &first[0] != &second[0] {
		t.Fatalf("second call did not reuse the cached payload")
	}

	bw, _ := blockstate.WithStateFromStateID(1)
	w.SetBlock(protocol.Position{X: 0, Y: 100, Z: 0}, bw)
	third, _ := w.GetNetworkChunkColumnData(0, 0)
	if len(third) == 0 {
		t.Fatalf("payload empty after mutation")
	}
	if bytes.Equal(first, third) {
		t.Fatalf("payload unchanged after mutation, want the cached copy rebuilt")
	}
}

func TestSetBlockEmitsChangeToHoldersOnly(t *testing.T) {
	w := newTestWorld()
	holder, other := uuid.New(), uuid.New()
	chHolder := w.AddLoader(holder)
	chOther := w.AddLoader(other)
	w.UpdateLoadedChunks(holder, []change.ColumnPos{{X: 0, Z: 0}})
	w.UpdateLoadedChunks(other, []change.ColumnPos{{X: 5, Z: 5}})

	bw, _ := blockstate.WithStateFromStateID(1)
	w.SetBlock(protocol.Position{X: 0, Y: 100, Z: 0}, bw)

	select {
	case c := <-chHolder:
		if _, ok := c.(change.BlockChange); !ok {
			t.Fatalf("change = %T, want change.BlockChange", c)
		}
	default:
		t.Fatalf("holder received nothing")
	}
	select {
	case <-chOther:
		t.Fatalf("non-holder received a change")
	default:
	}
}
