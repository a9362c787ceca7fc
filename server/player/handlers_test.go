package player

import (
	"testing"

	"github.com/glimmermc/glimmer/server/entity"
	"github.com/glimmermc/glimmer/server/protocol"
	"github.com/glimmermc/glimmer/server/protocol/packet"
	"github.com/glimmermc/glimmer/server/session"
	"github.com/glimmermc/glimmer/server/world"
	"github.com/glimmermc/glimmer/server/world/change"
	"github.com/glimmermc/glimmer/server/world/chunk"
	"github.com/glimmermc/glimmer/server/world/worldgen"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

func newTestStore() (*entity.Store, int32) {
	obs := entity.NewObserverManager()
	store := entity.NewStore(obs)
	base := entity.Base{Type: PlayerEntityType, Position: mgl64.Vec3{8, 68, 8}}
	eid, _ := store.Spawn(entity.NewLiving(entity.Living{Base: base, Health: 20, MaxHealth: 20}))
	return store, eid
}

func TestMovementHandlerUpdatesPosition(t *testing.T) {
	store, eid := newTestStore()
	s := session.NewDetached(session.PhasePlay, uuid.New(), "Steve", eid)
	h := MovementHandler{Entities: store}

	if err := h.Handle(&packet.SetPlayerPosition{X: 10, Y: 70, Z: 12, OnGround: true}, s); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	got, ok := entity.Mutate(store, eid, func(e *entity.Entity) (mgl64.Vec3, entity.ChangeMask) {
		return e.AsBase().Position, 0
	})
	if !ok {
		t.Fatalf("entity %d not found", eid)
	}
	want := mgl64.Vec3{10, 70, 12}
	if got != want {
		t.Fatalf("position = %v, want %v", got, want)
	}
}

func TestMovementHandlerRejectsWrongPacket(t *testing.T) {
	store, eid := newTestStore()
	s := session.NewDetached(session.PhasePlay, uuid.New(), "Steve", eid)
	h := MovementHandler{Entities: store}
	if err := h.Handle(&packet.ChatMessage{}, s); err == nil {
		t.Fatalf("expected error for mismatched packet")
	}
}

func TestChatHandlerBroadcastsToAllSessions(t *testing.T) {
	w := world.New(worldgen.NewFlat(worldgen.DefaultPreset()))
	obs := entity.NewObserverManager()
	store := entity.NewStore(obs)
	mgr := NewManager(w, store, obs)

	s := session.NewDetached(session.PhasePlay, uuid.New(), "Steve", 1)
	mgr.mu.Lock()
	mgr.sessions[s.UUID()] = s
	mgr.mu.Unlock()

	h := ChatHandler{Manager: mgr}
	if err := h.Handle(&packet.ChatMessage{Message: "hello"}, s); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	select {
	case pk := <-s.PeekOutbound():
		msg, ok := pk.(*packet.SystemChatMessage)
		if !ok {
			t.Fatalf("got %T, want *packet.SystemChatMessage", pk)
		}
		if msg.Content == "" {
			t.Fatalf("empty chat content")
		}
	default:
		t.Fatalf("expected a queued SystemChatMessage")
	}
}

func TestDiggingHandlerClearsBlockOnFinish(t *testing.T) {
	w := world.New(worldgen.NewFlat(worldgen.DefaultPreset()))
	id := uuid.New()
	w.AddLoader(id)
	w.UpdateLoadedChunks(id, []change.ColumnPos{{X: 0, Z: 0}})
	defer w.RemoveLoader(id)

	h := DiggingHandler{World: w}
	pk := &packet.PlayerAction{Status: diggingComplete, Location: protocol.Position{X: 1, Y: -62, Z: 1}}
	if err := h.Handle(pk, session.NewDetached(session.PhasePlay, uuid.New(), "Steve", 1)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	got, _ := w.GetBlock(pk.Location)
	id32, _ := got.BlockStateID()
	if id32 != 0 {
		t.Fatalf("state = %d, want air (0)", id32)
	}
}

func TestDiggingHandlerIgnoresNonFinishStatus(t *testing.T) {
	w := world.New(worldgen.NewFlat(worldgen.DefaultPreset()))
	id := uuid.New()
	w.AddLoader(id)
	w.UpdateLoadedChunks(id, []change.ColumnPos{{X: 0, Z: 0}})
	defer w.RemoveLoader(id)

	before, _ := w.GetBlock(protocol.Position{X: 1, Y: -62, Z: 1})
	beforeID, _ := before.BlockStateID()

	h := DiggingHandler{World: w}
	pk := &packet.PlayerAction{Status: 0, Location: protocol.Position{X: 1, Y: -62, Z: 1}}
	if err := h.Handle(pk, session.NewDetached(session.PhasePlay, uuid.New(), "Steve", 1)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	after, _ := w.GetBlock(pk.Location)
	afterID, _ := after.BlockStateID()
	if afterID != beforeID {
		t.Fatalf("block changed on a non-finish status: %d -> %d", beforeID, afterID)
	}
}

func TestPlaceBlockHandlerPlacesAdjacentBlock(t *testing.T) {
	w := world.New(worldgen.NewFlat(worldgen.DefaultPreset()))
	id := uuid.New()
	w.AddLoader(id)
	w.UpdateLoadedChunks(id, []change.ColumnPos{{X: 0, Z: 0}})
	defer w.RemoveLoader(id)

	h := PlaceBlockHandler{World: w}
	pk := &packet.UseItemOn{Location: protocol.Position{X: 1, Y: chunk.WorldBottomY, Z: 1}, Face: 1}
	if err := h.Handle(pk, session.NewDetached(session.PhasePlay, uuid.New(), "Steve", 1)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	got, _ := w.GetBlock(protocol.Position{X: 1, Y: chunk.WorldBottomY + 1, Z: 1})
	stateID, _ := got.BlockStateID()
	if stateID != placedBlockStateID {
		t.Fatalf("state = %d, want %d", stateID, placedBlockStateID)
	}
}

func TestPlaceBlockHandlerRejectsBadFace(t *testing.T) {
	w := world.New(worldgen.NewFlat(worldgen.DefaultPreset()))
	h := PlaceBlockHandler{World: w}
	pk := &packet.UseItemOn{Location: protocol.Position{X: 1, Y: chunk.WorldBottomY, Z: 1}, Face: 9}
	if err := h.Handle(pk, session.NewDetached(session.PhasePlay, uuid.New(), "Steve", 1)); err == nil {
		t.Fatalf("expected error for out-of-range face")
	}
}
