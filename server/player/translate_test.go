package player

import (
	"testing"

	"github.com/glimmermc/glimmer/server/blockstate"
	"github.com/glimmermc/glimmer/server/protocol/packet"
	"github.com/glimmermc/glimmer/server/world/change"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

func TestChangeToPacketsSkipsSelfEntityChanges(t *testing.T) {
	pks := changeToPackets(7, change.EntityPosition{EID: 7, Position: mgl64.Vec3{1, 2, 3}})
	if pks != nil {
		t.Fatalf("expected self-position changes to be suppressed, got %v", pks)
	}
}

func TestChangeToPacketsTranslatesOthersPosition(t *testing.T) {
	pks := changeToPackets(7, change.EntityPosition{EID: 9, Position: mgl64.Vec3{1, 2, 3}})
	if len(pks) != 1 {
		t.Fatalf("len = %d, want 1", len(pks))
	}
	tp, ok := pks[0].(*packet.TeleportEntity)
	if !ok {
		t.Fatalf("got %T, want *packet.TeleportEntity", pks[0])
	}
	if tp.EntityID != 9 || tp.X != 1 || tp.Y != 2 || tp.Z != 3 {
		t.Fatalf("unexpected teleport: %+v", tp)
	}
}

func TestChangeToPacketsTranslatesBlockChange(t *testing.T) {
	bw, ok := blockstate.WithStateFromStateID(1)
	if !ok {
		t.Skip("state 1 not registered")
	}
	pks := changeToPackets(0, change.BlockChange{State: bw})
	if len(pks) != 1 {
		t.Fatalf("len = %d, want 1", len(pks))
	}
	if _, ok := pks[0].(*packet.BlockUpdate); !ok {
		t.Fatalf("got %T, want *packet.BlockUpdate", pks[0])
	}
}

func TestChangeToPacketsTranslatesEntitySpawned(t *testing.T) {
	pks := changeToPackets(0, change.EntitySpawned{EID: 3, UUID: uuid.New(), Type: PlayerEntityType})
	if len(pks) != 1 {
		t.Fatalf("len = %d, want 1", len(pks))
	}
	if _, ok := pks[0].(*packet.SpawnEntity); !ok {
		t.Fatalf("got %T, want *packet.SpawnEntity", pks[0])
	}
}

func TestChangeToPacketsDropsMetadata(t *testing.T) {
	if pks := changeToPackets(0, change.EntityMetadata{EID: 1}); pks != nil {
		t.Fatalf("expected nil, got %v", pks)
	}
}

func TestVelocityComponentClampsToInt16Range(t *testing.T) {
	if got := velocityComponent(100); got != 32767 {
		t.Fatalf("got %d, want 32767", got)
	}
	if got := velocityComponent(-100); got != -32768 {
		t.Fatalf("got %d, want -32768", got)
	}
	if got := velocityComponent(0); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}
