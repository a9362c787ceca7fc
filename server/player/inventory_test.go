package player

import (
	"testing"

	"github.com/glimmermc/glimmer/server/protocol/packet"
	"github.com/glimmermc/glimmer/server/session"
	"github.com/google/uuid"
)

func TestClickContainerHandlerAppliesChangedSlots(t *testing.T) {
	table := NewInventoryTable()
	id := uuid.New()
	table.Open(id)
	defer table.Close(id)

	s := session.NewDetached(session.PhasePlay, id, "Steve", 1)
	h := ClickContainerHandler{Inventories: table}
	pk := &packet.ClickContainer{
		ChangedSlot: []packet.ChangedSlot{
			{Index: 36, Item: packet.Slot{Present: true, ItemID: 1, Count: 64}},
		},
	}
	if err := h.Handle(pk, s); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	inv, ok := table.get(id)
	if !ok {
		t.Fatalf("inventory missing after Open")
	}
	got, ok := inv.Slot(36)
	if !ok || !got.Present || got.ItemID != 1 || got.Count != 64 {
		t.Fatalf("slot 36 = %+v, ok=%v", got, ok)
	}
}

func TestClickContainerHandlerRejectsMissingInventory(t *testing.T) {
	table := NewInventoryTable()
	s := session.NewDetached(session.PhasePlay, uuid.New(), "Steve", 1)
	h := ClickContainerHandler{Inventories: table}
	if err := h.Handle(&packet.ClickContainer{}, s); err == nil {
		t.Fatalf("expected error for a session with no open inventory")
	}
}

func TestCreativeSlotHandlerWritesSlot(t *testing.T) {
	table := NewInventoryTable()
	id := uuid.New()
	table.Open(id)
	defer table.Close(id)

	s := session.NewDetached(session.PhasePlay, id, "Steve", 1)
	h := CreativeSlotHandler{Inventories: table}
	pk := &packet.SetCreativeModeSlot{SlotIndex: 5, Item: packet.Slot{Present: true, ItemID: 2, Count: 1}}
	if err := h.Handle(pk, s); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	inv, _ := table.get(id)
	got, ok := inv.Slot(5)
	if !ok || got.ItemID != 2 {
		t.Fatalf("slot 5 = %+v, ok=%v", got, ok)
	}
}

func TestCreativeSlotHandlerRejectsOutOfRangeIndex(t *testing.T) {
	table := NewInventoryTable()
	id := uuid.New()
	table.Open(id)
	defer table.Close(id)

	s := session.NewDetached(session.PhasePlay, id, "Steve", 1)
	h := CreativeSlotHandler{Inventories: table}
	pk := &packet.SetCreativeModeSlot{SlotIndex: 999, Item: packet.Slot{Present: true}}
	if err := h.Handle(pk, s); err == nil {
		t.Fatalf("expected error for an out-of-range slot index")
	}
}
