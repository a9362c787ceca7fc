package player

import (
	"fmt"
	"sync"

	"github.com/glimmermc/glimmer/server/protocol/packet"
	"github.com/glimmermc/glimmer/server/session"
	"github.com/google/uuid"
)

// PlayerInventorySize is the slot count of the vanilla player inventory
// window (crafting output + 2x2 crafting grid + armor + main + hotbar +
// offhand), the window ClickContainer's
// WindowID 0 and SetCreativeModeSlot both address.
const PlayerInventorySize = 46

// Inventory is one session's flat slot array. spec.md treats item/recipe
// resolution as an external collaborator (§1); this stores exactly what
// the client sends without validating it against any item table.
type Inventory struct {
	mu    sync.Mutex
	slots [PlayerInventorySize]packet.Slot
}

func (inv *Inventory) set(index int16, s packet.Slot) bool {
	if index < 0 || int(index) >= len(inv.slots) {
		return false
	}
	inv.mu.Lock()
	inv.slots[index] = s
	inv.mu.Unlock()
	return true
}

func (inv *Inventory) get(index int16) (packet.Slot, bool) {
	if index < 0 || int(index) >= len(inv.slots) {
		return packet.Slot{}, false
	}
	inv.mu.Lock()
	s := inv.slots[index]
	inv.mu.Unlock()
	return s, true
}

// InventoryTable holds every connected session's Inventory, keyed by
// player UUID so ClickContainerHandler/CreativeSlotHandler stay stateless
// across sessions, matching the Entities/Observers fields' shared-table
// shape on Manager.
type InventoryTable struct {
	mu    sync.Mutex
	byUUID map[uuid.UUID]*Inventory
}

// NewInventoryTable returns an empty InventoryTable.
func NewInventoryTable() *InventoryTable {
	return &InventoryTable{byUUID: make(map[uuid.UUID]*Inventory)}
}

// Open allocates a fresh Inventory for id, called from OnEnterPlay.
func (t *InventoryTable) Open(id uuid.UUID) {
	t.mu.Lock()
	t.byUUID[id] = &Inventory{}
	t.mu.Unlock()
}

// Close discards id's Inventory, called from onDisconnect.
func (t *InventoryTable) Close(id uuid.UUID) {
	t.mu.Lock()
	delete(t.byUUID, id)
	t.mu.Unlock()
}

func (t *InventoryTable) get(id uuid.UUID) (*Inventory, bool) {
	t.mu.Lock()
	inv, ok := t.byUUID[id]
	t.mu.Unlock()
	return inv, ok
}

// ClickContainerHandler applies ClickContainer's authoritative slot list
// to the session's Inventory. Java edition reports every slot the click
// actually changed in ChangedSlot, unlike Bedrock's action-list
// ItemStackRequest, so there is no transaction/reject-and-resync step to
// replicate here — each entry is just written through.
type ClickContainerHandler struct {
	Inventories *InventoryTable
}

func (h ClickContainerHandler) Handle(p packet.Packet, s *session.Session) error {
	pk, ok := p.(*packet.ClickContainer)
	if !ok {
		return fmt.Errorf("player: click-container handler given %T", p)
	}
	inv, ok := h.Inventories.get(s.UUID())
	if !ok {
		return fmt.Errorf("player: click-container: no inventory open for %s", s.Username())
	}
	for _, changed := range pk.ChangedSlot {
		inv.set(changed.Index, changed.Item)
	}
	return nil
}

// CreativeSlotHandler applies SetCreativeModeSlot, creative mode's direct
// slot write that bypasses ClickContainer's click semantics entirely.
type CreativeSlotHandler struct {
	Inventories *InventoryTable
}

func (h CreativeSlotHandler) Handle(p packet.Packet, s *session.Session) error {
	pk, ok := p.(*packet.SetCreativeModeSlot)
	if !ok {
		return fmt.Errorf("player: creative-slot handler given %T", p)
	}
	inv, ok := h.Inventories.get(s.UUID())
	if !ok {
		return fmt.Errorf("player: creative-slot: no inventory open for %s", s.Username())
	}
	if !inv.set(pk.SlotIndex, pk.Item) {
		return fmt.Errorf("player: creative-slot: index %d out of range", pk.SlotIndex)
	}
	return nil
}

// Slot reports the item currently held in inv's index'th slot, for tests
// and future handlers (e.g. resolving what block PlaceBlockHandler
// should place from the player's held hotbar slot).
func (inv *Inventory) Slot(index int16) (packet.Slot, bool) {
	return inv.get(index)
}
