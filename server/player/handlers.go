package player

import (
	"fmt"

	"github.com/glimmermc/glimmer/server/blockstate"
	"github.com/glimmermc/glimmer/server/entity"
	"github.com/glimmermc/glimmer/server/protocol"
	"github.com/glimmermc/glimmer/server/protocol/packet"
	"github.com/glimmermc/glimmer/server/session"
	"github.com/glimmermc/glimmer/server/world"
	"github.com/go-gl/mathgl/mgl64"
)

// MovementHandler applies SetPlayerPosition/AndRotation/Rotation/OnGround
// to the session's entity, the "player position/rotation/look" category
// of spec.md §4.3. It is stateless and shared across sessions, matching
// the packet-specific-value-from-s.EID() idiom session.FinishConfiguration
// Handler's OnEnterPlay callback already establishes.
type MovementHandler struct {
	Entities *entity.Store
}

func (h MovementHandler) Handle(p packet.Packet, s *session.Session) error {
	eid := s.EID()
	switch pk := p.(type) {
	case *packet.SetPlayerPosition:
		entity.Mutate(h.Entities, eid, func(e *entity.Entity) (struct{}, entity.ChangeMask) {
			e.AsBase().Position = mgl64.Vec3{pk.X, pk.Y, pk.Z}
			return struct{}{}, entity.ChangedPosition
		})
	case *packet.SetPlayerPositionAndRotation:
		entity.Mutate(h.Entities, eid, func(e *entity.Entity) (struct{}, entity.ChangeMask) {
			b := e.AsBase()
			b.Position = mgl64.Vec3{pk.X, pk.Y, pk.Z}
			b.Yaw, b.Pitch, b.HeadYaw = pk.Yaw, pk.Pitch, pk.Yaw
			return struct{}{}, entity.ChangedPosition | entity.ChangedPitch
		})
	case *packet.SetPlayerRotation:
		entity.Mutate(h.Entities, eid, func(e *entity.Entity) (struct{}, entity.ChangeMask) {
			b := e.AsBase()
			b.Yaw, b.Pitch, b.HeadYaw = pk.Yaw, pk.Pitch, pk.Yaw
			return struct{}{}, entity.ChangedPitch
		})
	case *packet.SetPlayerOnGround:
		// on-ground state has no wire representation in the change
		// model (spec.md §3.6 tracks position/velocity/pitch/metadata
		// only); nothing to mutate or re-emit.
	default:
		return fmt.Errorf("player: movement handler given %T", p)
	}
	return nil
}

// ConfirmTeleportHandler acknowledges a client's ConfirmTeleportation;
// the server does not currently track pending teleport ids to validate
// against, so this is a no-op ack.
type ConfirmTeleportHandler struct{}

func (ConfirmTeleportHandler) Handle(p packet.Packet, s *session.Session) error {
	if _, ok := p.(*packet.ConfirmTeleportation); !ok {
		return fmt.Errorf("player: confirm-teleport handler given %T", p)
	}
	return nil
}

// ChatHandler relays a ChatMessage to every connected session as a
// SystemChatMessage, the spec.md §4.3 "chat" category's minimal
// server-side behavior (signed chat validation is out of this
// specification's scope — §1 excludes authentication/encryption, and
// chat signing rides on the same key material).
type ChatHandler struct {
	Manager *Manager
}

func (h ChatHandler) Handle(p packet.Packet, s *session.Session) error {
	pk, ok := p.(*packet.ChatMessage)
	if !ok {
		return fmt.Errorf("player: chat handler given %T", p)
	}
	h.Manager.Broadcast(fmt.Sprintf("<%s> %s", s.Username(), pk.Message))
	return nil
}

// SwingArmHandler acknowledges SwingArm; a full implementation would
// fan an EntityAnimation out to nearby observers, but spec.md §3.6's
// change model has no animation variant to carry it through (the packet
// is purely cosmetic).
type SwingArmHandler struct{}

func (SwingArmHandler) Handle(p packet.Packet, s *session.Session) error {
	if _, ok := p.(*packet.SwingArm); !ok {
		return fmt.Errorf("player: swing-arm handler given %T", p)
	}
	return nil
}

// diggingComplete is the PlayerAction status vanilla sends when a
// survival-mode dig finishes; creative-mode clients send it directly on
// the first swing instead of StartDigging+FinishDigging.
const diggingComplete = 2

// DiggingHandler applies a finished dig (spec.md §8 scenario 5's
// set_block-to-Air path) by clearing the targeted block.
type DiggingHandler struct {
	World *world.World
}

func (h DiggingHandler) Handle(p packet.Packet, s *session.Session) error {
	pk, ok := p.(*packet.PlayerAction)
	if !ok {
		return fmt.Errorf("player: digging handler given %T", p)
	}
	if pk.Status != diggingComplete {
		return nil
	}
	air, ok := blockstate.WithStateFromStateID(blockstate.AirStateID)
	if !ok {
		return fmt.Errorf("player: digging: air state %d not registered", blockstate.AirStateID)
	}
	h.World.SetBlock(pk.Location, air)
	return nil
}

// placedBlockStateID stands in for resolving the player's held item to a
// block-state id (spec.md §6.2's Item lookup table is an external
// collaborator, §1); every UseItemOn places this fixed block, enough to
// exercise the set-block/light/observer path end to end.
var placedBlockStateID int32 = 1 // minecraft:stone

// PlaceBlockHandler applies UseItemOn by placing placedBlockStateID
// adjacent to the targeted face, the "block update" category's
// placement half (digging is the removal half, DiggingHandler).
type PlaceBlockHandler struct {
	World *world.World
}

// faceOffsets indexes UseItemOn.Face's six values (down, up, north,
// south, west, east) to the unit offset of the adjacent block.
var faceOffsets = [6]protocol.Position{
	{X: 0, Y: -1, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: -1},
	{X: 0, Y: 0, Z: 1},
	{X: -1, Y: 0, Z: 0},
	{X: 1, Y: 0, Z: 0},
}

func (h PlaceBlockHandler) Handle(p packet.Packet, s *session.Session) error {
	pk, ok := p.(*packet.UseItemOn)
	if !ok {
		return fmt.Errorf("player: place-block handler given %T", p)
	}
	if pk.Face < 0 || int(pk.Face) >= len(faceOffsets) {
		return fmt.Errorf("player: place-block: face %d out of range", pk.Face)
	}
	off := faceOffsets[pk.Face]
	target := protocol.Position{
		X: pk.Location.X + off.X,
		Y: pk.Location.Y + off.Y,
		Z: pk.Location.Z + off.Z,
	}
	bw, ok := blockstate.WithStateFromStateID(placedBlockStateID)
	if !ok {
		return fmt.Errorf("player: place-block: state %d not registered", placedBlockStateID)
	}
	h.World.SetBlock(target, bw)
	return nil
}
