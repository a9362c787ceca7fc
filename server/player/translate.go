package player

import (
	"github.com/glimmermc/glimmer/server/protocol/packet"
	"github.com/glimmermc/glimmer/server/world/change"
)

// angleByte packs a float32 degree value into the single signed byte
// vanilla's rotation fields use (256 units per full turn).
func angleByte(degrees float32) uint8 {
	return uint8(int32(degrees*256.0/360.0) & 0xFF)
}

// velocityComponent converts a block-per-tick velocity component to the
// protocol's 1/8000-block fixed-point unit, clamping to int16's range the
// way vanilla's own velocity encoder does for implausible values.
func velocityComponent(v float64) int16 {
	scaled := v * 8000
	if scaled > 32767 {
		return 32767
	}
	if scaled < -32768 {
		return -32768
	}
	return int16(scaled)
}

// changeToPackets translates one world/entity Change into the Play
// packets a loader/observer delivers it as (spec.md §6.2's "world-change
// events that observer channels fan out to affected players, which are
// then re-encoded via C/B/A/D"). selfEID is skipped for entity changes,
// since a player's own movement reaches its client through
// SynchronizePlayerPosition, not the generic entity-update packets.
func changeToPackets(selfEID int32, c change.Change) []packet.Packet {
	switch v := c.(type) {
	case change.BlockChange:
		stateID, _ := v.State.BlockStateID()
		return []packet.Packet{&packet.BlockUpdate{Location: v.Pos, BlockID: stateID}}

	case change.EntitySpawned:
		if v.EID == selfEID {
			return nil
		}
		return []packet.Packet{&packet.SpawnEntity{
			EntityID:   v.EID,
			EntityUUID: v.UUID,
			Type:       v.Type,
			X:          v.Position[0],
			Y:          v.Position[1],
			Z:          v.Position[2],
			Pitch:      v.Pitch,
			Yaw:        v.Yaw,
			HeadYaw:    v.HeadYaw,
			Data:       v.Data,
			VelX:       velocityComponent(v.Velocity[0]),
			VelY:       velocityComponent(v.Velocity[1]),
			VelZ:       velocityComponent(v.Velocity[2]),
		}}

	case change.EntityDespawned:
		if v.EID == selfEID {
			return nil
		}
		return []packet.Packet{&packet.RemoveEntities{EntityIDs: []int32{v.EID}}}

	case change.EntityPosition:
		if v.EID == selfEID {
			return nil
		}
		return []packet.Packet{&packet.TeleportEntity{
			EntityID: v.EID,
			X:        v.Position[0],
			Y:        v.Position[1],
			Z:        v.Position[2],
			OnGround: true,
		}}

	case change.EntityVelocity:
		if v.EID == selfEID {
			return nil
		}
		return []packet.Packet{&packet.SetEntityVelocity{
			EntityID: v.EID,
			VX:       velocityComponent(v.Velocity[0]),
			VY:       velocityComponent(v.Velocity[1]),
			VZ:       velocityComponent(v.Velocity[2]),
		}}

	case change.EntityPitch:
		if v.EID == selfEID {
			return nil
		}
		return []packet.Packet{
			&packet.UpdateEntityRotation{EntityID: v.EID, Yaw: angleByte(v.Yaw), Pitch: angleByte(v.Pitch), OnGround: true},
			&packet.SetHeadRotation{EntityID: v.EID, HeadYaw: angleByte(v.HeadYaw)},
		}

	case change.EntityMetadata:
		// Per-type tracked-data encoding is an external collaborator
		// (spec.md §1); nothing here decodes v.Metadata into wire
		// entries, so there is no well-formed SetEntityMetadata to emit
		// yet (see DESIGN.md's packet-taxonomy entry).
		return nil

	default:
		return nil
	}
}
