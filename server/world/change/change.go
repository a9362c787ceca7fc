// Package change defines the Change event union of spec.md §3.6, the
// value the world and entity store emit on every mutation and the
// loading manager fans out to subscribed loaders. It is a leaf package
// (no imports of server/world or server/loader) so both can depend on it
// without forming the cycle spec.md §9 warns about.
package change

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/glimmermc/glimmer/server/blockstate"
	"github.com/glimmermc/glimmer/server/protocol"
	"github.com/google/uuid"
)

// ColumnPos names a chunk column by its (cx, cz) coordinate, the key the
// world map, the loading manager, and the entity store's chunk index all
// share (spec.md §3.4/§4.6/§4.7).
type ColumnPos struct{ X, Z int32 }

// Change is a discriminated union (spec.md §3.6, "a discriminated value
// produced by world mutations"); Go has no sum-type construct, so each
// variant is its own type and the unexported marker method seals the set
// the way a tagged union would in a language that has one.
type Change interface {
	change()
	// Column reports which chunk column this change should be routed to
	// by the loading manager's fan-out (spec.md §4.6).
	Column() ColumnPos
}

// BlockChange reports a single block mutation.
type BlockChange struct {
	Pos   protocol.Position
	State blockstate.BlockWithState
}

func (BlockChange) change() {}
func (c BlockChange) Column() ColumnPos {
	return ColumnPos{X: c.Pos.X >> 4, Z: c.Pos.Z >> 4}
}

// EntitySpawned reports a newly spawned entity, carrying everything a
// SpawnEntity play packet needs.
type EntitySpawned struct {
	EID      int32
	UUID     uuid.UUID
	Type     int32
	Position mgl64.Vec3
	Pitch    float32
	Yaw      float32
	HeadYaw  float32
	Data     int32
	Velocity mgl64.Vec3
	Metadata []byte
	At       ColumnPos
}

func (EntitySpawned) change()            {}
func (c EntitySpawned) Column() ColumnPos { return c.At }

// EntityDespawned reports an entity leaving the world (spec.md §3.5's
// "notifies observers with a despawn change").
type EntityDespawned struct {
	EID int32
	At  ColumnPos
}

func (EntityDespawned) change()            {}
func (c EntityDespawned) Column() ColumnPos { return c.At }

// EntityMetadata reports a tracked-data change.
type EntityMetadata struct {
	EID      int32
	Metadata []byte
	At       ColumnPos
}

func (EntityMetadata) change()            {}
func (c EntityMetadata) Column() ColumnPos { return c.At }

// EntityPosition reports a position change; At is the entity's column
// *after* the move, so the fan-out always targets the column a loader
// needs to be holding to see it.
type EntityPosition struct {
	EID      int32
	Position mgl64.Vec3
	At       ColumnPos
}

func (EntityPosition) change()            {}
func (c EntityPosition) Column() ColumnPos { return c.At }

// EntityVelocity reports a velocity change.
type EntityVelocity struct {
	EID      int32
	Velocity mgl64.Vec3
	At       ColumnPos
}

func (EntityVelocity) change()            {}
func (c EntityVelocity) Column() ColumnPos { return c.At }

// EntityPitch reports a look-direction change.
type EntityPitch struct {
	EID     int32
	Pitch   float32
	Yaw     float32
	HeadYaw float32
	At      ColumnPos
}

func (EntityPitch) change()            {}
func (c EntityPitch) Column() ColumnPos { return c.At }

// Receiver is the read-only handle World::add_loader returns (spec.md
// §6.2); a loader drains it and translates each Change into the play
// packets its session sends.
type Receiver = <-chan Change
