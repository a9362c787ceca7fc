// Package blockstate stubs the external collaborator spec.md §6.2 names:
// Block::from_state_id, Block::is_transparent, Block::light_absorption,
// and BlockWithState's companion lookups. The real tables are generated at
// build time from a versioned JSON source (spec.md §9's "Global identifier
// tables" note) and are out of this specification's scope (spec.md §1);
// this package gives the rest of the module a concrete, small in-memory
// stand-in so the chunk/light/world packages have something to call.
package blockstate

import "sync"

// AirStateID mirrors chunk.AirStateID; kept independent here so this
// package has no dependency on server/world/chunk.
const AirStateID int32 = 0

// Block is the per-block-type data the generated table would otherwise
// provide: whether it blocks sky light, and how much light it absorbs when
// it does not.
type Block struct {
	Name           string
	Transparent    bool
	LightAbsorption uint8
}

// BlockWithState pairs a block-state id with the Block it resolves to,
// mirroring the collaborator interface of spec.md §6.2
// (BlockWithState::from_state_id / block_state_id / block_id).
type BlockWithState struct {
	StateID int32
	Block   Block
}

var (
	mu      sync.RWMutex
	byState = map[int32]Block{
		AirStateID: {Name: "minecraft:air", Transparent: true, LightAbsorption: 0},
	}
	defaultStateID int32
)

// Register installs a block-state id's collaborator data. Production
// deployments call this once at startup from the generated table; tests
// and the flat-world generator call it directly for the handful of
// block-states they exercise.
func Register(stateID int32, b Block) {
	mu.Lock()
	defer mu.Unlock()
	byState[stateID] = b
}

// FromStateID resolves a block-state id to its Block, per spec.md §6.2's
// Block::from_state_id. Unknown ids are reported absent rather than
// defaulting to air, so a caller can distinguish "unregistered" from
// "registered as air".
func FromStateID(stateID int32) (Block, bool) {
	mu.RLock()
	defer mu.RUnlock()
	b, ok := byState[stateID]
	return b, ok
}

// WithStateFromStateID implements BlockWithState::from_state_id.
func WithStateFromStateID(stateID int32) (BlockWithState, bool) {
	b, ok := FromStateID(stateID)
	if !ok {
		return BlockWithState{}, false
	}
	return BlockWithState{StateID: stateID, Block: b}, true
}

// BlockStateID implements BlockWithState::block_state_id.
func (w BlockWithState) BlockStateID() (int32, bool) { return w.StateID, true }

// BlockID implements BlockWithState::block_id (the state-independent base
// id; this stub treats every state as its own block, so the two coincide).
func (w BlockWithState) BlockID() int32 { return w.StateID }

// DefaultStateID implements Block::default_state_id for the world
// generator's seed block (air, id 0, unless a caller Registers another
// default via SetDefaultStateID).
func DefaultStateID() int32 {
	mu.RLock()
	defer mu.RUnlock()
	return defaultStateID
}

// SetDefaultStateID overrides the id DefaultStateID reports.
func SetDefaultStateID(id int32) {
	mu.Lock()
	defer mu.Unlock()
	defaultStateID = id
}

// IsTransparent reports whether a block-state blocks sky light, per
// spec.md §4.5's is_transparent collaborator. An unregistered id is
// treated as opaque, the conservative default (no light leaks through
// data the server has no information about).
func IsTransparent(stateID int32) bool {
	b, ok := FromStateID(stateID)
	return ok && b.Transparent
}

// LightAbsorption reports a block-state's attenuation, per spec.md §4.5's
// attenuation collaborator ("defaults to 0 for fully transparent blocks
// and is block-state-dependent otherwise").
func LightAbsorption(stateID int32) uint8 {
	b, ok := FromStateID(stateID)
	if !ok {
		return 0
	}
	return b.LightAbsorption
}

func init() {
	// A minimal flat-world palette: enough block-states for the
	// worldgen layer stack and the set-block scenarios in spec.md §8.
	Register(1, Block{Name: "minecraft:stone", Transparent: false, LightAbsorption: 15})
	Register(2, Block{Name: "minecraft:granite", Transparent: false, LightAbsorption: 15})
	Register(8, Block{Name: "minecraft:dirt", Transparent: false, LightAbsorption: 15})
	Register(9, Block{Name: "minecraft:grass_block", Transparent: false, LightAbsorption: 15})
	Register(33, Block{Name: "minecraft:bedrock", Transparent: false, LightAbsorption: 15})
	Register(95, Block{Name: "minecraft:glass", Transparent: true, LightAbsorption: 0})
	Register(1000, Block{Name: "minecraft:oak_leaves", Transparent: true, LightAbsorption: 1})
}
