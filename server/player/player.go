// Package player glues the session layer's play-phase lifecycle to the
// world and entity store (spec.md §6.2's player-handler surface): it owns
// the Configuration→Play transition hook, the per-session loader/observer
// wiring, and the play-phase gameplay handlers (movement, chat, block
// interaction, inventory) that server/session's registry leaves to the
// caller. Kept as its own package so server/session never imports
// server/world or server/entity (the same layering server/session's doc
// comments already call for).
package player

import (
	"fmt"
	"sync"

	"github.com/glimmermc/glimmer/server/entity"
	"github.com/glimmermc/glimmer/server/protocol/packet"
	"github.com/glimmermc/glimmer/server/session"
	"github.com/glimmermc/glimmer/server/world"
	"github.com/glimmermc/glimmer/server/world/change"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// PlayerEntityType stands in for the generated entity-type table's
// "minecraft:player" id (spec.md §1 treats that table as an external
// collaborator); any caller with a real table can override it.
var PlayerEntityType int32 = 122

// ViewDistance is the radius, in chunks, of columns a freshly entered
// player loads around spawn. spec.md does not mandate a figure; this
// matches vanilla's default simulation distance.
const ViewDistance = 8

// SpawnPosition is the fixed point every new player is placed at. A real
// deployment would read this from per-world config; spec.md's world
// model has no "spawn point" record of its own to read it from.
var SpawnPosition = mgl64.Vec3{8, 68, 8}

// Manager is the per-server glue holding the shared World, entity Store,
// and ObserverManager every session's play-phase handlers operate
// against, plus the registry of online sessions chat/broadcast needs.
type Manager struct {
	World     *world.World
	Entities  *entity.Store
	Observers *entity.ObserverManager

	DimensionType string
	DimensionName string

	Inventories *InventoryTable

	mu       sync.Mutex
	sessions map[uuid.UUID]*session.Session
}

// NewManager returns a Manager over w/store/obs, defaulting to the
// overworld dimension.
func NewManager(w *world.World, store *entity.Store, obs *entity.ObserverManager) *Manager {
	return &Manager{
		World:         w,
		Entities:      store,
		Observers:     obs,
		DimensionType: "minecraft:overworld",
		DimensionName: "minecraft:overworld",
		Inventories:   NewInventoryTable(),
		sessions:      make(map[uuid.UUID]*session.Session),
	}
}

// OnEnterPlay is installed as session.FinishConfigurationHandler's
// OnEnterPlay hook (spec.md §4.8): it spawns the session's player entity,
// sends the Play Login packet plus the spawn area's chunk snapshot, and
// starts the goroutine fanning world/entity changes into the session's
// outbound queue.
func (m *Manager) OnEnterPlay(s *session.Session) {
	base := entity.Base{Type: PlayerEntityType, Position: SpawnPosition}
	e := entity.NewLiving(entity.Living{Base: base, Health: 20, MaxHealth: 20})
	eid, _ := m.Entities.Spawn(e)
	s.SetEID(eid)

	m.mu.Lock()
	m.sessions[s.UUID()] = s
	m.mu.Unlock()
	s.SetOnClose(m.onDisconnect)
	m.Inventories.Open(s.UUID())

	s.Send(&packet.Login{
		EntityID:       eid,
		DimensionNames: []string{m.DimensionName},
		ViewDistance:   ViewDistance,
		SimulationDist: ViewDistance,
		DimensionType:  m.DimensionType,
		DimensionName:  m.DimensionName,
		GameMode:       1, // creative: game-mode policy is server configuration, not protocol logic
	})

	cx, cz := int32(SpawnPosition[0])>>4, int32(SpawnPosition[2])>>4
	s.Send(&packet.SetCenterChunk{ChunkX: cx, ChunkZ: cz})

	recv := m.World.AddLoader(s.UUID())
	go m.forward(s, eid, recv)

	loaded := columnsAround(cx, cz, ViewDistance)
	m.World.UpdateLoadedChunks(s.UUID(), loaded)
	for _, pos := range loaded {
		if data, ok := m.World.GetNetworkChunkColumnData(pos.X, pos.Z); ok {
			s.Send(&packet.ChunkData{ChunkX: pos.X, ChunkZ: pos.Z, Data: data})
		}
	}

	s.Send(&packet.SynchronizePlayerPosition{
		X: base.Position[0], Y: base.Position[1], Z: base.Position[2],
	})
}

// onDisconnect removes s from the loader/session registries and despawns
// its entity (spec.md §4.7's remove, triggered by the connection closing
// rather than a Play disconnect packet).
func (m *Manager) onDisconnect(s *session.Session) {
	m.mu.Lock()
	delete(m.sessions, s.UUID())
	m.mu.Unlock()

	m.World.RemoveLoader(s.UUID())
	m.Inventories.Close(s.UUID())
	if eid := s.EID(); eid != 0 {
		m.Entities.Remove(eid)
	}
}

// forward drains recv and writes the translated play packets to s until
// recv closes (the loader having been removed) or the session's change
// queue decides to drop them under backpressure (spec.md §5's bounded,
// non-blocking notification channels).
func (m *Manager) forward(s *session.Session, selfEID int32, recv change.Receiver) {
	for c := range recv {
		for _, pk := range changeToPackets(selfEID, c) {
			s.Notify(pk)
		}
	}
}

// columnsAround returns every column in the square of the given radius
// centered on (cx, cz), the loaded-set shape spec.md §4.6's
// update_loaded_chunks expects.
func columnsAround(cx, cz, radius int32) []change.ColumnPos {
	out := make([]change.ColumnPos, 0, (2*radius+1)*(2*radius+1))
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			out = append(out, change.ColumnPos{X: cx + dx, Z: cz + dz})
		}
	}
	return out
}

// Broadcast sends a system chat message to every connected session,
// the behavior spec.md §4.3's chat category names for server-originated
// messages (announcements, command feedback broadcast to all).
func (m *Manager) Broadcast(content string) {
	m.mu.Lock()
	sessions := make([]*session.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	pk := &packet.SystemChatMessage{Content: fmt.Sprintf(`{"text":%q}`, content)}
	for _, s := range sessions {
		s.Send(pk)
	}
}

// RegisterHandlers installs every Play-phase gameplay handler this
// package provides into t (spec.md §4.8's Play phase), completing the
// registration session.DefaultHandlers leaves for its caller.
func (m *Manager) RegisterHandlers(t *session.HandlerTable) {
	t.Register(session.PhasePlay, (&packet.SetPlayerPosition{}).ID(), MovementHandler{Entities: m.Entities})
	t.Register(session.PhasePlay, (&packet.SetPlayerPositionAndRotation{}).ID(), MovementHandler{Entities: m.Entities})
	t.Register(session.PhasePlay, (&packet.SetPlayerRotation{}).ID(), MovementHandler{Entities: m.Entities})
	t.Register(session.PhasePlay, (&packet.SetPlayerOnGround{}).ID(), MovementHandler{Entities: m.Entities})
	t.Register(session.PhasePlay, (&packet.ConfirmTeleportation{}).ID(), ConfirmTeleportHandler{})
	t.Register(session.PhasePlay, (&packet.ChatMessage{}).ID(), ChatHandler{Manager: m})
	t.Register(session.PhasePlay, (&packet.PlayerAction{}).ID(), DiggingHandler{World: m.World})
	t.Register(session.PhasePlay, (&packet.UseItemOn{}).ID(), PlaceBlockHandler{World: m.World})
	t.Register(session.PhasePlay, (&packet.SwingArm{}).ID(), SwingArmHandler{})
	t.Register(session.PhasePlay, (&packet.ClickContainer{}).ID(), ClickContainerHandler{Inventories: m.Inventories})
	t.Register(session.PhasePlay, (&packet.SetCreativeModeSlot{}).ID(), CreativeSlotHandler{Inventories: m.Inventories})
}
