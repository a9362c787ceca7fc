// Package world implements the sharded chunk column map and its public
// operations (spec.md §4.6, component G): get/set block, the
// pre-serialized network payload cache, and the loader/loading-manager
// surface it exposes to player sessions.
package world

import (
	"bytes"
	"encoding/binary"
	"sync"

	"github.com/brentp/intintmap"
	"github.com/cespare/xxhash/v2"
	"github.com/glimmermc/glimmer/server/blockstate"
	"github.com/glimmermc/glimmer/server/loader"
	"github.com/glimmermc/glimmer/server/protocol"
	"github.com/glimmermc/glimmer/server/world/change"
	"github.com/glimmermc/glimmer/server/world/chunk"
	"github.com/glimmermc/glimmer/server/world/storage"
	"github.com/google/uuid"
)

// DefaultShardCount is N in spec.md §3.4's "N shards; chunk column at
// position (cx,cz) lives in shard |cx+cz| mod N".
const DefaultShardCount = 16

// Generator produces a freshly generated column for a chunk position not
// yet present on disk (spec.md §4.6's "load inserts a freshly generated
// column... when no on-disk source is available").
type Generator interface {
	Generate(cx, cz int32) *chunk.Column
}

// entry pairs a live column with its cached network payload; cached is
// invalidated (set to nil) on every SetBlock so GetNetworkChunkColumnData
// never serves a stale ChunkData body.
type entry struct {
	col    *chunk.Column
	cached []byte
}

// shard owns one RWMutex-guarded slice of entries, indexed by packed
// (cx,cz) key through intintmap the way the teacher indexes its
// per-dimension column table, but keyed to this protocol's column
// position instead of Bedrock's.
type shard struct {
	mu      sync.RWMutex
	index   *intintmap.Map
	entries []*entry
	free    []int
}

func newShard() *shard {
	return &shard{index: intintmap.New(64, 0.75)}
}

// packKey hashes (cx,cz) into the int64 key intintmap's table indexes on.
// xxhash rather than the bare bit-concatenation keeps the shard's
// internal table from clustering when columns are loaded along a single
// axis (a long north-south or east-west strip of chunks), the same
// failure mode a naive concatenated key hits.
func packKey(cx, cz int32) int64 {
	var b [8]byte
	binary.BigEndian.PutUint32(b[0:4], uint32(cx))
	binary.BigEndian.PutUint32(b[4:8], uint32(cz))
	return int64(xxhash.Sum64(b[:]))
}

// get returns the entry for key, or nil if absent or previously removed.
// Caller must hold at least a read lock.
func (s *shard) get(key int64) *entry {
	idx, ok := s.index.Get(key)
	if !ok {
		return nil
	}
	return s.entries[idx]
}

// put installs e for key, reusing a freed slot if one exists. Caller
// must hold the write lock.
func (s *shard) put(key int64, e *entry) {
	if idx, ok := s.index.Get(key); ok {
		s.entries[idx] = e
		return
	}
	var idx int64
	if n := len(s.free); n > 0 {
		idx = int64(s.free[n-1])
		s.free = s.free[:n-1]
		s.entries[idx] = e
	} else {
		idx = int64(len(s.entries))
		s.entries = append(s.entries, e)
	}
	s.index.Put(key, idx)
}

// remove clears key's slot and returns the entry that was there, or nil.
// Caller must hold the write lock.
func (s *shard) remove(key int64) *entry {
	idx, ok := s.index.Get(key)
	if !ok {
		return nil
	}
	e := s.entries[idx]
	s.entries[idx] = nil
	s.index.Del(key)
	s.free = append(s.free, int(idx))
	return e
}

// World is the shared chunk column map plus the loading manager built on
// top of it (spec.md §4.6/§6.2).
type World struct {
	shards  []*shard
	gen     Generator
	store   *storage.Store
	loaders *loader.Manager
}

// Option configures New.
type Option func(*World)

// WithShardCount overrides DefaultShardCount.
func WithShardCount(n int) Option {
	return func(w *World) { w.shards = make([]*shard, n) }
}

// WithStore attaches persistence: Load consults it before generating,
// Unload writes the departing column's record to it (spec.md §6.3).
func WithStore(s *storage.Store) Option {
	return func(w *World) { w.store = s }
}

// New returns a World backed by gen for newly-generated columns.
func New(gen Generator, opts ...Option) *World {
	w := &World{gen: gen}
	for _, opt := range opts {
		opt(w)
	}
	if w.shards == nil {
		w.shards = make([]*shard, DefaultShardCount)
	}
	for i := range w.shards {
		w.shards[i] = newShard()
	}
	w.loaders = loader.NewManager(w)
	return w
}

func (w *World) shardFor(cx, cz int32) *shard {
	sum := int64(cx) + int64(cz)
	if sum < 0 {
		sum = -sum
	}
	return w.shards[int(sum%int64(len(w.shards)))]
}

// GetBlock resolves the block-state at pos, per spec.md §6.2's
// World::get_block. An unloaded column yields the registered Air
// sentinel (spec.md §7), with the second return false so a caller that
// does care can tell the two apart.
func (w *World) GetBlock(pos protocol.Position) (blockstate.BlockWithState, bool) {
	cx, cz := pos.X>>4, pos.Z>>4
	s := w.shardFor(cx, cz)

	s.mu.RLock()
	e := s.get(packKey(cx, cz))
	s.mu.RUnlock()
	if e == nil {
		air, _ := blockstate.WithStateFromStateID(blockstate.AirStateID)
		return air, false
	}

	bx, bz := int(pos.X&15), int(pos.Z&15)
	state := e.col.Block(bx, pos.Y, bz)
	return blockstate.WithStateFromStateID(state)
}

type lightSeed = struct {
	BX, BZ int
	Y      int32
}

// neighbourSeeds names the mutated voxel and its in-column six
// neighbours for the light engine's re-propagation pass (spec.md §4.5);
// neighbours that fall outside the column's 16x16 footprint are left for
// a future cross-column light pass (see DESIGN.md).
func neighbourSeeds(bx int, y int32, bz int) []lightSeed {
	seeds := []lightSeed{{bx, bz, y}}
	type delta struct{ dx, dy, dz int32 }
	for _, d := range []delta{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}} {
		nbx, nbz := bx+int(d.dx), bz+int(d.dz)
		if nbx < 0 || nbx > 15 || nbz < 0 || nbz > 15 {
			continue
		}
		seeds = append(seeds, lightSeed{nbx, nbz, y + d.dy})
	}
	return seeds
}

// SetBlock writes a block-state at pos, keeping the column's heightmap
// and sky-light current and emitting a BlockChange to every loader
// holding the affected column (spec.md §6.2's World::set_block,
// §4.5/§4.6). It is a no-op if pos's column is not loaded.
func (w *World) SetBlock(pos protocol.Position, bw blockstate.BlockWithState) {
	cx, cz := pos.X>>4, pos.Z>>4
	s := w.shardFor(cx, cz)

	s.mu.Lock()
	e := s.get(packKey(cx, cz))
	if e == nil {
		s.mu.Unlock()
		return
	}
	bx, bz := int(pos.X&15), int(pos.Z&15)
	stateID, _ := bw.BlockStateID()
	e.col.SetBlock(bx, pos.Y, bz, stateID, blockstate.IsTransparent)
	e.col.PropagateLight(blockstate.IsTransparent, blockstate.LightAbsorption, neighbourSeeds(bx, pos.Y, bz))
	e.cached = nil
	s.mu.Unlock()

	w.loaders.Emit(change.BlockChange{Pos: pos, State: bw})
}

// GetNetworkChunkColumnData returns the pre-serialized ChunkData payload
// for (cx, cz), building and caching it on first request after a load or
// mutation (spec.md §6.2's World::get_network_chunk_column_data).
func (w *World) GetNetworkChunkColumnData(cx, cz int32) ([]byte, bool) {
	s := w.shardFor(cx, cz)

	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.get(packKey(cx, cz))
	if e == nil {
		return nil, false
	}
	if e.cached == nil {
		var buf bytes.Buffer
		e.col.Encode(&buf)
		e.cached = buf.Bytes()
	}
	return e.cached, true
}

// AddLoader registers a new loader with the loading manager (spec.md
// §6.2's World::add_loader).
func (w *World) AddLoader(id uuid.UUID) change.Receiver {
	return w.loaders.AddLoader(id)
}

// RemoveLoader unregisters a loader, unloading any column that loses its
// last holder as a result.
func (w *World) RemoveLoader(id uuid.UUID) {
	w.loaders.RemoveLoader(id)
}

// UpdateLoadedChunks applies loader id's new loaded set (spec.md §6.2's
// World::update_loaded_chunks).
func (w *World) UpdateLoadedChunks(id uuid.UUID, loaded []change.ColumnPos) {
	w.loaders.UpdateLoadedChunks(id, loaded)
}

// Load implements loader.WorldLoader: it returns the already-resident
// column for pos, or else restores it from the store (if attached) or
// generates a fresh one (spec.md §4.6's load policy).
func (w *World) Load(pos change.ColumnPos) *chunk.Column {
	s := w.shardFor(pos.X, pos.Z)

	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.get(packKey(pos.X, pos.Z)); e != nil {
		return e.col
	}

	col := w.restoreOrGenerate(pos.X, pos.Z)
	s.put(packKey(pos.X, pos.Z), &entry{col: col})
	return col
}

func (w *World) restoreOrGenerate(cx, cz int32) *chunk.Column {
	if w.store != nil {
		if data, ok, err := w.store.Get(cx, cz); err == nil && ok {
			if col, _, err := chunk.DecodeColumn(data, cx, cz); err == nil {
				// Sky-light is re-derived rather than persisted (spec.md
				// §6.3 names only the block/biome/heightmap record); the
				// restored heightmap makes this a pure Init, no rewalk.
				col.InitLight(blockstate.IsTransparent, blockstate.LightAbsorption)
				return col
			}
		}
	}
	col := w.gen.Generate(cx, cz)
	col.InitHeightmap(blockstate.IsTransparent)
	col.InitLight(blockstate.IsTransparent, blockstate.LightAbsorption)
	return col
}

// Unload implements loader.WorldLoader: it persists pos's column (if a
// store is attached) and drops it from memory.
func (w *World) Unload(pos change.ColumnPos) {
	s := w.shardFor(pos.X, pos.Z)

	s.mu.Lock()
	e := s.remove(packKey(pos.X, pos.Z))
	s.mu.Unlock()
	if e == nil || w.store == nil {
		return
	}
	var buf bytes.Buffer
	e.col.Encode(&buf)
	_ = w.store.Put(pos.X, pos.Z, buf.Bytes())
}
