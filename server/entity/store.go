package entity

import (
	"math"
	"sync"

	"github.com/glimmermc/glimmer/server/world/change"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// ChangeMask is the bit-set over {position, velocity, pitch, metadata}
// Mutate's callback returns (spec.md §4.7's mutate contract).
type ChangeMask uint8

const (
	ChangedPosition ChangeMask = 1 << iota
	ChangedVelocity
	ChangedPitch
	ChangedMetadata
)

// Task is a cancellable named activity attached to an entity (spec.md
// §3.5's "eid → named tasks" table).
type Task interface {
	Cancel()
}

// Store is the entity table: eid → entity, uuid → eid, chunk-column →
// set<eid>, and eid → named tasks (spec.md §3.5).
type Store struct {
	mu       sync.RWMutex
	byEID    map[int32]*Entity
	byUUID   map[uuid.UUID]int32
	byColumn map[change.ColumnPos]map[int32]struct{}
	columnOf map[int32]change.ColumnPos
	nextEID  int32

	tasksMu sync.Mutex
	tasks   map[int32]map[string]Task

	observers *ObserverManager
}

// NewStore returns an empty Store whose changes fan out through obs.
func NewStore(obs *ObserverManager) *Store {
	return &Store{
		byEID:     make(map[int32]*Entity),
		byUUID:    make(map[uuid.UUID]int32),
		byColumn:  make(map[change.ColumnPos]map[int32]struct{}),
		columnOf:  make(map[int32]change.ColumnPos),
		tasks:     make(map[int32]map[string]Task),
		observers: obs,
	}
}

func columnOfPosition(p mgl64.Vec3) change.ColumnPos {
	return change.ColumnPos{
		X: int32(math.Floor(p[0])) >> 4,
		Z: int32(math.Floor(p[2])) >> 4,
	}
}

// Spawn atomically allocates an eid/uuid pair, inserts e into every
// index, and emits a spawn change to observers subscribed to its
// column (spec.md §4.7's spawn).
func (s *Store) Spawn(e *Entity) (int32, uuid.UUID) {
	base := e.AsBase()

	s.mu.Lock()
	s.nextEID++
	eid := s.nextEID
	id := uuid.New()
	base.EID = eid
	base.UUID = id
	col := columnOfPosition(base.Position)

	s.byEID[eid] = e
	s.byUUID[id] = eid
	if s.byColumn[col] == nil {
		s.byColumn[col] = make(map[int32]struct{})
	}
	s.byColumn[col][eid] = struct{}{}
	s.columnOf[eid] = col
	s.mu.Unlock()

	s.observers.emitColumn(col, change.EntitySpawned{
		EID:      eid,
		UUID:     id,
		Type:     base.Type,
		Position: base.Position,
		Pitch:    base.Pitch,
		Yaw:      base.Yaw,
		HeadYaw:  base.HeadYaw,
		Velocity: base.Velocity,
		Metadata: base.Metadata,
		At:       col,
	})
	return eid, id
}

// Observe applies f to eid's entity under a shared read lock, returning
// (f(entity), true), or the zero value and false if eid is absent
// (spec.md §4.7's observe).
func Observe[R any](s *Store, eid int32, f func(*Entity) R) (R, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byEID[eid]
	if !ok {
		var zero R
		return zero, false
	}
	return f(e), true
}

// ObserveEntities applies f to every entity currently in column, under a
// shared read lock, collecting the results for which f's second return
// is true (spec.md §4.7's observe_entities).
func ObserveEntities[R any](s *Store, column change.ColumnPos, f func(*Entity) (R, bool)) []R {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []R
	for eid := range s.byColumn[column] {
		if r, ok := f(s.byEID[eid]); ok {
			out = append(out, r)
		}
	}
	return out
}

// Mutate applies f to eid's entity under exclusive access; f returns a
// result plus a ChangeMask of what it touched. A position change that
// crosses a chunk-column boundary re-indexes the entity atomically with
// the mutation. For every set bit, the corresponding Change is emitted
// to observers after the lock is released (spec.md §4.7's mutate).
func Mutate[R any](s *Store, eid int32, f func(*Entity) (R, ChangeMask)) (R, bool) {
	s.mu.Lock()
	e, ok := s.byEID[eid]
	if !ok {
		s.mu.Unlock()
		var zero R
		return zero, false
	}
	result, mask := f(e)
	base := e.AsBase()
	newCol := columnOfPosition(base.Position)
	oldCol := s.columnOf[eid]
	if mask&ChangedPosition != 0 && newCol != oldCol {
		if set := s.byColumn[oldCol]; set != nil {
			delete(set, eid)
			if len(set) == 0 {
				delete(s.byColumn, oldCol)
			}
		}
		if s.byColumn[newCol] == nil {
			s.byColumn[newCol] = make(map[int32]struct{})
		}
		s.byColumn[newCol][eid] = struct{}{}
		s.columnOf[eid] = newCol
	}
	s.mu.Unlock()

	s.emitMutation(eid, newCol, base, mask)
	return result, true
}

func (s *Store) emitMutation(eid int32, col change.ColumnPos, base *Base, mask ChangeMask) {
	if mask&ChangedPosition != 0 {
		c := change.EntityPosition{EID: eid, Position: base.Position, At: col}
		s.observers.emitColumn(col, c)
		s.observers.emitEntity(eid, c)
	}
	if mask&ChangedVelocity != 0 {
		c := change.EntityVelocity{EID: eid, Velocity: base.Velocity, At: col}
		s.observers.emitColumn(col, c)
		s.observers.emitEntity(eid, c)
	}
	if mask&ChangedPitch != 0 {
		c := change.EntityPitch{EID: eid, Pitch: base.Pitch, Yaw: base.Yaw, HeadYaw: base.HeadYaw, At: col}
		s.observers.emitColumn(col, c)
		s.observers.emitEntity(eid, c)
	}
	if mask&ChangedMetadata != 0 {
		c := change.EntityMetadata{EID: eid, Metadata: base.Metadata, At: col}
		s.observers.emitColumn(col, c)
		s.observers.emitEntity(eid, c)
	}
}

// Remove detaches eid from every index, cancels its attached tasks, and
// notifies observers with a despawn change (spec.md §3.5/§4.7's remove;
// spec.md §9(c) selects this variant of the removal-semantics question).
func (s *Store) Remove(eid int32) {
	s.mu.Lock()
	e, present := s.byEID[eid]
	col, hadColumn := s.columnOf[eid]
	if present {
		delete(s.byUUID, e.AsBase().UUID)
	}
	if hadColumn {
		if set := s.byColumn[col]; set != nil {
			delete(set, eid)
			if len(set) == 0 {
				delete(s.byColumn, col)
			}
		}
	}
	delete(s.byEID, eid)
	delete(s.columnOf, eid)
	s.mu.Unlock()

	s.cancelTasks(eid)
	if hadColumn {
		c := change.EntityDespawned{EID: eid, At: col}
		s.observers.emitColumn(col, c)
		s.observers.emitEntity(eid, c)
	}
}

// InsertTask attaches a cancellable task to eid; replacing a task with
// the same name cancels the previous one first (spec.md §4.7's
// insert_task).
func (s *Store) InsertTask(eid int32, name string, t Task) {
	s.tasksMu.Lock()
	defer s.tasksMu.Unlock()
	if s.tasks[eid] == nil {
		s.tasks[eid] = make(map[string]Task)
	}
	if prev, ok := s.tasks[eid][name]; ok {
		prev.Cancel()
	}
	s.tasks[eid][name] = t
}

func (s *Store) cancelTasks(eid int32) {
	s.tasksMu.Lock()
	defer s.tasksMu.Unlock()
	for _, t := range s.tasks[eid] {
		t.Cancel()
	}
	delete(s.tasks, eid)
}
