package entity

import (
	"testing"

	"github.com/glimmermc/glimmer/server/world/change"
	"github.com/go-gl/mathgl/mgl64"
)

func newTestStore() *Store {
	return NewStore(NewObserverManager())
}

// checkIndices asserts the invariant that the union of the per-column
// eid sets equals the key set of the entity table, with no eid in two
// columns, and that columnOf agrees with byColumn.
func checkIndices(t *testing.T, s *Store) {
	t.Helper()
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[int32]change.ColumnPos)
	for col, set := range s.byColumn {
		for eid := range set {
			if prev, dup := seen[eid]; dup {
				t.Fatalf("eid %d indexed under both %v and %v", eid, prev, col)
			}
			seen[eid] = col
			if s.columnOf[eid] != col {
				t.Fatalf("columnOf[%d] = %v, byColumn says %v", eid, s.columnOf[eid], col)
			}
			if _, ok := s.byEID[eid]; !ok {
				t.Fatalf("eid %d indexed by column but absent from the entity table", eid)
			}
		}
	}
	if len(seen) != len(s.byEID) {
		t.Fatalf("column index covers %d entities, table holds %d", len(seen), len(s.byEID))
	}
	for id, eid := range s.byUUID {
		e, ok := s.byEID[eid]
		if !ok {
			t.Fatalf("uuid %v maps to absent eid %d", id, eid)
		}
		if e.AsBase().UUID != id {
			t.Fatalf("uuid index disagrees with the entity's own uuid")
		}
	}
}

func TestSpawnAllocatesMonotonically(t *testing.T) {
	s := newTestStore()
	eid1, uuid1 := s.Spawn(NewPlain(Base{Position: mgl64.Vec3{0, 64, 0}}))
	eid2, uuid2 := s.Spawn(NewPlain(Base{Position: mgl64.Vec3{0, 64, 0}}))

	if eid2 <= eid1 {
		t.Fatalf("eids not monotonic: %d then %d", eid1, eid2)
	}
	if uuid1 == uuid2 {
		t.Fatalf("two spawns produced the same uuid")
	}
	checkIndices(t, s)
}

func TestObserveAbsentEntity(t *testing.T) {
	s := newTestStore()
	if _, ok := Observe(s, 42, func(e *Entity) int32 { return e.AsBase().EID }); ok {
		t.Fatalf("Observe on an absent eid should report false")
	}
	if _, ok := Mutate(s, 42, func(e *Entity) (struct{}, ChangeMask) { return struct{}{}, 0 }); ok {
		t.Fatalf("Mutate on an absent eid should report false")
	}
}

func TestMutateReindexesAcrossColumnBoundary(t *testing.T) {
	s := newTestStore()
	eid, _ := s.Spawn(NewPlain(Base{Position: mgl64.Vec3{8, 64, 8}}))

	_, ok := Mutate(s, eid, func(e *Entity) (struct{}, ChangeMask) {
		e.AsBase().Position = mgl64.Vec3{40, 64, -3}
		return struct{}{}, ChangedPosition
	})
	if !ok {
		t.Fatalf("Mutate reported the entity absent")
	}

	s.mu.RLock()
	col := s.columnOf[eid]
	s.mu.RUnlock()
	want := change.ColumnPos{X: 2, Z: -1}
	if col != want {
		t.Fatalf("columnOf = %v, want %v after crossing the boundary", col, want)
	}
	checkIndices(t, s)
}

func TestIndicesConsistentAcrossLifecycle(t *testing.T) {
	s := newTestStore()

	var eids []int32
	for i := 0; i < 8; i++ {
		eid, _ := s.Spawn(NewPlain(Base{Position: mgl64.Vec3{float64(i * 16), 64, 0}}))
		eids = append(eids, eid)
	}
	checkIndices(t, s)

	for _, eid := range eids[:4] {
		Mutate(s, eid, func(e *Entity) (struct{}, ChangeMask) {
			e.AsBase().Position = e.AsBase().Position.Add(mgl64.Vec3{0, 0, 160})
			return struct{}{}, ChangedPosition
		})
	}
	checkIndices(t, s)

	for _, eid := range eids[2:6] {
		s.Remove(eid)
	}
	checkIndices(t, s)

	s.mu.RLock()
	n := len(s.byEID)
	s.mu.RUnlock()
	if n != 4 {
		t.Fatalf("table holds %d entities, want 4", n)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := newTestStore()
	eid, _ := s.Spawn(NewPlain(Base{}))
	s.Remove(eid)
	s.Remove(eid)
	checkIndices(t, s)
}

type recordingTask struct{ cancelled *int }

func (r recordingTask) Cancel() { *r.cancelled++ }

func TestRemoveCancelsTasks(t *testing.T) {
	s := newTestStore()
	eid, _ := s.Spawn(NewPlain(Base{}))

	var cancelled int
	s.InsertTask(eid, "pathfind", recordingTask{&cancelled})
	s.InsertTask(eid, "breathe", recordingTask{&cancelled})
	s.Remove(eid)

	if cancelled != 2 {
		t.Fatalf("cancelled = %d, want both tasks cancelled on remove", cancelled)
	}
}

func TestInsertTaskReplacementCancelsPrevious(t *testing.T) {
	s := newTestStore()
	eid, _ := s.Spawn(NewPlain(Base{}))

	var first, second int
	s.InsertTask(eid, "pathfind", recordingTask{&first})
	s.InsertTask(eid, "pathfind", recordingTask{&second})

	if first != 1 {
		t.Fatalf("replacing a named task should cancel the previous one")
	}
	if second != 0 {
		t.Fatalf("the replacement task must not be cancelled by insertion")
	}
}

func TestObserveEntitiesCollectsColumn(t *testing.T) {
	s := newTestStore()
	a, _ := s.Spawn(NewPlain(Base{Position: mgl64.Vec3{1, 64, 1}}))
	b, _ := s.Spawn(NewPlain(Base{Position: mgl64.Vec3{14, 70, 2}}))
	s.Spawn(NewPlain(Base{Position: mgl64.Vec3{100, 64, 100}})) // different column

	got := ObserveEntities(s, change.ColumnPos{X: 0, Z: 0}, func(e *Entity) (int32, bool) {
		return e.AsBase().EID, true
	})
	if len(got) != 2 {
		t.Fatalf("collected %d entities in column (0,0), want 2", len(got))
	}
	found := map[int32]bool{}
	for _, eid := range got {
		found[eid] = true
	}
	if !found[a] || !found[b] {
		t.Fatalf("collected %v, want exactly {%d, %d}", got, a, b)
	}
}
