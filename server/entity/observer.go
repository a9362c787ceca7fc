package entity

import (
	"encoding/binary"
	"sync"

	"github.com/glimmermc/glimmer/server/world/change"
	"github.com/google/uuid"
	"github.com/segmentio/fasthash/fnv1a"
	"golang.org/x/exp/maps"
)

// ChangeChannelSize is the bounded per-subscriber channel capacity
// (spec.md §5: "All notification channels are bounded (recommended
// 30-100)").
const ChangeChannelSize = 64

// subscriber is the manager's private record of one subscription; cols
// and entity are kept so Unsubscribe can remove the subscription from
// every index it joined without a full table scan.
type subscriber struct {
	id     uuid.UUID
	ch     chan change.Change
	ticks  bool
	cols   []change.ColumnPos
	entity *int32
}

// NearbyBlocks names a subscription's "nearby-blocks around P within
// radius r" request (spec.md §4.7), expanded into a concrete column set
// at subscribe time.
type NearbyBlocks struct {
	Center change.ColumnPos
	Radius int32
}

// Subscription is the combination of indices a subscriber requests
// (spec.md §4.7: "any combination of {ticks, blocks-in-column C,
// entities-in-column C, nearby-blocks around P within radius r,
// specific-entity E}"). Columns covers both blocks-in-column and
// entities-in-column — the manager does not distinguish them, since
// both are routed by the same column index.
type Subscription struct {
	Ticks   bool
	Columns []change.ColumnPos
	Nearby  *NearbyBlocks
	Entity  *int32
}

// ObserverManager keeps, per index (ticks, column, entity), a mapping to
// the subscribers interested, each guarded by its own read-write lock
// (spec.md §5: "Observer manager uses per-index read-write locks").
type ObserverManager struct {
	ticksMu sync.RWMutex
	ticks   map[uuid.UUID]*subscriber

	columnsMu sync.RWMutex
	columns   map[change.ColumnPos]map[uuid.UUID]*subscriber

	entitiesMu sync.RWMutex
	entities   map[int32]map[uuid.UUID]*subscriber

	subsMu  sync.Mutex
	subs    map[uuid.UUID]*subscriber
	dropped map[uuid.UUID]uint64
}

// NewObserverManager returns an empty ObserverManager.
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		ticks:    make(map[uuid.UUID]*subscriber),
		columns:  make(map[change.ColumnPos]map[uuid.UUID]*subscriber),
		entities: make(map[int32]map[uuid.UUID]*subscriber),
		subs:     make(map[uuid.UUID]*subscriber),
		dropped:  make(map[uuid.UUID]uint64),
	}
}

// columnSet is a hash-bucketed set of ColumnPos, used to deduplicate the
// square ring a NearbyBlocks subscription expands to. fnv1a buckets
// candidates; an exact-equality scan within the bucket resolves any
// collision, so a hash clash never merges two distinct columns.
type columnSet struct {
	buckets map[uint64][]change.ColumnPos
}

func newColumnSet() *columnSet { return &columnSet{buckets: make(map[uint64][]change.ColumnPos)} }

func columnHash(p change.ColumnPos) uint64 {
	var b [8]byte
	binary.BigEndian.PutUint32(b[0:4], uint32(p.X))
	binary.BigEndian.PutUint32(b[4:8], uint32(p.Z))
	return fnv1a.HashBytes64(b[:])
}

func (s *columnSet) addIfAbsent(p change.ColumnPos) bool {
	h := columnHash(p)
	for _, existing := range s.buckets[h] {
		if existing == p {
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], p)
	return true
}

// expandNearby turns a center+radius into the deduplicated square of
// columns it covers (spec.md §4.7: "nearby-blocks expands to a set of
// chunk columns at subscription time").
func expandNearby(n NearbyBlocks) []change.ColumnPos {
	seen := newColumnSet()
	var out []change.ColumnPos
	for dx := -n.Radius; dx <= n.Radius; dx++ {
		for dz := -n.Radius; dz <= n.Radius; dz++ {
			pos := change.ColumnPos{X: n.Center.X + dx, Z: n.Center.Z + dz}
			if seen.addIfAbsent(pos) {
				out = append(out, pos)
			}
		}
	}
	return out
}

// Subscribe registers sub and returns the subscriber's id and change
// receiver.
func (m *ObserverManager) Subscribe(sub Subscription) (uuid.UUID, change.Receiver) {
	id := uuid.New()
	cols := append([]change.ColumnPos{}, sub.Columns...)
	if sub.Nearby != nil {
		cols = append(cols, expandNearby(*sub.Nearby)...)
	}
	s := &subscriber{
		id:     id,
		ch:     make(chan change.Change, ChangeChannelSize),
		ticks:  sub.Ticks,
		cols:   cols,
		entity: sub.Entity,
	}

	m.subsMu.Lock()
	m.subs[id] = s
	m.subsMu.Unlock()

	if s.ticks {
		m.ticksMu.Lock()
		m.ticks[id] = s
		m.ticksMu.Unlock()
	}
	if len(s.cols) > 0 {
		m.columnsMu.Lock()
		for _, c := range s.cols {
			if m.columns[c] == nil {
				m.columns[c] = make(map[uuid.UUID]*subscriber)
			}
			m.columns[c][id] = s
		}
		m.columnsMu.Unlock()
	}
	if s.entity != nil {
		m.entitiesMu.Lock()
		if m.entities[*s.entity] == nil {
			m.entities[*s.entity] = make(map[uuid.UUID]*subscriber)
		}
		m.entities[*s.entity][id] = s
		m.entitiesMu.Unlock()
	}
	return id, s.ch
}

// Unsubscribe removes id from every index it joined and closes its
// channel.
func (m *ObserverManager) Unsubscribe(id uuid.UUID) {
	m.subsMu.Lock()
	s, ok := m.subs[id]
	delete(m.subs, id)
	delete(m.dropped, id)
	m.subsMu.Unlock()
	if !ok {
		return
	}

	if s.ticks {
		m.ticksMu.Lock()
		delete(m.ticks, id)
		m.ticksMu.Unlock()
	}
	if len(s.cols) > 0 {
		m.columnsMu.Lock()
		for _, c := range s.cols {
			if set := m.columns[c]; set != nil {
				delete(set, id)
				if len(set) == 0 {
					delete(m.columns, c)
				}
			}
		}
		m.columnsMu.Unlock()
	}
	if s.entity != nil {
		m.entitiesMu.Lock()
		if set := m.entities[*s.entity]; set != nil {
			delete(set, id)
			if len(set) == 0 {
				delete(m.entities, *s.entity)
			}
		}
		m.entitiesMu.Unlock()
	}
	close(s.ch)
}

func (m *ObserverManager) emitColumn(pos change.ColumnPos, c change.Change) {
	m.columnsMu.RLock()
	set := m.columns[pos]
	subs := make([]*subscriber, 0, len(set))
	for _, s := range set {
		subs = append(subs, s)
	}
	m.columnsMu.RUnlock()
	m.send(subs, c)
}

func (m *ObserverManager) emitEntity(eid int32, c change.Change) {
	m.entitiesMu.RLock()
	set := m.entities[eid]
	subs := make([]*subscriber, 0, len(set))
	for _, s := range set {
		subs = append(subs, s)
	}
	m.entitiesMu.RUnlock()
	m.send(subs, c)
}

// EmitTick fans c out to every ticks subscriber.
func (m *ObserverManager) EmitTick(c change.Change) {
	m.ticksMu.RLock()
	subs := make([]*subscriber, 0, len(m.ticks))
	for _, s := range m.ticks {
		subs = append(subs, s)
	}
	m.ticksMu.RUnlock()
	m.send(subs, c)
}

func (m *ObserverManager) send(subs []*subscriber, c change.Change) {
	for _, s := range subs {
		select {
		case s.ch <- c:
		default:
			m.subsMu.Lock()
			m.dropped[s.id]++
			m.subsMu.Unlock()
		}
	}
}

// Dropped reports how many changes have been silently dropped for id
// (spec.md §9(a)'s backpressure policy) since it subscribed.
func (m *ObserverManager) Dropped(id uuid.UUID) uint64 {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	return m.dropped[id]
}

// SubscribedColumns reports every column with at least one subscriber,
// for diagnostics and tests.
func (m *ObserverManager) SubscribedColumns() []change.ColumnPos {
	m.columnsMu.RLock()
	defer m.columnsMu.RUnlock()
	return maps.Keys(m.columns)
}
