// Package entity implements the entity store and observer manager of
// spec.md §3.5/§4.7: eid/uuid allocation, chunk-column indexing, and a
// tagged-union taxonomy standing in for the wire protocol's multi-level
// entity hierarchy (Entity ⊂ LivingEntity ⊂ Mob ⊂ …) without language
// inheritance.
package entity

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Kind tags which concrete variant an *Entity holds (spec.md §4.7:
// "entities are a tagged union of concrete variants").
type Kind uint8

const (
	KindPlain Kind = iota
	KindLiving
	KindMob
	KindItem
)

// Base is the layer every entity carries (spec.md §3.5): identity,
// transform, and tracked metadata.
type Base struct {
	EID      int32
	UUID     uuid.UUID
	Type     int32
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Pitch    float32
	Yaw      float32
	HeadYaw  float32
	Metadata []byte
}

// Living nests Base, adding the LivingEntity layer's fields.
type Living struct {
	Base      Base
	Health    float32
	MaxHealth float32
}

// Mob nests Living, adding the Mob layer's fields. PathfinderMob-level
// fields (goals, navigation) are out of this specification's scope
// (spec.md §1's client-facing boundary); TargetEID is the one
// Mob-layer field the wire protocol actually exposes (boss-bar/attack
// targeting).
type Mob struct {
	Living    Living
	TargetEID *int32
}

// Item nests Base, adding the dropped-item-entity layer's fields.
type Item struct {
	Base        Base
	ItemStateID int32
	Count       int32
}

// Entity is the tagged union: exactly one of plain/living/mob/item is
// non-nil, selected by Kind. Polymorphic access goes through the
// AsXxx capability queries below, the Go shape of spec.md §4.7's
// `try_as<Layer>(&entity) -> Option<&Layer>`.
type Entity struct {
	Kind   Kind
	plain  *Base
	living *Living
	mob    *Mob
	item   *Item
}

// NewPlain wraps a bare Base with no further layer (e.g. a projectile).
func NewPlain(b Base) *Entity { return &Entity{Kind: KindPlain, plain: &b} }

// NewLiving wraps a Living entity.
func NewLiving(l Living) *Entity { return &Entity{Kind: KindLiving, living: &l} }

// NewMob wraps a Mob entity.
func NewMob(m Mob) *Entity { return &Entity{Kind: KindMob, mob: &m} }

// NewItem wraps an Item entity.
func NewItem(i Item) *Entity { return &Entity{Kind: KindItem, item: &i} }

// AsBase always succeeds: every variant nests a Base somewhere.
func (e *Entity) AsBase() *Base {
	switch e.Kind {
	case KindLiving:
		return &e.living.Base
	case KindMob:
		return &e.mob.Living.Base
	case KindItem:
		return &e.item.Base
	default:
		return e.plain
	}
}

// AsLiving implements try_as<Living>: Living and anything nesting it
// (Mob) satisfy the query.
func (e *Entity) AsLiving() (*Living, bool) {
	switch e.Kind {
	case KindLiving:
		return e.living, true
	case KindMob:
		return &e.mob.Living, true
	default:
		return nil, false
	}
}

// AsMob implements try_as<Mob>.
func (e *Entity) AsMob() (*Mob, bool) {
	if e.Kind == KindMob {
		return e.mob, true
	}
	return nil, false
}

// AsItem implements try_as<Item>.
func (e *Entity) AsItem() (*Item, bool) {
	if e.Kind == KindItem {
		return e.item, true
	}
	return nil, false
}
