package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestAsBaseReachesEveryVariant(t *testing.T) {
	entities := []*Entity{
		NewPlain(Base{Type: 1}),
		NewLiving(Living{Base: Base{Type: 2}}),
		NewMob(Mob{Living: Living{Base: Base{Type: 3}}}),
		NewItem(Item{Base: Base{Type: 4}}),
	}
	for i, e := range entities {
		if got := e.AsBase().Type; got != int32(i+1) {
			t.Fatalf("entity %d: AsBase().Type = %d, want %d", i, got, i+1)
		}
	}
}

func TestAsLivingCoversNestingVariants(t *testing.T) {
	living := NewLiving(Living{Health: 10})
	mob := NewMob(Mob{Living: Living{Health: 7}})
	item := NewItem(Item{})

	if l, ok := living.AsLiving(); !ok || l.Health != 10 {
		t.Fatalf("AsLiving on a Living = (%v, %v), want health 10", l, ok)
	}
	if l, ok := mob.AsLiving(); !ok || l.Health != 7 {
		t.Fatalf("AsLiving on a Mob = (%v, %v), want health 7 through the nested layer", l, ok)
	}
	if _, ok := item.AsLiving(); ok {
		t.Fatalf("AsLiving on an Item should not succeed")
	}
}

func TestAsMobAndAsItem(t *testing.T) {
	mob := NewMob(Mob{})
	if _, ok := mob.AsMob(); !ok {
		t.Fatalf("AsMob on a Mob should succeed")
	}
	if _, ok := NewLiving(Living{}).AsMob(); ok {
		t.Fatalf("AsMob on a plain Living should fail")
	}
	item := NewItem(Item{ItemStateID: 9, Count: 64})
	if it, ok := item.AsItem(); !ok || it.Count != 64 {
		t.Fatalf("AsItem = (%v, %v), want count 64", it, ok)
	}
}

// Mutating through a layer query must be visible through AsBase: the
// queries return references into one shared value, not copies.
func TestLayerQueriesShareStorage(t *testing.T) {
	e := NewMob(Mob{Living: Living{Base: Base{Position: mgl64.Vec3{1, 2, 3}}}})
	l, _ := e.AsLiving()
	l.Base.Position = mgl64.Vec3{4, 5, 6}
	if got := e.AsBase().Position; got != (mgl64.Vec3{4, 5, 6}) {
		t.Fatalf("AsBase().Position = %v, want the position written through AsLiving", got)
	}
}
