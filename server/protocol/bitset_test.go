package protocol

import "testing"

func TestBitSetRoundTrip(t *testing.T) {
	var s BitSet
	s.Set(0)
	s.Set(63)
	s.Set(64)
	s.Set(200)

	buf := NewBuffer()
	WriteBitSet(buf, s)
	got, rest, err := ReadBitSet(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 0 {
		t.Fatalf("leftover tail")
	}
	for _, bit := range []int{0, 63, 64, 200} {
		if !got.Test(bit) {
			t.Fatalf("expected bit %d set", bit)
		}
	}
	if got.Test(1) || got.Test(65) {
		t.Fatalf("unexpected bit set")
	}
}

func TestFixedBitSetRoundTrip(t *testing.T) {
	s := FixedBitSet{0x1, 0x2, 0x3}
	buf := NewBuffer()
	WriteFixedBitSet(buf, s)
	got, rest, err := ReadFixedBitSet(buf.Bytes(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 0 {
		t.Fatalf("leftover tail")
	}
	for i := range s {
		if got[i] != s[i] {
			t.Fatalf("word %d: want %x got %x", i, s[i], got[i])
		}
	}
}
