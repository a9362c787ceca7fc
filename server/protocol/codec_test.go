package protocol

import "testing"

func TestDiscriminantRoundTrip(t *testing.T) {
	kinds := []DiscriminantKind{DiscriminantVarInt, DiscriminantU8, DiscriminantI8, DiscriminantI16, DiscriminantI32}
	for _, k := range kinds {
		buf := NewBuffer()
		WriteDiscriminant(buf, k, 5)
		got, rest, err := ReadDiscriminant(buf.Bytes(), k)
		if err != nil {
			t.Fatalf("kind %v: %v", k, err)
		}
		if got != 5 {
			t.Fatalf("kind %v: want 5 got %d", k, got)
		}
		if len(rest) != 0 {
			t.Fatalf("kind %v: leftover tail", k)
		}
	}
}

func TestUnknownVariantError(t *testing.T) {
	err := &UnknownVariantError{Type: "Play.Clientbound", Discriminant: 99}
	if err.Error() == "" {
		t.Fatalf("expected non-empty error text")
	}
}
