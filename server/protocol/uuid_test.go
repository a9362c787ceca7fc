package protocol

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDRoundTrip(t *testing.T) {
	id := uuid.New()
	buf := NewBuffer()
	WriteUUID(buf, id)
	got, rest, err := ReadUUID(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if got != id {
		t.Fatalf("want %s got %s", id, got)
	}
	if len(rest) != 0 {
		t.Fatalf("leftover tail")
	}
}

func TestUUIDShort(t *testing.T) {
	if _, _, err := ReadUUID(make([]byte, 4)); err == nil {
		t.Fatalf("expected error decoding a short UUID")
	}
}
