package protocol

import "testing"

func TestPositionRoundTrip(t *testing.T) {
	coords := []int32{-1 << 25, -1, 0, 1, 1<<25 - 1}
	for _, x := range coords {
		for _, y := range coords {
			for _, z := range coords {
				p := Position{X: x, Y: clampY(y), Z: z}
				buf := NewBuffer()
				WritePosition(buf, p)
				got, rest, err := ReadPosition(buf.Bytes())
				if err != nil {
					t.Fatalf("ReadPosition(%+v): %v", p, err)
				}
				if got != p {
					t.Fatalf("Position round trip: want %+v got %+v", p, got)
				}
				if len(rest) != 0 {
					t.Fatalf("Position(%+v): leftover tail", p)
				}
			}
		}
	}
}

// clampY keeps the Y sample within the 12-bit signed range the wire form
// actually supports ([-2048, 2047]); the X/Z grid values are used as-is
// since those fields are 26 bits wide.
func clampY(y int32) int32 {
	const max = 1<<11 - 1
	const min = -(1 << 11)
	if y > max {
		return max
	}
	if y < min {
		return min
	}
	return y
}

func TestPositionKnownFormula(t *testing.T) {
	p := Position{X: 10, Y: 65, Z: 23}
	buf := NewBuffer()
	WritePosition(buf, p)
	// (10 << 38) | (23 << 12) | 65
	if raw, _, err := ReadInt64(buf.Bytes()); err != nil || raw != 0x0000028000017041 {
		t.Fatalf("packed word = %#x (err %v), want %#x", raw, err, int64(0x0000028000017041))
	}
	got, rest, err := ReadPosition(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if got != p {
		t.Fatalf("want %+v got %+v", p, got)
	}
	if len(rest) != 0 {
		t.Fatalf("leftover tail")
	}
}
