package protocol

import (
	"bytes"
	"math"
	"testing"
)

func TestFixedWidthRoundTrip(t *testing.T) {
	buf := new(bytes.Buffer)
	WriteBool(buf, true)
	WriteInt8(buf, -128)
	WriteUint8(buf, 255)
	WriteInt16(buf, -32768)
	WriteUint16(buf, 65535)
	WriteInt32(buf, math.MinInt32)
	WriteInt64(buf, math.MinInt64)
	WriteFloat32(buf, 3.5)
	WriteFloat64(buf, -1.25)

	b := buf.Bytes()

	gb, b, err := ReadBool(b)
	if err != nil || gb != true {
		t.Fatalf("Bool: %v %v", gb, err)
	}
	gi8, b, err := ReadInt8(b)
	if err != nil || gi8 != -128 {
		t.Fatalf("Int8: %v %v", gi8, err)
	}
	gu8, b, err := ReadUint8(b)
	if err != nil || gu8 != 255 {
		t.Fatalf("Uint8: %v %v", gu8, err)
	}
	gi16, b, err := ReadInt16(b)
	if err != nil || gi16 != -32768 {
		t.Fatalf("Int16: %v %v", gi16, err)
	}
	gu16, b, err := ReadUint16(b)
	if err != nil || gu16 != 65535 {
		t.Fatalf("Uint16: %v %v", gu16, err)
	}
	gi32, b, err := ReadInt32(b)
	if err != nil || gi32 != math.MinInt32 {
		t.Fatalf("Int32: %v %v", gi32, err)
	}
	gi64, b, err := ReadInt64(b)
	if err != nil || gi64 != math.MinInt64 {
		t.Fatalf("Int64: %v %v", gi64, err)
	}
	gf32, b, err := ReadFloat32(b)
	if err != nil || gf32 != 3.5 {
		t.Fatalf("Float32: %v %v", gf32, err)
	}
	gf64, b, err := ReadFloat64(b)
	if err != nil || gf64 != -1.25 {
		t.Fatalf("Float64: %v %v", gf64, err)
	}
	if len(b) != 0 {
		t.Fatalf("leftover tail: %v", b)
	}
}

func TestStringRoundTrip(t *testing.T) {
	samples := []string{"", "hello", "namespace:path", "emoji 🌍 text"}
	for _, s := range samples {
		buf := new(bytes.Buffer)
		WriteString(buf, s)
		got, rest, err := ReadString(buf.Bytes())
		if err != nil {
			t.Fatalf("ReadString(%q): %v", s, err)
		}
		if got != s {
			t.Fatalf("String round trip: want %q got %q", s, got)
		}
		if len(rest) != 0 {
			t.Fatalf("String(%q): leftover tail", s)
		}
	}
}

func TestStringInvalidUTF8(t *testing.T) {
	buf := new(bytes.Buffer)
	WriteVarInt(buf, 2)
	buf.Write([]byte{0xff, 0xfe})
	if _, _, err := ReadString(buf.Bytes()); err == nil {
		t.Fatalf("expected error decoding invalid UTF-8")
	}
}

func TestStringTruncatedLength(t *testing.T) {
	buf := new(bytes.Buffer)
	WriteVarInt(buf, 10)
	buf.WriteString("abc")
	if _, _, err := ReadString(buf.Bytes()); err == nil {
		t.Fatalf("expected error when length claims more bytes than remain")
	}
}

func TestRawBytes(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	got := RawBytes(data)
	if !bytes.Equal(got, data) {
		t.Fatalf("RawBytes = % x, want % x", got, data)
	}
}
