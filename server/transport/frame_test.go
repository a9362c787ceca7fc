package transport

import (
	"bytes"
	"testing"
)

func TestFrameRoundTripUncompressed(t *testing.T) {
	var stream bytes.Buffer
	w := NewWriter(&stream)
	payload := []byte{0x00, 0x01, 0x02, 0x03}
	if err := w.WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	r := NewReader(&stream)
	got, err := r.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %v, want %v", got, payload)
	}
}

func TestFrameRoundTripCompressedBelowThreshold(t *testing.T) {
	var stream bytes.Buffer
	w := NewWriter(&stream)
	w.EnableCompression(256)
	payload := []byte{0xAA, 0xBB}
	if err := w.WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	r := NewReader(&stream)
	r.EnableCompression(256)
	got, err := r.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %v, want %v", got, payload)
	}
}

func TestFrameRoundTripCompressedAboveThreshold(t *testing.T) {
	var stream bytes.Buffer
	w := NewWriter(&stream)
	w.EnableCompression(8)
	payload := bytes.Repeat([]byte{0x42}, 512)
	if err := w.WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	r := NewReader(&stream)
	r.EnableCompression(8)
	got, err := r.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %d bytes, want %d", len(got), len(payload))
	}
}

func TestFrameOversizedLengthRejected(t *testing.T) {
	var stream bytes.Buffer
	stream.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F})
	r := NewReader(&stream)
	if _, err := r.ReadFrame(); err == nil {
		t.Fatalf("expected error for oversized frame length")
	}
}

func TestMultipleFramesSequentially(t *testing.T) {
	var stream bytes.Buffer
	w := NewWriter(&stream)
	frames := [][]byte{{0x00}, {0x01, 0x02}, {0x03, 0x04, 0x05}}
	for _, f := range frames {
		if err := w.WriteFrame(f); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}
	r := NewReader(&stream)
	for _, want := range frames {
		got, err := r.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
