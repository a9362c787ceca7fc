// Package transport implements the byte-level framing that sits between
// the raw connection stream and the packet codec: VarInt length-prefixed
// frames, the optional zlib compression threshold, and the encryption hook
// point (spec.md §4.9/§6.1).
package transport

import (
	"bytes"
	"fmt"
	"io"

	"github.com/glimmermc/glimmer/server/protocol"
)

// MaxFrameLength bounds a single frame's declared length, guarding against
// a malicious or corrupt length prefix driving an unbounded read.
const MaxFrameLength = 1 << 21

// Reader pulls whole frames off a byte stream, undoing compression when a
// threshold has been negotiated.
type Reader struct {
	src                io.Reader
	compressionEnabled bool
	threshold          int32
}

// NewReader wraps src with no compression threshold; EnableCompression
// activates it once SetCompression has been processed.
func NewReader(src io.Reader) *Reader { return &Reader{src: src} }

// EnableCompression arms data-length framing with threshold as the
// compress/pass-through boundary (spec.md §3.2).
func (r *Reader) EnableCompression(threshold int32) {
	r.compressionEnabled = true
	r.threshold = threshold
}

// ReadFrame reads one frame and returns its decompressed payload: a VarInt
// packet id followed by fields, ready for packet.Pool.Decode.
func (r *Reader) ReadFrame() ([]byte, error) {
	length, err := readVarIntFrom(r.src)
	if err != nil {
		return nil, fmt.Errorf("transport: frame length: %w", err)
	}
	if length < 0 || length > MaxFrameLength {
		return nil, fmt.Errorf("transport: frame length %d out of bounds", length)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r.src, buf); err != nil {
		return nil, fmt.Errorf("transport: frame body: %w", err)
	}
	if !r.compressionEnabled {
		return buf, nil
	}
	dataLength, rest, err := protocol.ReadVarInt(buf)
	if err != nil {
		return nil, fmt.Errorf("transport: data length: %w", err)
	}
	if dataLength == 0 {
		return rest, nil
	}
	return inflate(rest, int(dataLength))
}

// readVarIntFrom reads a VarInt directly off a stream one byte at a time,
// since frame lengths precede any buffered payload.
func readVarIntFrom(r io.Reader) (int32, error) {
	var value uint32
	var b [1]byte
	for i := 0; i < 5; i++ {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		value |= uint32(b[0]&0x7F) << (7 * uint(i))
		if b[0]&0x80 == 0 {
			return int32(value), nil
		}
	}
	return 0, fmt.Errorf("transport: VarInt: too big (exceeds 5 bytes)")
}

// Writer frames outgoing packet payloads, compressing when the payload
// meets the negotiated threshold.
type Writer struct {
	dst                io.Writer
	compressionEnabled bool
	threshold          int32
}

func NewWriter(dst io.Writer) *Writer { return &Writer{dst: dst} }

func (w *Writer) EnableCompression(threshold int32) {
	w.compressionEnabled = true
	w.threshold = threshold
}

// WriteFrame frames payload (a VarInt packet id followed by fields) and
// writes it to the underlying stream.
func (w *Writer) WriteFrame(payload []byte) error {
	var body bytes.Buffer
	if !w.compressionEnabled {
		body.Write(payload)
		return w.writeSized(body.Bytes())
	}
	if len(payload) < int(w.threshold) {
		protocol.WriteVarInt(&body, 0)
		body.Write(payload)
		return w.writeSized(body.Bytes())
	}
	compressed, err := deflate(payload)
	if err != nil {
		return fmt.Errorf("transport: compress: %w", err)
	}
	protocol.WriteVarInt(&body, int32(len(payload)))
	body.Write(compressed)
	return w.writeSized(body.Bytes())
}

func (w *Writer) writeSized(body []byte) error {
	var header bytes.Buffer
	protocol.WriteVarInt(&header, int32(len(body)))
	if _, err := w.dst.Write(header.Bytes()); err != nil {
		return err
	}
	_, err := w.dst.Write(body)
	return err
}
