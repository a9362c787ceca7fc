package protocol

import (
	"bytes"
	"fmt"
)

// DiscriminantKind names the wire width of a sum type's tag, per spec.md
// §4.2.
type DiscriminantKind uint8

const (
	DiscriminantVarInt DiscriminantKind = iota
	DiscriminantU8
	DiscriminantI8
	DiscriminantI16
	DiscriminantI32
)

// WriteDiscriminant writes value using the wire width kind prescribes.
func WriteDiscriminant(buf *bytes.Buffer, kind DiscriminantKind, value int32) {
	switch kind {
	case DiscriminantU8:
		WriteUint8(buf, uint8(value))
	case DiscriminantI8:
		WriteInt8(buf, int8(value))
	case DiscriminantI16:
		WriteInt16(buf, int16(value))
	case DiscriminantI32:
		WriteInt32(buf, value)
	default:
		WriteVarInt(buf, value)
	}
}

// ReadDiscriminant reads a discriminant of the given wire width.
func ReadDiscriminant(b []byte, kind DiscriminantKind) (int32, []byte, error) {
	switch kind {
	case DiscriminantU8:
		v, rest, err := ReadUint8(b)
		return int32(v), rest, err
	case DiscriminantI8:
		v, rest, err := ReadInt8(b)
		return int32(v), rest, err
	case DiscriminantI16:
		v, rest, err := ReadInt16(b)
		return int32(v), rest, err
	case DiscriminantI32:
		return ReadInt32(b)
	default:
		return ReadVarInt(b)
	}
}

// UnknownVariantError is returned when a sum type's decoder sees a
// discriminant it doesn't recognise. It names the outer type so the error
// is actionable at the connection's read loop (spec.md §4.2, §7).
type UnknownVariantError struct {
	Type        string
	Discriminant int32
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("protocol: %s: unknown discriminant %d", e.Type, e.Discriminant)
}

// Encoder is implemented by any structured (product or sum) wire type that
// can serialise itself; fields/variants are written in declaration order
// per spec.md §4.2.
type Encoder interface {
	Encode(buf *bytes.Buffer)
}

// NewBuffer allocates a fresh, reasonably pre-sized buffer for encoding a
// packet payload, matching the pooling idiom in the teacher's
// server/world/chunk encode path without introducing a shared pool here —
// packet payloads vary too widely in size for one pool to pay off, unlike
// the fixed-size sub-chunk buffers dragonfly pools.
func NewBuffer() *bytes.Buffer {
	return bytes.NewBuffer(make([]byte, 0, 256))
}
