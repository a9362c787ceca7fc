// Package protocol implements the wire-level codec primitives and the
// structured product/sum-type codec contract used by every packet in
// server/protocol/packet.
package protocol

import (
	"bytes"
	"fmt"
)

const (
	// varIntMaxBytes is the maximum number of bytes a VarInt may occupy
	// before decode fails; it caps a 32-bit value encoded 7 bits at a time.
	varIntMaxBytes = 5
	// varLongMaxBytes is the VarLong equivalent, capping a 64-bit value.
	varLongMaxBytes = 10

	segmentBits = 0x7F
	continueBit = 0x80
)

// WriteVarInt appends v to buf using the protocol's base-128 varint
// encoding with a continuation bit in the MSB of each byte.
func WriteVarInt(buf *bytes.Buffer, v int32) {
	u := uint32(v)
	for {
		if u&^segmentBits == 0 {
			buf.WriteByte(byte(u))
			return
		}
		buf.WriteByte(byte(u&segmentBits) | continueBit)
		u >>= 7
	}
}

// ReadVarInt decodes a VarInt from b, returning the value and the
// unconsumed tail. It fails if the continuation run exceeds 5 bytes.
func ReadVarInt(b []byte) (int32, []byte, error) {
	var value uint32
	for i := 0; i < varIntMaxBytes; i++ {
		if len(b) == 0 {
			return 0, nil, fmt.Errorf("protocol: VarInt: unexpected end of data")
		}
		cur := b[0]
		b = b[1:]
		value |= uint32(cur&segmentBits) << (7 * uint(i))
		if cur&continueBit == 0 {
			return int32(value), b, nil
		}
	}
	return 0, nil, fmt.Errorf("protocol: VarInt: too big (exceeds %d bytes)", varIntMaxBytes)
}

// WriteVarLong is the 64-bit equivalent of WriteVarInt.
func WriteVarLong(buf *bytes.Buffer, v int64) {
	u := uint64(v)
	for {
		if u&^uint64(segmentBits) == 0 {
			buf.WriteByte(byte(u))
			return
		}
		buf.WriteByte(byte(u&segmentBits) | continueBit)
		u >>= 7
	}
}

// ReadVarLong decodes a VarLong from b, failing past 10 bytes.
func ReadVarLong(b []byte) (int64, []byte, error) {
	var value uint64
	for i := 0; i < varLongMaxBytes; i++ {
		if len(b) == 0 {
			return 0, nil, fmt.Errorf("protocol: VarLong: unexpected end of data")
		}
		cur := b[0]
		b = b[1:]
		value |= uint64(cur&segmentBits) << (7 * uint(i))
		if cur&continueBit == 0 {
			return int64(value), b, nil
		}
	}
	return 0, nil, fmt.Errorf("protocol: VarLong: too big (exceeds %d bytes)", varLongMaxBytes)
}

// VarIntSize returns the number of bytes WriteVarInt would produce for v,
// used by callers that need to pre-compute a frame length.
func VarIntSize(v int32) int {
	u := uint32(v)
	n := 1
	for u&^segmentBits != 0 {
		u >>= 7
		n++
	}
	return n
}
