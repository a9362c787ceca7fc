package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// MaxStringLength bounds the decoded length of a String/Identifier/Chat
// value; the vanilla protocol enforces a similar cap to stop a malicious
// length prefix from claiming an unreasonable allocation.
const MaxStringLength = 1 << 18

// WriteBool writes a single boolean byte.
func WriteBool(buf *bytes.Buffer, v bool) {
	if v {
		buf.WriteByte(1)
		return
	}
	buf.WriteByte(0)
}

// ReadBool reads a single boolean byte.
func ReadBool(b []byte) (bool, []byte, error) {
	if len(b) < 1 {
		return false, nil, fmt.Errorf("protocol: Bool: unexpected end of data")
	}
	return b[0] != 0, b[1:], nil
}

// WriteInt8/ReadInt8/WriteUint8/ReadUint8 handle the 8-bit integers.

func WriteInt8(buf *bytes.Buffer, v int8) { buf.WriteByte(byte(v)) }

func ReadInt8(b []byte) (int8, []byte, error) {
	if len(b) < 1 {
		return 0, nil, fmt.Errorf("protocol: Byte: unexpected end of data")
	}
	return int8(b[0]), b[1:], nil
}

func WriteUint8(buf *bytes.Buffer, v uint8) { buf.WriteByte(v) }

func ReadUint8(b []byte) (uint8, []byte, error) {
	if len(b) < 1 {
		return 0, nil, fmt.Errorf("protocol: UnsignedByte: unexpected end of data")
	}
	return b[0], b[1:], nil
}

func WriteInt16(buf *bytes.Buffer, v int16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], uint16(v))
	buf.Write(tmp[:])
}

func ReadInt16(b []byte) (int16, []byte, error) {
	if len(b) < 2 {
		return 0, nil, fmt.Errorf("protocol: Short: unexpected end of data")
	}
	return int16(binary.BigEndian.Uint16(b)), b[2:], nil
}

func WriteUint16(buf *bytes.Buffer, v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	buf.Write(tmp[:])
}

func ReadUint16(b []byte) (uint16, []byte, error) {
	if len(b) < 2 {
		return 0, nil, fmt.Errorf("protocol: UnsignedShort: unexpected end of data")
	}
	return binary.BigEndian.Uint16(b), b[2:], nil
}

func WriteInt32(buf *bytes.Buffer, v int32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(v))
	buf.Write(tmp[:])
}

func ReadInt32(b []byte) (int32, []byte, error) {
	if len(b) < 4 {
		return 0, nil, fmt.Errorf("protocol: Int: unexpected end of data")
	}
	return int32(binary.BigEndian.Uint32(b)), b[4:], nil
}

func WriteInt64(buf *bytes.Buffer, v int64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], uint64(v))
	buf.Write(tmp[:])
}

func ReadInt64(b []byte) (int64, []byte, error) {
	if len(b) < 8 {
		return 0, nil, fmt.Errorf("protocol: Long: unexpected end of data")
	}
	return int64(binary.BigEndian.Uint64(b)), b[8:], nil
}

func WriteFloat32(buf *bytes.Buffer, v float32) {
	WriteInt32(buf, int32(math.Float32bits(v)))
}

func ReadFloat32(b []byte) (float32, []byte, error) {
	i, rest, err := ReadInt32(b)
	if err != nil {
		return 0, nil, err
	}
	return math.Float32frombits(uint32(i)), rest, nil
}

func WriteFloat64(buf *bytes.Buffer, v float64) {
	WriteInt64(buf, int64(math.Float64bits(v)))
}

func ReadFloat64(b []byte) (float64, []byte, error) {
	i, rest, err := ReadInt64(b)
	if err != nil {
		return 0, nil, err
	}
	return math.Float64frombits(uint64(i)), rest, nil
}

// WriteInt128 writes a 128-bit big-endian integer, used for UUIDs.
func WriteInt128(buf *bytes.Buffer, hi, lo uint64) {
	var tmp [16]byte
	binary.BigEndian.PutUint64(tmp[0:8], hi)
	binary.BigEndian.PutUint64(tmp[8:16], lo)
	buf.Write(tmp[:])
}

func ReadInt128(b []byte) (hi, lo uint64, rest []byte, err error) {
	if len(b) < 16 {
		return 0, 0, nil, fmt.Errorf("protocol: Int128: unexpected end of data")
	}
	return binary.BigEndian.Uint64(b[0:8]), binary.BigEndian.Uint64(b[8:16]), b[16:], nil
}

// WriteString writes a VarInt length prefix followed by the UTF-8 bytes of
// s.
func WriteString(buf *bytes.Buffer, s string) {
	WriteVarInt(buf, int32(len(s)))
	buf.WriteString(s)
}

// ReadString reads a VarInt-prefixed UTF-8 string, rejecting malformed
// UTF-8 and lengths beyond MaxStringLength or the remaining buffer.
func ReadString(b []byte) (string, []byte, error) {
	n, rest, err := ReadVarInt(b)
	if err != nil {
		return "", nil, fmt.Errorf("protocol: String: length: %w", err)
	}
	if n < 0 || int(n) > MaxStringLength {
		return "", nil, fmt.Errorf("protocol: String: invalid length %d", n)
	}
	if int(n) > len(rest) {
		return "", nil, fmt.Errorf("protocol: String: length %d exceeds remaining %d bytes", n, len(rest))
	}
	data := rest[:n]
	if !utf8.Valid(data) {
		return "", nil, fmt.Errorf("protocol: String: invalid UTF-8")
	}
	return string(data), rest[n:], nil
}

// WriteIdentifier writes an Identifier, which is a String constrained to
// "namespace:path" at a higher layer; the wire form is identical to String.
func WriteIdentifier(buf *bytes.Buffer, s string) { WriteString(buf, s) }

// ReadIdentifier reads an Identifier off the wire. Validation of the
// namespace:path shape is left to callers that care (the codec treats it
// as a plain string per spec.md §3.1).
func ReadIdentifier(b []byte) (string, []byte, error) { return ReadString(b) }

// WriteChat writes a Chat value, a JSON string payload treated as an opaque
// string by the codec (semantically a component tree, per spec.md §3.1).
func WriteChat(buf *bytes.Buffer, json string) { WriteString(buf, json) }

// ReadChat reads a Chat value.
func ReadChat(b []byte) (string, []byte, error) { return ReadString(b) }

// RawBytes consumes all remaining bytes in the enclosing frame.
func RawBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
