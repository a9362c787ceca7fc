package protocol

import (
	"bytes"

	"github.com/google/uuid"
)

// WriteUUID writes a 128-bit big-endian UUID.
func WriteUUID(buf *bytes.Buffer, id uuid.UUID) {
	buf.Write(id[:])
}

// ReadUUID reads a 128-bit big-endian UUID.
func ReadUUID(b []byte) (uuid.UUID, []byte, error) {
	var id uuid.UUID
	if len(b) < 16 {
		return id, nil, errShortUUID
	}
	copy(id[:], b[:16])
	return id, b[16:], nil
}

var errShortUUID = &codecError{"protocol: UUID: unexpected end of data"}

type codecError struct{ msg string }

func (e *codecError) Error() string { return e.msg }
