package transport

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// deflate zlib-compresses payload for frames at or above the negotiated
// threshold (spec.md §3.2/§4.9).
func deflate(payload []byte) ([]byte, error) {
	var out bytes.Buffer
	w := zlib.NewWriter(&out)
	if _, err := w.Write(payload); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// inflate decompresses a zlib stream, verifying it yields exactly
// wantLength bytes as the frame's data-length field promised.
func inflate(compressed []byte, wantLength int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("transport: zlib: %w", err)
	}
	defer r.Close()
	out, err := io.ReadAll(io.LimitReader(r, int64(wantLength)+1))
	if err != nil {
		return nil, fmt.Errorf("transport: zlib: %w", err)
	}
	if len(out) != wantLength {
		return nil, fmt.Errorf("transport: zlib: decompressed %d bytes, frame declared %d", len(out), wantLength)
	}
	return out, nil
}
