package protocol

import "bytes"

// BitSet is an array of 64-bit words interpreted LSB-first, per spec.md
// §3.1.
type BitSet []uint64

// WriteBitSet writes the VarInt word count followed by each word,
// big-endian per word (the wire form of Array<u64, VarInt>).
func WriteBitSet(buf *bytes.Buffer, s BitSet) {
	WriteVarInt(buf, int32(len(s)))
	for _, w := range s {
		WriteInt64(buf, int64(w))
	}
}

// ReadBitSet reads a length-prefixed BitSet.
func ReadBitSet(b []byte) (BitSet, []byte, error) {
	n, rest, err := ReadVarInt(b)
	if err != nil {
		return nil, nil, err
	}
	if n < 0 || int(n) > len(rest)/8+1 {
		return BitSet{}, rest, nil
	}
	out := make(BitSet, 0, n)
	for i := int32(0); i < n; i++ {
		var w int64
		w, rest, err = ReadInt64(rest)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, uint64(w))
	}
	return out, rest, nil
}

// Test reports whether bit i is set.
func (s BitSet) Test(i int) bool {
	word := i / 64
	if word < 0 || word >= len(s) {
		return false
	}
	return s[word]&(1<<uint(i%64)) != 0
}

// Set sets bit i, growing the BitSet if necessary.
func (s *BitSet) Set(i int) {
	word := i / 64
	for len(*s) <= word {
		*s = append(*s, 0)
	}
	(*s)[word] |= 1 << uint(i%64)
}

// Clear clears bit i; clearing past the end is a no-op.
func (s *BitSet) Clear(i int) {
	word := i / 64
	if word < 0 || word >= len(*s) {
		return
	}
	(*s)[word] &^= 1 << uint(i%64)
}

// FixedBitSet is a BitSet whose wire form has no length prefix because the
// number of words is implied by context (e.g. the per-section light masks
// in spec.md §4.5, which always cover a fixed section count).
type FixedBitSet = BitSet

// WriteFixedBitSet writes exactly len(s) words with no length prefix.
func WriteFixedBitSet(buf *bytes.Buffer, s FixedBitSet) {
	for _, w := range s {
		WriteInt64(buf, int64(w))
	}
}

// ReadFixedBitSet reads exactly n words with no length prefix.
func ReadFixedBitSet(b []byte, n int) (FixedBitSet, []byte, error) {
	out := make(FixedBitSet, n)
	rest := b
	var err error
	for i := 0; i < n; i++ {
		var w int64
		w, rest, err = ReadInt64(rest)
		if err != nil {
			return nil, nil, err
		}
		out[i] = uint64(w)
	}
	return out, rest, nil
}
