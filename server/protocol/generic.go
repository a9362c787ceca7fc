package protocol

import "bytes"

// WriteArray writes a VarInt length prefix followed by each element
// encoded with enc, implementing spec.md §3.1's Array<T, VarInt>.
func WriteArray[T any](buf *bytes.Buffer, items []T, enc func(*bytes.Buffer, T)) {
	WriteVarInt(buf, int32(len(items)))
	for _, item := range items {
		enc(buf, item)
	}
}

// ReadArray reads a VarInt-prefixed array of T. A negative length decodes
// to an empty slice; a length claiming more data than remains is an error
// surfaced by the first failing element decode.
func ReadArray[T any](b []byte, dec func([]byte) (T, []byte, error)) ([]T, []byte, error) {
	n, rest, err := ReadVarInt(b)
	if err != nil {
		return nil, nil, err
	}
	if n <= 0 {
		return []T{}, rest, nil
	}
	out := make([]T, 0, n)
	for i := int32(0); i < n; i++ {
		var item T
		item, rest, err = dec(rest)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, item)
	}
	return out, rest, nil
}

// KV is a decoded key/value pair, the element type produced by ReadMap.
type KV[K comparable, V any] struct {
	Key   K
	Value V
}

// WriteMap writes a Map<K, V, VarInt> as an array of (K, V) pairs.
func WriteMap[K comparable, V any](buf *bytes.Buffer, m map[K]V, keys []K, encK func(*bytes.Buffer, K), encV func(*bytes.Buffer, V)) {
	WriteVarInt(buf, int32(len(keys)))
	for _, k := range keys {
		encK(buf, k)
		encV(buf, m[k])
	}
}

// ReadMap reads an Array<(K,V), VarInt> and produces an ordered key slice
// alongside the resulting map, per spec.md §3.1 ("on decode produces an
// ordered key map").
func ReadMap[K comparable, V any](b []byte, decK func([]byte) (K, []byte, error), decV func([]byte) (V, []byte, error)) (map[K]V, []K, []byte, error) {
	n, rest, err := ReadVarInt(b)
	if err != nil {
		return nil, nil, nil, err
	}
	if n < 0 {
		n = 0
	}
	m := make(map[K]V, n)
	keys := make([]K, 0, n)
	for i := int32(0); i < n; i++ {
		var k K
		var v V
		k, rest, err = decK(rest)
		if err != nil {
			return nil, nil, nil, err
		}
		v, rest, err = decV(rest)
		if err != nil {
			return nil, nil, nil, err
		}
		m[k] = v
		keys = append(keys, k)
	}
	return m, keys, rest, nil
}

// WriteOptional writes the boolean tag followed by *v iff v is non-nil.
func WriteOptional[T any](buf *bytes.Buffer, v *T, enc func(*bytes.Buffer, T)) {
	if v == nil {
		WriteBool(buf, false)
		return
	}
	WriteBool(buf, true)
	enc(buf, *v)
}

// ReadOptional reads the boolean tag and, if true, decodes T.
func ReadOptional[T any](b []byte, dec func([]byte) (T, []byte, error)) (*T, []byte, error) {
	present, rest, err := ReadBool(b)
	if err != nil {
		return nil, nil, err
	}
	if !present {
		return nil, rest, nil
	}
	v, rest, err := dec(rest)
	if err != nil {
		return nil, nil, err
	}
	return &v, rest, nil
}
