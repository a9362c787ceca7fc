// Package storage implements the optional on-disk chunk column layout of
// spec.md §6.3: "the concatenation of its per-chunk ... records followed
// by the heightmap" keyed by chunk column position. Persistence is
// optional (spec.md §6.3: "permits but does not require"); a server run
// without a Store simply never calls Get/Put and every column is
// regenerated on load.
package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/opt"
)

// Store persists chunk column records keyed by (cx, cz), backed by a
// LevelDB table the way the teacher's world saves are (the same
// key-value engine `df-mc/goleveldb` provides there, repointed at this
// protocol's own record format instead of Bedrock's).
type Store struct {
	db *leveldb.DB
}

// Open opens (creating if absent) a LevelDB database at dir.
func Open(dir string) (*Store, error) {
	db, err := leveldb.OpenFile(dir, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("storage: close: %w", err)
	}
	return nil
}

func encodeKey(cx, cz int32) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint32(b[0:4], uint32(cx))
	binary.BigEndian.PutUint32(b[4:8], uint32(cz))
	return b
}

// Get returns the raw record previously written for (cx, cz), or
// ok == false if none exists.
func (s *Store) Get(cx, cz int32) (data []byte, ok bool, err error) {
	data, err = s.db.Get(encodeKey(cx, cz), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: get (%d,%d): %w", cx, cz, err)
	}
	return data, true, nil
}

// Put writes the record for (cx, cz), overwriting any previous one.
func (s *Store) Put(cx, cz int32, data []byte) error {
	if err := s.db.Put(encodeKey(cx, cz), data, nil); err != nil {
		return fmt.Errorf("storage: put (%d,%d): %w", cx, cz, err)
	}
	return nil
}
