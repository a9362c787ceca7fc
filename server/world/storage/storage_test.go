package storage

import (
	"testing"
)

func TestOpenPutGetRoundTrips(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	want := []byte{1, 2, 3, 4, 5}
	if err := s.Put(3, -7, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := s.Get(3, -7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("Get reported absent after Put")
	}
	if string(got) != string(want) {
		t.Fatalf("Get = %v, want %v", got, want)
	}
}

func TestGetReportsAbsentForUnwrittenColumn(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	_, ok, err := s.Get(100, 100)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("Get reported present for a column never Put")
	}
}

func TestPutOverwritesPreviousRecord(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.Put(0, 0, []byte{1}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(0, 0, []byte{2, 2}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := s.Get(0, 0)
	if err != nil || !ok {
		t.Fatalf("Get: %v, ok=%v", err, ok)
	}
	if len(got) != 2 || got[0] != 2 || got[1] != 2 {
		t.Fatalf("Get = %v, want [2 2]", got)
	}
}
