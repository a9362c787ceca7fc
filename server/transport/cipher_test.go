package transport

import (
	"bytes"
	"testing"
)

func TestCipherRoundTrip(t *testing.T) {
	secret := bytes.Repeat([]byte{0x07}, 16)
	enc, err := NewCipher(secret)
	if err != nil {
		t.Fatalf("NewCipher (enc): %v", err)
	}
	dec, err := NewCipher(secret)
	if err != nil {
		t.Fatalf("NewCipher (dec): %v", err)
	}
	plain := []byte("hello, encrypted world, this spans more than one AES block")
	ciphertext := enc.EncryptStream(append([]byte(nil), plain...))
	if bytes.Equal(ciphertext, plain) {
		t.Fatalf("ciphertext equals plaintext")
	}
	got := dec.DecryptStream(append([]byte(nil), ciphertext...))
	if !bytes.Equal(got, plain) {
		t.Fatalf("got %q, want %q", got, plain)
	}
}

func TestCipherRejectsBadKeyLength(t *testing.T) {
	if _, err := NewCipher([]byte{0x01, 0x02}); err == nil {
		t.Fatalf("expected error for invalid AES key length")
	}
}
