package session

import (
	"bytes"
	"testing"

	"github.com/glimmermc/glimmer/server/protocol"
	"github.com/glimmermc/glimmer/server/protocol/packet"
	"github.com/google/uuid"
)

func TestHandshakeHandlerTransitionsToLogin(t *testing.T) {
	s := NewDetached(PhaseHandshake, uuid.UUID{}, "", 0)
	err := HandshakeHandler{}.Handle(&packet.Handshake{NextState: packet.IntentLogin}, s)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if s.Phase() != PhaseLogin {
		t.Fatalf("phase = %v, want %v", s.Phase(), PhaseLogin)
	}
}

func TestHandshakeHandlerTransitionsToStatus(t *testing.T) {
	s := NewDetached(PhaseHandshake, uuid.UUID{}, "", 0)
	if err := (HandshakeHandler{}).Handle(&packet.Handshake{NextState: packet.IntentStatus}, s); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if s.Phase() != PhaseStatus {
		t.Fatalf("phase = %v, want %v", s.Phase(), PhaseStatus)
	}
}

func TestHandshakeHandlerRejectsUnknownIntent(t *testing.T) {
	s := NewDetached(PhaseHandshake, uuid.UUID{}, "", 0)
	if err := (HandshakeHandler{}).Handle(&packet.Handshake{NextState: packet.Intent(99)}, s); err == nil {
		t.Fatalf("expected error for unknown intent")
	}
}

func TestLoginAcknowledgedHandlerTransitionsToConfiguration(t *testing.T) {
	s := NewDetached(PhaseLogin, uuid.UUID{}, "", 0)
	if err := (LoginAcknowledgedHandler{}).Handle(&packet.LoginAcknowledged{}, s); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if s.Phase() != PhaseConfiguration {
		t.Fatalf("phase = %v, want %v", s.Phase(), PhaseConfiguration)
	}
}

func TestFinishConfigurationHandlerEntersPlay(t *testing.T) {
	s := NewDetached(PhaseConfiguration, uuid.UUID{}, "", 0)
	called := false
	h := FinishConfigurationHandler{OnEnterPlay: func(*Session) { called = true }}
	if err := h.Handle(&packet.FinishConfiguration{}, s); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if s.Phase() != PhasePlay {
		t.Fatalf("phase = %v, want %v", s.Phase(), PhasePlay)
	}
	if !called {
		t.Fatalf("OnEnterPlay was not invoked")
	}
}

func TestDispatchFatalOnUnknownPacketID(t *testing.T) {
	s := NewDetached(PhasePlay, uuid.UUID{}, "", 0)
	s.table = NewHandlerTable()

	var body bytes.Buffer
	protocol.WriteVarInt(&body, 0x7F) // no such id in the play serverbound pool
	if err := s.dispatch(body.Bytes()); err == nil {
		t.Fatalf("expected a fatal error for an id the phase does not recognise")
	}
}

func TestDispatchFatalOnTruncatedPayload(t *testing.T) {
	s := NewDetached(PhasePlay, uuid.UUID{}, "", 0)
	s.table = NewHandlerTable()

	var body bytes.Buffer
	protocol.WriteVarInt(&body, (&packet.ChatMessage{}).ID())
	body.WriteByte(0x05) // string length 5 with no bytes behind it
	if err := s.dispatch(body.Bytes()); err == nil {
		t.Fatalf("expected a fatal error for a payload the codec rejects")
	}
}

func TestHandlerTableLookup(t *testing.T) {
	tbl := NewHandlerTable()
	tbl.Register(PhaseLogin, 0x03, LoginAcknowledgedHandler{})
	if _, ok := tbl.lookup(PhaseLogin, 0x03); !ok {
		t.Fatalf("expected registered handler to be found")
	}
	if _, ok := tbl.lookup(PhaseLogin, 0x99); ok {
		t.Fatalf("expected unregistered id to be absent")
	}
}
