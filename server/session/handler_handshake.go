package session

import (
	"fmt"

	"github.com/glimmermc/glimmer/server/protocol/packet"
)

// HandshakeHandler resolves the sole Handshake-phase packet, moving the
// session into Status or Login per the client's declared intent
// (spec.md §4.8).
type HandshakeHandler struct{}

func (HandshakeHandler) Handle(p packet.Packet, s *Session) error {
	pk, ok := p.(*packet.Handshake)
	if !ok {
		return fmt.Errorf("session: handshake handler given %T", p)
	}
	switch pk.NextState {
	case packet.IntentStatus:
		s.SetPhase(PhaseStatus)
	case packet.IntentLogin, packet.IntentTransfer:
		s.SetPhase(PhaseLogin)
	default:
		return fmt.Errorf("session: handshake: unknown intent %d", pk.NextState)
	}
	return nil
}

// StatusRequestHandler answers a server-list ping with the status JSON
// payload supplied by the caller at construction, since generating that
// JSON (player count, MOTD, favicon) is server configuration, not protocol
// logic.
type StatusRequestHandler struct {
	JSON func() string
}

func (h StatusRequestHandler) Handle(p packet.Packet, s *Session) error {
	if _, ok := p.(*packet.StatusRequest); !ok {
		return fmt.Errorf("session: status handler given %T", p)
	}
	s.Send(&packet.StatusResponse{JSON: h.JSON()})
	return nil
}

// StatusPingHandler echoes a StatusPing's payload back verbatim.
type StatusPingHandler struct{}

func (StatusPingHandler) Handle(p packet.Packet, s *Session) error {
	pk, ok := p.(*packet.StatusPing)
	if !ok {
		return fmt.Errorf("session: ping handler given %T", p)
	}
	s.Send(&packet.StatusPong{Payload: pk.Payload})
	return nil
}
