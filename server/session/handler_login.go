package session

import (
	"fmt"

	"github.com/glimmermc/glimmer/server/protocol/packet"
)

// CompressionThreshold is the default threshold SetCompression announces
// once a session reaches Login; spec.md §1 treats the auth/encryption
// negotiation itself as an external collaborator, so this handler skips
// straight from LoginStart to LoginSuccess.
const CompressionThreshold = 256

// LoginStartHandler resolves LoginStart into LoginSuccess, optionally
// preceded by SetCompression (spec.md §4.8's Login transition row).
type LoginStartHandler struct {
	CompressionThreshold int32
}

func (h LoginStartHandler) Handle(p packet.Packet, s *Session) error {
	pk, ok := p.(*packet.LoginStart)
	if !ok {
		return fmt.Errorf("session: login-start handler given %T", p)
	}
	s.username = pk.Name
	s.uuid = pk.PlayerUUID

	if h.CompressionThreshold > 0 {
		if err := s.SendNow(&packet.SetCompression{Threshold: h.CompressionThreshold}); err != nil {
			return err
		}
		s.EnableCompression(h.CompressionThreshold)
	}
	s.Send(&packet.LoginSuccess{
		UUID:     s.uuid,
		Username: s.username,
	})
	return nil
}

// LoginAcknowledgedHandler moves the session from Login to Configuration.
type LoginAcknowledgedHandler struct{}

func (LoginAcknowledgedHandler) Handle(p packet.Packet, s *Session) error {
	if _, ok := p.(*packet.LoginAcknowledged); !ok {
		return fmt.Errorf("session: login-acknowledged handler given %T", p)
	}
	s.SetPhase(PhaseConfiguration)
	return nil
}
