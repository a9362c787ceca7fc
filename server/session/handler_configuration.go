package session

import (
	"fmt"

	"github.com/glimmermc/glimmer/server/protocol/packet"
)

// ClientInformationHandler records the client's locale/view-distance/hand
// settings; it does not itself transition phase.
type ClientInformationHandler struct{}

func (ClientInformationHandler) Handle(p packet.Packet, s *Session) error {
	if _, ok := p.(*packet.ClientInformation); !ok {
		return fmt.Errorf("session: client-information handler given %T", p)
	}
	return nil
}

// FinishConfigurationHandler completes the Configuration→Play transition
// once the client echoes the server's FinishConfiguration (spec.md §4.8).
type FinishConfigurationHandler struct {
	// OnEnterPlay is invoked after the phase flips, letting the caller
	// send Login (play) and the initial world/entity snapshot without this
	// package depending on server/world or server/entity.
	OnEnterPlay func(s *Session)
}

func (h FinishConfigurationHandler) Handle(p packet.Packet, s *Session) error {
	if _, ok := p.(*packet.FinishConfiguration); !ok {
		return fmt.Errorf("session: finish-configuration handler given %T", p)
	}
	s.SetPhase(PhasePlay)
	if h.OnEnterPlay != nil {
		h.OnEnterPlay(s)
	}
	return nil
}

// ConfigurationKeepAliveHandler and PlayKeepAliveHandler record a client's
// keep-alive echo, resetting the timeout window.

type ConfigurationKeepAliveHandler struct{}

func (ConfigurationKeepAliveHandler) Handle(p packet.Packet, s *Session) error {
	pk, ok := p.(*packet.ConfigurationKeepAlive)
	if !ok {
		return fmt.Errorf("session: configuration keep-alive handler given %T", p)
	}
	s.HandleKeepAliveEcho(pk.KeepAliveID)
	return nil
}

type PlayKeepAliveHandler struct{}

func (PlayKeepAliveHandler) Handle(p packet.Packet, s *Session) error {
	pk, ok := p.(*packet.PlayKeepAlive)
	if !ok {
		return fmt.Errorf("session: play keep-alive handler given %T", p)
	}
	s.HandleKeepAliveEcho(pk.KeepAliveID)
	return nil
}
