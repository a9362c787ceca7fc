package session

import "github.com/glimmermc/glimmer/server/protocol/packet"

// DefaultHandlers builds the HandlerTable covering every phase transition
// and keep-alive echo; callers add Play-phase gameplay handlers (inventory,
// movement, chat) on top of the table this returns.
func DefaultHandlers(statusJSON func() string, onEnterPlay func(s *Session)) *HandlerTable {
	t := NewHandlerTable()

	t.Register(PhaseHandshake, (&packet.Handshake{}).ID(), HandshakeHandler{})

	t.Register(PhaseStatus, (&packet.StatusRequest{}).ID(), StatusRequestHandler{JSON: statusJSON})
	t.Register(PhaseStatus, (&packet.StatusPing{}).ID(), StatusPingHandler{})

	t.Register(PhaseLogin, (&packet.LoginStart{}).ID(), LoginStartHandler{CompressionThreshold: CompressionThreshold})
	t.Register(PhaseLogin, (&packet.LoginAcknowledged{}).ID(), LoginAcknowledgedHandler{})

	t.Register(PhaseConfiguration, (&packet.ClientInformation{}).ID(), ClientInformationHandler{})
	t.Register(PhaseConfiguration, int32(0x02), FinishConfigurationHandler{OnEnterPlay: onEnterPlay})
	t.Register(PhaseConfiguration, int32(0x03), ConfigurationKeepAliveHandler{})

	t.Register(PhasePlay, int32(0x09), PlayKeepAliveHandler{})

	return t
}
