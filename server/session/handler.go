package session

import "github.com/glimmermc/glimmer/server/protocol/packet"

// Handler handles one packet variant for a Session, generalising the
// teacher's per-packet ItemStackRequestHandler.Handle(p packet.Packet, s
// *Session) error shape across every phase instead of only inventory
// packets.
type Handler interface {
	Handle(p packet.Packet, s *Session) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(p packet.Packet, s *Session) error

func (f HandlerFunc) Handle(p packet.Packet, s *Session) error { return f(p, s) }

// handlers maps a concrete packet type, by discriminant within its current
// phase, to the Handler that processes it. Session.dispatch looks up by
// (phase, id) pair.
type handlerKey struct {
	phase Phase
	id    int32
}

// HandlerTable is a per-server registry of packet handlers, built once at
// startup and shared read-only across sessions.
type HandlerTable struct {
	handlers map[handlerKey]Handler
}

func NewHandlerTable() *HandlerTable {
	return &HandlerTable{handlers: make(map[handlerKey]Handler)}
}

// Register installs h as the handler for id within phase. Registering
// twice for the same key replaces the previous handler, matching the
// teacher's registry-of-constructors style for packet pools.
func (t *HandlerTable) Register(phase Phase, id int32, h Handler) {
	t.handlers[handlerKey{phase, id}] = h
}

func (t *HandlerTable) lookup(phase Phase, id int32) (Handler, bool) {
	h, ok := t.handlers[handlerKey{phase, id}]
	return h, ok
}
