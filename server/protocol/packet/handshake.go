package packet

import (
	"bytes"

	"github.com/glimmermc/glimmer/server/protocol"
)

// Intent is the next phase a Handshake packet asks the connection to move
// to, per spec.md §4.8.
type Intent int32

const (
	IntentStatus Intent = 1
	IntentLogin  Intent = 2
	// IntentTransfer is used by the vanilla client when transferring between
	// servers (1.20.5+); accepted here so the decoder doesn't reject it, but
	// the connection state machine treats it identically to IntentLogin.
	IntentTransfer Intent = 3
)

// Handshake is the sole serverbound packet of the Handshake phase. It
// selects the protocol version and the next phase (spec.md §4.8).
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       Intent
}

func (*Handshake) ID() int32 { return 0x00 }

func (p *Handshake) Encode(buf *bytes.Buffer) {
	protocol.WriteVarInt(buf, p.ProtocolVersion)
	protocol.WriteString(buf, p.ServerAddress)
	protocol.WriteUint16(buf, p.ServerPort)
	protocol.WriteVarInt(buf, int32(p.NextState))
}

func (p *Handshake) Decode(b []byte) ([]byte, error) {
	var err error
	if p.ProtocolVersion, b, err = protocol.ReadVarInt(b); err != nil {
		return nil, err
	}
	if p.ServerAddress, b, err = protocol.ReadString(b); err != nil {
		return nil, err
	}
	if p.ServerPort, b, err = protocol.ReadUint16(b); err != nil {
		return nil, err
	}
	var next int32
	if next, b, err = protocol.ReadVarInt(b); err != nil {
		return nil, err
	}
	p.NextState = Intent(next)
	return b, nil
}

// HandshakePool is the Handshake phase's (serverbound-only) packet
// registry.
var HandshakePool = Pool{
	0x00: func() Packet { return &Handshake{} },
}
