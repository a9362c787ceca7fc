package packet

import (
	"bytes"

	"github.com/glimmermc/glimmer/server/protocol"
)

// StatusRequest (serverbound) asks for the server list ping response. It
// carries no fields.
type StatusRequest struct{}

func (*StatusRequest) ID() int32                       { return 0x00 }
func (*StatusRequest) Encode(*bytes.Buffer)             {}
func (*StatusRequest) Decode(b []byte) ([]byte, error)  { return b, nil }

// StatusResponse (clientbound) carries the JSON status payload shown in the
// multiplayer server list.
type StatusResponse struct {
	JSON string
}

func (*StatusResponse) ID() int32 { return 0x00 }

func (p *StatusResponse) Encode(buf *bytes.Buffer) {
	protocol.WriteString(buf, p.JSON)
}

func (p *StatusResponse) Decode(b []byte) ([]byte, error) {
	var err error
	p.JSON, b, err = protocol.ReadString(b)
	return b, err
}

// StatusPing is sent both ways: serverbound to request a pong, clientbound
// to echo it back, always carrying the same opaque payload.
type StatusPing struct {
	Payload int64
}

func (*StatusPing) ID() int32 { return 0x01 }

func (p *StatusPing) Encode(buf *bytes.Buffer) {
	protocol.WriteInt64(buf, p.Payload)
}

func (p *StatusPing) Decode(b []byte) ([]byte, error) {
	var err error
	p.Payload, b, err = protocol.ReadInt64(b)
	return b, err
}

// StatusPong is the clientbound echo of StatusPing; wire-identical.
type StatusPong = StatusPing

var StatusServerboundPool = Pool{
	0x00: func() Packet { return &StatusRequest{} },
	0x01: func() Packet { return &StatusPing{} },
}

var StatusClientboundPool = Pool{
	0x00: func() Packet { return &StatusResponse{} },
	0x01: func() Packet { return &StatusPing{} },
}
