// Package packet implements the per-phase packet taxonomy of spec.md §4.3:
// eight discriminated-union packet sets ({Handshake, Status, Login,
// Configuration, Play} × {Clientbound, Serverbound}, Handshake being
// serverbound-only), each keyed by a VarInt discriminant.
package packet

import (
	"bytes"

	"github.com/glimmermc/glimmer/server/protocol"
)

// Packet is implemented by every packet variant across every phase. Encode
// writes the packet's fields (not its discriminant — the caller, i.e. the
// phase Pool, writes that); Decode reads them from the payload that
// follows the discriminant and returns the unconsumed tail.
type Packet interface {
	// ID returns this variant's protocol packet id within its phase and
	// direction.
	ID() int32
	Encode(buf *bytes.Buffer)
	Decode(b []byte) ([]byte, error)
}

// Pool is a registry of packet constructors keyed by discriminant,
// matching the registry-of-constructors idiom gophertunnel's packet.Pool
// uses for Bedrock's catalog, generalized here to Java edition's own ids.
type Pool map[int32]func() Packet

// Lookup constructs a zero-valued Packet for id, or reports an
// *protocol.UnknownVariantError naming phaseName.
func (p Pool) Lookup(id int32, phaseName string) (Packet, error) {
	ctor, ok := p[id]
	if !ok {
		return nil, &protocol.UnknownVariantError{Type: phaseName, Discriminant: id}
	}
	return ctor(), nil
}

// Decode looks up id in the Pool and decodes body into a fresh Packet.
func (p Pool) Decode(id int32, body []byte, phaseName string) (Packet, error) {
	pk, err := p.Lookup(id, phaseName)
	if err != nil {
		return nil, err
	}
	if _, err := pk.Decode(body); err != nil {
		return nil, err
	}
	return pk, nil
}

// EncodeWithID writes pk's VarInt discriminant followed by its fields,
// the wire shape every packet variant shares per spec.md §4.3.
func EncodeWithID(buf *bytes.Buffer, pk Packet) {
	protocol.WriteVarInt(buf, pk.ID())
	pk.Encode(buf)
}
